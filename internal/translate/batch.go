package translate

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

const DefaultBatchSize = 50

// batchFunc is one provider API request over a single batch.
type batchFunc func(ctx context.Context, items []TranslationItem) ([]TranslationResult, error)

func splitBatches(items []TranslationItem, size int) [][]TranslationItem {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var batches [][]TranslationItem
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[i:end])
	}
	return batches
}

// translateSequential runs the batches one request at a time.
func translateSequential(
	ctx context.Context,
	fn batchFunc,
	items []TranslationItem,
	batchSize int,
) ([]TranslationResult, error) {
	if len(items) == 0 {
		return []TranslationResult{}, nil
	}

	batches := splitBatches(items, batchSize)
	if len(batches) == 1 {
		return fn(ctx, batches[0])
	}

	var all []TranslationResult
	for i, batch := range batches {
		results, err := fn(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("batch %d failed: %w", i, err)
		}
		all = append(all, results...)
	}

	sortResults(all)
	return all, nil
}

// translateConcurrent runs batches through a worker pool, cancelling
// outstanding work on the first failure.
func translateConcurrent(
	ctx context.Context,
	fn batchFunc,
	items []TranslationItem,
	batchSize int,
	concurrency int,
) ([]TranslationResult, error) {
	if len(items) == 0 {
		return []TranslationResult{}, nil
	}
	if concurrency <= 0 {
		concurrency = 3
	}

	batches := splitBatches(items, batchSize)
	if len(batches) == 1 {
		return fn(ctx, batches[0])
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type batchResult struct {
		Index   int
		Results []TranslationResult
		Error   error
	}

	workChan := make(chan int)
	resultChan := make(chan batchResult, len(batches))

	var wg sync.WaitGroup
	for i := 0; i < concurrency && i < len(batches); i++ {
		wg.Go(func() {
			for {
				select {
				case <-ctx.Done():
					return
				case batchIdx, ok := <-workChan:
					if !ok {
						return
					}
					results, err := fn(ctx, batches[batchIdx])
					if err != nil {
						cancel()
					}
					resultChan <- batchResult{
						Index:   batchIdx,
						Results: results,
						Error:   err,
					}
				}
			}
		})
	}

	go func() {
		defer close(workChan)
		for i := range batches {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var all []TranslationResult
	var firstErr error
	for result := range resultChan {
		if result.Error != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("batch %d failed: %w", result.Index, result.Error)
				cancel()
			}
			continue
		}
		all = append(all, result.Results...)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	sortResults(all)
	return all, nil
}

func sortResults(results []TranslationResult) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})
}
