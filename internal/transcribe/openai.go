package transcribe

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/askhade/lekha/internal/audio"
	"github.com/askhade/lekha/internal/repair"
	"github.com/askhade/lekha/internal/segment"
	"github.com/askhade/lekha/internal/timecode"
)

// OpenAITranscriber uses the Whisper audio API. The verbose_json
// response is a segments-keyed wrapper object, so the raw body goes
// through the same repair path as generative-model output.
type OpenAITranscriber struct {
	client  openai.Client
	model   string
	options Options
}

func NewOpenAITranscriber(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*OpenAITranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	model := opts.Model
	if model == "" {
		model = "whisper-1"
	}

	return &OpenAITranscriber{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

// Transcribe runs one audio file through Whisper and recovers records
// from the verbose_json body.
func (t *OpenAITranscriber) Transcribe(
	ctx context.Context,
	audioPath string,
) (*Result, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	duration, _ := audio.GetDuration(audioPath)

	granularity := "segment"
	if t.options.Granularity == segment.Word {
		granularity = "word"
	}

	params := openai.AudioTranscriptionNewParams{
		File:                   file,
		Model:                  openai.AudioModel(t.model),
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []string{granularity},
	}

	if t.options.Language != "" {
		params.Language = openai.String(t.options.Language)
	}
	if t.options.Prompt != "" {
		params.Prompt = openai.String(t.options.Prompt)
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	raw := resp.RawJSON()
	records, err := repair.Records(raw)
	if err != nil {
		// no timed segments; fall back to one record covering the file
		if resp.Text == "" {
			return nil, fmt.Errorf("no segments or text in response: %w", err)
		}
		records = []segment.RawRecord{{
			StartTime: segment.Token(timecode.Clock(0)),
			EndTime:   segment.Token(timecode.Clock(duration.Seconds())),
			Text:      resp.Text,
		}}
	}

	return &Result{
		Records:  records,
		Raw:      raw,
		Language: t.options.Language,
		Duration: duration,
	}, nil
}

// TranscribeChunk transcribes one chunk and shifts its records by the
// chunk offset.
func (t *OpenAITranscriber) TranscribeChunk(
	ctx context.Context,
	chunk audio.ChunkInfo,
) ([]segment.RawRecord, error) {
	result, err := t.Transcribe(ctx, chunk.Path)
	if err != nil {
		return nil, err
	}
	return shiftRecords(result.Records, chunk.StartTime), nil
}

// TranscribeWithChunks transcribes chunks in parallel, cancelling the
// remaining work on the first failure.
func (t *OpenAITranscriber) TranscribeWithChunks(
	ctx context.Context,
	chunks []audio.ChunkInfo,
	concurrency int,
) (*Result, error) {
	if len(chunks) == 0 {
		return &Result{}, nil
	}

	if concurrency <= 0 {
		concurrency = 3
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workChan := make(chan audio.ChunkInfo)
	resultChan := make(chan chunkResult, len(chunks))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Go(func() {
			for {
				select {
				case <-ctx.Done():
					return
				case chunk, ok := <-workChan:
					if !ok {
						return
					}
					records, err := t.TranscribeChunk(ctx, chunk)
					if err != nil {
						cancel()
					}
					resultChan <- chunkResult{
						Index:   chunk.Index,
						Records: records,
						Error:   err,
					}
				}
			}
		})
	}

	go func() {
		defer close(workChan)
		for _, chunk := range chunks {
			select {
			case <-ctx.Done():
				return
			case workChan <- chunk:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]chunkResult, 0, len(chunks))
	var firstErr error
	for result := range resultChan {
		if result.Error != nil && firstErr == nil {
			firstErr = fmt.Errorf("chunk %d failed: %w", result.Index, result.Error)
			cancel()
		}
		if result.Error == nil {
			results = append(results, result)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})

	var allRecords []segment.RawRecord
	for _, r := range results {
		allRecords = append(allRecords, r.Records...)
	}

	var totalDuration time.Duration
	if len(chunks) > 0 {
		totalDuration = chunks[len(chunks)-1].EndTime
	}

	return &Result{
		Records:  allRecords,
		Language: t.options.Language,
		Duration: totalDuration,
	}, nil
}

func (t *OpenAITranscriber) Close() error {
	return nil
}
