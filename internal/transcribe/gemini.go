package transcribe

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/askhade/lekha/internal/audio"
	"github.com/askhade/lekha/internal/repair"
	"github.com/askhade/lekha/internal/segment"
)

// GeminiTranscriber asks Gemini for a timed transcript as structured
// text and recovers records from whatever comes back.
type GeminiTranscriber struct {
	client  *genai.Client
	model   string
	options Options
}

func NewGeminiTranscriber(ctx context.Context, apiKey string, opts Options) (*GeminiTranscriber, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &GeminiTranscriber{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

// Transcribe uploads one audio file and recovers its segment records.
func (t *GeminiTranscriber) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	uploadedFile, err := t.client.Files.UploadFromPath(ctx, audioPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to upload audio file: %w", err)
	}

	defer func() {
		_, _ = t.client.Files.Delete(ctx, uploadedFile.Name, nil)
	}()

	parts := []*genai.Part{
		genai.NewPartFromText(t.buildPrompt()),
		genai.NewPartFromURI(uploadedFile.URI, uploadedFile.MIMEType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	resp, err := t.client.Models.GenerateContent(ctx, t.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	raw := responseText(resp)
	if raw == "" {
		return nil, fmt.Errorf("no text in Gemini response")
	}

	records, err := repair.Records(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to recover segments: %w (response: %s)",
			err, truncateString(raw, 200))
	}

	duration, _ := audio.GetDuration(audioPath)

	return &Result{
		Records:  records,
		Raw:      raw,
		Language: t.options.Language,
		Duration: duration,
	}, nil
}

// TranscribeChunk transcribes one chunk and shifts its records by the
// chunk offset.
func (t *GeminiTranscriber) TranscribeChunk(ctx context.Context, chunk audio.ChunkInfo) ([]segment.RawRecord, error) {
	result, err := t.Transcribe(ctx, chunk.Path)
	if err != nil {
		return nil, err
	}
	return shiftRecords(result.Records, chunk.StartTime), nil
}

type chunkResult struct {
	Index   int
	Records []segment.RawRecord
	Error   error
}

// TranscribeWithChunks transcribes chunks in parallel and merges the
// recovered records in chunk order.
func (t *GeminiTranscriber) TranscribeWithChunks(ctx context.Context, chunks []audio.ChunkInfo, concurrency int) (*Result, error) {
	if len(chunks) == 0 {
		return &Result{}, nil
	}

	if concurrency <= 0 {
		concurrency = 3
	}

	workChan := make(chan audio.ChunkInfo, len(chunks))
	resultChan := make(chan chunkResult, len(chunks))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Go(func() {
			for chunk := range workChan {
				records, err := t.TranscribeChunk(ctx, chunk)
				resultChan <- chunkResult{
					Index:   chunk.Index,
					Records: records,
					Error:   err,
				}
			}
		})
	}

	for _, chunk := range chunks {
		workChan <- chunk
	}
	close(workChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]chunkResult, 0, len(chunks))
	for result := range resultChan {
		if result.Error != nil {
			return nil, fmt.Errorf("chunk %d failed: %w", result.Index, result.Error)
		}
		results = append(results, result)
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

// buildPrompt asks for the segments object shape the repair package
// expects, with clock-string timestamps.
func (t *GeminiTranscriber) buildPrompt() string {
	var sb strings.Builder

	sb.WriteString("Generate a detailed transcript of this audio. ")
	sb.WriteString(`Respond with a JSON object of the form {"segments": [...]} where each segment has "startTime", "endTime", and "text" fields. `)
	sb.WriteString(`Timestamps are clock strings in the form "MM:SS.mmm". `)

	if t.options.Granularity == segment.Word {
		sb.WriteString(`Additionally give each segment a "words" array containing one {"startTime", "endTime", "text"} entry per spoken word. `)
	} else {
		sb.WriteString("Produce one segment per spoken sentence or phrase. ")
	}

	if t.options.Language != "" {
		sb.WriteString(fmt.Sprintf("The audio is in %s. ", t.options.Language))
	}

	if t.options.Prompt != "" {
		sb.WriteString(t.options.Prompt)
		sb.WriteString(" ")
	}

	sb.WriteString("Return ONLY the JSON object, no other text or markdown formatting.")

	return sb.String()
}

// responseText concatenates the text parts of all candidates.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

func (t *GeminiTranscriber) Close() error {
	return nil
}
