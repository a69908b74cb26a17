// Package transcribe obtains raw timed-transcript responses from
// generative models. Model output is treated as untrusted text: every
// response goes through the repair package before anything downstream
// sees it.
package transcribe

import (
	"context"
	"fmt"
	"time"

	"github.com/askhade/lekha/internal/audio"
	"github.com/askhade/lekha/internal/segment"
	"github.com/askhade/lekha/internal/timecode"
)

// Result of transcribing one audio input.
type Result struct {
	// Records are the recovered raw records, still unnormalized.
	Records []segment.RawRecord
	// Raw is the last raw response body, kept for diagnostics.
	Raw      string
	Language string
	Duration time.Duration
}

// Transcriber is implemented per provider.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
}

// ChunkedTranscriber adds parallel chunk transcription.
type ChunkedTranscriber interface {
	Transcriber
	TranscribeWithChunks(
		ctx context.Context,
		chunks []audio.ChunkInfo,
		concurrency int,
	) (*Result, error)
}

// Provider selects the transcription backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// Options for a transcription run.
type Options struct {
	Language    string // source language of the audio
	Model       string
	Prompt      string // extra context appended to the prompt
	Granularity segment.Granularity
}

// Factory creates a transcriber for the provider.
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (ChunkedTranscriber, error) {
	switch provider {
	case ProviderGemini:
		return NewGeminiTranscriber(ctx, apiKey, opts)
	case ProviderOpenAI:
		return NewOpenAITranscriber(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

// shiftRecords moves every timestamp forward by the chunk offset,
// re-serializing through the canonical clock format. Tokens that do
// not parse shift from zero, which keeps them inside the chunk's span.
func shiftRecords(recs []segment.RawRecord, offset time.Duration) []segment.RawRecord {
	if offset == 0 {
		return recs
	}
	sec := offset.Seconds()
	shifted := make([]segment.RawRecord, len(recs))
	for i, rec := range recs {
		shifted[i] = segment.RawRecord{
			StartTime: segment.Token(timecode.Clock(timecode.Parse(rec.StartTime.String()) + sec)),
			EndTime:   segment.Token(timecode.Clock(timecode.Parse(rec.EndTime.String()) + sec)),
			Text:      rec.Text,
			Words:     shiftRecords(rec.Words, offset),
		}
	}
	return shifted
}

// truncateString trims diagnostics embedded in error messages.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
