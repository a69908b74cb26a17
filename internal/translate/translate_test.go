package translate

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/askhade/lekha/internal/segment"
)

func TestFactoryReturnsGeminiTranslator(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "Japanese"}
	translator, err := Factory(ctx, ProviderGemini, "fake-key", opts)
	if err != nil {
		t.Fatalf("Factory(ProviderGemini) returned error: %v", err)
	}
	if _, ok := translator.(*GeminiTranslator); !ok {
		t.Errorf("expected *GeminiTranslator, got %T", translator)
	}
}

func TestFactoryReturnsOpenAITranslator(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "Spanish"}
	translator, err := Factory(ctx, ProviderOpenAI, "fake-key", opts)
	if err != nil {
		t.Fatalf("Factory(ProviderOpenAI) returned error: %v", err)
	}
	if _, ok := translator.(*OpenAITranslator); !ok {
		t.Errorf("expected *OpenAITranslator, got %T", translator)
	}
}

func TestFactoryRequiresTargetLanguage(t *testing.T) {
	ctx := context.Background()
	opts := Options{} // no TargetLanguage
	_, err := Factory(ctx, ProviderGemini, "fake-key", opts)
	if err == nil {
		t.Error("expected error for missing target language")
	}
}

func TestFactoryRejectsUnknownProvider(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "French"}
	_, err := Factory(ctx, Provider("unknown"), "fake-key", opts)
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestGeminiTranslatorImplementsConcurrentTranslator(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "Korean"}
	translator, err := Factory(ctx, ProviderGemini, "fake-key", opts)
	if err != nil {
		t.Fatalf("Factory error: %v", err)
	}
	if _, ok := translator.(ConcurrentTranslator); !ok {
		t.Error("GeminiTranslator should implement ConcurrentTranslator")
	}
}

func TestOpenAITranslatorImplementsConcurrentTranslator(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "German"}
	translator, err := Factory(ctx, ProviderOpenAI, "fake-key", opts)
	if err != nil {
		t.Fatalf("Factory error: %v", err)
	}
	if _, ok := translator.(ConcurrentTranslator); !ok {
		t.Error("OpenAITranslator should implement ConcurrentTranslator")
	}
}

// Integration test: only runs if OPENAI_API_KEY is set
func TestOpenAITranslatorIntegration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("OPENAI_API_KEY not set; skipping integration test")
	}

	ctx := context.Background()
	opts := Options{TargetLanguage: "Spanish"}
	translator, err := NewOpenAITranslator(ctx, apiKey, opts)
	if err != nil {
		t.Fatalf("NewOpenAITranslator error: %v", err)
	}

	items := []TranslationItem{
		{Index: 0, Text: "Hello"},
		{Index: 1, Text: "Goodbye"},
	}

	results, err := translator.Translate(ctx, items)
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Text == "" {
			t.Errorf("result index %d has empty text", r.Index)
		}
	}
}

// stub translator that upcases every item
type upcaseTranslator struct{}

func (upcaseTranslator) Translate(
	_ context.Context,
	items []TranslationItem,
) ([]TranslationResult, error) {
	results := make([]TranslationResult, len(items))
	for i, item := range items {
		results[i] = TranslationResult{
			Index: item.Index,
			Text:  strings.ToUpper(item.Text),
		}
	}
	return results, nil
}

func TestSegmentsFillsTranslatedText(t *testing.T) {
	segs := []segment.Segment{
		{Start: 0, End: 1, Text: "hello"},
		{Start: 1, End: 2, Text: ""},
		{Start: 2, End: 3, Text: "world"},
	}

	out, err := Segments(context.Background(), upcaseTranslator{}, segs, 1)
	if err != nil {
		t.Fatalf("Segments error: %v", err)
	}

	if out[0].TranslatedText != "HELLO" {
		t.Errorf("segment 0: got %q, want %q", out[0].TranslatedText, "HELLO")
	}
	if out[1].TranslatedText != "" {
		t.Errorf("empty segment should stay untranslated, got %q", out[1].TranslatedText)
	}
	if out[2].TranslatedText != "WORLD" {
		t.Errorf("segment 2: got %q, want %q", out[2].TranslatedText, "WORLD")
	}

	// input must not be mutated
	if segs[0].TranslatedText != "" {
		t.Error("Segments mutated its input")
	}
}
