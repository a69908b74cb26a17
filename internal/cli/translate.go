package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/askhade/lekha/internal/config"
	"github.com/askhade/lekha/internal/export"
	"github.com/askhade/lekha/internal/segment"
	"github.com/askhade/lekha/internal/subfile"
	"github.com/askhade/lekha/internal/translate"
)

var translateCmd = &cobra.Command{
	Use:   "translate [subtitle_file]",
	Short: "Translate an existing subtitle file using AI",
	Long: `Translate an existing SRT or VTT file to another language and export
the result in any supported caption format.

By default the translated track replaces the original text in the output.
Use --text original to re-export the original track instead, after the
translation has been attached.

Examples:
  lekha translate video.srt --target-language japanese
  lekha translate video.vtt -t spanish --provider anthropic -f ttml
  lekha translate video.srt -t german --concurrency 5 -o out.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	translateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set the provider's environment variable)")
	translateCmd.Flags().
		String("model", "", "Model to use for translation (provider default if empty)")
	translateCmd.Flags().
		String("provider", "gemini", "Translation provider (gemini, openai, anthropic)")
	translateCmd.Flags().
		StringP("format", "f", "srt", "Output format (txt, json, lrc, srt, vtt, ttml)")
	translateCmd.Flags().
		Int("concurrency", 3, "Number of parallel translation workers")
	translateCmd.Flags().
		Int("batch-size", 50, "Number of segments per API request")
	translateCmd.Flags().
		String("text", "translated", "Text track to render (original, translated)")

	_ = translateCmd.MarkFlagRequired("target-language")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]
	ctx := context.Background()

	targetLang, _ := cmd.Flags().GetString("target-language")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	providerStr, _ := cmd.Flags().GetString("provider")
	formatStr, _ := cmd.Flags().GetString("format")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	textStr, _ := cmd.Flags().GetString("text")
	outputPath, _ := cmd.Flags().GetString("output")
	inputLang, _ := cmd.Flags().GetString("language")

	format, err := export.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	kind, err := parseTextKind(textStr)
	if err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	segs, err := subfile.Open(subtitlePath)
	if err != nil {
		return err
	}
	if len(segs) == 0 {
		return fmt.Errorf("no subtitle entries found in %s", subtitlePath)
	}

	provider := translate.Provider(strings.ToLower(providerStr))
	if apiKey == "" {
		switch provider {
		case translate.ProviderOpenAI:
			apiKey = os.Getenv("OPENAI_API_KEY")
		case translate.ProviderAnthropic:
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		default:
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required: use --api-key or set the provider's environment variable")
	}

	translator, err := translate.Factory(ctx, provider, apiKey, translate.Options{
		InputLanguage:  inputLang,
		TargetLanguage: targetLang,
		Model:          model,
		BatchSize:      batchSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	logger.Infow("Translating subtitles",
		"input", subtitlePath,
		"segments", len(segs),
		"target_language", targetLang,
		"provider", string(provider),
	)

	translated, err := translate.Segments(ctx, translator, segs, concurrency)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	content, err := export.Render(format, translated,
		exportOptions(cfg, kind, segment.Line))
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", format, err)
	}

	if outputPath == "" {
		baseName := strings.TrimSuffix(subtitlePath, filepath.Ext(subtitlePath))
		outputPath = baseName + "." + strings.ToLower(targetLang) + export.Extension(format)
	}

	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Translated captions written: %s\n", absOutput)
	return nil
}
