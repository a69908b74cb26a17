package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/askhade/lekha/internal/audio"
	"github.com/askhade/lekha/internal/config"
	"github.com/askhade/lekha/internal/export"
	"github.com/askhade/lekha/internal/segment"
	"github.com/askhade/lekha/internal/transcribe"
)

var generateCmd = &cobra.Command{
	Use:   "generate [media_file]",
	Short: "Transcribe a media file and export repaired captions",
	Long: `Transcribe the specified audio or video file and export the repaired
transcript in the chosen caption format.

The command accepts both audio files (mp3, wav, aac, etc.) and video files
(mp4, mkv, etc.). For video files, the audio track is extracted first. The
audio is split into chunks (default 1 minute) and transcribed in parallel;
the model responses are repaired, normalized, and rendered.

Examples:
  lekha generate video.mp4
  lekha generate audio.mp3 --format vtt --granularity word
  lekha generate podcast.mp3 -f lrc --provider openai
  lekha generate video.mp4 -f srt -d 2 --concurrency 5`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY env var)")
	generateCmd.Flags().
		String("provider", "gemini", "Transcription provider (gemini, openai)")
	generateCmd.Flags().
		IntP("chunk-duration", "d", 1, "Chunk duration in minutes for splitting audio")
	generateCmd.Flags().
		StringP("format", "f", "srt", "Output format (txt, json, lrc, srt, vtt, ttml)")
	generateCmd.Flags().
		String("granularity", "line", "Transcript granularity (line, word)")
	generateCmd.Flags().
		Int("concurrency", 3, "Number of parallel transcription workers")
	generateCmd.Flags().
		String("model", "", "Model to use for transcription (provider default if empty)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	ctx := context.Background()

	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", mediaPath)
	}
	if !audio.IsMediaFile(mediaPath) {
		return fmt.Errorf("unsupported file type: %s (expected audio or video file)", filepath.Ext(mediaPath))
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	providerStr, _ := cmd.Flags().GetString("provider")
	chunkDuration, _ := cmd.Flags().GetInt("chunk-duration")
	formatStr, _ := cmd.Flags().GetString("format")
	granularityStr, _ := cmd.Flags().GetString("granularity")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	model, _ := cmd.Flags().GetString("model")
	outputPath, _ := cmd.Flags().GetString("output")
	language, _ := cmd.Flags().GetString("language")

	format, err := export.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	granularity, err := parseGranularity(granularityStr)
	if err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	provider := transcribe.Provider(strings.ToLower(providerStr))
	if apiKey == "" {
		switch provider {
		case transcribe.ProviderOpenAI:
			apiKey = os.Getenv("OPENAI_API_KEY")
		default:
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required: use --api-key or set the provider's environment variable")
	}

	if outputPath == "" {
		baseName := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath))
		outputPath = baseName + export.Extension(format)
	}

	logger.Infow("Starting caption generation",
		"input", mediaPath,
		"output", outputPath,
		"format", string(format),
		"granularity", granularity.String(),
		"provider", string(provider),
	)

	tempDir, err := os.MkdirTemp("", "lekha-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	audioPath := filepath.Join(tempDir, "audio.mp3")
	logger.Infow("Preparing audio for transcription")
	if err := audio.Transcode(ctx, mediaPath, audioPath, audio.DefaultTranscodeOptions()); err != nil {
		return fmt.Errorf("failed to prepare audio: %w", err)
	}

	duration, err := audio.GetDuration(audioPath)
	if err != nil {
		return fmt.Errorf("failed to get audio duration: %w", err)
	}
	logger.Infow("Audio prepared", "duration", duration.String())

	chunkDir := filepath.Join(tempDir, "chunks")
	chunkDur := time.Duration(chunkDuration) * time.Minute
	chunks, err := audio.ChunkAudio(ctx, audioPath, chunkDur, chunkDir)
	if err != nil {
		return fmt.Errorf("failed to split audio: %w", err)
	}
	logger.Infow("Created audio chunks", "count", len(chunks))

	transcriber, err := transcribe.Factory(ctx, provider, apiKey, transcribe.Options{
		Language:    language,
		Model:       model,
		Granularity: granularity,
	})
	if err != nil {
		return fmt.Errorf("failed to create transcriber: %w", err)
	}

	logger.Infow("Transcribing audio", "concurrency", concurrency)
	result, err := transcriber.TranscribeWithChunks(ctx, chunks, concurrency)
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}
	logger.Infow("Transcription complete", "records", len(result.Records))

	records := segment.Flatten(result.Records, granularity)
	segs := segment.NormalizeWithLimits(records, cfg.Limits(granularity))

	content, err := export.Render(format, segs, exportOptions(cfg, segment.Original, granularity))
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", format, err)
	}

	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Captions generated successfully: %s\n", absOutput)
	fmt.Printf("  Segments: %d\n", len(segs))
	fmt.Printf("  Duration: %s\n", duration.String())

	return nil
}
