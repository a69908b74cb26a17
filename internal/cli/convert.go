package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/askhade/lekha/internal/config"
	"github.com/askhade/lekha/internal/export"
	"github.com/askhade/lekha/internal/repair"
	"github.com/askhade/lekha/internal/segment"
)

var convertCmd = &cobra.Command{
	Use:   "convert [response_file]",
	Short: "Repair a saved model response and export captions",
	Long: `Repair a raw model response saved to disk and export it in the chosen
caption format. The response may be fenced in a markdown code block,
truncated mid-array, or otherwise malformed; every recovery strategy is
tried before giving up.

Examples:
  lekha convert response.json
  lekha convert response.txt --format ttml
  lekha convert response.json -f vtt --granularity word -o out.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		StringP("format", "f", "srt", "Output format (txt, json, lrc, srt, vtt, ttml)")
	convertCmd.Flags().
		String("granularity", "line", "Transcript granularity (line, word)")
	convertCmd.Flags().
		String("text", "original", "Text track to render (original, translated)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	formatStr, _ := cmd.Flags().GetString("format")
	granularityStr, _ := cmd.Flags().GetString("granularity")
	textStr, _ := cmd.Flags().GetString("text")
	outputPath, _ := cmd.Flags().GetString("output")

	format, err := export.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	granularity, err := parseGranularity(granularityStr)
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

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read response file: %w", err)
	}

	records, err := repair.Records(string(raw))
	if err != nil {
		return fmt.Errorf("could not recover segments from %s: %w", inputPath, err)
	}
	logger.Infow("Recovered segment records", "count", len(records))

	records = segment.Flatten(records, granularity)
	segs := segment.NormalizeWithLimits(records, cfg.Limits(granularity))

	content, err := export.Render(format, segs, exportOptions(cfg, kind, granularity))
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", format, err)
	}

	if outputPath == "" {
		baseName := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outputPath = baseName + export.Extension(format)
	}

	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Captions written: %s\n", absOutput)
	fmt.Printf("  Segments: %d\n", len(segs))

	return nil
}
