package cli

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/askhade/lekha/internal/config"
	"github.com/askhade/lekha/internal/cue"
	"github.com/askhade/lekha/internal/repair"
	"github.com/askhade/lekha/internal/segment"
	"github.com/askhade/lekha/internal/textutil"
	"github.com/askhade/lekha/internal/timecode"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [raw_response.json]",
	Short: "Show how a raw model response would be repaired and grouped",
	Long: `Parse a raw model response, run timestamp normalization, and print
the resulting cue table without writing any output file.

Useful for diagnosing malformed responses: the table shows the repaired
timeline and which words were grouped into each cue.

Examples:
  lekha inspect response.json
  lekha inspect response.json --granularity word`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().
		StringP("granularity", "g", "line", "Timing granularity of the response (line, word)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	rawPath := args[0]

	granularityStr, _ := cmd.Flags().GetString("granularity")
	granularity, err := parseGranularity(granularityStr)
	if err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(rawPath)
	if err != nil {
		return err
	}

	records, err := repair.Records(string(raw))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", rawPath, err)
	}

	segs := segment.NormalizeWithLimits(
		segment.Flatten(records, granularity),
		cfg.Limits(granularity),
	)
	groups := cue.BuildWithThresholds(segs, segment.Original, cfg.Thresholds())

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		t.SetStyle(table.StyleDefault)
		t.Style().Options.DrawBorder = false
	}
	t.Style().Format.Header = text.FormatTitle

	t.AppendHeader(table.Row{"#", "Start", "End", "Segments", "Text"})
	for i, g := range groups {
		line := ""
		for _, m := range g.Members {
			line = textutil.JoinAdjacent(line, m.Text)
		}
		t.AppendRow(table.Row{
			i + 1,
			timecode.Clock(g.Start()),
			timecode.Clock(g.End()),
			len(g.Members),
			textutil.CollapseNewlines(line),
		})
	}
	t.Render()

	fmt.Printf("\n%d records parsed, %d segments after normalization, %d cues\n",
		len(records), len(segs), len(groups))
	return nil
}
