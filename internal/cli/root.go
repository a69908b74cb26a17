package cli

import (
	"github.com/spf13/cobra"

	"github.com/askhade/lekha/internal/logging"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lekha",
	Short: "Repair AI transcripts into clean caption files",
	Long: `Lekha turns the unreliable timed transcripts produced by generative
models into temporally consistent caption and lyric files.

It repairs malformed or truncated model responses, enforces monotonic
timestamps, groups words into readable cues, and exports TXT, JSON,
LRC, SRT, VTT, and TTML.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "TOML file overriding repair and grouping thresholds")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Language code (e.g., en, es, fr)")
}
