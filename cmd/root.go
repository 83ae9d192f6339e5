package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "readalong",
	Short: "Segment word-timed transcripts into follow-along reading lines",
	Long: `Readalong turns provider word timings (ElevenLabs Scribe, Whisper, Azure
Speech or the native request format) into short, readable lines with nested
word timelines for karaoke-style highlighting.

Tuning defaults can be overridden with READALONG_* environment variables,
which are also read from a .env file in the working directory.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if err := godotenv.Load(); err == nil {
			slog.Debug("loaded .env")
		}
	},
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
}
