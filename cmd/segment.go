package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"readalong/internal/pipeline"
	"readalong/internal/worker"

	"github.com/spf13/cobra"
)

var segmentCmd = &cobra.Command{
	Use:   "segment <request-file>",
	Short: "Segment one word-timed request into a follow-along transcript",
	Long: `Segment reads one request file (native, ElevenLabs Scribe, Whisper or Azure
Speech JSON) and writes the transcript JSON to --output, or to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runSegment,
}

var (
	segmentFlags  tuning
	segmentOutput string
)

func init() {
	segmentFlags.register(segmentCmd.Flags())
	segmentCmd.Flags().StringVarP(&segmentOutput, "output", "o", "", "output path (default: stdout)")

	rootCmd.AddCommand(segmentCmd)
}

func runSegment(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	cfg, err := segmentFlags.resolve(cmd)
	if err != nil {
		return err
	}
	seg, format, err := segmentFlags.segmenter(cfg)
	if err != nil {
		return err
	}

	t, err := worker.SegmentFile(inputPath, worker.Options{
		Format:    format,
		Language:  cfg.Language,
		Strict:    segmentFlags.strict,
		Segmenter: seg,
	})
	if err != nil {
		return err
	}

	st := pipeline.Stats(t)
	slog.Debug("segmented",
		"lines", st.Lines,
		"words", st.Words,
		"min_words", st.MinWordsPerLine,
		"max_words", st.MaxWordsPerLine)

	if segmentOutput == "" {
		return worker.WriteTranscript(cmd.OutOrStdout(), t)
	}
	f, err := os.Create(segmentOutput)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := worker.WriteTranscript(f, t); err != nil {
		f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	slog.Info("transcript saved", "path", segmentOutput)
	return nil
}
