package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"readalong/internal/config"
	"readalong/internal/worker"

	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch <request-file>...",
	Short: "Segment many request files concurrently",
	Long: `Batch segments every request file and writes <input>.transcript.json next to
it (or into --output-dir). Files are processed concurrently unless --no-async
is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

var (
	batchFlags     tuning
	batchOutputDir string
	noAsync        bool
	maxConcurrent  int
)

func init() {
	batchFlags.register(batchCmd.Flags())
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "", "directory for transcripts (default: beside each input)")
	batchCmd.Flags().BoolVar(&noAsync, "no-async", false, "process files one at a time")
	batchCmd.Flags().IntVarP(&maxConcurrent, "max-concurrent", "j", config.Default().MaxConcurrent, "max files processed at once")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	for _, p := range args {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", p)
		}
	}
	if batchOutputDir != "" {
		if err := os.MkdirAll(batchOutputDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	cfg, err := batchFlags.resolve(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-concurrent") {
		cfg.MaxConcurrent = maxConcurrent
	}
	seg, format, err := batchFlags.segmenter(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := worker.Run(ctx, worker.Options{
		Inputs:        args,
		OutputDir:     batchOutputDir,
		Format:        format,
		Language:      cfg.Language,
		Strict:        batchFlags.strict,
		NoAsync:       noAsync,
		MaxConcurrent: cfg.MaxConcurrent,
		Segmenter:     seg,
	})
	if err != nil {
		return err
	}

	if !quiet {
		slog.Info("done", "transcripts", len(results))
	}
	return nil
}
