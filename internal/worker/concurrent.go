package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// progressInterval throttles batch progress logs.
const progressInterval = 2 * time.Second

// processConcurrent segments files with bounded parallelism. If some files
// finished before a failure, the rest are retried one at a time.
func processConcurrent(ctx context.Context, opts Options) ([]Result, error) {
	total := len(opts.Inputs)
	slog.Info("starting concurrent processing",
		"files", total,
		"max_concurrent", opts.MaxConcurrent)

	var (
		results  = make([]Result, total)
		done     = make([]bool, total)
		finished atomic.Int64
		progress = rate.Sometimes{First: 1, Interval: progressInterval}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.MaxConcurrent)

	for i, path := range opts.Inputs {
		g.Go(func() error {
			if err := checkCanceled(gctx); err != nil {
				return err
			}
			res, err := processFile(path, opts)
			if err != nil {
				return fmt.Errorf("file %d/%d: %w", i+1, total, err)
			}
			results[i], done[i] = res, true

			n := finished.Add(1)
			progress.Do(func() {
				slog.Info("batch progress", "done", fmt.Sprintf("%d/%d", n, total))
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if completed := finished.Load(); completed > 0 {
			slog.Warn("concurrent processing partially failed, falling back to sequential",
				"completed", completed, "total", total, "err", err)
			return fallbackToSequential(ctx, opts, results, done)
		}
		return nil, err
	}

	slog.Info("batch completed", "files", total)
	return results, nil
}

// fallbackToSequential finishes the files the concurrent pass left undone.
func fallbackToSequential(ctx context.Context, opts Options, results []Result, done []bool) ([]Result, error) {
	for i, path := range opts.Inputs {
		if done[i] {
			continue
		}
		if err := checkCanceled(ctx); err != nil {
			return nil, err
		}

		slog.Info("sequential fallback processing file", "file", fmt.Sprintf("%d/%d", i+1, len(opts.Inputs)))

		res, err := processFile(path, opts)
		if err != nil {
			return nil, fmt.Errorf("sequential fallback file %d/%d: %w", i+1, len(opts.Inputs), err)
		}
		results[i] = res
	}
	return results, nil
}
