package worker

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
)

// processSequential segments files one at a time, stopping at the first error.
func processSequential(ctx context.Context, opts Options) ([]Result, error) {
	results := make([]Result, 0, len(opts.Inputs))

	for i, path := range opts.Inputs {
		if err := checkCanceled(ctx); err != nil {
			return results, err
		}

		slog.Info("processing file",
			"file", fmt.Sprintf("%d/%d", i+1, len(opts.Inputs)),
			"name", filepath.Base(path))

		res, err := processFile(path, opts)
		if err != nil {
			return results, fmt.Errorf("file %d/%d failed: %w", i+1, len(opts.Inputs), err)
		}
		results = append(results, res)
	}

	return results, nil
}
