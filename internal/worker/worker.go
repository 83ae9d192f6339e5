package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"readalong/internal/input"
	"readalong/internal/pipeline"
)

// outputSuffix replaces the input extension on written transcripts.
const outputSuffix = ".transcript.json"

// Options configures a segmentation run.
type Options struct {
	Inputs        []string
	OutputDir     string
	Format        input.Format
	Language      string
	Strict        bool
	NoAsync       bool
	MaxConcurrent int
	Segmenter     *pipeline.Segmenter
}

// Result describes one written transcript.
type Result struct {
	Input  string
	Output string
	Stats  pipeline.TranscriptStats
}

// Run segments every input file and writes a transcript next to it, or into
// OutputDir when set. Results come back in input order.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if opts.Segmenter == nil {
		return nil, fmt.Errorf("worker: no segmenter configured")
	}
	if len(opts.Inputs) == 0 {
		return nil, nil
	}
	slog.Info("segmenting files", "count", len(opts.Inputs))

	if !opts.NoAsync && len(opts.Inputs) > 1 && opts.MaxConcurrent > 1 {
		return processConcurrent(ctx, opts)
	}
	return processSequential(ctx, opts)
}

// OutputPath returns where the transcript for inputPath is written.
func OutputPath(inputPath, outputDir string) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	if outputDir != "" {
		base = filepath.Join(outputDir, filepath.Base(base))
	}
	return base + outputSuffix
}

// SegmentFile decodes one request file and segments it.
func SegmentFile(path string, opts Options) (pipeline.Transcript, error) {
	req, err := input.ReadFile(path, opts.Format)
	if err != nil {
		return pipeline.Transcript{}, err
	}
	if opts.Language != "" {
		req.Language = opts.Language
	}
	if opts.Strict {
		if err := pipeline.ValidateTimings(req.Words); err != nil {
			return pipeline.Transcript{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	return opts.Segmenter.SegmentRequest(req), nil
}

func processFile(path string, opts Options) (Result, error) {
	t, err := SegmentFile(path, opts)
	if err != nil {
		return Result{}, err
	}
	out := OutputPath(path, opts.OutputDir)
	if err := writeJSON(out, t); err != nil {
		return Result{}, fmt.Errorf("write transcript: %w", err)
	}

	res := Result{Input: path, Output: out, Stats: pipeline.Stats(t)}
	slog.Debug("transcript written",
		"input", filepath.Base(path),
		"output", out,
		"lines", res.Stats.Lines,
		"words", res.Stats.Words,
		"mean_words", fmt.Sprintf("%.1f", res.Stats.MeanWords))
	return res, nil
}

// WriteTranscript encodes t as indented JSON.
func WriteTranscript(w io.Writer, t pipeline.Transcript) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(t)
}

func writeJSON(path string, t pipeline.Transcript) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteTranscript(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func checkCanceled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
