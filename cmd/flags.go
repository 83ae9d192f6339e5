package cmd

import (
	"fmt"

	"readalong/internal/config"
	"readalong/internal/input"
	"readalong/internal/pipeline"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// tuning holds the flags shared by every segmenting command.
type tuning struct {
	language  string
	format    string
	strict    bool
	minWords  int
	prefWords int
	maxWords  int
	lookback  int
	pauseMs   int64
	longMs    int64
	mergeGap  int64
}

func (t *tuning) register(fs *pflag.FlagSet) {
	d := config.Default()

	fs.StringVarP(&t.language, "language", "l", "", "language hint, overrides the request (en, de, ja, ...)")
	fs.StringVar(&t.format, "format", string(input.FormatAuto), "input format: auto, native, scribe, whisper, azure")
	fs.BoolVar(&t.strict, "strict", false, "reject requests with unordered or negative word timings")

	fs.IntVar(&t.minWords, "min-words", d.MinWordsPerSegment, "minimum words per line")
	fs.IntVar(&t.prefWords, "preferred-words", d.PreferredWordsPerSegment, "preferred words per line")
	fs.IntVar(&t.maxWords, "max-words", d.MaxWordsPerSegment, "maximum words per line")
	fs.IntVar(&t.lookback, "lookback", d.LookbackWords, "words searched backwards when splitting a long line")
	fs.Int64Var(&t.pauseMs, "pause-ms", d.PauseThresholdMs, "pause threshold in milliseconds")
	fs.Int64Var(&t.longMs, "long-pause-ms", d.LongPauseThresholdMs, "long pause threshold in milliseconds")
	fs.Int64Var(&t.mergeGap, "merge-gap-ms", d.MergeGapMs, "max gap for merging a one-word line across punctuation")
}

// resolve layers defaults, READALONG_* environment overrides and explicitly
// set flags, in that order.
func (t *tuning) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if err := cfg.FromEnv(); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	fs := cmd.Flags()
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("language", func() { cfg.Language = t.language })
	set("min-words", func() { cfg.MinWordsPerSegment = t.minWords })
	set("preferred-words", func() { cfg.PreferredWordsPerSegment = t.prefWords })
	set("max-words", func() { cfg.MaxWordsPerSegment = t.maxWords })
	set("lookback", func() { cfg.LookbackWords = t.lookback })
	set("pause-ms", func() { cfg.PauseThresholdMs = t.pauseMs })
	set("long-pause-ms", func() { cfg.LongPauseThresholdMs = t.longMs })
	set("merge-gap-ms", func() { cfg.MergeGapMs = t.mergeGap })
	return cfg, nil
}

// segmenter builds the configured Segmenter and input format.
func (t *tuning) segmenter(cfg *config.Config) (*pipeline.Segmenter, input.Format, error) {
	format, err := input.ParseFormat(t.format)
	if err != nil {
		return nil, "", err
	}
	seg, err := pipeline.NewSegmenter(cfg.SegmentSettings)
	if err != nil {
		return nil, "", err
	}
	return seg, format, nil
}
