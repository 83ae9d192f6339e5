package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// ErrInvalidSettings is returned by Validate for incoherent segment settings.
var ErrInvalidSettings = errors.New("invalid segment settings")

// SegmentSettings holds all follow-along segmentation parameters.
type SegmentSettings struct {
	PauseThresholdMs         int64
	LongPauseThresholdMs     int64
	MergeGapMs               int64
	MinWordsPerSegment       int
	PreferredWordsPerSegment int
	MaxWordsPerSegment       int
	LookbackWords            int
}

// Config holds the full application configuration.
type Config struct {
	SegmentSettings

	Language      string
	MaxConcurrent int
}

// Default returns a Config with the production defaults.
func Default() *Config {
	return &Config{
		SegmentSettings: DefaultSegmentSettings(),
		MaxConcurrent:   4,
	}
}

// DefaultSegmentSettings returns the segmentation thresholds used when the
// caller does not supply any.
func DefaultSegmentSettings() SegmentSettings {
	return SegmentSettings{
		PauseThresholdMs:         250,
		LongPauseThresholdMs:     500,
		MergeGapMs:               100,
		MinWordsPerSegment:       1,
		PreferredWordsPerSegment: 6,
		MaxWordsPerSegment:       12,
		LookbackWords:            5,
	}
}

// Validate checks that word bounds and pause thresholds are coherent.
func (s SegmentSettings) Validate() error {
	switch {
	case s.MinWordsPerSegment < 1:
		return fmt.Errorf("%w: min words must be >= 1", ErrInvalidSettings)
	case s.PreferredWordsPerSegment < s.MinWordsPerSegment:
		return fmt.Errorf("%w: preferred words must be >= min words", ErrInvalidSettings)
	case s.MaxWordsPerSegment < s.PreferredWordsPerSegment:
		return fmt.Errorf("%w: max words must be >= preferred words", ErrInvalidSettings)
	case s.PauseThresholdMs <= 0:
		return fmt.Errorf("%w: pause threshold must be > 0", ErrInvalidSettings)
	case s.LongPauseThresholdMs < s.PauseThresholdMs:
		return fmt.Errorf("%w: long pause threshold must be >= pause threshold", ErrInvalidSettings)
	case s.LookbackWords < 1:
		return fmt.Errorf("%w: lookback must be >= 1", ErrInvalidSettings)
	case s.MergeGapMs < 0:
		return fmt.Errorf("%w: merge gap must be >= 0", ErrInvalidSettings)
	}
	return nil
}

// FromEnv overlays READALONG_* environment variables on top of c.
// Unparseable values are reported, not silently skipped.
func (c *Config) FromEnv() error {
	if v := os.Getenv("READALONG_LANGUAGE"); v != "" {
		c.Language = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"READALONG_MIN_WORDS", &c.MinWordsPerSegment},
		{"READALONG_PREFERRED_WORDS", &c.PreferredWordsPerSegment},
		{"READALONG_MAX_WORDS", &c.MaxWordsPerSegment},
		{"READALONG_LOOKBACK_WORDS", &c.LookbackWords},
		{"READALONG_MAX_CONCURRENT", &c.MaxConcurrent},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", e.key, err)
		}
		*e.dst = n
	}

	ms := []struct {
		key string
		dst *int64
	}{
		{"READALONG_PAUSE_MS", &c.PauseThresholdMs},
		{"READALONG_LONG_PAUSE_MS", &c.LongPauseThresholdMs},
		{"READALONG_MERGE_GAP_MS", &c.MergeGapMs},
	}
	for _, e := range ms {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parse %s: %w", e.key, err)
		}
		*e.dst = n
	}
	return nil
}
