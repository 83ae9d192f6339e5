package cmd

import (
	"testing"

	"readalong/internal/input"

	"github.com/spf13/cobra"
)

func newTuningCmd(t *testing.T, args ...string) (*cobra.Command, *tuning) {
	t.Helper()
	var tn tuning
	c := &cobra.Command{Use: "x"}
	tn.register(c.Flags())
	if err := c.Flags().Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return c, &tn
}

func TestTuningResolve_Precedence(t *testing.T) {
	t.Setenv("READALONG_MAX_WORDS", "15")
	t.Setenv("READALONG_PREFERRED_WORDS", "7")

	c, tn := newTuningCmd(t, "--preferred-words", "5", "--language", "de")
	cfg, err := tn.resolve(c)
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}
	if cfg.MaxWordsPerSegment != 15 {
		t.Errorf("MaxWordsPerSegment = %d, want 15 from env", cfg.MaxWordsPerSegment)
	}
	if cfg.PreferredWordsPerSegment != 5 {
		t.Errorf("PreferredWordsPerSegment = %d, want 5 from flag", cfg.PreferredWordsPerSegment)
	}
	if cfg.Language != "de" {
		t.Errorf("Language = %q, want de", cfg.Language)
	}
	if cfg.PauseThresholdMs != 250 {
		t.Errorf("PauseThresholdMs = %d, want default 250", cfg.PauseThresholdMs)
	}
}

func TestTuningResolve_BadEnv(t *testing.T) {
	t.Setenv("READALONG_PAUSE_MS", "soon")
	c, tn := newTuningCmd(t)
	if _, err := tn.resolve(c); err == nil {
		t.Error("resolve() should fail on unparseable environment")
	}
}

func TestTuningSegmenter(t *testing.T) {
	c, tn := newTuningCmd(t, "--format", "whisper")
	cfg, err := tn.resolve(c)
	if err != nil {
		t.Fatal(err)
	}
	seg, format, err := tn.segmenter(cfg)
	if err != nil {
		t.Fatalf("segmenter() error = %v", err)
	}
	if seg == nil || format != input.FormatWhisper {
		t.Errorf("segmenter() = %v, %q", seg, format)
	}

	c, tn = newTuningCmd(t, "--max-words", "3")
	if cfg, err = tn.resolve(c); err != nil {
		t.Fatal(err)
	}
	if _, _, err := tn.segmenter(cfg); err == nil {
		t.Error("max below preferred should be rejected")
	}

	c, tn = newTuningCmd(t, "--format", "srt")
	if cfg, err = tn.resolve(c); err != nil {
		t.Fatal(err)
	}
	if _, _, err := tn.segmenter(cfg); err == nil {
		t.Error("unknown format should be rejected")
	}
}
