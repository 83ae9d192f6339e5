// Package pipeline turns provider word timings into a follow-along
// transcript: lines of a few words, each with its own word timeline.
package pipeline

import (
	"fmt"
	"log/slog"
	"sync"

	"readalong/internal/config"
	"readalong/internal/nlp"
)

// Segmenter runs the segmentation pipeline with fixed settings. It holds no
// per-call state and is safe for concurrent use.
type Segmenter struct {
	settings config.SegmentSettings
	lexicon  *Lexicon
	helper   nlp.Helper
}

// Option customizes a Segmenter.
type Option func(*Segmenter)

// WithHelper pins the language helper. Without it the helper is chosen per
// call from the language hint.
func WithHelper(h nlp.Helper) Option {
	return func(s *Segmenter) { s.helper = h }
}

// WithLexicon replaces the default English lexicon.
func WithLexicon(l *Lexicon) Option {
	return func(s *Segmenter) { s.lexicon = l }
}

// NewSegmenter validates settings and builds a Segmenter.
func NewSegmenter(settings config.SegmentSettings, opts ...Option) (*Segmenter, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("new segmenter: %w", err)
	}
	s := &Segmenter{settings: settings, lexicon: DefaultLexicon()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

var defaultSegmenter = sync.OnceValue(func() *Segmenter {
	s, err := NewSegmenter(config.DefaultSegmentSettings())
	if err != nil {
		panic(err)
	}
	return s
})

// Segment runs the default Segmenter.
func Segment(text string, raw []RawWordTiming, language string) Transcript {
	return defaultSegmenter().Segment(text, raw, language)
}

// SegmentRequest runs Segment on a decoded request.
func (s *Segmenter) SegmentRequest(req Request) Transcript {
	return s.Segment(req.Text, req.Words, req.Language)
}

// Segment splits the timed words of text into lines. It never fails:
// malformed timings are logged and passed through, and helper failures only
// cost precision.
func (s *Segmenter) Segment(text string, raw []RawWordTiming, language string) Transcript {
	if len(raw) == 0 {
		return Transcript{Timeline: []TranscriptItem{}}
	}
	if err := ValidateTimings(raw); err != nil {
		slog.Warn("segmenting malformed timings", "err", err)
	}

	h := s.helper
	if h == nil {
		h = nlp.ForLanguage(language)
	}
	guarded := newGuardedHelper(h)

	timed := mergeHyphenContinuations(normalizeTimings(raw))
	words := newClassifier(text, s.lexicon, guarded).classify(timed)
	annotateMeaningGroups(words, guarded.spans(text))

	lines := segmentWords(words, &s.settings, s.lexicon)
	lines = (&merger{settings: &s.settings}).mergeLines(lines)
	lines = (&splitter{settings: &s.settings, lexicon: s.lexicon}).balanceLongSentences(lines)

	t := assemble(lines)
	slog.Debug("segmented transcript",
		"language", language,
		"raw_words", len(raw),
		"words", len(words),
		"lines", len(t.Timeline),
	)
	return t
}
