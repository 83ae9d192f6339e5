// Package nlp holds the optional language helpers consulted by the segmenter.
//
// Every helper is a pure query over the sentence text. Callers must treat any
// error (or panic) as "nothing detected"; the segmenter never depends on a
// helper for correctness, only for precision.
package nlp

import "readalong/internal/config"

// Span is a half-open byte range [Start, End) of the analysed text.
type Span struct {
	Start int
	End   int
	Kind  string
}

// Span kinds.
const (
	KindEntity        = "entity"
	KindNounPhrase    = "noun_phrase"
	KindPreposition   = "prepositional_phrase"
	KindRelative      = "relative_clause"
	KindInfinitive    = "infinitive_phrase"
	KindProperNounRun = "proper_noun_run"
)

// Helper is the optional natural-language capability.
type Helper interface {
	// DetectAbbreviation reports whether word, found at byte offset in text
	// (or -1 when it could not be located), is an abbreviation in context.
	DetectAbbreviation(text string, offset int, word string) (bool, error)
	// DetectEntities returns spans of proper nouns, places and organizations.
	DetectEntities(text string) ([]Span, error)
	// DetectMeaningGroups returns spans of multi-word semantic units.
	DetectMeaningGroups(text string) ([]Span, error)
	// IsSentenceBoundary reports whether a sentence ends at byte offset.
	IsSentenceBoundary(text string, offset int) (bool, error)
}

// SpanDetector is implemented by helpers that find entities and meaning
// groups in one pass over the text.
type SpanDetector interface {
	DetectSpans(text string) ([]Span, error)
}

// Noop detects nothing. It is selected when no language hint is given.
type Noop struct{}

func (Noop) DetectAbbreviation(string, int, string) (bool, error) { return false, nil }
func (Noop) DetectEntities(string) ([]Span, error)                 { return nil, nil }
func (Noop) DetectMeaningGroups(string) ([]Span, error)            { return nil, nil }
func (Noop) IsSentenceBoundary(string, int) (bool, error)          { return false, nil }

// ForLanguage selects the helper for a language tag. English gets the full
// helper, any other recognised language gets Unicode sentence boundaries,
// and an empty or unknown tag gets Noop.
func ForLanguage(tag string) Helper {
	switch {
	case config.IsEnglish(tag):
		return English{}
	case config.BaseLanguage(tag) != "":
		return Unicode{}
	default:
		return Noop{}
	}
}

var (
	_ Helper = Noop{}
	_ Helper = Unicode{}
	_ Helper = English{}

	_ SpanDetector = English{}
)
