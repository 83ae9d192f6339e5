package nlp

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// Unicode answers sentence-boundary queries with UAX #29 text segmentation.
// It knows nothing about abbreviations, entities or meaning groups.
type Unicode struct{}

func (Unicode) DetectAbbreviation(string, int, string) (bool, error) { return false, nil }
func (Unicode) DetectEntities(string) ([]Span, error)                 { return nil, nil }
func (Unicode) DetectMeaningGroups(string) ([]Span, error)            { return nil, nil }

// IsSentenceBoundary reports whether a UAX #29 sentence ends at offset,
// ignoring whitespace the segmenter attaches to the end of a sentence.
func (Unicode) IsSentenceBoundary(text string, offset int) (bool, error) {
	if offset < 0 || offset > len(text) {
		return false, fmt.Errorf("offset %d out of range [0,%d]", offset, len(text))
	}
	for _, end := range sentenceEnds(text) {
		if end == offset {
			return true, nil
		}
		if end > offset {
			break
		}
	}
	return false, nil
}

// sentenceEnds returns the byte offset just past the last non-space rune of
// every sentence in text.
func sentenceEnds(text string) []int {
	var ends []int
	pos := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var sentence string
		sentence, rest, state = uniseg.FirstSentenceInString(rest, state)
		trimmed := strings.TrimRight(sentence, " \t\r\n\u00a0\u3000")
		if trimmed != "" {
			ends = append(ends, pos+len(trimmed))
		}
		pos += len(sentence)
	}
	return ends
}
