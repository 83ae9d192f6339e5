package pipeline

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var reNumber = regexp.MustCompile(`^\d+([.,]\d+)*$`)

// classifier aligns timed words against the request text and derives each
// word's punctuation, abbreviation, number and sentence-end signals.
type classifier struct {
	text    string
	lexicon *Lexicon
	helper  *guardedHelper
	cursor  int
}

func newClassifier(text string, lexicon *Lexicon, helper *guardedHelper) *classifier {
	return &classifier{text: text, lexicon: lexicon, helper: helper}
}

func (c *classifier) classify(words []timedWord) []AnnotatedWord {
	gaps := gapsAfter(words)
	out := make([]AnnotatedWord, 0, len(words))

	for i, w := range words {
		aw := AnnotatedWord{
			Text:       w.Text,
			StartMs:    w.StartMs,
			EndMs:      w.EndMs,
			DurationMs: w.EndMs - w.StartMs,
			GapAfterMs: gaps[i],
			offset:     -1,
		}

		core := strings.TrimFunc(strings.TrimSpace(w.Text), isPunctOrSymbol)
		if start, end, ok := c.locate(core); ok {
			aw.offset = start
			aw.endOffset = end
			aw.PunctuationAfter = punctuationRunAt(c.text, end)
			c.cursor = end + len(aw.PunctuationAfter)
		} else {
			aw.PunctuationAfter = trailingPunctuation(w.Text)
		}

		mark, weight := representativeMark(aw.PunctuationAfter)

		aw.IsAbbreviation = c.lexicon.IsAbbreviation(w.Text)
		if !aw.IsAbbreviation && core != "" {
			aw.IsAbbreviation = c.helper.abbreviation(c.text, aw.offset, w.Text)
		}
		// A period split off into its own token belongs to the abbreviation
		// before it ("Mr" + ".").
		if core == "" && mark == '.' && len(out) > 0 && out[len(out)-1].IsAbbreviation {
			aw.IsAbbreviation = true
		}

		aw.IsNumber = isNumeric(w.Text)
		if !aw.IsAbbreviation {
			aw.PunctuationWeight = weight
		}

		if !aw.IsAbbreviation && !aw.IsNumber {
			switch {
			case isSentenceEndMark(mark):
				aw.IsSentenceEnd = true
			case weight == weightSentence && aw.offset >= 0:
				aw.IsSentenceEnd = c.helper.sentenceBoundary(c.text, aw.endOffset+len(aw.PunctuationAfter))
			}
		}

		out = append(out, aw)
	}
	return out
}

// locate finds the first unconsumed, case-insensitive, word-boundary match of
// word in the text and returns its byte range.
func (c *classifier) locate(word string) (int, int, bool) {
	if word == "" || c.cursor >= len(c.text) {
		return 0, 0, false
	}
	for from := c.cursor; from < len(c.text); {
		start, end := indexFold(c.text, word, from)
		if start < 0 {
			return 0, 0, false
		}
		if isBoundary(c.text, start, end) {
			return start, end, true
		}
		_, size := utf8.DecodeRuneInString(c.text[start:])
		from = start + size
	}
	return 0, 0, false
}

// indexFold is a case-insensitive strings.Index starting at byte from. It
// returns the matched byte range, which may differ in length from word.
func indexFold(text, word string, from int) (int, int) {
	n := utf8.RuneCountInString(word)
	for i := from; i < len(text); {
		end := i
		for k := 0; k < n && end < len(text); k++ {
			_, size := utf8.DecodeRuneInString(text[end:])
			end += size
		}
		if strings.EqualFold(text[i:end], word) {
			return i, end
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return -1, -1
}

// isBoundary reports whether text[start:end] is not glued to neighbouring
// letters or digits. Scripts written without spaces always qualify.
func isBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		first, _ := utf8.DecodeRuneInString(text[start:])
		if isWordRune(r) && !isSpacelessScript(r) && !isSpacelessScript(first) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		last, _ := utf8.DecodeLastRuneInString(text[:end])
		if isWordRune(r) && !isSpacelessScript(r) && !isSpacelessScript(last) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isSpacelessScript(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Thai, unicode.Lao, unicode.Khmer, unicode.Myanmar)
}

// isNumeric reports whether at least half of word's runes are digits and the
// digits and separators form a number ("3.14", "2024", "1,000", not "3rd").
func isNumeric(word string) bool {
	n := utf8.RuneCountInString(word)
	if n == 0 {
		return false
	}
	var b strings.Builder
	digits := 0
	for _, r := range word {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			digits++
		case r == '.' || r == ',':
			b.WriteRune(r)
		}
	}
	if digits*2 < n {
		return false
	}
	return reNumber.MatchString(b.String())
}
