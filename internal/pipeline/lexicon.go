package pipeline

import (
	"strings"
	"sync"
	"unicode"
)

// Lexicon holds the fixed word sets the classifier and scorer consult. It is
// built once and never mutated, so one value is shared by every call.
type Lexicon struct {
	abbreviations     map[string]struct{}
	ambiguousAbbrevs  map[string]struct{}
	noBreakWords      map[string]struct{}
	relativeOpeners   map[string]struct{}
	questionOpeners   map[string]struct{}
	mainClauseOpeners map[string]struct{}
}

// DefaultLexicon returns the shared English lexicon.
var DefaultLexicon = sync.OnceValue(newDefaultLexicon)

func newDefaultLexicon() *Lexicon {
	return &Lexicon{
		abbreviations: setOf(
			// titles
			"mr", "mrs", "ms", "dr", "prof", "sr", "jr", "st", "gen", "col",
			"capt", "lt", "sgt", "hon", "gov", "sen", "rep", "pres", "mt", "ft",
			// time and date
			"pm", "bc", "bce", "ce", "jan", "feb", "apr", "jun", "jul", "aug",
			"sep", "sept", "oct", "nov", "dec", "mon", "tue", "tues", "thu", "thur",
			"thurs", "fri",
			// places
			"usa", "uk", "eu", "un", "nyc", "dc", "ave", "blvd", "rd",
			// generic
			"etc", "vs", "e.g", "eg", "i.e", "ie", "inc", "ltd", "co", "corp", "llc",
			"dept", "est", "vol", "pp", "al", "cf", "viz",
			// academic degrees
			"phd", "ph.d", "md", "m.d", "ba", "b.a", "bsc", "msc", "mba", "dds", "jd",
			// units
			"km", "kg", "cm", "mm", "mg", "ml", "lb", "lbs", "oz", "mi", "mph", "kph",
			"hr", "hrs", "sec", "yr", "yrs",
			// approximations and bounds
			"ca", "approx", "max", "min",
		),
		// Entries that are also common words only count when written in
		// capitals or with internal dots ("U.S.", "AM", "a.m.").
		ambiguousAbbrevs: setOf(
			"us", "am", "ad", "in", "no", "ma", "mar", "sat", "sun", "wed", "la", "fig", "rev",
		),
		noBreakWords: setOf(
			"a", "an", "the",
			"of", "in", "on", "at", "to", "for", "by", "with", "from", "into", "onto",
			"upon", "about", "as", "per", "via",
			"my", "your", "his", "her", "its", "our", "their",
			"and", "or", "nor",
		),
		relativeOpeners:   setOf("who", "which", "that", "whom", "whose"),
		questionOpeners:   setOf("what", "how", "why", "when", "where"),
		mainClauseOpeners: setOf("i", "you", "he", "she", "it", "we", "they", "this", "that", "these", "those"),
	}
}

func setOf(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

func has(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}

// IsAbbreviation reports whether word is a known abbreviation. Trailing dots
// and surrounding punctuation are ignored.
func (l *Lexicon) IsAbbreviation(word string) bool {
	core := strings.TrimRight(trimNonDotPunct(word), ".")
	if core == "" {
		return false
	}
	lower := strings.ToLower(core)
	undotted := strings.ReplaceAll(lower, ".", "")
	if has(l.abbreviations, lower) || has(l.abbreviations, undotted) {
		return true
	}
	if has(l.ambiguousAbbrevs, undotted) {
		return strings.Contains(core, ".") || isAllUpper(core)
	}
	return false
}

// IsNoBreakWord reports whether a pause after word is usually a disfluency.
func (l *Lexicon) IsNoBreakWord(word string) bool {
	return has(l.noBreakWords, cleanWord(word))
}

func (l *Lexicon) isRelativeOpener(word string) bool   { return has(l.relativeOpeners, cleanWord(word)) }
func (l *Lexicon) isQuestionOpener(word string) bool   { return has(l.questionOpeners, cleanWord(word)) }
func (l *Lexicon) isMainClauseOpener(word string) bool { return has(l.mainClauseOpeners, cleanWord(word)) }

// cleanWord lowercases word and strips surrounding punctuation.
func cleanWord(word string) string {
	return strings.ToLower(strings.TrimFunc(word, isPunctOrSymbol))
}

func trimNonDotPunct(word string) string {
	return strings.TrimFunc(strings.TrimSpace(word), func(r rune) bool {
		return r != '.' && isPunctOrSymbol(r)
	})
}

func isPunctOrSymbol(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func isAllUpper(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters > 1
}
