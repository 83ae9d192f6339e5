package nlp

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"
)

// Token is a word with its Penn Treebank part-of-speech tag.
type Token struct {
	Text string
	Tag  string
}

// Tagger tags text and returns the surface text of its named entities.
type Tagger interface {
	Tag(text string) (tokens []Token, entities []string, err error)
}

// English detects abbreviations from context, named entities and meaning
// groups (prepositional, relative and infinitive phrases, short noun
// phrases). Tagger defaults to the shared prose model.
type English struct {
	Unicode
	Tagger Tagger
}

func (e English) tagger() Tagger {
	if e.Tagger != nil {
		return e.Tagger
	}
	return proseTagger{}
}

// proseModel is loaded once; every document reuses it.
var proseModel = sync.OnceValues(func() (*prose.Model, error) {
	doc, err := prose.NewDocument("Load the model.", prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("load prose model: %w", err)
	}
	return doc.Model, nil
})

type proseTagger struct{}

func (proseTagger) Tag(text string) ([]Token, []string, error) {
	model, err := proseModel()
	if err != nil {
		return nil, nil, err
	}
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false), prose.UsingModel(model))
	if err != nil {
		return nil, nil, fmt.Errorf("prose document: %w", err)
	}

	tagged := doc.Tokens()
	toks := make([]Token, 0, len(tagged))
	for _, t := range tagged {
		toks = append(toks, Token{Text: t.Text, Tag: t.Tag})
	}
	var ents []string
	for _, e := range doc.Entities() {
		ents = append(ents, e.Text)
	}
	return toks, ents, nil
}

var reInitialism = regexp.MustCompile(`^(?:[A-Za-z]\.){2,}[A-Za-z]?\.?$`)

// DetectAbbreviation recognises initialisms ("U.S.", "e.g."), single-letter
// initials in names ("John F. Kennedy"), and, before a lowercase word,
// dotted forms ("Ph.D. students") or capitalised vowel-less short forms
// ("Blvd. was").
func (English) DetectAbbreviation(text string, offset int, word string) (bool, error) {
	w := strings.TrimSpace(word)
	if w == "" {
		return false, nil
	}
	if reInitialism.MatchString(w) {
		return true, nil
	}
	if offset < 0 || offset > len(text) {
		return false, nil
	}

	core := strings.TrimRight(w, ".")
	after := offset + len(core)
	if after >= len(text) || text[after] != '.' {
		return false, nil
	}
	next := strings.TrimLeft(text[after+1:], " \t")
	if next == "" {
		return false, nil
	}
	r, _ := utf8.DecodeRuneInString(next)

	n := utf8.RuneCountInString(core)
	first, size := utf8.DecodeRuneInString(core)
	if n == 1 && unicode.IsUpper(first) && unicode.IsUpper(r) {
		return true, nil
	}
	if !unicode.IsLower(r) {
		return false, nil
	}
	if strings.Contains(core, ".") {
		return true, nil
	}
	return n >= 2 && n <= 4 && unicode.IsUpper(first) && isLowerConsonants(core[size:]), nil
}

// isLowerConsonants reports whether s is lowercase letters without vowels.
func isLowerConsonants(s string) bool {
	for _, r := range s {
		if !unicode.IsLower(r) || strings.ContainsRune("aeiouy", r) {
			return false
		}
	}
	return s != ""
}

// DetectEntities returns entity spans from the tagger plus runs of
// consecutive proper-noun tokens.
func (e English) DetectEntities(text string) ([]Span, error) {
	toks, ents, err := e.tagger().Tag(text)
	if err != nil {
		return nil, err
	}
	return entitySpans(text, locateTokens(text, toks), ents), nil
}

// DetectMeaningGroups tags the text and applies phrase rules to the tags.
func (e English) DetectMeaningGroups(text string) ([]Span, error) {
	toks, _, err := e.tagger().Tag(text)
	if err != nil {
		return nil, err
	}
	return groupsFromTags(locateTokens(text, toks)), nil
}

// DetectSpans returns entities and meaning groups from a single tagging pass.
func (e English) DetectSpans(text string) ([]Span, error) {
	toks, ents, err := e.tagger().Tag(text)
	if err != nil {
		return nil, err
	}
	located := locateTokens(text, toks)
	spans := append(entitySpans(text, located, ents), groupsFromTags(located)...)
	sortSpans(spans)
	return spans, nil
}

func entitySpans(text string, toks []token, ents []string) []Span {
	var spans []Span
	cursor := 0
	for _, ent := range ents {
		idx := strings.Index(text[cursor:], ent)
		if idx < 0 || ent == "" {
			continue
		}
		start := cursor + idx
		spans = append(spans, Span{Start: start, End: start + len(ent), Kind: KindEntity})
		cursor = start + len(ent)
	}
	spans = append(spans, properNounRuns(toks)...)
	sortSpans(spans)
	return spans
}

// token is a tagged token with its byte range in the source text.
type token struct {
	Text  string
	Tag   string
	Start int
	End   int
}

func locateTokens(text string, toks []Token) []token {
	out := make([]token, 0, len(toks))
	cursor := 0
	for _, t := range toks {
		idx := strings.Index(text[cursor:], t.Text)
		if idx < 0 {
			continue
		}
		start := cursor + idx
		out = append(out, token{Text: t.Text, Tag: t.Tag, Start: start, End: start + len(t.Text)})
		cursor = start + len(t.Text)
	}
	return out
}

// Subordinators tagged IN that open clauses, not prepositional phrases.
var subordinators = map[string]bool{
	"that": true, "if": true, "because": true, "while": true, "although": true,
	"though": true, "whether": true, "since": true, "unless": true, "as": true,
	"than": true, "so": true,
}

const maxGroupTokens = 5

func isNoun(tag string) bool     { return strings.HasPrefix(tag, "NN") || tag == "PRP" }
func isModifier(tag string) bool { return tag == "DT" || tag == "PRP$" || tag == "CD" || strings.HasPrefix(tag, "JJ") || tag == "POS" }
func isWord(tag string) bool     { return tag != "" && (unicode.IsLetter(rune(tag[0])) || tag == "$") }

// groupsFromTags applies the phrase rules. Tokens consumed by a
// prepositional, relative or infinitive phrase are not reused for noun
// phrases.
func groupsFromTags(toks []token) []Span {
	var spans []Span
	used := make([]bool, len(toks))

	mark := func(i, j int, kind string) {
		spans = append(spans, Span{Start: toks[i].Start, End: toks[j].End, Kind: kind})
		for k := i; k <= j; k++ {
			used[k] = true
		}
	}

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch {
		case t.Tag == "IN" && !subordinators[strings.ToLower(t.Text)]:
			if j := nounPhraseEnd(toks, i+1); j > i && j-i+1 <= maxGroupTokens {
				mark(i, j, KindPreposition)
				i = j
			}
		case t.Tag == "TO" && i+1 < len(toks) && toks[i+1].Tag == "VB":
			j := i + 1
			if j+1 < len(toks) && toks[j+1].Tag == "RP" {
				j++
			}
			mark(i, j, KindInfinitive)
			i = j
		case t.Tag == "WDT" || t.Tag == "WP" || t.Tag == "WP$":
			j := i
			for j+1 < len(toks) && j+1-i < maxGroupTokens-1 && isWord(toks[j+1].Tag) {
				j++
			}
			for j > i && !canEndGroup(toks, j) {
				j--
			}
			if j > i {
				mark(i, j, KindRelative)
				i = j
			}
		}
	}

	for i := 0; i < len(toks); i++ {
		if used[i] || toks[i].Tag != "DT" {
			continue
		}
		j := nounPhraseEnd(toks, i)
		if j > i && j-i+1 <= maxGroupTokens && !anyUsed(used, i, j) {
			mark(i, j, KindNounPhrase)
			i = j
		}
	}

	sortSpans(spans)
	return spans
}

// nounPhraseEnd returns the index of the last noun of a noun phrase that
// starts at i (modifiers then one or more nouns), or -1.
func nounPhraseEnd(toks []token, i int) int {
	j := i
	for j < len(toks) && isModifier(toks[j].Tag) {
		j++
	}
	end := -1
	for j < len(toks) && isNoun(toks[j].Tag) {
		end = j
		j++
	}
	return end
}

// canEndGroup reports whether a group may close after token j: never on a
// function word, nor on a modifier whose noun follows.
func canEndGroup(toks []token, j int) bool {
	switch toks[j].Tag {
	case "DT", "IN", "TO", "CC", "PRP$", "POS", "MD", "WDT", "WP", "WP$":
		return false
	}
	if isModifier(toks[j].Tag) && j+1 < len(toks) && isNoun(toks[j+1].Tag) {
		return false
	}
	return true
}

func anyUsed(used []bool, i, j int) bool {
	for k := i; k <= j; k++ {
		if used[k] {
			return true
		}
	}
	return false
}

// properNounRuns returns runs of two to four consecutive NNP tokens.
func properNounRuns(toks []token) []Span {
	var spans []Span
	for i := 0; i < len(toks); {
		if !strings.HasPrefix(toks[i].Tag, "NNP") {
			i++
			continue
		}
		j := i
		for j+1 < len(toks) && strings.HasPrefix(toks[j+1].Tag, "NNP") && j+1-i < 4 {
			j++
		}
		if j > i {
			spans = append(spans, Span{Start: toks[i].Start, End: toks[j].End, Kind: KindProperNounRun})
		}
		i = j + 1
	}
	return spans
}

func sortSpans(spans []Span) {
	sort.SliceStable(spans, func(a, b int) bool {
		if spans[a].Start != spans[b].Start {
			return spans[a].Start < spans[b].Start
		}
		return spans[a].End > spans[b].End
	})
}
