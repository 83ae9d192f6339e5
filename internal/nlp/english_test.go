package nlp

import (
	"strings"
	"testing"
)

// tagged builds located tokens from "text/TAG" pairs separated by spaces.
func tagged(s string) (string, []token) {
	var b strings.Builder
	var toks []token
	for i, pair := range strings.Fields(s) {
		slash := strings.LastIndex(pair, "/")
		word, tag := pair[:slash], pair[slash+1:]
		if i > 0 {
			b.WriteByte(' ')
		}
		start := b.Len()
		b.WriteString(word)
		toks = append(toks, token{Text: word, Tag: tag, Start: start, End: b.Len()})
	}
	return b.String(), toks
}

func spanTexts(text string, spans []Span) []string {
	out := make([]string, 0, len(spans))
	for _, sp := range spans {
		out = append(out, sp.Kind+":"+text[sp.Start:sp.End])
	}
	return out
}

func TestGroupsFromTags(t *testing.T) {
	tests := []struct {
		name   string
		tagged string
		want   []string
	}{
		{
			name:   "prepositional phrase",
			tagged: "She/PRP walked/VBD into/IN the/DT old/JJ house/NN",
			want:   []string{"prepositional_phrase:into the old house"},
		},
		{
			name:   "infinitive",
			tagged: "I/PRP want/VBP to/TO go/VB home/NN",
			want:   []string{"infinitive_phrase:to go"},
		},
		{
			name:   "infinitive with particle",
			tagged: "We/PRP need/VBP to/TO give/VB up/RP",
			want:   []string{"infinitive_phrase:to give up"},
		},
		{
			name:   "relative clause stops at punctuation",
			tagged: "the/DT man/NN who/WP lives/VBZ here/RB ,/, sings/VBZ",
			want:   []string{"noun_phrase:the man", "relative_clause:who lives here"},
		},
		{
			name:   "relative clause never ends on a function word",
			tagged: "who/WP lived/VBD in/IN the/DT house/NN",
			want:   []string{"relative_clause:who lived", "prepositional_phrase:in the house"},
		},
		{
			name:   "relative clause never splits a noun phrase",
			tagged: "who/WP owns/VBZ a/DT red/JJ car/NN",
			want:   []string{"relative_clause:who owns", "noun_phrase:a red car"},
		},
		{
			name:   "subordinator is not a preposition",
			tagged: "because/IN the/DT rain/NN",
			want:   []string{"noun_phrase:the rain"},
		},
		{
			name:   "noun phrase not reused inside preposition",
			tagged: "on/IN the/DT table/NN",
			want:   []string{"prepositional_phrase:on the table"},
		},
		{
			name:   "no groups",
			tagged: "Run/VB !/.",
			want:   []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, toks := tagged(tt.tagged)
			got := spanTexts(text, groupsFromTags(toks))
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("groupsFromTags(%q) = %v, want %v", text, got, tt.want)
			}
		})
	}
}

func TestProperNounRuns(t *testing.T) {
	text, toks := tagged("I/PRP met/VBD John/NNP Ronald/NNP Smith/NNP in/IN Paris/NNP")
	got := spanTexts(text, properNounRuns(toks))
	if len(got) != 1 || got[0] != "proper_noun_run:John Ronald Smith" {
		t.Errorf("properNounRuns = %v, want [proper_noun_run:John Ronald Smith]", got)
	}
}

func TestEnglish_DetectAbbreviation(t *testing.T) {
	tests := []struct {
		text string
		word string
		want bool
	}{
		{"He lives in the U.S. now", "U.S.", true},
		{"e.g. apples", "e.g.", true},
		{"John F. Kennedy spoke", "F", true},
		{"Ph.D. students", "Ph.D.", true},
		{"the Blvd. was busy", "Blvd", true},
		{"The end. Then more", "end", false},
		{"we waited. then it rained", "waited", false},
		{"I watched TV. then slept", "TV", false},
		{"it was so. but why", "so", false},
		{"Hello world", "world", false},
	}
	for _, tt := range tests {
		offset := strings.Index(tt.text, strings.TrimRight(tt.word, "."))
		got, err := English{}.DetectAbbreviation(tt.text, offset, tt.word)
		if err != nil {
			t.Fatalf("DetectAbbreviation(%q) error = %v", tt.word, err)
		}
		if got != tt.want {
			t.Errorf("DetectAbbreviation(%q, %q) = %v, want %v", tt.text, tt.word, got, tt.want)
		}
	}
}

func TestEnglish_DetectMeaningGroups_SpansInBounds(t *testing.T) {
	text := "The quick brown fox jumped over the lazy dog to see who was there."
	spans, err := English{}.DetectMeaningGroups(text)
	if err != nil {
		t.Fatalf("DetectMeaningGroups error = %v", err)
	}
	for _, sp := range spans {
		if sp.Start < 0 || sp.End > len(text) || sp.Start >= sp.End {
			t.Errorf("span %+v out of bounds for text of length %d", sp, len(text))
		}
	}
}

// countingTagger tags every word as a noun and counts calls.
type countingTagger struct{ calls *int }

func (c countingTagger) Tag(text string) ([]Token, []string, error) {
	*c.calls++
	var toks []Token
	for _, f := range strings.Fields(text) {
		toks = append(toks, Token{Text: f, Tag: "NNP"})
	}
	return toks, []string{"Golden Gate"}, nil
}

func TestEnglish_DetectSpansTagsOnce(t *testing.T) {
	calls := 0
	e := English{Tagger: countingTagger{calls: &calls}}
	spans, err := e.DetectSpans("the Golden Gate")
	if err != nil {
		t.Fatalf("DetectSpans error = %v", err)
	}
	if calls != 1 {
		t.Errorf("tagger calls = %d, want 1", calls)
	}
	got := spanTexts("the Golden Gate", spans)
	want := []string{"proper_noun_run:the Golden Gate", "entity:Golden Gate"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("DetectSpans = %v, want %v", got, want)
	}
}

func TestProseModelLoadedOnce(t *testing.T) {
	a, err := proseModel()
	if err != nil {
		t.Fatalf("proseModel error = %v", err)
	}
	b, _ := proseModel()
	if a == nil || a != b {
		t.Errorf("proseModel() = %p then %p, want one shared model", a, b)
	}
}
