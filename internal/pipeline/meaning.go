package pipeline

import (
	"fmt"
	"log/slog"

	"readalong/internal/nlp"
)

// guardedHelper is the capability boundary around an nlp.Helper. Errors and
// panics are logged once per operation and read as "nothing detected".
type guardedHelper struct {
	h      nlp.Helper
	warned map[string]bool
}

func newGuardedHelper(h nlp.Helper) *guardedHelper {
	if h == nil {
		h = nlp.Noop{}
	}
	return &guardedHelper{h: h, warned: make(map[string]bool)}
}

func guard[T any](g *guardedHelper, op string, fn func() (T, error)) (out T) {
	defer func() {
		if r := recover(); r != nil {
			g.warn(op, fmt.Errorf("panic: %v", r))
			var zero T
			out = zero
		}
	}()
	v, err := fn()
	if err != nil {
		g.warn(op, err)
		var zero T
		return zero
	}
	return v
}

func (g *guardedHelper) warn(op string, err error) {
	if g.warned[op] {
		return
	}
	g.warned[op] = true
	slog.Warn("language helper failed, continuing without it", "op", op, "err", err)
}

func (g *guardedHelper) abbreviation(text string, offset int, word string) bool {
	return guard(g, "abbreviation", func() (bool, error) {
		return g.h.DetectAbbreviation(text, offset, word)
	})
}

func (g *guardedHelper) sentenceBoundary(text string, offset int) bool {
	return guard(g, "sentence_boundary", func() (bool, error) {
		return g.h.IsSentenceBoundary(text, offset)
	})
}

func (g *guardedHelper) spans(text string) []nlp.Span {
	var found []nlp.Span
	if sd, ok := g.h.(nlp.SpanDetector); ok {
		found = guard(g, "spans", func() ([]nlp.Span, error) {
			return sd.DetectSpans(text)
		})
	} else {
		entities := guard(g, "entities", func() ([]nlp.Span, error) {
			return g.h.DetectEntities(text)
		})
		groups := guard(g, "meaning_groups", func() ([]nlp.Span, error) {
			return g.h.DetectMeaningGroups(text)
		})
		found = append(entities, groups...)
	}
	all := make([]nlp.Span, 0, len(found))
	for _, sp := range found {
		if sp.Start < 0 || sp.End > len(text) || sp.Start >= sp.End {
			g.warn("malformed_span", fmt.Errorf("span [%d,%d) outside text of length %d", sp.Start, sp.End, len(text)))
			continue
		}
		all = append(all, sp)
	}
	return all
}

// annotateMeaningGroups flags words covered by a span of two or more located
// words. The last covered word is the group boundary unless another span
// continues past it.
func annotateMeaningGroups(words []AnnotatedWord, spans []nlp.Span) {
	if len(spans) == 0 {
		return
	}
	interior := make([]bool, len(words))
	last := make([]bool, len(words))

	for _, sp := range spans {
		first, end := -1, -1
		for i, w := range words {
			if w.offset < 0 {
				continue
			}
			if w.offset >= sp.Start && w.endOffset <= sp.End {
				if first < 0 {
					first = i
				}
				end = i
			}
		}
		if first < 0 || end == first {
			continue
		}
		for i := first; i <= end; i++ {
			if words[i].offset < 0 {
				continue
			}
			words[i].IsInMeaningGroup = true
			if i < end {
				interior[i] = true
			}
		}
		last[end] = true
	}

	for i := range words {
		words[i].IsAtMeaningGroupBoundary = last[i] && !interior[i]
	}
}
