package pipeline

import "readalong/internal/config"

type accumulatorState int

const (
	stateAccumulating accumulatorState = iota
	stateCompleted
)

// accumulator walks an arena of words with a cursor, handing out completed
// lines as capacity-clipped sub-slices of the arena.
type accumulator struct {
	words []AnnotatedWord
	start int
	next  int
	state accumulatorState
	lines []Line
}

func newAccumulator(words []AnnotatedWord) *accumulator {
	a := &accumulator{words: words}
	if len(words) == 0 {
		a.state = stateCompleted
	}
	return a
}

// advance moves the cursor onto the next word and returns its index.
func (a *accumulator) advance() int {
	i := a.next
	a.next++
	return i
}

// pending is the current, not yet emitted line.
func (a *accumulator) pending() Line {
	return a.words[a.start:a.next:a.next]
}

// emit completes the first n pending words as a line.
func (a *accumulator) emit(n int) {
	end := a.start + n
	a.lines = append(a.lines, a.words[a.start:end:end])
	a.start = end
	if a.start >= len(a.words) {
		a.state = stateCompleted
	}
}

// segmentWords is the greedy single pass: every word is scored against the
// current line and either closes it or joins it. A line that reaches the
// word limit without a natural break is cut by the long-line splitter.
func segmentWords(words []AnnotatedWord, s *config.SegmentSettings, lexicon *Lexicon) []Line {
	sc := &scorer{settings: s, lexicon: lexicon}
	sp := &splitter{settings: s, lexicon: lexicon}
	acc := newAccumulator(words)

	for acc.state == stateAccumulating {
		i := acc.advance()
		c := breakContext{
			Word:   words[i],
			IsLast: i == len(words)-1,
			Count:  i - acc.start + 1,
		}
		if !c.IsLast {
			c.Next = &words[i+1]
		}

		if d := sc.decide(c); d.Break {
			acc.emit(c.Count)
			continue
		}
		if c.Count >= s.MaxWordsPerSegment {
			acc.emit(sp.findCut(acc.pending()))
		}
	}
	return acc.lines
}
