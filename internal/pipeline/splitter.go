package pipeline

import "readalong/internal/config"

// Cut-point scores used by the long-line splitter.
const (
	candidateSentenceEnd   = 15
	candidatePunctFactor   = 2
	candidateGroupBoundary = 8
	candidatePause         = 3
	candidateGoodLength    = 2

	// Lines of a balanced long sentence may move this many words off the
	// even split to land on a better cut.
	balanceSlack = 1
	// Interior lines of a balanced sentence never drop below this.
	balanceMinWords = 3
)

type splitter struct {
	settings *config.SegmentSettings
	lexicon  *Lexicon
}

// skipCandidate reports positions the splitter must never cut after.
func (sp *splitter) skipCandidate(w AnnotatedWord) bool {
	if w.IsAbbreviation {
		return true
	}
	if w.IsInMeaningGroup && !w.IsAtMeaningGroupBoundary {
		return true
	}
	return w.PunctuationWeight == 0 && sp.lexicon.IsNoBreakWord(w.Text)
}

// candidateScore scores a cut after w that leaves firstLen words before it.
func (sp *splitter) candidateScore(w AnnotatedWord, firstLen int) int {
	s := sp.settings
	score := w.PunctuationWeight * candidatePunctFactor
	if w.IsSentenceEnd {
		score = candidateSentenceEnd
	}
	if w.IsAtMeaningGroupBoundary {
		score += candidateGroupBoundary
	}
	if w.GapAfterMs >= s.PauseThresholdMs {
		score += candidatePause
	}
	if firstLen >= s.MinWordsPerSegment && firstLen <= s.PreferredWordsPerSegment {
		score += candidateGoodLength
	}
	return score
}

// findCut returns how many words of an over-long line to emit. It scans the
// last LookbackWords positions backwards and keeps the first strictly best
// candidate, so ties go to the later cut.
func (sp *splitter) findCut(line Line) int {
	s := sp.settings
	n := len(line)
	if n <= 1 {
		return n
	}
	k := min(s.LookbackWords, n-1)

	best, bestScore := -1, 0
	for i := n - 1; i >= n-k; i-- {
		if sp.skipCandidate(line[i]) {
			continue
		}
		if score := sp.candidateScore(line[i], i+1); score > bestScore {
			best, bestScore = i, score
		}
	}
	if best >= 0 {
		return best + 1
	}

	for i := n - k - 1; i >= s.MinWordsPerSegment-1; i-- {
		w := line[i]
		if sp.skipCandidate(w) {
			continue
		}
		if w.PunctuationWeight > 0 || w.GapAfterMs >= s.PauseThresholdMs || w.IsAtMeaningGroupBoundary {
			return i + 1
		}
	}

	if n >= s.PreferredWordsPerSegment+3 {
		return s.PreferredWordsPerSegment
	}
	return n
}

// balanceLongSentences re-cuts every sentence longer than twice the word
// limit into evenly sized lines. A block is a run of lines closed by a
// sentence-ending word, a long pause, or the end of the transcript.
func (sp *splitter) balanceLongSentences(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	blockStart := 0
	for i, ln := range lines {
		last := ln[len(ln)-1]
		closed := last.IsSentenceEnd || last.GapAfterMs >= sp.settings.LongPauseThresholdMs
		if !closed && i != len(lines)-1 {
			continue
		}
		out = append(out, sp.balanceBlock(lines[blockStart:i+1])...)
		blockStart = i + 1
	}
	return out
}

func (sp *splitter) balanceBlock(block []Line) []Line {
	s := sp.settings
	total := 0
	for _, ln := range block {
		total += len(ln)
	}
	if total <= 2*s.MaxWordsPerSegment {
		return block
	}

	words := make([]AnnotatedWord, 0, total)
	for _, ln := range block {
		words = append(words, ln...)
	}

	even := evenCuts(total, (s.PreferredWordsPerSegment+s.MaxWordsPerSegment)/2)
	cuts := sp.snapCuts(words, even)
	if !sp.balanced(cuts, total) {
		cuts = even
	}

	out := make([]Line, 0, len(cuts)+1)
	prev := 0
	for _, c := range append(cuts, total) {
		out = append(out, words[prev:c:c])
		prev = c
	}
	return out
}

// evenCuts splits total words into ceil(total/target) lines whose sizes
// differ by at most one, returning the interior cut positions.
func evenCuts(total, target int) []int {
	k := (total + target - 1) / target
	base, extra := total/k, total%k
	cuts := make([]int, 0, k-1)
	pos := 0
	for j := 0; j < k-1; j++ {
		pos += base
		if j < extra {
			pos++
		}
		cuts = append(cuts, pos)
	}
	return cuts
}

// snapCuts moves each even cut by up to balanceSlack words toward the best
// scoring cut point. The unmoved position wins ties.
func (sp *splitter) snapCuts(words []AnnotatedWord, even []int) []int {
	out := make([]int, 0, len(even))
	prev := 0
	for _, c := range even {
		best, bestScore := c, -1
		for _, d := range []int{0, -balanceSlack, balanceSlack} {
			pos := c + d
			if pos <= prev || pos >= len(words) {
				continue
			}
			w := words[pos-1]
			if sp.skipCandidate(w) {
				continue
			}
			if score := sp.candidateScore(w, pos-prev); score > bestScore {
				best, bestScore = pos, score
			}
		}
		out = append(out, best)
		prev = best
	}
	return out
}

// balanced checks the even-segmentation guarantees: every line within the
// word limit, interior lines of at least balanceMinWords, and a size spread
// no wider than the snapping can produce.
func (sp *splitter) balanced(cuts []int, total int) bool {
	sizes := make([]int, 0, len(cuts)+1)
	prev := 0
	for _, c := range append(cuts, total) {
		if c <= prev {
			return false
		}
		sizes = append(sizes, c-prev)
		prev = c
	}
	lo, hi := sizes[0], sizes[0]
	for i, n := range sizes {
		if n > sp.settings.MaxWordsPerSegment {
			return false
		}
		if i > 0 && i < len(sizes)-1 && n < balanceMinWords {
			return false
		}
		lo, hi = min(lo, n), max(hi, n)
	}
	return hi-lo <= 1+4*balanceSlack
}
