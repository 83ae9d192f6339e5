package pipeline

import "readalong/internal/config"

// mergeReason explains why two adjacent lines stayed apart or were joined.
type mergeReason string

const (
	mergeOK            mergeReason = ""
	mergeSplitAbbrev   mergeReason = "split abbreviation"
	mergePauseBoundary mergeReason = "pause boundary"
	mergePunctBoundary mergeReason = "punctuation boundary"
	mergeTooLong       mergeReason = "too many words"
)

// merger joins adjacent short lines that the greedy pass left apart.
type merger struct {
	settings *config.SegmentSettings
}

// isSplitAbbreviation reports a line that ends inside an abbreviation: the
// bare abbreviation or its detached period.
func isSplitAbbreviation(ln Line) bool {
	return len(ln) > 0 && ln[len(ln)-1].IsAbbreviation
}

func (m *merger) canMerge(a, b Line) (bool, mergeReason) {
	s := m.settings
	combined := len(a) + len(b)
	last := a[len(a)-1]

	if isSplitAbbreviation(a) {
		if combined <= s.MaxWordsPerSegment {
			return true, mergeSplitAbbrev
		}
		return false, mergeTooLong
	}
	if last.GapAfterMs >= s.PauseThresholdMs {
		return false, mergePauseBoundary
	}
	if last.IsSentenceEnd || hasClauseMark(last.PunctuationAfter) {
		if len(a) != 1 || last.GapAfterMs >= s.MergeGapMs {
			return false, mergePunctBoundary
		}
	}
	if combined > s.PreferredWordsPerSegment {
		return false, mergeTooLong
	}
	return true, mergeOK
}

// mergeLines is a greedy forward pass: each line absorbs its successors for
// as long as canMerge allows. Merged lines get their own backing array.
func (m *merger) mergeLines(lines []Line) []Line {
	if len(lines) == 0 {
		return nil
	}

	merged := make([]Line, 0, len(lines))
	i := 0
	for i < len(lines) {
		current := lines[i]
		for i+1 < len(lines) {
			ok, _ := m.canMerge(current, lines[i+1])
			if !ok {
				break
			}
			joined := make(Line, 0, len(current)+len(lines[i+1]))
			joined = append(joined, current...)
			current = append(joined, lines[i+1]...)
			i++
		}
		merged = append(merged, current)
		i++
	}
	return merged
}
