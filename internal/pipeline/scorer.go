package pipeline

import "readalong/internal/config"

// Break score contributions.
const (
	sentenceEndBonus   = 12
	longPauseBonus     = 8
	pauseBonus         = 4
	preferredLenBonus  = 3
	nearMaxBonus       = 2
	groupBoundaryBonus = 5
	midGroupPenalty    = 3

	belowMinBreakScore  = 10
	preferredBreakScore = 5
	nearMaxBreakScore   = 3
	breakThreshold      = 8

	// Distances from MaxWordsPerSegment at which the scorer relaxes.
	nearMaxBonusWindow = 2
	nearMaxRelaxWindow = 3
)

type pauseKind int

const (
	pauseNone pauseKind = iota
	pauseShort
	pauseLong
)

func classifyPause(gapMs int64, s *config.SegmentSettings) pauseKind {
	switch {
	case gapMs >= s.LongPauseThresholdMs:
		return pauseLong
	case gapMs >= s.PauseThresholdMs:
		return pauseShort
	default:
		return pauseNone
	}
}

// breakReason names the rule that settled a decision.
type breakReason string

const (
	reasonLastWord      breakReason = "last_word"
	reasonProtectGroup  breakReason = "protect_group"
	reasonEmphatic      breakReason = "emphatic_sentence"
	reasonShortSentence breakReason = "short_sentence_pause"
	reasonBelowMin      breakReason = "below_min_words"
	reasonGroupBoundary breakReason = "group_boundary"
	reasonLookahead     breakReason = "lookahead"
	reasonPreferredLen  breakReason = "preferred_length"
	reasonNoSignal      breakReason = "no_signal"
	reasonScore         breakReason = "score"
	reasonAccumulate    breakReason = "accumulate"
)

// breakContext is the immutable window the scorer sees: the current word,
// the word after it, and the size of the line including the current word.
type breakContext struct {
	Word   AnnotatedWord
	Next   *AnnotatedWord
	IsLast bool
	Count  int
}

type breakDecision struct {
	Score  int
	Break  bool
	Reason breakReason
}

type scorer struct {
	settings *config.SegmentSettings
	lexicon  *Lexicon
}

// score sums the weighted break signals of the current word.
func (sc *scorer) score(c breakContext) int {
	w := c.Word
	s := sc.settings
	pause := classifyPause(w.GapAfterMs, s)
	noBreak := sc.lexicon.IsNoBreakWord(w.Text)

	score := 0
	if !w.IsAbbreviation {
		score += w.PunctuationWeight
	}
	if w.IsSentenceEnd {
		score += sentenceEndBonus
	}
	switch {
	case pause == pauseLong:
		score += longPauseBonus
	case pause == pauseShort && !noBreak:
		score += pauseBonus
	}

	if sc.hasSignal(w) || w.IsSentenceEnd {
		if c.Count >= s.PreferredWordsPerSegment {
			score += preferredLenBonus
		}
		if c.Count >= s.MaxWordsPerSegment-nearMaxBonusWindow {
			score += nearMaxBonus
		}
	}

	if w.IsAtMeaningGroupBoundary {
		score += groupBoundaryBonus
	} else if w.IsInMeaningGroup {
		score -= midGroupPenalty
	}
	return score
}

// pauseSignal reports a pause after w that counts as a break signal: any
// long pause, or a short pause after a word that is not a no-break word.
func (sc *scorer) pauseSignal(w AnnotatedWord) bool {
	switch classifyPause(w.GapAfterMs, sc.settings) {
	case pauseLong:
		return true
	case pauseShort:
		return !sc.lexicon.IsNoBreakWord(w.Text)
	}
	return false
}

// hasSignal reports punctuation, a pause, or a meaning-group boundary.
func (sc *scorer) hasSignal(w AnnotatedWord) bool {
	return w.PunctuationWeight > 0 || sc.pauseSignal(w) || w.IsAtMeaningGroupBoundary
}

// decide applies the break rules in precedence order.
func (sc *scorer) decide(c breakContext) breakDecision {
	w := c.Word
	s := sc.settings

	if c.IsLast {
		return breakDecision{Break: true, Reason: reasonLastWord}
	}
	if w.IsInMeaningGroup && !w.IsSentenceEnd && !w.IsAtMeaningGroupBoundary {
		return breakDecision{Reason: reasonProtectGroup}
	}
	if c.Count == 1 && w.IsSentenceEnd {
		return breakDecision{Break: true, Reason: reasonEmphatic}
	}
	if c.Count <= 2 && w.IsSentenceEnd && w.GapAfterMs >= s.PauseThresholdMs {
		return breakDecision{Break: true, Reason: reasonShortSentence}
	}

	d := breakDecision{Score: sc.score(c)}

	if c.Count < s.MinWordsPerSegment {
		d.Break = d.Score >= belowMinBreakScore
		d.Reason = reasonBelowMin
		return d
	}

	if w.IsAtMeaningGroupBoundary {
		d.Break, d.Reason = true, reasonGroupBoundary
		return d
	}

	if c.Next != nil && sc.lookahead(c) {
		d.Break, d.Reason = true, reasonLookahead
		return d
	}

	if c.Count >= s.PreferredWordsPerSegment {
		if w.PunctuationWeight > 0 || sc.pauseSignal(w) || d.Score >= preferredBreakScore {
			d.Break, d.Reason = true, reasonPreferredLen
			return d
		}
		if c.Count >= s.MaxWordsPerSegment-nearMaxRelaxWindow && d.Score >= nearMaxBreakScore {
			d.Break, d.Reason = true, reasonPreferredLen
			return d
		}
	} else if !sc.hasSignal(w) || d.Score < breakThreshold {
		d.Reason = reasonNoSignal
		return d
	}

	if d.Score >= breakThreshold {
		d.Break, d.Reason = true, reasonScore
		return d
	}
	d.Reason = reasonAccumulate
	return d
}

// lookahead breaks before relative and question clauses, and after a comma
// that is followed by a main-clause subject.
func (sc *scorer) lookahead(c breakContext) bool {
	w := c.Word
	next := c.Next.Text
	minWords := sc.settings.MinWordsPerSegment

	if !sc.lexicon.IsNoBreakWord(w.Text) {
		if sc.lexicon.isRelativeOpener(next) && c.Count >= minWords {
			return true
		}
		if sc.lexicon.isQuestionOpener(next) && c.Count >= minWords+1 {
			return true
		}
	}
	return hasComma(w.PunctuationAfter) && sc.lexicon.isMainClauseOpener(next)
}
