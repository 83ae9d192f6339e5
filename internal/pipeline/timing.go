package pipeline

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnorderedTimings = errors.New("word timings are not in chronological order")
	ErrNegativeDuration = errors.New("word ends before it starts")
)

// timedWord is a word after millisecond normalization, before classification.
type timedWord struct {
	Text    string
	StartMs int64
	EndMs   int64
}

// toMillis rounds seconds to integer milliseconds, half away from zero.
func toMillis(sec float64) int64 {
	return int64(math.Round(sec * 1000))
}

// normalizeTimings converts provider seconds into millisecond words.
func normalizeTimings(raw []RawWordTiming) []timedWord {
	out := make([]timedWord, 0, len(raw))
	for _, w := range raw {
		out = append(out, timedWord{
			Text:    w.Text,
			StartMs: toMillis(w.StartTime),
			EndMs:   toMillis(w.EndTime),
		})
	}
	return out
}

// gapsAfter returns start[i+1]-end[i] for every word, 0 for the last.
func gapsAfter(words []timedWord) []int64 {
	gaps := make([]int64, len(words))
	for i := 0; i+1 < len(words); i++ {
		gaps[i] = words[i+1].StartMs - words[i].EndMs
	}
	return gaps
}

// ValidateTimings reports the first ordering or duration violation. The
// engine itself never rejects input; strict callers run this first.
func ValidateTimings(raw []RawWordTiming) error {
	for i, w := range raw {
		if w.EndTime < w.StartTime {
			return fmt.Errorf("%w: word %d %q [%.3f, %.3f]", ErrNegativeDuration, i, w.Text, w.StartTime, w.EndTime)
		}
		if i > 0 && w.StartTime < raw[i-1].EndTime {
			return fmt.Errorf("%w: word %d %q starts at %.3f before previous end %.3f",
				ErrUnorderedTimings, i, w.Text, w.StartTime, raw[i-1].EndTime)
		}
	}
	return nil
}
