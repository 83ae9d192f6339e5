package pipeline

import "strings"

// mergeHyphenContinuations folds any word starting with "-" into the word
// before it, extending that word's end time. A leading "-" word with nothing
// before it is kept as is.
func mergeHyphenContinuations(words []timedWord) []timedWord {
	out := make([]timedWord, 0, len(words))
	for _, w := range words {
		if strings.HasPrefix(w.Text, "-") && len(out) > 0 {
			prev := &out[len(out)-1]
			prev.Text += w.Text
			if w.EndMs > prev.EndMs {
				prev.EndMs = w.EndMs
			}
			continue
		}
		out = append(out, w)
	}
	return out
}
