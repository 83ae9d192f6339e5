package pipeline

import "strings"

// assemble renders completed lines into the follow-along transcript.
func assemble(lines []Line) Transcript {
	items := make([]TranscriptItem, 0, len(lines))
	for _, ln := range lines {
		if len(ln) == 0 {
			continue
		}
		items = append(items, assembleLine(ln))
	}
	return Transcript{Timeline: items}
}

func assembleLine(ln Line) TranscriptItem {
	texts := make([]string, len(ln))
	words := make([]TranscriptItem, len(ln))
	for i, w := range ln {
		texts[i] = w.Text
		words[i] = TranscriptItem{Text: w.Text, Start: w.StartMs, Duration: w.DurationMs}
	}
	start := ln[0].StartMs
	return TranscriptItem{
		Text:     strings.Join(texts, " "),
		Start:    start,
		Duration: ln[len(ln)-1].EndMs - start,
		Timeline: words,
	}
}

// TranscriptStats summarizes the shape of a transcript.
type TranscriptStats struct {
	Lines           int
	Words           int
	MinWordsPerLine int
	MaxWordsPerLine int
	MeanWords       float64
}

// Stats counts lines and words of t.
func Stats(t Transcript) TranscriptStats {
	var st TranscriptStats
	for i, item := range t.Timeline {
		n := len(item.Timeline)
		st.Lines++
		st.Words += n
		if i == 0 || n < st.MinWordsPerLine {
			st.MinWordsPerLine = n
		}
		st.MaxWordsPerLine = max(st.MaxWordsPerLine, n)
	}
	if st.Lines > 0 {
		st.MeanWords = float64(st.Words) / float64(st.Lines)
	}
	return st
}
