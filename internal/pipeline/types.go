package pipeline

// RawWordTiming is one provider token with second-based timing.
type RawWordTiming struct {
	Text      string  `json:"text"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
}

// Request is the complete engine input: the literal sentence text, its word
// timings, and an optional language hint.
type Request struct {
	Text     string          `json:"text"`
	Language string          `json:"language,omitempty"`
	Words    []RawWordTiming `json:"words"`
}

// AnnotatedWord is a timed word with every signal the segmenter consults.
type AnnotatedWord struct {
	Text       string
	StartMs    int64
	EndMs      int64
	DurationMs int64
	GapAfterMs int64

	// PunctuationAfter is the raw trailing run ("", ".", "?!", "...").
	PunctuationAfter  string
	PunctuationWeight int

	IsAbbreviation           bool
	IsNumber                 bool
	IsSentenceEnd            bool
	IsInMeaningGroup         bool
	IsAtMeaningGroupBoundary bool

	// offset and endOffset are the word's byte range in the request text;
	// offset is -1 when the word could not be located.
	offset    int
	endOffset int
}

// Line is a run of consecutive words that becomes one transcript item.
type Line []AnnotatedWord

// TranscriptItem is one line (or one word, when nested) of the output.
type TranscriptItem struct {
	Text     string           `json:"text"`
	Start    int64            `json:"start"`
	Duration int64            `json:"duration"`
	Timeline []TranscriptItem `json:"timeline,omitempty"`
}

// Transcript is the follow-along output root.
type Transcript struct {
	Timeline []TranscriptItem `json:"timeline"`
}
