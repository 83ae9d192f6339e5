package input

import (
	"encoding/json"
	"strings"

	"readalong/internal/pipeline"
)

// whisperResponse is the verbose_json shape shared by OpenAI Whisper and
// Workers AI. Word timings sit at the top level or inside segments.
type whisperResponse struct {
	Text     string           `json:"text"`
	Language string           `json:"language,omitempty"`
	Words    []whisperWord    `json:"words,omitempty"`
	Segments []whisperSegment `json:"segments,omitempty"`
}

type whisperSegment struct {
	Start float64       `json:"start"`
	End   float64       `json:"end"`
	Text  string        `json:"text"`
	Words []whisperWord `json:"words,omitempty"`
}

type whisperWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func decodeWhisper(data []byte) (pipeline.Request, error) {
	var resp whisperResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return pipeline.Request{}, err
	}

	src := resp.Words
	if len(src) == 0 {
		for _, s := range resp.Segments {
			src = append(src, s.Words...)
		}
	}

	words := make([]pipeline.RawWordTiming, 0, len(src))
	for _, w := range src {
		text := strings.TrimSpace(w.Word)
		if text == "" {
			continue
		}
		words = append(words, pipeline.RawWordTiming{Text: text, StartTime: w.Start, EndTime: w.End})
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		text = joinWords(words)
	}
	return pipeline.Request{Text: text, Language: whisperLanguage(resp.Language), Words: words}, nil
}

// whisperLanguages maps the English language names Whisper reports to tags.
var whisperLanguages = map[string]string{
	"english":    "en",
	"german":     "de",
	"french":     "fr",
	"spanish":    "es",
	"italian":    "it",
	"portuguese": "pt",
	"dutch":      "nl",
	"russian":    "ru",
	"chinese":    "zh",
	"japanese":   "ja",
	"korean":     "ko",
}

func whisperLanguage(name string) string {
	if tag, ok := whisperLanguages[strings.ToLower(name)]; ok {
		return tag
	}
	return name
}
