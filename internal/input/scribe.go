package input

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"readalong/internal/config"
	"readalong/internal/pipeline"
)

// scribeWord is one ElevenLabs Scribe token.
type scribeWord struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Type  string  `json:"type"` // "word", "spacing", "audio_event"
}

type scribeResponse struct {
	LanguageCode string       `json:"language_code"`
	Text         string       `json:"text"`
	Words        []scribeWord `json:"words"`
}

// cjkFoldPunctuation is standalone CJK punctuation Scribe emits as its own
// token; it is folded into the preceding word for CJK (or untagged) payloads.
var cjkFoldPunctuation = map[rune]struct{}{
	'\u3002': {}, // 。
	'\uff1f': {}, // ？
	'\uff01': {}, // ！
	'\u300d': {}, // 」
	'\u3001': {}, // 、
	'\u30fb': {}, // ・
	'\uff0c': {}, // ，
}

func decodeScribe(data []byte) (pipeline.Request, error) {
	var resp scribeResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return pipeline.Request{}, err
	}

	fold := resp.LanguageCode == "" || config.IsCJK(resp.LanguageCode)
	words := make([]pipeline.RawWordTiming, 0, len(resp.Words))
	for _, w := range resp.Words {
		if w.Type == "spacing" || w.Type == "audio_event" {
			continue
		}
		text := strings.TrimSpace(w.Text)
		if text == "" {
			continue
		}
		if fold && isFoldable(text) && len(words) > 0 {
			prev := &words[len(words)-1]
			last, _ := utf8.DecodeLastRuneInString(prev.Text)
			if _, folded := cjkFoldPunctuation[last]; !folded {
				prev.Text += text
				prev.EndTime = w.End
				continue
			}
		}
		words = append(words, pipeline.RawWordTiming{Text: text, StartTime: w.Start, EndTime: w.End})
	}

	text := resp.Text
	if text == "" {
		text = joinWords(words)
	}
	return pipeline.Request{Text: text, Language: resp.LanguageCode, Words: words}, nil
}

func isFoldable(text string) bool {
	r, size := utf8.DecodeRuneInString(text)
	if size != len(text) {
		return false
	}
	_, ok := cjkFoldPunctuation[r]
	return ok
}
