package input

import (
	"encoding/json"
	"strings"

	"readalong/internal/pipeline"
)

// ticksPerSecond is the Azure Speech time unit (100ns).
const ticksPerSecond = 10_000_000

// azureTranscript is the Azure Speech batch transcription result with
// word-level timestamps enabled.
type azureTranscript struct {
	CombinedRecognizedPhrases []struct {
		Display string `json:"display"`
	} `json:"combinedRecognizedPhrases"`
	RecognizedPhrases []azurePhrase `json:"recognizedPhrases"`
}

type azurePhrase struct {
	Locale string      `json:"locale"`
	NBest  []azureBest `json:"nBest"`
}

type azureBest struct {
	Display string      `json:"display"`
	Words   []azureWord `json:"words"`
}

type azureWord struct {
	Word            string `json:"word"`
	OffsetInTicks   int64  `json:"offsetInTicks"`
	DurationInTicks int64  `json:"durationInTicks"`
}

func ticksToSeconds(ticks int64) float64 {
	return float64(ticks) / ticksPerSecond
}

func decodeAzure(data []byte) (pipeline.Request, error) {
	var tr azureTranscript
	if err := json.Unmarshal(data, &tr); err != nil {
		return pipeline.Request{}, err
	}

	var (
		words    []pipeline.RawWordTiming
		displays []string
		locale   string
	)
	for _, phrase := range tr.RecognizedPhrases {
		if len(phrase.NBest) == 0 {
			continue
		}
		if locale == "" {
			locale = phrase.Locale
		}
		best := phrase.NBest[0]
		displays = append(displays, best.Display)
		for _, w := range best.Words {
			words = append(words, pipeline.RawWordTiming{
				Text:      w.Word,
				StartTime: ticksToSeconds(w.OffsetInTicks),
				EndTime:   ticksToSeconds(w.OffsetInTicks + w.DurationInTicks),
			})
		}
	}

	var combined []string
	for _, c := range tr.CombinedRecognizedPhrases {
		combined = append(combined, c.Display)
	}
	text := strings.Join(combined, " ")
	if text == "" {
		text = strings.Join(displays, " ")
	}
	if text == "" {
		text = joinWords(words)
	}
	return pipeline.Request{Text: text, Language: locale, Words: words}, nil
}
