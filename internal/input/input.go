// Package input shapes provider transcription payloads into segmentation
// requests. Decoders are pure: they read bytes and never touch the network.
package input

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"readalong/internal/pipeline"
)

// ErrUnknownFormat is returned when a payload matches no known provider shape.
var ErrUnknownFormat = errors.New("unknown input format")

// Format names a provider payload shape.
type Format string

const (
	FormatAuto    Format = "auto"
	FormatNative  Format = "native"
	FormatScribe  Format = "scribe"
	FormatWhisper Format = "whisper"
	FormatAzure   Format = "azure"
)

// Formats lists every concrete format, in detection order.
var Formats = []Format{FormatNative, FormatScribe, FormatWhisper, FormatAzure}

// ParseFormat resolves a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatAuto, nil
	}
	if f == FormatAuto {
		return f, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// payloadShape holds just enough of a payload to tell the formats apart.
type payloadShape struct {
	LanguageCode      *string                      `json:"language_code"`
	RecognizedPhrases json.RawMessage              `json:"recognizedPhrases"`
	Words             []map[string]json.RawMessage `json:"words"`
	Segments          []struct {
		Words []map[string]json.RawMessage `json:"words"`
	} `json:"segments"`
}

// Detect guesses the format of data from its JSON shape.
func Detect(data []byte) (Format, error) {
	var p payloadShape
	if err := json.Unmarshal(data, &p); err != nil {
		return "", fmt.Errorf("detect format: %w", err)
	}
	if len(p.RecognizedPhrases) > 0 {
		return FormatAzure, nil
	}
	if p.LanguageCode != nil {
		return FormatScribe, nil
	}

	first := firstWord(p)
	switch {
	case first == nil && p.Words != nil:
		return FormatNative, nil
	case first == nil:
		return "", ErrUnknownFormat
	case has(first, "startTime"):
		return FormatNative, nil
	case has(first, "type"):
		return FormatScribe, nil
	case has(first, "word"):
		return FormatWhisper, nil
	}
	return "", ErrUnknownFormat
}

func firstWord(p payloadShape) map[string]json.RawMessage {
	if len(p.Words) > 0 {
		return p.Words[0]
	}
	for _, s := range p.Segments {
		if len(s.Words) > 0 {
			return s.Words[0]
		}
	}
	return nil
}

func has(m map[string]json.RawMessage, key string) bool {
	_, ok := m[key]
	return ok
}

// Decode turns data in format f into a request. FormatAuto detects first.
func Decode(data []byte, f Format) (pipeline.Request, error) {
	if f == FormatAuto || f == "" {
		detected, err := Detect(data)
		if err != nil {
			return pipeline.Request{}, err
		}
		f = detected
	}

	var (
		req pipeline.Request
		err error
	)
	switch f {
	case FormatNative:
		req, err = decodeNative(data)
	case FormatScribe:
		req, err = decodeScribe(data)
	case FormatWhisper:
		req, err = decodeWhisper(data)
	case FormatAzure:
		req, err = decodeAzure(data)
	default:
		return pipeline.Request{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return pipeline.Request{}, fmt.Errorf("decode %s: %w", f, err)
	}
	return req, nil
}

// ReadFile reads and decodes a request file.
func ReadFile(path string, f Format) (pipeline.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Request{}, fmt.Errorf("read input: %w", err)
	}
	req, err := Decode(data, f)
	if err != nil {
		return pipeline.Request{}, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}

// joinWords rebuilds sentence text for payloads that carry none.
func joinWords(words []pipeline.RawWordTiming) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}
