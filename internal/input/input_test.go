package input

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"readalong/internal/pipeline"
)

const (
	nativeJSON = `{"text":"Hello world.","language":"en","words":[
		{"text":"Hello","startTime":0,"endTime":0.4},
		{"text":"world","startTime":0.45,"endTime":0.9}]}`

	scribeJSON = `{"language_code":"eng","text":"Hello world.","words":[
		{"text":"Hello","start":0,"end":0.4,"type":"word"},
		{"text":" ","start":0.4,"end":0.45,"type":"spacing"},
		{"text":"world.","start":0.45,"end":0.9,"type":"word"},
		{"text":"(laughter)","start":1.0,"end":1.5,"type":"audio_event"}]}`

	whisperJSON = `{"text":" Hello world.","language":"english","words":[
		{"word":" Hello","start":0,"end":0.4},
		{"word":" world.","start":0.45,"end":0.9}]}`

	whisperSegmentsJSON = `{"text":"Hello world.","segments":[
		{"start":0,"end":0.4,"text":"Hello","words":[{"word":"Hello","start":0,"end":0.4}]},
		{"start":0.45,"end":0.9,"text":"world.","words":[{"word":"world.","start":0.45,"end":0.9}]}]}`

	azureJSON = `{"combinedRecognizedPhrases":[{"display":"Hello world."}],
		"recognizedPhrases":[{"locale":"en-US","nBest":[{"display":"Hello world.","words":[
			{"word":"Hello","offsetInTicks":0,"durationInTicks":4000000},
			{"word":"world","offsetInTicks":4500000,"durationInTicks":4500000}]}]}]}`
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Format
	}{
		{"native", nativeJSON, FormatNative},
		{"native empty", `{"text":"","words":[]}`, FormatNative},
		{"scribe", scribeJSON, FormatScribe},
		{"scribe without language", `{"words":[{"text":"a","start":0,"end":1,"type":"word"}]}`, FormatScribe},
		{"whisper", whisperJSON, FormatWhisper},
		{"whisper segments", whisperSegmentsJSON, FormatWhisper},
		{"azure", azureJSON, FormatAzure},
	}
	for _, tt := range tests {
		got, err := Detect([]byte(tt.data))
		if err != nil {
			t.Errorf("%s: Detect() error = %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: Detect() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDetect_Unknown(t *testing.T) {
	for _, data := range []string{`{}`, `{"foo":1}`, `{"words":[{"x":1}]}`} {
		if _, err := Detect([]byte(data)); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("Detect(%s) error = %v, want ErrUnknownFormat", data, err)
		}
	}
	if _, err := Detect([]byte(`not json`)); err == nil {
		t.Error("Detect(not json) should fail")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"", FormatAuto, true},
		{"auto", FormatAuto, true},
		{"Whisper", FormatWhisper, true},
		{" azure ", FormatAzure, true},
		{"srt", "", false},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseFormat(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func equalWords(a, b []pipeline.RawWordTiming) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDecode(t *testing.T) {
	helloWorld := []pipeline.RawWordTiming{
		{Text: "Hello", StartTime: 0, EndTime: 0.4},
		{Text: "world", StartTime: 0.45, EndTime: 0.9},
	}
	helloWorldDot := []pipeline.RawWordTiming{
		{Text: "Hello", StartTime: 0, EndTime: 0.4},
		{Text: "world.", StartTime: 0.45, EndTime: 0.9},
	}

	tests := []struct {
		name     string
		data     string
		format   Format
		text     string
		language string
		words    []pipeline.RawWordTiming
	}{
		{"native", nativeJSON, FormatNative, "Hello world.", "en", helloWorld},
		{"scribe", scribeJSON, FormatScribe, "Hello world.", "eng", helloWorldDot},
		{"whisper", whisperJSON, FormatWhisper, "Hello world.", "en", helloWorldDot},
		{"whisper segments", whisperSegmentsJSON, FormatWhisper, "Hello world.", "", helloWorldDot},
		{"azure", azureJSON, FormatAzure, "Hello world.", "en-US", helloWorld},
		{"auto", azureJSON, FormatAuto, "Hello world.", "en-US", helloWorld},
	}
	for _, tt := range tests {
		req, err := Decode([]byte(tt.data), tt.format)
		if err != nil {
			t.Errorf("%s: Decode() error = %v", tt.name, err)
			continue
		}
		if req.Text != tt.text {
			t.Errorf("%s: Text = %q, want %q", tt.name, req.Text, tt.text)
		}
		if req.Language != tt.language {
			t.Errorf("%s: Language = %q, want %q", tt.name, req.Language, tt.language)
		}
		if !equalWords(req.Words, tt.words) {
			t.Errorf("%s: Words = %+v, want %+v", tt.name, req.Words, tt.words)
		}
	}
}

func TestDecode_ScribeFoldsCJKPunctuation(t *testing.T) {
	data := `{"language_code":"jpn","text":"\u3053\u3093\u306b\u3061\u306f\u3002","words":[
		{"text":"\u3053\u3093\u306b\u3061\u306f","start":0,"end":0.8,"type":"word"},
		{"text":"\u3002","start":0.8,"end":0.9,"type":"word"}]}`
	req, err := Decode([]byte(data), FormatScribe)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(req.Words) != 1 {
		t.Fatalf("words = %d, want 1", len(req.Words))
	}
	if req.Words[0].Text != "\u3053\u3093\u306b\u3061\u306f\u3002" || req.Words[0].EndTime != 0.9 {
		t.Errorf("word = %+v, want folded punctuation ending at 0.9", req.Words[0])
	}
}

func TestDecode_MissingTextIsRebuilt(t *testing.T) {
	req, err := Decode([]byte(`{"words":[{"text":"a","startTime":0,"endTime":1},{"text":"b","startTime":1,"endTime":2}]}`), FormatNative)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if req.Text != "a b" {
		t.Errorf("Text = %q, want %q", req.Text, "a b")
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, err := Decode([]byte(`{}`), FormatAuto); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Decode(auto, {}) error = %v, want ErrUnknownFormat", err)
	}
	if _, err := Decode([]byte(nativeJSON), Format("srt")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Decode(srt) error = %v, want ErrUnknownFormat", err)
	}
	if _, err := Decode([]byte(`{"words":"nope"}`), FormatNative); err == nil {
		t.Error("Decode(native, bad words) should fail")
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "req.json")
	if err := os.WriteFile(path, []byte(whisperJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	req, err := ReadFile(path, FormatAuto)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(req.Words) != 2 {
		t.Errorf("words = %d, want 2", len(req.Words))
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.json"), FormatAuto); err == nil {
		t.Error("ReadFile(missing) should fail")
	}
}

func TestTicksToSeconds(t *testing.T) {
	if got := ticksToSeconds(4500000); got != 0.45 {
		t.Errorf("ticksToSeconds(4500000) = %v, want 0.45", got)
	}
}
