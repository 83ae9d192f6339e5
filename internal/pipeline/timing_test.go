package pipeline

import (
	"errors"
	"testing"
)

func TestToMillis(t *testing.T) {
	tests := []struct {
		sec  float64
		want int64
	}{
		{0, 0},
		{0.123, 123},
		{0.456, 456},
		{1.5, 1500},
		{2.0004, 2000},
		{2.0006, 2001},
		{-0.25, -250},
	}
	for _, tt := range tests {
		if got := toMillis(tt.sec); got != tt.want {
			t.Errorf("toMillis(%v) = %d, want %d", tt.sec, got, tt.want)
		}
	}
}

func TestNormalizeTimings(t *testing.T) {
	raw := []RawWordTiming{
		{Text: "one", StartTime: 0.123, EndTime: 0.456},
		{Text: "two", StartTime: 0.5, EndTime: 0.5},
	}
	got := normalizeTimings(raw)
	want := []timedWord{{"one", 123, 456}, {"two", 500, 500}}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestGapsAfter(t *testing.T) {
	words := []timedWord{{"a", 0, 300}, {"b", 1000, 1300}, {"c", 1200, 1500}}
	got := gapsAfter(words)
	want := []int64{700, -100, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("gapsAfter()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if len(gapsAfter(nil)) != 0 {
		t.Error("gapsAfter(nil) should be empty")
	}
}

func TestValidateTimings(t *testing.T) {
	tests := []struct {
		name string
		raw  []RawWordTiming
		want error
	}{
		{"empty", nil, nil},
		{"ordered", []RawWordTiming{{"a", 0, 0.2}, {"b", 0.2, 0.4}}, nil},
		{"zero duration", []RawWordTiming{{"a", 0.2, 0.2}}, nil},
		{"negative duration", []RawWordTiming{{"a", 0.5, 0.2}}, ErrNegativeDuration},
		{"overlap", []RawWordTiming{{"a", 0, 0.5}, {"b", 0.3, 0.6}}, ErrUnorderedTimings},
	}
	for _, tt := range tests {
		err := ValidateTimings(tt.raw)
		if tt.want == nil && err != nil {
			t.Errorf("%s: ValidateTimings() = %v, want nil", tt.name, err)
		}
		if tt.want != nil && !errors.Is(err, tt.want) {
			t.Errorf("%s: ValidateTimings() = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestMergeHyphenContinuations(t *testing.T) {
	tests := []struct {
		name string
		in   []timedWord
		want []timedWord
	}{
		{
			name: "no hyphens",
			in:   []timedWord{{"a", 0, 100}, {"b", 100, 200}},
			want: []timedWord{{"a", 0, 100}, {"b", 100, 200}},
		},
		{
			name: "continuation joins previous",
			in:   []timedWord{{"well", 0, 200}, {"-known", 200, 500}, {"fact", 600, 900}},
			want: []timedWord{{"well-known", 0, 500}, {"fact", 600, 900}},
		},
		{
			name: "chained continuations",
			in:   []timedWord{{"state", 0, 200}, {"-of", 200, 300}, {"-the-art", 300, 700}},
			want: []timedWord{{"state-of-the-art", 0, 700}},
		},
		{
			name: "leading hyphen kept",
			in:   []timedWord{{"-so", 0, 200}, {"what", 200, 400}},
			want: []timedWord{{"-so", 0, 200}, {"what", 200, 400}},
		},
		{
			name: "earlier continuation end does not shrink word",
			in:   []timedWord{{"re", 0, 500}, {"-do", 100, 300}},
			want: []timedWord{{"re-do", 0, 500}},
		},
	}
	for _, tt := range tests {
		got := mergeHyphenContinuations(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("%s: got %d words, want %d", tt.name, len(got), len(tt.want))
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("%s: word %d = %+v, want %+v", tt.name, i, got[i], tt.want[i])
			}
		}
	}
}
