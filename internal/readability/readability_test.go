package readability

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{word: "The", want: 1},
		{word: "cat", want: 1},
		{word: "sat.", want: 1},
		{word: "make", want: 1},
		{word: "bee", want: 1},
		{word: "reading", want: 2},
		{word: "accessibility", want: 6},
		{word: "rhythm", want: 1},
		{word: "42", want: 1},
		{word: "Café", want: 1},
		{word: "naïve", want: 1},
		{word: "Über", want: 2},
		{word: "", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := CountSyllables(tt.word); got != tt.want {
				t.Errorf("CountSyllables(%q) = %d, want %d", tt.word, got, tt.want)
			}
		})
	}
}

func TestScoreTheCatSat(t *testing.T) {
	m, err := Score(Corpus{Sentences: [][]string{{"The", "cat", "sat"}}})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	if m.SentenceCount != 1 || m.WordCount != 3 || m.SyllableCount != 3 {
		t.Errorf("counts = %d/%d/%d, want 1/3/3", m.SentenceCount, m.WordCount, m.SyllableCount)
	}
	if math.Abs(m.FleschReadingEase-119.19) > 1e-9 {
		t.Errorf("FleschReadingEase = %v, want 119.19", m.FleschReadingEase)
	}
	if math.Abs(m.FleschKincaidGrade-(-2.62)) > 1e-9 {
		t.Errorf("FleschKincaidGrade = %v, want -2.62", m.FleschKincaidGrade)
	}
}

func TestScoreInsufficientContent(t *testing.T) {
	tests := []struct {
		name   string
		corpus Corpus
	}{
		{name: "nil", corpus: Corpus{}},
		{name: "empty sentences", corpus: Corpus{Sentences: [][]string{{}, {}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Score(tt.corpus)
			if !errors.Is(err, ErrInsufficientContent) {
				t.Errorf("Score() error = %v, want ErrInsufficientContent", err)
			}

			r := Analyze(tt.corpus)
			if r.Status != StatusNotScored || r.Metrics != nil || r.Scored() {
				t.Errorf("Analyze() = %+v, want not_scored without metrics", r)
			}
		})
	}
}

func TestSummarise(t *testing.T) {
	tests := []struct {
		name string
		m    Metrics
		want string
	}{
		{name: "low ease", m: Metrics{FleschReadingEase: 30, FleschKincaidGrade: 4}, want: SummaryComplex},
		{name: "high ease", m: Metrics{FleschReadingEase: 85, FleschKincaidGrade: 12}, want: SummaryEasy},
		{name: "mid ease high grade", m: Metrics{FleschReadingEase: 60, FleschKincaidGrade: 11}, want: SummaryComplex},
		{name: "mid ease low grade", m: Metrics{FleschReadingEase: 60, FleschKincaidGrade: 6}, want: SummaryEasy},
		{name: "moderate", m: Metrics{FleschReadingEase: 60, FleschKincaidGrade: 8}, want: SummaryModerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarise(tt.m); got != tt.want {
				t.Errorf("Summarise() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnalyze(t *testing.T) {
	r := Analyze(Corpus{Sentences: [][]string{
		{"The", "cat", "sat"},
		{"It", "was", "a", "sunny", "day"},
	}})
	if !r.Scored() {
		t.Fatalf("Analyze() status = %s, want scored", r.Status)
	}
	if r.WordsPerSentence != 4 {
		t.Errorf("WordsPerSentence = %v, want 4", r.WordsPerSentence)
	}
	if r.Summary != SummaryEasy {
		t.Errorf("Summary = %q, want %q", r.Summary, SummaryEasy)
	}
}

func TestSegment(t *testing.T) {
	got := Segment("The cat sat. Then it ran away! Did it return?")
	want := Corpus{Sentences: [][]string{
		{"The", "cat", "sat"},
		{"Then", "it", "ran", "away"},
		{"Did", "it", "return"},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Segment() mismatch (-want +got):\n%s", diff)
	}

	if c := Segment("   ...  "); len(c.Sentences) != 0 {
		t.Errorf("Segment(punctuation) = %v, want no sentences", c.Sentences)
	}
}
