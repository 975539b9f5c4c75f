// Package readability scores text with the Flesch readability formulas.
package readability

import (
	"errors"
	"math"
)

// ErrInsufficientContent is returned when there are no sentences or words
// to score.
var ErrInsufficientContent = errors.New("insufficient content to score readability")

// Corpus is text already segmented into sentences of words.
type Corpus struct {
	Sentences [][]string `json:"sentences" yaml:"sentences"`
}

// WordCount returns the number of words across all sentences.
func (c Corpus) WordCount() int {
	n := 0
	for _, s := range c.Sentences {
		n += len(s)
	}
	return n
}

// SentenceCount returns the number of non-empty sentences.
func (c Corpus) SentenceCount() int {
	n := 0
	for _, s := range c.Sentences {
		if len(s) > 0 {
			n++
		}
	}
	return n
}

// Metrics are the readability statistics for one corpus.
type Metrics struct {
	FleschReadingEase  float64 `json:"flesch_reading_ease" yaml:"flesch_reading_ease"`
	FleschKincaidGrade float64 `json:"flesch_kincaid_grade" yaml:"flesch_kincaid_grade"`
	SentenceCount      int     `json:"sentence_count" yaml:"sentence_count"`
	WordCount          int     `json:"word_count" yaml:"word_count"`
	SyllableCount      int     `json:"syllable_count" yaml:"syllable_count"`
}

// WordsPerSentence returns the mean sentence length.
func (m Metrics) WordsPerSentence() float64 {
	if m.SentenceCount == 0 {
		return 0
	}
	return float64(m.WordCount) / float64(m.SentenceCount)
}

// FleschReadingEase computes 206.835 − 1.015·(words/sentences) − 84.6·(syllables/words).
func FleschReadingEase(words, sentences, syllables int) float64 {
	w, s, y := float64(words), float64(sentences), float64(syllables)
	return 206.835 - 1.015*(w/s) - 84.6*(y/w)
}

// FleschKincaidGrade computes 0.39·(words/sentences) + 11.8·(syllables/words) − 15.59.
func FleschKincaidGrade(words, sentences, syllables int) float64 {
	w, s, y := float64(words), float64(sentences), float64(syllables)
	return 0.39*(w/s) + 11.8*(y/w) - 15.59
}

// Score computes the readability metrics of c. Empty sentences are ignored.
func Score(c Corpus) (Metrics, error) {
	m := Metrics{
		SentenceCount: c.SentenceCount(),
		WordCount:     c.WordCount(),
	}
	if m.SentenceCount == 0 || m.WordCount == 0 {
		return m, ErrInsufficientContent
	}

	for _, s := range c.Sentences {
		for _, w := range s {
			m.SyllableCount += CountSyllables(w)
		}
	}

	m.FleschReadingEase = FleschReadingEase(m.WordCount, m.SentenceCount, m.SyllableCount)
	m.FleschKincaidGrade = FleschKincaidGrade(m.WordCount, m.SentenceCount, m.SyllableCount)
	return m, nil
}

// Status reports whether a corpus could be scored.
type Status string

// Readability statuses.
const (
	StatusScored    Status = "scored"
	StatusNotScored Status = "not_scored"
)

// Summary labels.
const (
	SummaryEasy     = "Easy"
	SummaryModerate = "Moderate"
	SummaryComplex  = "Complex"
)

// Summarise classifies metrics as Easy, Moderate or Complex. Reading ease
// decides when it is clearly low or high; otherwise the grade level does.
func Summarise(m Metrics) string {
	switch {
	case m.FleschReadingEase < 50:
		return SummaryComplex
	case m.FleschReadingEase > 70:
		return SummaryEasy
	case m.FleschKincaidGrade > 10:
		return SummaryComplex
	case m.FleschKincaidGrade <= 6:
		return SummaryEasy
	}
	return SummaryModerate
}

// Result is the readability section of a report.
type Result struct {
	Status           Status   `json:"status" yaml:"status"`
	Metrics          *Metrics `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Summary          string   `json:"summary" yaml:"summary"`
	WordsPerSentence float64  `json:"average_words_per_sentence" yaml:"average_words_per_sentence"`
}

// Scored reports whether the result carries metrics.
func (r Result) Scored() bool {
	return r.Status == StatusScored && r.Metrics != nil
}

// Analyze scores c and wraps the outcome. Insufficient content yields a
// not_scored result rather than an error.
func Analyze(c Corpus) Result {
	m, err := Score(c)
	if err != nil {
		return Result{Status: StatusNotScored, Summary: "Not enough text to analyze"}
	}
	return Result{
		Status:           StatusScored,
		Metrics:          &m,
		Summary:          Summarise(m),
		WordsPerSentence: math.Round(m.WordsPerSentence()*10) / 10,
	}
}
