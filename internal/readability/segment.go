package readability

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/clipperhouse/uax29/v2/words"
)

// Segment splits raw text into sentences and words using Unicode text
// segmentation (UAX #29). Punctuation and whitespace tokens are dropped.
func Segment(text string) Corpus {
	var c Corpus

	sents := sentences.FromString(text)
	for sents.Next() {
		var ws []string
		tokens := words.FromString(sents.Value())
		for tokens.Next() {
			if w := tokens.Value(); isWord(w) {
				ws = append(ws, w)
			}
		}
		if len(ws) > 0 {
			c.Sentences = append(c.Sentences, ws)
		}
	}
	return c
}

func isWord(token string) bool {
	return strings.IndexFunc(token, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsNumber(r)
	}) >= 0
}
