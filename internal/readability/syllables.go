package readability

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// fold strips diacritics and lowercases, so "Café" counts like "cafe".
func fold(word string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, word)
	if err != nil {
		s = word
	}
	return lower.String(s)
}

func isVowel(r rune) bool {
	return strings.ContainsRune("aeiouy", r)
}

// CountSyllables estimates the syllables in a word by counting maximal
// vowel runs. A trailing silent "e" is discounted when the word has more
// than one run. Every word has at least one syllable.
func CountSyllables(word string) int {
	w := fold(word)

	count := 0
	prevVowel := false
	last := rune(0)
	for _, r := range w {
		if !unicode.IsLetter(r) {
			prevVowel = false
			continue
		}
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
		last = r
	}

	if count > 1 && last == 'e' {
		count--
	}
	return max(count, 1)
}
