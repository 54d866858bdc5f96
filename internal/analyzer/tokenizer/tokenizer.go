// Package tokenizer turns raw English text into the lower-case word tokens
// consumed by the classifier. Tokens keep internal apostrophes and hyphens so
// that contractions such as "don't" survive as single lookup keys.
package tokenizer

import (
	"strings"
)

// dottedCapitalI follows the full Unicode lower-case mapping of U+0130,
// "i" plus a combining dot, where unicode.ToLower keeps only the "i". The
// combining dot is not a word rune, so Tokenize splits "İstanbul" into
// "i" and "stanbul".
var dottedCapitalI = strings.NewReplacer("\u0130", "i\u0307")

// NormalizeText lower-cases text, collapses every whitespace run to a single
// space and trims the ends.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(dottedCapitalI.Replace(text))), " ")
}

// Tokenize breaks text into lower-case word tokens in reading order. Every
// character other than a-z, apostrophe or hyphen acts as a separator.
func Tokenize(text string) []string {
	clean := strings.Map(func(r rune) rune {
		if isWordRune(r) || r == ' ' {
			return r
		}
		return ' '
	}, NormalizeText(text))

	parts := strings.Split(clean, " ")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		tokens = append(tokens, p)
	}
	return tokens
}

// LimitWords normalizes text and keeps at most maxWords space-separated
// words. Punctuation inside the kept prefix is preserved. A non-positive
// maxWords keeps every word.
func LimitWords(text string, maxWords int) string {
	normalized := NormalizeText(text)
	if maxWords <= 0 {
		return normalized
	}
	words := strings.Fields(normalized)
	if len(words) <= maxWords {
		return normalized
	}
	return strings.Join(words[:maxWords], " ")
}

// StripLetters drops every character outside a-z.
func StripLetters(word string) string {
	var b strings.Builder
	b.Grow(len(word))
	for i := 0; i < len(word); i++ {
		if c := word[i]; c >= 'a' && c <= 'z' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || r == '\'' || r == '-'
}
