package ingest

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenizer converts raw document text into a sequence of normalized word
// tokens: lowercased, split on anything that is not a letter or a hyphen.
// Interior hyphens are kept so compounds survive as one token; leading and
// trailing hyphens are stripped and runs of hyphens collapse to one.
// Digits are separators too — numerals are stripped upstream during
// ingestion, so a digit reaching the tokenizer never forms a token.
type Tokenizer struct{}

// NewTokenizer creates a tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize splits text into normalized tokens, preserving order.
// Empty or whitespace-only text yields an empty slice, not an error.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		word := cleanToken(current.String())
		current.Reset()
		// Single-rune fragments carry no signal and are dropped.
		if utf8.RuneCountInString(word) <= 1 {
			return
		}
		tokens = append(tokens, word)
	}

	for _, r := range text {
		if unicode.IsLetter(r) || r == '-' {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// cleanToken strips leading and trailing hyphens and collapses consecutive
// hyphens to a single one.
func cleanToken(token string) string {
	token = strings.Trim(token, "-")
	for strings.Contains(token, "--") {
		token = strings.ReplaceAll(token, "--", "-")
	}
	return token
}
