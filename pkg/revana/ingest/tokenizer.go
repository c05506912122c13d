package ingest

import (
	"strings"
	"unicode"
)

// DefaultMinTokenLen drops tokens shorter than three letters, matching
// the upstream dataset convention.
const DefaultMinTokenLen = 3

// Tokenizer splits cleaned text into word tokens.
type Tokenizer struct {
	minLen int
}

// NewTokenizer creates a tokenizer with the given minimum token length.
// minLen <= 0 disables the length filter.
func NewTokenizer(minLen int) *Tokenizer {
	return &Tokenizer{minLen: minLen}
}

// Tokenize splits text into lowercase word tokens. Word boundaries are
// runs of letters; digits and punctuation separate tokens. Order
// follows the source text and empty input yields no tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder
	runes := 0

	flush := func() {
		if runes >= t.minLen {
			tokens = append(tokens, current.String())
		}
		current.Reset()
		runes = 0
	}

	for _, r := range text {
		if unicode.IsLetter(r) {
			current.WriteRune(unicode.ToLower(r))
			runes++
		} else if runes > 0 {
			flush()
		}
	}
	if runes > 0 {
		flush()
	}

	return tokens
}
