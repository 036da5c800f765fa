package chunker

import (
	"unicode"

	"github.com/dgallion1/docslice/internal/token"
)

// SplitSentences normalizes whitespace and splits text into sentences at a
// run of '.', '!' or '?' followed by a space and an uppercase letter, or at
// end of input. Joining the result with single spaces reproduces the
// normalized text exactly: no gaps, no overlaps.
//
// Abbreviations and initials are not special-cased, so "Dott. Rossi"
// over-segments. The min-token re-merge in the packer absorbs most of the
// effect, and downstream citation indexing relies on these exact
// boundaries, so the behavior is kept as is.
func SplitSentences(text string) []string {
	norm := token.Normalize(text)
	if norm == "" {
		return nil
	}

	runes := []rune(norm)
	var sentences []string
	start := 0
	i := 0
	for i < len(runes) {
		if !isTerminator(runes[i]) {
			i++
			continue
		}
		j := i + 1
		for j < len(runes) && isTerminator(runes[j]) {
			j++
		}
		if j >= len(runes) {
			// Terminator run reaches end of input.
			sentences = append(sentences, string(runes[start:]))
			return sentences
		}
		if runes[j] == ' ' && j+1 < len(runes) && unicode.IsUpper(runes[j+1]) {
			sentences = append(sentences, string(runes[start:j]))
			start = j + 1
			i = j + 1
			continue
		}
		i = j
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
