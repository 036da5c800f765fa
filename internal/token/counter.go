// Package token estimates model token counts for text spans.
package token

import "strings"

// Counter estimates the number of model tokens in a text span.
// Implementations must be deterministic, always return >= 0, and never fail.
type Counter interface {
	Count(text string) int
}

// Estimator is the default Counter: roughly four characters per token over
// whitespace-normalized text. Exact tokenization is not required for chunk
// sizing — a precise tokenizer can be substituted behind the Counter interface.
type Estimator struct{}

// Count returns ceil(len(normalized)/4).
func (Estimator) Count(text string) int {
	n := len(Normalize(text))
	if n == 0 {
		return 0
	}
	return (n + 3) / 4
}

// Normalize collapses whitespace runs to single spaces and trims both ends.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
