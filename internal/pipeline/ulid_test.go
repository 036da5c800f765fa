package pipeline

import (
	"strings"
	"testing"
)

func TestNewJobID_Format(t *testing.T) {
	id := NewJobID()
	if len(id) != 26 {
		t.Fatalf("expected 26 characters, got %d: %q", len(id), id)
	}
	for _, r := range id {
		if !strings.ContainsRune(crockford, r) {
			t.Errorf("unexpected character %q in %q", r, id)
		}
	}
}

func TestNewJobID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewJobID()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestNewJobID_Monotonic(t *testing.T) {
	// Lexicographic order tracks generation order because of the
	// timestamp prefix and the same-millisecond sequence counter.
	prev := NewJobID()
	for i := 0; i < 100; i++ {
		id := NewJobID()
		if id <= prev {
			t.Fatalf("ids not increasing: %q then %q", prev, id)
		}
		prev = id
	}
}
