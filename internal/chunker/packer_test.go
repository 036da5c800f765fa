package chunker

import (
	"fmt"
	"strings"
	"testing"
)

func TestPack_SmallInputSingleChunk(t *testing.T) {
	p := NewPacker(nil)
	sentences := []string{"Alpha beta gamma.", "Delta epsilon zeta."}
	chunks := p.Pack(sentences, Options{TargetTokens: 350, MaxTokens: 450, MinTokens: 200}, 0)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	c := chunks[0]
	if c.Index != 0 {
		t.Errorf("expected index 0, got %d", c.Index)
	}
	if c.Content != "Alpha beta gamma. Delta epsilon zeta." {
		t.Errorf("unexpected content: %q", c.Content)
	}
	if c.Metadata.SentenceCount != 2 {
		t.Errorf("expected 2 sentences, got %d", c.Metadata.SentenceCount)
	}
	if c.Metadata.HasOverlap {
		t.Error("sole chunk should not be marked as overlapping")
	}
	if c.Metadata.CharStart != 0 || c.Metadata.CharEnd != len(c.Content) {
		t.Errorf("unexpected offsets: [%d,%d)", c.Metadata.CharStart, c.Metadata.CharEnd)
	}
}

func TestPack_MaxTokensNeverExceeded(t *testing.T) {
	p := NewPacker(nil)
	var sentences []string
	for i := 0; i < 200; i++ {
		sentences = append(sentences, fmt.Sprintf("Sentence number %d carries a bit of content.", i))
	}
	opts := Options{TargetTokens: 80, MaxTokens: 100, MinTokens: 20}
	chunks := p.Pack(sentences, opts, 0)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk %d: expected index %d, got %d", i, i, c.Index)
		}
		if c.Metadata.TokenCount > opts.MaxTokens {
			t.Errorf("chunk %d: %d tokens exceeds max %d", i, c.Metadata.TokenCount, opts.MaxTokens)
		}
	}
	// Every non-terminal chunk respects the minimum.
	for i, c := range chunks[:len(chunks)-1] {
		if c.Metadata.TokenCount < opts.MinTokens {
			t.Errorf("chunk %d: %d tokens below min %d", i, c.Metadata.TokenCount, opts.MinTokens)
		}
	}
}

func TestPack_OverlapContinuity(t *testing.T) {
	p := NewPacker(nil)
	var sentences []string
	for i := 0; i < 60; i++ {
		sentences = append(sentences, fmt.Sprintf("This is numbered sentence %d in the stream.", i))
	}
	chunks := p.Pack(sentences, Options{TargetTokens: 60, MaxTokens: 90, MinTokens: 10}, 0)

	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks, got %d", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		if !chunks[i].Metadata.HasOverlap {
			t.Errorf("chunk %d: expected overlap flag", i)
			continue
		}
		prev := SplitSentences(chunks[i-1].Content)
		cur := SplitSentences(chunks[i].Content)
		if len(prev) == 0 || len(cur) == 0 {
			t.Fatalf("chunk %d: unexpected empty sentence split", i)
		}
		if cur[0] != prev[len(prev)-1] {
			t.Errorf("chunk %d: expected first sentence %q to repeat previous tail %q", i, cur[0], prev[len(prev)-1])
		}
	}
}

func TestPack_UndersizedTailMergesIntoPrevious(t *testing.T) {
	p := NewPacker(nil)
	big := strings.TrimSpace(strings.Repeat("alpha bravo ", 7)) // 83 chars, 21 tokens
	tail := "Tiny tail."                                        // 3 tokens
	chunks := p.Pack([]string{big, big, tail}, Options{TargetTokens: 40, MaxTokens: 100, MinTokens: 30}, 0)

	if len(chunks) != 1 {
		t.Fatalf("expected tail to merge into a single chunk, got %d", len(chunks))
	}
	c := chunks[0]
	if !strings.HasSuffix(c.Content, tail) {
		t.Errorf("expected merged content to end with %q, got %q", tail, c.Content)
	}
	if c.Metadata.SentenceCount != 3 {
		t.Errorf("expected 3 sentences after merge, got %d", c.Metadata.SentenceCount)
	}
	wantEnd := len(big) + 1 + len(big) + 1 + len(tail)
	if c.Metadata.CharEnd != wantEnd {
		t.Errorf("expected CharEnd %d after merge, got %d", wantEnd, c.Metadata.CharEnd)
	}
}

func TestPack_SoleUndersizedChunk(t *testing.T) {
	p := NewPacker(nil)
	chunks := p.Pack([]string{"Too short."}, Options{TargetTokens: 350, MaxTokens: 450, MinTokens: 200}, 0)
	if len(chunks) != 1 {
		t.Fatalf("expected the undersized buffer as sole chunk, got %d chunks", len(chunks))
	}
	if chunks[0].Content != "Too short." {
		t.Errorf("unexpected content: %q", chunks[0].Content)
	}
}

func TestPack_OversizedSentenceSplitsByWords(t *testing.T) {
	// A 2,000-word "sentence" with no punctuation must still be split,
	// and no chunk may exceed the hard cap.
	p := NewPacker(nil)
	sentence := strings.TrimSpace(strings.Repeat("unbroken stream of words ", 500))
	opts := Options{TargetTokens: 350, MaxTokens: 450, MinTokens: 200}
	chunks := p.Pack([]string{sentence}, opts, 0)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple word-split chunks, got %d", len(chunks))
	}
	var rebuilt []string
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk %d: expected index %d, got %d", i, i, c.Index)
		}
		if c.Metadata.TokenCount > opts.MaxTokens {
			t.Errorf("chunk %d: %d tokens exceeds max %d", i, c.Metadata.TokenCount, opts.MaxTokens)
		}
		if c.Metadata.HasOverlap {
			t.Errorf("chunk %d: word-split chunks must not overlap", i)
		}
		rebuilt = append(rebuilt, c.Content)
	}
	if strings.Join(rebuilt, " ") != sentence {
		t.Error("word-split chunks do not reassemble the original sentence")
	}
}

func TestPack_BaseOffsetShiftsPositions(t *testing.T) {
	p := NewPacker(nil)
	chunks := p.Pack([]string{"Alpha beta gamma."}, Options{TargetTokens: 50, MaxTokens: 80, MinTokens: 5}, 1000)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Metadata.CharStart != 1000 {
		t.Errorf("expected CharStart 1000, got %d", chunks[0].Metadata.CharStart)
	}
	if chunks[0].Metadata.CharEnd != 1000+len("Alpha beta gamma.") {
		t.Errorf("unexpected CharEnd %d", chunks[0].Metadata.CharEnd)
	}
}

func TestPack_EmptyInput(t *testing.T) {
	p := NewPacker(nil)
	if chunks := p.Pack(nil, DefaultOptions(), 0); chunks != nil {
		t.Errorf("expected nil for empty input, got %v", chunks)
	}
}

func TestClassifyContent(t *testing.T) {
	cases := []struct {
		content string
		want    ContentType
	}{
		{"Plain prose without any markers here.", ContentParagraph},
		{"## Heading text follows", ContentHeading},
		{"- first item - second item", ContentList},
		{"1. numbered step follows", ContentList},
		{"| name | value |", ContentTable},
		{"## Title | a | b |", ContentMixed},
		{"", ContentParagraph},
	}
	for _, c := range cases {
		if got := classifyContent(c.content); got != c.want {
			t.Errorf("classifyContent(%q): expected %s, got %s", c.content, c.want, got)
		}
	}
}
