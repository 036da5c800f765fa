package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/docslice/internal/structure"
)

func TestTextParser_Paragraphs(t *testing.T) {
	input := "First line.\nSecond line.\n\n\nNext paragraph.\n"
	doc, err := (&TextParser{}).Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "First line.\nSecond line.\n\nNext paragraph."
	if doc.Text != want {
		t.Errorf("expected %q, got %q", want, doc.Text)
	}
	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	if doc.Format != structure.FormatPlain {
		t.Errorf("expected plain format, got %s", doc.Format)
	}
}

func TestTextParser_Empty(t *testing.T) {
	doc, err := (&TextParser{}).Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "" {
		t.Errorf("expected empty text, got %q", doc.Text)
	}
}

func TestTextParser_WhitespaceOnlyLinesSeparateParagraphs(t *testing.T) {
	input := "alpha\n   \t  \nbeta"
	doc, err := (&TextParser{}).Parse(strings.NewReader(input), "ws.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "alpha\n\nbeta" {
		t.Errorf("expected paragraph break, got %q", doc.Text)
	}
}

func TestForFile(t *testing.T) {
	cases := []struct {
		filename string
		ok       bool
	}{
		{"doc.txt", true},
		{"doc.md", true},
		{"doc.MARKDOWN", true},
		{"doc.csv", true},
		{"doc.html", true},
		{"doc.htm", true},
		{"doc.pdf", true},
		{"doc.docx", true},
		{"doc.exe", false},
		{"doc", false},
	}
	for _, c := range cases {
		p, err := ForFile(c.filename)
		if c.ok && (err != nil || p == nil) {
			t.Errorf("ForFile(%q): expected a parser, got error %v", c.filename, err)
		}
		if !c.ok && err == nil {
			t.Errorf("ForFile(%q): expected an error", c.filename)
		}
		if got := IsSupportedExtension(c.filename); got != c.ok {
			t.Errorf("IsSupportedExtension(%q): expected %v, got %v", c.filename, c.ok, got)
		}
	}
}
