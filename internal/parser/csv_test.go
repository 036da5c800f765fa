package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dgallion1/docslice/internal/structure"
)

func TestCSVParser_PipeTable(t *testing.T) {
	input := "name,value\nalpha,1\nbeta,2\n"
	doc, err := (&CSVParser{}).Parse(strings.NewReader(input), "data.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "| name | value |\n| --- | --- |\n| alpha | 1 |\n| beta | 2 |"
	if doc.Text != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, doc.Text)
	}
	if doc.Format != structure.FormatMarkdown {
		t.Errorf("expected markdown format, got %s", doc.Format)
	}
	if doc.Title != "data" {
		t.Errorf("expected title %q, got %q", "data", doc.Title)
	}
}

func TestCSVParser_BatchesRows(t *testing.T) {
	var b strings.Builder
	b.WriteString("id,label\n")
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, "%d,row%d\n", i, i)
	}
	doc, err := (&CSVParser{}).Parse(strings.NewReader(b.String()), "big.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	blocks := strings.Split(doc.Text, "\n\n")
	if len(blocks) != 2 {
		t.Fatalf("expected 25 rows in 2 batches, got %d blocks", len(blocks))
	}
	for i, block := range blocks {
		if !strings.HasPrefix(block, "| id | label |\n| --- | --- |") {
			t.Errorf("block %d: missing repeated header:\n%s", i, block)
		}
	}
	if got := strings.Count(blocks[0], "\n"); got != 1+csvBatchSize {
		t.Errorf("first batch: expected %d rows, got %d", csvBatchSize, got-1)
	}
	if got := strings.Count(blocks[1], "\n"); got != 1+5 {
		t.Errorf("second batch: expected 5 rows, got %d", got-1)
	}
}

func TestCSVParser_EscapesPipes(t *testing.T) {
	doc, err := (&CSVParser{}).Parse(strings.NewReader("col\na|b\n"), "p.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc.Text, `a\|b`) {
		t.Errorf("expected escaped pipe in:\n%s", doc.Text)
	}
}

func TestCSVParser_HeaderOnly(t *testing.T) {
	doc, err := (&CSVParser{}).Parse(strings.NewReader("a,b,c\n"), "h.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "| a | b | c |\n| --- | --- | --- |"
	if doc.Text != want {
		t.Errorf("expected %q, got %q", want, doc.Text)
	}
}

func TestCSVParser_Empty(t *testing.T) {
	doc, err := (&CSVParser{}).Parse(strings.NewReader(""), "e.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "" {
		t.Errorf("expected empty text, got %q", doc.Text)
	}
}
