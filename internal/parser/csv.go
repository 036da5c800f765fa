package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docslice/internal/structure"
)

// CSVParser handles CSV files, rendering them as markdown pipe tables in
// batches of rows so downstream chunks stay near the token budget.
type CSVParser struct{}

const csvBatchSize = 20

func (p *CSVParser) Parse(r io.Reader, filename string) (*Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	title := trimExt(filename)
	if len(records) == 0 {
		return &Document{Title: title, Format: structure.FormatMarkdown}, nil
	}

	headers := records[0]
	dataRows := records[1:]

	var blocks []string
	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := min(i+csvBatchSize, len(dataRows))

		var text strings.Builder
		text.WriteString(pipeRow(headers))
		text.WriteString("\n")
		text.WriteString(pipeSeparator(len(headers)))
		for _, row := range dataRows[i:end] {
			text.WriteString("\n")
			text.WriteString(pipeRow(row))
		}
		blocks = append(blocks, text.String())
	}
	if len(blocks) == 0 {
		blocks = append(blocks, pipeRow(headers)+"\n"+pipeSeparator(len(headers)))
	}

	return &Document{
		Title:  title,
		Text:   strings.Join(blocks, "\n\n"),
		Format: structure.FormatMarkdown,
	}, nil
}

func pipeRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = strings.ReplaceAll(strings.TrimSpace(c), "|", "\\|")
	}
	return "| " + strings.Join(escaped, " | ") + " |"
}

func pipeSeparator(n int) string {
	return "|" + strings.Repeat(" --- |", n)
}
