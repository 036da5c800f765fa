package parser

import (
	"io"

	"github.com/dgallion1/docslice/internal/structure"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files. The source text passes through
// untouched — the structure detector consumes the heading markers — and
// goldmark is used only to pull a document title from the first heading.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	title := firstHeading(src)
	if title == "" {
		title = trimExt(filename)
	}

	return &Document{
		Title:  title,
		Text:   string(src),
		Format: structure.FormatMarkdown,
	}, nil
}

// firstHeading walks the goldmark AST and returns the text of the first
// heading, or "" when the document has none.
func firstHeading(src []byte) string {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			return string(h.Text(src))
		}
	}
	return ""
}
