// Package structure detects recurring structural markers (articles,
// sections, chapters) in extracted document text and scores how strongly
// the document matches a structured template.
package structure

import "strings"

// Format tags the markup flavor of extracted text.
type Format string

const (
	FormatPlain    Format = "plain"
	FormatMarkdown Format = "markdown"
)

// ParseFormat maps a caller-supplied format tag to a known Format.
// Unknown or empty tags are treated as plain text.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown
	default:
		return FormatPlain
	}
}

// DocType classifies a document from its detected patterns.
type DocType string

const (
	TypeRegulatory DocType = "regulatory"
	TypeReport     DocType = "report"
	TypeManual     DocType = "manual"
	TypeMixed      DocType = "mixed"
	TypeUnknown    DocType = "unknown"
)

// ArticlePattern is a detected article marker with its character span.
// End is the next article's Start, or the end of the scanned text for the last.
type ArticlePattern struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

// SectionKind distinguishes markdown heading sections from plain-text
// keyword sections.
type SectionKind string

const (
	SectionMarkdown SectionKind = "markdown"
	SectionTextual  SectionKind = "textual"
)

// SectionPattern is a detected section heading with its character span.
// Level is 1-6 for markdown headings and 0 for textual sections.
type SectionPattern struct {
	Title string      `json:"title"`
	Level int         `json:"level,omitempty"`
	Start int         `json:"start"`
	End   int         `json:"end"`
	Kind  SectionKind `json:"kind"`
}

// ChapterPattern is a detected chapter marker. Number holds the arabic
// value (roman numerals are converted); Numeral preserves the raw form.
type ChapterPattern struct {
	Number  int    `json:"number"`
	Numeral string `json:"numeral"`
	Title   string `json:"title,omitempty"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// DocumentStructure is the read-only result of one detection pass.
// Confidence is in [0,1] and is 0 iff no pattern of any kind was found.
type DocumentStructure struct {
	Type       DocType          `json:"type"`
	Articles   []ArticlePattern `json:"articles"`
	Sections   []SectionPattern `json:"sections"`
	Chapters   []ChapterPattern `json:"chapters"`
	Confidence float64          `json:"confidence"`
}

// PatternCount returns the total number of detected patterns.
func (s DocumentStructure) PatternCount() int {
	return len(s.Articles) + len(s.Sections) + len(s.Chapters)
}
