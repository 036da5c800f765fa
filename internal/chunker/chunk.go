// Package chunker splits extracted document text into token-budgeted,
// semantically coherent chunks, preserving detected structure when present
// and falling back to sentence-aware packing otherwise.
package chunker

import (
	"github.com/dgallion1/docslice/internal/structure"
)

// ContentType classifies the dominant markup of a chunk.
type ContentType string

const (
	ContentParagraph ContentType = "paragraph"
	ContentHeading   ContentType = "heading"
	ContentList      ContentType = "list"
	ContentTable     ContentType = "table"
	ContentMixed     ContentType = "mixed"
)

// ArticleType marks whether a chunk holds a whole article or part of one.
type ArticleType string

const (
	ArticleComplete ArticleType = "complete"
	ArticlePartial  ArticleType = "partial"
)

// Metadata carries positional and structural context for a chunk.
// CharStart/CharEnd index the source text for structure-preserving chunks,
// and the whitespace-normalized sentence stream for packed chunks.
type Metadata struct {
	TokenCount    int         `json:"token_count"`
	SentenceCount int         `json:"sentence_count"`
	CharStart     int         `json:"char_start"`
	CharEnd       int         `json:"char_end"`
	ContentType   ContentType `json:"content_type"`
	HasOverlap    bool        `json:"has_overlap"`
	ArticleNumber int         `json:"article_number,omitempty"`
	ArticleType   ArticleType `json:"article_type,omitempty"`
	SectionTitle  string      `json:"section_title,omitempty"`
	SectionLevel  int         `json:"section_level,omitempty"`
}

// Chunk is a contiguous slice of document text, token-budgeted for
// embedding. Chunks are never mutated after they are handed to the caller.
type Chunk struct {
	Content  string   `json:"content"`
	Index    int      `json:"chunk_index"`
	Metadata Metadata `json:"metadata"`
}

// Options controls chunking behavior.
type Options struct {
	TargetTokens int              // preferred chunk size
	MaxTokens    int              // hard cap per chunk
	MinTokens    int              // minimum size to emit (non-terminal)
	// PreserveStructure enables section-based chunking for markdown input.
	PreserveStructure bool
	Format            structure.Format
	// MinStructureConfidence gates the article-based strategy.
	MinStructureConfidence float64
}

// DefaultOptions returns the stock chunking options.
func DefaultOptions() Options {
	return Options{
		TargetTokens:           350,
		MaxTokens:              450,
		MinTokens:              200,
		PreserveStructure:      true,
		Format:                 structure.FormatPlain,
		MinStructureConfidence: 0.7,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.TargetTokens <= 0 {
		o.TargetTokens = def.TargetTokens
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = def.MaxTokens
	}
	if o.MaxTokens < o.TargetTokens {
		o.MaxTokens = o.TargetTokens
	}
	if o.MinTokens <= 0 {
		o.MinTokens = def.MinTokens
	}
	if o.MinTokens > o.TargetTokens {
		o.MinTokens = o.TargetTokens
	}
	if o.Format == "" {
		o.Format = def.Format
	}
	if o.MinStructureConfidence <= 0 {
		o.MinStructureConfidence = def.MinStructureConfidence
	}
	return o
}
