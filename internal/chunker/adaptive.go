package chunker

import (
	"strings"

	"github.com/dgallion1/docslice/internal/structure"
	"github.com/dgallion1/docslice/internal/token"
)

// Chunker picks a chunking strategy from detected document structure:
// article-based when articles were found with high confidence, section-based
// for structured markdown, sentence-aware packing otherwise.
type Chunker struct {
	counter token.Counter
	packer  *Packer
}

// New returns a Chunker using the given token counter, or the default
// estimator when counter is nil.
func New(counter token.Counter) *Chunker {
	if counter == nil {
		counter = token.Estimator{}
	}
	return &Chunker{
		counter: counter,
		packer:  NewPacker(counter),
	}
}

// Chunk splits text into a single globally indexed chunk sequence. The
// structure argument may be nil, which forces the sentence-aware fallback.
// Never errors on valid string input; an empty document yields no chunks.
func (c *Chunker) Chunk(text string, st *structure.DocumentStructure, opts Options) []Chunk {
	opts = opts.withDefaults()
	if token.Normalize(text) == "" {
		return nil
	}

	var chunks []Chunk
	switch {
	case st != nil && len(st.Articles) > 0 && st.Confidence > opts.MinStructureConfidence:
		chunks = c.chunkByArticles(text, st.Articles, opts)
	case opts.Format == structure.FormatMarkdown && opts.PreserveStructure && st != nil && len(st.Sections) > 0:
		chunks = c.chunkBySections(text, st.Sections, opts)
	default:
		chunks = c.packer.Pack(SplitSentences(text), opts, 0)
	}

	for i := range chunks {
		chunks[i].Index = i
	}
	return chunks
}

// chunkByArticles emits one complete chunk per article that fits the token
// budget and packs the span of any article that does not, tagging every
// sub-chunk with the article number.
func (c *Chunker) chunkByArticles(text string, articles []structure.ArticlePattern, opts Options) []Chunk {
	var chunks []Chunk
	for _, a := range articles {
		body := strings.TrimSpace(spanOf(text, a.Start, a.End))
		if body == "" {
			continue
		}
		if n := c.counter.Count(body); n <= opts.MaxTokens {
			chunks = append(chunks, Chunk{
				Content: body,
				Metadata: Metadata{
					TokenCount:    n,
					SentenceCount: len(SplitSentences(body)),
					CharStart:     a.Start,
					CharEnd:       a.End,
					ContentType:   classifyContent(body),
					ArticleNumber: a.Number,
					ArticleType:   ArticleComplete,
				},
			})
			continue
		}
		sub := c.packer.Pack(SplitSentences(body), opts, a.Start)
		for i := range sub {
			sub[i].Metadata.ArticleNumber = a.Number
			sub[i].Metadata.ArticleType = ArticlePartial
		}
		chunks = append(chunks, sub...)
	}
	return chunks
}

// chunkBySections packs each section span separately so chunks never
// straddle a heading, tagging results with the section title and level.
func (c *Chunker) chunkBySections(text string, sections []structure.SectionPattern, opts Options) []Chunk {
	var chunks []Chunk
	// Text before the first heading belongs to no section; pack it untagged.
	if first := sections[0].Start; first > 0 {
		if preamble := strings.TrimSpace(text[:first]); preamble != "" {
			chunks = c.packer.Pack(SplitSentences(preamble), opts, 0)
		}
	}
	for _, s := range sections {
		body := strings.TrimSpace(spanOf(text, s.Start, s.End))
		if body == "" {
			continue
		}
		sub := c.packer.Pack(SplitSentences(body), opts, s.Start)
		for i := range sub {
			sub[i].Metadata.SectionTitle = s.Title
			sub[i].Metadata.SectionLevel = s.Level
		}
		chunks = append(chunks, sub...)
	}
	return chunks
}

// spanOf slices text defensively against malformed pattern offsets.
func spanOf(text string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start >= end {
		return ""
	}
	return text[start:end]
}
