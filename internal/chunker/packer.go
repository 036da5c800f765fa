package chunker

import (
	"regexp"
	"strings"

	"github.com/dgallion1/docslice/internal/token"
)

// Packer greedily groups sentences into token-budgeted chunks, repeating
// the last sentence of each chunk at the start of the next so context
// survives the boundary.
type Packer struct {
	counter token.Counter
}

// NewPacker returns a Packer using the given token counter, or the default
// estimator when counter is nil.
func NewPacker(counter token.Counter) *Packer {
	if counter == nil {
		counter = token.Estimator{}
	}
	return &Packer{counter: counter}
}

// Pack groups sentences into chunks within opts budgets. base shifts chunk
// offsets, for packing a span that starts partway into a larger document.
//
// A sentence whose own token count exceeds MaxTokens is split word by word;
// an undersized tail is merged into the previous chunk, or emitted as the
// sole chunk when there is none.
func (p *Packer) Pack(sentences []string, opts Options, base int) []Chunk {
	opts = opts.withDefaults()
	if len(sentences) == 0 {
		return nil
	}

	// Sentence offsets within the normalized sentence stream.
	offs := make([]int, len(sentences))
	pos := 0
	for i, s := range sentences {
		offs[i] = pos
		pos += len(s) + 1
	}

	var chunks []Chunk
	var buf []int // indexes into sentences
	carried := false

	// newContent reports whether buf holds anything beyond the sentence
	// carried over from the previous chunk.
	newContent := func() bool {
		if carried {
			return len(buf) > 1
		}
		return len(buf) > 0
	}

	for si, s := range sentences {
		if p.counter.Count(s) > opts.MaxTokens {
			if newContent() {
				p.emit(&chunks, sentences, offs, buf, carried, base)
			}
			buf, carried = nil, false
			p.splitOversized(&chunks, s, offs[si], opts, base)
			continue
		}

		switch {
		case len(buf) == 0 || p.counter.Count(joinIdx(sentences, buf)+" "+s) <= opts.MaxTokens:
			buf = append(buf, si)
		case carried && len(buf) == 1:
			// The buffer holds only the sentence carried from the previous
			// chunk; drop it rather than emit a duplicate.
			buf = []int{si}
			carried = false
		default:
			last := buf[len(buf)-1]
			p.emit(&chunks, sentences, offs, buf, carried, base)
			if p.counter.Count(sentences[last]+" "+s) <= opts.MaxTokens {
				buf = []int{last, si}
				carried = true
			} else {
				// The overlap sentence plus this one would already blow
				// the budget; start clean.
				buf = []int{si}
				carried = false
			}
		}

		// Flush eagerly once the buffer reaches the target, to keep chunk
		// sizes near TargetTokens rather than MaxTokens.
		if t := p.counter.Count(joinIdx(sentences, buf)); t >= opts.TargetTokens && t >= opts.MinTokens {
			last := buf[len(buf)-1]
			p.emit(&chunks, sentences, offs, buf, carried, base)
			buf = []int{last}
			carried = true
		}
	}

	if newContent() {
		fresh := buf
		if carried {
			fresh = buf[1:]
		}
		if t := p.counter.Count(joinIdx(sentences, buf)); t >= opts.MinTokens || len(chunks) == 0 {
			p.emit(&chunks, sentences, offs, buf, carried, base)
		} else {
			p.mergeTail(&chunks, sentences, offs, fresh, opts, base)
		}
	}

	return chunks
}

func (p *Packer) emit(chunks *[]Chunk, sentences []string, offs []int, idxs []int, carried bool, base int) {
	content := joinIdx(sentences, idxs)
	first, last := idxs[0], idxs[len(idxs)-1]
	*chunks = append(*chunks, Chunk{
		Content: content,
		Index:   len(*chunks),
		Metadata: Metadata{
			TokenCount:    p.counter.Count(content),
			SentenceCount: len(idxs),
			CharStart:     base + offs[first],
			CharEnd:       base + offs[last] + len(sentences[last]),
			ContentType:   classifyContent(content),
			HasOverlap:    carried,
		},
	})
}

// splitOversized splits a sentence whose own token count exceeds MaxTokens
// word by word. This is the only path allowed to ignore MinTokens and to
// produce non-overlapping chunks regardless of position.
func (p *Packer) splitOversized(chunks *[]Chunk, s string, sentStart int, opts Options, base int) {
	content := ""
	curStart := sentStart
	pos := sentStart

	flush := func() {
		if content == "" {
			return
		}
		*chunks = append(*chunks, Chunk{
			Content: content,
			Index:   len(*chunks),
			Metadata: Metadata{
				TokenCount:    p.counter.Count(content),
				SentenceCount: 1,
				CharStart:     base + curStart,
				CharEnd:       base + curStart + len(content),
				ContentType:   classifyContent(content),
			},
		})
		content = ""
	}

	for _, w := range strings.Fields(s) {
		switch {
		case content == "":
			curStart = pos
			content = w
		case p.counter.Count(content+" "+w) > opts.MaxTokens:
			flush()
			curStart = pos
			content = w
		default:
			content += " " + w
		}
		pos += len(w) + 1
	}
	flush()
}

// mergeTail folds an undersized final buffer into the previous chunk. When
// the merge would push the previous chunk past MaxTokens, the tail is
// emitted as an undersized terminal chunk instead.
func (p *Packer) mergeTail(chunks *[]Chunk, sentences []string, offs []int, fresh []int, opts Options, base int) {
	tail := joinIdx(sentences, fresh)
	prev := &(*chunks)[len(*chunks)-1]
	merged := prev.Content + " " + tail
	if p.counter.Count(merged) > opts.MaxTokens {
		p.emit(chunks, sentences, offs, fresh, false, base)
		return
	}
	last := fresh[len(fresh)-1]
	prev.Content = merged
	prev.Metadata.TokenCount = p.counter.Count(merged)
	prev.Metadata.SentenceCount += len(fresh)
	prev.Metadata.CharEnd = base + offs[last] + len(sentences[last])
	prev.Metadata.ContentType = classifyContent(merged)
}

func joinIdx(sentences []string, idxs []int) string {
	var b strings.Builder
	for k, i := range idxs {
		if k > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(sentences[i])
	}
	return b.String()
}

// Markup signals used for content classification. Content is whitespace
// normalized, so markers are matched as tokens rather than line prefixes.
var (
	headingSignalRe = regexp.MustCompile(`(?:^|\s)#{1,6}\s`)
	listSignalRe    = regexp.MustCompile(`(?:^|\s)(?:[-*•]|\d{1,3}[.)])\s`)
	tableSignalRe   = regexp.MustCompile(`\|[^|\n]*\|`)
)

// classifyContent derives a ContentType from independent markup signals:
// zero signals is a paragraph, exactly one is that type, more is mixed.
func classifyContent(content string) ContentType {
	var found []ContentType
	if headingSignalRe.MatchString(content) {
		found = append(found, ContentHeading)
	}
	if listSignalRe.MatchString(content) {
		found = append(found, ContentList)
	}
	if tableSignalRe.MatchString(content) {
		found = append(found, ContentTable)
	}
	switch len(found) {
	case 0:
		return ContentParagraph
	case 1:
		return found[0]
	default:
		return ContentMixed
	}
}
