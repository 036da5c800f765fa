package structure

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Config controls detection behavior. Keyword tables are data so new
// languages or domain vocabularies can be added without code changes.
type Config struct {
	// MaxPatterns caps each scanner's match count to bound memory on
	// adversarial input.
	MaxPatterns int

	// Documents larger than SampleThresholdBytes are detected on their
	// first SampleBytes only, and the confidence is multiplied by
	// SamplePenalty to reflect the reduced certainty.
	SampleThresholdBytes int
	SampleBytes          int
	SamplePenalty        float64

	// Type inference thresholds.
	MinArticlesRegulatory int
	MinChaptersManual     int
	MinSectionsReport     int

	// Keyword tables. Entries are literal words, matched case-insensitively
	// at the start of a line.
	ArticleKeywords []string
	SectionKeywords []string
	OrdinalWords    []string
	ChapterKeywords []string
}

// DefaultConfig returns the stock detection configuration.
func DefaultConfig() Config {
	return Config{
		MaxPatterns:          1000,
		SampleThresholdBytes: 5 * 1024 * 1024,
		SampleBytes:          500 * 1024,
		SamplePenalty:        0.9,

		MinArticlesRegulatory: 5,
		MinChaptersManual:     3,
		MinSectionsReport:     10,

		ArticleKeywords: []string{"Articolo", "Art.", "Article", "Artículo", "Artikel"},
		SectionKeywords: []string{"Sezione", "Parte", "Section", "Part", "Capo", "Titolo", "Allegato"},
		OrdinalWords:    []string{"Prima", "Seconda", "Terza", "Quarta", "Quinta", "First", "Second", "Third", "Fourth", "Fifth"},
		ChapterKeywords: []string{"Capitolo", "Chapter", "Capítulo", "Kapitel"},
	}
}

// dedupWindow is the distance in chars within which a repeated marker for
// the same article number or title is treated as a duplicate match.
const dedupWindow = 50

// Detector scans text for article/section/chapter patterns. Safe for
// concurrent use; all state is read-only after construction.
type Detector struct {
	cfg Config

	articleRe *regexp.Regexp
	sectionRe *regexp.Regexp
	chapterRe *regexp.Regexp
	headingRe *regexp.Regexp
}

// NewDetector compiles the keyword tables in cfg. Zero-value fields are
// replaced with defaults.
func NewDetector(cfg Config) *Detector {
	def := DefaultConfig()
	if cfg.MaxPatterns <= 0 {
		cfg.MaxPatterns = def.MaxPatterns
	}
	if cfg.SampleThresholdBytes <= 0 {
		cfg.SampleThresholdBytes = def.SampleThresholdBytes
	}
	if cfg.SampleBytes <= 0 {
		cfg.SampleBytes = def.SampleBytes
	}
	if cfg.SamplePenalty <= 0 || cfg.SamplePenalty > 1 {
		cfg.SamplePenalty = def.SamplePenalty
	}
	if cfg.MinArticlesRegulatory <= 0 {
		cfg.MinArticlesRegulatory = def.MinArticlesRegulatory
	}
	if cfg.MinChaptersManual <= 0 {
		cfg.MinChaptersManual = def.MinChaptersManual
	}
	if cfg.MinSectionsReport <= 0 {
		cfg.MinSectionsReport = def.MinSectionsReport
	}
	if len(cfg.ArticleKeywords) == 0 {
		cfg.ArticleKeywords = def.ArticleKeywords
	}
	if len(cfg.SectionKeywords) == 0 {
		cfg.SectionKeywords = def.SectionKeywords
	}
	if len(cfg.OrdinalWords) == 0 {
		cfg.OrdinalWords = def.OrdinalWords
	}
	if len(cfg.ChapterKeywords) == 0 {
		cfg.ChapterKeywords = def.ChapterKeywords
	}

	return &Detector{
		cfg:       cfg,
		articleRe: regexp.MustCompile(`(?mi)^[ \t]{0,8}(?:` + keywordAlt(cfg.ArticleKeywords) + `)\s+(\d{1,6})\b`),
		sectionRe: regexp.MustCompile(`(?mi)^[ \t]{0,8}((?:` + keywordAlt(cfg.SectionKeywords) + `)\s+(?:\d{1,4}|[IVXLCDM]{1,8}|` + keywordAlt(cfg.OrdinalWords) + `)\b[^\n]*)`),
		chapterRe: regexp.MustCompile(`(?mi)^[ \t]{0,8}(?:` + keywordAlt(cfg.ChapterKeywords) + `)\s+(\d{1,4}|[IVXLCDM]{1,8})\b[ \t]*(?::[ \t]*([^\n]+))?`),
		headingRe: regexp.MustCompile(`^(#{1,6})[ \t]+(.*)$`),
	}
}

func keywordAlt(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}

// Detect scans text for structural patterns and infers a document type
// with a confidence score. Absence of structure is a valid low-confidence
// result, never an error.
func (d *Detector) Detect(text string, format Format) DocumentStructure {
	sampled := false
	if len(text) > d.cfg.SampleThresholdBytes {
		cut := d.cfg.SampleBytes
		if cut > len(text) {
			cut = len(text)
		}
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
		sampled = true
	}

	st := DocumentStructure{
		Articles: d.detectArticles(text),
		Sections: d.detectSections(text, format),
		Chapters: d.detectChapters(text),
	}
	st.Type = d.inferType(len(st.Articles), len(st.Sections), len(st.Chapters))
	st.Confidence = d.confidence(st)
	if sampled {
		st.Confidence *= d.cfg.SamplePenalty
	}
	return st
}

func (d *Detector) detectArticles(text string) []ArticlePattern {
	matches := d.articleRe.FindAllStringSubmatchIndex(text, d.cfg.MaxPatterns)
	var articles []ArticlePattern
	lastSeen := make(map[int]int)
	for _, m := range matches {
		start := m[0]
		num, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		if prev, ok := lastSeen[num]; ok && start-prev < dedupWindow {
			continue
		}
		lastSeen[num] = start
		articles = append(articles, ArticlePattern{
			Number: num,
			Text:   strings.TrimSpace(text[m[0]:m[1]]),
			Start:  start,
		})
	}
	for i := range articles {
		if i+1 < len(articles) {
			articles[i].End = articles[i+1].Start
		} else {
			articles[i].End = len(text)
		}
	}
	return articles
}

func (d *Detector) detectSections(text string, format Format) []SectionPattern {
	if format == FormatMarkdown {
		return d.detectMarkdownSections(text)
	}
	return d.detectTextualSections(text)
}

// detectMarkdownSections scans heading markers line by line, tracking byte
// offsets so pattern spans index directly into the source text.
func (d *Detector) detectMarkdownSections(text string) []SectionPattern {
	var sections []SectionPattern
	offset := 0
	for offset < len(text) && len(sections) < d.cfg.MaxPatterns {
		lineEnd := strings.IndexByte(text[offset:], '\n')
		var line string
		if lineEnd < 0 {
			line = text[offset:]
			lineEnd = len(line)
		} else {
			line = text[offset : offset+lineEnd]
			lineEnd++ // consume the newline
		}
		if m := d.headingRe.FindStringSubmatch(line); m != nil {
			sections = append(sections, SectionPattern{
				Title: strings.TrimSpace(m[2]),
				Level: len(m[1]),
				Start: offset,
				Kind:  SectionMarkdown,
			})
		}
		offset += lineEnd
	}
	return sectionEnds(sections, len(text))
}

func (d *Detector) detectTextualSections(text string) []SectionPattern {
	matches := d.sectionRe.FindAllStringSubmatchIndex(text, d.cfg.MaxPatterns)
	var sections []SectionPattern
	lastSeen := make(map[string]int)
	for _, m := range matches {
		start := m[0]
		title := strings.TrimSpace(text[m[2]:m[3]])
		key := strings.ToLower(title)
		if prev, ok := lastSeen[key]; ok && start-prev < dedupWindow {
			continue
		}
		lastSeen[key] = start
		sections = append(sections, SectionPattern{
			Title: title,
			Start: start,
			Kind:  SectionTextual,
		})
	}
	return sectionEnds(sections, len(text))
}

func sectionEnds(sections []SectionPattern, textLen int) []SectionPattern {
	for i := range sections {
		if i+1 < len(sections) {
			sections[i].End = sections[i+1].Start
		} else {
			sections[i].End = textLen
		}
	}
	return sections
}

func (d *Detector) detectChapters(text string) []ChapterPattern {
	matches := d.chapterRe.FindAllStringSubmatchIndex(text, d.cfg.MaxPatterns)
	var chapters []ChapterPattern
	lastSeen := make(map[string]int)
	for _, m := range matches {
		start := m[0]
		numeral := text[m[2]:m[3]]
		key := strings.ToUpper(numeral)
		if prev, ok := lastSeen[key]; ok && start-prev < dedupWindow {
			continue
		}
		lastSeen[key] = start

		num, err := strconv.Atoi(numeral)
		if err != nil {
			num = romanToInt(numeral)
		}
		title := ""
		if m[4] >= 0 {
			title = strings.TrimSpace(text[m[4]:m[5]])
		}
		chapters = append(chapters, ChapterPattern{
			Number:  num,
			Numeral: numeral,
			Title:   title,
			Start:   start,
		})
	}
	for i := range chapters {
		if i+1 < len(chapters) {
			chapters[i].End = chapters[i+1].Start
		} else {
			chapters[i].End = len(text)
		}
	}
	return chapters
}

func (d *Detector) inferType(articles, sections, chapters int) DocType {
	switch {
	case articles >= d.cfg.MinArticlesRegulatory:
		return TypeRegulatory
	case chapters >= d.cfg.MinChaptersManual:
		return TypeManual
	case sections >= d.cfg.MinSectionsReport:
		return TypeReport
	case articles > 0 && sections > 0:
		return TypeMixed
	default:
		return TypeUnknown
	}
}

// confidence is a capped sum of pattern densities, article sequentiality,
// and a bonus for a definite document type. Zero iff no patterns at all.
func (d *Detector) confidence(st DocumentStructure) float64 {
	if st.PatternCount() == 0 {
		return 0
	}
	score := math.Min(float64(len(st.Articles))/20, 1) * 0.4
	score += articleSequentiality(st.Articles)
	score += math.Min(float64(len(st.Sections))/30, 1) * 0.3
	score += math.Min(float64(len(st.Chapters))/10, 1) * 0.2
	if st.Type != TypeUnknown && st.Type != TypeMixed {
		score += 0.1
	}
	return math.Min(score, 1)
}

// articleSequentiality scores how strictly increasing the article numbers
// run: the fraction of increasing consecutive pairs times 0.2, or a flat
// 0.1 for a single article.
func articleSequentiality(articles []ArticlePattern) float64 {
	switch len(articles) {
	case 0:
		return 0
	case 1:
		return 0.1
	}
	increasing := 0
	for i := 1; i < len(articles); i++ {
		if articles[i].Number > articles[i-1].Number {
			increasing++
		}
	}
	return float64(increasing) / float64(len(articles)-1) * 0.2
}

var romanValues = map[byte]int{
	'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000,
}

// romanToInt parses a roman numeral; returns 0 for anything unparseable.
func romanToInt(s string) int {
	s = strings.ToUpper(s)
	total := 0
	for i := 0; i < len(s); i++ {
		v, ok := romanValues[s[i]]
		if !ok {
			return 0
		}
		if i+1 < len(s) && romanValues[s[i+1]] > v {
			total -= v
		} else {
			total += v
		}
	}
	return total
}
