package optimize

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/cognicore/geoaudit/pkg/geoaudit/schema"
)

// ContentOptions toggles the content rewrites.
type ContentOptions struct {
	AddTLDR          bool `yaml:"add_tldr"`
	AddFAQ           bool `yaml:"add_faq"`
	AddEvidenceTable bool `yaml:"add_evidence_table"`
}

func DefaultContentOptions() ContentOptions {
	return ContentOptions{AddTLDR: true, AddFAQ: true, AddEvidenceTable: true}
}

// Answer-length window for summaries and FAQ answers, in words.
const (
	answerMinWords = 40
	answerMaxWords = 60

	maxFAQs          = 5
	maxEvidenceRows  = 10
	minStatistics    = 3
	metaDescMaxBytes = 160
	faqHeading       = "<h2>Frequently Asked Questions</h2>"
)

// Outline is the text skeleton of an HTML page.
type Outline struct {
	Title      string
	H1         []string
	H2         []string
	H3         []string
	Paragraphs []string
}

// ParseOutline collects the title, headings and paragraph texts.
func ParseOutline(doc string) (Outline, error) {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return Outline{}, fmt.Errorf("parse html: %w", err)
	}
	texts := func(sel string) []string {
		var out []string
		d.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if t := strings.TrimSpace(s.Text()); t != "" {
				out = append(out, t)
			}
		})
		return out
	}
	return Outline{
		Title:      strings.TrimSpace(d.Find("title").First().Text()),
		H1:         texts("body h1"),
		H2:         texts("body h2"),
		H3:         texts("body h3"),
		Paragraphs: texts("body p"),
	}, nil
}

// OutlineStats summarizes the page before rewriting.
type OutlineStats struct {
	WordCount  int `json:"word_count"`
	Paragraphs int `json:"paragraphs"`
	H2Count    int `json:"h2_count"`
	H3Count    int `json:"h3_count"`
}

func (o Outline) Stats() OutlineStats {
	words := 0
	for _, p := range o.Paragraphs {
		words += CountWords(p)
	}
	return OutlineStats{WordCount: words, Paragraphs: len(o.Paragraphs), H2Count: len(o.H2), H3Count: len(o.H3)}
}

// ContentResult is a content rewrite plus what it was derived from.
type ContentResult struct {
	Result
	Original   OutlineStats `json:"original_stats"`
	TLDR       string       `json:"tldr,omitempty"`
	FAQ        []schema.QA  `json:"faq,omitempty"`
	Statistics []Statistic  `json:"statistics,omitempty"`
}

// Content adds a meta description, tightens the opening paragraph and
// appends FAQ and data summary sections.
func (o *Optimizer) Content(doc string) (ContentResult, error) {
	outline, err := ParseOutline(doc)
	if err != nil {
		return ContentResult{}, err
	}
	res := ContentResult{Result: Result{HTML: doc}, Original: outline.Stats()}

	if o.content.AddTLDR {
		res.TLDR = GenerateTLDR(outline, answerMaxWords)
		if strings.Contains(res.HTML, "<head") && !strings.Contains(res.HTML, `<meta name="description"`) {
			meta := `<meta name="description" content="` + html.EscapeString(truncate(res.TLDR, metaDescMaxBytes)) + `">`
			if out, ok := insertBefore(res.HTML, "</head>", meta); ok {
				res.HTML = out
				res.note(fmt.Sprintf("Added meta description (%d words)", CountWords(res.TLDR)))
			}
		}
		if len(outline.Paragraphs) > 0 {
			first := outline.Paragraphs[0]
			if CountWords(first) > answerMaxWords {
				direct := strings.Join(firstN(SplitSentences(first), 2), " ")
				if old := "<p>" + first + "</p>"; strings.Contains(res.HTML, old) {
					res.HTML = strings.Replace(res.HTML, old, "<p>"+direct+"</p>", 1)
					res.note("Optimized first paragraph for directness")
				}
			}
		}
	}

	if o.content.AddFAQ {
		res.FAQ = FAQFromOutline(outline)
		if len(res.FAQ) > 0 {
			var b strings.Builder
			b.WriteString("\n" + faqHeading + "\n\n")
			for _, qa := range res.FAQ {
				fmt.Fprintf(&b, "<h3>%s</h3>\n<p>%s</p>\n\n", html.EscapeString(qa.Question), html.EscapeString(qa.Answer))
			}
			if out, ok := insertBefore(res.HTML, "</body>", b.String()); ok {
				res.HTML = out
				res.note(fmt.Sprintf("Added FAQ section (%d questions)", len(res.FAQ)))
			}
		}
	}

	if o.content.AddEvidenceTable {
		res.Statistics = ExtractStatistics(strings.Join(outline.Paragraphs, " "))
		if len(res.Statistics) >= minStatistics {
			section := "\n<h2>Data Summary</h2>\n" + EvidenceTable(res.Statistics) + "\n"
			out, ok := insertBefore(res.HTML, faqHeading, section)
			if !ok {
				out, ok = insertBefore(res.HTML, "</body>", section)
			}
			if ok {
				res.HTML = out
				res.note(fmt.Sprintf("Added data summary table (%d points)", len(res.Statistics)))
			}
		}
	}

	o.logger.Debug("content rewrite", zap.Int("changes", len(res.Changes)), zap.Int("statistics", len(res.Statistics)))
	return res, nil
}

// GenerateTLDR takes the first sentence of up to three leading
// paragraphs while they fit in limit words, stopping once 40 words are
// collected. Without a usable paragraph it falls back to the topic.
func GenerateTLDR(o Outline, limit int) string {
	topic := o.Title
	if len(o.H1) > 0 {
		topic = o.H1[0]
	}
	var parts []string
	words := 0
	for _, p := range firstN(o.Paragraphs, 3) {
		if words+CountWords(p) <= limit {
			if s := SplitSentences(p); len(s) > 0 {
				parts = append(parts, s[0])
				words += CountWords(s[0])
			}
		}
		if words >= answerMinWords {
			break
		}
	}
	if len(parts) == 0 {
		return strings.TrimSpace(topic + ". " + strings.Join(firstN(o.Paragraphs, 1), " "))
	}
	return strings.Join(parts, " ")
}

var questionRules = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`(?i)^About (.+)`), "What is ${1}?"},
	{regexp.MustCompile(`(?i)^(.+) Services?$`), "What ${1} services do you offer?"},
	{regexp.MustCompile(`(?i)^Our (.+)`), "What is your ${1}?"},
	{regexp.MustCompile(`(?i)^Why (.+)`), "Why ${1}?"},
	{regexp.MustCompile(`(?i)^How (.+)`), "How ${1}?"},
	{regexp.MustCompile(`(?i)^Benefits?$`), "What are the benefits?"},
	{regexp.MustCompile(`(?i)^Contact$`), "How do I contact you?"},
}

// QuestionFromHeading phrases an H2 as a question. The first matching
// rule wins; headings that already end in "?" are returned unchanged.
func QuestionFromHeading(h string) string {
	if strings.HasSuffix(strings.TrimSpace(h), "?") {
		return h
	}
	for _, r := range questionRules {
		if r.pattern.MatchString(h) {
			return r.pattern.ReplaceAllString(h, r.repl)
		}
	}
	return "What is " + strings.ToLower(h) + "?"
}

// FAQFromOutline pairs up to five H2s with the paragraph at the same
// index, trimming each answer to the 40-60 word window.
func FAQFromOutline(o Outline) []schema.QA {
	var faqs []schema.QA
	for i, h := range firstN(o.H2, maxFAQs) {
		if i >= len(o.Paragraphs) {
			break
		}
		faqs = append(faqs, schema.QA{Question: QuestionFromHeading(h), Answer: answerFrom(o.Paragraphs[i])})
	}
	return faqs
}

func answerFrom(para string) string {
	sentences := SplitSentences(para)
	var parts []string
	words := 0
	for _, s := range sentences {
		n := CountWords(s)
		if words+n <= answerMaxWords {
			parts = append(parts, s)
			words += n
		}
		if words >= answerMinWords {
			break
		}
	}
	switch {
	case len(parts) > 0:
		return strings.Join(parts, " ")
	case len(sentences) > 0:
		return sentences[0]
	default:
		return truncate(para, 200)
	}
}

// Statistic is a number found in running text with up to 50 bytes of
// surrounding context.
type Statistic struct {
	Value   string `json:"value"`
	Context string `json:"context"`
}

var statisticPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+(?:,\d{3})*(?:\.\d+)?)\s*(%|percent|years?|months?|patients?|people|users?|cases?)`),
	regexp.MustCompile(`(?i)(\d+(?:,\d{3})*(?:\.\d+)?)\+?\s+(experience|years of experience)`),
	regexp.MustCompile(`(?i)(\$\d+(?:,\d{3})*(?:\.\d+)?(?:M|K|B)?)`),
	regexp.MustCompile(`(?i)(\d+(?:,\d{3})*)\s+(\w+)`),
}

const statContext = 50

// ExtractStatistics runs each pattern over text in turn. A number can be
// reported by more than one pattern.
func ExtractStatistics(text string) []Statistic {
	var stats []Statistic
	for _, p := range statisticPatterns {
		for _, m := range p.FindAllStringIndex(text, -1) {
			stats = append(stats, Statistic{
				Value:   text[m[0]:m[1]],
				Context: window(text, m[0]-statContext, m[1]+statContext),
			})
		}
	}
	return stats
}

// window slices text[lo:hi] after clamping both ends to rune boundaries.
func window(text string, lo, hi int) string {
	lo = max(lo, 0)
	hi = min(hi, len(text))
	for lo < hi && lo > 0 && !utf8.RuneStart(text[lo]) {
		lo++
	}
	for hi > lo && hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi--
	}
	return text[lo:hi]
}

// EvidenceTable renders up to ten statistics as an HTML table.
func EvidenceTable(stats []Statistic) string {
	if len(stats) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<table class=\"data-summary\">\n<thead><tr><th>Metric</th><th>Value</th><th>Context</th></tr></thead>\n<tbody>\n")
	for _, s := range firstN(stats, maxEvidenceRows) {
		ctx := strings.TrimSpace(s.Context)
		metric := "Data point"
		if f := strings.Fields(ctx); len(f) > 0 {
			metric = f[0]
		}
		if len(ctx) > statContext {
			ctx = truncate(ctx, statContext) + "..."
		}
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(metric), html.EscapeString(s.Value), html.EscapeString(ctx))
	}
	b.WriteString("</tbody>\n</table>")
	return b.String()
}

// SplitParagraph breaks text longer than maxWords into sentence-aligned
// chunks of at most maxWords where possible. Shorter text is returned
// whole; it is never padded.
func SplitParagraph(text string, maxWords int) []string {
	if CountWords(text) <= maxWords {
		return []string{text}
	}
	var chunks, cur []string
	words := 0
	for _, s := range SplitSentences(text) {
		n := CountWords(s)
		if words+n > maxWords && len(cur) > 0 {
			chunks = append(chunks, strings.Join(cur, " "))
			cur, words = nil, 0
		}
		cur = append(cur, s)
		words += n
	}
	if len(cur) > 0 {
		chunks = append(chunks, strings.Join(cur, " "))
	}
	return chunks
}

// ShortenSentences splits sentences over maxWords at commas. Sentences
// without a comma are kept as they are.
func ShortenSentences(text string, maxWords int) string {
	var out []string
	for _, s := range SplitSentences(text) {
		if CountWords(s) <= maxWords || !strings.Contains(s, ",") {
			out = append(out, s)
			continue
		}
		var cur []string
		words := 0
		flush := func(terminals string) {
			joined := strings.Join(cur, ", ")
			if joined == "" {
				return
			}
			if !strings.ContainsRune(terminals, rune(joined[len(joined)-1])) {
				joined += "."
			}
			out = append(out, joined)
		}
		for _, part := range strings.Split(s, ",") {
			part = strings.TrimSpace(part)
			n := CountWords(part)
			if words+n > maxWords && len(cur) > 0 {
				flush(".")
				cur, words = nil, 0
			}
			if part != "" {
				cur = append(cur, part)
			}
			words += n
		}
		flush(".!?")
	}
	return strings.Join(out, " ")
}

func firstN[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
