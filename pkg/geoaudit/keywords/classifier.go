package keywords

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/cognicore/geoaudit/pkg/geoaudit/analytics"
	"github.com/cognicore/geoaudit/pkg/geoaudit/ingest"
)

// BigramBoost multiplies primary 2-gram counts when ranking.
const BigramBoost = 1.5

// MinLongTailFrequency is the lowest count a 3- or 4-gram needs to be kept.
const MinLongTailFrequency = 2

// MinQuestionWords is the shortest question kept.
const MinQuestionWords = 3

// MaxVoiceWords is the longest question still suited to a spoken answer.
const MaxVoiceWords = 10

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

var interrogatives = map[string]struct{}{
	"what": {}, "how": {}, "why": {}, "when": {}, "where": {}, "who": {},
	"which": {}, "whose": {}, "can": {}, "does": {}, "is": {}, "are": {},
}

// Options sizes each keyword list.
type Options struct {
	TopPrimary  int
	TopSemantic int
	TopLongTail int
}

// DefaultOptions returns the standard list sizes.
func DefaultOptions() Options {
	return Options{TopPrimary: 10, TopSemantic: 15, TopLongTail: 10}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.TopPrimary < 1 {
		o.TopPrimary = def.TopPrimary
	}
	if o.TopSemantic < 1 {
		o.TopSemantic = def.TopSemantic
	}
	if o.TopLongTail < 1 {
		o.TopLongTail = def.TopLongTail
	}
	return o
}

// Classifier buckets a document's n-grams into keyword kinds.
type Classifier struct {
	pipeline *ingest.Pipeline
	opts     Options
}

// NewClassifier creates a classifier over the given pipeline.
func NewClassifier(pipeline *ingest.Pipeline, opts Options) *Classifier {
	return &Classifier{pipeline: pipeline, opts: opts.withDefaults()}
}

// Classify runs every keyword extractor over doc.
func (c *Classifier) Classify(doc ingest.Document) Analysis {
	regions := c.pipeline.Process(doc)

	primary := c.primary(regions.Priority)
	return Analysis{
		TotalWords:  doc.WordCount,
		UniqueWords: analytics.CountNGrams(regions.Body, 1).Len(),
		Primary:     primary,
		Semantic:    c.semantic(regions.Secondary, primary),
		LongTail:    c.longTail(regions.Body),
		Questions:   Questions(doc),
	}
}

func (c *Classifier) primary(tokens []string) []Keyword {
	top := c.opts.TopPrimary
	var out []Keyword
	for _, e := range analytics.CountNGrams(tokens, 1).MostCommon(top) {
		out = append(out, Keyword{Text: e.Gram, Kind: Primary, Frequency: e.Count, Length: 1, Rank: float64(e.Count)})
	}
	for _, e := range analytics.CountNGrams(tokens, 2).MostCommon(top / 2) {
		out = append(out, Keyword{Text: e.Gram, Kind: Primary, Frequency: e.Count, Length: 2, Rank: float64(e.Count) * BigramBoost})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rank > out[j].Rank
	})
	return truncate(out, top)
}

func (c *Classifier) semantic(tokens []string, primary []Keyword) []Keyword {
	exclude := make(map[string]struct{})
	for _, k := range primary {
		for _, w := range strings.Fields(k.Text) {
			exclude[w] = struct{}{}
		}
	}
	filtered := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := exclude[tok]; !ok {
			filtered = append(filtered, tok)
		}
	}

	top := c.opts.TopSemantic
	var out []Keyword
	for _, e := range analytics.CountNGrams(filtered, 1).MostCommon(top) {
		out = append(out, Keyword{Text: e.Gram, Kind: Semantic, Frequency: e.Count, Length: 1, Rank: float64(e.Count)})
	}
	for _, e := range analytics.CountNGrams(filtered, 2).MostCommon(top / 2) {
		out = append(out, Keyword{Text: e.Gram, Kind: Semantic, Frequency: e.Count, Length: 2, Rank: float64(e.Count)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Frequency > out[j].Frequency
	})
	return truncate(out, top)
}

func (c *Classifier) longTail(tokens []string) []Keyword {
	top := c.opts.TopLongTail
	var out []Keyword
	add := func(n, limit int) {
		for _, e := range analytics.CountNGrams(tokens, n).MostCommon(limit) {
			if e.Count < MinLongTailFrequency {
				continue
			}
			out = append(out, Keyword{Text: e.Gram, Kind: LongTail, Frequency: e.Count, Length: n, Rank: float64(e.Count)})
		}
	}
	add(3, top)
	add(4, top/2)
	return truncate(out, top)
}

// Questions finds question sentences in the body and question headings.
func Questions(doc ingest.Document) []QuestionKeyword {
	var out []QuestionKeyword

	for _, sentence := range sentenceSplit.Split(doc.Body(), -1) {
		sentence = strings.TrimSpace(sentence)
		if q, ok := asQuestion(sentence, SourceNatural); ok {
			out = append(out, q)
		}
	}
	for _, h := range doc.Headings {
		if q, ok := asQuestion(strings.TrimSpace(h.Text), SourceHeading); ok {
			out = append(out, q)
		}
	}
	return out
}

func asQuestion(text, source string) (QuestionKeyword, bool) {
	words := strings.Fields(text)
	if len(words) < MinQuestionWords {
		return QuestionKeyword{}, false
	}
	first := strings.ToLower(strings.TrimFunc(words[0], func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	_, interrogative := interrogatives[first]
	if !interrogative && !strings.Contains(text, "?") {
		return QuestionKeyword{}, false
	}
	return QuestionKeyword{
		Text:                 text,
		Source:               source,
		WordCount:            len(words),
		VoiceSearchOptimized: len(words) <= MaxVoiceWords,
	}, true
}

func truncate(kws []Keyword, n int) []Keyword {
	if len(kws) > n {
		return kws[:n]
	}
	return kws
}
