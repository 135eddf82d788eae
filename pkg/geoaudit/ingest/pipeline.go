package ingest

import "strings"

// Region sizes used when splitting a document for keyword analysis.
const (
	DefaultPriorityHeadings = 3
	DefaultPriorityWords    = 100
)

// Pipeline turns a Document into the token regions consumed by the
// keyword classifier:
// title + leading headings + opening words → priority
// later headings + body → secondary
// body → body
type Pipeline struct {
	tokenizer        *Tokenizer
	priorityHeadings int
	priorityWords    int
}

// NewPipeline creates a pipeline with the default region sizes.
func NewPipeline(tokenizer *Tokenizer) *Pipeline {
	return &Pipeline{
		tokenizer:        tokenizer,
		priorityHeadings: DefaultPriorityHeadings,
		priorityWords:    DefaultPriorityWords,
	}
}

// WithPriorityWords returns a copy of the pipeline that takes n opening body
// words into the priority region. Values below 1 keep the current setting.
func (p *Pipeline) WithPriorityWords(n int) *Pipeline {
	cp := *p
	if n > 0 {
		cp.priorityWords = n
	}
	return &cp
}

// Regions holds the token streams of one document.
type Regions struct {
	Priority  []string
	Secondary []string
	Body      []string
}

// Process tokenizes the regions of doc. Regions shorter than the configured
// sizes are truncated to what the document has.
func (p *Pipeline) Process(doc Document) Regions {
	headings := make([]string, len(doc.Headings))
	for i, h := range doc.Headings {
		headings[i] = h.Text
	}

	body := doc.Body()
	bodyWords := strings.Fields(body)

	lead := headings
	if len(lead) > p.priorityHeadings {
		lead = lead[:p.priorityHeadings]
	}
	opening := bodyWords
	if len(opening) > p.priorityWords {
		opening = opening[:p.priorityWords]
	}
	priority := strings.Join([]string{
		doc.Title,
		strings.Join(lead, " "),
		strings.Join(opening, " "),
	}, " ")

	var later []string
	if len(headings) > 1 {
		later = headings[1:]
	}
	secondary := strings.Join(later, " ") + " " + body

	return Regions{
		Priority:  p.tokenizer.Tokenize(priority),
		Secondary: p.tokenizer.Tokenize(secondary),
		Body:      p.tokenizer.Tokenize(body),
	}
}
