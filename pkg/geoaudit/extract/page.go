package extract

import (
	"strings"

	"github.com/cognicore/geoaudit/pkg/geoaudit/ingest"
)

// FileType identifies the source format of a page.
type FileType string

const (
	HTML     FileType = "html"
	Markdown FileType = "markdown"
	JSX      FileType = "jsx/tsx"
)

// Meta holds the standard meta tags of a page.
type Meta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords,omitempty"`
	Author      string `json:"author,omitempty"`
	Byline      string `json:"byline,omitempty"`
}

// Signals are the structural markers the analyzers score.
type Signals struct {
	H1             []string `json:"h1"`
	H2             []string `json:"h2"`
	H3             []string `json:"h3"`
	HasTLDR        bool     `json:"has_tldr"`
	HasFAQ         bool     `json:"has_faq"`
	HasAuthor      bool     `json:"has_author"`
	HasCredentials bool     `json:"has_credentials"`
	WordCount      int      `json:"word_count"`
	First150Words  string   `json:"first_150_words"`
	First60Words   string   `json:"first_60_words"`
	FullText       string   `json:"-"`
}

// Page is a parsed source file: the format-independent Document plus the
// metadata only some formats carry.
type Page struct {
	Path        string            `json:"file"`
	Type        FileType          `json:"file_type"`
	Document    ingest.Document   `json:"document"`
	Meta        Meta              `json:"meta"`
	OpenGraph   map[string]string `json:"open_graph"`
	Twitter     map[string]string `json:"twitter_cards"`
	Schemas     []map[string]any  `json:"schema"`
	Frontmatter map[string]any    `json:"frontmatter,omitempty"`
	Signals     Signals           `json:"content"`
	Raw         []byte            `json:"-"`
}

func newPage(t FileType) *Page {
	return &Page{
		Type:      t,
		OpenGraph: make(map[string]string),
		Twitter:   make(map[string]string),
	}
}

// HasSchemaType reports whether any JSON-LD block is of the given @type.
func (p *Page) HasSchemaType(schemaType string) bool {
	return len(p.SchemasOfType(schemaType)) > 0
}

// SchemasOfType returns the JSON-LD blocks of the given @type.
func (p *Page) SchemasOfType(schemaType string) []map[string]any {
	var out []map[string]any
	for _, s := range p.Schemas {
		for _, t := range SchemaTypes(s) {
			if t == schemaType {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// SchemaTypes returns the @type values of a JSON-LD object. @type may be a
// string or a list of strings.
func SchemaTypes(schema map[string]any) []string {
	switch v := schema["@type"].(type) {
	case string:
		if v != "" {
			return []string{v}
		}
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// finish fills the derived signals and the Document from the collected text.
func (p *Page) finish(title string, headings []ingest.Heading, paragraphs []string, fullText string) {
	words := strings.Fields(fullText)

	p.Signals.FullText = strings.Join(words, " ")
	p.Signals.WordCount = len(words)
	p.Signals.First150Words = strings.Join(firstN(words, 150), " ")
	p.Signals.First60Words = strings.Join(firstN(words, 60), " ")

	doc := ingest.Document{
		Title:      title,
		Headings:   headings,
		Paragraphs: paragraphs,
		WordCount:  len(words),
	}
	p.Signals.H1 = doc.HeadingsAt(1)
	p.Signals.H2 = doc.HeadingsAt(2)
	p.Signals.H3 = doc.HeadingsAt(3)
	p.Document = doc
}

func firstN(words []string, n int) []string {
	if len(words) > n {
		return words[:n]
	}
	return words
}
