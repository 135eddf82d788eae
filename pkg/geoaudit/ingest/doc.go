package ingest

import (
	"errors"
	"strings"
)

// Heading is a document heading with its level (1 for h1 ... 6 for h6).
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Document is the format-independent view of a parsed page.
type Document struct {
	Title      string    `json:"title"`
	Headings   []Heading `json:"headings"`
	Paragraphs []string  `json:"paragraphs"`
	WordCount  int       `json:"word_count"`
}

// Validate checks if the document has usable structure
func (d *Document) Validate() error {
	if d.WordCount < 0 {
		return errors.New("doc word count must not be negative")
	}

	for _, h := range d.Headings {
		if h.Level < 1 || h.Level > 6 {
			return errors.New("doc heading level must be between 1 and 6")
		}
	}

	return nil
}

// Body joins the paragraphs with single spaces.
func (d *Document) Body() string {
	return strings.Join(d.Paragraphs, " ")
}

// IsEmpty reports whether the document has no words.
func (d *Document) IsEmpty() bool {
	return d.WordCount == 0
}

// HeadingsAt returns heading texts of the given level in document order.
func (d *Document) HeadingsAt(level int) []string {
	var out []string
	for _, h := range d.Headings {
		if h.Level == level {
			out = append(out, h.Text)
		}
	}
	return out
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
