package ingest

import (
	"testing"
)

func TestDocBody(t *testing.T) {
	doc := Document{
		Title:      "Guide",
		Paragraphs: []string{"First paragraph.", "Second paragraph."},
	}

	if got := doc.Body(); got != "First paragraph. Second paragraph." {
		t.Errorf("Unexpected body %q", got)
	}
}

func TestDocValidate(t *testing.T) {
	valid := Document{
		Title:     "Guide",
		Headings:  []Heading{{Level: 1, Text: "Guide"}, {Level: 2, Text: "Setup"}},
		WordCount: 10,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Valid doc should pass: %v", err)
	}

	badLevel := valid
	badLevel.Headings = []Heading{{Level: 7, Text: "Deep"}}
	if err := badLevel.Validate(); err == nil {
		t.Error("Should error on heading level 7")
	}

	negative := valid
	negative.WordCount = -1
	if err := negative.Validate(); err == nil {
		t.Error("Should error on negative word count")
	}
}

func TestDocHeadingsAt(t *testing.T) {
	doc := Document{Headings: []Heading{
		{Level: 1, Text: "Title"},
		{Level: 2, Text: "One"},
		{Level: 3, Text: "Detail"},
		{Level: 2, Text: "Two"},
	}}

	h2 := doc.HeadingsAt(2)
	if len(h2) != 2 || h2[0] != "One" || h2[1] != "Two" {
		t.Errorf("Unexpected H2 list %v", h2)
	}
	if !(&Document{}).IsEmpty() {
		t.Error("Zero document should be empty")
	}
}

func TestCountWords(t *testing.T) {
	if CountWords("  one two\tthree\n") != 3 {
		t.Error("Expected 3 words")
	}
}
