// Package schema builds schema.org JSON-LD documents.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const Context = "https://schema.org"

// DefaultArticleSpeakable are the selectors Article markup flags for
// text-to-speech.
var DefaultArticleSpeakable = []string{".article-summary", ".article-intro", "h1", "h2"}

// QA is one question and answer pair.
type QA struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

type FAQPage struct {
	Context    string     `json:"@context"`
	Type       string     `json:"@type"`
	MainEntity []Question `json:"mainEntity"`
}

type Question struct {
	Type           string `json:"@type"`
	Name           string `json:"name"`
	AcceptedAnswer Answer `json:"acceptedAnswer"`
}

type Answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

// FAQ builds FAQPage markup.
func FAQ(qs []QA) FAQPage {
	page := FAQPage{Context: Context, Type: "FAQPage", MainEntity: make([]Question, 0, len(qs))}
	for _, q := range qs {
		page.MainEntity = append(page.MainEntity, Question{
			Type:           "Question",
			Name:           q.Question,
			AcceptedAnswer: Answer{Type: "Answer", Text: q.Answer},
		})
	}
	return page
}

// ParseQA splits "question:answer" at the first colon.
func ParseQA(pair string) (QA, bool) {
	q, a, ok := strings.Cut(pair, ":")
	if !ok {
		return QA{}, false
	}
	return QA{Question: strings.TrimSpace(q), Answer: strings.TrimSpace(a)}, true
}

type SpeakableSpecification struct {
	Type        string   `json:"@type"`
	CSSSelector []string `json:"cssSelector"`
}

// Speakable builds a SpeakableSpecification over the selectors.
func Speakable(selectors ...string) *SpeakableSpecification {
	return &SpeakableSpecification{Type: "SpeakableSpecification", CSSSelector: selectors}
}

// WebPage carries page-level speakable markup.
type WebPage struct {
	Context   string                  `json:"@context"`
	Type      string                  `json:"@type"`
	Speakable *SpeakableSpecification `json:"speakable"`
}

// SpeakablePage builds WebPage markup with speakable selectors.
func SpeakablePage(selectors ...string) WebPage {
	return WebPage{Context: Context, Type: "WebPage", Speakable: Speakable(selectors...)}
}

// Marshal renders v as indented JSON without HTML escaping.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ScriptTag wraps v in an application/ld+json script element.
func ScriptTag(v any) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", err
	}
	// A literal "</" would end the script element early.
	body := strings.ReplaceAll(string(data), "</", `<\/`)
	return "<script type=\"application/ld+json\">\n" + body + "\n</script>", nil
}
