package ingest

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinTokenLength is the shortest token (in runes) the tokenizer keeps.
const MinTokenLength = 3

// Tokenizer splits page text into lower-cased words. The stopword set is
// fixed at construction.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// NewTokenizer creates a tokenizer that drops the given stopwords.
func NewTokenizer(stopwords []string) *Tokenizer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{stopwords: stops}
}

// Tokenize returns the words of text in order, duplicates included.
// Words are runs of letters, digits and hyphens; stopwords and words
// shorter than MinTokenLength are dropped.
func (t *Tokenizer) Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, isSeparator)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if word, ok := t.keep(f); ok {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

// IsStopword reports whether the lower-cased word is in the stopword set.
func (t *Tokenizer) IsStopword(word string) bool {
	_, ok := t.stopwords[word]
	return ok
}

func (t *Tokenizer) keep(field string) (string, bool) {
	word := normalizeHyphens(strings.ToLower(field))
	if utf8.RuneCountInString(word) < MinTokenLength || t.IsStopword(word) {
		return "", false
	}
	return word, true
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-'
}

// normalizeHyphens trims edge hyphens and collapses runs of them, so
// "--long---tail-" becomes "long-tail".
func normalizeHyphens(word string) string {
	word = strings.Trim(word, "-")
	if !strings.Contains(word, "--") {
		return word
	}
	var b strings.Builder
	b.Grow(len(word))
	prev := rune(0)
	for _, r := range word {
		if r == '-' && prev == '-' {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
