package ingest

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenizerBasic(t *testing.T) {
	stopwords := []string{"the", "a", "and", "of", "over"}
	tokenizer := NewTokenizer(stopwords)

	text := "The quick brown fox jumps over the lazy dog"
	tokens := tokenizer.Tokenize(text)

	expected := []string{"quick", "brown", "fox", "jumps", "lazy", "dog"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Expected %v, got %v", expected, tokens)
	}
}

func TestTokenizerShortTokens(t *testing.T) {
	tokenizer := NewTokenizer([]string{})

	tokens := tokenizer.Tokenize("AI is an ok go-to tool")

	// "ai", "is", "an", "ok" have two runes or fewer
	expected := []string{"go-to", "tool"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Expected %v, got %v", expected, tokens)
	}
}

func TestTokenizerHyphens(t *testing.T) {
	tokenizer := NewTokenizer([]string{})

	tokens := tokenizer.Tokenize("long-tail keywords --- and -edge- cases")

	expected := []string{"long-tail", "keywords", "and", "edge", "cases"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Expected %v, got %v", expected, tokens)
	}
}

func TestTokenizerPunctuation(t *testing.T) {
	tokenizer := NewTokenizer([]string{})

	tokens := tokenizer.Tokenize("SEO, GEO & schema.org! (2024) snake_case")

	expected := []string{"seo", "geo", "schema", "org", "2024", "snake", "case"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Expected %v, got %v", expected, tokens)
	}
}

func TestTokenizerCaseNormalization(t *testing.T) {
	tokenizer := NewTokenizer([]string{"THE"})

	tokens := tokenizer.Tokenize("The BERT GPT-4 Transformer")

	for _, tok := range tokens {
		if tok != strings.ToLower(tok) {
			t.Errorf("Token %s should be lowercased", tok)
		}
		if tok == "the" {
			t.Error("Upper-case stopword input should still filter 'the'")
		}
	}
}

func TestTokenizerEmpty(t *testing.T) {
	tokenizer := NewTokenizer([]string{"the"})

	for _, text := range []string{"", "   ", "the of a", "!!!"} {
		if tokens := tokenizer.Tokenize(text); len(tokens) != 0 {
			t.Errorf("Tokenize(%q) = %v, want empty", text, tokens)
		}
	}
}

func TestTokenizerIdempotent(t *testing.T) {
	tokenizer := NewTokenizer([]string{"the", "and"})
	text := "Search engine optimization and the generative engine era."

	first := tokenizer.Tokenize(text)
	second := tokenizer.Tokenize(text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Tokenize not deterministic: %v vs %v", first, second)
	}
}

func TestNormalizeHyphens(t *testing.T) {
	tests := map[string]string{
		"--long---tail-": "long-tail",
		"plain":          "plain",
		"---":            "",
		"a--b--c":        "a-b-c",
	}
	for in, want := range tests {
		if got := normalizeHyphens(in); got != want {
			t.Errorf("normalizeHyphens(%q) = %q, want %q", in, got, want)
		}
	}
}
