package keywords

import (
	"strings"
	"testing"

	"github.com/cognicore/geoaudit/pkg/geoaudit/finding"
)

func TestScore(t *testing.T) {
	full := Analysis{
		TotalWords: 500,
		Primary:    make([]Keyword, 5),
		LongTail:   make([]Keyword, 3),
		Questions:  make([]QuestionKeyword, 3),
		Semantic:   make([]Keyword, 10),
	}
	if got := full.Score(); got != 100 {
		t.Errorf("Expected 100, got %d", got)
	}

	partial := Analysis{TotalWords: 500, Primary: make([]Keyword, 5), Semantic: make([]Keyword, 2)}
	if got := partial.Score(); got != 30 {
		t.Errorf("Expected 30, got %d", got)
	}
}

func TestResultRecommendations(t *testing.T) {
	a := Analysis{
		TotalWords: 100,
		Primary:    []Keyword{{Text: "seo", Frequency: 5, Length: 1}},
		Questions:  make([]QuestionKeyword, 4),
	}

	res := a.Result()

	var success, stuffing, longTail bool
	for _, f := range res.Recommendations {
		switch {
		case f.Severity == finding.Success && strings.Contains(f.Message, "Good FAQ coverage (4"):
			success = true
		case f.Severity == finding.Low && strings.Contains(f.Message, "density too high (5.00%)"):
			stuffing = true
		case f.Severity == finding.Medium && strings.Contains(f.Message, "long-tail"):
			longTail = true
		}
	}
	if !success || !stuffing || !longTail {
		t.Errorf("Missing expected recommendations: %+v", res.Recommendations)
	}
}

func TestResultFewQuestions(t *testing.T) {
	a := Analysis{
		TotalWords: 1000,
		Primary:    []Keyword{{Text: "seo", Frequency: 1, Length: 1}},
		Questions:  make([]QuestionKeyword, 1),
	}

	res := a.Result()
	if res.Recommendations[0].Message != "Add more FAQ content (1 questions found, 5+ recommended)" {
		t.Errorf("Unexpected first recommendation %q", res.Recommendations[0].Message)
	}
	last := res.Recommendations[len(res.Recommendations)-1]
	if !strings.Contains(last.Message, "density too low (0.10%)") {
		t.Errorf("Expected low density advice, got %q", last.Message)
	}
}
