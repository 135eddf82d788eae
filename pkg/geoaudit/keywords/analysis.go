package keywords

import (
	"math"

	"github.com/cognicore/geoaudit/pkg/geoaudit/finding"
)

// Density thresholds for the leading primary keyword, in percent.
const (
	MaxPrimaryDensity = 3.0
	MinPrimaryDensity = 0.5
)

// Analysis is the keyword breakdown of one document.
type Analysis struct {
	TotalWords  int
	UniqueWords int
	Primary     []Keyword
	Semantic    []Keyword
	LongTail    []Keyword
	Questions   []QuestionKeyword
}

// Density computes the keyword's density against the document word count.
func (a Analysis) Density(k Keyword) float64 {
	return Density(k.Frequency, k.Length, a.TotalWords)
}

// Summary holds the headline counts of an analysis.
type Summary struct {
	TotalWords           int     `json:"total_words"`
	UniqueWords          int     `json:"unique_words"`
	PrimaryKeywords      int     `json:"primary_keywords"`
	SemanticKeywords     int     `json:"semantic_keywords"`
	LongTailKeywords     int     `json:"longtail_keywords"`
	QuestionKeywords     int     `json:"question_keywords"`
	VoiceSearchQuestions int     `json:"voice_search_questions"`
	AvgPrimaryDensity    float64 `json:"avg_keyword_density"`
}

// Summary computes headline counts. The average density covers the first
// five primary keywords.
func (a Analysis) Summary() Summary {
	voice := 0
	for _, q := range a.Questions {
		if q.VoiceSearchOptimized {
			voice++
		}
	}

	var avg float64
	top := a.Primary
	if len(top) > 5 {
		top = top[:5]
	}
	if len(top) > 0 {
		var sum float64
		for _, k := range top {
			sum += a.Density(k)
		}
		avg = math.Round(sum/float64(len(top))*100) / 100
	}

	return Summary{
		TotalWords:           a.TotalWords,
		UniqueWords:          a.UniqueWords,
		PrimaryKeywords:      len(a.Primary),
		SemanticKeywords:     len(a.Semantic),
		LongTailKeywords:     len(a.LongTail),
		QuestionKeywords:     len(a.Questions),
		VoiceSearchQuestions: voice,
		AvgPrimaryDensity:    avg,
	}
}

// Score rates keyword coverage on 0..100.
func (a Analysis) Score() int {
	if a.TotalWords == 0 {
		return 0
	}
	score := 0
	if len(a.Primary) >= 5 {
		score += 30
	}
	if len(a.LongTail) >= 3 {
		score += 25
	}
	if len(a.Questions) >= 3 {
		score += 25
	}
	if len(a.Semantic) >= 10 {
		score += 20
	}
	return score
}

// Result converts the analysis into tagged findings.
func (a Analysis) Result() finding.Result {
	if a.TotalWords == 0 {
		return finding.NewBuilder(0).
			Issue(finding.High, "No text content found").
			Result()
	}

	b := finding.NewBuilder(a.Score())

	switch q := len(a.Questions); {
	case q == 0:
		b.Recommend(finding.Medium, "Add question-based content for voice search optimization")
	case q < 3:
		b.Recommend(finding.Medium, "Add more FAQ content (%d questions found, 5+ recommended)", q)
	default:
		b.Recommend(finding.Success, "Good FAQ coverage (%d questions found)", q)
	}

	if len(a.LongTail) < 5 {
		b.Recommend(finding.Medium, "Add more long-tail keyword phrases (3-5 word combinations)")
	}

	if len(a.Primary) > 0 {
		top := a.Primary[0]
		d := a.Density(top)
		if d > MaxPrimaryDensity {
			b.Recommend(finding.Low, "Primary keyword '%s' density too high (%.2f%%), risk of keyword stuffing", top.Text, d)
		} else if d < MinPrimaryDensity {
			b.Recommend(finding.Low, "Primary keyword '%s' density too low (%.2f%%), increase usage", top.Text, d)
		}
	}

	return b.Result()
}
