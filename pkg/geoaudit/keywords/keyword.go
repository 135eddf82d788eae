package keywords

import (
	"encoding/json"
)

// Kind is the category a keyword was classified into.
type Kind string

const (
	Primary  Kind = "primary"
	Semantic Kind = "semantic"
	LongTail Kind = "longtail"
	Question Kind = "question"
)

// Keyword is a classified n-gram. Density is not stored; it is derived
// from Frequency through Analysis.Density.
type Keyword struct {
	Text      string
	Kind      Kind
	Frequency int
	Length    int
	// Rank orders keywords inside their kind. For primary 2-grams it carries
	// the ×1.5 boost; Frequency always stays the raw count.
	Rank float64
}

// Question source types.
const (
	SourceNatural = "natural"
	SourceHeading = "heading"
)

// QuestionKeyword is a detected question sentence or heading.
type QuestionKeyword struct {
	Text                 string `json:"question"`
	Source               string `json:"type"`
	WordCount            int    `json:"word_count"`
	VoiceSearchOptimized bool   `json:"voice_search_optimized"`
}

// keywordJSON is the rendered form of a keyword with its density resolved.
type keywordJSON struct {
	Keyword   string  `json:"keyword"`
	Kind      Kind    `json:"type"`
	Frequency int     `json:"frequency"`
	Length    int     `json:"word_count"`
	Rank      float64 `json:"rank_score"`
	Density   float64 `json:"density"`
}

func (a Analysis) render(kws []Keyword) []keywordJSON {
	out := make([]keywordJSON, len(kws))
	for i, k := range kws {
		out[i] = keywordJSON{
			Keyword:   k.Text,
			Kind:      k.Kind,
			Frequency: k.Frequency,
			Length:    k.Length,
			Rank:      k.Rank,
			Density:   a.Density(k),
		}
	}
	return out
}

// MarshalJSON renders the analysis with densities computed from the
// current total word count.
func (a Analysis) MarshalJSON() ([]byte, error) {
	questions := a.Questions
	if questions == nil {
		questions = []QuestionKeyword{}
	}
	return json.Marshal(struct {
		Summary   Summary           `json:"summary"`
		Primary   []keywordJSON     `json:"primary_keywords"`
		Semantic  []keywordJSON     `json:"semantic_keywords"`
		LongTail  []keywordJSON     `json:"longtail_keywords"`
		Questions []QuestionKeyword `json:"question_keywords"`
	}{
		Summary:   a.Summary(),
		Primary:   a.render(a.Primary),
		Semantic:  a.render(a.Semantic),
		LongTail:  a.render(a.LongTail),
		Questions: questions,
	})
}
