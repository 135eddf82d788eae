// Package metadata validates the meta tags, social cards, JSON-LD and
// content structure of a page.
package metadata

import (
	"github.com/cognicore/geoaudit/pkg/geoaudit/extract"
	"github.com/cognicore/geoaudit/pkg/geoaudit/finding"
)

// Section weights in basis points. They sum to 10000.
var sectionWeights = []struct {
	name   string
	weight int
}{
	{"meta_title", 1500},
	{"meta_description", 1500},
	{"open_graph", 2000},
	{"twitter_cards", 1500},
	{"schema", 2000},
	{"content_structure", 1500},
}

// Validation is the full metadata report for one page.
type Validation struct {
	File             string         `json:"file"`
	FileType         string         `json:"file_type"`
	MetaTitle        TextCheck      `json:"meta_title"`
	MetaDescription  TextCheck      `json:"meta_description"`
	OpenGraph        TagCheck       `json:"open_graph"`
	TwitterCards     TagCheck       `json:"twitter_cards"`
	Schema           SchemaCheck    `json:"schema"`
	ContentStructure StructureCheck `json:"content_structure"`
	Overall          int            `json:"overall_score"`
	Grade            string         `json:"grade"`
}

// Validate runs every section check over page.
func Validate(page *extract.Page) *Validation {
	v := &Validation{
		File:             page.Path,
		FileType:         string(page.Type),
		MetaTitle:        ValidateTitle(page.Meta.Title),
		MetaDescription:  ValidateDescription(page.Meta.Description),
		OpenGraph:        ValidateOpenGraph(page.OpenGraph),
		TwitterCards:     ValidateTwitter(page.Twitter),
		Schema:           ValidateSchemas(page.Schemas),
		ContentStructure: ValidateStructure(page.Signals),
	}
	v.Overall = v.overall()
	v.Grade = Grade(v.Overall)
	return v
}

func (v *Validation) sections() map[string]finding.Result {
	return map[string]finding.Result{
		"meta_title":        v.MetaTitle.Result,
		"meta_description":  v.MetaDescription.Result,
		"open_graph":        v.OpenGraph.Result,
		"twitter_cards":     v.TwitterCards.Result,
		"schema":            v.Schema.Result,
		"content_structure": v.ContentStructure.Result,
	}
}

func (v *Validation) overall() int {
	results := v.sections()
	acc := 0
	for _, s := range sectionWeights {
		acc += results[s.name].Score * s.weight
	}
	return acc / 10000
}

// Result flattens the sections into one analyzer result scored by the
// weighted overall, findings in section order.
func (v *Validation) Result() finding.Result {
	results := v.sections()
	res := finding.Result{
		Score:           finding.Clamp(v.Overall),
		Issues:          []finding.Finding{},
		Recommendations: []finding.Finding{},
	}
	for _, s := range sectionWeights {
		r := results[s.name]
		res.Issues = append(res.Issues, r.Issues...)
		res.Recommendations = append(res.Recommendations, r.Recommendations...)
	}
	return res
}

// Grade names a 0..100 score.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 80:
		return "Good"
	case score >= 70:
		return "Fair"
	case score >= 60:
		return "Poor"
	default:
		return "Critical"
	}
}
