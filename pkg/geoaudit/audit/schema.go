package audit

import (
	"context"

	"github.com/cognicore/geoaudit/pkg/geoaudit/extract"
	"github.com/cognicore/geoaudit/pkg/geoaudit/finding"
)

// Schema presence scores.
const (
	SchemaPresentScore = 80
	SchemaAbsentScore  = 20
)

// SchemaDetail lists the JSON-LD types found on the page.
type SchemaDetail struct {
	Count int      `json:"count"`
	Types []string `json:"types"`
}

type schemaAnalyzer struct{}

// NewSchemaAnalyzer scores whether the page carries any JSON-LD at all.
func NewSchemaAnalyzer() Analyzer { return schemaAnalyzer{} }

func (schemaAnalyzer) Name() string { return Schema }

func (schemaAnalyzer) Analyze(_ context.Context, page *extract.Page) (finding.Result, any) {
	detail := SchemaDetail{Count: len(page.Schemas), Types: []string{}}
	for _, s := range page.Schemas {
		detail.Types = append(detail.Types, extract.SchemaTypes(s)...)
	}

	if len(page.Schemas) == 0 {
		res := finding.NewBuilder(SchemaAbsentScore).
			Issue(finding.High, "No structured data (JSON-LD) found").
			Result()
		return res, detail
	}
	res := finding.NewBuilder(SchemaPresentScore).
		Recommend(finding.Success, "Structured data present (%d JSON-LD blocks)", len(page.Schemas)).
		Result()
	return res, detail
}
