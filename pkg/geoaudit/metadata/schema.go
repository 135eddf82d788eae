package metadata

import (
	"github.com/cognicore/geoaudit/pkg/geoaudit/extract"
	"github.com/cognicore/geoaudit/pkg/geoaudit/finding"
)

// SchemaCheck is the result of validating the page's JSON-LD blocks.
type SchemaCheck struct {
	Count   int              `json:"schema_count"`
	Schemas []map[string]any `json:"schemas"`
	finding.Result
}

func hasType(schema map[string]any, want string) bool {
	for _, t := range extract.SchemaTypes(schema) {
		if t == want {
			return true
		}
	}
	return false
}

func anyOfType(schemas []map[string]any, want string) bool {
	for _, s := range schemas {
		if hasType(s, want) {
			return true
		}
	}
	return false
}

// ValidateSchemas checks which schema types are present, the E-E-A-T fields
// of Article blocks and that every block names @context and @type.
func ValidateSchemas(schemas []map[string]any) SchemaCheck {
	if len(schemas) == 0 {
		b := finding.NewBuilder(0).
			Issue(finding.Critical, "No JSON-LD schema found").
			Recommend(finding.High, "Add FAQ schema (highest AI citation probability)").
			Recommend(finding.High, "Add Article schema for E-E-A-T signals")
		return SchemaCheck{Schemas: []map[string]any{}, Result: b.Result()}
	}

	b := finding.NewBuilder(100)

	if anyOfType(schemas, "FAQPage") {
		b.Recommend(finding.Success, "FAQ schema present (highest citation probability)")
	} else {
		b.Recommend(finding.High, "Add FAQ schema for Q&A content (35%% citation boost)")
	}

	if anyOfType(schemas, "Article") {
		b.Recommend(finding.Success, "Article schema present")
		for _, s := range schemas {
			if hasType(s, "Article") {
				checkArticle(b, s)
			}
		}
	} else {
		b.Recommend(finding.High, "Add Article schema with E-E-A-T signals")
	}

	if anyOfType(schemas, "HowTo") {
		b.Recommend(finding.Success, "HowTo schema present (voice search friendly)")
	}

	for i, s := range schemas {
		if isEmpty(s["@context"]) {
			b.Issue(finding.High, "Schema #%d: Missing @context", i+1).Adjust(-10)
		}
		if len(extract.SchemaTypes(s)) == 0 {
			b.Issue(finding.High, "Schema #%d: Missing @type", i+1).Adjust(-10)
		}
	}

	return SchemaCheck{Count: len(schemas), Schemas: schemas, Result: b.Result()}
}

func checkArticle(b *finding.Builder, article map[string]any) {
	if author, ok := article["author"].(map[string]any); ok {
		if isEmpty(author["honorificSuffix"]) {
			b.Recommend(finding.High, "Add author honorificSuffix (MD, PhD) for 40%% boost")
		} else {
			b.Recommend(finding.Success, "Author credentials present (40%% citation boost)")
		}
		if isEmpty(author["affiliation"]) {
			b.Recommend(finding.Medium, "Add author affiliation for E-E-A-T")
		} else {
			b.Recommend(finding.Success, "Author affiliation present")
		}
	}
	if isEmpty(article["dateModified"]) {
		b.Recommend(finding.Medium, "Add dateModified for freshness signals")
	} else {
		b.Recommend(finding.Success, "dateModified present (critical for Perplexity)")
	}
	if isEmpty(article["speakable"]) {
		b.Recommend(finding.Medium, "Add Speakable schema for voice search optimization")
	} else {
		b.Recommend(finding.Success, "Speakable schema present (voice search optimized)")
	}
}

// isEmpty reports whether a decoded JSON value is absent or blank.
func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	case bool:
		return !val
	}
	return false
}
