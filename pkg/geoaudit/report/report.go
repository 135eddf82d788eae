// Package report turns an audit outcome into an identified, fingerprinted
// report and writes it as JSON, Markdown, HTML or a SQLite export.
package report

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/oklog/ulid/v2"

	"github.com/cognicore/geoaudit/pkg/geoaudit/audit"
	"github.com/cognicore/geoaudit/pkg/geoaudit/entities"
	"github.com/cognicore/geoaudit/pkg/geoaudit/extract"
	"github.com/cognicore/geoaudit/pkg/geoaudit/finding"
	"github.com/cognicore/geoaudit/pkg/geoaudit/keywords"
	"github.com/cognicore/geoaudit/pkg/geoaudit/metadata"
)

// Grade is the letter band of an overall score.
type Grade struct {
	Letter string `json:"letter"`
	Label  string `json:"label"`
	Color  string `json:"-"`
}

// GradeFor bands a 0..100 score.
func GradeFor(score int) Grade {
	switch {
	case score >= 90:
		return Grade{"A+", "Excellent", "#10b981"}
	case score >= 80:
		return Grade{"A", "Good", "#22c55e"}
	case score >= 70:
		return Grade{"B", "Fair", "#eab308"}
	case score >= 60:
		return Grade{"C", "Poor", "#f97316"}
	default:
		return Grade{"F", "Critical", "#ef4444"}
	}
}

// PageSummary is the part of the parsed page a reader needs to recognise it.
type PageSummary struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	WordCount   int      `json:"word_count"`
	H1          int      `json:"h1_count"`
	H2          int      `json:"h2_count"`
	H3          int      `json:"h3_count"`
	SchemaTypes []string `json:"schema_types"`
}

// Report is one audited file.
type Report struct {
	ID              string                    `json:"id"`
	GeneratedAt     time.Time                 `json:"timestamp"`
	File            string                    `json:"file"`
	FileType        extract.FileType          `json:"file_type"`
	Fingerprint     string                    `json:"fingerprint"`
	Page            PageSummary               `json:"page"`
	Score           audit.Score               `json:"score"`
	Grade           Grade                     `json:"grade"`
	Results         map[string]finding.Result `json:"results"`
	Details         map[string]any            `json:"details"`
	Recommendations audit.Buckets             `json:"recommendations"`
}

// Fingerprint hashes the raw source so re-audits of unchanged files can
// be recognised.
func Fingerprint(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// Builder stamps reports with monotonic ULIDs. It is not safe for
// concurrent use.
type Builder struct {
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// NewBuilder creates a report builder. A nil clock means time.Now.
func NewBuilder(now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     now,
	}
}

// Build assembles the report for page from an audit outcome.
func (b *Builder) Build(page *extract.Page, out *audit.Outcome) *Report {
	now := b.now().UTC()
	sig := page.Signals
	summary := PageSummary{
		Title:       page.Meta.Title,
		Description: page.Meta.Description,
		WordCount:   sig.WordCount,
		H1:          len(sig.H1),
		H2:          len(sig.H2),
		H3:          len(sig.H3),
		SchemaTypes: []string{},
	}
	for _, s := range page.Schemas {
		summary.SchemaTypes = append(summary.SchemaTypes, extract.SchemaTypes(s)...)
	}

	return &Report{
		ID:              ulid.MustNew(ulid.Timestamp(now), b.entropy).String(),
		GeneratedAt:     now,
		File:            page.Path,
		FileType:        page.Type,
		Fingerprint:     Fingerprint(page.Raw),
		Page:            summary,
		Score:           out.Score,
		Grade:           GradeFor(out.Score.Overall),
		Results:         out.Results,
		Details:         out.Details,
		Recommendations: out.Buckets,
	}
}

// Metadata returns the metadata analyzer's breakdown, or nil if it was skipped.
func (r *Report) Metadata() *metadata.Validation {
	v, _ := r.Details[audit.Metadata].(*metadata.Validation)
	return v
}

// Keywords returns the keyword analysis, or nil if it was skipped.
func (r *Report) Keywords() *keywords.Analysis {
	if a, ok := r.Details[audit.Keywords].(keywords.Analysis); ok {
		return &a
	}
	return nil
}

// Entities returns the entity analysis, or nil if it was skipped.
func (r *Report) Entities() *entities.Analysis {
	if a, ok := r.Details[audit.Entities].(entities.Analysis); ok {
		return &a
	}
	return nil
}

// Schema returns the schema presence detail, or nil if it was skipped.
func (r *Report) Schema() *audit.SchemaDetail {
	if d, ok := r.Details[audit.Schema].(audit.SchemaDetail); ok {
		return &d
	}
	return nil
}
