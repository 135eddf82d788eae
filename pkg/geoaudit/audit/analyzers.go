package audit

import (
	"context"

	"github.com/cognicore/geoaudit/pkg/geoaudit/content"
	"github.com/cognicore/geoaudit/pkg/geoaudit/entities"
	"github.com/cognicore/geoaudit/pkg/geoaudit/extract"
	"github.com/cognicore/geoaudit/pkg/geoaudit/finding"
	"github.com/cognicore/geoaudit/pkg/geoaudit/keywords"
	"github.com/cognicore/geoaudit/pkg/geoaudit/metadata"
)

// Analyzer scores one aspect of a page. Detail is the analyzer's full
// breakdown and is carried into reports as is.
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, page *extract.Page) (res finding.Result, detail any)
}

type metadataAnalyzer struct{}

// NewMetadataAnalyzer validates meta tags, social cards, JSON-LD and structure.
func NewMetadataAnalyzer() Analyzer { return metadataAnalyzer{} }

func (metadataAnalyzer) Name() string { return Metadata }

func (metadataAnalyzer) Analyze(_ context.Context, page *extract.Page) (finding.Result, any) {
	v := metadata.Validate(page)
	return v.Result(), v
}

type contentAnalyzer struct{}

// NewContentAnalyzer scores on-page SEO and AI-citation readiness.
func NewContentAnalyzer() Analyzer { return contentAnalyzer{} }

func (contentAnalyzer) Name() string { return Content }

func (contentAnalyzer) Analyze(_ context.Context, page *extract.Page) (finding.Result, any) {
	res := content.Analyze(page)
	return res, res
}

type keywordAnalyzer struct {
	classifier *keywords.Classifier
}

// NewKeywordAnalyzer classifies keywords with the given classifier.
func NewKeywordAnalyzer(c *keywords.Classifier) Analyzer { return keywordAnalyzer{classifier: c} }

func (keywordAnalyzer) Name() string { return Keywords }

func (a keywordAnalyzer) Analyze(_ context.Context, page *extract.Page) (finding.Result, any) {
	analysis := a.classifier.Classify(page.Document)
	return analysis.Result(), analysis
}

type entityAnalyzer struct {
	extractor *entities.Extractor
}

// NewEntityAnalyzer finds people, organizations and places.
func NewEntityAnalyzer(e *entities.Extractor) Analyzer { return entityAnalyzer{extractor: e} }

func (entityAnalyzer) Name() string { return Entities }

func (a entityAnalyzer) Analyze(_ context.Context, page *extract.Page) (finding.Result, any) {
	analysis := a.extractor.Analyze(page)
	return analysis.Result(), analysis
}
