package audit

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cognicore/geoaudit/pkg/geoaudit/entities"
	"github.com/cognicore/geoaudit/pkg/geoaudit/extract"
	"github.com/cognicore/geoaudit/pkg/geoaudit/finding"
	"github.com/cognicore/geoaudit/pkg/geoaudit/keywords"
)

// Outcome is everything one audit run produced.
type Outcome struct {
	Results map[string]finding.Result `json:"results"`
	Details map[string]any            `json:"details"`
	Score   Score                     `json:"score"`
	Buckets Buckets                   `json:"recommendations"`
}

// Options configures a Runner.
type Options struct {
	Analyzers []Analyzer
	Weights   Weights
	Logger    *zap.Logger
}

// Runner applies analyzers to pages one after another.
type Runner struct {
	analyzers []Analyzer
	weights   Weights
	logger    *zap.Logger
}

// DefaultAnalyzers returns the five standard analyzers in Order.
func DefaultAnalyzers(c *keywords.Classifier, e *entities.Extractor) []Analyzer {
	return []Analyzer{
		NewMetadataAnalyzer(),
		NewContentAnalyzer(),
		NewKeywordAnalyzer(c),
		NewEntityAnalyzer(e),
		NewSchemaAnalyzer(),
	}
}

// NewRunner validates the weights and builds a Runner. Nil weights use
// DefaultWeights and a nil logger discards output.
func NewRunner(opts Options) (*Runner, error) {
	if opts.Weights == nil {
		opts.Weights = DefaultWeights()
	}
	if err := opts.Weights.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Runner{
		analyzers: opts.Analyzers,
		weights:   opts.Weights,
		logger:    opts.Logger,
	}, nil
}

// Skip returns a copy of the runner without the named analyzers.
func (r *Runner) Skip(names ...string) *Runner {
	skip := make(map[string]bool, len(names))
	for _, n := range names {
		skip[n] = true
	}
	kept := make([]Analyzer, 0, len(r.analyzers))
	for _, a := range r.analyzers {
		if !skip[a.Name()] {
			kept = append(kept, a)
		}
	}
	return &Runner{analyzers: kept, weights: r.weights, logger: r.logger}
}

// Run applies every analyzer to page and aggregates the results.
func (r *Runner) Run(ctx context.Context, page *extract.Page) (*Outcome, error) {
	out := &Outcome{
		Results: make(map[string]finding.Result, len(r.analyzers)),
		Details: make(map[string]any, len(r.analyzers)),
	}

	for _, a := range r.analyzers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("audit %s: %w", page.Path, err)
		}
		res, detail := a.Analyze(ctx, page)
		out.Results[a.Name()] = res
		out.Details[a.Name()] = detail
		r.logger.Debug("analyzer finished",
			zap.String("analyzer", a.Name()),
			zap.Int("score", res.Score),
			zap.Int("issues", len(res.Issues)),
		)
	}

	out.Score = Aggregate(out.Results, r.weights)
	out.Buckets = Bucket(out.Results)
	if out.Score.Partial {
		r.logger.Warn("aggregate computed from a subset of analyzers",
			zap.Strings("missing", out.Score.Missing),
			zap.Float64("applied_weight", out.Score.AppliedWeight),
		)
	}
	return out, nil
}
