// Package geoaudit audits HTML, Markdown and JSX pages for search engine and
// generative engine readiness and builds reports from the results.
package geoaudit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cognicore/geoaudit/pkg/geoaudit/audit"
	"github.com/cognicore/geoaudit/pkg/geoaudit/config"
	"github.com/cognicore/geoaudit/pkg/geoaudit/extract"
	"github.com/cognicore/geoaudit/pkg/geoaudit/internalerr"
	"github.com/cognicore/geoaudit/pkg/geoaudit/optimize"
	"github.com/cognicore/geoaudit/pkg/geoaudit/report"
	"github.com/cognicore/geoaudit/pkg/geoaudit/stoplist"
)

// Auditor is the main audit facade. It is not safe for concurrent use.
type Auditor struct {
	components *config.Components
	runner     *audit.Runner
	builder    *report.Builder
	logger     *zap.Logger
	now        func() time.Time
}

// Options configures an Auditor
type Options struct {
	// Components from config.Loader. Nil builds them from config.Default.
	Components *config.Components
	// Skip names analyzers to leave out of the run.
	Skip   []string
	Logger *zap.Logger
	Now    func() time.Time
}

// New wires the analyzers and the report builder.
func New(opts Options) (*Auditor, error) {
	comp := opts.Components
	if comp == nil {
		cfg := config.Default()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		comp = config.Build(cfg, stoplist.Default())
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	runner, err := audit.NewRunner(audit.Options{
		Analyzers: audit.DefaultAnalyzers(comp.Classifier, comp.Extractor),
		Weights:   comp.Config.Weights,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	if len(opts.Skip) > 0 {
		runner = runner.Skip(opts.Skip...)
	}

	return &Auditor{
		components: comp,
		runner:     runner,
		builder:    report.NewBuilder(opts.Now),
		logger:     opts.Logger,
		now:        opts.Now,
	}, nil
}

// Config returns the configuration the auditor was built from.
func (a *Auditor) Config() *config.Config {
	return a.components.Config
}

// AuditFile parses the file at path and audits it.
func (a *Auditor) AuditFile(ctx context.Context, path string) (*report.Report, error) {
	page, err := extract.ParseFile(path)
	if err != nil {
		return nil, err
	}
	a.logger.Info("file parsed",
		zap.String("path", path),
		zap.String("type", string(page.Type)),
		zap.Int("words", page.Signals.WordCount),
	)
	return a.AuditPage(ctx, page)
}

// AuditPage audits an already parsed page. Pages built by hand are checked
// for a consistent document structure first.
func (a *Auditor) AuditPage(ctx context.Context, page *extract.Page) (*report.Report, error) {
	if err := page.Document.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidInput, err)
	}
	out, err := a.runner.Run(ctx, page)
	if err != nil {
		return nil, err
	}
	r := a.builder.Build(page, out)
	a.logger.Info("audit complete",
		zap.String("id", r.ID),
		zap.Int("score", r.Score.Overall),
		zap.String("grade", r.Grade.Letter),
	)
	return r, nil
}

// Optimizer returns an optimizer configured from the same settings.
func (a *Auditor) Optimizer() *optimize.Optimizer {
	cfg := a.components.Config
	return optimize.New(optimize.Options{
		Platform: cfg.Platform,
		Content:  cfg.Content,
		Voice:    cfg.Voice,
		Now:      a.now,
		Logger:   a.logger,
	})
}
