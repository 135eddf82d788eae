package audit

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cognicore/geoaudit/pkg/geoaudit/entities"
	"github.com/cognicore/geoaudit/pkg/geoaudit/extract"
	"github.com/cognicore/geoaudit/pkg/geoaudit/finding"
	"github.com/cognicore/geoaudit/pkg/geoaudit/ingest"
	"github.com/cognicore/geoaudit/pkg/geoaudit/keywords"
	"github.com/cognicore/geoaudit/pkg/geoaudit/metadata"
	"github.com/cognicore/geoaudit/pkg/geoaudit/stoplist"
)

type fixedAnalyzer struct {
	name  string
	score int
}

func (f fixedAnalyzer) Name() string { return f.name }

func (f fixedAnalyzer) Analyze(context.Context, *extract.Page) (finding.Result, any) {
	return finding.Result{Score: f.score}, nil
}

func defaultRunner(t *testing.T, logger *zap.Logger) *Runner {
	t.Helper()
	tok := ingest.NewTokenizer(stoplist.Default().All())
	classifier := keywords.NewClassifier(ingest.NewPipeline(tok), keywords.DefaultOptions())
	r, err := NewRunner(Options{
		Analyzers: DefaultAnalyzers(classifier, entities.NewExtractor(nil, nil, nil)),
		Logger:    logger,
	})
	require.NoError(t, err)
	return r
}

const sentence = "Voice search optimization helps local businesses answer customer questions quickly and clearly. "

func weakPage(t *testing.T) *extract.Page {
	t.Helper()
	words := strings.Fields(strings.Repeat(sentence, 5))[:50]
	html := fmt.Sprintf(`<html><head><title>A</title></head><body><p>%s</p></body></html>`, strings.Join(words, " "))
	page, err := extract.ParseHTML([]byte(html))
	require.NoError(t, err)
	return page
}

func strongPage(t *testing.T) *extract.Page {
	t.Helper()
	title := "Voice Search Optimization Guide for Local Shops | Acme"
	require.Len(t, title, 54)
	title += "!"
	body := strings.Repeat(sentence, 25)
	html := `<html><head>
<title>` + title + `</title>
<meta name="description" content="Learn how voice assistants choose answers and how local shops can structure pages, FAQs and schema so that they get read aloud more often.">
<meta property="og:title" content="Voice Search Guide">
<meta property="og:description" content="How local shops win voice answers.">
<meta property="og:image" content="https://example.com/og.png">
<meta property="og:url" content="https://example.com/voice">
<meta property="og:type" content="article">
<meta name="twitter:card" content="summary_large_image">
<meta name="twitter:title" content="Voice Search Guide">
<meta name="twitter:description" content="How local shops win voice answers.">
<meta name="twitter:image" content="https://example.com/og.png">
<script type="application/ld+json">{"@context":"https://schema.org","@type":"FAQPage","mainEntity":[]}</script>
<script type="application/ld+json">{"@context":"https://schema.org","@type":"Article","headline":"Voice"}</script>
</head><body>
<h1>Voice Search Optimization</h1>
<p>TL;DR: Answer questions directly and keep pages structured for assistants.</p>
<p>Written by Dr. Jane Smith, MD of the Acme Health Clinic in Austin, TX.</p>
<h2>What is voice search optimization?</h2>
<p>` + body + `</p>
<h2>How do assistants choose answers?</h2>
<p>` + body + `</p>
<h2>FAQ</h2>
<p>` + body + `</p>
</body></html>`
	page, err := extract.ParseHTML([]byte(html))
	require.NoError(t, err)
	return page
}

func TestRunMonotonicFixtures(t *testing.T) {
	r := defaultRunner(t, nil)
	ctx := context.Background()

	weak, err := r.Run(ctx, weakPage(t))
	require.NoError(t, err)
	strong, err := r.Run(ctx, strongPage(t))
	require.NoError(t, err)

	var metaIssues []string
	for _, f := range weak.Results[Metadata].Issues {
		metaIssues = append(metaIssues, f.Message)
	}
	assert.Contains(t, metaIssues, "Meta title too short (1 chars, should be 50-60)")

	var contentIssues []string
	for _, f := range weak.Results[Content].Issues {
		contentIssues = append(contentIssues, f.Message)
	}
	assert.Contains(t, contentIssues, "Missing H1 heading (essential for SEO)")

	assert.Less(t, weak.Score.Overall, strong.Score.Overall)
	assert.False(t, weak.Score.Partial)
	assert.Len(t, strong.Results, 5)

	v, ok := strong.Details[Metadata].(*metadata.Validation)
	require.True(t, ok)
	assert.Equal(t, 55, v.MetaTitle.Length)
	assert.GreaterOrEqual(t, v.ContentStructure.WordCount, 900)
}

func TestRunSkipFlagsGap(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := defaultRunner(t, zap.New(core)).Skip(Entities, Schema)

	out, err := r.Run(context.Background(), weakPage(t))
	require.NoError(t, err)

	assert.True(t, out.Score.Partial)
	assert.Equal(t, []string{Entities, Schema}, out.Score.Missing)
	assert.NotContains(t, out.Results, Entities)
	assert.Equal(t, 1, logs.FilterMessage("aggregate computed from a subset of analyzers").Len())
}

func TestRunFixedAnalyzers(t *testing.T) {
	r, err := NewRunner(Options{Analyzers: []Analyzer{
		fixedAnalyzer{Metadata, 80},
		fixedAnalyzer{Content, 60},
		fixedAnalyzer{Keywords, 100},
		fixedAnalyzer{Entities, 40},
		fixedAnalyzer{Schema, 100},
	}})
	require.NoError(t, err)

	out, err := r.Run(context.Background(), &extract.Page{})
	require.NoError(t, err)
	assert.Equal(t, 75, out.Score.Overall)
}

func TestRunCanceled(t *testing.T) {
	r := defaultRunner(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, weakPage(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRunnerRejectsBadWeights(t *testing.T) {
	_, err := NewRunner(Options{Weights: Weights{Metadata: -1}})
	assert.Error(t, err)
}

func TestSchemaAnalyzer(t *testing.T) {
	a := NewSchemaAnalyzer()
	res, detail := a.Analyze(context.Background(), &extract.Page{})
	assert.Equal(t, SchemaAbsentScore, res.Score)
	assert.Equal(t, 0, detail.(SchemaDetail).Count)

	res, detail = a.Analyze(context.Background(), &extract.Page{Schemas: []map[string]any{{"@type": "FAQPage"}}})
	assert.Equal(t, SchemaPresentScore, res.Score)
	assert.Equal(t, []string{"FAQPage"}, detail.(SchemaDetail).Types)
	require.Len(t, res.Recommendations, 1)
	assert.Equal(t, finding.Success, res.Recommendations[0].Severity)
}
