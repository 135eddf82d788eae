package optimize

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/geoaudit/pkg/geoaudit/internalerr"
)

var fixedNow = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newOptimizer(cfg PlatformConfig) *Optimizer {
	opts := DefaultOptions()
	opts.Platform = cfg
	opts.Now = clock
	return New(opts)
}

const articlePage = `<html><head><title>Knee Pain Guide</title>
<script type="application/ld+json">{"@context":"https://schema.org","@type":"WebPage","dateModified": "2024-01-01"}</script>
</head><body>
<h1>Knee Pain Guide</h1>
<h2>Overview</h2>
<p>Over 40% of 1,200 patients improved.</p>
</body></html>`

func TestParsePlatform(t *testing.T) {
	p, err := ParsePlatform(" ChatGPT ")
	require.NoError(t, err)
	assert.Equal(t, ChatGPT, p)

	p, err = ParsePlatform("multi")
	require.NoError(t, err)
	assert.Equal(t, Multi, p)

	_, err = ParsePlatform("bing")
	assert.ErrorIs(t, err, internalerr.ErrUnknownPlatform)
}

func TestPlatformUnknown(t *testing.T) {
	_, err := newOptimizer(DefaultPlatformConfig()).Platform(articlePage, Platform("bing"))
	assert.ErrorIs(t, err, internalerr.ErrUnknownPlatform)
}

func TestChatGPT(t *testing.T) {
	o := newOptimizer(DefaultPlatformConfig())
	res, err := o.Platform(articlePage, ChatGPT)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Added author: Expert Author PhD",
		"Updated dateModified to March 10, 2026",
		"Added Article schema with author credentials",
		"Added References section placeholder",
	}, res.Changes)
	assert.Contains(t, res.HTML, `<p class="author"><em>By Expert Author, PhD</em></p>`)
	assert.Contains(t, res.HTML, `"dateModified": "2026-03-10T00:00:00Z"`)
	assert.NotContains(t, res.HTML, "2024-01-01")
	assert.Contains(t, res.HTML, `"honorificSuffix": "PhD"`)
	assert.Less(t, strings.Index(res.HTML, "<h2>References</h2>"), strings.Index(res.HTML, "</body>"))

	again, err := o.Platform(res.HTML, ChatGPT)
	require.NoError(t, err)
	assert.Equal(t, []string{"Updated dateModified to March 10, 2026"}, again.Changes)
	assert.Equal(t, 1, strings.Count(again.HTML, `class="author"`))
}

func TestPerplexity(t *testing.T) {
	doc := `<html><body><div class="last-updated-prominent">Updated today!</div>
<h2>Intro</h2><p>We treated 500 patients.</p><p>No figures in this one.</p></body></html>`
	res, err := newOptimizer(DefaultPlatformConfig()).Platform(doc, Perplexity)
	require.NoError(t, err)

	assert.NotContains(t, res.HTML, "last-updated-prominent")
	assert.Equal(t, []string{
		"Found 1 paragraphs that could use inline citations [1], [2]",
		"Note: Consider adding H3 subheadings under H2s for better structure",
	}, res.Changes)
}

func TestClaude(t *testing.T) {
	doc := "<html><body><h1>T</h1><p>Body.</p><h2>References</h2><ol><li>x</li></ol></body></html>"
	res, err := newOptimizer(DefaultPlatformConfig()).Platform(doc, Claude)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Added Methodology section",
		"Added Limitations section",
		"Added Data Sources section",
		"Note: Ensure citations are clickable links to references",
	}, res.Changes)
	assert.Less(t, strings.Index(res.HTML, "<h2>Methodology</h2>"), strings.Index(res.HTML, "<h2>References</h2>"))
	assert.Greater(t, strings.Index(res.HTML, "<h2>Limitations</h2>"), strings.Index(res.HTML, "<h2>References</h2>"))
}

func TestGemini(t *testing.T) {
	cfg := PlatformConfig{
		Testimonials: []Testimonial{
			{Text: "Great care", Name: "Ann"},
			{Text: "Fast recovery", Name: "Bob"},
			{Text: "Kind staff"},
			{Text: "Would return", Name: "Dee"},
		},
		Business: &Business{Name: "Rochester Knee Clinic", Phone: "555-0100", City: "Rochester", State: "MN", Zip: "55905"},
		Awards:   []string{"Best Clinic 2025", "Patient Choice"},
	}
	doc := "<html><head></head><body><p>Hi.</p><h2>Contact</h2><p>Call us.</p></body></html>"
	res, err := newOptimizer(cfg).Platform(doc, Gemini)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Added testimonials section (4 reviews)",
		"Added LocalBusiness schema for Google Business Profile",
		"Added Awards & Recognition (2 awards)",
	}, res.Changes)
	assert.Equal(t, 3, strings.Count(res.HTML, "<blockquote>"))
	assert.Contains(t, res.HTML, "&mdash; Client</footer>")
	assert.Less(t, strings.Index(res.HTML, "What Our Clients Say"), strings.Index(res.HTML, "<h2>Contact</h2>"))
	assert.Contains(t, res.HTML, `"@type": "LocalBusiness"`)
	assert.Contains(t, res.HTML, `"postalCode": "55905"`)
	assert.Contains(t, res.HTML, "<li>Best Clinic 2025</li>")
}

func TestGrokipedia(t *testing.T) {
	cfg := PlatformConfig{
		Title: "Knee Pain",
		PrimarySources: []Source{
			{URL: "https://pubmed.example/1", Title: "Knee study", Publisher: "PubMed", Year: "2023"},
		},
		AddVersionHistory:      true,
		WikipediaDerived:       true,
		SourceURL:              "https://en.wikipedia.org/wiki/Knee",
		AddChangelogSchema:     true,
		EnhanceInlineCitations: true,
	}
	doc := "<html><head></head><body><p>Over 40% of 1,200 patients improved.</p></body></html>"
	res, err := newOptimizer(cfg).Platform(doc, Grokipedia)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Added Primary Sources section (1 sources)",
		"Added Version History section",
		"Added CC-BY-SA license attribution",
		"Added versioned Article schema for changelog tracking",
		"Found 2 statistics that should have inline citations [1], [2]",
	}, res.Changes)
	assert.Contains(t, res.HTML, `<a href="https://pubmed.example/1" rel="nofollow">Knee study</a> &mdash; PubMed (2023)`)
	assert.Contains(t, res.HTML, "March 10, 2026: Initial publication")
	assert.Contains(t, res.HTML, `"version": "1.0"`)
	assert.Contains(t, res.HTML, `"isBasedOn": "https://en.wikipedia.org/wiki/Knee"`)
}

func TestMultiPrefixesChanges(t *testing.T) {
	res, err := newOptimizer(DefaultPlatformConfig()).Platform(articlePage, Multi)
	require.NoError(t, err)
	require.NotEmpty(t, res.Changes)

	for _, c := range res.Changes {
		assert.Regexp(t, `^\[(CHATGPT|PERPLEXITY|CLAUDE|GEMINI|GROKIPEDIA)\] `, c)
	}
	assert.Contains(t, res.Changes, "[CHATGPT] Added author: Expert Author PhD")
	assert.Contains(t, res.Changes, "[CLAUDE] Note: Ensure citations are clickable links to references")
	assert.Less(t, strings.Index(res.HTML, "<h2>Methodology</h2>"), strings.Index(res.HTML, "<h2>References</h2>"))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "site/page-chatgpt.html", OutputPath("site/page.html", "chatgpt"))
	assert.Equal(t, "notes-optimized.html", OutputPath("notes.htm", "optimized"))
}
