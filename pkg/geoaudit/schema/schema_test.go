package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/geoaudit/pkg/geoaudit/internalerr"
)

func decode(t *testing.T, v any) map[string]any {
	t.Helper()
	data, err := Marshal(v)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestFAQ(t *testing.T) {
	got := decode(t, FAQ([]QA{{Question: "What is GEO?", Answer: "Generative engine optimization."}}))

	assert.Equal(t, "https://schema.org", got["@context"])
	assert.Equal(t, "FAQPage", got["@type"])
	entities := got["mainEntity"].([]any)
	require.Len(t, entities, 1)
	q := entities[0].(map[string]any)
	assert.Equal(t, "What is GEO?", q["name"])
	assert.Equal(t, "Generative engine optimization.", q["acceptedAnswer"].(map[string]any)["text"])
}

func TestParseQA(t *testing.T) {
	qa, ok := ParseQA(" What time? : At 10:30 ")
	require.True(t, ok)
	assert.Equal(t, QA{Question: "What time?", Answer: "At 10:30"}, qa)

	_, ok = ParseQA("no separator")
	assert.False(t, ok)
}

func TestNewArticle(t *testing.T) {
	got := decode(t, NewArticle(ArticleInput{
		Headline:          "Guide",
		Description:       "Desc",
		DatePublished:     "2025-01-15",
		AuthorName:        "Jane Smith",
		AuthorCredentials: "MD, PhD",
		OrganizationName:  "Clinic",
		ArticleURL:        "https://example.com/guide",
		Keywords:          []string{"seo", "geo"},
	}))

	assert.Equal(t, "2025-01-15", got["dateModified"])
	assert.Equal(t, "MD, PhD", got["author"].(map[string]any)["honorificSuffix"])
	assert.NotContains(t, got, "publisher", "publisher needs a URL as well")
	assert.Equal(t, "https://example.com/guide", got["mainEntityOfPage"].(map[string]any)["@id"])
	assert.Equal(t, "seo, geo", got["keywords"])
	assert.NotContains(t, got, "wordCount")

	speakable := got["speakable"].(map[string]any)
	assert.Equal(t, []any{".article-summary", ".article-intro", "h1", "h2"}, speakable["cssSelector"])
}

func TestHowToAndBreadcrumbs(t *testing.T) {
	h := NewHowTo(HowToInput{Name: "Optimize", TotalTime: "PT15M", Steps: []Step{{Name: "Prepare", Text: "Gather."}}})
	require.Len(t, h.Step, 1)
	assert.Equal(t, "HowToStep", h.Step[0].Type)

	b := Breadcrumbs([]Crumb{{Name: "Home", URL: "https://example.com/"}, {Name: "Blog", URL: "https://example.com/blog"}})
	require.Len(t, b.ItemListElement, 2)
	assert.Equal(t, 1, b.ItemListElement[0].Position)
	assert.Equal(t, 2, b.ItemListElement[1].Position)
	assert.Equal(t, "https://example.com/blog", b.ItemListElement[1].Item)
}

func TestNewOrganization(t *testing.T) {
	o := NewOrganization(OrganizationInput{Name: "Clinic", URL: "https://example.com"})
	assert.Equal(t, "Organization", o.Type)
	assert.Nil(t, o.Address)

	o = NewOrganization(OrganizationInput{Name: "Clinic", OrgType: "MedicalBusiness", URL: "u", City: "San Francisco", State: "CA"})
	assert.Equal(t, "MedicalBusiness", o.Type)
	require.NotNil(t, o.Address)
	assert.Equal(t, "San Francisco", o.Address.AddressLocality)
	assert.Equal(t, "CA", o.Address.AddressRegion)
}

func TestNewPerson(t *testing.T) {
	p := NewPerson(PersonInput{Name: "Jane", Credentials: "MD", Organization: "Clinic"})
	assert.Equal(t, "MD", p.HonorificSuffix)
	require.NotNil(t, p.WorksFor)
	assert.Equal(t, "Clinic", p.WorksFor.Name)
	assert.Empty(t, p.WorksFor.Context)
}

func TestScriptTag(t *testing.T) {
	tag, err := ScriptTag(FAQ([]QA{{Question: "Q & A?", Answer: "Use </script> carefully"}}))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(tag, `<script type="application/ld+json">`))
	assert.True(t, strings.HasSuffix(tag, "</script>"))
	assert.Contains(t, tag, "Q & A?")
	assert.Equal(t, 1, strings.Count(tag, "</script>"))
}

func TestSpeakablePage(t *testing.T) {
	got := decode(t, SpeakablePage(".tldr", "h2"))
	assert.Equal(t, "WebPage", got["@type"])
	assert.Equal(t, []any{".tldr", "h2"}, got["speakable"].(map[string]any)["cssSelector"])
}

func TestBuild(t *testing.T) {
	faq, err := Build("faq", []byte("- \"What is SEO?: Search engine optimization\"\n- question: What is GEO?\n  answer: Generative engine optimization\n"))
	require.NoError(t, err)
	page := faq.(FAQPage)
	require.Len(t, page.MainEntity, 2)
	assert.Equal(t, "What is SEO?", page.MainEntity[0].Name)
	assert.Equal(t, "Generative engine optimization", page.MainEntity[1].AcceptedAnswer.Text)

	art, err := Build("article", []byte("headline: Guide\ndate_published: 2025-01-15\nauthor_name: Jane\n"))
	require.NoError(t, err)
	assert.Equal(t, "Jane", art.(Article).Author.Name)

	crumbs, err := Build("breadcrumb", []byte("- name: Home\n  url: https://example.com/\n"))
	require.NoError(t, err)
	assert.Len(t, crumbs.(BreadcrumbList).ItemListElement, 1)
}

func TestBuildErrors(t *testing.T) {
	_, err := Build("recipe", nil)
	assert.True(t, errors.Is(err, internalerr.ErrUnknownSchemaType))

	_, err = Build("article", []byte("headline: Guide\n"))
	assert.True(t, errors.Is(err, internalerr.ErrInvalidInput))

	_, err = Build("person", []byte("name: Jane\nnickname: J\n"))
	assert.Error(t, err, "unknown fields are rejected")

	_, err = Build("organization", nil)
	assert.True(t, errors.Is(err, internalerr.ErrInvalidInput))

	_, err = Build("faq", []byte("- just text\n"))
	assert.True(t, errors.Is(err, internalerr.ErrInvalidInput))
}
