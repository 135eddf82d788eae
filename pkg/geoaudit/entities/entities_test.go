package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/geoaudit/pkg/geoaudit/extract"
	"github.com/cognicore/geoaudit/pkg/geoaudit/finding"
	"github.com/cognicore/geoaudit/pkg/geoaudit/ingest"
)

const sampleText = "Dr. Jane Smith MD leads cardiology at Mayo Clinic in Rochester, MN 55905. " +
	"Written by Tom Baker. Visit 200 First Street or contact Acme Widgets Inc."

func TestPersons(t *testing.T) {
	e := NewExtractor(nil, nil, nil)
	persons := e.Persons(sampleText)

	require.Len(t, persons, 2)
	assert.Equal(t, Person{
		Name:        "Jane Smith",
		Title:       "Dr.",
		FullName:    "Dr. Jane Smith",
		Credentials: []string{"MD"},
		Context:     "titled_professional",
	}, persons[0])
	assert.Equal(t, Person{Name: "Tom Baker", FullName: "Tom Baker", Context: "author"}, persons[1])
}

func TestPersonsDeduplicates(t *testing.T) {
	e := NewExtractor(nil, nil, nil)
	persons := e.Persons("Author: Jane Doe wrote this. Reviewed by Jane Doe again.")

	require.Len(t, persons, 1)
	assert.Equal(t, "Jane Doe", persons[0].Name)
}

func TestPersonsDottedCredential(t *testing.T) {
	e := NewExtractor(nil, nil, nil)
	persons := e.Persons("Professor Ada Lovelace, Ph.D., FACP explains.")

	require.Len(t, persons, 1)
	assert.Equal(t, "Professor", persons[0].Title)
	assert.Equal(t, []string{"PH.D.", "FACP"}, persons[0].Credentials)
}

func TestOrganizations(t *testing.T) {
	e := NewExtractor(nil, nil, nil)
	orgs := e.Organizations(sampleText + ` Members of "Heart Research Foundation" agree.`)

	require.Len(t, orgs, 3)
	assert.Equal(t, Organization{Name: "Mayo Clinic", OrgType: "clinic", Context: "named_organization"}, orgs[0])
	assert.Equal(t, "Acme Widgets Inc", orgs[1].Name)
	assert.Equal(t, "Heart Research Foundation", orgs[2].Name)
}

func TestCorporateSuffix(t *testing.T) {
	e := NewExtractor(nil, nil, []string{"hospital"})
	orgs := e.Organizations("Shares of Globex Corp. rose.")

	require.Len(t, orgs, 1)
	assert.Equal(t, Organization{Name: "Globex Corp", OrgType: "business", Context: "corporate"}, orgs[0])
}

func TestPlaces(t *testing.T) {
	e := NewExtractor(nil, nil, nil)
	places := e.Places(sampleText)

	require.Len(t, places, 2)
	assert.Equal(t, "200 First Street", places[0].Name)
	assert.Equal(t, "street_address", places[0].PlaceType)
	assert.Equal(t, Place{Name: "Rochester, MN", City: "Rochester", State: "MN", PlaceType: "city_state", HasZIP: true}, places[1])

	assert.False(t, e.Places("Meet at 12 Oak Lane")[0].HasZIP)
}

func TestRelationships(t *testing.T) {
	persons := []Person{
		{Name: "Jane Smith", Context: "titled_professional"},
		{Name: "Tom Baker", Context: "author"},
	}
	orgs := []Organization{{Name: "Mayo Clinic"}, {Name: "Oxford University"}, {Name: "Acme Inc"}}

	rels := Relationships(persons, orgs)
	assert.Equal(t, []Relationship{
		{Person: "Jane Smith", Organization: "Mayo Clinic", Relationships: []string{"works_for"}},
		{Person: "Jane Smith", Organization: "Oxford University", Relationships: []string{"affiliated_with"}},
	}, rels)
}

func TestSchemaSuggestions(t *testing.T) {
	persons := []Person{{Name: "A", Credentials: []string{"MD"}}, {Name: "B"}, {Name: "C"}, {Name: "D"}}
	got := SchemaSuggestions(persons, []Organization{{Name: "Org"}}, []Place{{Name: "P"}})

	require.Len(t, got, 4)
	assert.Equal(t, "Organization", got[0].SchemaType)
	assert.Contains(t, got[0].Properties, "address")
	assert.Contains(t, got[1].Properties, "honorificSuffix")
	assert.NotContains(t, got[2].Properties, "honorificSuffix")
}

func pageWith(text string) *extract.Page {
	return &extract.Page{Document: ingest.Document{
		Paragraphs: []string{text},
		WordCount:  ingest.CountWords(text),
	}}
}

func TestAnalyzeAndScore(t *testing.T) {
	a := NewExtractor(nil, nil, nil).Analyze(pageWith(sampleText))

	assert.Equal(t, Summary{
		TotalPersons:           2,
		TotalOrganizations:     2,
		TotalPlaces:            2,
		TotalRelationships:     1,
		PersonsWithCredentials: 1,
		KnowledgeGraphReady:    true,
	}, a.Summary)
	assert.Equal(t, 100, a.Score())

	res := a.Result()
	assert.Equal(t, 100, res.Score)
	assert.Empty(t, res.Issues)
	require.Len(t, res.Recommendations, 4)
	for _, f := range res.Recommendations {
		assert.Equal(t, finding.Success, f.Severity)
	}
}

func TestResultWithoutPeople(t *testing.T) {
	a := NewExtractor(nil, nil, nil).Analyze(pageWith("plain lowercase text without any names"))
	res := a.Result()

	assert.Equal(t, 0, res.Score)
	require.Len(t, res.Recommendations, 2)
	assert.Equal(t, finding.Critical, res.Recommendations[0].Severity)
	assert.Equal(t, finding.High, res.Recommendations[1].Severity)
}

func TestResultEmptyDocument(t *testing.T) {
	a := NewExtractor(nil, nil, nil).Analyze(&extract.Page{})
	res := a.Result()

	assert.True(t, a.NoText)
	assert.Equal(t, 0, res.Score)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "No text content found in file", res.Issues[0].Message)
}
