package entities

import (
	"strings"

	"github.com/cognicore/geoaudit/pkg/geoaudit/extract"
	"github.com/cognicore/geoaudit/pkg/geoaudit/finding"
)

// Summary holds entity counts.
type Summary struct {
	TotalPersons           int  `json:"total_persons"`
	TotalOrganizations     int  `json:"total_organizations"`
	TotalPlaces            int  `json:"total_places"`
	TotalRelationships     int  `json:"total_relationships"`
	PersonsWithCredentials int  `json:"persons_with_credentials"`
	KnowledgeGraphReady    bool `json:"knowledge_graph_ready"`
}

// Analysis is the entity breakdown of one page.
type Analysis struct {
	NoText        bool               `json:"no_text,omitempty"`
	Summary       Summary            `json:"summary"`
	Persons       []Person           `json:"persons"`
	Organizations []Organization     `json:"organizations"`
	Places        []Place            `json:"places"`
	Relationships []Relationship     `json:"relationships"`
	Schema        []SchemaSuggestion `json:"schema_recommendations"`
}

// Text joins the title, headings and body of a page into the text entities
// are searched in.
func Text(page *extract.Page) string {
	doc := page.Document
	parts := make([]string, 0, len(doc.Headings)+2)
	parts = append(parts, doc.Title)
	for _, h := range doc.Headings {
		parts = append(parts, h.Text)
	}
	parts = append(parts, doc.Body())
	return strings.Join(parts, " ")
}

// Analyze extracts every entity kind from the page.
func (e *Extractor) Analyze(page *extract.Page) Analysis {
	if page.Document.IsEmpty() {
		return Analysis{NoText: true}
	}
	text := Text(page)

	persons := e.Persons(text)
	orgs := e.Organizations(text)
	places := e.Places(text)
	rels := Relationships(persons, orgs)

	withCreds := 0
	for _, p := range persons {
		if len(p.Credentials) > 0 {
			withCreds++
		}
	}

	return Analysis{
		Summary: Summary{
			TotalPersons:           len(persons),
			TotalOrganizations:     len(orgs),
			TotalPlaces:            len(places),
			TotalRelationships:     len(rels),
			PersonsWithCredentials: withCreds,
			KnowledgeGraphReady:    len(persons) > 0 && len(orgs) > 0,
		},
		Persons:       persons,
		Organizations: orgs,
		Places:        places,
		Relationships: rels,
		Schema:        SchemaSuggestions(persons, orgs, places),
	}
}

// Score rates entity coverage on 0..100.
func (a Analysis) Score() int {
	s := a.Summary
	score := 0
	if s.TotalPersons > 0 {
		score += 30
	}
	if s.PersonsWithCredentials > 0 {
		score += 30
	}
	if s.TotalOrganizations > 0 {
		score += 20
	}
	if s.TotalPlaces > 0 {
		score += 10
	}
	if s.KnowledgeGraphReady {
		score += 10
	}
	return finding.Clamp(score)
}

// Result turns the analysis into tagged findings. Missing people or
// credentials are critical since they carry the E-E-A-T signal.
func (a Analysis) Result() finding.Result {
	if a.NoText {
		return finding.NewBuilder(0).Issue(finding.High, "No text content found in file").Result()
	}
	s := a.Summary
	b := finding.NewBuilder(a.Score())

	switch {
	case s.TotalPersons == 0:
		b.Recommend(finding.Critical, "Add author byline with full name and credentials (40%% citation boost)")
	case s.PersonsWithCredentials == 0:
		b.Recommend(finding.Critical, "Add credentials to author name (MD, PhD, etc.) for 40%% citation boost")
	default:
		b.Recommend(finding.Success, "Found %d person entities with credentials", s.TotalPersons)
	}

	if s.TotalOrganizations == 0 {
		b.Recommend(finding.High, "Add organization/institution affiliation for E-E-A-T")
	} else {
		b.Recommend(finding.Success, "Found %d organization entities", s.TotalOrganizations)
	}
	if s.TotalPlaces > 0 {
		b.Recommend(finding.Success, "Found %d place entities (good for local SEO)", s.TotalPlaces)
	}
	if s.TotalRelationships > 0 {
		b.Recommend(finding.Success, "Found %d entity relationships (implement in schema)", s.TotalRelationships)
	}
	return b.Result()
}
