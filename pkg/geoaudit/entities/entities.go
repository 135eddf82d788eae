// Package entities finds people, organizations and places in page text
// and rates how ready they are for knowledge-graph markup.
package entities

import (
	"regexp"
	"sort"
	"strings"
)

// Default vocabularies. The Extractor copies them at construction.
var (
	DefaultPersonTitles = []string{
		"dr", "dr.", "doctor", "prof", "prof.", "professor",
		"md", "m.d.", "phd", "ph.d.", "mba", "esq", "jr", "sr",
		"mr", "mrs", "ms", "miss", "dds", "jd", "mph", "msc",
		"rev", "father", "sister", "rabbi", "imam",
	}
	DefaultCredentials = []string{
		"md", "m.d.", "phd", "ph.d.", "mba", "msc", "mph", "dds", "jd",
		"rn", "bsn", "msn", "dnp", "pharmd", "od", "dvm", "dpt",
		"faad", "faap", "facc", "facs", "facep", "faan", "facp",
		"cpa", "cfa", "pmp", "cissp", "pe",
	}
	DefaultOrgTypes = []string{
		"clinic", "hospital", "university", "college", "institute", "foundation",
		"company", "corporation", "inc", "llc", "ltd", "corp", "co",
		"association", "society", "federation", "council", "committee",
		"department", "school", "center", "centre", "lab", "laboratory",
		"group", "agency", "bureau", "office", "ministry",
	}
)

// credentialWindow is how far past a titled name credentials are looked for.
const credentialWindow = 50

const properName = `[A-Z][a-z]+`

var (
	authorPattern  = regexp.MustCompile(`(?i:\bby|\bauthor[:\s]+|\bwritten by)\s+(` + properName + `(?:\s+` + properName + `){1,3})`)
	corpPattern    = regexp.MustCompile(`\b([A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+){0,3})\s+(Inc|LLC|Ltd|Corp|Co)\.?\b`)
	quotedPattern  = regexp.MustCompile(`"([A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+){1,4})"`)
	addressPattern = regexp.MustCompile(`\b(\d+\s+` + properName + `(?:\s+` + properName + `){0,3}\s+(?i:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Drive|Dr|Lane|Ln))\b`)
	cityState      = regexp.MustCompile(`\b(` + properName + `(?:\s+` + properName + `)*),\s+([A-Z]{2})\b`)
	zipPattern     = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)
)

// Person is a named individual.
type Person struct {
	Name        string   `json:"name"`
	Title       string   `json:"title,omitempty"`
	FullName    string   `json:"full_name"`
	Credentials []string `json:"credentials,omitempty"`
	Context     string   `json:"context"`
}

// Organization is a named institution or business.
type Organization struct {
	Name    string `json:"name"`
	OrgType string `json:"org_type,omitempty"`
	Context string `json:"context"`
}

// Place is an address or a city and state pair.
type Place struct {
	Name      string `json:"name"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	PlaceType string `json:"place_type"`
	HasZIP    bool   `json:"has_zip,omitempty"`
}

// Relationship links a titled person to an organization.
type Relationship struct {
	Person        string   `json:"person"`
	Organization  string   `json:"organization"`
	Relationships []string `json:"relationships"`
}

// SchemaSuggestion names the schema.org type to mark an entity up with.
type SchemaSuggestion struct {
	SchemaType string   `json:"schema_type"`
	Entity     string   `json:"entity"`
	Properties []string `json:"recommended_properties"`
}

// Extractor holds the compiled vocabularies. It is safe for concurrent use.
type Extractor struct {
	titlePattern *regexp.Regexp
	credPattern  *regexp.Regexp
	orgPattern   *regexp.Regexp
	orgTypes     []string
}

// NewExtractor compiles an extractor over the given vocabularies. Nil slices
// fall back to the defaults.
func NewExtractor(titles, credentials, orgTypes []string) *Extractor {
	if titles == nil {
		titles = DefaultPersonTitles
	}
	if credentials == nil {
		credentials = DefaultCredentials
	}
	if orgTypes == nil {
		orgTypes = DefaultOrgTypes
	}

	var wordCreds, dottedCreds []string
	for _, c := range credentials {
		if strings.HasSuffix(c, ".") {
			dottedCreds = append(dottedCreds, c)
		} else {
			wordCreds = append(wordCreds, c)
		}
	}
	credExpr := `(?i)\b(?:` + alternation(wordCreds) + `)\b`
	if len(dottedCreds) > 0 {
		credExpr = `(?i)\b(?:` + alternation(dottedCreds) + `)|` + `\b(?:` + alternation(wordCreds) + `)\b`
	}

	return &Extractor{
		titlePattern: regexp.MustCompile(`\b(?i:(` + alternation(titles) + `))\s+(` + properName + `(?:\s+` + properName + `){1,3})\b`),
		credPattern:  regexp.MustCompile(credExpr),
		orgPattern:   regexp.MustCompile(`\b([A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+){0,4})\s+(?i:(` + alternation(orgTypes) + `))\b`),
		orgTypes:     append([]string(nil), orgTypes...),
	}
}

// alternation quotes words and orders them longest first so that the
// leftmost-first match prefers "ph.d." over "phd" and "corporation" over "co".
func alternation(words []string) string {
	sorted := append([]string(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	quoted := make([]string, len(sorted))
	for i, w := range sorted {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}

// Persons finds titled professionals and author bylines.
func (e *Extractor) Persons(text string) []Person {
	var persons []Person
	seen := make(map[string]bool)

	for _, m := range e.titlePattern.FindAllStringSubmatchIndex(text, -1) {
		title, name := text[m[2]:m[3]], text[m[4]:m[5]]
		full := title + " " + name
		if seen[strings.ToLower(full)] {
			continue
		}
		seen[strings.ToLower(full)] = true

		end := m[1] + credentialWindow
		if end > len(text) {
			end = len(text)
		}
		persons = append(persons, Person{
			Name:        name,
			Title:       title,
			FullName:    full,
			Credentials: e.credentials(text[m[1]:end]),
			Context:     "titled_professional",
		})
	}

	for _, m := range authorPattern.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		persons = append(persons, Person{Name: name, FullName: name, Context: "author"})
	}
	return persons
}

func (e *Extractor) credentials(window string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range e.credPattern.FindAllString(window, -1) {
		c = strings.ToUpper(c)
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// Organizations finds named institutions, quoted names and corporations.
func (e *Extractor) Organizations(text string) []Organization {
	var orgs []Organization
	seen := make(map[string]bool)

	for _, m := range e.orgPattern.FindAllStringSubmatch(text, -1) {
		full := m[1] + " " + m[2]
		if seen[strings.ToLower(full)] {
			continue
		}
		seen[strings.ToLower(full)] = true
		orgs = append(orgs, Organization{Name: full, OrgType: strings.ToLower(m[2]), Context: "named_organization"})
	}

	for _, m := range quotedPattern.FindAllStringSubmatch(text, -1) {
		name := m[1]
		lower := strings.ToLower(name)
		if seen[lower] || !e.mentionsOrgType(lower) {
			continue
		}
		seen[lower] = true
		orgs = append(orgs, Organization{Name: name, Context: "quoted"})
	}

	for _, m := range corpPattern.FindAllStringSubmatch(text, -1) {
		full := m[1] + " " + m[2]
		if seen[strings.ToLower(full)] {
			continue
		}
		seen[strings.ToLower(full)] = true
		orgs = append(orgs, Organization{Name: full, OrgType: "business", Context: "corporate"})
	}
	return orgs
}

func (e *Extractor) mentionsOrgType(lower string) bool {
	for _, t := range e.orgTypes {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// Places finds street addresses and "City, ST" pairs. When the text carries
// a ZIP code every place is marked as having one.
func (e *Extractor) Places(text string) []Place {
	var places []Place
	seen := make(map[string]bool)

	for _, m := range addressPattern.FindAllStringSubmatch(text, -1) {
		if seen[strings.ToLower(m[1])] {
			continue
		}
		seen[strings.ToLower(m[1])] = true
		places = append(places, Place{Name: m[1], PlaceType: "street_address"})
	}

	for _, m := range cityState.FindAllStringSubmatch(text, -1) {
		full := m[1] + ", " + m[2]
		if seen[strings.ToLower(full)] {
			continue
		}
		seen[strings.ToLower(full)] = true
		places = append(places, Place{Name: full, City: m[1], State: m[2], PlaceType: "city_state"})
	}

	if zipPattern.MatchString(text) {
		for i := range places {
			places[i].HasZIP = true
		}
	}
	return places
}

// Relationships pairs titled professionals with clinics and hospitals
// (works_for) or universities and colleges (affiliated_with).
func Relationships(persons []Person, orgs []Organization) []Relationship {
	var out []Relationship
	for _, p := range persons {
		if p.Context != "titled_professional" {
			continue
		}
		for _, o := range orgs {
			lower := strings.ToLower(o.Name)
			var kind string
			switch {
			case strings.Contains(lower, "clinic"), strings.Contains(lower, "hospital"):
				kind = "works_for"
			case strings.Contains(lower, "university"), strings.Contains(lower, "college"):
				kind = "affiliated_with"
			default:
				continue
			}
			out = append(out, Relationship{Person: p.Name, Organization: o.Name, Relationships: []string{kind}})
		}
	}
	return out
}

// SchemaSuggestions proposes Organization markup for the first organization
// and Person markup for up to three people.
func SchemaSuggestions(persons []Person, orgs []Organization, places []Place) []SchemaSuggestion {
	var out []SchemaSuggestion
	if len(orgs) > 0 {
		props := []string{"name", "url", "logo", "description"}
		if len(places) > 0 {
			props = append(props, "address")
		}
		props = append(props, "contactPoint", "sameAs")
		out = append(out, SchemaSuggestion{SchemaType: "Organization", Entity: orgs[0].Name, Properties: props})
	}
	for i, p := range persons {
		if i == 3 {
			break
		}
		props := []string{"name", "url", "image", "jobTitle", "worksFor"}
		if len(p.Credentials) > 0 {
			props = append(props, "honorificSuffix")
		}
		out = append(out, SchemaSuggestion{SchemaType: "Person", Entity: p.Name, Properties: props})
	}
	return out
}
