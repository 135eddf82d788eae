package schema

import "strings"

type Person struct {
	Context         string        `json:"@context,omitempty"`
	Type            string        `json:"@type"`
	Name            string        `json:"name"`
	JobTitle        string        `json:"jobTitle,omitempty"`
	HonorificSuffix string        `json:"honorificSuffix,omitempty"`
	URL             string        `json:"url,omitempty"`
	Image           string        `json:"image,omitempty"`
	Description     string        `json:"description,omitempty"`
	WorksFor        *Organization `json:"worksFor,omitempty"`
}

type Organization struct {
	Context     string         `json:"@context,omitempty"`
	Type        string         `json:"@type"`
	Name        string         `json:"name"`
	URL         string         `json:"url,omitempty"`
	Logo        string         `json:"logo,omitempty"`
	Description string         `json:"description,omitempty"`
	Address     *PostalAddress `json:"address,omitempty"`
	Telephone   string         `json:"telephone,omitempty"`
	Email       string         `json:"email,omitempty"`
}

type PostalAddress struct {
	Type            string `json:"@type"`
	StreetAddress   string `json:"streetAddress,omitempty"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressRegion   string `json:"addressRegion,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	AddressCountry  string `json:"addressCountry,omitempty"`
}

type Article struct {
	Context          string                  `json:"@context"`
	Type             string                  `json:"@type"`
	Headline         string                  `json:"headline"`
	Description      string                  `json:"description,omitempty"`
	DatePublished    string                  `json:"datePublished"`
	DateModified     string                  `json:"dateModified"`
	Author           *Person                 `json:"author,omitempty"`
	Publisher        *Organization           `json:"publisher,omitempty"`
	MainEntityOfPage *WebPageRef             `json:"mainEntityOfPage,omitempty"`
	Speakable        *SpeakableSpecification `json:"speakable,omitempty"`
	Image            *ImageObject            `json:"image,omitempty"`
	WordCount        int                     `json:"wordCount,omitempty"`
	Keywords         string                  `json:"keywords,omitempty"`
	Version          string                  `json:"version,omitempty"`
	IsBasedOn        string                  `json:"isBasedOn,omitempty"`
}

type WebPageRef struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

type ImageObject struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

type HowTo struct {
	Context     string      `json:"@context"`
	Type        string      `json:"@type"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	TotalTime   string      `json:"totalTime"`
	Step        []HowToStep `json:"step"`
}

type HowToStep struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	Text string `json:"text"`
}

type BreadcrumbList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

// ArticleInput describes an article to mark up.
type ArticleInput struct {
	Headline          string   `yaml:"headline"`
	Description       string   `yaml:"description"`
	DatePublished     string   `yaml:"date_published"`
	DateModified      string   `yaml:"date_modified"`
	AuthorName        string   `yaml:"author_name"`
	AuthorJobTitle    string   `yaml:"author_job_title"`
	AuthorCredentials string   `yaml:"author_credentials"`
	AuthorURL         string   `yaml:"author_url"`
	OrganizationName  string   `yaml:"organization_name"`
	OrganizationURL   string   `yaml:"organization_url"`
	ArticleURL        string   `yaml:"article_url"`
	ImageURL          string   `yaml:"image_url"`
	WordCount         int      `yaml:"word_count"`
	Keywords          []string `yaml:"keywords"`
}

// NewArticle builds Article markup. dateModified falls back to the
// publication date and a publisher needs both name and URL.
func NewArticle(in ArticleInput) Article {
	a := Article{
		Context:       Context,
		Type:          "Article",
		Headline:      in.Headline,
		Description:   in.Description,
		DatePublished: in.DatePublished,
		DateModified:  in.DateModified,
		Speakable:     Speakable(DefaultArticleSpeakable...),
		WordCount:     in.WordCount,
		Keywords:      strings.Join(in.Keywords, ", "),
	}
	if a.DateModified == "" {
		a.DateModified = in.DatePublished
	}
	if in.AuthorName != "" {
		a.Author = &Person{
			Type:            "Person",
			Name:            in.AuthorName,
			JobTitle:        in.AuthorJobTitle,
			HonorificSuffix: in.AuthorCredentials,
			URL:             in.AuthorURL,
		}
	}
	if in.OrganizationName != "" && in.OrganizationURL != "" {
		a.Publisher = &Organization{Type: "Organization", Name: in.OrganizationName, URL: in.OrganizationURL}
	}
	if in.ArticleURL != "" {
		a.MainEntityOfPage = &WebPageRef{Type: "WebPage", ID: in.ArticleURL}
	}
	if in.ImageURL != "" {
		a.Image = &ImageObject{Type: "ImageObject", URL: in.ImageURL}
	}
	return a
}

// Step is one how-to step.
type Step struct {
	Name string `yaml:"name"`
	Text string `yaml:"text"`
}

// HowToInput describes a how-to guide.
type HowToInput struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	TotalTime   string `yaml:"total_time"`
	Steps       []Step `yaml:"steps"`
}

// NewHowTo builds HowTo markup. TotalTime is an ISO 8601 duration.
func NewHowTo(in HowToInput) HowTo {
	h := HowTo{
		Context:     Context,
		Type:        "HowTo",
		Name:        in.Name,
		Description: in.Description,
		TotalTime:   in.TotalTime,
		Step:        make([]HowToStep, 0, len(in.Steps)),
	}
	for _, s := range in.Steps {
		h.Step = append(h.Step, HowToStep{Type: "HowToStep", Name: s.Name, Text: s.Text})
	}
	return h
}

// Crumb is one breadcrumb level.
type Crumb struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Breadcrumbs builds BreadcrumbList markup; positions start at 1.
func Breadcrumbs(items []Crumb) BreadcrumbList {
	b := BreadcrumbList{Context: Context, Type: "BreadcrumbList", ItemListElement: make([]ListItem, 0, len(items))}
	for i, it := range items {
		b.ItemListElement = append(b.ItemListElement, ListItem{Type: "ListItem", Position: i + 1, Name: it.Name, Item: it.URL})
	}
	return b
}

// OrganizationInput describes an organization or local business.
type OrganizationInput struct {
	Name        string `yaml:"name"`
	OrgType     string `yaml:"type"`
	URL         string `yaml:"url"`
	Logo        string `yaml:"logo"`
	Description string `yaml:"description"`
	Street      string `yaml:"street"`
	City        string `yaml:"city"`
	State       string `yaml:"state"`
	Zip         string `yaml:"zip"`
	Country     string `yaml:"country"`
	Phone       string `yaml:"phone"`
	Email       string `yaml:"email"`
}

// NewOrganization builds Organization markup. OrgType defaults to
// "Organization"; the address is set when any part of it is.
func NewOrganization(in OrganizationInput) Organization {
	o := Organization{
		Context:     Context,
		Type:        in.OrgType,
		Name:        in.Name,
		URL:         in.URL,
		Logo:        in.Logo,
		Description: in.Description,
		Telephone:   in.Phone,
		Email:       in.Email,
	}
	if o.Type == "" {
		o.Type = "Organization"
	}
	if in.Street != "" || in.City != "" || in.State != "" || in.Zip != "" || in.Country != "" {
		o.Address = &PostalAddress{
			Type:            "PostalAddress",
			StreetAddress:   in.Street,
			AddressLocality: in.City,
			AddressRegion:   in.State,
			PostalCode:      in.Zip,
			AddressCountry:  in.Country,
		}
	}
	return o
}

// PersonInput describes an author profile.
type PersonInput struct {
	Name         string `yaml:"name"`
	JobTitle     string `yaml:"job_title"`
	Credentials  string `yaml:"credentials"`
	URL          string `yaml:"url"`
	Image        string `yaml:"image"`
	Description  string `yaml:"description"`
	Organization string `yaml:"organization"`
}

// NewPerson builds Person markup.
func NewPerson(in PersonInput) Person {
	p := Person{
		Context:         Context,
		Type:            "Person",
		Name:            in.Name,
		JobTitle:        in.JobTitle,
		HonorificSuffix: in.Credentials,
		URL:             in.URL,
		Image:           in.Image,
		Description:     in.Description,
	}
	if in.Organization != "" {
		p.WorksFor = &Organization{Type: "Organization", Name: in.Organization}
	}
	return p
}
