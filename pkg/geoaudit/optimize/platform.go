package optimize

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cognicore/geoaudit/pkg/geoaudit/internalerr"
	"github.com/cognicore/geoaudit/pkg/geoaudit/schema"
)

// Platform is an AI answer engine the page is tuned for.
type Platform string

const (
	ChatGPT    Platform = "chatgpt"
	Perplexity Platform = "perplexity"
	Claude     Platform = "claude"
	Gemini     Platform = "gemini"
	Grokipedia Platform = "grokipedia"
	// Multi applies every platform in Platforms order.
	Multi Platform = "multi"
)

// Platforms lists the single platforms in the order Multi applies them.
var Platforms = []Platform{ChatGPT, Perplexity, Claude, Gemini, Grokipedia}

// ParsePlatform resolves a case-insensitive platform name.
func ParsePlatform(name string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(name)))
	if p == Multi {
		return p, nil
	}
	for _, known := range Platforms {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", internalerr.ErrUnknownPlatform, name)
}

type Author struct {
	Name        string `yaml:"name"`
	Credentials string `yaml:"credentials"`
}

type Testimonial struct {
	Text string `yaml:"text"`
	Name string `yaml:"name"`
}

type Business struct {
	Name   string `yaml:"name"`
	Phone  string `yaml:"phone"`
	Street string `yaml:"street"`
	City   string `yaml:"city"`
	State  string `yaml:"state"`
	Zip    string `yaml:"zip"`
}

type Source struct {
	URL       string `yaml:"url"`
	Title     string `yaml:"title"`
	Publisher string `yaml:"publisher"`
	Year      string `yaml:"year"`
}

// PlatformConfig drives the platform rewrites. Toggles default to off
// except where DefaultPlatformConfig sets them.
type PlatformConfig struct {
	Title  string `yaml:"title"`
	Author Author `yaml:"author"`

	AddReferences          bool `yaml:"add_references"`
	AddInlineCitations     bool `yaml:"add_inline_citations"`
	AddMethodology         bool `yaml:"add_methodology"`
	AddLimitations         bool `yaml:"add_limitations"`
	AddDataSources         bool `yaml:"add_data_sources"`
	MakeCitationsClickable bool `yaml:"make_citations_clickable"`

	Testimonials []Testimonial `yaml:"testimonials"`
	Business     *Business     `yaml:"business"`
	Awards       []string      `yaml:"awards"`

	PrimarySources         []Source `yaml:"primary_sources"`
	AddVersionHistory      bool     `yaml:"add_version_history"`
	WikipediaDerived       bool     `yaml:"wikipedia_derived"`
	SourceURL              string   `yaml:"source_url"`
	AddChangelogSchema     bool     `yaml:"add_changelog_schema"`
	EnhanceInlineCitations bool     `yaml:"enhance_inline_citations"`
}

func DefaultPlatformConfig() PlatformConfig {
	return PlatformConfig{
		Title:                  "Article Title",
		Author:                 Author{Name: "Expert Author", Credentials: "PhD"},
		AddReferences:          true,
		AddInlineCitations:     true,
		AddMethodology:         true,
		AddLimitations:         true,
		AddDataSources:         true,
		MakeCitationsClickable: true,
	}
}

const (
	maxTestimonials   = 3
	maxAwards         = 5
	maxPrimarySources = 5
	displayDate       = "January 02, 2006"
)

var (
	dateModifiedPattern = regexp.MustCompile(`"dateModified":\s*"[^"]+"`)
	prominentBanner     = regexp.MustCompile(`(?s)<div class="last-updated-prominent"[^>]*>.*?</div>\s*`)
	statParagraph       = regexp.MustCompile(`<p>[^<]*\d+[^<]*</p>`)
	citableStat         = regexp.MustCompile(`\d+%|\d+x|[\d,]+\s+(patients|users|studies)`)
	articleType         = regexp.MustCompile(`"@type":\s*"Article"`)
)

// Platform rewrites doc for one platform, or all of them for Multi.
func (o *Optimizer) Platform(doc string, p Platform) (Result, error) {
	if p == Multi {
		res := Result{HTML: doc}
		for _, single := range Platforms {
			step, err := o.platformOnce(res.HTML, single)
			if err != nil {
				return Result{}, err
			}
			res.HTML = step.HTML
			prefix := "[" + strings.ToUpper(string(single)) + "] "
			for _, c := range step.Changes {
				res.note(prefix + c)
			}
		}
		o.logger.Debug("platform rewrite", zap.String("platform", string(p)), zap.Int("changes", len(res.Changes)))
		return res, nil
	}
	res, err := o.platformOnce(doc, p)
	if err != nil {
		return Result{}, err
	}
	o.logger.Debug("platform rewrite", zap.String("platform", string(p)), zap.Int("changes", len(res.Changes)))
	return res, nil
}

func (o *Optimizer) platformOnce(doc string, p Platform) (Result, error) {
	res := Result{HTML: doc}
	var err error
	switch p {
	case ChatGPT:
		err = o.chatGPT(&res)
	case Perplexity:
		o.perplexity(&res)
	case Claude:
		o.claude(&res)
	case Gemini:
		err = o.gemini(&res)
	case Grokipedia:
		err = o.grokipedia(&res)
	default:
		return Result{}, fmt.Errorf("%w: %q", internalerr.ErrUnknownPlatform, p)
	}
	if err != nil {
		return Result{}, fmt.Errorf("optimize for %s: %w", p, err)
	}
	return res, nil
}

// touchDateModified restamps every dateModified in embedded JSON-LD.
func (o *Optimizer) touchDateModified(res *Result, suffix string) {
	if !strings.Contains(res.HTML, `"dateModified"`) {
		return
	}
	now := o.now()
	res.HTML = dateModifiedPattern.ReplaceAllLiteralString(res.HTML, `"dateModified": "`+now.Format(time.RFC3339)+`"`)
	res.note("Updated dateModified to " + now.Format(displayDate) + suffix)
}

func (o *Optimizer) chatGPT(res *Result) error {
	cfg := o.platform
	if cfg.Author.Name != "" && strings.Contains(res.HTML, "<h1") && !strings.Contains(res.HTML, `class="author"`) {
		byline := "By " + cfg.Author.Name
		if cfg.Author.Credentials != "" {
			byline += ", " + cfg.Author.Credentials
		}
		var ok bool
		res.HTML, ok = insertAfter(res.HTML, "</h1>", "\n"+`<p class="author"><em>`+html.EscapeString(byline)+"</em></p>\n")
		if ok {
			res.note(strings.TrimSpace("Added author: " + cfg.Author.Name + " " + cfg.Author.Credentials))
		}
	}

	o.touchDateModified(res, "")

	if !strings.Contains(res.HTML, "schema.org/Article") && !articleType.MatchString(res.HTML) {
		stamp := o.now().Format(time.RFC3339)
		article := schema.NewArticle(schema.ArticleInput{
			Headline:          orDefault(cfg.Title, "Article"),
			DatePublished:     stamp,
			DateModified:      stamp,
			AuthorName:        cfg.Author.Name,
			AuthorCredentials: cfg.Author.Credentials,
		})
		article.Speakable = nil
		out, ok, err := insertSchema(res.HTML, article)
		if err != nil {
			return err
		}
		if ok {
			res.HTML = out
			res.note("Added Article schema with author credentials")
		}
	}

	if cfg.AddReferences && !strings.Contains(res.HTML, "References") {
		refs := "\n<h2>References</h2>\n<ol class=\"references\">\n" +
			"  <li>Add primary source citations (PubMed, arXiv, academic journals)</li>\n" +
			"  <li>Include publisher and year for each citation</li>\n" +
			"</ol>\n"
		if out, ok := insertBefore(res.HTML, "</body>", refs); ok {
			res.HTML = out
			res.note("Added References section placeholder")
		}
	}
	return nil
}

func (o *Optimizer) perplexity(res *Result) {
	o.touchDateModified(res, " (schema)")
	res.HTML = prominentBanner.ReplaceAllString(res.HTML, "")

	if o.platform.AddInlineCitations {
		if n := len(statParagraph.FindAllStringIndex(res.HTML, -1)); n > 0 {
			res.note(fmt.Sprintf("Found %d paragraphs that could use inline citations [1], [2]", n))
		}
	}
	if strings.Contains(res.HTML, "<h2") && !strings.Contains(res.HTML, "<h3") {
		res.note("Note: Consider adding H3 subheadings under H2s for better structure")
	}
}

// sectionBefore inserts a section ahead of the named H2 when present,
// otherwise before </body>.
func sectionBefore(doc, heading, section string) (string, bool) {
	if out, ok := insertBefore(doc, "<h2>"+heading+"</h2>", section); ok {
		return out, true
	}
	return insertBefore(doc, "</body>", section)
}

func (o *Optimizer) claude(res *Result) {
	cfg := o.platform
	add := func(enabled bool, marker, section, change string, insert func(string, string) (string, bool)) {
		if !enabled || strings.Contains(res.HTML, marker) {
			return
		}
		if out, ok := insert(res.HTML, section); ok {
			res.HTML = out
			res.note(change)
		}
	}
	beforeBody := func(doc, section string) (string, bool) { return insertBefore(doc, "</body>", section) }
	beforeRefs := func(doc, section string) (string, bool) { return sectionBefore(doc, "References", section) }

	add(cfg.AddMethodology, "Methodology",
		"\n<h2>Methodology</h2>\n<p>This content is based on [describe sources and approach]. "+
			"Primary sources include peer-reviewed research, clinical guidelines, "+
			"and expert consensus statements.</p>\n",
		"Added Methodology section", beforeRefs)
	add(cfg.AddLimitations, "Limitations",
		"\n<h2>Limitations</h2>\n<p>This information is current as of [date]. Readers should consult "+
			"primary sources and healthcare professionals for specific guidance. "+
			"Individual circumstances may vary.</p>\n",
		"Added Limitations section", beforeBody)
	add(cfg.AddDataSources, "Data Sources",
		"\n<h2>Data Sources</h2>\n<ul>\n"+
			"  <li>Primary research: [Specify journals, databases]</li>\n"+
			"  <li>Clinical guidelines: [Specify organizations]</li>\n"+
			"  <li>Expert consensus: [Specify authorities]</li>\n"+
			"</ul>\n",
		"Added Data Sources section", beforeBody)

	if cfg.MakeCitationsClickable {
		res.note("Note: Ensure citations are clickable links to references")
	}
}

func (o *Optimizer) gemini(res *Result) error {
	cfg := o.platform
	if len(cfg.Testimonials) > 0 && !strings.Contains(res.HTML, "Testimonials") {
		var b strings.Builder
		b.WriteString("\n<h2>What Our Clients Say</h2>\n")
		for _, t := range cfg.Testimonials[:min(len(cfg.Testimonials), maxTestimonials)] {
			fmt.Fprintf(&b, "<blockquote>\n  <p>\"%s\"</p>\n  <footer>&mdash; %s</footer>\n</blockquote>\n",
				html.EscapeString(t.Text), html.EscapeString(orDefault(t.Name, "Client")))
		}
		if out, ok := sectionBefore(res.HTML, "Contact", b.String()); ok {
			res.HTML = out
			res.note(fmt.Sprintf("Added testimonials section (%d reviews)", len(cfg.Testimonials)))
		}
	}

	if biz := cfg.Business; biz != nil && !strings.Contains(res.HTML, "LocalBusiness") {
		org := schema.NewOrganization(schema.OrganizationInput{
			Name:    biz.Name,
			OrgType: "LocalBusiness",
			Street:  biz.Street,
			City:    biz.City,
			State:   biz.State,
			Zip:     biz.Zip,
			Phone:   biz.Phone,
		})
		out, ok, err := insertSchema(res.HTML, org)
		if err != nil {
			return err
		}
		if ok {
			res.HTML = out
			res.note("Added LocalBusiness schema for Google Business Profile")
		}
	}

	if len(cfg.Awards) > 0 && !strings.Contains(res.HTML, "Awards") {
		var b strings.Builder
		b.WriteString("\n<h2>Awards &amp; Recognition</h2>\n<ul>\n")
		for _, a := range cfg.Awards[:min(len(cfg.Awards), maxAwards)] {
			fmt.Fprintf(&b, "  <li>%s</li>\n", html.EscapeString(a))
		}
		b.WriteString("</ul>\n")
		if out, ok := insertBefore(res.HTML, "</body>", b.String()); ok {
			res.HTML = out
			res.note(fmt.Sprintf("Added Awards & Recognition (%d awards)", len(cfg.Awards)))
		}
	}
	return nil
}

func (o *Optimizer) grokipedia(res *Result) error {
	cfg := o.platform
	now := o.now()

	if len(cfg.PrimarySources) > 0 && !strings.Contains(res.HTML, "Primary Sources") {
		var b strings.Builder
		b.WriteString("\n<h2>Primary Sources</h2>\n<ul class=\"primary-sources\">\n")
		for _, s := range cfg.PrimarySources[:min(len(cfg.PrimarySources), maxPrimarySources)] {
			fmt.Fprintf(&b, "  <li><a href=\"%s\" rel=\"nofollow\">%s</a> &mdash; %s",
				html.EscapeString(orDefault(s.URL, "#")), html.EscapeString(orDefault(s.Title, "Source")),
				html.EscapeString(s.Publisher))
			if s.Year != "" {
				fmt.Fprintf(&b, " (%s)", html.EscapeString(s.Year))
			}
			b.WriteString("</li>\n")
		}
		b.WriteString("</ul>\n")
		if out, ok := sectionBefore(res.HTML, "References", b.String()); ok {
			res.HTML = out
			res.note(fmt.Sprintf("Added Primary Sources section (%d sources)", len(cfg.PrimarySources)))
		}
	}

	if cfg.AddVersionHistory && !strings.Contains(res.HTML, "Version History") {
		history := "\n<h2>Version History</h2>\n<ul class=\"version-history\">\n" +
			"  <li><strong>v1.0</strong> &mdash; " + now.Format(displayDate) + ": Initial publication</li>\n</ul>\n"
		if out, ok := insertBefore(res.HTML, "</body>", history); ok {
			res.HTML = out
			res.note("Added Version History section")
		}
	}

	if cfg.WikipediaDerived && !strings.Contains(strings.ToLower(res.HTML), "license") {
		notice := "\n<footer class=\"license\">\n" +
			"  <p><small>Portions of this content are derived from Wikipedia, licensed under " +
			"<a href=\"https://creativecommons.org/licenses/by-sa/4.0/\" rel=\"license\">CC BY-SA 4.0</a>.</small></p>\n" +
			"</footer>\n"
		if out, ok := insertBefore(res.HTML, "</body>", notice); ok {
			res.HTML = out
			res.note("Added CC-BY-SA license attribution")
		}
	}

	if cfg.AddChangelogSchema && !strings.Contains(res.HTML, `"version"`) {
		stamp := now.Format(time.RFC3339)
		article := schema.Article{
			Context:       schema.Context,
			Type:          "Article",
			Headline:      orDefault(cfg.Title, "Article"),
			DatePublished: stamp,
			DateModified:  stamp,
			Version:       "1.0",
		}
		if cfg.WikipediaDerived {
			article.IsBasedOn = cfg.SourceURL
		}
		out, ok, err := insertSchema(res.HTML, article)
		if err != nil {
			return err
		}
		if ok {
			res.HTML = out
			res.note("Added versioned Article schema for changelog tracking")
		}
	}

	if cfg.EnhanceInlineCitations {
		if n := len(citableStat.FindAllStringIndex(res.HTML, -1)); n > 0 {
			res.note(fmt.Sprintf("Found %d statistics that should have inline citations [1], [2]", n))
		}
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
