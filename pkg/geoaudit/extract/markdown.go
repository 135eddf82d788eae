package extract

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/geoaudit/pkg/geoaudit/ingest"
)

var (
	frontmatterPattern = regexp.MustCompile(`(?s)^---[ \t]*\r?\n(.*?)\r?\n---[ \t]*(?:\r?\n|$)`)
	atxHeading         = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*#*\s*$`)
	mdImage            = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	mdLink             = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	mdInlineCode       = regexp.MustCompile("`[^`]+`")
	mdEmphasis         = regexp.MustCompile(`\*{1,3}|_{2,3}`)
	mdListMarker       = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s+`)
	mdQuoteMarker      = regexp.MustCompile(`^\s*>\s?`)
	mdTLDRLine         = regexp.MustCompile(`(?im)^\s*(?:[-*>]\s*)?(?:\*\*)?TL;?DR(?:\*\*)?:?`)
)

// ParseMarkdown parses a Markdown page with optional YAML frontmatter.
func ParseMarkdown(data []byte) (*Page, error) {
	page := newPage(Markdown)
	page.Raw = data

	fm, body := splitFrontmatter(string(data))
	page.Frontmatter = fm

	page.Meta = Meta{
		Title:       fmString(fm, "title"),
		Description: fmString(fm, "description"),
		Keywords:    fmString(fm, "keywords"),
		Author:      fmString(fm, "author"),
	}
	setIf(page.OpenGraph, "title", fmString(fm, "og:title", "og_title", "title"))
	setIf(page.OpenGraph, "description", fmString(fm, "og:description", "og_description", "description"))
	setIf(page.OpenGraph, "image", fmString(fm, "og:image", "og_image", "image"))
	setIf(page.OpenGraph, "url", fmString(fm, "og:url", "og_url", "canonical", "url"))
	setIf(page.OpenGraph, "type", fmString(fm, "og:type", "og_type"))
	setIf(page.OpenGraph, "site_name", fmString(fm, "og:site_name", "og_site_name"))
	setIf(page.Twitter, "card", fmString(fm, "twitter:card", "twitter_card"))
	setIf(page.Twitter, "title", fmString(fm, "twitter:title", "twitter_title", "title"))
	setIf(page.Twitter, "description", fmString(fm, "twitter:description", "twitter_description", "description"))
	setIf(page.Twitter, "image", fmString(fm, "twitter:image", "twitter_image"))
	setIf(page.Twitter, "site", fmString(fm, "twitter:site", "twitter_site"))
	setIf(page.Twitter, "creator", fmString(fm, "twitter:creator", "twitter_creator"))

	headings, paragraphs, all := scanMarkdown(body)
	page.finish(page.Meta.Title, headings, paragraphs, strings.Join(all, " "))

	page.Signals.HasTLDR = mdTLDRLine.MatchString(body)
	page.Signals.HasFAQ = hasFAQHeading(headings, 2)
	page.Signals.HasAuthor = page.Meta.Author != "" || HasAuthorMarker(page.Signals.FullText)
	page.Signals.HasCredentials = HasCredentials(page.Signals.FullText) || HasCredentials(page.Meta.Author)

	return page, nil
}

// splitFrontmatter separates a leading YAML block from the Markdown body.
// A block that is not valid YAML, such as an unquoted colon in a title, is
// read line by line as key: value pairs instead.
func splitFrontmatter(content string) (map[string]any, string) {
	m := frontmatterPattern.FindStringSubmatchIndex(content)
	if m == nil {
		return map[string]any{}, content
	}
	block := content[m[2]:m[3]]
	body := content[m[1]:]

	fm := map[string]any{}
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return looseFrontmatter(block), body
	}
	if fm == nil {
		fm = map[string]any{}
	}
	return fm, body
}

// looseFrontmatter splits each line on its first colon. Values lose
// surrounding quotes; lines without a colon are skipped.
func looseFrontmatter(block string) map[string]any {
	fm := map[string]any{}
	for _, line := range strings.Split(block, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		fm[key] = strings.Trim(strings.TrimSpace(value), `"'`)
	}
	return fm
}

// scanMarkdown walks the body line by line, skipping fenced code.
func scanMarkdown(body string) ([]ingest.Heading, []string, []string) {
	var (
		headings   []ingest.Heading
		paragraphs []string
		all        []string
		block      []string
		inFence    bool
	)
	flush := func() {
		if len(block) == 0 {
			return
		}
		text := collapseWhitespace(strings.Join(block, " "))
		block = block[:0]
		if text == "" {
			return
		}
		paragraphs = append(paragraphs, text)
		all = append(all, text)
	}

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			flush()
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if trimmed == "" {
			flush()
			continue
		}
		if m := atxHeading.FindStringSubmatch(trimmed); m != nil {
			flush()
			text := cleanInline(m[2])
			if text != "" {
				headings = append(headings, ingest.Heading{Level: len(m[1]), Text: text})
				all = append(all, text)
			}
			continue
		}
		line = mdQuoteMarker.ReplaceAllString(line, "")
		if mdListMarker.MatchString(line) {
			flush()
			line = mdListMarker.ReplaceAllString(line, "")
		}
		block = append(block, cleanInline(line))
	}
	flush()
	return headings, paragraphs, all
}

func cleanInline(s string) string {
	s = mdInlineCode.ReplaceAllString(s, "")
	s = mdImage.ReplaceAllString(s, "$1")
	s = mdLink.ReplaceAllString(s, "$1")
	s = mdEmphasis.ReplaceAllString(s, "")
	return collapseWhitespace(s)
}

// fmString returns the first non-empty frontmatter value among keys, as text.
func fmString(fm map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := fm[k]
		if !ok || v == nil {
			continue
		}
		var s string
		switch val := v.(type) {
		case string:
			s = val
		case []any:
			parts := make([]string, 0, len(val))
			for _, item := range val {
				parts = append(parts, fmt.Sprint(item))
			}
			s = strings.Join(parts, ", ")
		default:
			s = fmt.Sprint(val)
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

func setIf(m map[string]string, key, value string) {
	if value != "" {
		m[key] = value
	}
}
