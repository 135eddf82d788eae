package extract

import (
	"regexp"
	"strings"

	"github.com/cognicore/geoaudit/pkg/geoaudit/ingest"
)

var (
	jsxTitleProp  = regexp.MustCompile(`title:\s*["']([^"']+)["']`)
	jsxTitleTag   = regexp.MustCompile(`<title[^>]*>([^<{]+)</title>`)
	jsxDescProp   = regexp.MustCompile(`description:\s*["']([^"']+)["']`)
	jsxDescMeta   = regexp.MustCompile(`<meta\s+name=["']description["']\s+content=["']([^"']+)["']`)
	jsxImport     = regexp.MustCompile(`(?s)import\s+.*?from\s+["'].*?["'];?`)
	jsxExport     = regexp.MustCompile(`export\s+[^{\n]*\{`)
	jsxHeading    = regexp.MustCompile(`(?s)<h([1-6])(?:\s[^>]*)?>(.*?)</h[1-6]>`)
	jsxParagraph  = regexp.MustCompile(`(?s)<p(?:\s[^>]*)?>(.*?)</p>`)
	jsxTag        = regexp.MustCompile(`<[^>]+>`)
	jsxExpression = regexp.MustCompile(`\{[^}]*\}`)
	jsxFAQ        = regexp.MustCompile(`(?i)FAQ|Frequently Asked Questions`)
)

// ParseJSX extracts page content from a React component with regular
// expressions. Only literal markup is seen; computed strings are ignored.
func ParseJSX(data []byte) (*Page, error) {
	page := newPage(JSX)
	page.Raw = data
	src := string(data)

	if m := jsxTitleProp.FindStringSubmatch(src); m != nil {
		page.Meta.Title = strings.TrimSpace(m[1])
	} else if m := jsxTitleTag.FindStringSubmatch(src); m != nil {
		page.Meta.Title = strings.TrimSpace(m[1])
	}
	if m := jsxDescProp.FindStringSubmatch(src); m != nil {
		page.Meta.Description = strings.TrimSpace(m[1])
	} else if m := jsxDescMeta.FindStringSubmatch(src); m != nil {
		page.Meta.Description = strings.TrimSpace(m[1])
	}

	markup := jsxImport.ReplaceAllString(src, "")
	markup = jsxExport.ReplaceAllString(markup, "")

	var headings []ingest.Heading
	for _, m := range jsxHeading.FindAllStringSubmatch(markup, -1) {
		text := jsxText(m[2])
		if text == "" {
			continue
		}
		headings = append(headings, ingest.Heading{Level: int(m[1][0] - '0'), Text: text})
	}

	var paragraphs []string
	for _, m := range jsxParagraph.FindAllStringSubmatch(markup, -1) {
		if text := jsxText(m[1]); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	page.finish(page.Meta.Title, headings, paragraphs, jsxText(markup))

	page.Signals.HasTLDR = HasTLDR(markup)
	page.Signals.HasFAQ = jsxFAQ.MatchString(markup)
	page.Signals.HasAuthor = HasAuthorMarker(page.Signals.FullText)
	page.Signals.HasCredentials = HasCredentials(page.Signals.FullText)

	return page, nil
}

func jsxText(s string) string {
	s = jsxTag.ReplaceAllString(s, " ")
	s = jsxExpression.ReplaceAllString(s, " ")
	return collapseWhitespace(s)
}
