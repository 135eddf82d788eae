package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"github.com/cognicore/geoaudit/pkg/geoaudit/ingest"
)

// maxJSONLDDepth bounds recursion into nested @graph / array JSON-LD.
const maxJSONLDDepth = 5

// ParseHTML parses an HTML page.
func ParseHTML(data []byte) (*Page, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	page := newPage(HTML)
	page.Raw = data

	if title := findElement(findElement(root, "head"), "title"); title != nil {
		page.Meta.Title = collapseWhitespace(getTextContent(title))
	}
	extractMetaTags(root, page)
	page.Schemas = extractJSONLD(root)

	body := findElement(root, "body")
	if body == nil {
		body = root
	}
	w := &textWalker{}
	w.walk(body)
	w.flush()

	headings := make([]ingest.Heading, len(w.headings))
	for i, h := range w.headings {
		headings[i] = ingest.Heading{Level: h.level, Text: h.text}
	}
	page.finish(page.Meta.Title, headings, w.paragraphs, strings.Join(w.all, " "))

	page.Meta.Byline = extractByline(data, page.OpenGraph["url"])

	page.Signals.HasTLDR = HasTLDR(page.Signals.FullText)
	page.Signals.HasFAQ = hasFAQHeading(page.Document.Headings, 3)
	page.Signals.HasAuthor = page.Meta.Author != "" || page.Meta.Byline != "" ||
		HasAuthorMarker(page.Signals.FullText)
	page.Signals.HasCredentials = HasCredentials(page.Signals.FullText) ||
		HasCredentials(page.Meta.Author) || HasCredentials(page.Meta.Byline)

	return page, nil
}

// extractMetaTags collects standard meta, Open Graph (og:* and article:*)
// and Twitter Card tags.
func extractMetaTags(root *html.Node, page *Page) {
	for _, meta := range findAllElements(root, "meta") {
		content := strings.TrimSpace(getAttr(meta, "content"))
		if content == "" {
			continue
		}

		if name := strings.ToLower(strings.TrimSpace(getAttr(meta, "name"))); name != "" {
			switch {
			case name == "description":
				page.Meta.Description = content
			case name == "keywords":
				page.Meta.Keywords = content
			case name == "author":
				page.Meta.Author = content
			case strings.HasPrefix(name, "twitter:"):
				page.Twitter[strings.TrimPrefix(name, "twitter:")] = content
			}
			continue
		}

		prop := strings.ToLower(strings.TrimSpace(getAttr(meta, "property")))
		switch {
		case strings.HasPrefix(prop, "og:"):
			page.OpenGraph[strings.TrimPrefix(prop, "og:")] = content
		case strings.HasPrefix(prop, "article:"):
			page.OpenGraph[prop] = content
		case strings.HasPrefix(prop, "twitter:"):
			page.Twitter[strings.TrimPrefix(prop, "twitter:")] = content
		}
	}
}

// extractJSONLD decodes every application/ld+json block. Top-level arrays
// and @graph containers are flattened into their objects, which inherit the
// container's @context. Blocks that fail to decode are skipped.
func extractJSONLD(root *html.Node) []map[string]any {
	var out []map[string]any
	for _, script := range findAllElements(root, "script") {
		scriptType := strings.ToLower(strings.TrimSpace(getAttr(script, "type")))
		if scriptType != "application/ld+json" {
			continue
		}
		var v any
		if err := json.Unmarshal([]byte(getTextContent(script)), &v); err != nil {
			continue
		}
		out = flattenJSONLD(v, nil, out, 0)
	}
	return out
}

func flattenJSONLD(v any, context any, out []map[string]any, depth int) []map[string]any {
	if depth > maxJSONLDDepth {
		return out
	}
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			out = flattenJSONLD(item, context, out, depth+1)
		}
	case map[string]any:
		if c, ok := val["@context"]; ok {
			context = c
		} else if context != nil {
			val["@context"] = context
		}
		graph, hasGraph := val["@graph"]
		if !hasGraph || len(SchemaTypes(val)) > 0 {
			out = append(out, val)
		}
		if hasGraph {
			out = flattenJSONLD(graph, context, out, depth+1)
		}
	}
	return out
}

// extractByline runs readability over the page to find an author byline.
func extractByline(data []byte, pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		u = &url.URL{Scheme: "https", Host: "localhost", Path: "/"}
	}
	article, err := readability.FromReader(bytes.NewReader(data), u)
	if err != nil {
		return ""
	}
	return collapseWhitespace(article.Byline)
}
