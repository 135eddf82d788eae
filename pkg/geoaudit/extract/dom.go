package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// findElement recursively searches for the first element with matching tag name.
// Returns nil if not found.
func findElement(node *html.Node, tag string) *html.Node {
	if node == nil {
		return nil
	}
	if node.Type == html.ElementNode && strings.EqualFold(node.Data, tag) {
		return node
	}
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findAllElements returns all matching elements within node, in document order.
func findAllElements(node *html.Node, tag string) []*html.Node {
	if node == nil {
		return nil
	}
	var results []*html.Node
	var search func(*html.Node)
	search = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
			results = append(results, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			search(c)
		}
	}
	search(node)
	return results
}

// getAttr returns attribute value for given name (case-insensitive comparison).
func getAttr(node *html.Node, name string) string {
	if node == nil {
		return ""
	}
	for _, attr := range node.Attr {
		if strings.EqualFold(attr.Key, name) {
			return attr.Val
		}
	}
	return ""
}

// getTextContent recursively extracts all text content from node and descendants.
func getTextContent(node *html.Node) string {
	if node == nil {
		return ""
	}
	var sb strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(node)
	return sb.String()
}

var skipTags = map[string]struct{}{
	"script": {}, "style": {}, "noscript": {}, "template": {}, "svg": {}, "head": {},
}

var blockTags = map[string]struct{}{
	"p": {}, "div": {}, "li": {}, "ul": {}, "ol": {}, "section": {}, "article": {},
	"main": {}, "header": {}, "footer": {}, "aside": {}, "nav": {}, "blockquote": {},
	"pre": {}, "table": {}, "tr": {}, "td": {}, "th": {}, "dl": {}, "dt": {}, "dd": {},
	"figure": {}, "figcaption": {}, "form": {}, "address": {}, "details": {}, "summary": {},
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// textWalker splits visible body text into headings and block paragraphs.
type textWalker struct {
	headings   []headingText
	paragraphs []string
	all        []string
	cur        strings.Builder
}

type headingText struct {
	level int
	text  string
}

func (w *textWalker) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.cur.WriteString(n.Data)
		return
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if _, skip := skipTags[tag]; skip {
			return
		}
		if tag == "br" {
			w.cur.WriteByte(' ')
			return
		}
		if level := headingLevel(tag); level > 0 {
			w.flush()
			if text := collapseWhitespace(getTextContent(n)); text != "" {
				w.headings = append(w.headings, headingText{level: level, text: text})
				w.all = append(w.all, text)
			}
			return
		}
		if _, block := blockTags[tag]; block {
			w.flush()
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				w.walk(c)
			}
			w.flush()
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *textWalker) flush() {
	text := collapseWhitespace(w.cur.String())
	w.cur.Reset()
	if text == "" {
		return
	}
	w.paragraphs = append(w.paragraphs, text)
	w.all = append(w.all, text)
}
