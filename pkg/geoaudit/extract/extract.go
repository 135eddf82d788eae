// Package extract turns HTML, Markdown and JSX sources into Pages.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/geoaudit/pkg/geoaudit/internalerr"
)

// DetectType maps a file extension to a FileType.
func DetectType(path string) (FileType, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".html", ".htm":
		return HTML, nil
	case ".md", ".mdx", ".markdown":
		return Markdown, nil
	case ".jsx", ".tsx", ".js", ".ts":
		return JSX, nil
	default:
		return "", fmt.Errorf("%w: %q", internalerr.ErrUnsupportedFormat, ext)
	}
}

// ParseFile reads and parses the file at path.
func ParseFile(path string) (*Page, error) {
	ft, err := DetectType(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	page, err := Parse(ft, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	page.Path = path
	return page, nil
}

// Parse parses data as the given type.
func Parse(ft FileType, data []byte) (*Page, error) {
	switch ft {
	case HTML:
		return ParseHTML(data)
	case Markdown:
		return ParseMarkdown(data)
	case JSX:
		return ParseJSX(data)
	default:
		return nil, fmt.Errorf("%w: %q", internalerr.ErrUnsupportedFormat, ft)
	}
}
