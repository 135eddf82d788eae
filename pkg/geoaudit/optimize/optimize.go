// Package optimize rewrites HTML pages for AI answer engines and reports
// citation and freshness opportunities.
//
// Rewrites are insertions at stable anchors (</head>, </body>, the first
// </h1>) so the rest of the document is left byte-for-byte untouched.
package optimize

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/cognicore/geoaudit/pkg/geoaudit/schema"
)

// Options configures an Optimizer.
type Options struct {
	Platform PlatformConfig
	Content  ContentOptions
	Voice    VoiceOptions
	// Now stamps dateModified and ages content; nil means time.Now.
	Now    func() time.Time
	Logger *zap.Logger
}

// DefaultOptions returns the stock platform, content and voice settings.
func DefaultOptions() Options {
	return Options{
		Platform: DefaultPlatformConfig(),
		Content:  DefaultContentOptions(),
		Voice:    DefaultVoiceOptions(),
	}
}

// Optimizer applies the rewrites and scans.
type Optimizer struct {
	platform PlatformConfig
	content  ContentOptions
	voice    VoiceOptions
	now      func() time.Time
	logger   *zap.Logger
}

// New builds an Optimizer.
func New(opts Options) *Optimizer {
	o := &Optimizer{
		platform: opts.Platform,
		content:  opts.Content,
		voice:    opts.Voice,
		now:      opts.Now,
		logger:   opts.Logger,
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

// Result is a rewritten document and the changes applied to it.
type Result struct {
	HTML    string   `json:"-"`
	Changes []string `json:"changes"`
}

func (r *Result) note(change string) {
	r.Changes = append(r.Changes, change)
}

// OutputPath derives "<dir>/<base>-<suffix>.html" from an input path.
func OutputPath(input, suffix string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "-" + suffix + ".html"
}

// insertBefore places snippet ahead of the first occurrence of anchor.
// It reports false when the anchor is absent.
func insertBefore(doc, anchor, snippet string) (string, bool) {
	i := strings.Index(doc, anchor)
	if i < 0 {
		return doc, false
	}
	return doc[:i] + snippet + "\n" + doc[i:], true
}

func insertAfter(doc, anchor, snippet string) (string, bool) {
	i := strings.Index(doc, anchor)
	if i < 0 {
		return doc, false
	}
	i += len(anchor)
	return doc[:i] + "\n" + snippet + doc[i:], true
}

// insertSchema renders v as a JSON-LD script placed before </head>.
func insertSchema(doc string, v any) (string, bool, error) {
	tag, err := schema.ScriptTag(v)
	if err != nil {
		return doc, false, err
	}
	out, ok := insertBefore(doc, "</head>", tag)
	return out, ok, nil
}

var wordPattern = regexp.MustCompile(`\w+`)

// CountWords counts runs of word characters.
func CountWords(text string) int {
	return len(wordPattern.FindAllStringIndex(text, -1))
}

var sentenceEnd = regexp.MustCompile(`[.!?]\s+`)

// SplitSentences breaks text after terminal punctuation followed by
// whitespace. The punctuation stays with its sentence.
func SplitSentences(text string) []string {
	var out []string
	start := 0
	for _, m := range sentenceEnd.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[start : m[0]+1]); s != "" {
			out = append(out, s)
		}
		start = m[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
