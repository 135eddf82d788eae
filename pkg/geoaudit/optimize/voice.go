package optimize

import (
	"strings"

	"github.com/cognicore/geoaudit/pkg/geoaudit/schema"
)

// DefaultSpeakableSelectors are the sections marked speakable when
// VoiceOptions lists none.
var DefaultSpeakableSelectors = []string{".tldr", "h2"}

type VoiceOptions struct {
	Selectors       []string `yaml:"speakable_selectors"`
	SnippetMaxWords int      `yaml:"snippet_max_words"`
}

func DefaultVoiceOptions() VoiceOptions {
	return VoiceOptions{
		Selectors:       append([]string(nil), DefaultSpeakableSelectors...),
		SnippetMaxWords: snippetMaxWords,
	}
}

const (
	snippetMinWords = 30
	snippetMaxWords = 40
)

// VoiceResult carries the featured snippet proposed for the page.
type VoiceResult struct {
	Result
	Snippet string `json:"snippet,omitempty"`
}

// Voice proposes a featured snippet from the first paragraph and adds
// page-level Speakable markup unless the page already has some.
func (o *Optimizer) Voice(doc string) (VoiceResult, error) {
	outline, err := ParseOutline(doc)
	if err != nil {
		return VoiceResult{}, err
	}
	res := VoiceResult{Result: Result{HTML: doc}}
	if len(outline.Paragraphs) > 0 {
		limit := o.voice.SnippetMaxWords
		if limit <= 0 {
			limit = snippetMaxWords
		}
		res.Snippet = FeaturedSnippet(outline.Paragraphs[0], limit)
	}

	if strings.Contains(res.HTML, "SpeakableSpecification") {
		return res, nil
	}
	selectors := o.voice.Selectors
	if len(selectors) == 0 {
		selectors = DefaultSpeakableSelectors
	}
	out, ok, err := insertSchema(res.HTML, schema.SpeakablePage(selectors...))
	if err != nil {
		return VoiceResult{}, err
	}
	if ok {
		res.HTML = out
		res.note("Added Speakable schema (" + strings.Join(selectors, ", ") + ")")
	}
	return res, nil
}

// FeaturedSnippet gathers whole sentences until at least 30 words are
// collected, then cuts the result to maxWords.
func FeaturedSnippet(text string, maxWords int) string {
	var words []string
	for _, s := range SplitSentences(text) {
		words = append(words, strings.Fields(s)...)
		if len(words) >= snippetMinWords {
			break
		}
	}
	return strings.Join(firstN(words, maxWords), " ")
}
