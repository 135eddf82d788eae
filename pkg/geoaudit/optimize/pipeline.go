package optimize

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/geoaudit/pkg/geoaudit/internalerr"
)

// Mode selects which rewrites Run applies.
type Mode string

const (
	ModeContent  Mode = "content"
	ModePlatform Mode = "platform"
	ModeVoice    Mode = "voice"
	ModeAll      Mode = "all"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeContent, ModePlatform, ModeVoice, ModeAll:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q (want content, platform, voice or all)", s)
}

// Step records one stage of a Run.
type Step struct {
	Name    string   `json:"step"`
	Changes []string `json:"changes,omitempty"`
}

// Outcome is the final document plus the per-stage records and the
// read-only scans of the final document.
type Outcome struct {
	Platform  Platform        `json:"platform"`
	Mode      Mode            `json:"mode"`
	HTML      string          `json:"-"`
	Steps     []Step          `json:"steps"`
	Content   *ContentResult  `json:"content,omitempty"`
	Voice     *VoiceResult    `json:"voice,omitempty"`
	Citations CitationReport  `json:"citations"`
	Freshness FreshnessReport `json:"freshness"`
}

// Changes flattens every step's changes in order.
func (out *Outcome) Changes() []string {
	var all []string
	for _, s := range out.Steps {
		all = append(all, s.Changes...)
	}
	return all
}

// Run chains content, platform and voice rewrites as the mode asks,
// then scans the result for citation and freshness opportunities.
func (o *Optimizer) Run(ctx context.Context, doc string, p Platform, mode Mode) (*Outcome, error) {
	if strings.TrimSpace(doc) == "" {
		return nil, internalerr.ErrEmptyDocument
	}
	out := &Outcome{Platform: p, Mode: mode, HTML: doc}
	stage := func(m Mode) bool { return mode == ModeAll || mode == m }

	if stage(ModeContent) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := o.Content(out.HTML)
		if err != nil {
			return nil, fmt.Errorf("content: %w", err)
		}
		out.HTML = res.HTML
		out.Content = &res
		out.Steps = append(out.Steps, Step{Name: "content", Changes: res.Changes})
	}
	if stage(ModePlatform) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := o.Platform(out.HTML, p)
		if err != nil {
			return nil, err
		}
		out.HTML = res.HTML
		out.Steps = append(out.Steps, Step{Name: "platform", Changes: res.Changes})
	}
	if stage(ModeVoice) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := o.Voice(out.HTML)
		if err != nil {
			return nil, fmt.Errorf("voice: %w", err)
		}
		out.HTML = res.HTML
		out.Voice = &res
		out.Steps = append(out.Steps, Step{Name: "voice", Changes: res.Changes})
	}

	cites, err := o.Citations(out.HTML)
	if err != nil {
		return nil, fmt.Errorf("citations: %w", err)
	}
	out.Citations = cites
	out.Freshness = o.Freshness(out.HTML)

	o.logger.Info("optimization complete",
		zap.String("platform", string(p)),
		zap.String("mode", string(mode)),
		zap.Int("changes", len(out.Changes())),
		zap.Int("citation_opportunities", cites.Count),
		zap.Int("freshness_score", out.Freshness.Score))
	return out, nil
}

// Suffix names the output file for a run: "<platform>" when the platform
// stage ran, otherwise "optimized" for content and "voice" for voice.
func (m Mode) Suffix(p Platform) string {
	switch m {
	case ModeContent:
		return "optimized"
	case ModeVoice:
		return "voice"
	default:
		return string(p)
	}
}
