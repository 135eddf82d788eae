// Package finding defines the tagged issues and recommendations analyzers
// emit, and the per-analyzer result they are collected in.
package finding

import (
	"encoding/json"
	"fmt"
)

// Severity is the priority tier of a finding.
type Severity int

const (
	Critical Severity = iota
	High
	Medium
	Low
	Success
)

// Severities lists every tier from most to least urgent.
var Severities = []Severity{Critical, High, Medium, Low, Success}

var severityNames = map[Severity]string{
	Critical: "critical",
	High:     "high",
	Medium:   "medium",
	Low:      "low",
	Success:  "success",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// ParseSeverity converts a tier name back into a Severity.
func ParseSeverity(name string) (Severity, error) {
	for s, n := range severityNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown severity %q", name)
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Finding is one tagged message.
type Finding struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// New formats a finding. The message is always passed through fmt.Sprintf.
func New(sev Severity, format string, args ...any) Finding {
	return Finding{Severity: sev, Message: fmt.Sprintf(format, args...)}
}

// Result is the outcome of one analyzer over one document.
type Result struct {
	Score           int       `json:"score"`
	Issues          []Finding `json:"issues"`
	Recommendations []Finding `json:"recommendations"`
}

// Clamp bounds a score to 0..100.
func Clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Builder accumulates a Result. The zero value starts at score 0.
type Builder struct {
	score int
	res   Result
}

// NewBuilder starts a result at the given score.
func NewBuilder(start int) *Builder {
	return &Builder{score: start}
}

// Adjust adds delta to the running score.
func (b *Builder) Adjust(delta int) *Builder {
	b.score += delta
	return b
}

// Issue records a problem.
func (b *Builder) Issue(sev Severity, format string, args ...any) *Builder {
	b.res.Issues = append(b.res.Issues, New(sev, format, args...))
	return b
}

// Recommend records advice or a success note.
func (b *Builder) Recommend(sev Severity, format string, args ...any) *Builder {
	b.res.Recommendations = append(b.res.Recommendations, New(sev, format, args...))
	return b
}

// Score returns the running, unclamped score.
func (b *Builder) Score() int {
	return b.score
}

// Result returns the accumulated result with the score clamped.
func (b *Builder) Result() Result {
	res := b.res
	res.Score = Clamp(b.score)
	res.Issues = append([]Finding{}, b.res.Issues...)
	res.Recommendations = append([]Finding{}, b.res.Recommendations...)
	return res
}

// CountIssues returns the number of issues at the given severity.
func (r Result) CountIssues(sev Severity) int {
	n := 0
	for _, f := range r.Issues {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

// All returns issues followed by recommendations.
func (r Result) All() []Finding {
	out := make([]Finding, 0, len(r.Issues)+len(r.Recommendations))
	out = append(out, r.Issues...)
	return append(out, r.Recommendations...)
}
