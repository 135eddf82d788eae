// Package audit runs the analyzers over a page and combines their results
// into one weighted score and a prioritized list of findings.
package audit

import (
	"fmt"
	"math"
	"sort"

	"github.com/cognicore/geoaudit/pkg/geoaudit/finding"
	"github.com/cognicore/geoaudit/pkg/geoaudit/internalerr"
)

// Analyzer names.
const (
	Metadata = "metadata"
	Content  = "content"
	Keywords = "keywords"
	Entities = "entities"
	Schema   = "schema"
)

// Order is the fixed analyzer order used for aggregation and bucketing.
var Order = []string{Metadata, Content, Keywords, Entities, Schema}

// Weights maps analyzer names to their share of the overall score.
type Weights map[string]float64

// DefaultWeights returns the standard weighting, summing to 1.0.
func DefaultWeights() Weights {
	return Weights{
		Metadata: 0.30,
		Content:  0.25,
		Keywords: 0.20,
		Entities: 0.15,
		Schema:   0.10,
	}
}

// Validate rejects negative weights and an all-zero table.
func (w Weights) Validate() error {
	total := 0.0
	for name, v := range w {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: weight %q is %v", internalerr.ErrInvalidConfig, name, v)
		}
		total += v
	}
	if total == 0 {
		return fmt.Errorf("%w: all weights are zero", internalerr.ErrInvalidConfig)
	}
	return nil
}

// names returns the weighted analyzers in aggregation order: Order first,
// then any extra names alphabetically.
func (w Weights) names() []string {
	out := make([]string, 0, len(w))
	known := make(map[string]bool, len(Order))
	for _, n := range Order {
		known[n] = true
		if _, ok := w[n]; ok {
			out = append(out, n)
		}
	}
	var extra []string
	for n := range w {
		if !known[n] {
			extra = append(extra, n)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// basisPoints converts a weight to an integer number of 1/10000ths so that
// the weighted sum is exact.
func basisPoints(w float64) int {
	return int(math.Round(w * 10000))
}

// Score is the combined outcome of an audit.
type Score struct {
	Overall    int            `json:"overall"`
	Components map[string]int `json:"components"`
	// Missing lists weighted analyzers that produced no result. Their
	// weight is dropped and the remaining weights are not rescaled to the
	// full table.
	Missing       []string `json:"missing,omitempty"`
	AppliedWeight float64  `json:"applied_weight"`
	Partial       bool     `json:"partial"`
}

// Aggregate combines per-analyzer scores: overall is
// floor(Σ score×weight / Σ weight) over the analyzers that produced a
// result, or 0 when none did.
func Aggregate(results map[string]finding.Result, weights Weights) Score {
	s := Score{Components: make(map[string]int, len(results))}
	acc, accW := 0, 0
	for _, name := range weights.names() {
		res, ok := results[name]
		if !ok {
			s.Missing = append(s.Missing, name)
			continue
		}
		bp := basisPoints(weights[name])
		acc += res.Score * bp
		accW += bp
		s.Components[name] = res.Score
	}
	if accW > 0 {
		s.Overall = acc / accW
	}
	s.AppliedWeight = float64(accW) / 10000
	s.Partial = len(s.Missing) > 0
	return s
}

// Buckets groups finding messages by severity.
type Buckets struct {
	Critical []string `json:"critical"`
	High     []string `json:"high_priority"`
	Medium   []string `json:"medium_priority"`
	Low      []string `json:"low_priority"`
	Success  []string `json:"successes"`
}

func (b *Buckets) add(f finding.Finding) {
	switch f.Severity {
	case finding.Critical:
		b.Critical = append(b.Critical, f.Message)
	case finding.High:
		b.High = append(b.High, f.Message)
	case finding.Medium:
		b.Medium = append(b.Medium, f.Message)
	case finding.Low:
		b.Low = append(b.Low, f.Message)
	default:
		b.Success = append(b.Success, f.Message)
	}
}

// Len returns the total number of messages.
func (b *Buckets) Len() int {
	return len(b.Critical) + len(b.High) + len(b.Medium) + len(b.Low) + len(b.Success)
}

// Bucket walks results in analyzer order, issues before recommendations,
// and files each finding under its severity. A message seen before is
// dropped.
func Bucket(results map[string]finding.Result) Buckets {
	b := Buckets{
		Critical: []string{},
		High:     []string{},
		Medium:   []string{},
		Low:      []string{},
		Success:  []string{},
	}
	seen := make(map[string]bool)
	for _, name := range resultOrder(results) {
		for _, f := range results[name].All() {
			if seen[f.Message] {
				continue
			}
			seen[f.Message] = true
			b.add(f)
		}
	}
	return b
}

func resultOrder(results map[string]finding.Result) []string {
	w := make(Weights, len(results))
	for name := range results {
		w[name] = 0
	}
	return w.names()
}
