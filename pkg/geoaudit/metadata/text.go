package metadata

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/geoaudit/pkg/geoaudit/analytics"
	"github.com/cognicore/geoaudit/pkg/geoaudit/finding"
)

var ctaWords = []string{"learn", "discover", "get", "find", "explore", "read", "see"}

// TextCheck is the result of validating a single meta text value.
type TextCheck struct {
	Value  string `json:"value"`
	Length int    `json:"length"`
	finding.Result
}

// ValidateTitle checks the meta title length, brand separator and repeated words.
func ValidateTitle(title string) TextCheck {
	length := utf8.RuneCountInString(title)
	if title == "" {
		b := finding.NewBuilder(0).Issue(finding.Critical, "Missing meta title")
		return TextCheck{Result: b.Result()}
	}

	b := finding.NewBuilder(100)
	switch {
	case length < 30:
		b.Issue(finding.High, "Meta title too short (%d chars, should be 50-60)", length).Adjust(-30)
	case length > 60:
		b.Issue(finding.High, "Meta title too long (%d chars, will be truncated at ~60)", length).Adjust(-20)
	case length >= 50:
		b.Recommend(finding.Success, "Perfect title length (%d chars)", length).Adjust(10)
	}

	if !strings.ContainsAny(title, "|-") {
		b.Recommend(finding.Medium, "Consider adding brand name separator (| or -)")
	}

	if repeated := repeatedWords(title); len(repeated) > 0 {
		b.Issue(finding.High, "Potential keyword stuffing: %s", strings.Join(repeated, ", ")).Adjust(-10)
	}

	return TextCheck{Value: title, Length: length, Result: b.Result()}
}

// repeatedWords returns lower-cased words longer than three characters that
// occur more than once, in first-seen order.
func repeatedWords(text string) []string {
	c := analytics.NewCounter()
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if utf8.RuneCountInString(w) > 3 {
			c.Add(w)
		}
	}
	var repeated []analytics.Entry
	for _, e := range c.MostCommon(0) {
		if e.Count > 1 {
			repeated = append(repeated, e)
		}
	}
	sort.Slice(repeated, func(i, j int) bool { return repeated[i].First < repeated[j].First })

	out := make([]string, len(repeated))
	for i, e := range repeated {
		out[i] = e.Gram
	}
	return out
}

// ValidateDescription checks the meta description length and call to action.
func ValidateDescription(desc string) TextCheck {
	length := utf8.RuneCountInString(desc)
	if desc == "" {
		b := finding.NewBuilder(0).Issue(finding.Critical, "Missing meta description")
		return TextCheck{Result: b.Result()}
	}

	b := finding.NewBuilder(100)
	switch {
	case length < 100:
		b.Issue(finding.High, "Meta description too short (%d chars, should be 150-160)", length).Adjust(-30)
	case length > 160:
		b.Issue(finding.High, "Meta description too long (%d chars, will be truncated)", length).Adjust(-20)
	case length >= 150:
		b.Recommend(finding.Success, "Perfect description length (%d chars)", length).Adjust(10)
	}

	lower := strings.ToLower(desc)
	hasCTA := false
	for _, w := range ctaWords {
		if strings.Contains(lower, w) {
			hasCTA = true
			break
		}
	}
	if hasCTA {
		b.Recommend(finding.Success, "Contains call-to-action")
	} else {
		b.Recommend(finding.Medium, "Consider adding call-to-action (Learn, Discover, Get)")
	}

	return TextCheck{Value: desc, Length: length, Result: b.Result()}
}
