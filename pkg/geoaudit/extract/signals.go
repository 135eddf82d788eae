package extract

import (
	"regexp"
	"strings"

	"github.com/cognicore/geoaudit/pkg/geoaudit/ingest"
)

var (
	tldrPattern       = regexp.MustCompile(`(?i)TL;?DR:?`)
	authorPattern     = regexp.MustCompile(`(?i:\bauthor\b|\bwritten\s+by\b)|\b[Bb]y\s+[A-Z]`)
	credentialPattern = regexp.MustCompile(`\b(?:MD|PhD|MBA|MSc|MPH|DDS|JD|RN)\b|\b(?:Ph\.D\.|M\.D\.)`)
	faqHeading        = regexp.MustCompile(`(?i)\bFAQs?\b|frequently asked questions`)
)

// HasCredentials reports whether text carries a professional credential
// abbreviation.
func HasCredentials(text string) bool {
	return credentialPattern.MatchString(text)
}

// HasAuthorMarker reports whether text names an author.
func HasAuthorMarker(text string) bool {
	return authorPattern.MatchString(text)
}

// HasTLDR reports whether text carries a TL;DR marker.
func HasTLDR(text string) bool {
	return tldrPattern.MatchString(text)
}

// hasFAQHeading reports whether a heading up to maxLevel names an FAQ section.
func hasFAQHeading(headings []ingest.Heading, maxLevel int) bool {
	for _, h := range headings {
		if h.Level <= maxLevel && faqHeading.MatchString(h.Text) {
			return true
		}
	}
	return false
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
