// Package content scores a page's on-page SEO and AI-citation readiness.
package content

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/geoaudit/pkg/geoaudit/extract"
	"github.com/cognicore/geoaudit/pkg/geoaudit/finding"
)

// Per-issue deductions from a base score of 100.
const (
	criticalPenalty = 15
	issuePenalty    = 3
)

// Analyze checks the page and scores it.
func Analyze(page *extract.Page) finding.Result {
	b := finding.NewBuilder(100)
	sig := page.Signals
	faqSchema := page.HasSchemaType("FAQPage")
	articleSchema := page.HasSchemaType("Article")

	issues(b, page, faqSchema, articleSchema)
	recommendations(b, page, faqSchema, articleSchema)

	res := b.Result()
	score := 100 - criticalPenalty*res.CountIssues(finding.Critical) -
		issuePenalty*(len(res.Issues)-res.CountIssues(finding.Critical))

	bonus := func(ok bool, pts int) {
		if ok {
			score += pts
		}
	}
	bonus(sig.HasTLDR, 5)
	bonus(sig.HasFAQ, 5)
	bonus(sig.HasCredentials, 10)
	bonus(len(sig.H1) == 1, 5)
	bonus(len(sig.H2) >= 3, 5)
	bonus(faqSchema, 10)
	bonus(articleSchema, 10)
	og := page.OpenGraph
	bonus(og["title"] != "" && og["description"] != "" && og["image"] != "", 5)

	res.Score = finding.Clamp(score)
	return res
}

func issues(b *finding.Builder, page *extract.Page, faqSchema, articleSchema bool) {
	sig := page.Signals

	switch n := utf8.RuneCountInString(page.Meta.Title); {
	case n == 0:
		b.Issue(finding.Critical, "Missing meta title (essential for SEO)")
	case n > 60:
		b.Issue(finding.Medium, "Meta title too long (%d chars, should be 50-60)", n)
	case n < 30:
		b.Issue(finding.Medium, "Meta title too short (%d chars, should be 50-60)", n)
	}

	switch n := utf8.RuneCountInString(page.Meta.Description); {
	case n == 0:
		b.Issue(finding.Critical, "Missing meta description (essential for SEO)")
	case n > 160:
		b.Issue(finding.Medium, "Meta description too long (%d chars, should be 150-160)", n)
	case n < 100:
		b.Issue(finding.Medium, "Meta description too short (%d chars, should be 150-160)", n)
	}

	if page.OpenGraph["title"] == "" {
		b.Issue(finding.Medium, "Missing og:title (poor social media preview)")
	}
	if page.OpenGraph["description"] == "" {
		b.Issue(finding.Medium, "Missing og:description (poor social media preview)")
	}
	if page.OpenGraph["image"] == "" {
		b.Issue(finding.Medium, "Missing og:image (no preview image on Facebook/LinkedIn/WhatsApp)")
	}
	if page.Twitter["card"] == "" {
		b.Issue(finding.Medium, "Missing twitter:card (poor Twitter/X preview)")
	}
	if page.Twitter["image"] == "" {
		b.Issue(finding.Medium, "Missing twitter:image (no preview image on Twitter/X)")
	}

	if sig.HasFAQ && !faqSchema {
		b.Issue(finding.Medium, "Missing FAQ schema (highest AI citation probability for FAQ content)")
	}
	if !articleSchema {
		b.Issue(finding.Medium, "Missing Article schema (E-E-A-T signals for AI citation)")
	}

	if !sig.HasTLDR {
		b.Issue(finding.Medium, "Missing TL;DR in first 60 words (35%% citation boost for AI search)")
	}
	switch n := len(sig.H1); {
	case n == 0:
		b.Issue(finding.Critical, "Missing H1 heading (essential for SEO)")
	case n > 1:
		b.Issue(finding.Medium, "Multiple H1 headings found (%d), should have exactly 1", n)
	}
	if len(sig.H2) < 2 {
		b.Issue(finding.Medium, "Should have at least 2 H2 headings for proper structure")
	}
	if sig.HasFAQ && !faqSchema {
		b.Issue(finding.Medium, "FAQ section found but missing FAQ schema markup")
	}
	if !sig.HasAuthor {
		b.Issue(finding.Medium, "Missing author attribution (40%% citation boost with credentials)")
	} else if !sig.HasCredentials {
		b.Issue(finding.Medium, "Author found but no credentials (MD, PhD), add for 40%% citation boost")
	}
	if sig.WordCount < 300 {
		b.Issue(finding.Medium, "Content too short (%d words, minimum 300 recommended)", sig.WordCount)
	}
}

func recommendations(b *finding.Builder, page *extract.Page, faqSchema, articleSchema bool) {
	sig := page.Signals

	if !sig.HasTLDR {
		b.Recommend(finding.Low, "Add TL;DR in first 40-60 words (35%% citation boost for ChatGPT/Perplexity)")
	}
	if !faqSchema {
		b.Recommend(finding.Low, "Add FAQ schema (highest LLM citation probability, use schema-gen)")
	}
	if !articleSchema {
		b.Recommend(finding.Low, "Add Article schema with author credentials (40%% citation boost)")
	}
	if !mentionsSpeakable(page.Schemas) {
		b.Recommend(finding.Low, "Add Speakable schema for voice search optimization (Google Assistant, Siri, Alexa)")
	}
	if sig.HasFAQ && !faqSchema {
		b.Recommend(finding.Low, "Add FAQ section with 29-word answers for voice search (80%% of answers from top 3)")
	}
	if page.OpenGraph["image"] == "" {
		b.Recommend(finding.Low, "Add Open Graph image (1200×630px for Facebook/LinkedIn/WhatsApp previews)")
	}
	if n := len(sig.H2); n < 3 {
		b.Recommend(finding.Low, "Add more H2 headings (%d found, 3-5 recommended for AI scan-ability)", n)
	}
	if !sig.HasAuthor {
		b.Recommend(finding.Low, "Add author attribution with credentials (MD, PhD, etc.), 40%% citation boost")
	}
	if sig.WordCount < 800 {
		b.Recommend(finding.Low, "Expand content (%d words, 800-1500 recommended for comprehensive coverage)", sig.WordCount)
	}

	if sig.HasCredentials {
		b.Recommend(finding.Success, "STRENGTH: Author credentials present, excellent for ChatGPT citation")
	}
	if len(sig.H1) == 1 && len(sig.H2) >= 2 {
		b.Recommend(finding.Success, "STRENGTH: Proper heading hierarchy, excellent for AI parsing")
	}
}

// mentionsSpeakable reports whether any schema block mentions speakable in a
// key or value.
func mentionsSpeakable(schemas []map[string]any) bool {
	for _, s := range schemas {
		data, err := json.Marshal(s)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(string(data)), "speakable") {
			return true
		}
	}
	return false
}
