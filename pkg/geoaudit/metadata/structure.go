package metadata

import (
	"github.com/cognicore/geoaudit/pkg/geoaudit/extract"
	"github.com/cognicore/geoaudit/pkg/geoaudit/finding"
)

// Word count thresholds for body content.
const (
	MinWords           = 300
	ComprehensiveWords = 800
)

// Structure summarises the heading and attribution signals of a page.
type Structure struct {
	H1Count        int  `json:"h1_count"`
	H2Count        int  `json:"h2_count"`
	H3Count        int  `json:"h3_count"`
	HasTLDR        bool `json:"has_tldr"`
	HasFAQ         bool `json:"has_faq"`
	HasAuthor      bool `json:"has_author"`
	HasCredentials bool `json:"has_credentials"`
}

// StructureCheck is the result of validating content structure.
type StructureCheck struct {
	WordCount int       `json:"word_count"`
	Structure Structure `json:"structure"`
	finding.Result
}

// ValidateStructure checks TL;DR, headings, FAQ, author attribution and length.
func ValidateStructure(sig extract.Signals) StructureCheck {
	st := Structure{
		H1Count:        len(sig.H1),
		H2Count:        len(sig.H2),
		H3Count:        len(sig.H3),
		HasTLDR:        sig.HasTLDR,
		HasFAQ:         sig.HasFAQ,
		HasAuthor:      sig.HasAuthor,
		HasCredentials: sig.HasCredentials,
	}
	b := finding.NewBuilder(100)

	if st.HasTLDR {
		b.Recommend(finding.Success, "TL;DR present (35%% citation boost)")
	} else {
		b.Issue(finding.High, "Missing TL;DR in first 60 words (35%% citation boost)").Adjust(-25)
		b.Recommend(finding.High, "Add TL;DR: direct answer in first 40-60 words")
	}

	switch {
	case st.H1Count == 0:
		b.Issue(finding.Critical, "No H1 heading found").Adjust(-30)
	case st.H1Count > 1:
		b.Issue(finding.High, "Multiple H1 headings (%d), should have exactly 1", st.H1Count).Adjust(-15)
	default:
		b.Recommend(finding.Success, "Single H1 heading (correct structure)")
	}

	switch {
	case st.H2Count < 2:
		b.Issue(finding.High, "Too few H2 headings (%d), need at least 2-3 for structure", st.H2Count).Adjust(-15)
	case st.H2Count >= 3:
		b.Recommend(finding.Success, "Good H2 structure (%d headings)", st.H2Count)
	}

	if st.HasFAQ {
		b.Recommend(finding.Success, "FAQ section present (voice search ready)")
	} else {
		b.Recommend(finding.Medium, "Consider adding FAQ section for voice search")
	}

	switch {
	case !st.HasAuthor:
		b.Issue(finding.High, "No author attribution found (40%% citation boost with credentials)").Adjust(-20)
		b.Recommend(finding.High, "Add author byline with full name and credentials")
	case !st.HasCredentials:
		b.Recommend(finding.Medium, "Author found but no credentials (MD, PhD), add for 40%% boost")
	default:
		b.Recommend(finding.Success, "Author with credentials (40%% citation boost)")
	}

	switch {
	case sig.WordCount < MinWords:
		b.Issue(finding.High, "Content too short (%d words, minimum %d recommended)", sig.WordCount, MinWords).Adjust(-20)
	case sig.WordCount >= ComprehensiveWords:
		b.Recommend(finding.Success, "Comprehensive content (%d words)", sig.WordCount)
	}

	return StructureCheck{WordCount: sig.WordCount, Structure: st, Result: b.Result()}
}
