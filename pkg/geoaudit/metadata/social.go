package metadata

import (
	"strings"
	"unicode/utf8"

	"github.com/cognicore/geoaudit/pkg/geoaudit/finding"
)

var (
	ogRequired      = []string{"title", "description", "image", "url", "type"}
	ogCommonTypes   = map[string]bool{"website": true, "article": true, "video.movie": true, "video.episode": true, "music.song": true}
	twitterRequired = []string{"card", "title", "description", "image"}
	twitterCards    = map[string]bool{"summary": true, "summary_large_image": true, "app": true, "player": true}
)

// TagCheck is the result of validating a social card tag set.
type TagCheck struct {
	Tags map[string]string `json:"tags"`
	finding.Result
}

func missingTags(tags map[string]string, required []string) []string {
	var missing []string
	for _, k := range required {
		if tags[k] == "" {
			missing = append(missing, k)
		}
	}
	return missing
}

// ValidateOpenGraph checks the og:* and article:* properties.
func ValidateOpenGraph(og map[string]string) TagCheck {
	b := finding.NewBuilder(100)

	if missing := missingTags(og, ogRequired); len(missing) > 0 {
		b.Issue(finding.High, "Missing required OG tags: %s", strings.Join(missing, ", ")).
			Adjust(-20 * len(missing))
	}

	if n := utf8.RuneCountInString(og["title"]); n > 90 {
		b.Issue(finding.Medium, "og:title too long (%d chars, max ~88)", n).Adjust(-10)
	}
	if n := utf8.RuneCountInString(og["description"]); n > 200 {
		b.Issue(finding.Medium, "og:description too long (%d chars, max ~200)", n).Adjust(-10)
	}

	if img := og["image"]; img != "" {
		if !strings.HasPrefix(img, "http") {
			b.Issue(finding.High, "og:image must be absolute URL (https://example.com/image.jpg)").Adjust(-15)
		}
		b.Recommend(finding.Success, "og:image present")
		b.Recommend(finding.Low, "Verify image is 1200×630px for optimal display")
	} else {
		b.Issue(finding.Critical, "Missing og:image (no Facebook/LinkedIn/WhatsApp preview)").Adjust(-30)
	}

	if u := og["url"]; u != "" && !strings.HasPrefix(u, "http") {
		b.Issue(finding.High, "og:url must be absolute URL").Adjust(-10)
	}

	if t := og["type"]; t != "" && !ogCommonTypes[t] {
		b.Recommend(finding.Low, "og:type '%s' is valid but uncommon", t)
	}
	if og["site_name"] == "" {
		b.Recommend(finding.Medium, "Consider adding og:site_name for branding")
	}
	if og["type"] == "article" {
		if og["article:published_time"] == "" {
			b.Recommend(finding.Medium, "Add article:published_time for article type")
		}
		if og["article:author"] == "" {
			b.Recommend(finding.Medium, "Add article:author for E-E-A-T")
		}
	}

	return TagCheck{Tags: og, Result: b.Result()}
}

// ValidateTwitter checks the twitter:* card tags.
func ValidateTwitter(tw map[string]string) TagCheck {
	b := finding.NewBuilder(100)

	if missing := missingTags(tw, twitterRequired); len(missing) > 0 {
		b.Issue(finding.High, "Missing Twitter Card tags: %s", strings.Join(missing, ", ")).
			Adjust(-20 * len(missing))
	}

	switch card := tw["card"]; {
	case card == "":
	case !twitterCards[card]:
		b.Issue(finding.High, "Invalid twitter:card value: %s", card).Adjust(-15)
	case card == "summary":
		b.Recommend(finding.Medium, "Consider using 'summary_large_image' for better engagement")
	case card == "summary_large_image":
		b.Recommend(finding.Success, "Using summary_large_image (recommended)")
	}

	if img := tw["image"]; img != "" {
		if !strings.HasPrefix(img, "http") {
			b.Issue(finding.High, "twitter:image must be absolute URL").Adjust(-15)
		}
		b.Recommend(finding.Low, "Verify image is 1200×628px for large card")
	} else {
		b.Issue(finding.Critical, "Missing twitter:image (no Twitter/X preview)").Adjust(-30)
	}

	site := tw["site"]
	if site == "" && tw["creator"] == "" {
		b.Recommend(finding.Medium, "Add twitter:site or twitter:creator for attribution")
	}
	if site != "" {
		if strings.HasPrefix(site, "@") {
			b.Recommend(finding.Success, "Twitter site attributed: %s", site)
		} else {
			b.Issue(finding.Low, "twitter:site should include @ (e.g., @username)").Adjust(-5)
		}
	}

	return TagCheck{Tags: tw, Result: b.Result()}
}
