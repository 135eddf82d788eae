package optimize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FreshnessReport scores how current a page looks to answer engines.
type FreshnessReport struct {
	Score          int      `json:"freshness_score"`
	Issues         []string `json:"issues"`
	Recommendation string   `json:"recommendation"`
	// DaysOld is -1 when the page has no parseable dateModified.
	DaysOld int `json:"days_old"`
}

const (
	staleAfterDays   = 30
	freshnessPenalty = 20
	firstTrackedYear = 2020
)

var dateModifiedValue = regexp.MustCompile(`"dateModified":\s*"([^"]+)"`)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Freshness checks the first dateModified and any mention of a year
// from 2020 up to last year.
func (o *Optimizer) Freshness(doc string) FreshnessReport {
	now := o.now()
	rep := FreshnessReport{Issues: []string{}, DaysOld: -1}

	if m := dateModifiedValue.FindStringSubmatch(doc); m != nil {
		if modified, ok := parseDate(strings.TrimSpace(m[1])); ok {
			rep.DaysOld = int(now.Sub(modified).Hours() / 24)
			if rep.DaysOld > staleAfterDays {
				rep.Issues = append(rep.Issues, fmt.Sprintf("Content is %d days old (>30 days = 3.2x fewer citations)", rep.DaysOld))
			}
		}
	}

	for year := firstTrackedYear; year < now.Year(); year++ {
		y := strconv.Itoa(year)
		if strings.Contains(doc, y) {
			rep.Issues = append(rep.Issues, "Contains reference to "+y+" (consider updating)")
		}
	}

	rep.Score = 100 - min(freshnessPenalty*len(rep.Issues), 100)
	if len(rep.Issues) > 0 {
		rep.Recommendation = "Update every 2-3 days for Perplexity"
	} else {
		rep.Recommendation = "Content is fresh"
	}
	return rep
}
