package optimize

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Opportunity is a place where a real statistic or quotation would make
// the page more citable.
type Opportunity struct {
	Type       string `json:"type"`
	Location   string `json:"location"`
	Suggestion string `json:"suggestion"`
	Impact     string `json:"impact"`
}

// CitationReport lists the top opportunities. Count covers all of them.
type CitationReport struct {
	Count         int           `json:"opportunities_count"`
	Opportunities []Opportunity `json:"opportunities"`
	Note          string        `json:"note"`
}

const (
	maxOpportunities   = 5
	statisticMinWords  = 15
	quotationMinParas  = 3
	citationReportNote = "User must provide real statistics and quotes (no fabrication)"
)

// Citations flags long paragraphs that carry no number, and a page with
// several paragraphs but no blockquote.
func (o *Optimizer) Citations(doc string) (CitationReport, error) {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return CitationReport{}, fmt.Errorf("parse html: %w", err)
	}
	var opps []Opportunity
	paragraphs := 0
	d.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		paragraphs++
		if !strings.ContainsAny(text, "0123456789") && len(strings.Fields(text)) > statisticMinWords {
			opps = append(opps, Opportunity{
				Type:       "statistic",
				Location:   fmt.Sprintf("Paragraph %d", paragraphs),
				Suggestion: "Add quantified data (numbers, percentages, growth rates)",
				Impact:     "+41% citation improvement",
			})
		}
	})
	if d.Find("blockquote").Length() == 0 && paragraphs > quotationMinParas {
		opps = append(opps, Opportunity{
			Type:       "quotation",
			Location:   "Main content",
			Suggestion: "Add expert quotation from authority figure",
			Impact:     "+28% citation improvement",
		})
	}
	return CitationReport{
		Count:         len(opps),
		Opportunities: append([]Opportunity{}, firstN(opps, maxOpportunities)...),
		Note:          citationReportNote,
	}, nil
}
