// internal/report/assemble.go
package report

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/clearlabel/transparency-backend/internal/assistant"
	"github.com/clearlabel/transparency-backend/internal/models"
)

// Band labels. Lower bounds are inclusive: 75 is excellent, 50 is moderate.
const (
	BandExcellent = "Excellent Transparency"
	BandModerate  = "Moderate Transparency"
	BandLimited   = "Limited Transparency"
)

const disclaimer = "This report was generated by an AI-powered Product Transparency System. " +
	"While we strive for accuracy, this analysis should be considered alongside other verification methods."

var boldMarkers = regexp.MustCompile(`\*\*(.*?)\*\*`)

func BandLabel(score int) string {
	switch {
	case score >= 75:
		return BandExcellent
	case score >= 50:
		return BandModerate
	default:
		return BandLimited
	}
}

func bandColor(score int) string {
	switch {
	case score >= 75:
		return colorGood
	case score >= 50:
		return colorWarn
	default:
		return colorBad
	}
}

// StripBoldMarkers removes inline markdown-style **bold** markers. Reports
// are a plain-text rendering target, not a markdown one.
func StripBoldMarkers(s string) string {
	return boldMarkers.ReplaceAllString(s, "$1")
}

// Assemble turns a product and its analysis payload into the ordered block
// sequence of the transparency report. It is a pure function: identical
// inputs always yield an identical sequence.
func Assemble(product *models.Product, analysis *assistant.Analysis, reportDate time.Time) []Block {
	var blocks []Block

	// 1. Title and subtitle
	blocks = append(blocks,
		Heading{Text: "PRODUCT TRANSPARENCY REPORT", Level: 1, Color: colorTitle},
		Paragraph{Text: "Comprehensive Supply Chain & Ethics Analysis", Align: AlignCenter, Color: colorSubtitle},
	)

	// 2. Product details box
	blocks = append(blocks, InfoBox{
		Title: "PRODUCT DETAILS",
		Lines: []string{
			"Name: " + product.Name,
			"Category: " + product.Category,
			"Report Date: " + reportDate.Format("January 2, 2006"),
		},
	})

	// 3. Score display
	blocks = append(blocks, Heading{Text: "TRANSPARENCY SCORE", Level: 3, Color: colorScoreHdr})
	if product.TransparencyScore != nil {
		score := *product.TransparencyScore
		blocks = append(blocks,
			Heading{Text: fmt.Sprintf("%d/100", score), Level: 1, Color: bandColor(score)},
			Paragraph{Text: BandLabel(score), Align: AlignCenter, Color: colorSubtitle},
		)
	} else {
		blocks = append(blocks, Heading{Text: "N/A", Level: 1, Color: colorSubtitle})
	}

	// 4. Executive summary
	if analysis.ExecutiveSummary != "" {
		blocks = append(blocks,
			Heading{Text: "EXECUTIVE SUMMARY", Level: 3, Color: colorAccent},
			Paragraph{Text: analysis.ExecutiveSummary, Align: AlignJustify, Color: colorBody},
		)
	}

	// 5. Key findings; skipped entirely when both lists are empty
	if len(analysis.Strengths) > 0 || len(analysis.Concerns) > 0 {
		blocks = append(blocks, PageBreak{}, Heading{Text: "KEY FINDINGS", Level: 2, Color: colorTitle})

		if len(analysis.Strengths) > 0 {
			blocks = append(blocks,
				Heading{Text: "Strengths:", Level: 3, Color: colorGood},
				ListBlock{Items: analysis.Strengths, Numbered: true},
			)
		}

		if len(analysis.Concerns) > 0 {
			blocks = append(blocks,
				Heading{Text: "Areas of Concern:", Level: 3, Color: colorBad},
				ListBlock{Items: analysis.Concerns, Numbered: true},
			)
		}
	}

	// 6. Per-category analysis
	if analysis.CategoryAnalysis.Len() > 0 {
		blocks = append(blocks, PageBreak{}, Heading{Text: "DETAILED CATEGORY ANALYSIS", Level: 2, Color: colorTitle})

		for _, key := range analysis.CategoryAnalysis.Keys() {
			value, _ := analysis.CategoryAnalysis.Get(key)
			blocks = append(blocks,
				Heading{Text: strings.ToUpper(key), Level: 4, Color: colorAccent},
				Paragraph{Text: value.Display(), Align: AlignJustify, Color: colorBody},
			)
		}
	}

	// 7. Disclosed information; the reasoning summary is pulled out and shown
	// under its own heading, never duplicated in the key/value listing.
	blocks = append(blocks, PageBreak{}, Heading{Text: "DISCLOSED INFORMATION", Level: 2, Color: colorTitle})

	var reasoningSummary string
	for _, key := range product.Attributes.Keys() {
		value, _ := product.Attributes.Get(key)
		if key == models.AttributeReasoningSummary {
			reasoningSummary = StripBoldMarkers(value.Display())
			continue
		}
		blocks = append(blocks, KeyValueBlock{Key: key, Value: StripBoldMarkers(value.Display())})
	}

	if reasoningSummary != "" {
		blocks = append(blocks,
			Heading{Text: "Scoring Rationale:", Level: 3, Color: colorAccent},
			Paragraph{Text: reasoningSummary, Align: AlignJustify, Color: colorBody},
		)
	}

	// 8. Recommendations
	if len(analysis.Recommendations) > 0 {
		blocks = append(blocks,
			PageBreak{},
			Heading{Text: "RECOMMENDATIONS", Level: 2, Color: colorTitle},
			ListBlock{Items: analysis.Recommendations, Numbered: true, Justified: true},
		)
	}

	// 9. Disclaimer footer
	blocks = append(blocks, Paragraph{Text: disclaimer, Align: AlignCenter, Color: colorFooter})

	return blocks
}

// FallbackAnalysis is substituted when the assistant cannot supply a report
// analysis; its fields state the degradation so the rendered report is
// honest about what is missing.
func FallbackAnalysis() *assistant.Analysis {
	categoryAnalysis := models.NewAttributeMap()
	categoryAnalysis.SetText("Error", "Data could not be fetched from AI service.")

	return &assistant.Analysis{
		ExecutiveSummary: "Analysis unavailable. Failed to connect to AI service.",
		Strengths:        []string{"Internal AI service is down."},
		Concerns:         []string{"Report is not fully generated."},
		Recommendations:  []string{"Restore AI service functionality."},
		CategoryAnalysis: categoryAnalysis,
	}
}
