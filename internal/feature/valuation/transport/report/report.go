// Package report renders valuation results as the plain-text block shown to users.
package report

import (
	"errors"
	"fmt"
	"strings"

	"stock_valuation/internal/feature/valuation/domain"
	"stock_valuation/internal/feature/valuation/domain/entity"
)

const (
	// MessageUnavailable is shown when market data could not be obtained.
	MessageUnavailable = "data unavailable"
	// MessageCannotCompute is shown when the math has no defined result.
	MessageCannotCompute = "cannot compute valuation"
	// MessageFailed is shown for any other failure.
	MessageFailed = "valuation failed"

	perRiskThreshold = 50.0
)

var verdictSentences = map[entity.Verdict]string{
	entity.VerdictFair:                "The stock is trading within its fair value range.",
	entity.VerdictOvervalued:          "The stock is somewhat overvalued.",
	entity.VerdictStronglyOvervalued:  "The stock is strongly overvalued. Invest with caution.",
	entity.VerdictUndervalued:         "The stock is somewhat undervalued.",
	entity.VerdictStronglyUndervalued: "The stock is strongly undervalued. Review its financial condition and the market before investing.",
}

// Render formats a result as a multi-line text report.
func Render(r entity.ValuationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Valuation for %s\n", r.Symbol)
	fmt.Fprintf(&b, "  %-15s %.2f\n", "EPS:", r.EPS)
	if r.PER > perRiskThreshold {
		fmt.Fprintf(&b, "  %-15s %.2f (overvaluation risk)\n", "P/E:", r.PER)
	} else {
		fmt.Fprintf(&b, "  %-15s %.2f\n", "P/E:", r.PER)
	}
	fmt.Fprintf(&b, "  %-15s %.2f\n", "Adjusted P/E:", r.AdjustedPER)
	fmt.Fprintf(&b, "  %-15s %.2f%%\n", "Growth rate:", r.GrowthRatePct)
	fmt.Fprintf(&b, "  %-15s $%.2f\n", "Current price:", r.CurrentPrice)
	fmt.Fprintf(&b, "  %-15s $%.2f\n", "Fair value:", r.SuitablePrice)
	if r.PEGRatio != nil {
		fmt.Fprintf(&b, "  %-15s %.2f\n", "PEG ratio:", *r.PEGRatio)
	} else {
		fmt.Fprintf(&b, "  %-15s N/A (growth rate <= 0)\n", "PEG ratio:")
	}
	fmt.Fprintf(&b, "  %-15s %.1f%%\n", "Price gap:", r.PriceDiffRatioPct)

	b.WriteString("\n")
	b.WriteString(VerdictSentence(r.Verdict))
	b.WriteString("\n")
	if r.IndustryComparison != nil {
		b.WriteString(IndustrySentence(*r.IndustryComparison))
		b.WriteString("\n")
	}
	return b.String()
}

// VerdictSentence returns the user-facing sentence for a verdict.
func VerdictSentence(v entity.Verdict) string {
	if s, ok := verdictSentences[v]; ok {
		return s
	}
	return string(v)
}

// IndustrySentence describes the P/E multiple against the industry average.
func IndustrySentence(c entity.IndustryComparison) string {
	switch c.Level {
	case entity.IndustryVeryOvervalued:
		return fmt.Sprintf("P/E is %.1fx the industry average (%.2f): strongly overvalued versus the industry.", c.Ratio, c.IndustryPER)
	case entity.IndustrySomewhatOvervalued:
		return fmt.Sprintf("P/E is %.1fx the industry average (%.2f): somewhat overvalued versus the industry.", c.Ratio, c.IndustryPER)
	case entity.IndustryInLine:
		return fmt.Sprintf("P/E is in line with the industry average (%.1fx of %.2f).", c.Ratio, c.IndustryPER)
	default:
		return fmt.Sprintf("P/E is %.1fx the industry average (%.2f): undervalued versus the industry.", c.Ratio, c.IndustryPER)
	}
}

// Unavailable maps a valuation error to the single message shown instead of a report.
// Missing data takes precedence, so a zero price in the history reads as unavailable data.
func Unavailable(err error) string {
	switch {
	case errors.Is(err, domain.ErrDataUnavailable):
		return MessageUnavailable
	case errors.Is(err, domain.ErrDivision):
		return MessageCannotCompute
	default:
		return MessageFailed
	}
}
