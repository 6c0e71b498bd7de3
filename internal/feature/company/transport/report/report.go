// Package report renders company profiles and financial statements as plain text.
package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"stock_valuation/internal/feature/company/domain"
	"stock_valuation/internal/feature/company/domain/entity"
)

const (
	// NotAvailable replaces any value the data source did not provide.
	NotAvailable = "N/A"

	MessageUnavailable  = "data unavailable"
	MessageNoFinancials = "no financial statements"
	MessageFailed       = "request failed"
)

// 桁区切りは英語ロケールで固定
var printer = message.NewPrinter(language.English)

// RenderProfile formats a profile as the company information block.
func RenderProfile(p entity.CompanyProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Company profile for %s\n", p.Symbol)
	line(&b, "Name:", text(p.Name))
	line(&b, "Sector:", text(p.Sector))
	line(&b, "Industry:", text(p.Industry))
	line(&b, "Market cap:", Money(p.Currency, p.MarketCap, 2))
	line(&b, "52-week high:", Money(p.Currency, p.FiftyTwoWeekHigh, 2))
	line(&b, "52-week low:", Money(p.Currency, p.FiftyTwoWeekLow, 2))
	if p.Beta != nil {
		line(&b, "Beta:", fmt.Sprintf("%.2f", *p.Beta))
	} else {
		line(&b, "Beta:", NotAvailable)
	}
	if p.DividendYield != nil {
		line(&b, "Dividend yield:", fmt.Sprintf("%.2f%%", *p.DividendYield*100))
	} else {
		line(&b, "Dividend yield:", NotAvailable)
	}
	return b.String()
}

// RenderFinancials formats a statement as a table with one row per item and one column per fiscal year.
// Missing cells are shown as N/A.
func RenderFinancials(s entity.FinancialStatement) string {
	header := make([]string, len(s.Periods))
	for i, p := range s.Periods {
		header[i] = p.Format("2006-01-02")
	}
	cells := make([][]string, len(s.Rows))
	itemWidth := len("Item")
	colWidth := len("2006-01-02")
	for i, r := range s.Rows {
		itemWidth = max(itemWidth, len(r.Item))
		cells[i] = make([]string, len(r.Values))
		for j, v := range r.Values {
			cells[i][j] = Money(s.Currency, v, 0)
			colWidth = max(colWidth, len(cells[i][j]))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Income statement for %s\n", s.Symbol)
	fmt.Fprintf(&b, "%-*s", itemWidth, "Item")
	for _, h := range header {
		fmt.Fprintf(&b, "  %*s", colWidth, h)
	}
	b.WriteString("\n")
	for i, r := range s.Rows {
		fmt.Fprintf(&b, "%-*s", itemWidth, r.Item)
		for _, c := range cells[i] {
			fmt.Fprintf(&b, "  %*s", colWidth, c)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Money formats v with thousands separators, "$" for USD and the currency code otherwise.
// nil yields N/A.
func Money(currency string, v *float64, places int) string {
	if v == nil {
		return NotAvailable
	}
	num := printer.Sprintf("%."+strconv.Itoa(places)+"f", *v)
	if currency == "" || currency == "USD" {
		return "$" + num
	}
	return currency + " " + num
}

// Unavailable maps an error to the single message shown instead of a report.
func Unavailable(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoFinancials):
		return MessageNoFinancials
	case errors.Is(err, domain.ErrDataUnavailable):
		return MessageUnavailable
	default:
		return MessageFailed
	}
}

func line(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %-16s %s\n", label, value)
}

func text(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
