package illustra

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/illustra/glyph"
	"github.com/tsawler/illustra/policy"
)

// Plausible free-text ranges. Values outside these bounds are more likely
// policy numbers, dates or percentages than the field being scanned for.
const (
	minPremium      = 1000
	maxPremium      = 1000000
	minPaymentYears = 2
	maxPaymentYears = 30
	maxIssueAge     = 120
)

var amountPattern = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)

// extractPolicyInfo derives the scalar policy attributes from the
// first-page info tables and text sources. Free-text detection here is
// best-effort: premium and payment duration are later overwritten from the
// yearly series when one is extracted, because observed values beat
// free-text heuristics.
func extractPolicyInfo(ctx *runContext) policy.Info {
	cat := ctx.options.catalog
	info := policy.Info{
		Insurer:        cat.Insurer,
		Gender:         "M",
		Currency:       "USD",
		CurrencySymbol: "$",
		PaymentYears:   5,
		CoverageType:   "终身 Whole Life",
	}

	// The first info table's first row usually carries the insured name
	// and issue age: the name is the first non-numeric, non-placeholder
	// cell, the age the first small integer.
	if len(ctx.info) > 0 && len(ctx.info[0].Rows) > 0 {
		firstRow := make([]string, 0, len(ctx.info[0].Rows[0]))
		for _, c := range ctx.info[0].Rows[0] {
			firstRow = append(firstRow, strings.TrimSpace(glyph.DecodeCID(c)))
		}
		for _, cell := range firstRow {
			if cell != "" && cell != "-" && !glyph.IsDigits(strings.ReplaceAll(cell, " ", "")) {
				info.InsuredName = cell
				break
			}
		}
		for _, cell := range firstRow {
			if glyph.IsDigits(cell) {
				if age, err := strconv.Atoi(cell); err == nil && age <= maxIssueAge {
					info.AgeAtIssue = age
					break
				}
			}
		}
	}

	// Scan every decoded info cell for premium amounts and a standalone
	// payment-duration token.
	for _, t := range ctx.info {
		for _, row := range t.Rows {
			for _, c := range row {
				cell := strings.TrimSpace(glyph.DecodeCID(c))

				for _, amt := range amountPattern.FindAllString(cell, -1) {
					v := glyph.CleanNumeric(amt)
					if v >= minPremium && v <= maxPremium && info.AnnualPremium == 0 {
						info.AnnualPremium = v
					}
				}

				if len(cell) <= 2 && glyph.IsDigits(cell) {
					if py, err := strconv.Atoi(cell); err == nil &&
						py >= minPaymentYears && py <= maxPaymentYears {
						info.PaymentYears = py
					}
				}
			}
		}
	}

	// Product and currency phrases may only survive in one of the text
	// sources, so each source is consulted in priority order and the first
	// recognized phrase wins.
	currencyMatched := false
	for _, src := range ctx.textSources {
		if info.ProductName == "" {
			if p := cat.MatchProduct(src); p != nil {
				info.ProductName = p.Name
				info.ProductNameEN = p.NameEN
				ctx.warnf("info", "recognized product: %s", p.NameEN)
			}
		}
		if !currencyMatched {
			if c := cat.MatchCurrency(src); c != nil {
				info.Currency = c.Code
				info.CurrencySymbol = c.Symbol
				currencyMatched = true
			}
		}
	}

	if info.AnnualPremium > 0 && info.PaymentYears > 0 {
		info.TotalPremium = info.AnnualPremium * float64(info.PaymentYears)
	}

	return info
}

// applySeriesOverrides replaces free-text premium and payment-duration
// guesses with values observed in the yearly series: the first year's
// cumulative premium is the annual premium, and the first year at which
// the cumulative premium stops increasing is the payment duration. It also
// back-fills the issue age from the first record when free text yielded
// none, and appends the payment-duration suffix to the product name.
func applySeriesOverrides(ctx *runContext, info *policy.Info, yearly []policy.YearlyRecord) {
	if len(yearly) > 0 {
		if first := yearly[0].CumulativePremium; first > 0 {
			info.AnnualPremium = first
			for i := 1; i < len(yearly); i++ {
				if yearly[i].CumulativePremium == yearly[i-1].CumulativePremium {
					info.PaymentYears = i
					break
				}
			}
			info.TotalPremium = info.AnnualPremium * float64(info.PaymentYears)
			ctx.warnf("info", "premium observed in series: %.0f/year x %d years = %.0f",
				info.AnnualPremium, info.PaymentYears, info.TotalPremium)
		}

		if info.AgeAtIssue == 0 && yearly[0].Age > 0 {
			info.AgeAtIssue = yearly[0].Age - 1
		}
	}

	if info.PaymentYears > 0 && info.ProductName != "" {
		info.ProductName += fmt.Sprintf("（%d年缴费）", info.PaymentYears)
		info.ProductNameEN += fmt.Sprintf(" (%d-Year Payment)", info.PaymentYears)
	}
}
