package illustra

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/illustra/glyph"
	"github.com/tsawler/illustra/policy"
	"github.com/tsawler/illustra/table"
)

// Conventional positional defaults, used for any field the column mapper
// could not place. Surrender tables conventionally have 8 columns and
// withdrawal tables 10; -1 means "last column of the row".
const (
	defSurrenderPremium  = 2
	defSurrenderGuar     = 3
	defSurrenderRev      = 4
	defSurrenderTerm     = 5
	defSurrenderSpec     = 6
	defWithdrawalAmount  = 3
	defWithdrawalGuar    = 5
	defWithdrawalBonus   = 6
	defWithdrawalTerm    = 7
	defWithdrawalSpecial = 8
	lastColumn           = -1
)

// minSeriesCells is the narrowest expanded row still accepted as series
// data. Detection sometimes loses trailing columns, so this is relaxed from
// the conventional full widths.
const minSeriesCells = 6

// assembleYearly joins the surrender-value series with the death-benefit
// series by policy year and produces the ordered yearly records.
//
// The column mapping comes from the first surrender table whose headers
// could be read and is applied uniformly to every expanded row of every
// surrender table; fields the mapper missed fall back to the conventional
// 8-column layout. A year missing from the death-benefit series defaults to
// the greater of that year's total surrender value and cumulative premium —
// never to zero when either is available.
func assembleYearly(ctx *runContext, info *policy.Info) []policy.YearlyRecord {
	var (
		rows    [][]string
		mapping table.Mapping
	)
	for _, t := range ctx.surrender {
		headerRows := table.DetectHeaderRows(t)
		if mapping.Empty() {
			mapping = table.DetectSurrenderColumns(t, headerRows)
		}
		rows = append(rows, table.Expand(t, headerRows)...)
	}
	if !mapping.Empty() {
		ctx.warnf("map", "surrender-value column mapping: %s", mapping)
	}

	deathByYear := deathBenefitByYear(ctx)

	colYear := mapping.IndexOr(table.FieldYear, 0)
	colAge := mapping.IndexOr(table.FieldAge, 1)
	colPrem := mapping.IndexOr(table.FieldCumulativePremium, defSurrenderPremium)
	colGuar := mapping.IndexOr(table.FieldGuaranteedCashValue, defSurrenderGuar)
	colRev := mapping.IndexOr(table.FieldReversionaryBonus, defSurrenderRev)
	colTerm := mapping.IndexOr(table.FieldTerminalDividend, defSurrenderTerm)
	colSpec := mapping.IndexOr(table.FieldSpecialDividend, defSurrenderSpec)
	colTotal := mapping.IndexOr(table.FieldTotalSurrender, lastColumn)

	yearly := []policy.YearlyRecord{}
	seen := make(map[int]bool)
	for _, row := range rows {
		if len(row) < minSeriesCells {
			continue
		}
		yearStr := strings.TrimSpace(cellAt(row, colYear))
		if !glyph.IsDigits(yearStr) {
			continue
		}
		year, _ := strconv.Atoi(yearStr)
		if seen[year] {
			continue
		}
		seen[year] = true

		age := info.AgeAtIssue + year
		if s := strings.TrimSpace(cellAt(row, colAge)); glyph.IsDigits(s) {
			age, _ = strconv.Atoi(s)
		}

		cumPremium := numericAt(row, colPrem)
		guaranteed := numericAt(row, colGuar)
		reversionary := numericAt(row, colRev)
		terminal := numericAt(row, colTerm)
		special := numericAt(row, colSpec)

		total := numericAt(row, colTotal)
		if colTotal < 0 {
			total = glyph.CleanNumeric(row[len(row)-1])
		}

		// A blank cumulative-premium column is reconstructed from the
		// annual premium when one is known.
		if cumPremium == 0 && info.AnnualPremium > 0 {
			cumPremium = info.AnnualPremium * float64(min(year, info.PaymentYears))
		}

		death := deathByYear[year]
		if death == 0 {
			death = math.Max(total, cumPremium)
		}

		if special > 0 {
			terminal += special
		}

		yearly = append(yearly, policy.YearlyRecord{
			Year:                year,
			Age:                 age,
			CumulativePremium:   cumPremium,
			GuaranteedCashValue: guaranteed,
			ReversionaryBonus:   reversionary,
			TerminalDividend:    terminal,
			TotalSurrenderValue: total,
			TotalDeathBenefit:   death,
		})
	}

	sort.SliceStable(yearly, func(i, j int) bool { return yearly[i].Year < yearly[j].Year })

	if len(yearly) == 0 {
		ctx.warnf("assemble", "no yearly data extracted")
		ctx.warnf("assemble", "diagnostics: %d surrender-value tables, %d expanded rows",
			len(ctx.surrender), len(rows))
		if len(rows) > 0 {
			sample := rows[0]
			if len(sample) > 5 {
				sample = sample[:5]
			}
			ctx.warnf("assemble", "first row sample: %q", sample)
		}
	}
	return yearly
}

// deathBenefitByYear expands the death-benefit tables and indexes the
// benefit total by policy year. The total is conventionally the last
// column; when the last cell is blank the second-to-last is used.
func deathBenefitByYear(ctx *runContext) map[int]float64 {
	byYear := make(map[int]float64)
	for _, t := range ctx.death {
		for _, row := range table.Expand(t, -1) {
			if len(row) < minSeriesCells {
				continue
			}
			yearStr := strings.TrimSpace(row[0])
			if !glyph.IsDigits(yearStr) {
				continue
			}
			year, _ := strconv.Atoi(yearStr)

			val := glyph.CleanNumeric(row[len(row)-1])
			if val == 0 && len(row) >= 2 {
				val = glyph.CleanNumeric(row[len(row)-2])
			}
			byYear[year] = val
		}
	}
	return byYear
}

// assembleWithdrawal produces the ordered withdrawal-scenario records, one
// per policy year, when a withdrawal table was classified. The column
// mapping comes from the first withdrawal table whose headers could be
// read; unmapped fields fall back to the conventional 10-column layout.
func assembleWithdrawal(ctx *runContext) []policy.WithdrawalRecord {
	if len(ctx.withdrawal) == 0 {
		return nil
	}

	var (
		rows    [][]string
		mapping table.Mapping
	)
	for _, t := range ctx.withdrawal {
		headerRows := table.DetectHeaderRows(t)
		if mapping.Empty() {
			mapping = table.DetectWithdrawalColumns(t, headerRows)
		}
		rows = append(rows, table.Expand(t, headerRows)...)
	}
	if !mapping.Empty() {
		ctx.warnf("map", "withdrawal column mapping: %s", mapping)
	}

	colYear := mapping.IndexOr(table.FieldYear, 0)
	colAmount := mapping.IndexOr(table.FieldWithdrawalAmount, defWithdrawalAmount)
	colGuar := mapping.IndexOr(table.FieldRemainingGuaranteed, defWithdrawalGuar)
	colBonus := mapping.IndexOr(table.FieldRemainingBonus, defWithdrawalBonus)
	colTerm := mapping.IndexOr(table.FieldRemainingTerminal, defWithdrawalTerm)
	colSpec := mapping.IndexOr(table.FieldRemainingSpecial, defWithdrawalSpecial)
	colTotal := mapping.IndexOr(table.FieldRemainingTotal, lastColumn)

	var records []policy.WithdrawalRecord
	seen := make(map[int]bool)
	for _, row := range rows {
		if len(row) < minSeriesCells {
			continue
		}
		yearStr := strings.TrimSpace(cellAt(row, colYear))
		if !glyph.IsDigits(yearStr) {
			continue
		}
		year, _ := strconv.Atoi(yearStr)
		if seen[year] {
			continue
		}
		seen[year] = true

		amount := numericAt(row, colAmount)
		guaranteed := numericAt(row, colGuar)
		bonus := numericAt(row, colBonus)
		terminal := numericAt(row, colTerm)
		special := numericAt(row, colSpec)

		total := numericAt(row, colTotal)
		if colTotal < 0 {
			total = glyph.CleanNumeric(row[len(row)-1])
		}

		if special > 0 {
			terminal += special
		}

		records = append(records, policy.WithdrawalRecord{
			Year:                         year,
			WithdrawalAmount:             amount,
			RemainingSurrenderGuaranteed: guaranteed,
			RemainingSurrenderBonus:      bonus,
			RemainingSurrenderTerminal:   terminal,
			RemainingSurrenderTotal:      total,
		})
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].Year < records[j].Year })
	return records
}

// cellAt returns the cell at idx, or "" when the row is too short or idx is
// negative. Expanded rows inherit the raggedness of the source table.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// numericAt parses the cell at idx, resolving missing cells to 0.
func numericAt(row []string, idx int) float64 {
	if idx < 0 || idx >= len(row) {
		return 0
	}
	return glyph.CleanNumeric(row[idx])
}
