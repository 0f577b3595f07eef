package table

import (
	"strings"

	"github.com/tsawler/illustra/glyph"
)

// Keyword sets cover Simplified Chinese, Traditional Chinese and English
// header labels observed across product revisions. ASCII keywords are
// lowercase and matched against the lowercased header text.
var (
	surrenderKeywords = []string{
		"保证现金价值", "保證現金價值", "退保价值", "退保價值",
		"退保发还", "退保發還", "保证退保", "保證退保",
		"累积保费", "累積保費", "累积已缴保费", "累積已繳保費",
		"guaranteed", "surrender", "cash value",
		"(a)", "(b)", "(c)", "(e)",
	}

	deathBenefitKeywords = []string{
		"身故赔偿", "身故賠償", "死亡保障",
		"death benefit", "death_benefit",
		"(f)", "(g)", "(h)", "(i)", "(j)",
	}

	withdrawalKeywords = []string{
		"提取", "提領", "每年可提取", "每年可提領",
		"提取方案", "提領方案",
		"withdrawal", "withdraw",
		"(1)", "(2)",
	}
)

// HeaderText returns the flattened text of the table's first headerRows
// rows, with glyph escapes decoded and full-width characters folded. Both
// the decoded and the raw form of each cell are included so documents that
// already use native text encoding match the same keyword sets.
func HeaderText(t *RawTable, headerRows int) string {
	if headerRows > len(t.Rows) {
		headerRows = len(t.Rows)
	}
	var parts []string
	for _, row := range t.Rows[:headerRows] {
		for _, cell := range row {
			if cell == "" {
				continue
			}
			decoded := glyph.DecodeCID(cell)
			parts = append(parts, decoded)
			if cell != decoded {
				parts = append(parts, cell)
			}
		}
	}
	return glyph.Fold(strings.Join(parts, " "))
}

// Classify assigns t a Role from its header rows and column count. The
// tiers are evaluated in order and the first match wins:
//
//  1. Exact: specific column-count and label combinations used by the
//     standard layouts.
//  2. Keyword-scored: at least two hits from a role's keyword set with a
//     permitted column count. Withdrawal is checked first because
//     withdrawal tables otherwise resemble death-benefit tables; surrender
//     is preferred over death-benefit because surrender tables usually
//     carry a death-benefit column of their own.
//  3. Relaxed: a single keyword hit with a wider permitted column range.
//     Surrender wins ties whenever its score is at least the death-benefit
//     score; death-benefit requires zero withdrawal signal; withdrawal
//     accepts any single hit.
//
// Tables that survive all three tiers are Unknown. Classification depends
// only on the header text and column count, so identical inputs always
// produce the identical role.
func Classify(t *RawTable) Role {
	headerRows := DetectHeaderRows(t)
	flat := HeaderText(t, headerRows)
	flatLower := strings.ToLower(flat)
	ncols := t.ColCount()

	// Tier 1: strict label/column-count combinations.
	switch {
	case ncols == 8 && strings.Contains(flat, "(A)") && strings.Contains(flat, "(E)"):
		return SurrenderValue
	case ncols == 8 && strings.Contains(flat, "(A)") && strings.Contains(flat, "(B)"):
		return SurrenderValue
	case ncols == 10 && (strings.Contains(flat, "(F)") || strings.Contains(flat, "(F ")):
		return DeathBenefit
	case ncols == 10 && strings.Contains(flat, "(1)") && strings.Contains(flat, "(2)"):
		return Withdrawal
	case ncols == 10 && strings.Contains(flat, "(G)"):
		return DeathBenefit
	}

	svScore := keywordScore(flat, flatLower, surrenderKeywords)
	dbScore := keywordScore(flat, flatLower, deathBenefitKeywords)
	wdScore := keywordScore(flat, flatLower, withdrawalKeywords)

	// Tier 2: keyword scoring with flexible column counts.
	switch {
	case wdScore >= 2 && ncols >= 8:
		return Withdrawal
	case svScore >= 2 && ncols >= 6 && ncols <= 10:
		return SurrenderValue
	case dbScore >= 2 && ncols >= 8:
		return DeathBenefit
	}

	// Tier 3: single keyword with relaxed column counts.
	switch {
	case svScore >= 1 && ncols >= 6 && ncols <= 10 && svScore >= dbScore:
		return SurrenderValue
	case dbScore >= 1 && ncols >= 8 && wdScore == 0:
		return DeathBenefit
	case wdScore >= 1 && ncols >= 8:
		return Withdrawal
	}

	return Unknown
}

// keywordScore counts how many keywords appear in the header text, checking
// the lowercased form first so ASCII keywords match case-insensitively.
func keywordScore(flat, flatLower string, keywords []string) int {
	score := 0
	for _, kw := range keywords {
		if strings.Contains(flatLower, kw) || strings.Contains(flat, kw) {
			score++
		}
	}
	return score
}
