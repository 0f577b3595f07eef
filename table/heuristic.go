package table

import (
	"strings"

	"github.com/tsawler/illustra/glyph"
)

// withdrawalAmountCol is the column that holds the per-year withdrawal
// amount in the conventional 10-column withdrawal layout.
const withdrawalAmountCol = 3

// HeuristicClassify infers a role from the shape and numeric content of the
// expanded data when header-based classification failed. Rows whose first
// cell is purely numeric are treated as data; a table with no such rows
// cannot be classified and stays Unknown.
//
// Tables with 9 or fewer effective columns are surrender-value series.
// Wider tables are either withdrawal or death-benefit series: a withdrawal
// table shows positive amounts in the conventional withdrawal column, so a
// representative slice of middle rows is inspected for one.
func HeuristicClassify(t *RawTable) Role {
	rows := Expand(t, -1)
	if len(rows) == 0 {
		return Unknown
	}

	var dataRows [][]string
	for _, r := range rows {
		if len(r) > 0 && glyph.IsDigits(strings.TrimSpace(r[0])) {
			dataRows = append(dataRows, r)
		}
	}
	if len(dataRows) == 0 {
		return Unknown
	}

	if len(dataRows[0]) <= 9 {
		return SurrenderValue
	}

	lo, hi := 5, 10
	if hi > len(dataRows) {
		hi = len(dataRows)
	}
	for i := lo; i < hi; i++ {
		r := dataRows[i]
		if len(r) > withdrawalAmountCol && glyph.CleanNumeric(r[withdrawalAmountCol]) > 0 {
			return Withdrawal
		}
	}
	return DeathBenefit
}
