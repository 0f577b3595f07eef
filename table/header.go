package table

import (
	"strings"

	"github.com/tsawler/illustra/glyph"
)

// DetectHeaderRows returns how many leading rows of t are header rows.
//
// It scans from the top for the first row whose first cell, decoded and
// truncated at the first embedded line break, is purely numeric — a policy
// year, which marks the first data row. Illustrations ship with one, two or
// three header rows depending on product and revision, so the count is
// detected, never assumed. The result is floored at 1; when no data row is
// found at all the count defaults to min(3, rows-1).
func DetectHeaderRows(t *RawTable) int {
	for i, row := range t.Rows {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		first := strings.TrimSpace(glyph.DecodeCID(row[0]))
		if first == "" {
			continue
		}
		if nl := strings.IndexByte(first, '\n'); nl >= 0 {
			first = strings.TrimSpace(first[:nl])
		}
		if glyph.IsDigits(first) {
			if i < 1 {
				return 1
			}
			return i
		}
	}

	n := len(t.Rows) - 1
	if n > 3 {
		n = 3
	}
	return n
}
