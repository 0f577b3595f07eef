package table

import (
	"strings"

	"github.com/tsawler/illustra/glyph"
)

// Expand returns one logical row per policy year, discarding the first
// headerRows rows. Passing a negative headerRows auto-detects the count.
//
// Illustrations pack several consecutive years into a single physical print
// row, separating the per-year values inside each cell with line breaks.
// Every physical row expands to as many sub-rows as the maximum split count
// among its cells; cells with fewer values pad the remaining sub-rows with
// empty strings, so every sub-row keeps the original row's cell count.
func Expand(t *RawTable, headerRows int) [][]string {
	if headerRows < 0 {
		headerRows = DetectHeaderRows(t)
	}
	if headerRows > len(t.Rows) {
		headerRows = len(t.Rows)
	}

	var expanded [][]string
	for _, row := range t.Rows[headerRows:] {
		split := make([][]string, len(row))
		maxParts := 0
		for j, cell := range row {
			parts := strings.Split(strings.TrimSpace(glyph.DecodeCID(cell)), "\n")
			split[j] = parts
			if len(parts) > maxParts {
				maxParts = len(parts)
			}
		}
		for k := 0; k < maxParts; k++ {
			sub := make([]string, len(row))
			for j, parts := range split {
				if k < len(parts) {
					sub[j] = strings.TrimSpace(parts[k])
				}
			}
			expanded = append(expanded, sub)
		}
	}
	return expanded
}
