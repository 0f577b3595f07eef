package table

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/illustra/glyph"
)

// Field names a logical column of an expanded series row.
type Field string

// Surrender-value series fields.
const (
	FieldYear                Field = "year"
	FieldAge                 Field = "age"
	FieldCumulativePremium   Field = "cumulative_premium"
	FieldGuaranteedCashValue Field = "guaranteed_cv"
	FieldReversionaryBonus   Field = "reversionary_bonus"
	FieldTerminalDividend    Field = "terminal_dividend"
	FieldSpecialDividend     Field = "special_div"
	FieldTotalSurrender      Field = "total_surrender"
)

// Withdrawal series fields.
const (
	FieldWithdrawalAmount    Field = "withdrawal_amount"
	FieldRemainingGuaranteed Field = "remaining_guaranteed"
	FieldRemainingBonus      Field = "remaining_bonus"
	FieldRemainingTerminal   Field = "remaining_terminal"
	FieldRemainingSpecial    Field = "remaining_special"
	FieldRemainingTotal      Field = "remaining_total"
)

// Mapping records which physical column holds each named field for one
// table role. A mapping is built once per role per document from the first
// table whose headers could be read, then applied uniformly to every row of
// every table sharing that role.
type Mapping struct {
	columns map[Field]int
}

// Empty reports whether no columns were detected.
func (m Mapping) Empty() bool {
	return len(m.columns) == 0
}

// Index returns the detected column for field.
func (m Mapping) Index(f Field) (int, bool) {
	idx, ok := m.columns[f]
	return idx, ok
}

// IndexOr returns the detected column for field, or def when detection was
// inconclusive for it. Detected assignments always win over positional
// defaults; the merge happens here at lookup time, never by mutating the
// mapping.
func (m Mapping) IndexOr(f Field, def int) int {
	if idx, ok := m.columns[f]; ok {
		return idx
	}
	return def
}

// String renders the mapping in field order, for diagnostics.
func (m Mapping) String() string {
	pairs := make([]string, 0, len(m.columns))
	for f, idx := range m.columns {
		pairs = append(pairs, fmt.Sprintf("%s=%d", f, idx))
	}
	sort.Strings(pairs)
	return strings.Join(pairs, " ")
}

// fieldKeywords pairs a field with the header labels that identify it.
type fieldKeywords struct {
	field    Field
	keywords []string
}

var surrenderFields = []fieldKeywords{
	{FieldCumulativePremium, []string{"累积保费", "累積保費", "cumulative", "premium", "保费", "保費"}},
	{FieldGuaranteedCashValue, []string{"(a)", "保证现金", "保證現金", "guaranteed"}},
	{FieldReversionaryBonus, []string{"(b)", "复归红利", "復歸紅利", "reversionary"}},
	{FieldTerminalDividend, []string{"(c)", "终期红利", "終期紅利", "terminal"}},
	{FieldSpecialDividend, []string{"#", "特别", "特別", "special"}},
	{FieldTotalSurrender, []string{"(e)", "退保总额", "退保總額", "total", "surrender"}},
}

var withdrawalFields = []fieldKeywords{
	{FieldWithdrawalAmount, []string{"提取", "提領", "withdrawal", "每年"}},
	{FieldRemainingGuaranteed, []string{"(a)", "保证", "保證", "guaranteed"}},
	{FieldRemainingBonus, []string{"(b)", "复归", "復歸", "reversionary"}},
	{FieldRemainingTerminal, []string{"(c)", "终期", "終期", "terminal"}},
	{FieldRemainingSpecial, []string{"#", "特别", "特別", "special"}},
	{FieldRemainingTotal, []string{"总额", "總額", "total"}},
}

// DetectSurrenderColumns infers the column layout of a surrender-value
// table from its header labels. Column 0 is always the policy year and
// column 1 the attained age by convention; each remaining column is matched
// against the per-field keyword sets, first keyword match wins, and a later
// column matching an already-mapped field is ignored. Fields that match
// nothing stay unmapped and fall back to the conventional 8-column layout
// at lookup time.
func DetectSurrenderColumns(t *RawTable, headerRows int) Mapping {
	return detectColumns(t, headerRows, surrenderFields)
}

// DetectWithdrawalColumns infers the column layout of a withdrawal table.
// Unmapped fields fall back to the conventional 10-column layout.
func DetectWithdrawalColumns(t *RawTable, headerRows int) Mapping {
	return detectColumns(t, headerRows, withdrawalFields)
}

func detectColumns(t *RawTable, headerRows int, fields []fieldKeywords) Mapping {
	ncols := t.ColCount()
	if ncols == 0 {
		return Mapping{}
	}

	// Merge all header rows into one label string per column. Both decoded
	// and raw forms are kept so native-text documents match too.
	headers := make([]string, ncols)
	limit := headerRows
	if limit > len(t.Rows) {
		limit = len(t.Rows)
	}
	for i := 0; i < limit; i++ {
		for j, cell := range t.Rows[i] {
			if j >= ncols || cell == "" {
				continue
			}
			headers[j] += " " + strings.TrimSpace(glyph.DecodeCID(cell)) + " " + strings.TrimSpace(cell)
		}
	}

	m := Mapping{columns: make(map[Field]int)}
	for idx, h := range headers {
		if idx == 0 {
			m.columns[FieldYear] = 0
			continue
		}
		if idx == 1 {
			m.columns[FieldAge] = 1
			continue
		}

		combined := glyph.Fold(strings.ToLower(h) + " " + h)
		for _, fk := range fields {
			if !containsAny(combined, fk.keywords) {
				continue
			}
			if _, taken := m.columns[fk.field]; !taken {
				m.columns[fk.field] = idx
			}
			// First matching field claims the column.
			break
		}
	}
	return m
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
