package table

// Role is the semantic role assigned to a raw table. A role is assigned
// once per table and is immutable thereafter.
type Role int

const (
	// Unknown marks a table no classification tier could place. Unknown
	// tables contribute no records but are retained for the heuristic
	// fallback pass.
	Unknown Role = iota

	// SurrenderValue is the per-year table of guaranteed and bonus
	// components making up the policy's cash surrender value.
	SurrenderValue

	// DeathBenefit is the per-year table of amounts payable on death.
	DeathBenefit

	// Withdrawal is the per-year table describing a scheduled
	// partial-withdrawal scenario and its effect on remaining value.
	Withdrawal
)

// String returns the role's wire name.
func (r Role) String() string {
	switch r {
	case SurrenderValue:
		return "surrender_value"
	case DeathBenefit:
		return "death_benefit"
	case Withdrawal:
		return "withdrawal"
	default:
		return "unknown"
	}
}

// RawTable is one table as detected on a page: ordered rows of text cells.
// Rows may have unequal lengths and cells may be empty. A RawTable is a
// transient value owned by the extraction pipeline; once its rows have been
// expanded and mapped it is discarded.
type RawTable struct {
	// Page is the 1-indexed page the table was found on.
	Page int

	Rows [][]string
}

// RowCount returns the number of physical rows.
func (t *RawTable) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the widest row's cell count.
func (t *RawTable) ColCount() int {
	max := 0
	for _, row := range t.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// Size returns rows multiplied by columns, used to rank fallback candidates
// so the most data-rich table is tried first.
func (t *RawTable) Size() int {
	return t.RowCount() * t.ColCount()
}
