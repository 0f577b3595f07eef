package policy

import (
	"fmt"
	"math"
)

// Tolerances for cross-field checks. Component sums may drift by a unit of
// currency because the source tables round each component independently.
const (
	premiumTolerance   = 0.01
	componentTolerance = 1.0
)

// Validate checks a record set for internal consistency and returns one
// message per mismatch. An empty result means the data is coherent.
//
// This is the downstream collaborator's view of the data: extraction
// asserts values as read from the document, and mismatches reported here
// are cues for manual review, not extraction failures.
func Validate(ill *Illustration) []string {
	var warnings []string
	pi := ill.PolicyInfo

	expectedTotal := pi.AnnualPremium * float64(pi.PaymentYears)
	if math.Abs(pi.TotalPremium-expectedTotal) > premiumTolerance {
		warnings = append(warnings, fmt.Sprintf(
			"total_premium (%.2f) != annual_premium * payment_years (%.2f)",
			pi.TotalPremium, expectedTotal))
	}

	for _, rec := range ill.YearlyData {
		calcTotal := rec.GuaranteedCashValue + rec.ReversionaryBonus + rec.TerminalDividend
		if math.Abs(calcTotal-rec.TotalSurrenderValue) > componentTolerance {
			warnings = append(warnings, fmt.Sprintf(
				"year %d: A+B+C (%.2f) != total_surrender (%.2f)",
				rec.Year, calcTotal, rec.TotalSurrenderValue))
		}

		expectedPremium := pi.AnnualPremium * float64(min(rec.Year, pi.PaymentYears))
		if math.Abs(rec.CumulativePremium-expectedPremium) > premiumTolerance {
			warnings = append(warnings, fmt.Sprintf(
				"year %d: cumulative_premium (%.2f) != expected (%.2f)",
				rec.Year, rec.CumulativePremium, expectedPremium))
		}

		if rec.Age != pi.AgeAtIssue+rec.Year {
			warnings = append(warnings, fmt.Sprintf(
				"year %d: age (%d) != age_at_issue + year (%d)",
				rec.Year, rec.Age, pi.AgeAtIssue+rec.Year))
		}
	}

	for _, rec := range ill.WithdrawalData {
		calcTotal := rec.RemainingSurrenderGuaranteed +
			rec.RemainingSurrenderBonus +
			rec.RemainingSurrenderTerminal
		if math.Abs(calcTotal-rec.RemainingSurrenderTotal) > componentTolerance {
			warnings = append(warnings, fmt.Sprintf(
				"withdrawal year %d: A+B+C (%.2f) != remaining_total (%.2f)",
				rec.Year, calcTotal, rec.RemainingSurrenderTotal))
		}
	}

	if !sequentialYearly(ill.YearlyData) {
		warnings = append(warnings, "yearly_data years are not sequential")
	}
	if !sequentialWithdrawal(ill.WithdrawalData) {
		warnings = append(warnings, "withdrawal_data years are not sequential")
	}

	return warnings
}

func sequentialYearly(records []YearlyRecord) bool {
	for i := 1; i < len(records); i++ {
		if records[i].Year != records[i-1].Year+1 {
			return false
		}
	}
	return true
}

func sequentialWithdrawal(records []WithdrawalRecord) bool {
	for i := 1; i < len(records); i++ {
		if records[i].Year != records[i-1].Year+1 {
			return false
		}
	}
	return true
}
