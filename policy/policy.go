package policy

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
)

// Info holds the scalar policy attributes extracted from the document.
type Info struct {
	ProductName    string  `json:"product_name"`
	ProductNameEN  string  `json:"product_name_en"`
	Insurer        string  `json:"insurer"`
	InsuredName    string  `json:"insured_name"`
	AgeAtIssue     int     `json:"age_at_issue"`
	Gender         string  `json:"gender"`
	Currency       string  `json:"currency"`
	CurrencySymbol string  `json:"currency_symbol"`
	AnnualPremium  float64 `json:"annual_premium"`
	PaymentYears   int     `json:"payment_years"`
	TotalPremium   float64 `json:"total_premium"`
	CoverageType   string  `json:"coverage_type"`
	PlanDate       string  `json:"plan_date"`
}

// YearlyRecord is one policy year of the no-withdrawal projection. The
// total surrender value is expected to equal the sum of the guaranteed,
// reversionary and terminal components within tolerance; any merged
// special-dividend amount is included in the terminal dividend.
type YearlyRecord struct {
	Year                int     `json:"year"`
	Age                 int     `json:"age"`
	CumulativePremium   float64 `json:"cumulative_premium"`
	GuaranteedCashValue float64 `json:"guaranteed_cash_value"`
	ReversionaryBonus   float64 `json:"reversionary_bonus"`
	TerminalDividend    float64 `json:"terminal_dividend"`
	TotalSurrenderValue float64 `json:"total_surrender_value"`
	TotalDeathBenefit   float64 `json:"total_death_benefit"`
}

// WithdrawalRecord is one policy year of the withdrawal scenario: the
// amount withdrawn that year (zero if none) and the surrender-value
// components remaining afterwards.
type WithdrawalRecord struct {
	Year                         int     `json:"year"`
	WithdrawalAmount             float64 `json:"withdrawal_amount"`
	RemainingSurrenderGuaranteed float64 `json:"remaining_surrender_guaranteed"`
	RemainingSurrenderBonus      float64 `json:"remaining_surrender_bonus"`
	RemainingSurrenderTerminal   float64 `json:"remaining_surrender_terminal"`
	RemainingSurrenderTotal      float64 `json:"remaining_surrender_total"`
}

// Brand holds branding defaults passed through to the report renderers.
// The renderers own these values; extraction only emits them.
type Brand struct {
	PrimaryColor   string `json:"primary_color" yaml:"primary_color"`
	SecondaryColor string `json:"secondary_color" yaml:"secondary_color"`
	AccentColor    string `json:"accent_color" yaml:"accent_color"`
	LogoText       string `json:"logo_text" yaml:"logo_text"`
}

// DisplaySettings holds display-highlight defaults for the renderers.
type DisplaySettings struct {
	HighlightYears        []int `json:"highlight_years" yaml:"highlight_years"`
	HighlightAges         []int `json:"highlight_ages" yaml:"highlight_ages"`
	IRRDecimalPlaces      int   `json:"irr_decimal_places" yaml:"irr_decimal_places"`
	CurrencyDecimalPlaces int   `json:"currency_decimal_places" yaml:"currency_decimal_places"`
}

// Illustration is the complete normalized record set for one document.
type Illustration struct {
	PolicyInfo     Info               `json:"policy_info"`
	Brand          Brand              `json:"brand"`
	Display        DisplaySettings    `json:"display_settings"`
	YearlyData     []YearlyRecord     `json:"yearly_data"`
	WithdrawalData []WithdrawalRecord `json:"withdrawal_data,omitempty"`
}

// JSON renders the illustration with the exact field names and nesting the
// downstream validation stage expects.
func (ill *Illustration) JSON() ([]byte, error) {
	data, err := sonic.MarshalIndent(ill, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding illustration: %w", err)
	}
	return data, nil
}

// Load reads a previously produced record set back from disk.
func Load(path string) (*Illustration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy data: %w", err)
	}
	var ill Illustration
	if err := sonic.Unmarshal(data, &ill); err != nil {
		return nil, fmt.Errorf("parsing policy data: %w", err)
	}
	return &ill, nil
}
