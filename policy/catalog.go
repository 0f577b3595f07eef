package policy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Product pairs the literal phrases that identify a product on the first
// page with its canonical local and translated names.
type Product struct {
	Match  []string `yaml:"match"`
	Name   string   `yaml:"name"`
	NameEN string   `yaml:"name_en"`
}

// Currency pairs recognition phrases with a currency code and symbol.
type Currency struct {
	Code   string   `yaml:"code"`
	Symbol string   `yaml:"symbol"`
	Match  []string `yaml:"match"`
}

// Catalog holds everything extraction needs to recognize a product line:
// the known products and currencies, plus the branding and display defaults
// that accompany the output for the report renderers. Catalogs are treated
// as read-only once constructed.
type Catalog struct {
	Insurer    string          `yaml:"insurer"`
	Products   []Product       `yaml:"products"`
	Currencies []Currency      `yaml:"currencies"`
	Brand      Brand           `yaml:"brand"`
	Display    DisplaySettings `yaml:"display"`
}

// DefaultCatalog returns the built-in AIA catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		Insurer: "AIA",
		Products: []Product{
			{
				Match:  []string{"环宇盈活", "環宇盈活"},
				Name:   "环宇盈活储蓄保险计划",
				NameEN: "AIA Vision Life Savings Plan",
			},
			{
				Match:  []string{"活享储蓄", "活享儲蓄"},
				Name:   "活享储蓄保险计划",
				NameEN: "AIA Flexi Savings Plan",
			},
			{
				Match:  []string{"爱伴航", "愛伴航"},
				Name:   "爱伴航保险计划",
				NameEN: "AIA Love Navigator Plan",
			},
		},
		Currencies: []Currency{
			{Code: "USD", Symbol: "$", Match: []string{"USD", "美元"}},
			{Code: "HKD", Symbol: "HK$", Match: []string{"HKD", "港元", "港幣"}},
			{Code: "RMB", Symbol: "¥", Match: []string{"RMB", "CNY", "人民币"}},
		},
		Brand: Brand{
			PrimaryColor:   "#C8102E",
			SecondaryColor: "#FFFFFF",
			AccentColor:    "#1A1A1A",
			LogoText:       "AIA",
		},
		Display: DisplaySettings{
			HighlightYears:        []int{5, 10, 15, 20, 25, 30},
			HighlightAges:         []int{65, 70, 75, 80, 85, 90, 95, 100},
			IRRDecimalPlaces:      2,
			CurrencyDecimalPlaces: 0,
		},
	}
}

// LoadCatalog reads a catalog from a YAML file. Fields absent from the file
// keep their built-in defaults, so a deployment only lists what differs.
func LoadCatalog(path string) (Catalog, error) {
	c := DefaultCatalog()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("reading catalog: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parsing catalog: %w", err)
	}
	return c, nil
}

// MatchProduct returns the first product whose recognition phrases appear
// in text, or nil when none match.
func (c Catalog) MatchProduct(text string) *Product {
	for i := range c.Products {
		for _, m := range c.Products[i].Match {
			if m != "" && strings.Contains(text, m) {
				return &c.Products[i]
			}
		}
	}
	return nil
}

// MatchCurrency returns the first currency whose recognition phrases appear
// in text, or nil when none match.
func (c Catalog) MatchCurrency(text string) *Currency {
	for i := range c.Currencies {
		for _, m := range c.Currencies[i].Match {
			if m != "" && strings.Contains(text, m) {
				return &c.Currencies[i]
			}
		}
	}
	return nil
}
