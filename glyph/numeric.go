package glyph

import (
	"regexp"
	"strconv"
	"strings"
)

// blankTokens are cell values that mean "no amount" rather than a number
// that failed to parse.
var blankTokens = map[string]bool{
	"":    true,
	"-":   true,
	"—":   true,
	"N/A": true,
	"不适用": true,
}

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// CleanNumeric parses a numeric string as it appears in an illustration
// table, tolerating thousands separators, currency symbols and stray
// characters. Recognized blank tokens and strings with no usable digits
// resolve to 0 rather than an error: a cell that cannot be read contributes
// nothing, it never aborts extraction.
func CleanNumeric(text string) float64 {
	text = strings.TrimSpace(text)
	if blankTokens[text] {
		return 0
	}

	cleaned := strings.ReplaceAll(text, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "HK$", "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = nonNumeric.ReplaceAllString(cleaned, "")
	if cleaned == "" || cleaned == "-" {
		return 0
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// IsDigits reports whether s is a non-empty run of ASCII digits. Table rows
// whose first cell passes this check are data rows keyed by policy year.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
