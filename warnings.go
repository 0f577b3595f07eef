package illustra

import "strings"

// Warning describes a non-fatal condition encountered during extraction:
// an ambiguous detection, a fallback that fired, or a verification
// mismatch. Warnings accumulate in document order and never abort a run; a
// run that produced no records still returns normally with warnings
// explaining why.
type Warning struct {
	// Stage names the pipeline stage that raised the warning.
	Stage string

	// Message is the human-readable diagnostic.
	Message string
}

// String returns the warning as "stage: message".
func (w Warning) String() string {
	if w.Stage == "" {
		return w.Message
	}
	return w.Stage + ": " + w.Message
}

// FormatWarnings renders warnings one per line, for logging.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// WarningStrings returns the warnings as plain strings in the order they
// were raised, for callers that serialize them alongside the record set.
func WarningStrings(warnings []Warning) []string {
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.String()
	}
	return out
}
