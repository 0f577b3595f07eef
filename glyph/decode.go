package glyph

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// asciiOffset is the distance between a glyph index and its ASCII code
// point in the subset fonts these documents embed.
const asciiOffset = 29

var cidPattern = regexp.MustCompile(`\(cid:(\d+)\)`)

// DecodeCID replaces each "(cid:N)" escape in text with the character at
// code point N+29. Escapes that land outside printable ASCII (32..126) are
// dropped entirely. Text containing no escapes is returned unchanged, which
// handles documents that already use native text encoding.
func DecodeCID(text string) string {
	if text == "" {
		return ""
	}
	// Fast path: no glyph-index encoding present.
	if !strings.Contains(text, "(cid:") {
		return text
	}

	return cidPattern.ReplaceAllStringFunc(text, func(m string) string {
		digits := m[len("(cid:") : len(m)-1]
		n, err := strconv.Atoi(digits)
		if err != nil {
			return ""
		}
		code := n + asciiOffset
		if code < 32 || code > 126 {
			return ""
		}
		return string(rune(code))
	})
}

// Fold converts full-width characters to their half-width equivalents.
// Bilingual headers mix full-width and half-width forms of the same label
// ("（Ａ）" versus "(A)"); folding lets a single keyword set match both.
func Fold(s string) string {
	return width.Narrow.String(s)
}
