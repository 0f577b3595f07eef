// Package glyph decodes the glyph-index text encoding found in certain
// insurance-illustration PDFs and normalizes numeric-looking text.
//
// Some illustrations embed subset fonts without a usable ToUnicode map, so
// extracted text surfaces as escape sequences of the form "(cid:NN)" rather
// than readable characters. In these documents the glyph index maps to ASCII
// by a fixed offset (index + 29). DecodeCID reverses that mapping and leaves
// ordinary text untouched, so it is safe to apply to every extracted string.
//
// The package also provides CleanNumeric, which turns the noisy numeric
// strings found in illustration tables (thousands separators, currency
// symbols, dash placeholders) into float values without ever failing.
package glyph
