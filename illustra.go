// Package illustra extracts normalized policy data from insurance
// illustration PDFs: the scalar policy attributes, the year-by-year
// surrender-value and death-benefit projection, and the optional withdrawal
// schedule.
//
// Basic usage:
//
//	ill, warnings, err := illustra.Open("illustration.pdf").Extract()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", illustra.FormatWarnings(warnings))
//	}
//
// With options:
//
//	ill, _, err := illustra.Open("illustration.pdf").
//	    CatalogFile("catalog.yaml").
//	    Extract()
//
// Illustrations follow no fixed layout contract: header depth, column
// counts and label language vary by product and revision, and some
// documents encode text as glyph indices instead of characters. The
// pipeline infers structure from weak signals and degrades to heuristic and
// positional fallbacks instead of failing; everything it had to guess is
// reported as a warning. The only fatal condition is a document that cannot
// be opened or read at all.
package illustra

import (
	"github.com/tsawler/illustra/policy"
	"github.com/tsawler/tabula/reader"
)

// Open prepares an Extractor for the given PDF file. The underlying
// document is not opened until a terminal operation runs, and is always
// released before that operation returns.
//
// Example:
//
//	ill, warnings, err := illustra.Open("illustration.pdf").Extract()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates an Extractor from an already-opened PDF reader. The
// caller remains responsible for closing the reader.
//
// Example:
//
//	r, err := reader.Open("illustration.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	ill, warnings, err := illustra.FromReader(r).Extract()
func FromReader(r *reader.Reader) *Extractor {
	return &Extractor{
		reader:       r,
		ownsReader:   false,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// Must wraps a call to Extract() and panics if the error is non-nil,
// discarding warnings. It is intended for scripts and tests where error
// handling would be cumbersome.
//
// Example:
//
//	ill := illustra.Must(illustra.Open("illustration.pdf").Extract())
func Must(ill *policy.Illustration, _ []Warning, err error) *policy.Illustration {
	if err != nil {
		panic(err)
	}
	return ill
}
