// Package table classifies and reshapes the raw tables found in an
// insurance-illustration document.
//
// An illustration carries up to three numeric series — the surrender-value
// projection, the death-benefit projection and an optional withdrawal
// scenario — scattered across pages with no fixed position, column count or
// header depth, and nothing on the page declares which table is which.
// Classification therefore works from weak signals, in tiers: exact
// label/column-count combinations first, then bilingual keyword scoring,
// then a relaxed single-keyword pass. Tables that defeat all three tiers can
// still be classified by HeuristicClassify, which looks at the shape and
// numeric content of the expanded data instead of the headers.
//
// The package also handles the two layout quirks these documents share:
// several policy years packed into one physical row with line breaks inside
// each cell (Expand), and header labels that wander between columns across
// product revisions (DetectSurrenderColumns / DetectWithdrawalColumns).
package table
