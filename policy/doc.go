// Package policy defines the normalized record set produced by an
// extraction run: the scalar policy attributes, the year-by-year projection
// series, the optional withdrawal schedule, and the product/currency
// catalog used to recognize them.
//
// The JSON field names on these types are a contract with the downstream
// calculation and reporting stages and must not change.
//
// The package also carries the cross-field validator those consumers use.
// The extraction core itself only asserts values as extracted; deciding
// whether a mismatch matters is the caller's job.
package policy
