package illustra

import "github.com/tsawler/illustra/policy"

// ExtractOptions holds configuration for an extraction run.
type ExtractOptions struct {
	// catalog drives product/currency recognition and supplies the brand
	// and display defaults emitted with the output.
	catalog policy.Catalog

	// infoRowLimit is the maximum row count for a first-page table to be
	// treated as a policy-info table rather than a data series.
	infoRowLimit int

	// minHeuristicRows is the minimum row count for an unclassified table
	// to be retained as a heuristic-classification candidate.
	minHeuristicRows int
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		catalog:          policy.DefaultCatalog(),
		infoRowLimit:     3,
		minHeuristicRows: 4,
	}
}

// clone creates a copy of ExtractOptions. The catalog is copied by value
// and treated as read-only, so sharing its backing slices is safe.
func (o ExtractOptions) clone() ExtractOptions {
	return ExtractOptions{
		catalog:          o.catalog,
		infoRowLimit:     o.infoRowLimit,
		minHeuristicRows: o.minHeuristicRows,
	}
}
