package query

import "github.com/user/gridlex/internal/model"

// Options configures one pipeline run.
type Options struct {
	// Search is a case-insensitive substring matched against text fields.
	Search string
	// Filters narrow the result in order (ANDed together).
	Filters []Filter
	// SortField names the field to sort by (empty = keep input order).
	SortField string
	// SortOrder is Asc unless set to Desc.
	SortOrder SortOrder
}

// Run applies search, then filters, then sort, and returns the working set.
// It never mutates records or reorders the input slice.
func Run(records []model.Record, opts Options) []model.Record {
	result := Search(records, opts.Search)
	result = Apply(result, opts.Filters)
	return Sort(result, opts.SortField, opts.SortOrder)
}

// IDs returns the ids of records in order.
func IDs(records []model.Record) []string {
	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.Meta().ID
	}
	return ids
}
