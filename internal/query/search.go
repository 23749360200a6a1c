package query

import (
	"strings"

	"github.com/user/gridlex/internal/model"
)

// searchFields returns every field of rec that free-text search inspects.
func searchFields(rec model.Record) []string {
	fields := []string{"id", "tableType"}
	fields = append(fields, rec.FieldNames()...)
	return append(fields, "createdAt", "updatedAt")
}

// MatchesSearch reports whether any text field of rec contains q,
// case-insensitively. Numeric and structured fields are ignored.
func MatchesSearch(rec model.Record, q string) bool {
	needle := strings.ToLower(q)
	for _, name := range searchFields(rec) {
		v, ok := rec.Field(name)
		if !ok || !v.IsText() {
			continue
		}
		if strings.Contains(strings.ToLower(v.String()), needle) {
			return true
		}
	}
	return false
}

// Search keeps records matching q. An empty query keeps everything.
func Search(records []model.Record, q string) []model.Record {
	if q == "" {
		return append([]model.Record(nil), records...)
	}
	result := make([]model.Record, 0, len(records))
	for _, rec := range records {
		if MatchesSearch(rec, q) {
			result = append(result, rec)
		}
	}
	return result
}
