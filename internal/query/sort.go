package query

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/user/gridlex/internal/model"
)

// SortOrder is the direction of the single-key sort.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// ParseSortOrder resolves "asc" or "desc"; empty input means ascending.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Asc, nil
	case "desc", "descending":
		return Desc, nil
	}
	return "", fmt.Errorf("invalid sort order %q (expected asc or desc)", s)
}

// Sort returns records stably ordered by the locale collation of the
// stringified field. When either record of a pair lacks the field the pair
// compares equal, so mixed collections may not come out totally ordered.
func Sort(records []model.Record, field string, order SortOrder) []model.Record {
	result := append([]model.Record(nil), records...)
	if field == "" {
		return result
	}

	// Collators keep internal buffers; one per call
	col := collate.New(language.Und)
	slices.SortStableFunc(result, func(a, b model.Record) int {
		av, aok := a.Field(field)
		bv, bok := b.Field(field)
		if !aok || !bok {
			return 0
		}
		cmp := col.CompareString(av.String(), bv.String())
		if order == Desc {
			return -cmp
		}
		return cmp
	})
	return result
}
