// Package query implements the record query pipeline: free-text search,
// field filters and a single-key sort over any record collection.
package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/user/gridlex/internal/model"
)

// Operator is a filter comparison.
type Operator string

const (
	Equals      Operator = "equals"
	Contains    Operator = "contains"
	GreaterThan Operator = "gt"
	LessThan    Operator = "lt"
	// Between is accepted everywhere a filter is, but never narrows the
	// result: no range semantics are defined for it.
	Between Operator = "between"
)

// Operators lists every declared operator.
var Operators = []Operator{Equals, Contains, GreaterThan, LessThan, Between}

// ParseOperator resolves an operator name case-insensitively.
func ParseOperator(s string) (Operator, error) {
	for _, op := range Operators {
		if strings.EqualFold(strings.TrimSpace(s), string(op)) {
			return op, nil
		}
	}
	return "", fmt.Errorf("%w: %q", model.ErrUnknownOperator, s)
}

// Filter is a single field/operator/value predicate.
type Filter struct {
	Field    string      `json:"field" yaml:"field"`
	Operator Operator    `json:"operator" yaml:"operator"`
	Value    model.Value `json:"value" yaml:"value"`
}

// String renders the filter in the word form accepted by ParseFilter.
func (f Filter) String() string {
	return fmt.Sprintf("%s %s %s", f.Field, f.Operator, f.Value.String())
}

// Match reports whether rec satisfies the filter. A record without the
// field always matches, and so does any operator without an evaluation
// rule.
func (f Filter) Match(rec model.Record) bool {
	fieldValue, ok := rec.Field(f.Field)
	if !ok {
		return true
	}

	switch f.Operator {
	case Equals:
		return strings.ToLower(fieldValue.String()) == strings.ToLower(f.Value.String())
	case Contains:
		return strings.Contains(strings.ToLower(fieldValue.String()), strings.ToLower(f.Value.String()))
	case GreaterThan:
		// NaN on either side compares false
		return fieldValue.Number() > f.Value.Number()
	case LessThan:
		return fieldValue.Number() < f.Value.Number()
	default:
		return true
	}
}

// Apply narrows records by each filter in order.
func Apply(records []model.Record, filters []Filter) []model.Record {
	result := append([]model.Record(nil), records...)
	for _, f := range filters {
		narrowed := make([]model.Record, 0, len(result))
		for _, rec := range result {
			if f.Match(rec) {
				narrowed = append(narrowed, rec)
			}
		}
		result = narrowed
	}
	return result
}

var wordFilterRegex = regexp.MustCompile(`(?i)^(\S+)\s+(equals|contains|gt|lt|between)\s+(.*)$`)

// ParseFilter parses a filter clause. Supported formats:
//   - field=value, field~value, field>value, field<value
//   - field equals|contains|gt|lt|between value
//
// The value is kept as text; comparisons coerce it as needed.
func ParseFilter(clause string) (Filter, error) {
	clause = strings.TrimSpace(clause)

	// A symbol in the first word means the symbol form.
	if matches := wordFilterRegex.FindStringSubmatch(clause); len(matches) == 4 && !strings.ContainsAny(matches[1], "~><=") {
		op, err := ParseOperator(matches[2])
		if err != nil {
			return Filter{}, err
		}
		return Filter{
			Field:    matches[1],
			Operator: op,
			Value:    model.Text(stripQuotes(matches[3])),
		}, nil
	}

	symbolOps := map[byte]Operator{
		'~': Contains,
		'>': GreaterThan,
		'<': LessThan,
		'=': Equals,
	}
	// The first operator symbol splits field from value
	if idx := strings.IndexAny(clause, "~><="); idx > 0 {
		return Filter{
			Field:    strings.TrimSpace(clause[:idx]),
			Operator: symbolOps[clause[idx]],
			Value:    model.Text(stripQuotes(clause[idx+1:])),
		}, nil
	}

	return Filter{}, fmt.Errorf("invalid filter: %s (expected field=value, field~value, field>value, field<value, or \"field <operator> value\")", clause)
}

// stripQuotes removes surrounding quotes from a string.
func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
