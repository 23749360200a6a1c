package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the date-only format used for every date field.
const DateLayout = "2006-01-02"

// System fields are present on every record and cannot be set directly.
var systemFields = map[string]bool{
	"id":        true,
	"tableType": true,
	"createdAt": true,
	"updatedAt": true,
}

// IsSystemField returns true if the name is a read-only system field.
func IsSystemField(name string) bool {
	return systemFields[name]
}

// accessor reads and writes one field of a record variant.
type accessor[T any] struct {
	get func(*T) Value
	set func(*T, string) error
}

// fieldTable is the enumerated field map of a record variant, built once.
type fieldTable[T any] struct {
	names  []string
	fields map[string]accessor[T]
}

type namedAccessor[T any] struct {
	name string
	accessor[T]
}

func newFieldTable[T any](entries ...namedAccessor[T]) fieldTable[T] {
	ft := fieldTable[T]{fields: make(map[string]accessor[T], len(entries))}
	for _, e := range entries {
		ft.names = append(ft.names, e.name)
		ft.fields[e.name] = e.accessor
	}
	return ft
}

func textField[T any](name string, ptr func(*T) *string) namedAccessor[T] {
	return namedAccessor[T]{name, accessor[T]{
		get: func(r *T) Value { return Text(*ptr(r)) },
		set: func(r *T, raw string) error {
			*ptr(r) = raw
			return nil
		},
	}}
}

func dateField[T any](name string, ptr func(*T) *string) namedAccessor[T] {
	return namedAccessor[T]{name, accessor[T]{
		get: func(r *T) Value { return Text(*ptr(r)) },
		set: func(r *T, raw string) error {
			raw = strings.TrimSpace(raw)
			if _, err := time.Parse(DateLayout, raw); err != nil {
				return fmt.Errorf("%w: %s must be a yyyy-mm-dd date, got %q", ErrInvalidValue, name, raw)
			}
			*ptr(r) = raw
			return nil
		},
	}}
}

func enumField[T any, E ~string](name string, allowed []string, ptr func(*T) *E) namedAccessor[T] {
	return namedAccessor[T]{name, accessor[T]{
		get: func(r *T) Value { return Text(string(*ptr(r))) },
		set: func(r *T, raw string) error {
			v, err := matchEnum(name, raw, allowed)
			if err != nil {
				return err
			}
			*ptr(r) = E(v)
			return nil
		},
	}}
}

func amountField[T any](name string, ptr func(*T) *float64) namedAccessor[T] {
	return namedAccessor[T]{name, accessor[T]{
		get: func(r *T) Value { return Number(*ptr(r)) },
		set: func(r *T, raw string) error {
			n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil || n < 0 {
				return fmt.Errorf("%w: %s must be a non-negative number, got %q", ErrInvalidValue, name, raw)
			}
			*ptr(r) = n
			return nil
		},
	}}
}

var contactFields = newFieldTable(
	textField("name", func(c *Contact) *string { return &c.Name }),
	textField("email", func(c *Contact) *string { return &c.Email }),
	textField("phone", func(c *Contact) *string { return &c.Phone }),
	textField("organization", func(c *Contact) *string { return &c.Organization }),
	textField("role", func(c *Contact) *string { return &c.Role }),
	enumField("status", ContactStatuses, func(c *Contact) *ContactStatus { return &c.Status }),
)

var opportunityFields = newFieldTable(
	textField("name", func(o *Opportunity) *string { return &o.Name }),
	amountField("value", func(o *Opportunity) *float64 { return &o.Value }),
	enumField("stage", OpportunityStages, func(o *Opportunity) *OpportunityStage { return &o.Stage }),
	dateField("closeDate", func(o *Opportunity) *string { return &o.CloseDate }),
	textField("assignedTo", func(o *Opportunity) *string { return &o.AssignedTo }),
)

var organizationFields = newFieldTable(
	textField("name", func(o *Organization) *string { return &o.Name }),
	textField("industry", func(o *Organization) *string { return &o.Industry }),
	textField("contactPerson", func(o *Organization) *string { return &o.ContactPerson }),
	textField("phone", func(o *Organization) *string { return &o.Phone }),
	enumField("status", OrganizationStatuses, func(o *Organization) *OrganizationStatus { return &o.Status }),
)

var taskFields = newFieldTable(
	textField("name", func(t *Task) *string { return &t.Name }),
	dateField("dueDate", func(t *Task) *string { return &t.DueDate }),
	enumField("priority", TaskPriorities, func(t *Task) *TaskPriority { return &t.Priority }),
	textField("assignedTo", func(t *Task) *string { return &t.AssignedTo }),
	enumField("status", TaskStatuses, func(t *Task) *TaskStatus { return &t.Status }),
)

func lookup[T any](r *T, b *Base, t TableType, ft fieldTable[T], name string) (Value, bool) {
	switch name {
	case "id":
		return Text(b.ID), true
	case "tableType":
		return Text(string(t)), true
	case "createdAt":
		return Text(b.CreatedAt), true
	case "updatedAt":
		return Text(b.UpdatedAt), true
	case "location":
		if b.Location == nil {
			return Value{}, false
		}
		return Object(), true
	}
	a, ok := ft.fields[name]
	if !ok {
		return Value{}, false
	}
	return a.get(r), true
}

func assign[T any](r *T, b *Base, ft fieldTable[T], name, raw string) error {
	if IsSystemField(name) {
		return fmt.Errorf("%w: %s", ErrReadOnlyField, name)
	}
	if name == "location" {
		if strings.TrimSpace(raw) == "" {
			b.Location = nil
			return nil
		}
		loc, err := parseLocation(raw)
		if err != nil {
			return err
		}
		b.Location = loc
		return nil
	}
	a, ok := ft.fields[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return a.set(r, raw)
}

// FieldNames returns the variant fields of a record table. For Unified it
// returns the union across all tables in collection order.
func FieldNames(t TableType) []string {
	switch t {
	case Contacts:
		return contactFields.names
	case Opportunities:
		return opportunityFields.names
	case Organizations:
		return organizationFields.names
	case Tasks:
		return taskFields.names
	case Unified:
		seen := make(map[string]bool)
		var names []string
		for _, rt := range RecordTables {
			for _, n := range FieldNames(rt) {
				if !seen[n] {
					seen[n] = true
					names = append(names, n)
				}
			}
		}
		return names
	}
	return nil
}

// Columns returns the default display columns of a table: the id, the
// variant fields, then the timestamps. Unified views also show tableType.
func Columns(t TableType) []string {
	cols := []string{"id"}
	if t == Unified {
		cols = append(cols, "tableType")
	}
	cols = append(cols, FieldNames(t)...)
	return append(cols, "createdAt", "updatedAt")
}
