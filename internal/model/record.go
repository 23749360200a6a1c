package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Location is an optional geographic point attached to a record.
type Location struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Base holds the fields every record variant shares.
type Base struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt string    `json:"createdAt" yaml:"createdAt"`
	UpdatedAt string    `json:"updatedAt" yaml:"updatedAt"`
	Location  *Location `json:"location,omitempty" yaml:"location,omitempty"`
}

// Meta returns the shared fields. It lets *Contact, *Task, etc. satisfy
// Record through embedding.
func (b *Base) Meta() *Base { return b }

// Record is one CRM entity. The concrete type is one of *Contact,
// *Opportunity, *Organization or *Task.
type Record interface {
	Meta() *Base
	Table() TableType
	// Field returns the named field's value. ok is false when the field is
	// not defined for this variant or, for location, not set.
	Field(name string) (v Value, ok bool)
	// FieldNames lists the variant's fields in display order.
	FieldNames() []string
	// SetField parses raw into the named field.
	SetField(name, raw string) error
	GetName() string
	SetName(name string)
	Clone() Record
}

// Contact is a person record.
type Contact struct {
	Base         `yaml:",inline"`
	Name         string        `json:"name" yaml:"name"`
	Email        string        `json:"email" yaml:"email"`
	Phone        string        `json:"phone" yaml:"phone"`
	Organization string        `json:"organization" yaml:"organization"`
	Role         string        `json:"role" yaml:"role"`
	Status       ContactStatus `json:"status" yaml:"status"`
}

// Opportunity is a deal in the sales pipeline.
type Opportunity struct {
	Base       `yaml:",inline"`
	Name       string           `json:"name" yaml:"name"`
	Value      float64          `json:"value" yaml:"value"`
	Stage      OpportunityStage `json:"stage" yaml:"stage"`
	CloseDate  string           `json:"closeDate" yaml:"closeDate"`
	AssignedTo string           `json:"assignedTo" yaml:"assignedTo"`
}

// Organization is a company record.
type Organization struct {
	Base          `yaml:",inline"`
	Name          string             `json:"name" yaml:"name"`
	Industry      string             `json:"industry" yaml:"industry"`
	ContactPerson string             `json:"contactPerson" yaml:"contactPerson"`
	Phone         string             `json:"phone" yaml:"phone"`
	Status        OrganizationStatus `json:"status" yaml:"status"`
}

// Task is a to-do item.
type Task struct {
	Base       `yaml:",inline"`
	Name       string       `json:"name" yaml:"name"`
	DueDate    string       `json:"dueDate" yaml:"dueDate"`
	Priority   TaskPriority `json:"priority" yaml:"priority"`
	AssignedTo string       `json:"assignedTo" yaml:"assignedTo"`
	Status     TaskStatus   `json:"status" yaml:"status"`
}

func (*Contact) Table() TableType      { return Contacts }
func (*Opportunity) Table() TableType  { return Opportunities }
func (*Organization) Table() TableType { return Organizations }
func (*Task) Table() TableType         { return Tasks }

func (c *Contact) GetName() string      { return c.Name }
func (o *Opportunity) GetName() string  { return o.Name }
func (o *Organization) GetName() string { return o.Name }
func (t *Task) GetName() string         { return t.Name }

func (c *Contact) SetName(name string)      { c.Name = name }
func (o *Opportunity) SetName(name string)  { o.Name = name }
func (o *Organization) SetName(name string) { o.Name = name }
func (t *Task) SetName(name string)         { t.Name = name }

func (c *Contact) Clone() Record {
	cp := *c
	cp.Location = cloneLocation(c.Location)
	return &cp
}

func (o *Opportunity) Clone() Record {
	cp := *o
	cp.Location = cloneLocation(o.Location)
	return &cp
}

func (o *Organization) Clone() Record {
	cp := *o
	cp.Location = cloneLocation(o.Location)
	return &cp
}

func (t *Task) Clone() Record {
	cp := *t
	cp.Location = cloneLocation(t.Location)
	return &cp
}

func cloneLocation(l *Location) *Location {
	if l == nil {
		return nil
	}
	cp := *l
	return &cp
}

// NewRecord returns an empty record of the given concrete table type.
func NewRecord(t TableType) (Record, error) {
	switch t {
	case Contacts:
		return &Contact{}, nil
	case Opportunities:
		return &Opportunity{}, nil
	case Organizations:
		return &Organization{}, nil
	case Tasks:
		return &Task{}, nil
	}
	return nil, fmt.Errorf("%w: %q is not a record table", ErrUnknownTableType, t)
}

// MarshalJSON adds the tableType discriminator.
func (c *Contact) MarshalJSON() ([]byte, error) {
	type alias Contact
	return json.Marshal(struct {
		TableType TableType `json:"tableType"`
		*alias
	}{Contacts, (*alias)(c)})
}

// MarshalJSON adds the tableType discriminator.
func (o *Opportunity) MarshalJSON() ([]byte, error) {
	type alias Opportunity
	return json.Marshal(struct {
		TableType TableType `json:"tableType"`
		*alias
	}{Opportunities, (*alias)(o)})
}

// MarshalJSON adds the tableType discriminator.
func (o *Organization) MarshalJSON() ([]byte, error) {
	type alias Organization
	return json.Marshal(struct {
		TableType TableType `json:"tableType"`
		*alias
	}{Organizations, (*alias)(o)})
}

// MarshalJSON adds the tableType discriminator.
func (t *Task) MarshalJSON() ([]byte, error) {
	type alias Task
	return json.Marshal(struct {
		TableType TableType `json:"tableType"`
		*alias
	}{Tasks, (*alias)(t)})
}

// DecodeRecord decodes one JSON record, choosing the variant from its
// tableType field.
func DecodeRecord(data []byte) (Record, error) {
	var head struct {
		TableType string `json:"tableType"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	t, err := ParseTableType(head.TableType)
	if err != nil {
		return nil, err
	}
	rec, err := NewRecord(t)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", t.Singular(), err)
	}
	return rec, nil
}

// Field and SetField dispatch through the per-variant accessor tables in
// fields.go.

func (c *Contact) Field(name string) (Value, bool)      { return lookup(c, &c.Base, Contacts, contactFields, name) }
func (o *Opportunity) Field(name string) (Value, bool)  { return lookup(o, &o.Base, Opportunities, opportunityFields, name) }
func (o *Organization) Field(name string) (Value, bool) { return lookup(o, &o.Base, Organizations, organizationFields, name) }
func (t *Task) Field(name string) (Value, bool)         { return lookup(t, &t.Base, Tasks, taskFields, name) }

func (c *Contact) FieldNames() []string      { return contactFields.names }
func (o *Opportunity) FieldNames() []string  { return opportunityFields.names }
func (o *Organization) FieldNames() []string { return organizationFields.names }
func (t *Task) FieldNames() []string         { return taskFields.names }

func (c *Contact) SetField(name, raw string) error      { return assign(c, &c.Base, contactFields, name, raw) }
func (o *Opportunity) SetField(name, raw string) error  { return assign(o, &o.Base, opportunityFields, name, raw) }
func (o *Organization) SetField(name, raw string) error { return assign(o, &o.Base, organizationFields, name, raw) }
func (t *Task) SetField(name, raw string) error         { return assign(t, &t.Base, taskFields, name, raw) }

// parseLocation reads "lat,lng".
func parseLocation(raw string) (*Location, error) {
	latStr, lngStr, ok := strings.Cut(raw, ",")
	if !ok {
		return nil, fmt.Errorf("%w: location must be \"lat,lng\", got %q", ErrInvalidValue, raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("%w: latitude %q", ErrInvalidValue, latStr)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("%w: longitude %q", ErrInvalidValue, lngStr)
	}
	return &Location{Lat: lat, Lng: lng}, nil
}
