package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleContact() *Contact {
	return &Contact{
		Base: Base{
			ID:        "con-1",
			CreatedAt: "2024-01-10",
			UpdatedAt: "2024-02-01",
			Location:  &Location{Lat: 40.7128, Lng: -74.006},
		},
		Name:         "Ada Lovelace",
		Email:        "ada@acme.io",
		Phone:        "555-0100",
		Organization: "Acme Co",
		Role:         "CTO",
		Status:       ContactActive,
	}
}

func TestRecordField(t *testing.T) {
	c := sampleContact()

	t.Run("variant fields are text", func(t *testing.T) {
		v, ok := c.Field("email")
		require.True(t, ok)
		assert.Equal(t, "ada@acme.io", v.String())
	})

	t.Run("system fields resolve", func(t *testing.T) {
		v, ok := c.Field("tableType")
		require.True(t, ok)
		assert.Equal(t, "contacts", v.String())

		v, ok = c.Field("createdAt")
		require.True(t, ok)
		assert.Equal(t, "2024-01-10", v.String())
	})

	t.Run("fields of other variants are absent", func(t *testing.T) {
		_, ok := c.Field("stage")
		assert.False(t, ok)
	})

	t.Run("field names are case-sensitive", func(t *testing.T) {
		_, ok := c.Field("Email")
		assert.False(t, ok)
	})

	t.Run("location is an object when set and absent otherwise", func(t *testing.T) {
		v, ok := c.Field("location")
		require.True(t, ok)
		assert.Equal(t, KindObject, v.Kind())

		task := &Task{}
		_, ok = task.Field("location")
		assert.False(t, ok)
	})

	t.Run("opportunity value is numeric", func(t *testing.T) {
		o := &Opportunity{Name: "Deal", Value: 50}
		v, ok := o.Field("value")
		require.True(t, ok)
		assert.Equal(t, KindNumber, v.Kind())
		assert.Equal(t, "50", v.String())
	})
}

func TestRecordSetField(t *testing.T) {
	t.Run("sets text fields", func(t *testing.T) {
		c := sampleContact()
		require.NoError(t, c.SetField("role", "CEO"))
		assert.Equal(t, "CEO", c.Role)
	})

	t.Run("normalizes enum spelling", func(t *testing.T) {
		task := &Task{}
		require.NoError(t, task.SetField("status", "in progress"))
		assert.Equal(t, TaskInProgress, task.Status)
	})

	t.Run("rejects enum values outside the set", func(t *testing.T) {
		o := &Opportunity{}
		assert.ErrorIs(t, o.SetField("stage", "Won"), ErrInvalidValue)
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		o := &Opportunity{}
		assert.ErrorIs(t, o.SetField("value", "-5"), ErrInvalidValue)
		require.NoError(t, o.SetField("value", "1250.5"))
		assert.Equal(t, 1250.5, o.Value)
	})

	t.Run("validates dates", func(t *testing.T) {
		task := &Task{}
		assert.ErrorIs(t, task.SetField("dueDate", "next week"), ErrInvalidValue)
		require.NoError(t, task.SetField("dueDate", "2024-03-01"))
		assert.Equal(t, "2024-03-01", task.DueDate)
	})

	t.Run("system fields are read-only", func(t *testing.T) {
		c := sampleContact()
		assert.ErrorIs(t, c.SetField("id", "x"), ErrReadOnlyField)
		assert.ErrorIs(t, c.SetField("createdAt", "2020-01-01"), ErrReadOnlyField)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		c := sampleContact()
		assert.ErrorIs(t, c.SetField("stage", "Lead"), ErrUnknownField)
	})

	t.Run("location parses and clears", func(t *testing.T) {
		org := &Organization{}
		require.NoError(t, org.SetField("location", "51.5, -0.12"))
		require.NotNil(t, org.Location)
		assert.Equal(t, 51.5, org.Location.Lat)

		require.NoError(t, org.SetField("location", ""))
		assert.Nil(t, org.Location)

		assert.ErrorIs(t, org.SetField("location", "200,0"), ErrInvalidValue)
	})
}

func TestRecordClone(t *testing.T) {
	c := sampleContact()
	cp := c.Clone().(*Contact)

	cp.Name = "Changed"
	cp.Location.Lat = 0

	assert.Equal(t, "Ada Lovelace", c.Name)
	assert.Equal(t, 40.7128, c.Location.Lat)
}

func TestRecordJSON(t *testing.T) {
	t.Run("marshal includes tableType and camelCase fields", func(t *testing.T) {
		data, err := json.Marshal(sampleContact())
		require.NoError(t, err)

		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &m))
		assert.Equal(t, "contacts", m["tableType"])
		assert.Equal(t, "con-1", m["id"])
		assert.Equal(t, "Acme Co", m["organization"])
		assert.Equal(t, "2024-01-10", m["createdAt"])
		assert.Contains(t, m, "location")
	})

	t.Run("decode picks the variant from tableType", func(t *testing.T) {
		data := []byte(`{"tableType":"opportunities","id":"op-1","name":"Deal","value":50,"stage":"Lead","closeDate":"2024-05-01","assignedTo":"Sam","createdAt":"2024-01-01","updatedAt":"2024-01-01"}`)
		rec, err := DecodeRecord(data)
		require.NoError(t, err)

		opp, ok := rec.(*Opportunity)
		require.True(t, ok)
		assert.Equal(t, "op-1", opp.ID)
		assert.Equal(t, 50.0, opp.Value)
		assert.Equal(t, StageLead, opp.Stage)
	})

	t.Run("round trip preserves the record", func(t *testing.T) {
		orig := sampleContact()
		data, err := json.Marshal(orig)
		require.NoError(t, err)

		rec, err := DecodeRecord(data)
		require.NoError(t, err)
		assert.Equal(t, orig, rec)
	})

	t.Run("decode rejects unknown table types", func(t *testing.T) {
		_, err := DecodeRecord([]byte(`{"tableType":"leads"}`))
		assert.ErrorIs(t, err, ErrUnknownTableType)
	})
}

func TestColumns(t *testing.T) {
	t.Run("table columns wrap variant fields with id and timestamps", func(t *testing.T) {
		assert.Equal(t,
			[]string{"id", "name", "dueDate", "priority", "assignedTo", "status", "createdAt", "updatedAt"},
			Columns(Tasks))
	})

	t.Run("unified columns include tableType and each field once", func(t *testing.T) {
		cols := Columns(Unified)
		assert.Equal(t, "tableType", cols[1])

		seen := map[string]int{}
		for _, c := range cols {
			seen[c]++
		}
		assert.Equal(t, 1, seen["name"])
		assert.Equal(t, 1, seen["status"])
		assert.Contains(t, cols, "stage")
		assert.Contains(t, cols, "industry")
	})
}
