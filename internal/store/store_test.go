package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/gridlex/internal/model"
)

var fixedNow = time.Date(2024, 5, 17, 15, 4, 5, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}
}

func seed() model.Dataset {
	return model.Dataset{
		model.Contacts: {
			&model.Contact{Base: model.Base{ID: "c1", CreatedAt: "2024-01-01", UpdatedAt: "2024-01-02"}, Name: "Ann", Status: model.ContactActive},
			&model.Contact{Base: model.Base{ID: "c2", CreatedAt: "2024-01-01", UpdatedAt: "2024-01-01"}, Name: "Bob", Status: model.ContactPending},
		},
		model.Opportunities: {
			&model.Opportunity{Base: model.Base{ID: "o1", CreatedAt: "2024-02-01", UpdatedAt: "2024-02-01"}, Name: "Deal", Value: 10, Stage: model.StageLead},
		},
		model.Tasks: {
			&model.Task{Base: model.Base{ID: "t1", CreatedAt: "2024-03-01", UpdatedAt: "2024-03-01"}, Name: "Call", Status: model.TaskPending},
		},
	}
}

func newTestStore() *Store {
	return New(seed(), WithClock(func() time.Time { return fixedNow }), WithIDGenerator(sequentialIDs()))
}

func ids(recs []model.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Meta().ID
	}
	return out
}

func TestCreateRecord(t *testing.T) {
	s := newTestStore()

	rec, err := s.CreateRecord(&model.Task{Name: "Write report", Status: model.TaskPending, Priority: model.PriorityHigh})
	require.NoError(t, err)

	meta := rec.Meta()
	assert.Equal(t, "new-1", meta.ID)
	assert.Equal(t, "2024-05-17", meta.CreatedAt)
	assert.Equal(t, meta.CreatedAt, meta.UpdatedAt)

	got, ok := s.GetRecordByID("new-1")
	require.True(t, ok)
	assert.Equal(t, "Write report", got.GetName())

	if diff := cmp.Diff([]string{"t1", "new-1"}, ids(s.RecordsForTable(model.Tasks))); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateRecordDefaultID(t *testing.T) {
	s := New(nil)
	rec, err := s.CreateRecord(&model.Contact{Name: "Zed"})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.Meta().ID)
	assert.Equal(t, model.Today(time.Now()), rec.Meta().CreatedAt)
}

func TestUpdateRecord(t *testing.T) {
	t.Run("replaces in place", func(t *testing.T) {
		s := newTestStore()
		rec, ok := s.GetRecordByID("c1")
		require.True(t, ok)
		require.NoError(t, rec.SetField("email", "ann@example.com"))

		updated, err := s.UpdateRecord(rec)
		require.NoError(t, err)
		assert.Equal(t, "2024-01-01", updated.Meta().CreatedAt)
		assert.Equal(t, "2024-05-17", updated.Meta().UpdatedAt)

		assert.Equal(t, []string{"c1", "c2"}, ids(s.RecordsForTable(model.Contacts)))
		got, _ := s.GetRecordByID("c1")
		v, _ := got.Field("email")
		assert.Equal(t, "ann@example.com", v.String())
	})

	t.Run("missing createdAt keeps stored", func(t *testing.T) {
		s := newTestStore()
		updated, err := s.UpdateRecord(&model.Contact{Base: model.Base{ID: "c2"}, Name: "Robert"})
		require.NoError(t, err)
		assert.Equal(t, "2024-01-01", updated.Meta().CreatedAt)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		s := newTestStore()
		before := s.snapshot()
		_, err := s.UpdateRecord(&model.Contact{Base: model.Base{ID: "nope"}, Name: "Ghost"})
		assert.ErrorIs(t, err, model.ErrRecordNotFound)
		assert.Equal(t, before, s.snapshot())
	})

	t.Run("id of another table is not found", func(t *testing.T) {
		s := newTestStore()
		_, err := s.UpdateRecord(&model.Task{Base: model.Base{ID: "c1"}})
		assert.ErrorIs(t, err, model.ErrRecordNotFound)
	})
}

func TestDeleteRecords(t *testing.T) {
	s := newTestStore()
	s.Select("c1", "o1")

	removed := s.DeleteRecords([]string{"c1", "missing", "t1"})
	assert.ElementsMatch(t, []string{"c1", "t1"}, removed)

	_, ok := s.GetRecordByID("c1")
	assert.False(t, ok)
	_, ok = s.GetRecordByID("t1")
	assert.False(t, ok)
	assert.Equal(t, []string{"c2"}, ids(s.RecordsForTable(model.Contacts)))
	assert.Equal(t, []string{"o1"}, s.Selected())

	s.DeleteRecord("o1")
	assert.Empty(t, s.Selected())
	assert.Empty(t, s.RecordsForTable(model.Opportunities))
}

func TestDuplicateRecord(t *testing.T) {
	s := newTestStore()

	dup, err := s.DuplicateRecord("o1")
	require.NoError(t, err)
	assert.Equal(t, "Deal (Copy)", dup.GetName())
	assert.Equal(t, "new-1", dup.Meta().ID)
	assert.Equal(t, "2024-05-17", dup.Meta().CreatedAt)
	assert.Equal(t, "2024-05-17", dup.Meta().UpdatedAt)

	v, _ := dup.Field("value")
	assert.Equal(t, 10.0, v.Number())
	assert.Equal(t, []string{"o1", "new-1"}, ids(s.RecordsForTable(model.Opportunities)))

	_, err = s.DuplicateRecord("missing")
	assert.ErrorIs(t, err, model.ErrRecordNotFound)
	assert.Len(t, s.RecordsForTable(model.Opportunities), 2)
}

func TestRecordsForTable(t *testing.T) {
	s := newTestStore()

	assert.Equal(t, []string{"c1", "c2", "o1", "t1"}, ids(s.RecordsForTable(model.Unified)))
	assert.NotNil(t, s.RecordsForTable(model.Organizations))
	assert.Empty(t, s.RecordsForTable(model.Organizations))

	t.Run("returns copies", func(t *testing.T) {
		recs := s.RecordsForTable(model.Contacts)
		recs[0].SetName("Mutated")
		got, _ := s.GetRecordByID("c1")
		assert.Equal(t, "Ann", got.GetName())
	})
}

func TestReplace(t *testing.T) {
	s := newTestStore()
	s.Select("c1", "c2")

	s.Replace(model.Dataset{
		model.Contacts: {&model.Contact{Base: model.Base{ID: "c2"}, Name: "Bob"}},
	})

	assert.Equal(t, []string{"c2"}, s.Selected())
	assert.Equal(t, []string{"c2"}, ids(s.RecordsForTable(model.Unified)))
}

func TestSubscribe(t *testing.T) {
	s := newTestStore()

	var events []Event
	unsubscribe := s.Subscribe(func(ev Event) {
		// Reads from inside a callback must observe the finished mutation.
		if ev.Kind == EventCreated {
			_, ok := s.GetRecordByID(ev.IDs[0])
			assert.True(t, ok)
		}
		events = append(events, ev)
	})

	_, err := s.CreateRecord(&model.Contact{Name: "Cy"})
	require.NoError(t, err)
	_, _ = s.UpdateRecord(&model.Contact{Base: model.Base{ID: "missing"}})
	s.DeleteRecords([]string{"missing"})
	s.DeleteRecords([]string{"c1"})

	require.Len(t, events, 2)
	assert.Equal(t, Event{Kind: EventCreated, Table: model.Contacts, IDs: []string{"new-1"}}, events[0])
	assert.Equal(t, Event{Kind: EventDeleted, IDs: []string{"c1"}}, events[1])

	unsubscribe()
	s.DeleteRecord("c2")
	assert.Len(t, events, 2)
}
