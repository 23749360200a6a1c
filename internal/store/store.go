// Package store is the in-memory record store. It owns the four record
// collections, the selection set and the change subscribers.
package store

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/user/gridlex/internal/model"
)

// EventKind names a store mutation.
type EventKind string

const (
	EventCreated    EventKind = "created"
	EventUpdated    EventKind = "updated"
	EventDeleted    EventKind = "deleted"
	EventDuplicated EventKind = "duplicated"
	EventReplaced   EventKind = "replaced"
	EventSelection  EventKind = "selection"
)

// Event describes a completed mutation. Table is empty for events that span
// tables.
type Event struct {
	Kind  EventKind
	Table model.TableType
	IDs   []string
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the record id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// Store holds the working set of records.
type Store struct {
	mu       sync.RWMutex
	records  model.Dataset
	selected map[string]bool

	subMu  sync.Mutex
	subs   map[int]func(Event)
	nextID int

	now   func() time.Time
	newID func() string
}

// New returns a store seeded with a copy of data.
func New(data model.Dataset, opts ...Option) *Store {
	s := &Store{
		selected: make(map[string]bool),
		subs:     make(map[int]func(Event)),
		now:      time.Now,
		newID:    model.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.records = normalize(data)
	return s
}

func normalize(data model.Dataset) model.Dataset {
	out := data.Clone()
	for _, t := range model.RecordTables {
		if out[t] == nil {
			out[t] = []model.Record{}
		}
	}
	return out
}

func (s *Store) today() string {
	return model.Today(s.now())
}

// CreateRecord stores a copy of r under a fresh id with both timestamps set
// to today, appended to its table's collection.
func (s *Store) CreateRecord(r model.Record) (model.Record, error) {
	t := r.Table()
	if !t.IsRecordTable() {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownTableType, t)
	}

	rec := r.Clone()
	meta := rec.Meta()
	meta.ID = s.newID()
	today := s.today()
	meta.CreatedAt = today
	meta.UpdatedAt = today

	s.mu.Lock()
	s.records[t] = append(s.records[t], rec)
	s.mu.Unlock()

	s.emit(Event{Kind: EventCreated, Table: t, IDs: []string{meta.ID}})
	return rec.Clone(), nil
}

// UpdateRecord replaces the record with r's id inside r's table and stamps
// updatedAt. An empty createdAt on r keeps the stored one. It returns
// ErrRecordNotFound, without mutating anything, when the id is unknown.
func (s *Store) UpdateRecord(r model.Record) (model.Record, error) {
	t := r.Table()
	id := r.Meta().ID

	s.mu.Lock()
	idx := indexOf(s.records[t], id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", model.ErrRecordNotFound, id)
	}
	rec := r.Clone()
	meta := rec.Meta()
	if meta.CreatedAt == "" {
		meta.CreatedAt = s.records[t][idx].Meta().CreatedAt
	}
	meta.UpdatedAt = s.today()
	s.records[t][idx] = rec
	s.mu.Unlock()

	s.emit(Event{Kind: EventUpdated, Table: t, IDs: []string{id}})
	return rec.Clone(), nil
}

// DeleteRecord removes id from every collection and from the selection.
func (s *Store) DeleteRecord(id string) {
	s.DeleteRecords([]string{id})
}

// DeleteRecords removes ids from every collection and from the selection.
// Unknown ids are ignored. It returns the ids that were removed.
func (s *Store) DeleteRecords(ids []string) []string {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	var removed []string
	s.mu.Lock()
	for _, t := range model.RecordTables {
		s.records[t] = slices.DeleteFunc(s.records[t], func(r model.Record) bool {
			if drop[r.Meta().ID] {
				removed = append(removed, r.Meta().ID)
				return true
			}
			return false
		})
	}
	for id := range drop {
		delete(s.selected, id)
	}
	s.mu.Unlock()

	if len(removed) > 0 {
		s.emit(Event{Kind: EventDeleted, IDs: removed})
	}
	return removed
}

// DuplicateRecord copies the record with id into the same collection under
// a new id, with " (Copy)" appended to its name and both dates set to today.
func (s *Store) DuplicateRecord(id string) (model.Record, error) {
	s.mu.Lock()
	src, t := s.find(id)
	if src == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", model.ErrRecordNotFound, id)
	}
	rec := src.Clone()
	rec.SetName(src.GetName() + " (Copy)")
	meta := rec.Meta()
	meta.ID = s.newID()
	today := s.today()
	meta.CreatedAt = today
	meta.UpdatedAt = today
	s.records[t] = append(s.records[t], rec)
	s.mu.Unlock()

	s.emit(Event{Kind: EventDuplicated, Table: t, IDs: []string{meta.ID}})
	return rec.Clone(), nil
}

// GetRecordByID returns a copy of the record with id from any collection.
func (s *Store) GetRecordByID(id string) (model.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, _ := s.find(id)
	if rec == nil {
		return nil, false
	}
	return rec.Clone(), true
}

// RecordsForTable returns a copy of one collection, or all collections
// concatenated in table order for unified.
func (s *Store) RecordsForTable(table model.TableType) []model.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tables := []model.TableType{table}
	if table == model.Unified {
		tables = model.RecordTables
	}
	var out []model.Record
	for _, t := range tables {
		for _, r := range s.records[t] {
			out = append(out, r.Clone())
		}
	}
	if out == nil {
		out = []model.Record{}
	}
	return out
}

// snapshot returns a deep copy of every collection.
func (s *Store) snapshot() model.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records.Clone()
}

// Replace swaps every collection for a copy of data. Selected ids that no
// longer exist are dropped.
func (s *Store) Replace(data model.Dataset) {
	next := normalize(data)

	s.mu.Lock()
	s.records = next
	for id := range s.selected {
		if rec, _ := s.find(id); rec == nil {
			delete(s.selected, id)
		}
	}
	s.mu.Unlock()

	s.emit(Event{Kind: EventReplaced})
}

// find must be called with mu held.
func (s *Store) find(id string) (model.Record, model.TableType) {
	for _, t := range model.RecordTables {
		if i := indexOf(s.records[t], id); i >= 0 {
			return s.records[t][i], t
		}
	}
	return nil, ""
}

func indexOf(recs []model.Record, id string) int {
	return slices.IndexFunc(recs, func(r model.Record) bool { return r.Meta().ID == id })
}
