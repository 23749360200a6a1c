package store

import (
	"slices"

	"github.com/user/gridlex/internal/model"
)

// Select adds ids to the selection. Unknown ids are ignored.
func (s *Store) Select(ids ...string) {
	s.mu.Lock()
	var added []string
	for _, id := range ids {
		if rec, _ := s.find(id); rec != nil && !s.selected[id] {
			s.selected[id] = true
			added = append(added, id)
		}
	}
	s.mu.Unlock()

	if len(added) > 0 {
		s.emit(Event{Kind: EventSelection, IDs: added})
	}
}

// Deselect removes ids from the selection.
func (s *Store) Deselect(ids ...string) {
	s.mu.Lock()
	var removed []string
	for _, id := range ids {
		if s.selected[id] {
			delete(s.selected, id)
			removed = append(removed, id)
		}
	}
	s.mu.Unlock()

	if len(removed) > 0 {
		s.emit(Event{Kind: EventSelection, IDs: removed})
	}
}

// ToggleSelect flips the selection state of id and reports whether it is
// now selected.
func (s *Store) ToggleSelect(id string) bool {
	if s.IsSelected(id) {
		s.Deselect(id)
		return false
	}
	s.Select(id)
	return s.IsSelected(id)
}

// SelectAll selects every record of table (all tables for unified).
func (s *Store) SelectAll(table model.TableType) {
	recs := s.RecordsForTable(table)
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.Meta().ID
	}
	s.Select(ids...)
}

// ClearSelection empties the selection.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	n := len(s.selected)
	s.selected = make(map[string]bool)
	s.mu.Unlock()

	if n > 0 {
		s.emit(Event{Kind: EventSelection})
	}
}

// IsSelected reports whether id is selected.
func (s *Store) IsSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected[id]
}

// Selected returns the selected ids, sorted.
func (s *Store) Selected() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	slices.Sort(ids)
	return ids
}
