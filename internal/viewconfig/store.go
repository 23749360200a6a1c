package viewconfig

import (
	"fmt"
	"slices"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/user/gridlex/internal/model"
	"github.com/user/gridlex/internal/query"
)

// SystemActor is the savedBy value of the built-in configs.
const SystemActor = "system"

// Store holds view configs in insertion order.
type Store struct {
	mu      sync.RWMutex
	configs []ViewConfig
	newID   func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator sets the generator used for new config ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithConfigs replaces the built-in seed with configs.
func WithConfigs(configs []ViewConfig) Option {
	return func(s *Store) {
		s.configs = make([]ViewConfig, len(configs))
		for i, c := range configs {
			s.configs[i] = c.Clone()
		}
	}
}

// NewStore returns a store seeded with the built-in configs.
func NewStore(opts ...Option) *Store {
	s := &Store{configs: BuiltIn(), newID: model.NewID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuiltIn returns the configs every workspace starts with: a default list
// view per table, a pipeline board and a task calendar.
func BuiltIn() []ViewConfig {
	var configs []ViewConfig
	for _, t := range model.AllTables {
		configs = append(configs, ViewConfig{
			ID:        "default-" + string(t),
			Name:      "All " + titleTable(t),
			Type:      model.ListView,
			TableType: t,
			SortBy:    "name",
			SortOrder: query.Asc,
			Filters:   []query.Filter{},
			SavedBy:   SystemActor,
			IsDefault: true,
		})
	}
	configs = append(configs,
		ViewConfig{
			ID:            "pipeline",
			Name:          "Sales Pipeline",
			Type:          model.KanbanView,
			TableType:     model.Opportunities,
			VisibleFields: []string{"name", "value", "closeDate", "assignedTo"},
			SortBy:        "value",
			SortOrder:     query.Desc,
			Filters:       []query.Filter{},
			GroupBy:       "stage",
			SavedBy:       SystemActor,
			IsShared:      true,
			ShareMode:     ShareTeam,
		},
		ViewConfig{
			ID:            "task-calendar",
			Name:          "Task Calendar",
			Type:          model.CalendarView,
			TableType:     model.Tasks,
			VisibleFields: []string{"name", "dueDate", "priority", "assignedTo"},
			SortBy:        "dueDate",
			SortOrder:     query.Asc,
			Filters:       []query.Filter{},
			SavedBy:       SystemActor,
			IsShared:      true,
			ShareMode:     ShareTeam,
		},
	)
	return configs
}

func titleTable(t model.TableType) string {
	if t == model.Unified {
		return "Records"
	}
	return cases.Title(language.English).String(string(t))
}

// Save upserts c by id: an existing config is replaced in place, anything
// else is appended. A config without an id gets a fresh one.
func (s *Store) Save(c ViewConfig) ViewConfig {
	c = c.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = s.newID()
	}
	if i := s.index(c.ID); i >= 0 {
		s.configs[i] = c
	} else {
		s.configs = append(s.configs, c)
	}
	return c.Clone()
}

// Delete removes the config with id. Default configs are not protected.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", model.ErrConfigNotFound, id)
	}
	s.configs = slices.Delete(s.configs, i, i+1)
	return nil
}

// Duplicate appends a copy of the config with id under a new id, with
// " (Copy)" appended to its name and the default flag cleared.
func (s *Store) Duplicate(id string) (ViewConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return ViewConfig{}, fmt.Errorf("%w: %s", model.ErrConfigNotFound, id)
	}
	c := s.configs[i].Clone()
	c.ID = s.newID()
	c.Name += " (Copy)"
	c.IsDefault = false
	s.configs = append(s.configs, c)
	return c.Clone(), nil
}

// SetDefault flags the config with id as default. Other defaults for the
// same table are left alone.
func (s *Store) SetDefault(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", model.ErrConfigNotFound, id)
	}
	s.configs[i].IsDefault = true
	return nil
}

// Get returns the config with id.
func (s *Store) Get(id string) (ViewConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		return ViewConfig{}, fmt.Errorf("%w: %s", model.ErrConfigNotFound, id)
	}
	return s.configs[i].Clone(), nil
}

// List returns the configs for table in insertion order, or every config
// when table is empty.
func (s *Store) List(table model.TableType) []ViewConfig {
	return s.filter(func(c ViewConfig) bool { return table == "" || c.TableType == table })
}

// Defaults returns the configs flagged default for table.
func (s *Store) Defaults(table model.TableType) []ViewConfig {
	return s.filter(func(c ViewConfig) bool { return c.IsDefault && c.TableType == table })
}

func (s *Store) filter(keep func(ViewConfig) bool) []ViewConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []ViewConfig{}
	for _, c := range s.configs {
		if keep(c) {
			out = append(out, c.Clone())
		}
	}
	return out
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.configs, func(c ViewConfig) bool { return c.ID == id })
}
