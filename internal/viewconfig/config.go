// Package viewconfig stores named view presets: a view type, a table scope,
// visible columns, sort and filters, plus sharing and default flags.
package viewconfig

import (
	"fmt"
	"slices"
	"strings"

	"github.com/user/gridlex/internal/model"
	"github.com/user/gridlex/internal/query"
)

// ShareMode controls who may see a shared config.
type ShareMode string

const (
	SharePrivate ShareMode = "private"
	ShareTeam    ShareMode = "team"
	SharePublic  ShareMode = "public"
)

// ParseShareMode parses a share mode case-insensitively.
func ParseShareMode(s string) (ShareMode, error) {
	switch m := ShareMode(strings.ToLower(strings.TrimSpace(s))); m {
	case SharePrivate, ShareTeam, SharePublic:
		return m, nil
	}
	return "", fmt.Errorf("%w: share mode %q (expected private, team, or public)", model.ErrInvalidValue, s)
}

// ViewConfig is a saved view preset.
type ViewConfig struct {
	ID            string          `json:"id" yaml:"id"`
	Name          string          `json:"name" yaml:"name"`
	Type          model.ViewType  `json:"type" yaml:"type"`
	TableType     model.TableType `json:"tableType" yaml:"tableType"`
	VisibleFields []string        `json:"visibleFields" yaml:"visibleFields"`
	SortBy        string          `json:"sortBy,omitempty" yaml:"sortBy,omitempty"`
	SortOrder     query.SortOrder `json:"sortOrder,omitempty" yaml:"sortOrder,omitempty"`
	Filters       []query.Filter  `json:"filters" yaml:"filters"`
	GroupBy       string          `json:"groupBy,omitempty" yaml:"groupBy,omitempty"`
	SavedBy       string          `json:"savedBy" yaml:"savedBy"`
	IsDefault     bool            `json:"isDefault" yaml:"isDefault"`
	IsShared      bool            `json:"isShared,omitempty" yaml:"isShared,omitempty"`
	ShareMode     ShareMode       `json:"shareMode,omitempty" yaml:"shareMode,omitempty"`
}

// Clone returns a copy that shares no slices with c. Missing slices come
// back empty so they encode as arrays.
func (c ViewConfig) Clone() ViewConfig {
	c.VisibleFields = slices.Clone(c.VisibleFields)
	if c.VisibleFields == nil {
		c.VisibleFields = []string{}
	}
	c.Filters = slices.Clone(c.Filters)
	if c.Filters == nil {
		c.Filters = []query.Filter{}
	}
	return c
}

// Fields returns the columns a list or export of c shows: the visible
// fields when set, otherwise every column of the table.
func (c ViewConfig) Fields() []string {
	if len(c.VisibleFields) > 0 {
		return append([]string(nil), c.VisibleFields...)
	}
	return model.Columns(c.TableType)
}

// Options converts c into query options. search is the free-text query
// typed alongside the view.
func Options(c ViewConfig, search string) query.Options {
	return query.Options{
		Search:    search,
		Filters:   append([]query.Filter(nil), c.Filters...),
		SortField: c.SortBy,
		SortOrder: c.SortOrder,
	}
}
