// Package views decides which view types a table may use and shapes query
// results for the board, calendar and map views.
package views

import "github.com/user/gridlex/internal/model"

// Availability is the verdict for one (table, view) pair. Reason and
// Suggestion are set only when the view is unavailable.
type Availability struct {
	Available  bool   `json:"available"`
	Reason     string `json:"reason,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

type pair struct {
	table model.TableType
	view  model.ViewType
}

var available = Availability{Available: true}

// matrix is the hand-authored compatibility table for every view other than
// list. Pairs missing here are unavailable.
var matrix = map[pair]Availability{
	{model.Contacts, model.KanbanView}: {
		Reason:     "Contacts have no workflow stage to arrange into columns.",
		Suggestion: "Use the list view, or open Opportunities or Tasks for a board.",
	},
	{model.Contacts, model.CalendarView}: {
		Reason:     "Contacts have no primary date field to place on a calendar.",
		Suggestion: "Use the list view, or open Tasks to see due dates on a calendar.",
	},
	{model.Contacts, model.MapView}: available,

	{model.Opportunities, model.KanbanView}:   available,
	{model.Opportunities, model.CalendarView}: available,
	{model.Opportunities, model.MapView}: {
		Reason:     "Opportunities do not carry geographic data.",
		Suggestion: "Map the related Organizations or Contacts instead.",
	},

	{model.Organizations, model.KanbanView}: {
		Reason:     "Organizations have no workflow stage to arrange into columns.",
		Suggestion: "Use the list view, or open Opportunities to track deals on a board.",
	},
	{model.Organizations, model.CalendarView}: {
		Reason:     "Organizations have no primary date field to place on a calendar.",
		Suggestion: "Use the list view, or open Opportunities to see close dates on a calendar.",
	},
	{model.Organizations, model.MapView}: available,

	{model.Tasks, model.KanbanView}:   available,
	{model.Tasks, model.CalendarView}: available,
	{model.Tasks, model.MapView}: {
		Reason:     "Tasks do not carry geographic data.",
		Suggestion: "Use the calendar view to plan tasks by due date.",
	},

	{model.Unified, model.KanbanView}:   available,
	{model.Unified, model.CalendarView}: available,
	{model.Unified, model.MapView}:      available,
}

// GetViewAvailability reports whether view may be used for table. The list
// view is always available.
func GetViewAvailability(table model.TableType, view model.ViewType) Availability {
	if view == model.ListView {
		return available
	}
	if a, ok := matrix[pair{table, view}]; ok {
		return a
	}
	return Availability{
		Reason:     "This view is not supported for " + string(table) + ".",
		Suggestion: "Use the list view.",
	}
}

// GetAvailableViews returns the views usable for table in canonical order.
func GetAvailableViews(table model.TableType) []model.ViewType {
	views := make([]model.ViewType, 0, len(model.AllViews))
	for _, v := range model.AllViews {
		if GetViewAvailability(table, v).Available {
			views = append(views, v)
		}
	}
	return views
}

// GetFirstAvailableView keeps current when it is usable for table and
// otherwise falls back to the first available view, then to list.
func GetFirstAvailableView(table model.TableType, current model.ViewType) model.ViewType {
	return firstAvailable(current, GetViewAvailability(table, current), GetAvailableViews(table))
}

func firstAvailable(current model.ViewType, a Availability, views []model.ViewType) model.ViewType {
	if a.Available {
		return current
	}
	if len(views) > 0 {
		return views[0]
	}
	return model.ListView
}
