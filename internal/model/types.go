package model

import (
	"fmt"
	"strings"
)

// TableType discriminates the four record variants. Unified is virtual and
// stands for all four collections concatenated.
type TableType string

const (
	Contacts      TableType = "contacts"
	Opportunities TableType = "opportunities"
	Organizations TableType = "organizations"
	Tasks         TableType = "tasks"
	Unified       TableType = "unified"
)

// RecordTables lists the concrete table types in collection order.
var RecordTables = []TableType{Contacts, Opportunities, Organizations, Tasks}

// AllTables lists every table type a view may be scoped to.
var AllTables = []TableType{Contacts, Opportunities, Organizations, Tasks, Unified}

// IsRecordTable reports whether t names a concrete collection.
func (t TableType) IsRecordTable() bool {
	switch t {
	case Contacts, Opportunities, Organizations, Tasks:
		return true
	}
	return false
}

// Singular returns the human label for one record of the table.
func (t TableType) Singular() string {
	switch t {
	case Contacts:
		return "contact"
	case Opportunities:
		return "opportunity"
	case Organizations:
		return "organization"
	case Tasks:
		return "task"
	}
	return "record"
}

// ParseTableType resolves a table name case-insensitively. Singular forms
// ("contact", "task") are accepted as well.
func ParseTableType(s string) (TableType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, t := range AllTables {
		if name == string(t) || name == t.Singular() {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected contacts, opportunities, organizations, tasks, or unified)", ErrUnknownTableType, s)
}

// ViewType is a way of rendering the working record set.
type ViewType string

const (
	ListView     ViewType = "list"
	KanbanView   ViewType = "kanban"
	CalendarView ViewType = "calendar"
	MapView      ViewType = "map"
)

// AllViews is the canonical view order.
var AllViews = []ViewType{ListView, KanbanView, CalendarView, MapView}

// ParseViewType resolves a view name case-insensitively. "table" and "board"
// are accepted as aliases of list and kanban.
func ParseViewType(s string) (ViewType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "list", "table":
		return ListView, nil
	case "kanban", "board":
		return KanbanView, nil
	case "calendar":
		return CalendarView, nil
	case "map":
		return MapView, nil
	}
	return "", fmt.Errorf("%w: %q (expected list, kanban, calendar, or map)", ErrUnknownViewType, s)
}

// Workflow enums. Values are the display strings used by the mock data.
type (
	ContactStatus      string
	OpportunityStage   string
	OrganizationStatus string
	TaskPriority       string
	TaskStatus         string
)

const (
	ContactActive   ContactStatus = "Active"
	ContactInactive ContactStatus = "Inactive"
	ContactPending  ContactStatus = "Pending"

	StageLead        OpportunityStage = "Lead"
	StageQualified   OpportunityStage = "Qualified"
	StageProposal    OpportunityStage = "Proposal"
	StageNegotiation OpportunityStage = "Negotiation"
	StageClosedWon   OpportunityStage = "Closed Won"
	StageClosedLost  OpportunityStage = "Closed Lost"

	OrganizationActive   OrganizationStatus = "Active"
	OrganizationInactive OrganizationStatus = "Inactive"
	OrganizationProspect OrganizationStatus = "Prospect"

	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
	PriorityUrgent TaskPriority = "Urgent"

	TaskPending    TaskStatus = "Pending"
	TaskInProgress TaskStatus = "In Progress"
	TaskCompleted  TaskStatus = "Completed"
	TaskCancelled  TaskStatus = "Cancelled"
)

var (
	ContactStatuses      = []string{"Active", "Inactive", "Pending"}
	OpportunityStages    = []string{"Lead", "Qualified", "Proposal", "Negotiation", "Closed Won", "Closed Lost"}
	OrganizationStatuses = []string{"Active", "Inactive", "Prospect"}
	TaskPriorities       = []string{"Low", "Medium", "High", "Urgent"}
	TaskStatuses         = []string{"Pending", "In Progress", "Completed", "Cancelled"}
)

// matchEnum returns the canonical spelling of s within allowed.
func matchEnum(field, s string, allowed []string) (string, error) {
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(s), a) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %s must be one of %s, got %q", ErrInvalidValue, field, strings.Join(allowed, ", "), s)
}
