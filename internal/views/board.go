package views

import "github.com/user/gridlex/internal/model"

// NoValueColumn collects records that lack the grouping field.
const NoValueColumn = "(none)"

// Column is one board lane.
type Column struct {
	Key     string         `json:"key"`
	Records []model.Record `json:"records"`
}

// WorkflowField returns the field a board groups a table's records by.
func WorkflowField(t model.TableType) string {
	if t == model.Opportunities {
		return "stage"
	}
	return "status"
}

// columnOrder returns the predefined lanes for a table's workflow field.
func columnOrder(t model.TableType) []string {
	switch t {
	case model.Contacts:
		return model.ContactStatuses
	case model.Opportunities:
		return model.OpportunityStages
	case model.Organizations:
		return model.OrganizationStatuses
	case model.Tasks:
		return model.TaskStatuses
	case model.Unified:
		seen := make(map[string]bool)
		var order []string
		for _, rt := range model.RecordTables {
			for _, k := range columnOrder(rt) {
				if !seen[k] {
					seen[k] = true
					order = append(order, k)
				}
			}
		}
		return order
	}
	return nil
}

// Board groups records into lanes. With an empty groupBy, or a groupBy
// naming the table's own workflow field, each record is grouped by its
// workflow field and every predefined lane is present, even when empty.
// Any other groupBy yields lanes in order of first appearance. Records keep
// their relative order within a lane.
func Board(records []model.Record, table model.TableType, groupBy string) []Column {
	if table != model.Unified && groupBy == WorkflowField(table) {
		groupBy = ""
	}
	var order []string
	if groupBy == "" {
		order = columnOrder(table)
	}

	lanes := make(map[string]*Column, len(order))
	columns := make([]*Column, 0, len(order))
	lane := func(key string) *Column {
		if c, ok := lanes[key]; ok {
			return c
		}
		c := &Column{Key: key}
		lanes[key] = c
		columns = append(columns, c)
		return c
	}
	for _, key := range order {
		lane(key)
	}

	var none []model.Record
	for _, rec := range records {
		field := groupBy
		if field == "" {
			field = WorkflowField(rec.Table())
		}
		v, ok := rec.Field(field)
		if !ok {
			none = append(none, rec)
			continue
		}
		c := lane(v.String())
		c.Records = append(c.Records, rec)
	}

	result := make([]Column, 0, len(columns)+1)
	for _, c := range columns {
		result = append(result, *c)
	}
	if len(none) > 0 {
		result = append(result, Column{Key: NoValueColumn, Records: none})
	}
	return result
}
