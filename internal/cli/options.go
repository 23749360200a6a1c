package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/user/gridlex/internal/model"
	"github.com/user/gridlex/internal/query"
)

// parseFilters parses repeated --filter clauses.
func parseFilters(clauses []string) ([]query.Filter, error) {
	filters := make([]query.Filter, 0, len(clauses))
	for _, clause := range clauses {
		f, err := query.ParseFilter(clause)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// parseAssignments splits key=value arguments in order.
func parseAssignments(args []string) ([][2]string, error) {
	pairs := make([][2]string, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q (expected field=value)", arg)
		}
		pairs = append(pairs, [2]string{key, value})
	}
	return pairs, nil
}

// applyAssignments sets each field on rec, stopping at the first error.
func applyAssignments(rec model.Record, pairs [][2]string) error {
	for _, p := range pairs {
		if err := rec.SetField(p[0], p[1]); err != nil {
			return err
		}
	}
	return nil
}

// parseColumns splits a comma-separated column list.
func parseColumns(s string) []string {
	var cols []string
	for _, col := range strings.Split(s, ",") {
		if col = strings.TrimSpace(col); col != "" {
			cols = append(cols, col)
		}
	}
	return cols
}

// parseLatLng parses "lat,lng".
func parseLatLng(s string) (model.Location, error) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return model.Location{}, fmt.Errorf("invalid coordinates %q (expected lat,lng)", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil || lat < -90 || lat > 90 {
		return model.Location{}, fmt.Errorf("invalid latitude %q", latStr)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil || lng < -180 || lng > 180 {
		return model.Location{}, fmt.Errorf("invalid longitude %q", lngStr)
	}
	return model.Location{Lat: lat, Lng: lng}, nil
}

// newRecordDefaults are the workflow values a freshly added record starts
// with.
var newRecordDefaults = map[model.TableType][][2]string{
	model.Contacts:      {{"status", string(model.ContactActive)}},
	model.Opportunities: {{"stage", string(model.StageLead)}},
	model.Organizations: {{"status", string(model.OrganizationProspect)}},
	model.Tasks:         {{"status", string(model.TaskPending)}, {"priority", string(model.PriorityMedium)}},
}
