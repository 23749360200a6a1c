package views

import (
	"sort"
	"strings"
	"time"

	"github.com/user/gridlex/internal/model"
)

// Day is one calendar cell.
type Day struct {
	Date    string         `json:"date"`
	Records []model.Record `json:"records"`
}

// DateField returns the primary date field of a record table, or "" when
// the table has none.
func DateField(t model.TableType) string {
	switch t {
	case model.Opportunities:
		return "closeDate"
	case model.Tasks:
		return "dueDate"
	}
	return ""
}

// Calendar buckets records by their primary date, earliest first. Records
// without a valid date are left out. month ("yyyy-mm") restricts the result
// when non-empty.
func Calendar(records []model.Record, month string) []Day {
	byDate := make(map[string][]model.Record)
	for _, rec := range records {
		field := DateField(rec.Table())
		if field == "" {
			continue
		}
		v, ok := rec.Field(field)
		if !ok {
			continue
		}
		date := v.String()
		if _, err := time.Parse(model.DateLayout, date); err != nil {
			continue
		}
		if month != "" && !strings.HasPrefix(date, month+"-") {
			continue
		}
		byDate[date] = append(byDate[date], rec)
	}

	days := make([]Day, 0, len(byDate))
	for date, recs := range byDate {
		days = append(days, Day{Date: date, Records: recs})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}
