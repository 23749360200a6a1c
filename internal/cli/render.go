package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/user/gridlex/internal/model"
	"github.com/user/gridlex/internal/views"
)

const maxColumnWidth = 40

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// cellText renders one field of rec for human output.
func cellText(rec model.Record, field string) string {
	v, ok := rec.Field(field)
	if !ok {
		return ""
	}
	if field == "location" {
		loc := rec.Meta().Location
		return fmt.Sprintf("%.4f,%.4f", loc.Lat, loc.Lng)
	}
	return v.String()
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-3]) + "..."
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", width-utf8.RuneCountInString(s))
}

// printTable writes records as aligned columns.
func printTable(w io.Writer, records []model.Record, columns []string) {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = utf8.RuneCountInString(col)
	}
	for _, rec := range records {
		for i, col := range columns {
			if n := utf8.RuneCountInString(cellText(rec, col)); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i := range widths {
		if widths[i] > maxColumnWidth {
			widths[i] = maxColumnWidth
		}
	}

	headerParts := make([]string, len(columns))
	separatorParts := make([]string, len(columns))
	for i, col := range columns {
		headerParts[i] = pad(truncate(col, widths[i]), widths[i])
		separatorParts[i] = strings.Repeat("-", widths[i])
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(headerParts, "  "), " "))
	fmt.Fprintln(w, strings.Join(separatorParts, "  "))

	for _, rec := range records {
		rowParts := make([]string, len(columns))
		for i, col := range columns {
			rowParts[i] = pad(truncate(cellText(rec, col), widths[i]), widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(rowParts, "  "), " "))
	}
}

// printBoard writes one block per lane.
func printBoard(w io.Writer, columns []views.Column) {
	for i, col := range columns {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s (%d) ==\n", col.Key, len(col.Records))
		for _, rec := range col.Records {
			fmt.Fprintf(w, "  %s  %s\n", rec.Meta().ID, rec.GetName())
		}
	}
}

// printCalendar writes one block per day.
func printCalendar(w io.Writer, days []views.Day) {
	if len(days) == 0 {
		fmt.Fprintln(w, "No dated records.")
		return
	}
	for _, day := range days {
		fmt.Fprintln(w, day.Date)
		for _, rec := range day.Records {
			fmt.Fprintf(w, "  %s  %s  [%s]\n", rec.Meta().ID, rec.GetName(), rec.Table().Singular())
		}
	}
}

// printPoints writes one line per map point.
func printPoints(w io.Writer, points []views.Point, withDistance bool) {
	if len(points) == 0 {
		fmt.Fprintln(w, "No records with a location.")
		return
	}
	for _, p := range points {
		line := fmt.Sprintf("%s  %s  (%.4f, %.4f)", p.Record.Meta().ID, p.Record.GetName(), p.Location.Lat, p.Location.Lng)
		if withDistance {
			line += fmt.Sprintf("  %.1f km", p.DistanceKm)
		}
		fmt.Fprintln(w, line)
	}
}

// printRecord writes every column of rec as "name: value" lines.
func printRecord(w io.Writer, rec model.Record) {
	columns := []string{"id", "tableType"}
	columns = append(columns, rec.FieldNames()...)
	columns = append(columns, "createdAt", "updatedAt")
	if rec.Meta().Location != nil {
		columns = append(columns, "location")
	}

	width := 0
	for _, col := range columns {
		if n := len(col); n > width {
			width = n
		}
	}
	for _, col := range columns {
		fmt.Fprintf(w, "%-*s  %s\n", width+1, col+":", cellText(rec, col))
	}
}
