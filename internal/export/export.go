// Package export writes record sets as CSV, JSON or JSONL.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/gridlex/internal/model"
)

// Format is an export encoding.
type Format string

const (
	CSV   Format = "csv"
	JSON  Format = "json"
	JSONL Format = "jsonl"
)

// ParseFormat parses an export format case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, JSON, JSONL:
		return f, nil
	}
	return "", fmt.Errorf("%w: format %q (must be csv, json, or jsonl)", model.ErrInvalidValue, s)
}

// Write encodes records to w. fields selects the CSV columns; JSON and JSONL
// always carry whole records.
func Write(w io.Writer, format Format, records []model.Record, fields []string) error {
	switch format {
	case CSV:
		return writeCSV(w, records, fields)
	case JSON:
		return writeJSON(w, records)
	case JSONL:
		return writeJSONL(w, records)
	}
	return fmt.Errorf("%w: format %q", model.ErrInvalidValue, format)
}

// writeCSV emits a header row of field names and one row per record. A
// cell containing a comma is wrapped in double quotes; quotes inside a cell
// are written as is.
func writeCSV(w io.Writer, records []model.Record, fields []string) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(fields, ","))
	bw.WriteByte('\n')

	cells := make([]string, len(fields))
	for _, rec := range records {
		for i, f := range fields {
			cells[i] = csvCell(rec, f)
		}
		bw.WriteString(strings.Join(cells, ","))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func csvCell(rec model.Record, field string) string {
	v, ok := rec.Field(field)
	if !ok {
		return ""
	}
	s := v.String()
	if field == "location" {
		loc := rec.Meta().Location
		s = fmt.Sprintf("%g,%g", loc.Lat, loc.Lng)
	}
	if strings.Contains(s, ",") {
		return `"` + s + `"`
	}
	return s
}

func writeJSON(w io.Writer, records []model.Record) error {
	if records == nil {
		records = []model.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func writeJSONL(w io.Writer, records []model.Record) error {
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to marshal record %s: %w", rec.Meta().ID, err)
		}
	}
	return nil
}

// WriteFile writes the export to path atomically via a temp file in the
// same directory.
func WriteFile(path string, format Format, records []model.Record, fields []string) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, "export-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := Write(tmpFile, format, records, fields); err != nil {
		tmpFile.Close()
		return err
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
