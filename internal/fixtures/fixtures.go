// Package fixtures loads the mock CRM dataset, either the copy embedded in
// the binary or a YAML file supplied by the user, and reloads that file when
// it changes.
package fixtures

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/gridlex/internal/model"
)

//go:embed mock_data.yaml
var mockData []byte

// ErrInvalidDataset is returned when a dataset file is malformed.
var ErrInvalidDataset = errors.New("invalid dataset")

type document struct {
	Contacts      []*model.Contact      `yaml:"contacts"`
	Opportunities []*model.Opportunity  `yaml:"opportunities"`
	Organizations []*model.Organization `yaml:"organizations"`
	Tasks         []*model.Task         `yaml:"tasks"`
}

// Default returns the embedded mock dataset.
func Default() model.Dataset {
	data, err := Parse(mockData)
	if err != nil {
		panic(fmt.Sprintf("embedded mock data: %v", err))
	}
	return data
}

// Load reads a dataset from a YAML file.
func Load(path string) (model.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	data, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// Parse decodes and validates a YAML dataset. Ids must be present and
// unique across tables, and typed fields must hold valid values.
func Parse(raw []byte) (model.Dataset, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}

	data := model.Dataset{
		model.Contacts:      toRecords(doc.Contacts),
		model.Opportunities: toRecords(doc.Opportunities),
		model.Organizations: toRecords(doc.Organizations),
		model.Tasks:         toRecords(doc.Tasks),
	}

	seen := make(map[string]bool, data.Len())
	for _, t := range model.RecordTables {
		for i, rec := range data[t] {
			id := rec.Meta().ID
			if err := model.ValidateID(id); err != nil {
				return nil, fmt.Errorf("%w: %s[%d]: %v", ErrInvalidDataset, t, i, err)
			}
			if seen[id] {
				return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidDataset, id)
			}
			seen[id] = true
			if err := validate(rec); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDataset, id, err)
			}
		}
	}
	return data, nil
}

// validate re-applies every non-empty field through SetField so enum,
// date and amount rules are checked. Enum values are canonicalized.
func validate(rec model.Record) error {
	for _, name := range rec.FieldNames() {
		v, ok := rec.Field(name)
		if !ok || (v.IsText() && v.String() == "") {
			continue
		}
		if err := rec.SetField(name, v.String()); err != nil {
			return err
		}
	}
	return nil
}

// toRecords drops null list entries.
func toRecords[T any, P interface {
	*T
	model.Record
}](items []P) []model.Record {
	out := make([]model.Record, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, item)
		}
	}
	return out
}
