package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type configOutput struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	TableType string   `json:"tableType"`
	Fields    []string `json:"visibleFields"`
	SortBy    string   `json:"sortBy"`
	SortOrder string   `json:"sortOrder"`
	GroupBy   string   `json:"groupBy"`
	SavedBy   string   `json:"savedBy"`
	IsDefault bool     `json:"isDefault"`
	IsShared  bool     `json:"isShared"`
	ShareMode string   `json:"shareMode"`
}

func TestConfigList(t *testing.T) {
	out, errOut := setupTestEnv(t)

	var all []configOutput
	decodeJSON(t, run(t, out, errOut, "config", "list", "--json"), &all)
	assert.Len(t, all, 7)

	var opps []configOutput
	decodeJSON(t, run(t, out, errOut, "config", "list", "--table", "opportunities", "--json"), &opps)
	ids := make([]string, len(opps))
	for i, c := range opps {
		ids[i] = c.ID
	}
	assert.ElementsMatch(t, []string{"default-opportunities", "pipeline"}, ids)

	output := run(t, out, errOut, "config", "list")
	assert.Contains(t, output, "All Contacts")
	assert.Contains(t, output, "shared:team")

	raw := run(t, out, errOut, "config", "show", "default-contacts", "--json")
	assert.Contains(t, raw, `"visibleFields": []`)
	assert.Contains(t, raw, `"filters": []`)

	output = run(t, out, errOut, "config", "show", "pipeline")
	assert.Contains(t, output, "View:      kanban")
	assert.Contains(t, output, "Group by:  stage")
}

func TestConfigSaveAndApply(t *testing.T) {
	out, errOut := setupTestEnv(t)

	var saved configOutput
	decodeJSON(t, run(t, out, errOut, "config", "save", "--name", "Big deals", "--table", "opportunities",
		"--filter", "value>50000", "--sort-by", "value", "--desc", "--share", "team", "--json"), &saved)
	require.NotEmpty(t, saved.ID)
	assert.Equal(t, "tester", saved.SavedBy)
	assert.Equal(t, "desc", saved.SortOrder)
	assert.True(t, saved.IsShared)
	assert.Equal(t, "team", saved.ShareMode)
	assert.Equal(t, []string{}, saved.Fields)

	var got listOutput
	decodeJSON(t, run(t, out, errOut, "list", "--config", saved.ID, "--json"), &got)
	assert.Equal(t, "opportunities", got.Table)
	// Sort compares stringified values, so "120000" sorts below "64000".
	assert.Equal(t, []string{"o-002", "o-005", "o-001"}, recordIDs(got.Records))

	// Extra filters narrow the saved ones.
	decodeJSON(t, run(t, out, errOut, "list", "--config", saved.ID, "--filter", "stage=proposal", "--json"), &got)
	assert.Equal(t, []string{"o-002"}, recordIDs(got.Records))

	id := strings.TrimSpace(run(t, out, errOut, "config", "save", "--id", saved.ID, "--name", "Renamed"))
	assert.Equal(t, saved.ID, id)

	var updated configOutput
	decodeJSON(t, run(t, out, errOut, "config", "show", saved.ID, "--json"), &updated)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "value", updated.SortBy)
	assert.Equal(t, "desc", updated.SortOrder)

	var all []configOutput
	decodeJSON(t, run(t, out, errOut, "config", "list", "--json"), &all)
	assert.Len(t, all, 8)
}

func TestConfigDupDefaultRm(t *testing.T) {
	out, errOut := setupTestEnv(t)

	var dup configOutput
	decodeJSON(t, run(t, out, errOut, "config", "dup", "pipeline", "--json"), &dup)
	assert.NotEqual(t, "pipeline", dup.ID)
	assert.Equal(t, "Sales Pipeline (Copy)", dup.Name)
	assert.False(t, dup.IsDefault)

	assert.Equal(t, dup.ID+" is now a default for opportunities\n", run(t, out, errOut, "config", "default", dup.ID))

	var defaults []configOutput
	decodeJSON(t, run(t, out, errOut, "config", "list", "--table", "opportunities", "--json"), &defaults)
	count := 0
	for _, c := range defaults {
		if c.IsDefault {
			count++
		}
	}
	assert.Equal(t, 2, count)

	assert.Equal(t, "Deleted "+dup.ID+"\n", run(t, out, errOut, "config", "rm", dup.ID))

	output := run(t, out, errOut, "config", "show", dup.ID, "--json")
	assert.Equal(t, 1, ExitCode)
	var errResp JSONError
	decodeJSON(t, output, &errResp)
	assert.Equal(t, ErrCodeConfigNotFound, errResp.Code)

	for _, args := range [][]string{
		{"config", "rm", "ghost"},
		{"config", "dup", "ghost"},
		{"config", "default", "ghost"},
		{"list", "--config", "ghost"},
	} {
		run(t, out, errOut, args...)
		assert.Equal(t, 1, ExitCode, args)
	}
}

func TestConfigSaveValidation(t *testing.T) {
	out, errOut := setupTestEnv(t)

	output := run(t, out, errOut, "config", "save", "--name", "People board", "--table", "contacts", "--view", "kanban", "--json")
	assert.Equal(t, 3, ExitCode)
	var errResp JSONError
	decodeJSON(t, output, &errResp)
	assert.Equal(t, ErrCodeViewUnavailable, errResp.Code)
	assert.NotEmpty(t, errResp.Details["suggestion"])

	run(t, out, errOut, "config", "save", "--table", "contacts")
	assert.Equal(t, 2, ExitCode)

	run(t, out, errOut, "config", "save", "--name", "x", "--share", "everyone")
	assert.Equal(t, 2, ExitCode)

	var all []configOutput
	decodeJSON(t, run(t, out, errOut, "config", "list", "--json"), &all)
	assert.Len(t, all, 7)
}
