package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/gridlex/internal/model"
)

func records() []model.Record {
	return []model.Record{
		&model.Contact{
			Base:         model.Base{ID: "c1", CreatedAt: "2024-01-01", UpdatedAt: "2024-01-02", Location: &model.Location{Lat: 40.5, Lng: -74}},
			Name:         "Smith, Ann",
			Email:        "ann@example.com",
			Organization: `Acme "Global"`,
			Status:       model.ContactActive,
		},
		&model.Opportunity{Base: model.Base{ID: "o1"}, Name: "Deal", Value: 1500, Stage: model.StageLead},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, CSV, records(), []string{"id", "name", "organization", "value", "location"}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name,organization,value,location", lines[0])
	assert.Equal(t, `c1,"Smith, Ann",Acme "Global",,"40.5,-74"`, lines[1])
	assert.Equal(t, "o1,Deal,,1500,", lines[2])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, CSV, nil, []string{"id", "name"}))
	assert.Equal(t, "id,name\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, records(), nil))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "contacts", got[0]["tableType"])
	assert.Equal(t, "Smith, Ann", got[0]["name"])
	assert.Equal(t, 1500.0, got[1]["value"])

	buf.Reset()
	require.NoError(t, Write(&buf, JSON, nil, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteJSONL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSONL, records(), nil))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		rec, err := model.DecodeRecord([]byte(line))
		require.NoError(t, err)
		assert.NotEmpty(t, rec.Meta().ID)
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSONL")
	require.NoError(t, err)
	assert.Equal(t, JSONL, f)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, model.ErrInvalidValue)
	assert.Error(t, Write(&bytes.Buffer{}, Format("xml"), nil, nil))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	require.NoError(t, WriteFile(path, CSV, records(), []string{"id"}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id\nc1\no1\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be cleaned up")

	assert.Error(t, WriteFile(filepath.Join(dir, "missing", "out.csv"), CSV, nil, nil))
}
