package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestEnv points the data directory at a temp dir, captures output
// and replaces the exit function so failures only record ExitCode.
func setupTestEnv(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	t.Setenv("GRIDLEX_DATA_DIR", t.TempDir())
	t.Setenv("GRIDLEX_DATA", "")
	t.Setenv("GRIDLEX_ACTOR", "tester")

	origExitFunc := ExitFunc
	ExitFunc = func(code int) {
		ExitCode = code
	}
	ExitCode = 0

	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	resetFlags()

	t.Cleanup(func() {
		resetFlags()
		ExitFunc = origExitFunc
		ExitCode = 0
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})
	return out, errOut
}

// resetFlags clears every flag and drops the session.
func resetFlags() {
	resetCommandFlags(rootCmd)
	closeSession()
}

// run executes one command against the current session and returns its
// stdout. Flags are reset first; the session is kept.
func run(t *testing.T, out, errOut *bytes.Buffer, args ...string) string {
	t.Helper()
	out.Reset()
	errOut.Reset()
	resetCommandFlags(rootCmd)
	ExitCode = 0

	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func decodeJSON(t *testing.T, s string, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(s)), v), s)
}

type jsonRecord map[string]interface{}

type listOutput struct {
	Table   string       `json:"table"`
	View    string       `json:"view"`
	Config  string       `json:"config"`
	Notice  string       `json:"notice"`
	Count   int          `json:"count"`
	Records []jsonRecord `json:"records"`
	Columns []struct {
		Key     string       `json:"key"`
		Records []jsonRecord `json:"records"`
	} `json:"columns"`
	Days []struct {
		Date    string       `json:"date"`
		Records []jsonRecord `json:"records"`
	} `json:"days"`
	Points []struct {
		Record     jsonRecord `json:"record"`
		DistanceKm float64    `json:"distanceKm"`
	} `json:"points"`
}

func recordIDs(records []jsonRecord) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i], _ = r["id"].(string)
	}
	return ids
}
