package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnboard(t *testing.T) {
	out, errOut := setupTestEnv(t)

	output := run(t, out, errOut, "onboard")
	assert.Contains(t, output, "Welcome to gridlex!")

	// A new session reads the flag back from the preferences database.
	closeSession()
	output = run(t, out, errOut, "onboard")
	assert.Contains(t, output, "already completed")

	var got map[string]bool
	decodeJSON(t, run(t, out, errOut, "onboard", "--json"), &got)
	assert.True(t, got["completed"])
	assert.True(t, got["alreadyCompleted"])

	assert.Contains(t, run(t, out, errOut, "onboard", "--reset"), "Onboarding reset")

	closeSession()
	assert.Contains(t, run(t, out, errOut, "onboard"), "Welcome to gridlex!")
}
