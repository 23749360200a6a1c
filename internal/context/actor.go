// Package context resolves the runtime context of the gridlex CLI: who is
// acting and where preferences and datasets live.
package context

import "os"

// ResolveActor returns the actor name following priority order:
// 1. flagValue (--actor flag) if non-empty
// 2. $GRIDLEX_ACTOR environment variable if set
// 3. $USER environment variable if set
// 4. "unknown" as fallback
func ResolveActor(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if actor := os.Getenv("GRIDLEX_ACTOR"); actor != "" {
		return actor
	}

	if user := os.Getenv("USER"); user != "" {
		return user
	}

	return "unknown"
}
