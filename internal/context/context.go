package context

import "errors"

// Context holds the resolved runtime context for gridlex CLI commands.
type Context struct {
	Actor    string // Resolved actor name
	DataDir  string // Preferences directory (may not exist yet)
	DataFile string // Dataset file; empty means the embedded mock data
}

// ErrNoDataDir is returned when no data directory can be determined.
var ErrNoDataDir = errors.New("no data directory found (use --data-dir)")

// Resolve builds the context from flag values. An empty dataDirFlag
// falls back to the nearest .gridlex directory, then to ~/.gridlex.
func Resolve(actorFlag, dataDirFlag, dataFlag string) (*Context, error) {
	ctx := &Context{
		Actor:    ResolveActor(actorFlag),
		DataDir:  dataDirFlag,
		DataFile: dataFlag,
	}

	if ctx.DataDir == "" {
		ctx.DataDir = FindDataDir()
	}
	if ctx.DataDir == "" {
		ctx.DataDir = HomeDataDir()
	}
	if ctx.DataDir == "" {
		return nil, ErrNoDataDir
	}
	return ctx, nil
}
