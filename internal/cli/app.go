package cli

import (
	"fmt"

	"github.com/user/gridlex/internal/context"
	"github.com/user/gridlex/internal/fixtures"
	"github.com/user/gridlex/internal/model"
	"github.com/user/gridlex/internal/prefs"
	"github.com/user/gridlex/internal/store"
	"github.com/user/gridlex/internal/viewconfig"
)

// App is the state a command works against. One-shot commands build a
// fresh App; the shell keeps one for the whole session.
type App struct {
	Ctx     *context.Context
	Records *store.Store
	Configs *viewconfig.Store

	prefs       *prefs.Store
	unsubscribe func()
}

// session is the App shared by commands run in the same process.
var session *App

// NewApp resolves the context and loads the dataset.
func NewApp(actorFlag, dataDirFlag, dataFlag string) (*App, error) {
	ctx, err := context.Resolve(actorFlag, dataDirFlag, dataFlag)
	if err != nil {
		return nil, err
	}

	data, err := loadDataset(ctx.DataFile)
	if err != nil {
		return nil, err
	}

	app := &App{
		Ctx:     ctx,
		Records: store.New(data),
		Configs: viewconfig.NewStore(),
	}
	app.unsubscribe = app.Records.Subscribe(func(ev store.Event) {
		logger.Debug("store event", "kind", ev.Kind, "table", ev.Table, "ids", ev.IDs)
	})
	logger.Debug("session started", "actor", ctx.Actor, "data", ctx.DataFile, "records", data.Len())
	return app, nil
}

func loadDataset(path string) (model.Dataset, error) {
	if path == "" {
		return fixtures.Default(), nil
	}
	data, err := fixtures.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return data, nil
}

// Prefs opens the preference database on first use.
func (a *App) Prefs() (*prefs.Store, error) {
	if a.prefs == nil {
		p, err := prefs.Open(a.Ctx.DataDir)
		if err != nil {
			return nil, err
		}
		a.prefs = p
	}
	return a.prefs, nil
}

// Close releases the preference database.
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if a.prefs != nil {
		err := a.prefs.Close()
		a.prefs = nil
		return err
	}
	return nil
}

// getApp returns the session App, creating it when there is none or when
// the dataset or data directory flags changed since it was created.
func getApp() (*App, error) {
	if session != nil {
		sameData := GetDataFile() == session.Ctx.DataFile
		sameDir := GetDataDir() == "" || GetDataDir() == session.Ctx.DataDir
		if sameData && sameDir {
			session.Ctx.Actor = context.ResolveActor(GetActorName())
			return session, nil
		}
		closeSession()
	}

	app, err := NewApp(GetActorName(), GetDataDir(), GetDataFile())
	if err != nil {
		return nil, err
	}
	session = app
	return app, nil
}

func closeSession() {
	if session != nil {
		if err := session.Close(); err != nil {
			logger.Warn("failed to close session", "error", err)
		}
		session = nil
	}
}

// requireApp returns the session App or reports the failure and exits.
func requireApp() (*App, bool) {
	app, err := getApp()
	if err != nil {
		ExitWithError(1, ErrCodeValidation, err.Error(), nil)
		return nil, false
	}
	return app, true
}
