package cli

import (
	"context"
	"fmt"

	"bookworm/internal/api"
	"bookworm/internal/config"
	"bookworm/internal/session"
	"bookworm/internal/store"
)

// App wires the client's collaborators for one command invocation:
// config, the local store, the API client, and the session store.
type App struct {
	Config  config.Config
	Store   *store.Store
	Client  *api.Client
	Session *session.Store
}

// openApp builds an App from the root options. Callers must Close it.
func openApp(ctx context.Context, opts *RootOptions) (*App, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	clientID, err := st.ClientID(ctx)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("client id: %w", err)
	}

	timeout, err := cfg.RequestTimeout()
	if err != nil {
		st.Close()
		return nil, err
	}

	client := api.New(cfg.APIURL)
	client.ClientID = clientID
	client.HTTPClient.Timeout = timeout

	return &App{
		Config:  cfg,
		Store:   st,
		Client:  client,
		Session: session.New(client, st),
	}, nil
}

// Close releases the App's resources.
func (a *App) Close() error {
	return a.Store.Close()
}

// requireSession loads the persisted session and fails with a command
// error when nobody is signed in.
func (a *App) requireSession(ctx context.Context) error {
	a.Session.CheckAuth(ctx)
	if a.Session.Token() == "" {
		return NewExitError(ExitCommandError, "not logged in (run 'bookworm login' first)")
	}
	return nil
}
