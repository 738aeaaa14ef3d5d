// Package app wires the store, session, locale, API client and router into one value
// shared by the CLI commands and the TUI.
package app

import (
	"context"
	"fmt"
	"net/http"

	"userdir-cli/internal/api"
	"userdir-cli/internal/config"
	"userdir-cli/internal/directory"
	"userdir-cli/internal/locale"
	"userdir-cli/internal/logging"
	"userdir-cli/internal/model"
	"userdir-cli/internal/nav"
	"userdir-cli/internal/pages"
	"userdir-cli/internal/route"
	"userdir-cli/internal/session"
	"userdir-cli/internal/store"
)

type Options struct {
	Config config.Config
	Logger logging.Logger
	// HTTPClient is handed to the API client; nil means http.DefaultClient.
	HTTPClient *http.Client
	// Ephemeral keeps all state in memory for this run.
	Ephemeral bool
}

type App struct {
	Config  config.Config
	Log     logging.Logger
	Store   store.Handle
	Session *session.Session
	Locale  *locale.Manager
	API     *api.Client
	Router  *route.Router
	Nav     *nav.Tracker
}

func New(ctx context.Context, opts Options) (*App, error) {
	cfg := opts.Config
	log := logging.OrNop(opts.Logger)

	backend := cfg.Storage.Backend
	if opts.Ephemeral {
		backend = store.BackendMemory
	}
	h, err := store.Open(ctx, backend, cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	a := &App{Config: cfg, Log: log, Store: h}

	a.Session = session.New(h, session.WithLogger(log))
	st, err := a.Session.Initialize()
	if err != nil {
		_ = h.Close()
		return nil, fmt.Errorf("initialize session: %w", err)
	}

	a.Locale = locale.NewManager(h)
	code, err := a.Locale.Load(cfg.Locale.Default)
	if err != nil {
		_ = h.Close()
		return nil, fmt.Errorf("load locale: %w", err)
	}

	apiOpts := []api.Option{api.WithLanguage(a.Locale.Current), api.WithLogger(log)}
	if opts.HTTPClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(opts.HTTPClient))
	}
	a.API = api.New(cfg.API.URL, apiOpts...)

	a.Router = route.NewRouter()
	a.Router.SetGuard(GuestOnly(a.Session))
	a.Nav = nav.NewTracker(a.Session)

	log.Debugw("app ready", "backend", backend, "dir", cfg.Storage.Dir, "loggedIn", st.IsLoggedIn, "lang", code)
	return a, nil
}

// GuestOnly keeps logged-in users away from the login and sign-up pages.
func GuestOnly(s interface{ State() model.SessionState }) route.Guard {
	return func(r route.Route, matched bool) (string, bool) {
		if !matched || !s.State().IsLoggedIn {
			return "", false
		}
		if r.Kind == route.Login || r.Kind == route.SignUp {
			return "/", true
		}
		return "", false
	}
}

func (a *App) T(key string) string { return a.Locale.T(key) }

func (a *App) LoginForm() *pages.LoginForm {
	return pages.NewLoginForm(a.API, a.Session, a.Router, a.T)
}

func (a *App) SignUpForm() *pages.SignUpForm {
	return pages.NewSignUpForm(a.API, a.T)
}

func (a *App) Activation(token string) *pages.Activation {
	return pages.NewActivation(a.API, token, a.T)
}

func (a *App) Profile(id int64) *pages.Profile {
	return pages.NewProfile(a.API, id, a.T)
}

func (a *App) Directory() *directory.Fetcher {
	return directory.New(a.API)
}

func (a *App) Logout() error {
	return pages.Logout(a.Session, a.Router)
}

func (a *App) Close() error {
	a.Nav.Close()
	_ = a.Log.Sync()
	return a.Store.Close()
}
