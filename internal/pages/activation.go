package pages

import (
	"context"
	"sync"

	"userdir-cli/internal/api"
	"userdir-cli/internal/locale"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusFailed
	StatusNotFound
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusNotFound:
		return "not-found"
	}
	return "idle"
}

// Activation sends the token once per mount and remembers the outcome.
type Activation struct {
	api   Activator
	t     Translator
	token string

	once sync.Once
	mu   sync.Mutex
	torn bool
	st   Status
	msg  string
}

func NewActivation(a Activator, token string, t Translator) *Activation {
	return &Activation{api: a, token: token, t: orEnglish(t)}
}

func (a *Activation) Token() string { return a.token }

// Mount sends the request on the first call only. Later calls are no-ops.
func (a *Activation) Mount(ctx context.Context) {
	a.once.Do(func() {
		a.mu.Lock()
		a.st = StatusLoading
		a.mu.Unlock()

		err := a.api.Activate(ctx, a.token)

		a.mu.Lock()
		defer a.mu.Unlock()
		if a.torn {
			return
		}
		switch {
		case err == nil:
			a.st, a.msg = StatusSuccess, a.t(locale.MsgAccountActivated)
		case api.Message(err) != "":
			a.st, a.msg = StatusFailed, api.Message(err)
		default:
			a.st, a.msg = StatusFailed, a.t(locale.MsgRequestFailed)
		}
	})
}

func (a *Activation) Unmount() {
	a.mu.Lock()
	a.torn = true
	a.mu.Unlock()
}

func (a *Activation) State() (Status, string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.st, a.msg
}
