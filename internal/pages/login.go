package pages

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"userdir-cli/internal/api"
	"userdir-cli/internal/locale"
	"userdir-cli/internal/model"
)

const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

type LoginForm struct {
	Errors FieldErrors

	auth     Authenticator
	sess     SessionWriter
	nav      Navigator
	t        Translator
	inflight *semaphore.Weighted

	mu         sync.Mutex
	email      string
	password   string
	submitting bool
}

func NewLoginForm(auth Authenticator, sess SessionWriter, nav Navigator, t Translator) *LoginForm {
	return &LoginForm{auth: auth, sess: sess, nav: nav, t: orEnglish(t), inflight: semaphore.NewWeighted(1)}
}

// SetField updates a field and clears the errors bound to it.
func (f *LoginForm) SetField(field, value string) {
	f.mu.Lock()
	switch field {
	case FieldEmail:
		f.email = value
	case FieldPassword:
		f.password = value
	default:
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()
	f.Errors.Edit(field)
}

func (f *LoginForm) Field(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch field {
	case FieldEmail:
		return f.email
	case FieldPassword:
		return f.password
	}
	return ""
}

// CanSubmit mirrors the button: both fields filled and no request outstanding.
func (f *LoginForm) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return strings.TrimSpace(f.email) != "" && f.password != "" && !f.submitting
}

func (f *LoginForm) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Submit sends the credentials. A second call while one is outstanding returns sent=false
// without touching the network. On success the session is updated and the router sent home.
func (f *LoginForm) Submit(ctx context.Context) (sent bool, err error) {
	if !f.CanSubmit() || !f.inflight.TryAcquire(1) {
		return false, nil
	}
	defer f.inflight.Release(1)

	f.mu.Lock()
	f.submitting = true
	creds := model.Credentials{Email: strings.TrimSpace(f.email), Password: f.password}
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	id, err := f.auth.Login(ctx, creds)
	if err != nil {
		if msg := api.Message(err); msg != "" && !api.IsTransport(err) {
			f.Errors.Set(KeyCredentials, msg, FieldEmail)
		} else {
			f.Errors.Set(KeyRequest, f.t(locale.MsgRequestFailed), FieldEmail, FieldPassword)
		}
		return true, err
	}
	if err := f.sess.OnLoginSuccess(id); err != nil {
		return true, err
	}
	if f.nav != nil {
		f.nav.Navigate("/")
	}
	return true, nil
}
