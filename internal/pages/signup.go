package pages

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/semaphore"

	"userdir-cli/internal/api"
	"userdir-cli/internal/locale"
	"userdir-cli/internal/model"
)

const (
	FieldUsername       = "username"
	FieldPasswordRepeat = "passwordRepeat"
)

var validate = validator.New()

type passwordPair struct {
	Password       string `validate:"required"`
	PasswordRepeat string `validate:"eqfield=Password"`
}

type SignUpForm struct {
	Errors FieldErrors

	reg      Registrar
	t        Translator
	inflight *semaphore.Weighted

	mu             sync.Mutex
	username       string
	email          string
	password       string
	passwordRepeat string
	submitting     bool
	done           bool
}

func NewSignUpForm(reg Registrar, t Translator) *SignUpForm {
	return &SignUpForm{reg: reg, t: orEnglish(t), inflight: semaphore.NewWeighted(1)}
}

func (f *SignUpForm) SetField(field, value string) {
	f.mu.Lock()
	switch field {
	case FieldUsername:
		f.username = value
	case FieldEmail:
		f.email = value
	case FieldPassword:
		f.password = value
	case FieldPasswordRepeat:
		f.passwordRepeat = value
	default:
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()
	f.Errors.Edit(field)
}

func (f *SignUpForm) Field(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch field {
	case FieldUsername:
		return f.username
	case FieldEmail:
		return f.email
	case FieldPassword:
		return f.password
	case FieldPasswordRepeat:
		return f.passwordRepeat
	}
	return ""
}

// PasswordMismatch returns the message to show under the repeat field, or "".
func (f *SignUpForm) PasswordMismatch() string {
	f.mu.Lock()
	p, r := f.password, f.passwordRepeat
	f.mu.Unlock()
	if p == r {
		return ""
	}
	return f.t(locale.MsgPasswordMismatch)
}

// CanSubmit is true when the passwords are filled and match, and nothing is outstanding.
func (f *SignUpForm) CanSubmit() bool {
	f.mu.Lock()
	pair := passwordPair{Password: f.password, PasswordRepeat: f.passwordRepeat}
	busy := f.submitting || f.done
	f.mu.Unlock()
	if busy {
		return false
	}
	return validate.Struct(pair) == nil
}

func (f *SignUpForm) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Done reports a successful sign-up; the form is replaced by the activation notice.
func (f *SignUpForm) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}

func (f *SignUpForm) Submit(ctx context.Context) (sent bool, err error) {
	if !f.CanSubmit() || !f.inflight.TryAcquire(1) {
		return false, nil
	}
	defer f.inflight.Release(1)

	f.mu.Lock()
	f.submitting = true
	req := model.SignUpRequest{
		Username: strings.TrimSpace(f.username),
		Email:    strings.TrimSpace(f.email),
		Password: f.password,
	}
	f.mu.Unlock()

	err = f.reg.SignUp(ctx, req)

	f.mu.Lock()
	f.submitting = false
	if err == nil {
		f.done = true
	}
	f.mu.Unlock()

	if err == nil {
		return true, nil
	}
	if fields := api.ValidationErrors(err); len(fields) > 0 {
		for field, msg := range fields {
			f.Errors.Set(field, msg)
		}
		return true, err
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		f.Errors.Set(KeyRequest, apiErr.Message, FieldUsername, FieldEmail, FieldPassword, FieldPasswordRepeat)
		return true, err
	}
	f.Errors.Set(KeyRequest, f.t(locale.MsgRequestFailed), FieldUsername, FieldEmail, FieldPassword, FieldPasswordRepeat)
	return true, err
}
