// Package pages holds the view state behind each route: forms, activation and the profile page.
package pages

import (
	"context"

	"userdir-cli/internal/locale"
	"userdir-cli/internal/model"
	"userdir-cli/internal/route"
)

type Authenticator interface {
	Login(ctx context.Context, creds model.Credentials) (model.Identity, error)
}

type Registrar interface {
	SignUp(ctx context.Context, req model.SignUpRequest) error
}

type Activator interface {
	Activate(ctx context.Context, token string) error
}

type UserLoader interface {
	GetUser(ctx context.Context, id int64) (model.UserSummary, error)
}

type SessionWriter interface {
	OnLoginSuccess(id model.Identity) error
}

type Navigator interface {
	Navigate(path string) route.Change
}

// Translator resolves a locale message key.
type Translator func(key string) string

func orEnglish(t Translator) Translator {
	if t == nil {
		return func(key string) string { return locale.Lookup(locale.Default, key) }
	}
	return t
}

// Error keys that are not field names.
const (
	KeyCredentials = "credentials"
	KeyRequest     = "request"
)
