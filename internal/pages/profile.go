package pages

import (
	"context"
	"sync"

	"userdir-cli/internal/api"
	"userdir-cli/internal/locale"
	"userdir-cli/internal/model"
)

// Profile loads a single user once per mount.
type Profile struct {
	api UserLoader
	t   Translator
	id  int64

	once sync.Once
	mu   sync.Mutex
	torn bool
	st   Status
	user *model.UserSummary
	msg  string
}

func NewProfile(l UserLoader, id int64, t Translator) *Profile {
	return &Profile{api: l, id: id, t: orEnglish(t)}
}

func (p *Profile) ID() int64 { return p.id }

func (p *Profile) Mount(ctx context.Context) {
	p.once.Do(func() {
		p.mu.Lock()
		p.st = StatusLoading
		p.mu.Unlock()

		u, err := p.api.GetUser(ctx, p.id)

		p.mu.Lock()
		defer p.mu.Unlock()
		if p.torn {
			return
		}
		switch {
		case err == nil:
			p.st, p.user = StatusSuccess, &u
		case api.IsNotFound(err):
			p.st, p.msg = StatusNotFound, api.Message(err)
			if p.msg == "" {
				p.msg = p.t(locale.MsgNotFound)
			}
		case api.Message(err) != "":
			p.st, p.msg = StatusFailed, api.Message(err)
		default:
			p.st, p.msg = StatusFailed, p.t(locale.MsgRequestFailed)
		}
	})
}

func (p *Profile) Unmount() {
	p.mu.Lock()
	p.torn = true
	p.mu.Unlock()
}

// State returns the status, the loaded user (nil until success) and any message.
func (p *Profile) State() (Status, *model.UserSummary, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.user == nil {
		return p.st, nil, p.msg
	}
	u := *p.user
	return p.st, &u, p.msg
}
