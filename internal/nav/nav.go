// Package nav derives the navigation bar from the session.
package nav

import (
	"slices"
	"sync"

	"userdir-cli/internal/model"
	"userdir-cli/internal/route"
)

type Links struct {
	ShowLogin       bool    `json:"showLogin"`
	ShowSignUp      bool    `json:"showSignUp"`
	ShowProfileLink bool    `json:"showProfileLink"`
	ProfileHref     *string `json:"profileHref"`
}

// Resolve is a pure function of the session.
func Resolve(s model.SessionState) Links {
	if !s.IsLoggedIn || s.ID == nil {
		return Links{ShowLogin: true, ShowSignUp: true}
	}
	href := route.UserPath(*s.ID)
	return Links{ShowProfileLink: true, ProfileHref: &href}
}

// SessionSource is the part of session.Session the tracker needs.
type SessionSource interface {
	State() model.SessionState
	Subscribe(func(model.SessionState)) (unsubscribe func())
}

// Tracker keeps Links current by recomputing on every session change.
type Tracker struct {
	mu        sync.Mutex
	links     Links
	listeners []func(Links)
	stop      func()
}

func NewTracker(src SessionSource) *Tracker {
	t := &Tracker{links: Resolve(src.State())}
	t.stop = src.Subscribe(func(s model.SessionState) {
		l := Resolve(s)
		t.mu.Lock()
		t.links = l
		ls := slices.Clone(t.listeners)
		t.mu.Unlock()
		for _, fn := range ls {
			fn(l)
		}
	})
	return t
}

func (t *Tracker) Links() Links {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.links
}

// OnChange registers fn to run after each recomputation.
func (t *Tracker) OnChange(fn func(Links)) {
	if fn == nil {
		return
	}
	t.mu.Lock()
	t.listeners = append(t.listeners, fn)
	t.mu.Unlock()
}

func (t *Tracker) Close() {
	if t.stop != nil {
		t.stop()
	}
}
