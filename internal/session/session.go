// Package session holds the client-side authentication state and mirrors every change to durable storage.
package session

import (
	"fmt"
	"sync"

	"userdir-cli/internal/logging"
	"userdir-cli/internal/model"
	"userdir-cli/internal/store"
)

type Observer = func(model.SessionState)

type Option func(*Session)

func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.log = logging.OrNop(l) }
}

// Session is the single shared mutable authentication state.
//
// Mutations are write-through: the new value is written to the store before it becomes
// visible in memory, so readers never observe memory and storage disagreeing. Concurrent
// writers are serialized and none is rejected.
type Session struct {
	kv  store.KV
	log logging.Logger

	mu        sync.Mutex
	state     model.SessionState
	observers []subscriber
	nextObsID int
	version   uint64
	delivered uint64

	notifyMu sync.Mutex
}

type subscriber struct {
	id int
	fn Observer
}

func New(kv store.KV, opts ...Option) *Session {
	s := &Session{
		kv:    kv,
		log:   logging.Nop(),
		state: model.LoggedOut(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Initialize loads the persisted session once. Absent or malformed values fall back to logged out.
func (s *Session) Initialize() (model.SessionState, error) {
	var stored model.SessionState
	next := model.LoggedOut()
	if s.kv.Get(store.KeyAuth, &stored) && stored.Valid() {
		next = stored.Clone()
	} else {
		s.log.Debugw("no usable persisted session; starting logged out")
	}
	if err := s.commit(next); err != nil {
		return s.State(), err
	}
	return next.Clone(), nil
}

func (s *Session) OnLoginSuccess(id model.Identity) error {
	return s.commit(model.LoggedIn(id))
}

// Reset returns to the logged-out default (logout).
func (s *Session) Reset() error {
	return s.commit(model.LoggedOut())
}

func (s *Session) State() model.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers fn to run synchronously, in registration order, after every mutation.
// A mutation made while observers are running is delivered once the running round ends, so an
// observer may itself mutate the session.
func (s *Session) Subscribe(fn Observer) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextObsID
	s.nextObsID++
	s.observers = append(s.observers, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			for i, sub := range s.observers {
				if sub.id == id {
					s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
					break
				}
			}
			s.mu.Unlock()
		})
	}
}

func (s *Session) commit(next model.SessionState) error {
	s.mu.Lock()
	if err := s.kv.Set(store.KeyAuth, next); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persist session: %w", err)
	}
	s.state = next.Clone()
	s.version++
	s.mu.Unlock()

	s.log.Debugw("session updated", "loggedIn", next.IsLoggedIn)
	s.deliver()
	return nil
}

// deliver runs observers until they have seen the latest state. When another call is already
// delivering, including an observer further up this stack, that call picks up the new state
// after its current round.
func (s *Session) deliver() {
	for s.notifyMu.TryLock() {
		for {
			s.mu.Lock()
			if s.delivered == s.version {
				s.mu.Unlock()
				break
			}
			s.delivered = s.version
			st := s.state.Clone()
			obs := make([]Observer, 0, len(s.observers))
			for _, sub := range s.observers {
				obs = append(obs, sub.fn)
			}
			s.mu.Unlock()

			for _, fn := range obs {
				fn(st.Clone())
			}
		}
		s.notifyMu.Unlock()

		s.mu.Lock()
		done := s.delivered == s.version
		s.mu.Unlock()
		if done {
			return
		}
	}
}
