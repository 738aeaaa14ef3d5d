package route

import (
	"sync"
)

type Trigger int

const (
	TriggerLoad Trigger = iota
	TriggerPush
	TriggerPop
)

func (t Trigger) String() string {
	switch t {
	case TriggerLoad:
		return "load"
	case TriggerPush:
		return "push"
	case TriggerPop:
		return "pop"
	default:
		return "unknown"
	}
}

// Change is emitted once per navigation trigger.
type Change struct {
	Path    string
	Route   Route
	Matched bool
	Trigger Trigger
	// Generation increases with every trigger; async work tagged with an older value is stale.
	Generation uint64
}

// Guard may send a resolved route elsewhere (e.g. away from /login once logged in).
type Guard func(r Route, matched bool) (redirect string, ok bool)

// LinkEvent is an intercepted link activation.
type LinkEvent interface {
	Href() string
	PreventDefault()
}

type Listener func(Change)

// Router owns the history stack. Resolution itself is the pure Resolve.
type Router struct {
	mu        sync.Mutex
	entries   []string
	index     int
	current   Change
	started   bool
	gen       uint64
	guard     Guard
	listeners []listener
	nextID    int
}

type listener struct {
	id int
	fn Listener
}

func NewRouter() *Router {
	return &Router{index: -1}
}

// SetGuard installs g; nil removes it.
func (r *Router) SetGuard(g Guard) {
	r.mu.Lock()
	r.guard = g
	r.mu.Unlock()
}

// Subscribe registers fn to run after every trigger, in registration order.
func (r *Router) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners = append(r.listeners, listener{id: id, fn: fn})
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		for i, l := range r.listeners {
			if l.id == id {
				r.listeners = append(r.listeners[:i:i], r.listeners[i+1:]...)
				break
			}
		}
		r.mu.Unlock()
	}
}

// Start performs the initial-load resolution. Calling it again is a no-op returning the current change.
func (r *Router) Start(path string) Change {
	r.mu.Lock()
	if r.started {
		c := r.current
		r.mu.Unlock()
		return c
	}
	r.started = true
	r.entries = []string{stripLocation(path)}
	r.index = 0
	return r.resolveLocked(TriggerLoad)
}

// Navigate pushes path (dropping any forward entries) and resolves it.
func (r *Router) Navigate(path string) Change {
	r.mu.Lock()
	p := stripLocation(path)
	r.started = true
	r.entries = append(r.entries[:r.index+1], p)
	r.index = len(r.entries) - 1
	return r.resolveLocked(TriggerPush)
}

// Click handles a link activation without letting the default (full reload) happen.
func (r *Router) Click(ev LinkEvent) Change {
	ev.PreventDefault()
	return r.Navigate(ev.Href())
}

// Back moves one entry back in history. ok is false at the oldest entry.
func (r *Router) Back() (Change, bool) {
	return r.traverse(-1)
}

func (r *Router) Forward() (Change, bool) {
	return r.traverse(1)
}

func (r *Router) CanBack() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index > 0
}

func (r *Router) CanForward() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index >= 0 && r.index < len(r.entries)-1
}

func (r *Router) Current() Change {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Router) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

// History returns a copy of the entries and the current index.
func (r *Router) History() ([]string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]string(nil), r.entries...)
	return out, r.index
}

func (r *Router) traverse(delta int) (Change, bool) {
	r.mu.Lock()
	next := r.index + delta
	if next < 0 || next >= len(r.entries) {
		c := r.current
		r.mu.Unlock()
		return c, false
	}
	r.index = next
	return r.resolveLocked(TriggerPop), true
}

// resolveLocked resolves the current entry, applies the guard, notifies listeners and unlocks r.mu.
func (r *Router) resolveLocked(t Trigger) Change {
	p := r.entries[r.index]
	rt, ok := Resolve(p)
	if r.guard != nil {
		if to, redirect := r.guard(rt, ok); redirect {
			// Replace rather than push: still one route per trigger.
			p = stripLocation(to)
			r.entries[r.index] = p
			rt, ok = Resolve(p)
		}
	}
	r.gen++
	c := Change{Path: p, Route: rt, Matched: ok, Trigger: t, Generation: r.gen}
	r.current = c
	ls := make([]Listener, 0, len(r.listeners))
	for _, l := range r.listeners {
		ls = append(ls, l.fn)
	}
	r.mu.Unlock()

	for _, fn := range ls {
		fn(c)
	}
	return c
}
