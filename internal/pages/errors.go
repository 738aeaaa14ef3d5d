package pages

import (
	"sort"
	"sync"
)

// FieldErrors holds messages keyed by error key. Each key is bound to the fields whose edit clears it.
type FieldErrors struct {
	mu    sync.Mutex
	msgs  map[string]string
	bound map[string][]string
}

// Set records msg under key. With no fields the key is bound to a field of the same name.
func (e *FieldErrors) Set(key, msg string, fields ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.msgs == nil {
		e.msgs = map[string]string{}
		e.bound = map[string][]string{}
	}
	if len(fields) == 0 {
		fields = []string{key}
	}
	e.msgs[key] = msg
	e.bound[key] = append([]string(nil), fields...)
}

func (e *FieldErrors) Get(key string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.msgs[key]
}

// Edit clears every key bound to field and nothing else.
func (e *FieldErrors) Edit(field string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for key, fields := range e.bound {
		for _, f := range fields {
			if f == field {
				delete(e.msgs, key)
				delete(e.bound, key)
				break
			}
		}
	}
}

func (e *FieldErrors) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.msgs)
}

// All returns a copy of every message.
func (e *FieldErrors) All() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]string, len(e.msgs))
	for k, v := range e.msgs {
		out[k] = v
	}
	return out
}

func (e *FieldErrors) Keys() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.msgs))
	for k := range e.msgs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
