package store

import (
	"sort"
	"sync"
)

// Memory is a process-local KV. Nothing survives the process.
type Memory struct {
	mu sync.Mutex
	m  map[string]string
}

func NewMemory() *Memory {
	return &Memory{m: map[string]string{}}
}

func (s *Memory) Get(key string, v any) bool {
	raw, ok := s.GetRaw(key)
	if !ok {
		return false
	}
	return decode(raw, v)
}

func (s *Memory) Set(key string, v any) error {
	raw, err := encode(v)
	if err != nil {
		return err
	}
	return s.SetRaw(key, raw)
}

// SetRaw stores text as-is; tests use it to plant corrupted values.
func (s *Memory) SetRaw(key, raw string) error {
	k, err := normalizeKey(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[k] = raw
	return nil
}

func (s *Memory) GetRaw(key string) (string, bool) {
	k, err := normalizeKey(key)
	if err != nil {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.m[k]
	return raw, ok
}

func (s *Memory) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.m))
	for k := range s.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}
