package store

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-json"
)

const fileStoreName = "storage.json"

// File keeps every key in a single JSON document (key -> raw text), rewritten atomically on Set.
type File struct {
	mu   sync.Mutex
	path string
}

func OpenFile(dir string) (*File, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("store: missing dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &File{path: filepath.Join(dir, fileStoreName)}, nil
}

func (f *File) Path() string { return f.path }

// load is best-effort: a missing or corrupted document is an empty store.
func (f *File) load() map[string]string {
	b, err := os.ReadFile(f.path)
	if err != nil {
		return map[string]string{}
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil || m == nil {
		return map[string]string{}
	}
	return m
}

func (f *File) Get(key string, v any) bool {
	raw, ok := f.GetRaw(key)
	if !ok {
		return false
	}
	return decode(raw, v)
}

func (f *File) GetRaw(key string) (string, bool) {
	k, err := normalizeKey(key)
	if err != nil {
		return "", false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.load()[k]
	return raw, ok
}

func (f *File) Set(key string, v any) error {
	raw, err := encode(v)
	if err != nil {
		return err
	}
	return f.SetRaw(key, raw)
}

func (f *File) SetRaw(key, raw string) error {
	k, err := normalizeKey(key)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.load()
	m[k] = raw
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(filepath.Dir(f.path), fileStoreName+".*.tmp", f.path, b, 0o600)
}

func (f *File) Keys() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.load()
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

// atomicWriteFile uses a unique temp name + rename so a concurrent CLI and TUI never see a torn file.
func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	tf, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := tf.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := tf.Write(b); err != nil {
		_ = tf.Close()
		return err
	}
	if err := tf.Sync(); err != nil {
		_ = tf.Close()
		return err
	}
	if err := tf.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
