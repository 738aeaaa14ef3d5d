package store

import (
	"context"
	"fmt"
	"strings"
)

// Handle is a KV that may own resources.
type Handle interface {
	KV
	Inspector
	Close() error
}

type nopCloser struct {
	KV
	Inspector
}

func (nopCloser) Close() error { return nil }

// Open returns the configured backend rooted at dir.
func Open(ctx context.Context, backend, dir string) (Handle, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		return OpenSQLite(ctx, dir)
	case BackendFile:
		f, err := OpenFile(dir)
		if err != nil {
			return nil, err
		}
		return nopCloser{KV: f, Inspector: f}, nil
	case BackendMemory:
		m := NewMemory()
		return nopCloser{KV: m, Inspector: m}, nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q (want sqlite|file|memory)", backend)
	}
}
