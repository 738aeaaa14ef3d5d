// Package directory pages through the user directory one request at a time.
package directory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"userdir-cli/internal/model"
)

var (
	// ErrBusy is returned by FetchPage while another page request is outstanding.
	ErrBusy = errors.New("directory: page request already in flight")
	// ErrPageOutOfRange rejects negative pages and pages past the known total.
	ErrPageOutOfRange = errors.New("directory: page out of range")
	// ErrUnmounted reports a response that arrived after Unmount and was discarded.
	ErrUnmounted = errors.New("directory: view unmounted")
)

type PageSource interface {
	ListUsers(ctx context.Context, page int) (model.PageResult, error)
}

// Snapshot is a consistent read of the fetcher state.
type Snapshot struct {
	Result      *model.PageResult
	CurrentPage int
	HasNext     bool
	HasPrevious bool
	Loading     bool
	Err         error
}

// Fetcher holds the current page and cursor. At most one request is in flight per Fetcher;
// overlapping Next/Previous calls are dropped rather than queued.
type Fetcher struct {
	src      PageSource
	inflight *semaphore.Weighted

	mu      sync.Mutex
	result  *model.PageResult
	current int
	loading bool
	err     error
	mounted bool
	torn    bool
}

func New(src PageSource) *Fetcher {
	return &Fetcher{src: src, inflight: semaphore.NewWeighted(1)}
}

// Mount fetches page 0. Only the first call issues a request.
func (f *Fetcher) Mount(ctx context.Context) error {
	f.mu.Lock()
	if f.mounted {
		f.mu.Unlock()
		return nil
	}
	f.mounted = true
	f.mu.Unlock()
	return f.FetchPage(ctx, 0)
}

// Unmount tears the fetcher down; an in-flight response is discarded when it lands.
func (f *Fetcher) Unmount() {
	f.mu.Lock()
	f.torn = true
	f.mu.Unlock()
}

// FetchPage requests page and, on success, replaces the current result and cursor.
// On failure the previous result and cursor are kept.
func (f *Fetcher) FetchPage(ctx context.Context, page int) error {
	f.mu.Lock()
	if f.torn {
		f.mu.Unlock()
		return ErrUnmounted
	}
	if page < 0 || (f.result != nil && page > 0 && page >= f.result.TotalPages) {
		f.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrPageOutOfRange, page)
	}
	if !f.inflight.TryAcquire(1) {
		f.mu.Unlock()
		return ErrBusy
	}
	f.loading = true
	f.mu.Unlock()
	defer f.inflight.Release(1)

	res, err := f.src.ListUsers(ctx, page)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if f.torn {
		return ErrUnmounted
	}
	if err != nil {
		f.err = err
		return err
	}
	if res.Items == nil {
		res.Items = []model.UserSummary{}
	}
	f.result = &res
	f.current = page
	f.err = nil
	return nil
}

// Next fetches the following page. It reports false without a request when there is no next
// page or a request is already outstanding.
func (f *Fetcher) Next(ctx context.Context) (bool, error) {
	return f.step(ctx, 1)
}

// Previous is the mirror of Next.
func (f *Fetcher) Previous(ctx context.Context) (bool, error) {
	return f.step(ctx, -1)
}

func (f *Fetcher) step(ctx context.Context, delta int) (bool, error) {
	f.mu.Lock()
	ok := !f.loading && !f.torn
	if delta > 0 {
		ok = ok && f.hasNextLocked()
	} else {
		ok = ok && f.current > 0
	}
	target := f.current + delta
	f.mu.Unlock()
	if !ok {
		return false, nil
	}

	err := f.FetchPage(ctx, target)
	if errors.Is(err, ErrBusy) {
		return false, nil
	}
	return true, err
}

func (f *Fetcher) hasNextLocked() bool {
	return f.result != nil && f.current+1 < f.result.TotalPages
}

func (f *Fetcher) HasNext() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasNextLocked()
}

func (f *Fetcher) HasPrevious() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current > 0
}

func (f *Fetcher) CurrentPage() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *Fetcher) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := Snapshot{
		CurrentPage: f.current,
		HasNext:     f.hasNextLocked(),
		HasPrevious: f.current > 0,
		Loading:     f.loading,
		Err:         f.err,
	}
	if f.result != nil {
		cp := *f.result
		cp.Items = append([]model.UserSummary(nil), f.result.Items...)
		s.Result = &cp
	}
	return s
}
