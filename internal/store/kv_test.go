package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rawSetter interface {
	SetRaw(key, raw string) error
}

type testKV interface {
	KV
	Inspector
	rawSetter
}

func backends(t *testing.T) map[string]func(dir string) testKV {
	t.Helper()
	return map[string]func(dir string) testKV{
		"sqlite": func(dir string) testKV {
			s, err := OpenSQLite(context.Background(), dir)
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
		"file": func(dir string) testKV {
			f, err := OpenFile(dir)
			require.NoError(t, err)
			return f
		},
		"memory": func(string) testKV { return NewMemory() },
	}
}

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestKV_SetGetRoundTrip(t *testing.T) {
	t.Parallel()

	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			kv := open(t.TempDir())

			var got sample
			assert.False(t, kv.Get("missing", &got))

			want := sample{Name: "a", Count: 2}
			require.NoError(t, kv.Set("k", want))
			require.True(t, kv.Get("k", &got))
			assert.Equal(t, want, got)

			require.NoError(t, kv.Set("k", sample{Name: "b"}))
			require.True(t, kv.Get("k", &got))
			assert.Equal(t, "b", got.Name)

			keys, err := kv.Keys()
			require.NoError(t, err)
			assert.Equal(t, []string{"k"}, keys)
		})
	}
}

func TestKV_MalformedTextBehavesAsAbsent(t *testing.T) {
	t.Parallel()

	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			kv := open(t.TempDir())
			require.NoError(t, kv.SetRaw("auth", "{not json"))

			var got sample
			assert.False(t, kv.Get("auth", &got))

			raw, ok := kv.GetRaw("auth")
			assert.True(t, ok)
			assert.Equal(t, "{not json", raw)
		})
	}
}

func TestKV_EmptyKeyRejected(t *testing.T) {
	t.Parallel()

	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			kv := open(t.TempDir())
			assert.Error(t, kv.Set("  ", 1))
			var v int
			assert.False(t, kv.Get("", &v))
		})
	}
}

func TestKV_DurableAcrossReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	s, err := OpenSQLite(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyLang, "hu"))
	require.NoError(t, s.Close())

	s2, err := OpenSQLite(ctx, dir)
	require.NoError(t, err)
	defer s2.Close()
	var lang string
	require.True(t, s2.Get(KeyLang, &lang))
	assert.Equal(t, "hu", lang)

	f, err := OpenFile(dir)
	require.NoError(t, err)
	require.NoError(t, f.Set(KeyLang, "en"))
	f2, err := OpenFile(dir)
	require.NoError(t, err)
	require.True(t, f2.Get(KeyLang, &lang))
	assert.Equal(t, "en", lang)
}

func TestFile_CorruptDocumentIsEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileStoreName), []byte("garbage"), 0o600))

	f, err := OpenFile(dir)
	require.NoError(t, err)
	var v string
	assert.False(t, f.Get(KeyAuth, &v))

	// A write recovers the document.
	require.NoError(t, f.Set(KeyAuth, "x"))
	require.True(t, f.Get(KeyAuth, &v))
	assert.Equal(t, "x", v)
}

func TestOpen_Backends(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	for _, b := range []string{"", BackendSQLite, BackendFile, BackendMemory} {
		h, err := Open(ctx, b, t.TempDir())
		require.NoError(t, err, b)
		require.NoError(t, h.Set("k", 1), b)
		var v int
		assert.True(t, h.Get("k", &v), b)
		assert.NoError(t, h.Close(), b)
	}

	_, err := Open(ctx, "redis", t.TempDir())
	assert.Error(t, err)
}
