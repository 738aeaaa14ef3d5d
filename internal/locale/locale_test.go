package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdir-cli/internal/store"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"en":    "en",
		"en-GB": "en",
		"en_US": "en",
		"hu":    "hu",
		"hu-HU": "hu",
	}
	for in, want := range cases {
		got, err := Normalize(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "ja", "not a tag!"} {
		_, err := Normalize(bad)
		assert.Error(t, err, bad)
	}
}

func TestManager_PersistsUnderLangKey(t *testing.T) {
	t.Parallel()

	kv := store.NewMemory()
	m := NewManager(kv)
	code, err := m.Load("")
	require.NoError(t, err)
	assert.Equal(t, "en", code)

	require.NoError(t, m.Set("hu-HU"))
	assert.Equal(t, "hu", m.Current())
	var stored string
	require.True(t, kv.Get(store.KeyLang, &stored))
	assert.Equal(t, "hu", stored)

	// A fresh manager over the same store picks it up.
	m2 := NewManager(kv)
	code, err = m2.Load("en")
	require.NoError(t, err)
	assert.Equal(t, "hu", code)
	assert.Equal(t, "Bejelentkezés", m2.T(MsgLogin))
}

func TestManager_LoadIgnoresGarbage(t *testing.T) {
	t.Parallel()

	kv := store.NewMemory()
	require.NoError(t, kv.SetRaw(store.KeyLang, `"klingon"`))
	m := NewManager(kv)
	code, err := m.Load("hu")
	require.NoError(t, err)
	assert.Equal(t, "hu", code)
}

func TestManager_ToggleAndReset(t *testing.T) {
	t.Parallel()

	m := NewManager(store.NewMemory())
	var seen []string
	m.OnChange(func(c string) { seen = append(seen, c) })

	next, err := m.Toggle()
	require.NoError(t, err)
	assert.Equal(t, "hu", next)
	next, err = m.Toggle()
	require.NoError(t, err)
	assert.Equal(t, "en", next)

	require.NoError(t, m.Set("hu"))
	require.NoError(t, m.Reset())
	assert.Equal(t, "en", m.Current())
	assert.Equal(t, []string{"hu", "en", "hu", "en"}, seen)
}

func TestLookup_FallsBack(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Login", Lookup("en", MsgLogin))
	assert.Equal(t, "Login", Lookup("xx", MsgLogin))
	assert.Equal(t, "nope", Lookup("hu", "nope"))
}

func TestManager_ListenerAddedDuringChangeWaitsForNextChange(t *testing.T) {
	t.Parallel()

	m := NewManager(store.NewMemory())
	var late []string
	added := false
	m.OnChange(func(string) {
		if !added {
			added = true
			m.OnChange(func(c string) { late = append(late, c) })
		}
	})

	require.NoError(t, m.Set("hu"))
	assert.Empty(t, late)
	require.NoError(t, m.Set("en"))
	assert.Equal(t, []string{"en"}, late)
}
