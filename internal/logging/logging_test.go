package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "userdir.log")
	l, err := New(Options{Level: "debug", File: path})
	require.NoError(t, err)

	l.Infow("session changed", "loggedIn", true)
	_ = l.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "session changed")
	assert.Contains(t, string(b), "INFO")
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestOrNop(t *testing.T) {
	t.Parallel()

	l := OrNop(nil)
	require.NotNil(t, l)
	l.Debugf("ignored %d", 1)
}
