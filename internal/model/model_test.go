package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionState_Valid(t *testing.T) {
	t.Parallel()

	id := int64(3)
	assert.True(t, LoggedOut().Valid())
	assert.True(t, LoggedIn(Identity{ID: 3, Username: "user3"}).Valid())
	assert.False(t, SessionState{IsLoggedIn: true}.Valid())
	assert.False(t, SessionState{IsLoggedIn: false, ID: &id}.Valid())
}

func TestSessionState_CloneDoesNotAlias(t *testing.T) {
	t.Parallel()

	s := LoggedIn(Identity{ID: 5, Username: "user5"})
	c := s.Clone()
	require.True(t, s.Equal(c))

	*c.ID = 6
	*c.Username = "other"
	assert.Equal(t, int64(5), *s.ID)
	assert.Equal(t, "user5", *s.Username)
	assert.False(t, s.Equal(c))
}
