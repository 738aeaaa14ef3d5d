package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdir-cli/internal/model"
	"userdir-cli/internal/session"
	"userdir-cli/internal/store"
)

func TestResolve_LoggedOut(t *testing.T) {
	t.Parallel()

	l := Resolve(model.LoggedOut())
	assert.True(t, l.ShowLogin)
	assert.True(t, l.ShowSignUp)
	assert.False(t, l.ShowProfileLink)
	assert.Nil(t, l.ProfileHref)
}

func TestTracker_FollowsLoginLogoutLogin(t *testing.T) {
	t.Parallel()

	s := session.New(store.NewMemory())
	_, err := s.Initialize()
	require.NoError(t, err)

	tr := NewTracker(s)
	defer tr.Close()
	assert.True(t, tr.Links().ShowLogin)

	require.NoError(t, s.OnLoginSuccess(model.Identity{ID: 5, Username: "user5"}))
	l := tr.Links()
	require.NotNil(t, l.ProfileHref)
	assert.Equal(t, "/user/5", *l.ProfileHref)
	assert.True(t, l.ShowProfileLink)
	assert.False(t, l.ShowLogin)
	assert.False(t, l.ShowSignUp)

	require.NoError(t, s.Reset())
	l = tr.Links()
	assert.Nil(t, l.ProfileHref)
	assert.True(t, l.ShowLogin)

	require.NoError(t, s.OnLoginSuccess(model.Identity{ID: 12, Username: "user12"}))
	l = tr.Links()
	require.NotNil(t, l.ProfileHref)
	assert.Equal(t, "/user/12", *l.ProfileHref)
}

func TestTracker_OnChange(t *testing.T) {
	t.Parallel()

	s := session.New(store.NewMemory())
	tr := NewTracker(s)
	var got []Links
	tr.OnChange(func(l Links) { got = append(got, l) })

	require.NoError(t, s.OnLoginSuccess(model.Identity{ID: 1, Username: "user1"}))
	tr.Close()
	require.NoError(t, s.Reset())

	require.Len(t, got, 1)
	assert.True(t, got[0].ShowProfileLink)
}

func TestTracker_ListenerAddedDuringNotificationWaitsForNextChange(t *testing.T) {
	t.Parallel()

	s := session.New(store.NewMemory())
	tr := NewTracker(s)
	defer tr.Close()
	var late []Links
	added := false
	tr.OnChange(func(Links) {
		if !added {
			added = true
			tr.OnChange(func(l Links) { late = append(late, l) })
		}
	})

	require.NoError(t, s.OnLoginSuccess(model.Identity{ID: 2, Username: "user2"}))
	assert.Empty(t, late)
	require.NoError(t, s.Reset())
	require.Len(t, late, 1)
	assert.True(t, late[0].ShowLogin)
}
