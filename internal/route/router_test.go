package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	changes []Change
}

func (r *recorder) listen(c Change) { r.changes = append(r.changes, c) }

func TestRouter_EachTriggerResolvesOnce(t *testing.T) {
	t.Parallel()

	r := NewRouter()
	rec := &recorder{}
	r.Subscribe(rec.listen)

	c := r.Start("/")
	assert.Equal(t, Home, c.Route.Kind)
	assert.Equal(t, TriggerLoad, c.Trigger)
	require.Len(t, rec.changes, 1)

	// Second Start is ignored.
	r.Start("/users")
	require.Len(t, rec.changes, 1)

	r.Navigate("/users")
	r.Navigate("/user/5")
	require.Len(t, rec.changes, 3)
	assert.Equal(t, UserDetail, rec.changes[2].Route.Kind)
	assert.Equal(t, int64(5), rec.changes[2].Route.UserID)
	assert.Equal(t, TriggerPush, rec.changes[2].Trigger)

	c, ok := r.Back()
	require.True(t, ok)
	assert.Equal(t, Users, c.Route.Kind)
	assert.Equal(t, TriggerPop, c.Trigger)
	require.Len(t, rec.changes, 4)

	c, ok = r.Forward()
	require.True(t, ok)
	assert.Equal(t, UserDetail, c.Route.Kind)
	require.Len(t, rec.changes, 5)

	// Generations strictly increase.
	for i := 1; i < len(rec.changes); i++ {
		assert.Greater(t, rec.changes[i].Generation, rec.changes[i-1].Generation)
	}
}

func TestRouter_BackForwardBounds(t *testing.T) {
	t.Parallel()

	r := NewRouter()
	rec := &recorder{}
	r.Subscribe(rec.listen)
	r.Start("/")

	_, ok := r.Back()
	assert.False(t, ok)
	_, ok = r.Forward()
	assert.False(t, ok)
	assert.Len(t, rec.changes, 1)
	assert.False(t, r.CanBack())
}

func TestRouter_NavigateDropsForwardEntries(t *testing.T) {
	t.Parallel()

	r := NewRouter()
	r.Start("/")
	r.Navigate("/users")
	r.Navigate("/login")
	_, _ = r.Back()
	_, _ = r.Back()
	assert.True(t, r.CanForward())

	r.Navigate("/signup")
	entries, idx := r.History()
	assert.Equal(t, []string{"/", "/signup"}, entries)
	assert.Equal(t, 1, idx)
	assert.False(t, r.CanForward())
}

func TestRouter_StripsQueryAndFragment(t *testing.T) {
	t.Parallel()

	r := NewRouter()
	c := r.Navigate("/users?page=2#top")
	assert.True(t, c.Matched)
	assert.Equal(t, Users, c.Route.Kind)
	assert.Equal(t, "/users", c.Path)
}

func TestRouter_UnmatchedPathIsReported(t *testing.T) {
	t.Parallel()

	r := NewRouter()
	c := r.Start("/nowhere")
	assert.False(t, c.Matched)
	assert.Equal(t, "/nowhere", c.Path)
}

type fakeClick struct {
	href      string
	prevented int
}

func (f *fakeClick) Href() string    { return f.href }
func (f *fakeClick) PreventDefault() { f.prevented++ }

func TestRouter_ClickPreventsDefault(t *testing.T) {
	t.Parallel()

	r := NewRouter()
	r.Start("/")
	ev := &fakeClick{href: "/signup"}
	c := r.Click(ev)
	assert.Equal(t, 1, ev.prevented)
	assert.Equal(t, SignUp, c.Route.Kind)
	assert.True(t, r.CanBack())
}

func TestRouter_GuardRedirectReplacesEntry(t *testing.T) {
	t.Parallel()

	loggedIn := true
	r := NewRouter()
	r.SetGuard(func(rt Route, matched bool) (string, bool) {
		if loggedIn && matched && (rt.Kind == Login || rt.Kind == SignUp) {
			return "/", true
		}
		return "", false
	})
	rec := &recorder{}
	r.Subscribe(rec.listen)

	r.Start("/users")
	c := r.Navigate("/login")
	assert.Equal(t, Home, c.Route.Kind)
	assert.Equal(t, "/", c.Path)
	require.Len(t, rec.changes, 2)

	entries, _ := r.History()
	assert.Equal(t, []string{"/users", "/"}, entries)

	loggedIn = false
	c = r.Navigate("/login")
	assert.Equal(t, Login, c.Route.Kind)
}

func TestRouter_Unsubscribe(t *testing.T) {
	t.Parallel()

	r := NewRouter()
	rec := &recorder{}
	unsub := r.Subscribe(rec.listen)
	r.Start("/")
	unsub()
	r.Navigate("/users")
	assert.Len(t, rec.changes, 1)
}

func TestRouter_ListenersRunInRegistrationOrder(t *testing.T) {
	t.Parallel()

	r := NewRouter()
	var order []int
	for i := 0; i < 5; i++ {
		r.Subscribe(func(Change) { order = append(order, i) })
	}
	unsub := r.Subscribe(func(Change) { order = append(order, 99) })
	r.Subscribe(func(Change) { order = append(order, 5) })

	r.Start("/")
	assert.Equal(t, []int{0, 1, 2, 3, 4, 99, 5}, order)

	unsub()
	order = nil
	r.Navigate("/users")
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, order)
}
