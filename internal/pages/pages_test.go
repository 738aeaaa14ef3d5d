package pages

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"userdir-cli/internal/api"
	"userdir-cli/internal/locale"
	"userdir-cli/internal/mockapi"
	"userdir-cli/internal/route"
	"userdir-cli/internal/session"
	"userdir-cli/internal/store"
)

const (
	timeout = 2 * time.Second
	tick    = 5 * time.Millisecond
)

type env struct {
	be     *mockapi.Server
	client *api.Client
	sess   *session.Session
	router *route.Router
}

func newEnv(t *testing.T) *env {
	t.Helper()
	be := mockapi.New(mockapi.WithBcryptCost(bcrypt.MinCost))
	ts := httptest.NewServer(be.Handler())
	t.Cleanup(ts.Close)

	sess := session.New(store.NewMemory())
	_, err := sess.Initialize()
	require.NoError(t, err)

	r := route.NewRouter()
	r.Start("/login")
	return &env{be: be, client: api.New(ts.URL), sess: sess, router: r}
}

func TestFieldErrors_EditClearsOnlyBoundKeys(t *testing.T) {
	t.Parallel()

	var fe FieldErrors
	fe.Set(KeyCredentials, "Incorrect credentials", FieldEmail)
	fe.Set(FieldUsername, "too short")
	fe.Set(KeyRequest, "failed", FieldEmail, FieldPassword)

	fe.Edit(FieldPassword)
	assert.Equal(t, "Incorrect credentials", fe.Get(KeyCredentials))
	assert.Equal(t, "too short", fe.Get(FieldUsername))
	assert.Empty(t, fe.Get(KeyRequest))

	fe.Edit(FieldEmail)
	assert.Empty(t, fe.Get(KeyCredentials))
	assert.Equal(t, []string{FieldUsername}, fe.Keys())

	fe.Edit(FieldUsername)
	assert.Zero(t, fe.Len())
}

func TestLoginForm_CanSubmit(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	f := NewLoginForm(e.client, e.sess, e.router, nil)
	assert.False(t, f.CanSubmit())
	f.SetField(FieldEmail, "user1@mail.com")
	assert.False(t, f.CanSubmit())
	f.SetField(FieldPassword, "P4ssword")
	assert.True(t, f.CanSubmit())

	sent, err := NewLoginForm(e.client, e.sess, e.router, nil).Submit(context.Background())
	assert.False(t, sent)
	assert.NoError(t, err)
	assert.Zero(t, e.be.Count(mockapi.RouteLogin))
}

func TestLoginForm_FailureBindsToEmailOnly(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.be.Seed(1)
	f := NewLoginForm(e.client, e.sess, e.router, nil)
	f.SetField(FieldEmail, "user1@mail.com")
	f.SetField(FieldPassword, "wrong")

	sent, err := f.Submit(context.Background())
	assert.True(t, sent)
	require.Error(t, err)
	assert.Equal(t, "Incorrect credentials", f.Errors.Get(KeyCredentials))
	assert.False(t, e.sess.State().IsLoggedIn)

	f.SetField(FieldPassword, "wrong2")
	assert.Equal(t, "Incorrect credentials", f.Errors.Get(KeyCredentials))

	f.SetField(FieldEmail, "user1@mail.co")
	assert.Empty(t, f.Errors.Get(KeyCredentials))
}

func TestLoginForm_SuccessUpdatesSessionAndNavigatesHome(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.be.Seed(3)
	f := NewLoginForm(e.client, e.sess, e.router, nil)
	f.SetField(FieldEmail, "user2@mail.com")
	f.SetField(FieldPassword, "P4ssword")

	sent, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, sent)

	st := e.sess.State()
	require.True(t, st.IsLoggedIn)
	assert.Equal(t, int64(2), *st.ID)
	assert.Equal(t, "user2", *st.Username)
	assert.Equal(t, "/", e.router.Current().Path)
	assert.Equal(t, route.Home, e.router.Current().Route.Kind)
}

func TestLoginForm_SecondSubmitWhileInFlightIsDropped(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.be.Seed(1)
	release := e.be.Hold()
	defer release()

	f := NewLoginForm(e.client, e.sess, e.router, nil)
	f.SetField(FieldEmail, "user1@mail.com")
	f.SetField(FieldPassword, "P4ssword")

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()
	require.Eventually(t, func() bool { return e.be.Count(mockapi.RouteLogin) == 1 }, timeout, tick)
	assert.True(t, f.Submitting())
	assert.False(t, f.CanSubmit())

	sent, err := f.Submit(context.Background())
	assert.False(t, sent)
	assert.NoError(t, err)

	release()
	require.NoError(t, <-done)
	assert.Equal(t, 1, e.be.Count(mockapi.RouteLogin))
	assert.False(t, f.Submitting())
}

func TestLoginForm_TransportFailureIsGeneric(t *testing.T) {
	t.Parallel()

	sess := session.New(store.NewMemory())
	f := NewLoginForm(api.New("http://127.0.0.1:1"), sess, nil, nil)
	f.SetField(FieldEmail, "a@b.c")
	f.SetField(FieldPassword, "x")

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, locale.Lookup("en", locale.MsgRequestFailed), f.Errors.Get(KeyRequest))
	assert.Empty(t, f.Errors.Get(KeyCredentials))
}

func TestSignUpForm_PasswordRules(t *testing.T) {
	t.Parallel()

	f := NewSignUpForm(nil, nil)
	assert.Empty(t, f.PasswordMismatch())
	assert.False(t, f.CanSubmit())

	f.SetField(FieldPassword, "P4ssword")
	assert.NotEmpty(t, f.PasswordMismatch())
	assert.False(t, f.CanSubmit())

	f.SetField(FieldPasswordRepeat, "P4ssword")
	assert.Empty(t, f.PasswordMismatch())
	assert.True(t, f.CanSubmit())
}

func TestSignUpForm_MismatchIsLocalized(t *testing.T) {
	t.Parallel()

	hu := func(key string) string { return locale.Lookup("hu", key) }
	f := NewSignUpForm(nil, hu)
	f.SetField(FieldPassword, "a")
	assert.Equal(t, locale.Lookup("hu", locale.MsgPasswordMismatch), f.PasswordMismatch())
}

func fill(f *SignUpForm, username, email string) {
	f.SetField(FieldUsername, username)
	f.SetField(FieldEmail, email)
	f.SetField(FieldPassword, "P4ssword")
	f.SetField(FieldPasswordRepeat, "P4ssword")
}

func TestSignUpForm_Success(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	f := NewSignUpForm(e.client, nil)
	fill(f, "user1", "user1@mail.com")

	sent, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, sent)
	assert.True(t, f.Done())
	assert.False(t, f.CanSubmit())
	assert.JSONEq(t, `{"username":"user1","email":"user1@mail.com","password":"P4ssword"}`,
		string(e.be.LastBody(mockapi.RouteSignUp)))
	_, ok := e.be.TokenFor("user1@mail.com")
	assert.True(t, ok)
}

func TestSignUpForm_ValidationErrorsBindPerField(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	f := NewSignUpForm(e.client, nil)
	fill(f, "u1", "not-an-email")

	sent, err := f.Submit(context.Background())
	assert.True(t, sent)
	require.Error(t, err)
	assert.False(t, f.Done())
	assert.Equal(t, "Must have min 4 and max 32 characters", f.Errors.Get(FieldUsername))
	assert.Equal(t, "E-mail is not valid", f.Errors.Get(FieldEmail))

	f.SetField(FieldEmail, "user1@mail.com")
	assert.Empty(t, f.Errors.Get(FieldEmail))
	assert.NotEmpty(t, f.Errors.Get(FieldUsername))

	f.SetField(FieldUsername, "user1")
	assert.Zero(t, f.Errors.Len())
}

func TestSignUpForm_OverlapDropped(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	release := e.be.Hold()
	defer release()

	f := NewSignUpForm(e.client, nil)
	fill(f, "user1", "user1@mail.com")
	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()
	require.Eventually(t, func() bool { return e.be.Count(mockapi.RouteSignUp) == 1 }, timeout, tick)

	sent, _ := f.Submit(context.Background())
	assert.False(t, sent)
	release()
	require.NoError(t, <-done)
	assert.Equal(t, 1, e.be.Count(mockapi.RouteSignUp))
}

func TestActivation_SendsOncePerMount(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	_, err := e.be.AddUser("user1", "user1@mail.com", "P4ssword", false)
	require.NoError(t, err)
	require.NoError(t, e.be.AddActivationToken("1234", "user1@mail.com"))

	a := NewActivation(e.client, "1234", nil)
	a.Mount(context.Background())
	a.Mount(context.Background())

	st, msg := a.State()
	assert.Equal(t, StatusSuccess, st)
	assert.Equal(t, locale.Lookup("en", locale.MsgAccountActivated), msg)
	assert.Equal(t, 1, e.be.Count(mockapi.RouteActivate))

	b := NewActivation(e.client, "5678", nil)
	b.Mount(context.Background())
	st, msg = b.State()
	assert.Equal(t, StatusFailed, st)
	assert.Equal(t, "Activation failure!", msg)
	assert.Equal(t, 2, e.be.Count(mockapi.RouteActivate))
}

func TestActivation_UnmountDropsLateResult(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	release := e.be.Hold()
	a := NewActivation(e.client, "1234", nil)
	done := make(chan struct{})
	go func() {
		a.Mount(context.Background())
		close(done)
	}()
	require.Eventually(t, func() bool { return e.be.Count(mockapi.RouteActivate) == 1 }, timeout, tick)
	st, _ := a.State()
	assert.Equal(t, StatusLoading, st)

	a.Unmount()
	release()
	<-done
	st, msg := a.State()
	assert.Equal(t, StatusLoading, st)
	assert.Empty(t, msg)
}

func TestProfile_LoadsOnce(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.be.Seed(3)
	p := NewProfile(e.client, 2, nil)
	p.Mount(context.Background())
	p.Mount(context.Background())

	st, u, _ := p.State()
	require.Equal(t, StatusSuccess, st)
	require.NotNil(t, u)
	assert.Equal(t, "user2", u.Username)
	assert.Equal(t, 1, e.be.Count(mockapi.RouteGetUser))
}

func TestProfile_NotFound(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	p := NewProfile(e.client, 99, nil)
	p.Mount(context.Background())

	st, u, msg := p.State()
	assert.Equal(t, StatusNotFound, st)
	assert.Nil(t, u)
	assert.Equal(t, "User not found", msg)
}

func TestLogout(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.be.Seed(1)
	f := NewLoginForm(e.client, e.sess, e.router, nil)
	f.SetField(FieldEmail, "user1@mail.com")
	f.SetField(FieldPassword, "P4ssword")
	_, err := f.Submit(context.Background())
	require.NoError(t, err)

	e.router.Navigate("/users")
	require.NoError(t, Logout(e.sess, e.router))
	assert.False(t, e.sess.State().IsLoggedIn)
	assert.Equal(t, "/", e.router.Current().Path)
}
