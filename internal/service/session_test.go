package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/coursify/coursify/internal/api"
	"github.com/coursify/coursify/internal/prefs"
)

type fakeAuth struct {
	loginResp  api.LoginResponse
	loginErr   error
	signupMsg  string
	signupErr  error
	logoutMsg  string
	logoutErr  error
	logoutHits int
	cookies    []*http.Cookie
	cleared    int
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (api.LoginResponse, error) {
	if f.loginErr == nil {
		f.cookies = []*http.Cookie{{Name: "jwt", Value: "tok"}}
	}
	return f.loginResp, f.loginErr
}

func (f *fakeAuth) Signup(ctx context.Context, req api.SignupRequest) (string, error) {
	return f.signupMsg, f.signupErr
}

func (f *fakeAuth) Logout(ctx context.Context) (string, error) {
	f.logoutHits++
	return f.logoutMsg, f.logoutErr
}

func (f *fakeAuth) Cookies() []*http.Cookie            { return f.cookies }
func (f *fakeAuth) SetCookies(cookies []*http.Cookie) { f.cookies = cookies }
func (f *fakeAuth) ClearCookies()                     { f.cookies = nil; f.cleared++ }

// failingStorage refuses to clear, simulating a broken local database.
type failingStorage struct {
	*prefs.Memory
}

func (failingStorage) Clear(string) error { return errors.New("disk full") }

func markerPresent(t *testing.T, s Storage) bool {
	t.Helper()
	_, ok, err := s.Get(MarkerKey)
	require.NoError(t, err)
	return ok
}

func TestHydrateReflectsMarker(t *testing.T) {
	store := prefs.NewMemory()
	s := NewSessionStore(store, &fakeAuth{}, nil)
	require.False(t, s.Hydrate().Authenticated)

	require.NoError(t, store.Set(MarkerKey, `{"_id":"u1"}`))
	sess := s.Hydrate()
	require.True(t, sess.Authenticated)
	require.JSONEq(t, `{"_id":"u1"}`, string(sess.User))
	require.Equal(t, sess, s.Snapshot())
}

// unreadableStorage fails every read, reporting present for rows that exist
// but cannot be decoded.
type unreadableStorage struct {
	*prefs.Memory
	present bool
}

func (u unreadableStorage) Get(string) (string, bool, error) {
	return "", u.present, errors.New("unseal: message authentication failed")
}

func TestHydrateStorageError(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		s := NewSessionStore(unreadableStorage{Memory: prefs.NewMemory()}, &fakeAuth{}, nil)
		sess := s.Hydrate()
		require.False(t, sess.Authenticated)
		require.Nil(t, sess.User)
	})
	t.Run("present but unreadable", func(t *testing.T) {
		store := unreadableStorage{Memory: prefs.NewMemory(), present: true}
		require.NoError(t, store.Set(MarkerKey, "sealed"))
		auth := &fakeAuth{logoutMsg: "bye"}
		s := NewSessionStore(store, auth, nil)

		sess := s.Hydrate()
		require.True(t, sess.Authenticated, "presence wins over the read error")
		require.Nil(t, sess.User)

		// logout still clears the row it could not read
		_, err := s.Logout(context.Background())
		require.NoError(t, err)
		require.False(t, s.Snapshot().Authenticated)
		_, ok, _ := store.Memory.Get(MarkerKey)
		require.False(t, ok)
	})
}

func TestHydrateRestoresCookies(t *testing.T) {
	store := prefs.NewMemory()
	require.NoError(t, store.Set(MarkerKey, `{}`))
	require.NoError(t, store.Set("auth.cookies", `[{"name":"jwt","value":"abc"}]`))
	auth := &fakeAuth{}

	NewSessionStore(store, auth, nil).Hydrate()
	require.Len(t, auth.cookies, 1)
	require.Equal(t, "abc", auth.cookies[0].Value)
}

func TestLogoutTerminalStateForAllOutcomes(t *testing.T) {
	cases := map[string]struct {
		msg     string
		err     error
		wantMsg string
		wantErr error
	}{
		"success":       {msg: "Logged out", wantMsg: "Logged out"},
		"network error": {err: errors.New("connection refused"), wantErr: ErrLogoutRemote},
		"non-2xx":       {err: &api.StatusError{Code: 500}, wantErr: ErrLogoutRemote},
		"timeout":       {err: context.DeadlineExceeded, wantErr: ErrLogoutRemote},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			store := prefs.NewMemory()
			require.NoError(t, store.Set(MarkerKey, `{}`))
			auth := &fakeAuth{logoutMsg: tc.msg, logoutErr: tc.err, cookies: []*http.Cookie{{Name: "jwt"}}}
			s := NewSessionStore(store, auth, nil)
			require.True(t, s.Hydrate().Authenticated)

			msg, err := s.Logout(context.Background())
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tc.wantMsg, msg)
			require.False(t, markerPresent(t, store))
			require.False(t, s.Snapshot().Authenticated)
			require.Nil(t, s.Snapshot().User)
			require.Empty(t, auth.cookies)
			require.Equal(t, 1, auth.logoutHits, "logout is never retried")
		})
	}
}

func TestSessionConsistencyAcrossSequences(t *testing.T) {
	store := prefs.NewMemory()
	auth := &fakeAuth{loginResp: api.LoginResponse{User: []byte(`{"_id":"u"}`)}}
	s := NewSessionStore(store, auth, nil)
	ctx := context.Background()

	check := func() {
		require.Equal(t, markerPresent(t, store), s.Snapshot().Authenticated)
	}
	steps := []func(){
		func() { s.Hydrate() },
		func() { _, _ = s.Login(ctx, "a", "b") },
		func() { s.Hydrate() },
		func() { _, _ = s.Logout(ctx) },
		func() { _, _ = s.Logout(ctx) },
		func() { _, _ = s.Login(ctx, "a", "b") },
		func() { auth.logoutErr = errors.New("offline"); _, _ = s.Logout(ctx) },
		func() { s.Hydrate() },
	}
	for _, step := range steps {
		step()
		check()
	}
}

func TestLogoutWithBrokenStorageKeepsMemoryInSync(t *testing.T) {
	store := failingStorage{prefs.NewMemory()}
	require.NoError(t, store.Set(MarkerKey, `{}`))
	s := NewSessionStore(store, &fakeAuth{logoutMsg: "bye"}, nil)
	s.Hydrate()

	_, err := s.Logout(context.Background())
	require.Error(t, err)
	require.True(t, markerPresent(t, store))
	require.True(t, s.Snapshot().Authenticated)
}

func TestLoginPersistsMarkerAndCookies(t *testing.T) {
	store := prefs.NewMemory()
	auth := &fakeAuth{loginResp: api.LoginResponse{Message: "User loggedin successfully", User: []byte(`{"_id":"u1"}`)}}
	s := NewSessionStore(store, auth, nil)
	s.Hydrate()

	msg, err := s.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	require.Equal(t, "User loggedin successfully", msg)
	require.True(t, s.Snapshot().Authenticated)

	v, ok, _ := store.Get(MarkerKey)
	require.True(t, ok)
	require.JSONEq(t, `{"_id":"u1"}`, v)
	v, ok, _ = store.Get("auth.cookies")
	require.True(t, ok)
	require.JSONEq(t, `[{"name":"jwt","value":"tok"}]`, v)
}

func TestLoginFailureLeavesSessionUntouched(t *testing.T) {
	store := prefs.NewMemory()
	auth := &fakeAuth{loginErr: &api.StatusError{Code: 403, Message: "Invalid credentials"}}
	s := NewSessionStore(store, auth, nil)
	s.Hydrate()

	_, err := s.Login(context.Background(), "a@b.c", "bad")
	require.ErrorIs(t, err, ErrLogin)
	require.Equal(t, "Invalid credentials", UserMessage(err, "Login failed"))
	require.False(t, s.Snapshot().Authenticated)
	require.False(t, markerPresent(t, store))
}

func TestSignupDoesNotLogIn(t *testing.T) {
	store := prefs.NewMemory()
	s := NewSessionStore(store, &fakeAuth{signupMsg: "Signup succeedded"}, nil)
	s.Hydrate()

	msg, err := s.Signup(context.Background(), api.SignupRequest{Email: "a@b.c"})
	require.NoError(t, err)
	require.Equal(t, "Signup succeedded", msg)
	require.False(t, s.Snapshot().Authenticated)

	s = NewSessionStore(store, &fakeAuth{signupErr: errors.New("boom")}, nil)
	_, err = s.Signup(context.Background(), api.SignupRequest{})
	require.ErrorIs(t, err, ErrSignup)
	require.Equal(t, "Signup failed", UserMessage(err, "Signup failed"))
}

func TestSubscribersSeeEveryWriter(t *testing.T) {
	store := prefs.NewMemory()
	require.NoError(t, store.Set(MarkerKey, `{}`))
	s := NewSessionStore(store, &fakeAuth{logoutMsg: "ok"}, nil)

	header, cancelHeader := s.Subscribe()
	sidebar, cancelSidebar := s.Subscribe()
	defer cancelSidebar()

	s.Hydrate()
	require.True(t, (<-header).Authenticated)
	require.True(t, (<-sidebar).Authenticated)

	_, err := s.Logout(context.Background())
	require.NoError(t, err)
	require.False(t, (<-header).Authenticated)
	require.False(t, (<-sidebar).Authenticated)

	cancelHeader()
	_, ok := <-header
	require.False(t, ok, "cancel closes the channel")
	cancelHeader()
}

func TestSlowSubscriberGetsLatest(t *testing.T) {
	store := prefs.NewMemory()
	s := NewSessionStore(store, &fakeAuth{loginResp: api.LoginResponse{User: []byte(`{}`)}}, nil)
	ch, cancel := s.Subscribe()
	defer cancel()

	s.Hydrate()
	_, err := s.Login(context.Background(), "a", "b")
	require.NoError(t, err)

	select {
	case got := <-ch:
		require.True(t, got.Authenticated)
	case <-time.After(time.Second):
		t.Fatal("no session published")
	}
}

func TestLogoutAgainstBackend(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user/logout", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"Logged out"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, err := api.NewClient(api.Config{BaseURL: srv.URL, Timeout: time.Second})
	require.NoError(t, err)
	store := prefs.NewMemory()
	require.NoError(t, store.Set(MarkerKey, `{}`))
	s := NewSessionStore(store, client, nil)
	s.Hydrate()

	msg, err := s.Logout(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Logged out", msg)
	require.False(t, markerPresent(t, store))

	// backend gone: still logged out locally
	srv.Close()
	require.NoError(t, store.Set(MarkerKey, `{}`))
	s.Hydrate()
	_, err = s.Logout(context.Background())
	require.ErrorIs(t, err, ErrLogoutRemote)
	require.False(t, markerPresent(t, store))
	require.False(t, s.Snapshot().Authenticated)
}
