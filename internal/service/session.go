package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/coursify/coursify/internal/api"
)

const (
	// MarkerKey is the durable entry whose presence means "logged in".
	MarkerKey  = "user"
	cookiesKey = "auth.cookies"
)

// Storage is synchronous durable key-value persistence.
type Storage interface {
	Get(key string) (value string, present bool, err error)
	Set(key, value string) error
	Clear(key string) error
}

// AuthBackend is the remote side of login, signup and logout.
type AuthBackend interface {
	Login(ctx context.Context, email, password string) (api.LoginResponse, error)
	Signup(ctx context.Context, req api.SignupRequest) (string, error)
	Logout(ctx context.Context) (string, error)
}

// CredentialCarrier is implemented by backends that hold session cookies.
type CredentialCarrier interface {
	Cookies() []*http.Cookie
	SetCookies(cookies []*http.Cookie)
	ClearCookies()
}

// User is the backend's identity record. Only its presence matters here.
type User json.RawMessage

// Session is the client's belief about who is logged in.
type Session struct {
	Authenticated bool
	User          User
}

// SessionStore is the single writer of Session. Readers take snapshots or
// subscribe; every write publishes the whole new value.
type SessionStore struct {
	storage Storage
	backend AuthBackend
	log     *slog.Logger

	mu      sync.RWMutex
	state   Session
	subs    map[int]chan Session
	nextSub int
}

func NewSessionStore(storage Storage, backend AuthBackend, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SessionStore{storage: storage, backend: backend, log: logger, subs: map[int]chan Session{}}
}

// Hydrate reads the durable marker once. It never touches the network and an
// absent marker is simply the logged-out state. A read error is logged but
// presence still follows what storage reports.
func (s *SessionStore) Hydrate() Session {
	value, present, err := s.storage.Get(MarkerKey)
	if err != nil {
		s.log.Warn("session marker unreadable", "error", err)
	}

	next := Session{Authenticated: present}
	if present && json.Valid([]byte(value)) {
		next.User = User(value)
	}
	if present {
		s.restoreCookies()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next
	s.publishLocked()
	s.log.Info("session hydrated", "authenticated", next.Authenticated)
	return s.copyLocked()
}

// Snapshot returns the current session.
func (s *SessionStore) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// Subscribe delivers every subsequent session change. Slow readers only see
// the latest value. Call cancel to stop receiving.
func (s *SessionStore) Subscribe() (<-chan Session, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan Session, 1)
	s.subs[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

// Logout ends the session. Whatever the backend does, the durable marker is
// cleared and the store ends logged out. On success the backend message is
// returned; on failure the error wraps ErrLogoutRemote.
func (s *SessionStore) Logout(ctx context.Context) (string, error) {
	msg, remoteErr := s.backend.Logout(ctx)
	localErr := s.clearLocal()
	if remoteErr != nil {
		s.log.Warn("logout call failed, cleared local session", "error", remoteErr)
		return "", errors.Join(fmt.Errorf("%w: %w", ErrLogoutRemote, remoteErr), localErr)
	}
	s.log.Info("logged out")
	return msg, localErr
}

// Login authenticates against the backend and persists the marker.
func (s *SessionStore) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLogin, err)
	}
	user := resp.User
	if len(user) == 0 || !json.Valid(user) {
		user = json.RawMessage(`{}`)
	}
	if err := s.storage.Set(MarkerKey, string(user)); err != nil {
		return "", fmt.Errorf("%w: persist session: %w", ErrLogin, err)
	}
	s.persistCookies()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Session{Authenticated: true, User: User(user)}
	s.publishLocked()
	s.log.Info("logged in")
	return resp.Message, nil
}

// Signup registers an account. It does not log the user in.
func (s *SessionStore) Signup(ctx context.Context, req api.SignupRequest) (string, error) {
	msg, err := s.backend.Signup(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSignup, err)
	}
	return msg, nil
}

func (s *SessionStore) clearLocal() error {
	clearErr := s.storage.Clear(MarkerKey)
	if err := s.storage.Clear(cookiesKey); err != nil {
		s.log.Warn("clear stored cookies", "error", err)
	}
	if c, ok := s.backend.(CredentialCarrier); ok {
		c.ClearCookies()
	}

	next := Session{}
	if clearErr != nil {
		// the in-memory flag must keep following storage
		_, present, _ := s.storage.Get(MarkerKey)
		next.Authenticated = present
		s.log.Error("clear session marker", "error", clearErr, "still_present", present)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if next.Authenticated {
		next.User = s.state.User
	}
	s.state = next
	s.publishLocked()
	if clearErr != nil {
		return fmt.Errorf("clear session marker: %w", clearErr)
	}
	return nil
}

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (s *SessionStore) persistCookies() {
	c, ok := s.backend.(CredentialCarrier)
	if !ok {
		return
	}
	var out []storedCookie
	for _, ck := range c.Cookies() {
		out = append(out, storedCookie{Name: ck.Name, Value: ck.Value})
	}
	if len(out) == 0 {
		return
	}
	data, err := json.Marshal(out)
	if err != nil {
		return
	}
	if err := s.storage.Set(cookiesKey, string(data)); err != nil {
		s.log.Warn("persist cookies", "error", err)
	}
}

func (s *SessionStore) restoreCookies() {
	c, ok := s.backend.(CredentialCarrier)
	if !ok {
		return
	}
	value, present, err := s.storage.Get(cookiesKey)
	if err != nil || !present {
		return
	}
	var stored []storedCookie
	if err := json.Unmarshal([]byte(value), &stored); err != nil {
		s.log.Warn("stored cookies unreadable", "error", err)
		return
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, sc := range stored {
		cookies = append(cookies, &http.Cookie{Name: sc.Name, Value: sc.Value})
	}
	c.SetCookies(cookies)
}

func (s *SessionStore) publishLocked() {
	snap := s.copyLocked()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func (s *SessionStore) copyLocked() Session {
	out := s.state
	if s.state.User != nil {
		out.User = append(User(nil), s.state.User...)
	}
	return out
}

// UserMessage picks the backend's own wording for err when it has one.
func UserMessage(err error, fallback string) string {
	var se *api.StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}
