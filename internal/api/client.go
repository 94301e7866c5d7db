package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coursify/coursify/internal/catalog"
)

const (
	coursesPath = "/courses/course"
	logoutPath  = "/user/logout"
	loginPath   = "/user/login"
	signupPath  = "/user/signup"

	maxErrorBody = 64 << 10
)

var errMissingData = errors.New("response has no data array")

// Config captures what the client needs to reach the backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Client overrides the transport. Its Jar is always replaced.
	Client *http.Client
	Logger *slog.Logger
}

// Client talks to the marketplace backend. Every request carries the cookie
// jar, so the backend session cookie is attached the same way a browser would.
type Client struct {
	base *url.URL
	hc   *http.Client
	jar  *jar
	log  *slog.Logger
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Message string          `json:"message"`
	User    json.RawMessage `json:"user"`
	Token   string          `json:"token"`
}

// SignupRequest is the join form payload.
type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// NewClient validates cfg and builds a client with its own cookie jar.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if raw == "" {
		return nil, errors.New("api: base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	hc := &http.Client{Timeout: timeout}
	if cfg.Client != nil {
		copied := *cfg.Client
		hc = &copied
	}
	j, err := newJar()
	if err != nil {
		return nil, err
	}
	hc.Jar = j

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{base: base, hc: hc, jar: j, log: logger}, nil
}

// Courses fetches the public catalog in backend order.
func (c *Client) Courses(ctx context.Context) ([]catalog.Course, error) {
	var out struct {
		Data *[]catalog.Course `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, coursesPath, nil, &out); err != nil {
		return nil, err
	}
	// only an explicit array is a catalog, even an empty one
	if out.Data == nil || *out.Data == nil {
		return nil, fmt.Errorf("decode %s: %w", coursesPath, errMissingData)
	}
	return *out.Data, nil
}

// Logout ends the backend session and returns its message verbatim.
func (c *Client) Logout(ctx context.Context) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodGet, logoutPath, nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Login posts credentials; the backend answers with a session cookie.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, loginPath, body, &out); err != nil {
		return LoginResponse{}, err
	}
	return out, nil
}

// Signup registers a new student account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, signupPath, req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Cookies returns the cookies the jar would send to the backend.
func (c *Client) Cookies() []*http.Cookie {
	return c.jar.Cookies(c.base)
}

// SetCookies seeds the jar, e.g. from a previous run.
func (c *Client) SetCookies(cookies []*http.Cookie) {
	c.jar.SetCookies(c.base, cookies)
}

// ClearCookies drops every stored credential.
func (c *Client) ClearCookies() {
	c.jar.reset()
}

func (c *Client) endpoint(path string) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String()
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn("backend request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	c.log.Debug("backend request", "method", method, "path", path, "status", resp.StatusCode,
		"request_id", reqID, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Message: backendMessage(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
