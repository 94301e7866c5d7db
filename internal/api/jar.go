package api

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"golang.org/x/net/publicsuffix"
)

// jar is a cookiejar that can be emptied while requests are in flight.
type jar struct {
	mu    sync.RWMutex
	inner *cookiejar.Jar
}

func newJar() (*jar, error) {
	inner, err := newInner()
	if err != nil {
		return nil, err
	}
	return &jar{inner: inner}, nil
}

func newInner() (*cookiejar.Jar, error) {
	inner, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("api: cookie jar: %w", err)
	}
	return inner, nil
}

func (j *jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	j.inner.SetCookies(u, cookies)
}

func (j *jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.inner.Cookies(u)
}

func (j *jar) reset() {
	inner, err := newInner()
	if err != nil {
		// cookiejar.New only fails on bad options
		return
	}
	j.mu.Lock()
	j.inner = inner
	j.mu.Unlock()
}
