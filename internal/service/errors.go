package service

import "errors"

var (
	// ErrCatalogLoad wraps any failure fetching the course list.
	ErrCatalogLoad = errors.New("catalog load failed")
	// ErrLogoutRemote wraps any failure of the backend logout call.
	ErrLogoutRemote = errors.New("logout failed")
	// ErrLogin wraps a rejected or failed login.
	ErrLogin = errors.New("login failed")
	// ErrSignup wraps a rejected or failed signup.
	ErrSignup = errors.New("signup failed")
)
