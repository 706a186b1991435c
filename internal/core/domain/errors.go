package domain

import "errors"

// Session and navigation errors. The Gate and the Menu Builder never return
// these to callers; they are used by the layers that load sessions.
var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrMalformedSession  = errors.New("malformed session")
	ErrUnknownRole       = errors.New("unknown role")
	ErrRouteNotPermitted = errors.New("route not permitted")
)

// Account errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrForbidden          = errors.New("access forbidden")
)
