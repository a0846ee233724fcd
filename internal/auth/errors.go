package auth

import "errors"

// Token rejection reasons. These stay internal (logs, telemetry); the HTTP
// response body is identical for all of them so callers cannot distinguish
// why a token was refused.
var (
	ErrMalformedToken   = errors.New("auth: malformed token")
	ErrInvalidSignature = errors.New("auth: invalid token signature")
	ErrTokenExpired     = errors.New("auth: token expired")

	// ErrNoToken means the request carried no bearer token at all.
	ErrNoToken = errors.New("auth: no bearer token")
	// ErrForbidden means the caller is authenticated but the route's role
	// policy excludes them.
	ErrForbidden = errors.New("auth: forbidden")
)
