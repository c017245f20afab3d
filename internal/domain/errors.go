package domain

import (
	"errors"
	"fmt"
)

// Credential exchange errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMalformedResponse  = errors.New("malformed backend response")
	ErrBackendUnavailable = errors.New("campus backend unavailable")
)

// Session errors.
var (
	ErrNoSession      = errors.New("no active session")
	ErrPartialRecord  = errors.New("partial session record")
	ErrSessionStorage = errors.New("session storage failure")
)

// Privacy preference errors.
var (
	ErrPrivacyUnavailable = errors.New("privacy preference unavailable")
)

// Facade errors.
var (
	ErrUnknownResource   = errors.New("unknown resource tag")
	ErrCSRFSecretMissing = errors.New("CSRF secret not configured")
	ErrRateLimited       = errors.New("rate limit exceeded")
)

// AccessDeniedError aborts a privileged call whose gate evaluation did
// not allow the resource. It is a refusal to issue the request, not a
// transport failure; the decision carries the renderable reason.
type AccessDeniedError struct {
	Resource Resource
	Decision AccessDecision
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied for %s: %s", e.Resource, e.Decision.Reason)
}

// AsAccessDenied unwraps an AccessDeniedError if err carries one.
func AsAccessDenied(err error) (*AccessDeniedError, bool) {
	var denied *AccessDeniedError
	if errors.As(err, &denied) {
		return denied, true
	}
	return nil, false
}
