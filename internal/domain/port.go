package domain

import "context"

// CredentialExchanger turns an email/password pair into a signed
// Identity assertion. It never touches the session store; the caller
// decides whether and when to commit.
type CredentialExchanger interface {
	Login(ctx context.Context, email, password string) (*Identity, error)
	Register(ctx context.Context, reg Registration) error
}

// SessionRecordRepository owns the persisted representation of the
// Identity: one record with all three fields present, or nothing.
type SessionRecordRepository interface {
	Save(identity Identity) error
	Load() (*Identity, error)
	Delete() error
}

// SessionReader is the read side of the session store, safe to consult
// on every render.
type SessionReader interface {
	Current() (Identity, bool)
	Epoch() uint64
}

// SessionStore makes exactly one Identity (or none) visible
// process-wide and persists it across restarts.
type SessionStore interface {
	SessionReader
	Commit(identity Identity) error
	Clear() error
}

// PrivacyFetcher retrieves the acting student's notification privacy
// preference from the backend.
type PrivacyFetcher interface {
	FetchPrivacy(ctx context.Context, token string) (PrivacyPreference, error)
}

// PrivacyCache is the in-memory shadow of the server-owned privacy
// preference, scoped to one session.
type PrivacyCache interface {
	// Peek returns the current shadow without triggering I/O.
	Peek() (PrivacyPreference, PrivacyState)
	// Prime starts a background fetch if the shadow is empty.
	Prime()
	// Fetch resolves the shadow, de-duplicating concurrent callers.
	Fetch(ctx context.Context) (PrivacyPreference, error)
	// Invalidate drops the shadow back to empty.
	Invalidate()
}

// PrivacyUpdater pushes a changed preference to the backend.
type PrivacyUpdater interface {
	UpdatePrivacy(ctx context.Context, value PrivacyPreference) error
}

// FriendNotifier issues the notify-friends action for the acting
// student.
type FriendNotifier interface {
	NotifyFriends(ctx context.Context, friendIDs []int64) error
}

// GateEvaluator is the single call site screens and privileged callers
// use before rendering a control or issuing a backend call.
type GateEvaluator interface {
	Evaluate(ctx context.Context, resource Resource) AccessDecision
}

// CSRFTokenGenerator derives CSRF tokens from session material.
type CSRFTokenGenerator interface {
	Generate(sessionToken string) (string, error)
}
