package gateway

import (
	"context"

	"sicknote-hub/internal/domain"
)

// PrivilegedCaller fronts every privileged backend action: it evaluates
// the feature gate for the action's resource tag before the request is
// built, so a denied gate prevents the call from being issued at all,
// and it attaches the session token as the bearer credential.
// Implements domain.PrivacyUpdater and domain.FriendNotifier.
type PrivilegedCaller struct {
	gate     domain.GateEvaluator
	sessions domain.SessionReader
	campus   *CampusGateway
}

var (
	_ domain.PrivacyUpdater = (*PrivilegedCaller)(nil)
	_ domain.FriendNotifier = (*PrivilegedCaller)(nil)
)

// NewPrivilegedCaller creates a caller bound to the gate and session
// reader.
func NewPrivilegedCaller(gate domain.GateEvaluator, sessions domain.SessionReader, campus *CampusGateway) *PrivilegedCaller {
	return &PrivilegedCaller{gate: gate, sessions: sessions, campus: campus}
}

// UpdatePrivacy pushes a changed notification privacy preference.
// Changing the preference is part of the manage-friends capability.
func (p *PrivilegedCaller) UpdatePrivacy(ctx context.Context, value domain.PrivacyPreference) error {
	token, err := p.authorize(ctx, domain.ResourceManageFriends)
	if err != nil {
		return err
	}
	return p.campus.updatePrivacy(ctx, token, value)
}

// NotifyFriends issues the notify action for the selected friends. The
// gate applies the two-stage role-then-preference check; no call is
// made on deny.
func (p *PrivilegedCaller) NotifyFriends(ctx context.Context, friendIDs []int64) error {
	token, err := p.authorize(ctx, domain.ResourceNotifyFriends)
	if err != nil {
		return err
	}
	return p.campus.notifyFriends(ctx, token, friendIDs)
}

// authorize evaluates the gate and returns the bearer token for the
// current session.
func (p *PrivilegedCaller) authorize(ctx context.Context, resource domain.Resource) (string, error) {
	decision := p.gate.Evaluate(ctx, resource)
	if !decision.Allow {
		return "", &domain.AccessDeniedError{Resource: resource, Decision: decision}
	}

	identity, ok := p.sessions.Current()
	if !ok {
		return "", domain.ErrNoSession
	}
	return identity.Token, nil
}
