package usecase

import (
	"context"
	"log/slog"

	"sicknote-hub/internal/domain"
)

// EvaluateAccess is the feature gate: the single call site every screen
// uses before rendering a privileged control, and every privileged
// network call consults before being issued. It composes the session
// store, the access-policy table, and the privacy shadow.
// Implements domain.GateEvaluator.
type EvaluateAccess struct {
	sessions domain.SessionReader
	privacy  domain.PrivacyCache
	logger   *slog.Logger
}

var _ domain.GateEvaluator = (*EvaluateAccess)(nil)

// NewEvaluateAccess creates a new feature gate.
func NewEvaluateAccess(s domain.SessionReader, p domain.PrivacyCache, l *slog.Logger) *EvaluateAccess {
	return &EvaluateAccess{sessions: s, privacy: p, logger: l}
}

// Evaluate computes the access decision for resource. Decisions are
// ephemeral values recomputed on every call, never cached. A denial is
// an expected, renderable outcome, not a failure.
func (uc *EvaluateAccess) Evaluate(ctx context.Context, resource domain.Resource) domain.AccessDecision {
	identity, ok := uc.sessions.Current()
	if !ok {
		// Unauthenticated dominates every role-based outcome; the
		// privacy shadow is not consulted.
		return domain.Decide(domain.RoleNone, resource)
	}

	decision := domain.Decide(identity.Role, resource)
	if !decision.Allow || resource != domain.ResourceNotifyFriends {
		return decision
	}

	// Second stage, notify-friends only: the role gate passed, so the
	// student's own preference modulates the capability. Absence of
	// information fails closed.
	value, state := uc.privacy.Peek()
	switch state {
	case domain.PrivacyResolved:
		if value == domain.PrivacyProfessors {
			return domain.AccessDecision{Reason: domain.ReasonPrivacyRestricted}
		}
		return decision
	default:
		uc.privacy.Prime()
		uc.logger.DebugContext(ctx, "notify-friends gated on unresolved privacy",
			"state", state.String())
		return domain.AccessDecision{Reason: domain.ReasonPrivacyLoading}
	}
}
