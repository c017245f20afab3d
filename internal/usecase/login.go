package usecase

import (
	"context"
	"log/slog"

	"sicknote-hub/internal/domain"
)

// Login orchestrates the credential exchange and commits the resulting
// Identity as the process-wide session.
type Login struct {
	exchanger domain.CredentialExchanger
	sessions  domain.SessionStore
	logger    *slog.Logger
}

// NewLogin creates a new Login usecase.
func NewLogin(e domain.CredentialExchanger, s domain.SessionStore, l *slog.Logger) *Login {
	return &Login{exchanger: e, sessions: s, logger: l}
}

// Execute exchanges the credentials and commits the Identity. The
// exchange itself has no side effects, so a failed commit leaves no
// half-set session behind.
func (uc *Login) Execute(ctx context.Context, email, password string) (*domain.Identity, error) {
	identity, err := uc.exchanger.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := uc.sessions.Commit(*identity); err != nil {
		uc.logger.ErrorContext(ctx, "failed to commit session", "error", err)
		return nil, err
	}

	uc.logger.InfoContext(ctx, "session established",
		"user_id", identity.UserID,
		"role", identity.Role)
	return identity, nil
}
