package usecase

import (
	"context"
	"log/slog"

	"sicknote-hub/internal/domain"
)

// Logout clears the session. The store cascades the invalidation to the
// privacy shadow, so the next login on the same device never observes
// the previous user's preference.
type Logout struct {
	sessions domain.SessionStore
	logger   *slog.Logger
}

// NewLogout creates a new Logout usecase.
func NewLogout(s domain.SessionStore, l *slog.Logger) *Logout {
	return &Logout{sessions: s, logger: l}
}

// Execute removes the Identity from memory and persisted storage.
func (uc *Logout) Execute(ctx context.Context) error {
	if err := uc.sessions.Clear(); err != nil {
		uc.logger.ErrorContext(ctx, "failed to clear session", "error", err)
		return err
	}
	uc.logger.InfoContext(ctx, "session cleared")
	return nil
}
