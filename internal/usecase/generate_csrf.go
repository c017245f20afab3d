package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"sicknote-hub/internal/domain"
)

// GenerateCSRF derives a CSRF token for the current session, used by the
// UI shell on mutating facade endpoints.
type GenerateCSRF struct {
	sessions domain.SessionReader
	csrf     domain.CSRFTokenGenerator
	logger   *slog.Logger
}

// NewGenerateCSRF creates a new GenerateCSRF usecase.
func NewGenerateCSRF(s domain.SessionReader, csrf domain.CSRFTokenGenerator, l *slog.Logger) *GenerateCSRF {
	return &GenerateCSRF{sessions: s, csrf: csrf, logger: l}
}

// Execute generates a CSRF token bound to the session token.
func (uc *GenerateCSRF) Execute(ctx context.Context) (string, error) {
	identity, ok := uc.sessions.Current()
	if !ok {
		return "", domain.ErrNoSession
	}

	token, err := uc.csrf.Generate(identity.Token)
	if err != nil {
		uc.logger.ErrorContext(ctx, "failed to generate CSRF token", "error", err)
		return "", fmt.Errorf("%w: %w", domain.ErrCSRFSecretMissing, err)
	}
	return token, nil
}
