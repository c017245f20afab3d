package usecase

import (
	"context"
	"log/slog"

	"sicknote-hub/internal/domain"
)

// Register composes account creation with an ordinary login. The
// session is committed only after the login leg succeeds, so a failed
// signup or a failed first login leaves no session behind.
type Register struct {
	exchanger domain.CredentialExchanger
	login     *Login
	logger    *slog.Logger
}

// NewRegister creates a new Register usecase.
func NewRegister(e domain.CredentialExchanger, login *Login, l *slog.Logger) *Register {
	return &Register{exchanger: e, login: login, logger: l}
}

// Execute creates the account and performs the first credential
// exchange.
func (uc *Register) Execute(ctx context.Context, reg domain.Registration) (*domain.Identity, error) {
	if err := uc.exchanger.Register(ctx, reg); err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "account registered", "role", reg.Role)
	return uc.login.Execute(ctx, reg.Email, reg.Password)
}
