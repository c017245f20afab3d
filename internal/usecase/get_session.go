package usecase

import (
	"context"

	"sicknote-hub/internal/domain"
)

// GetSession exposes the current Identity to the UI shell.
type GetSession struct {
	sessions domain.SessionReader
}

// NewGetSession creates a new GetSession usecase.
func NewGetSession(s domain.SessionReader) *GetSession {
	return &GetSession{sessions: s}
}

// Execute returns the live Identity or ErrNoSession. Pure read, safe on
// every render.
func (uc *GetSession) Execute(_ context.Context) (*domain.Identity, error) {
	identity, ok := uc.sessions.Current()
	if !ok {
		return nil, domain.ErrNoSession
	}
	return &identity, nil
}
