package usecase

import (
	"context"
	"log/slog"

	"sicknote-hub/internal/domain"
)

// GetPrivacy resolves the notification privacy preference through the
// session-scoped cache; at most one backend call per session.
type GetPrivacy struct {
	cache domain.PrivacyCache
}

// NewGetPrivacy creates a new GetPrivacy usecase.
func NewGetPrivacy(c domain.PrivacyCache) *GetPrivacy {
	return &GetPrivacy{cache: c}
}

// Execute returns the cached preference, fetching on first read.
func (uc *GetPrivacy) Execute(ctx context.Context) (domain.PrivacyPreference, error) {
	return uc.cache.Fetch(ctx)
}

// UpdatePrivacy pushes a changed preference to the backend, then drops
// and eagerly re-resolves the shadow so the gate never serves the stale
// value.
type UpdatePrivacy struct {
	updater domain.PrivacyUpdater
	cache   domain.PrivacyCache
	logger  *slog.Logger
}

// NewUpdatePrivacy creates a new UpdatePrivacy usecase.
func NewUpdatePrivacy(u domain.PrivacyUpdater, c domain.PrivacyCache, l *slog.Logger) *UpdatePrivacy {
	return &UpdatePrivacy{updater: u, cache: c, logger: l}
}

// Execute writes the new value and refreshes the shadow. The refreshed
// value is returned so the settings screen renders what the server
// accepted.
func (uc *UpdatePrivacy) Execute(ctx context.Context, value domain.PrivacyPreference) (domain.PrivacyPreference, error) {
	if _, err := domain.ParsePrivacyPreference(string(value)); err != nil {
		return "", err
	}

	if err := uc.updater.UpdatePrivacy(ctx, value); err != nil {
		return "", err
	}

	uc.cache.Invalidate()
	refreshed, err := uc.cache.Fetch(ctx)
	if err != nil {
		uc.logger.WarnContext(ctx, "privacy re-fetch after update failed", "error", err)
		return "", err
	}
	return refreshed, nil
}
