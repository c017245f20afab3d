package handler

import (
	"context"
	"log/slog"

	"sicknote-hub/internal/domain"
)

type stubExchanger struct {
	identity    *domain.Identity
	loginErr    error
	registerErr error
}

func (s *stubExchanger) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.identity, nil
}

func (s *stubExchanger) Register(ctx context.Context, reg domain.Registration) error {
	return s.registerErr
}

type stubSessionStore struct {
	identity *domain.Identity
	epoch    uint64
}

func (s *stubSessionStore) Current() (domain.Identity, bool) {
	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}

func (s *stubSessionStore) Epoch() uint64 { return s.epoch }

func (s *stubSessionStore) Commit(identity domain.Identity) error {
	s.identity = &identity
	s.epoch++
	return nil
}

func (s *stubSessionStore) Clear() error {
	s.identity = nil
	s.epoch++
	return nil
}

type stubPrivacyCache struct {
	value domain.PrivacyPreference
	state domain.PrivacyState

	fetchValue domain.PrivacyPreference
	fetchErr   error
}

func (s *stubPrivacyCache) Peek() (domain.PrivacyPreference, domain.PrivacyState) {
	return s.value, s.state
}

func (s *stubPrivacyCache) Prime() {}

func (s *stubPrivacyCache) Fetch(ctx context.Context) (domain.PrivacyPreference, error) {
	if s.fetchErr != nil {
		return "", s.fetchErr
	}
	return s.fetchValue, nil
}

func (s *stubPrivacyCache) Invalidate() {
	s.value = ""
	s.state = domain.PrivacyEmpty
}

type stubUpdater struct {
	err error
}

func (s *stubUpdater) UpdatePrivacy(ctx context.Context, value domain.PrivacyPreference) error {
	return s.err
}

type stubNotifier struct {
	err   error
	calls int
}

func (s *stubNotifier) NotifyFriends(ctx context.Context, friendIDs []int64) error {
	s.calls++
	return s.err
}

type stubCSRF struct {
	token string
	err   error
}

func (s *stubCSRF) Generate(sessionToken string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.token, nil
}

func discardLogger() *slog.Logger {
	return slog.Default()
}

func studentStore() *stubSessionStore {
	return &stubSessionStore{
		identity: &domain.Identity{Token: "tok-student", Role: domain.RoleStudent, UserID: 1},
		epoch:    1,
	}
}
