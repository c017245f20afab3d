package usecase

import (
	"context"
	"log/slog"
	"testing"

	"sicknote-hub/internal/domain"
)

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.Default()
}

type mockExchanger struct {
	loginIdentity *domain.Identity
	loginErr      error
	loginCalls    int

	registerErr   error
	registerCalls int
	lastReg       domain.Registration
}

func (m *mockExchanger) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	m.loginCalls++
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.loginIdentity, nil
}

func (m *mockExchanger) Register(ctx context.Context, reg domain.Registration) error {
	m.registerCalls++
	m.lastReg = reg
	return m.registerErr
}

type mockSessionStore struct {
	identity  *domain.Identity
	epoch     uint64
	commitErr error
	clearErr  error

	commits int
	clears  int
}

func (m *mockSessionStore) Current() (domain.Identity, bool) {
	if m.identity == nil {
		return domain.Identity{}, false
	}
	return *m.identity, true
}

func (m *mockSessionStore) Epoch() uint64 {
	return m.epoch
}

func (m *mockSessionStore) Commit(identity domain.Identity) error {
	m.commits++
	if m.commitErr != nil {
		return m.commitErr
	}
	m.identity = &identity
	m.epoch++
	return nil
}

func (m *mockSessionStore) Clear() error {
	m.clears++
	if m.clearErr != nil {
		return m.clearErr
	}
	m.identity = nil
	m.epoch++
	return nil
}

type mockPrivacyCache struct {
	value domain.PrivacyPreference
	state domain.PrivacyState

	fetchValue domain.PrivacyPreference
	fetchErr   error

	fetches     int
	primes      int
	invalidates int
}

func (m *mockPrivacyCache) Peek() (domain.PrivacyPreference, domain.PrivacyState) {
	return m.value, m.state
}

func (m *mockPrivacyCache) Prime() {
	m.primes++
}

func (m *mockPrivacyCache) Fetch(ctx context.Context) (domain.PrivacyPreference, error) {
	m.fetches++
	if m.fetchErr != nil {
		return "", m.fetchErr
	}
	return m.fetchValue, nil
}

func (m *mockPrivacyCache) Invalidate() {
	m.invalidates++
	m.value = ""
	m.state = domain.PrivacyEmpty
}

type mockPrivacyUpdater struct {
	err   error
	calls int
	last  domain.PrivacyPreference
}

func (m *mockPrivacyUpdater) UpdatePrivacy(ctx context.Context, value domain.PrivacyPreference) error {
	m.calls++
	m.last = value
	return m.err
}

type mockNotifier struct {
	err   error
	calls int
	last  []int64
}

func (m *mockNotifier) NotifyFriends(ctx context.Context, friendIDs []int64) error {
	m.calls++
	m.last = friendIDs
	return m.err
}

type mockCSRFGenerator struct {
	token string
	err   error
	last  string
}

func (m *mockCSRFGenerator) Generate(sessionToken string) (string, error) {
	m.last = sessionToken
	if m.err != nil {
		return "", m.err
	}
	return m.token, nil
}

func studentIdentity() *domain.Identity {
	return &domain.Identity{Token: "tok-student", Role: domain.RoleStudent, UserID: 1}
}

func professorIdentity() *domain.Identity {
	return &domain.Identity{Token: "tok-prof", Role: domain.RoleProfessor, UserID: 2}
}
