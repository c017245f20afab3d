package store

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"sicknote-hub/internal/domain"
)

// SessionStore holds the one process-wide Identity behind a narrow
// read/write interface. All mutation funnels through Commit and Clear so
// the atomic-identity invariant holds; the persisted representation is
// owned exclusively by the repository. Implements domain.SessionStore.
type SessionStore struct {
	repo   domain.SessionRecordRepository
	logger *slog.Logger

	mu       sync.RWMutex
	identity *domain.Identity
	epoch    uint64
	onClear  []func()
}

var _ domain.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates an empty store backed by repo.
func NewSessionStore(repo domain.SessionRecordRepository, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{repo: repo, logger: logger}
}

// OnInvalidate registers a hook run whenever the Identity changes
// (commit or clear). The privacy cache registers here so a session
// change always drops the previous user's shadow.
func (s *SessionStore) OnInvalidate(hook func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClear = append(s.onClear, hook)
}

// Load reconstructs the Identity from persisted storage at process
// start. Partial or unreadable records degrade to "no Identity" and the
// stale record is removed; the failure is reported, not swallowed.
func (s *SessionStore) Load() error {
	identity, err := s.repo.Load()
	if err != nil {
		s.mu.Lock()
		s.identity = nil
		s.mu.Unlock()

		switch {
		case errors.Is(err, domain.ErrNoSession):
			return nil
		default:
			// A half-written record must not survive to the next start.
			if delErr := s.repo.Delete(); delErr != nil {
				s.logger.Warn("failed to remove invalid session record", "error", delErr)
			}
			return fmt.Errorf("session load: %w", err)
		}
	}

	s.mu.Lock()
	s.identity = identity
	s.epoch++
	s.mu.Unlock()
	return nil
}

// Commit persists the identity and then makes it visible in memory.
// A Current call after Commit returns observes the new Identity whole;
// on persistence failure the store degrades to "no Identity" rather
// than exposing a half-set session.
func (s *SessionStore) Commit(identity domain.Identity) error {
	if !identity.Valid() {
		return fmt.Errorf("%w: refusing to commit partial identity", domain.ErrPartialRecord)
	}

	if err := s.repo.Save(identity); err != nil {
		s.mu.Lock()
		s.identity = nil
		s.epoch++
		hooks := append([]func(){}, s.onClear...)
		s.mu.Unlock()
		runHooks(hooks)
		return fmt.Errorf("session commit: %w", err)
	}

	s.mu.Lock()
	s.identity = &identity
	s.epoch++
	hooks := append([]func(){}, s.onClear...)
	s.mu.Unlock()

	// A new identity must never inherit the previous session's derived
	// state, so commit cascades the same invalidation as clear.
	runHooks(hooks)
	return nil
}

// Clear removes the Identity from memory and persisted storage and
// signals dependents to drop derived state. Memory is cleared even when
// the storage delete fails.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	s.identity = nil
	s.epoch++
	hooks := append([]func(){}, s.onClear...)
	s.mu.Unlock()

	runHooks(hooks)

	if err := s.repo.Delete(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}

// Current returns the live Identity, if any. Pure read, no I/O.
func (s *SessionStore) Current() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}

// Epoch returns the session generation counter, incremented on every
// Commit and Clear. In-flight fetches key their results by epoch so a
// resolution from a superseded session is discarded.
func (s *SessionStore) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

func runHooks(hooks []func()) {
	for _, hook := range hooks {
		hook()
	}
}
