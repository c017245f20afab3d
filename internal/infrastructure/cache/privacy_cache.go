package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"sicknote-hub/internal/domain"

	"golang.org/x/sync/singleflight"
)

// PrivacyCache is the in-memory shadow of the server-owned notification
// privacy preference: Empty -> Loading -> Resolved | Failed, back to
// Empty on invalidation. Concurrent fetches before the first resolution
// share one underlying request. Implements domain.PrivacyCache.
type PrivacyCache struct {
	fetcher  domain.PrivacyFetcher
	sessions domain.SessionReader
	logger   *slog.Logger

	mu    sync.RWMutex
	state domain.PrivacyState
	value domain.PrivacyPreference

	// gen counts invalidations. Flights are keyed by (epoch, gen), so a
	// fetch started before an invalidation can never be joined by a
	// fetch started after it, and its resolution is discarded instead
	// of repopulating the shadow with a pre-invalidation value.
	gen uint64

	group singleflight.Group

	primeTimeout time.Duration
}

var _ domain.PrivacyCache = (*PrivacyCache)(nil)

// NewPrivacyCache creates an empty cache bound to the session reader
// whose epoch guards stale resolutions.
func NewPrivacyCache(fetcher domain.PrivacyFetcher, sessions domain.SessionReader, logger *slog.Logger) *PrivacyCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &PrivacyCache{
		fetcher:      fetcher,
		sessions:     sessions,
		logger:       logger,
		state:        domain.PrivacyEmpty,
		primeTimeout: 10 * time.Second,
	}
}

// Peek returns the shadow without triggering I/O. While the shadow is
// not Resolved the feature gate treats the notify-friends capability as
// disabled.
func (c *PrivacyCache) Peek() (domain.PrivacyPreference, domain.PrivacyState) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value, c.state
}

// Prime kicks off a background fetch when the shadow is empty, so a
// gate evaluation that failed closed on privacy-loading resolves soon
// after. No-op in any other state.
func (c *PrivacyCache) Prime() {
	c.mu.RLock()
	empty := c.state == domain.PrivacyEmpty
	c.mu.RUnlock()
	if !empty {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.primeTimeout)
		defer cancel()
		if _, err := c.Fetch(ctx); err != nil {
			c.logger.Warn("background privacy fetch failed", "error", err)
		}
	}()
}

// Fetch resolves the shadow, issuing at most one network call no matter
// how many callers arrive before the first resolution. A resolution
// that lands after the session changed or after an invalidation (a
// logout, re-login or settings write during the round-trip) is
// discarded and never applied to the fresh shadow.
func (c *PrivacyCache) Fetch(ctx context.Context) (domain.PrivacyPreference, error) {
	identity, ok := c.sessions.Current()
	if !ok {
		return "", domain.ErrNoSession
	}
	epoch := c.sessions.Epoch()

	c.mu.Lock()
	switch c.state {
	case domain.PrivacyResolved:
		value := c.value
		c.mu.Unlock()
		return value, nil
	case domain.PrivacyFailed:
		// Loading is entered only from Empty; a Failed shadow stays
		// Failed until invalidated so callers see a stable outcome.
		c.mu.Unlock()
		return "", domain.ErrPrivacyUnavailable
	case domain.PrivacyEmpty:
		c.state = domain.PrivacyLoading
	}
	gen := c.gen
	c.mu.Unlock()

	key := strconv.FormatUint(epoch, 10) + ":" + strconv.FormatUint(gen, 10)
	result, err, _ := c.group.Do(key, func() (any, error) {
		value, err := c.fetcher.FetchPrivacy(ctx, identity.Token)
		if err != nil {
			return nil, err
		}
		return value, nil
	})

	// Re-verify under the lock, atomically with the state write: a
	// Clear or Invalidate that completed during the flight supersedes
	// this resolution.
	c.mu.Lock()
	if c.sessions.Epoch() != epoch {
		c.mu.Unlock()
		return "", domain.ErrNoSession
	}
	if c.gen != gen {
		c.mu.Unlock()
		// Invalidated mid-flight; resolve against the fresh shadow.
		return c.Fetch(ctx)
	}

	if err != nil {
		if c.state == domain.PrivacyLoading {
			c.state = domain.PrivacyFailed
		}
		c.mu.Unlock()
		return "", fmt.Errorf("%w: %w", domain.ErrPrivacyUnavailable, err)
	}

	value := result.(domain.PrivacyPreference)
	c.state = domain.PrivacyResolved
	c.value = value
	c.mu.Unlock()
	return value, nil
}

// Invalidate drops the shadow back to Empty and advances the flight
// generation, cutting off any fetch still in the air. Called on every
// session change and after a known server-side settings write.
func (c *PrivacyCache) Invalidate() {
	c.mu.Lock()
	c.state = domain.PrivacyEmpty
	c.value = ""
	c.gen++
	c.mu.Unlock()
}
