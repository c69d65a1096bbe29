package casino

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/fadedpez/cardroyale/internal/logging"
	"github.com/fadedpez/cardroyale/internal/types"
	"github.com/fadedpez/cardroyale/pkg/metrics"
)

// DefaultCacheSize bounds the idle sessions kept in memory.
const DefaultCacheSize = 128

// ErrEmptyAccount is returned for a blank account id.
var ErrEmptyAccount = types.NewGameError(types.ErrInvalidInput, "account id is required")

// Builder creates the session for an account that is not cached
type Builder func(ctx context.Context, accountID string) *Session

type entry struct {
	mu      sync.Mutex
	session *Session
	refs    int
}

// Manager hands out sessions one caller at a time per account. Idle sessions
// live in an LRU; a session in use is pinned and cannot be evicted.
type Manager struct {
	mu     sync.Mutex
	cache  *lru.Cache[string, *entry]
	active map[string]*entry
	build  Builder
	log    *logging.Logger
}

// NewManager creates a manager caching up to size idle sessions
func NewManager(size int, build Builder, logger *logging.Logger) (*Manager, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	m := &Manager{
		active: make(map[string]*entry),
		build:  build,
		log:    logger.Or().WithPrefix("casino"),
	}

	cache, err := lru.NewWithEvict(size, m.evicted)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	m.cache = cache
	return m, nil
}

// NewManagerFromDeps creates a manager that builds sessions from deps
func NewManagerFromDeps(size int, deps Deps) (*Manager, error) {
	return NewManager(size, func(ctx context.Context, accountID string) *Session {
		return NewSession(ctx, accountID, deps)
	}, deps.Logger)
}

// evicted runs inside cache.Add with m.mu held
func (m *Manager) evicted(accountID string, e *entry) {
	if e.refs > 0 {
		return
	}
	e.session.Close()
	m.log.Debug("Session evicted: %s", accountID)
}

// Do runs fn with the account's session. Calls for the same account are
// serialized; calls for different accounts run concurrently.
func (m *Manager) Do(ctx context.Context, accountID string, fn func(*Session) error) error {
	if accountID == "" {
		return ErrEmptyAccount
	}

	e := m.acquire(ctx, accountID)
	defer m.release(accountID, e)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(e.session)
}

func (m *Manager) acquire(ctx context.Context, accountID string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.active[accountID]
	if !ok {
		e, ok = m.cache.Get(accountID)
	}
	if !ok {
		e = &entry{session: m.build(ctx, accountID)}
		m.log.Debug("Session opened: %s", accountID)
	}

	e.refs++
	m.active[accountID] = e
	m.cache.Add(accountID, e)
	metrics.SessionsCached.Set(float64(m.cache.Len()))
	return e
}

func (m *Manager) release(accountID string, e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.refs--
	if e.refs > 0 {
		return
	}
	delete(m.active, accountID)

	// Evicted while in use
	if !m.cache.Contains(accountID) {
		m.cache.Add(accountID, e)
	}
	metrics.SessionsCached.Set(float64(m.cache.Len()))
}

// Len returns the number of cached sessions
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache.Len()
}

// Close empties the cache, abandoning every idle session's round in
// progress. Sessions in use are left to their callers.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cache.Purge()
	metrics.SessionsCached.Set(0)
}
