// Package session holds per-conversation confirmation state. Each session
// carries at most one pending disambiguation, evicted after an idle TTL so
// abandoned conversations do not accumulate.
package session

import (
	"sync"
	"time"

	"github.com/campusnav/hku-mapbot-go/internal/metrics"
	"github.com/campusnav/hku-mapbot-go/internal/resolver"
)

// Pending is the outstanding disambiguation for one session.
type Pending struct {
	Candidates      []resolver.Candidate
	Query           string
	SubcategoryHint string
	CreatedAt       time.Time
}

// Config configures a Store instance.
type Config struct {
	// TTL is the idle lifetime of a pending confirmation.
	TTL time.Duration

	// CleanupPeriod is how often expired sessions are evicted.
	CleanupPeriod time.Duration

	// Optional metrics reporter
	Metrics *metrics.Metrics
}

// Store tracks pending confirmations per session key. Sessions are fully
// independent: consuming one session's pending state never touches
// another's.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	config  Config
	stopCh  chan struct{}
}

type entry struct {
	pending  Pending
	lastSeen time.Time
}

// NewStore creates a session store and starts its eviction loop.
// Call Stop when done.
func NewStore(cfg Config) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Minute
	}
	if cfg.CleanupPeriod <= 0 {
		cfg.CleanupPeriod = time.Minute
	}

	s := &Store{
		entries: make(map[string]*entry),
		config:  cfg,
		stopCh:  make(chan struct{}),
	}

	go s.cleanupLoop()

	return s
}

// SetPending stores a pending confirmation for a session, replacing any
// previous one.
func (s *Store) SetPending(sessionID string, p Pending) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	s.mu.Lock()
	s.entries[sessionID] = &entry{pending: p, lastSeen: time.Now()}
	count := len(s.entries)
	s.mu.Unlock()

	s.reportActive(count)
}

// TakePending removes and returns the pending confirmation for a session.
// A stale entry past the TTL is discarded as if it never existed.
func (s *Store) TakePending(sessionID string) (Pending, bool) {
	s.mu.Lock()
	e, ok := s.entries[sessionID]
	if ok {
		delete(s.entries, sessionID)
	}
	count := len(s.entries)
	s.mu.Unlock()

	if !ok {
		return Pending{}, false
	}

	s.reportActive(count)

	if time.Since(e.lastSeen) > s.config.TTL {
		if s.config.Metrics != nil {
			s.config.Metrics.RecordSessionExpired(1)
		}
		return Pending{}, false
	}
	return e.pending, true
}

// Clear drops any pending confirmation for a session.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	delete(s.entries, sessionID)
	count := len(s.entries)
	s.mu.Unlock()

	s.reportActive(count)
}

// ActiveCount returns the number of sessions with pending confirmations.
func (s *Store) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// cleanupLoop periodically evicts sessions idle past the TTL.
func (s *Store) cleanupLoop() {
	ticker := time.NewTicker(s.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			now := time.Now()
			expired := 0

			s.mu.Lock()
			for key, e := range s.entries {
				if now.Sub(e.lastSeen) > s.config.TTL {
					delete(s.entries, key)
					expired++
				}
			}
			count := len(s.entries)
			s.mu.Unlock()

			if expired > 0 && s.config.Metrics != nil {
				s.config.Metrics.RecordSessionExpired(expired)
			}
			s.reportActive(count)
		}
	}
}

func (s *Store) reportActive(count int) {
	if s.config.Metrics != nil {
		s.config.Metrics.SessionsActive.Set(float64(count))
	}
}

// Stop gracefully stops the eviction goroutine.
// Safe to call multiple times.
func (s *Store) Stop() {
	select {
	case <-s.stopCh:
		// Already stopped
	default:
		close(s.stopCh)
	}
}
