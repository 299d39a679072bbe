package ratelimit

import (
	"sync"
	"time"

	"github.com/campusnav/hku-mapbot-go/internal/metrics"
)

// SessionConfig configures a SessionLimiter.
type SessionConfig struct {
	// Token bucket settings applied to every session.
	Burst      float64
	RefillRate float64 // tokens per second

	// CleanupPeriod controls how often idle buckets are evicted.
	// Defaults to 5 minutes.
	CleanupPeriod time.Duration

	// Optional metrics reporter.
	Metrics *metrics.Metrics
}

// SessionLimiter enforces a per-session token bucket. Each session gets
// its own bucket on first use; buckets back at full capacity are evicted
// by a background sweep so idle sessions do not accumulate.
type SessionLimiter struct {
	mu      sync.RWMutex
	buckets map[string]*Bucket
	config  SessionConfig
	stopCh  chan struct{}
}

// NewSessionLimiter creates a per-session rate limiter and starts its
// cleanup goroutine. Call Stop when done.
func NewSessionLimiter(cfg SessionConfig) *SessionLimiter {
	if cfg.CleanupPeriod <= 0 {
		cfg.CleanupPeriod = 5 * time.Minute
	}

	sl := &SessionLimiter{
		buckets: make(map[string]*Bucket),
		config:  cfg,
		stopCh:  make(chan struct{}),
	}

	go sl.cleanupLoop()

	return sl
}

// Allow reports whether a request for the given session may proceed,
// consuming one token when it does. An empty session ID is never limited.
func (sl *SessionLimiter) Allow(sessionID string) bool {
	if sessionID == "" {
		return true
	}

	allowed := sl.getOrCreateBucket(sessionID).Allow()
	if !allowed && sl.config.Metrics != nil {
		sl.config.Metrics.RecordRateLimitDrop("chat")
	}
	return allowed
}

func (sl *SessionLimiter) getOrCreateBucket(sessionID string) *Bucket {
	sl.mu.RLock()
	bucket, exists := sl.buckets[sessionID]
	sl.mu.RUnlock()

	if exists {
		return bucket
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	// Double-check after acquiring write lock
	bucket, exists = sl.buckets[sessionID]
	if exists {
		return bucket
	}

	bucket = NewBucket(sl.config.Burst, sl.config.RefillRate)
	sl.buckets[sessionID] = bucket
	return bucket
}

// ActiveCount returns the number of tracked sessions.
func (sl *SessionLimiter) ActiveCount() int {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return len(sl.buckets)
}

// cleanupLoop periodically evicts buckets that have refilled completely.
func (sl *SessionLimiter) cleanupLoop() {
	ticker := time.NewTicker(sl.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-sl.stopCh:
			return
		case <-ticker.C:
			sl.mu.Lock()
			for id, bucket := range sl.buckets {
				if bucket.IsFull() {
					delete(sl.buckets, id)
				}
			}
			sl.mu.Unlock()
		}
	}
}

// Stop terminates the cleanup goroutine. Safe to call multiple times.
func (sl *SessionLimiter) Stop() {
	select {
	case <-sl.stopCh:
		// Already stopped
	default:
		close(sl.stopCh)
	}
}
