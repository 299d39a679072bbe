package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func TestBucketAllow(t *testing.T) {
	t.Parallel()

	b := NewBucket(3, 0.001) // effectively no refill during the test

	for i := 0; i < 3; i++ {
		if !b.Allow() {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	if b.Allow() {
		t.Error("request beyond burst should be denied")
	}
}

func TestBucketRefill(t *testing.T) {
	t.Parallel()

	b := NewBucket(1, 100) // refills a full token in 10ms

	if !b.Allow() {
		t.Fatal("first request should be allowed")
	}
	if b.Allow() {
		t.Fatal("bucket should be empty")
	}

	time.Sleep(20 * time.Millisecond)

	if !b.Allow() {
		t.Error("bucket should have refilled")
	}
}

func TestBucketIsFull(t *testing.T) {
	t.Parallel()

	b := NewBucket(2, 0.001)
	if !b.IsFull() {
		t.Error("new bucket should start full")
	}

	b.Allow()
	if b.IsFull() {
		t.Error("bucket should not be full after consuming a token")
	}
}

func TestSessionLimiterIndependentSessions(t *testing.T) {
	t.Parallel()

	sl := NewSessionLimiter(SessionConfig{
		Burst:      1,
		RefillRate: 0.001,
	})
	defer sl.Stop()

	if !sl.Allow("alice") {
		t.Fatal("alice's first request should be allowed")
	}
	if sl.Allow("alice") {
		t.Error("alice should be limited")
	}
	if !sl.Allow("bob") {
		t.Error("bob should have his own bucket")
	}

	if got := sl.ActiveCount(); got != 2 {
		t.Errorf("ActiveCount() = %d, want 2", got)
	}
}

func TestSessionLimiterEmptyKey(t *testing.T) {
	t.Parallel()

	sl := NewSessionLimiter(SessionConfig{
		Burst:      1,
		RefillRate: 0.001,
	})
	defer sl.Stop()

	for i := 0; i < 10; i++ {
		if !sl.Allow("") {
			t.Fatal("empty session ID should never be limited")
		}
	}

	if got := sl.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount() = %d, want 0", got)
	}
}

func TestSessionLimiterCleanup(t *testing.T) {
	t.Parallel()

	sl := NewSessionLimiter(SessionConfig{
		Burst:         1,
		RefillRate:    1000, // refills instantly, so buckets look idle
		CleanupPeriod: 10 * time.Millisecond,
	})
	defer sl.Stop()

	sl.Allow("alice")
	sl.Allow("bob")

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if sl.ActiveCount() == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Errorf("ActiveCount() = %d after cleanup window, want 0", sl.ActiveCount())
}

func TestSessionLimiterConcurrent(t *testing.T) {
	t.Parallel()

	sl := NewSessionLimiter(SessionConfig{
		Burst:      1000,
		RefillRate: 0.001,
	})
	defer sl.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				sl.Allow("shared")
			}
		}()
	}
	wg.Wait()

	// 1000 burst, 500 consumed
	if got := sl.ActiveCount(); got != 1 {
		t.Errorf("ActiveCount() = %d, want 1", got)
	}
}

func TestSessionLimiterStopIdempotent(t *testing.T) {
	t.Parallel()

	sl := NewSessionLimiter(SessionConfig{Burst: 1, RefillRate: 1})
	sl.Stop()
	sl.Stop()
}
