package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/campusnav/hku-mapbot-go/internal/catalog"
	"github.com/campusnav/hku-mapbot-go/internal/resolver"
)

func pendingFor(names ...string) Pending {
	p := Pending{Query: "test"}
	for _, n := range names {
		p.Candidates = append(p.Candidates, resolver.Candidate{
			Place: catalog.Place{Name: n, Category: catalog.CategoryFacility},
			Score: 0.75,
		})
	}
	return p
}

func TestSetAndTakePending(t *testing.T) {
	t.Parallel()

	s := NewStore(Config{TTL: time.Minute, CleanupPeriod: time.Hour})
	defer s.Stop()

	s.SetPending("sess-1", pendingFor("A", "B"))

	p, ok := s.TakePending("sess-1")
	if !ok {
		t.Fatal("expected pending confirmation")
	}
	if len(p.Candidates) != 2 {
		t.Errorf("expected 2 candidates, got %d", len(p.Candidates))
	}

	// Take consumes: second call finds nothing.
	if _, ok := s.TakePending("sess-1"); ok {
		t.Error("expected pending to be consumed")
	}
}

func TestTakePendingUnknownSession(t *testing.T) {
	t.Parallel()

	s := NewStore(Config{TTL: time.Minute, CleanupPeriod: time.Hour})
	defer s.Stop()

	if _, ok := s.TakePending("nobody"); ok {
		t.Error("expected no pending for unknown session")
	}
}

func TestSetPendingOverwrites(t *testing.T) {
	t.Parallel()

	s := NewStore(Config{TTL: time.Minute, CleanupPeriod: time.Hour})
	defer s.Stop()

	s.SetPending("sess-1", pendingFor("A"))
	s.SetPending("sess-1", pendingFor("B", "C"))

	p, ok := s.TakePending("sess-1")
	if !ok {
		t.Fatal("expected pending confirmation")
	}
	if len(p.Candidates) != 2 || p.Candidates[0].Place.Name != "B" {
		t.Errorf("expected overwritten candidates, got %+v", p.Candidates)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	t.Parallel()

	s := NewStore(Config{TTL: time.Minute, CleanupPeriod: time.Hour})
	defer s.Stop()

	s.SetPending("sess-1", pendingFor("A"))
	s.SetPending("sess-2", pendingFor("B"))

	p1, ok := s.TakePending("sess-1")
	if !ok || p1.Candidates[0].Place.Name != "A" {
		t.Fatalf("session 1 got %+v", p1)
	}

	// Consuming session 1 must not touch session 2.
	p2, ok := s.TakePending("sess-2")
	if !ok || p2.Candidates[0].Place.Name != "B" {
		t.Fatalf("session 2 got %+v", p2)
	}
}

func TestTakePendingExpired(t *testing.T) {
	t.Parallel()

	s := NewStore(Config{TTL: 10 * time.Millisecond, CleanupPeriod: time.Hour})
	defer s.Stop()

	s.SetPending("sess-1", pendingFor("A"))
	time.Sleep(30 * time.Millisecond)

	if _, ok := s.TakePending("sess-1"); ok {
		t.Error("expected stale pending to be discarded")
	}
}

func TestCleanupLoopEvicts(t *testing.T) {
	t.Parallel()

	s := NewStore(Config{TTL: 10 * time.Millisecond, CleanupPeriod: 20 * time.Millisecond})
	defer s.Stop()

	s.SetPending("sess-1", pendingFor("A"))

	deadline := time.After(2 * time.Second)
	for s.ActiveCount() != 0 {
		select {
		case <-deadline:
			t.Fatal("eviction loop did not clean up in time")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestConcurrentSessions(t *testing.T) {
	t.Parallel()

	s := NewStore(Config{TTL: time.Minute, CleanupPeriod: time.Hour})
	defer s.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("sess-%d", i)
			name := fmt.Sprintf("Place %d", i)
			s.SetPending(id, pendingFor(name))
			p, ok := s.TakePending(id)
			if !ok {
				t.Errorf("session %s lost its pending", id)
				return
			}
			if p.Candidates[0].Place.Name != name {
				t.Errorf("session %s got %s", id, p.Candidates[0].Place.Name)
			}
		}(i)
	}
	wg.Wait()
}

func TestStopIsIdempotent(t *testing.T) {
	t.Parallel()

	s := NewStore(Config{TTL: time.Minute, CleanupPeriod: time.Hour})
	s.Stop()
	s.Stop()
}
