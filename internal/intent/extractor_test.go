package intent

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/campusnav/hku-mapbot-go/internal/catalog"
	"github.com/campusnav/hku-mapbot-go/internal/logger"
	"github.com/campusnav/hku-mapbot-go/internal/metrics"
)

// fakeCompleter replays canned replies and records call counts.
type fakeCompleter struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   int
}

func (f *fakeCompleter) Complete(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	i := f.calls - 1
	if i >= len(f.replies) {
		i = len(f.replies) - 1
	}
	return f.replies[i], nil
}

type memStore struct {
	mu    sync.Mutex
	saved map[string]string
}

func newMemStore() *memStore {
	return &memStore{saved: make(map[string]string)}
}

func (s *memStore) SaveIntent(_ context.Context, phrase, record string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[phrase] = record
	return nil
}

func (s *memStore) LoadIntents(_ context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.saved))
	for k, v := range s.saved {
		out[k] = v
	}
	return out, nil
}

func newExtractor(c *fakeCompleter, store Store) *Extractor {
	log := logger.New("error")
	m := metrics.New(prometheus.NewRegistry())
	if c == nil {
		return New(nil, NewCache(), store, log, m)
	}
	return New(c, NewCache(), store, log, m)
}

func TestExtractCacheHit(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{err: errors.New("must not be called")}
	e := newExtractor(fake, nil)

	rec := e.Extract(context.Background(), "我想运动")
	if rec.Intent != "find_sports_facility" {
		t.Errorf("expected seeded find_sports_facility, got %s", rec.Intent)
	}
	if fake.calls != 0 {
		t.Errorf("expected no oracle calls for a seeded phrase, got %d", fake.calls)
	}
}

func TestExtractOracleSuccess(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{replies: []string{
		`{"intent":"find_dining","keywords":["餐厅","canteen","dining"],"category_hint":"facility"}`,
	}}
	store := newMemStore()
	e := newExtractor(fake, store)

	rec := e.Extract(context.Background(), "饿了想找点吃的")
	if rec.Intent != "find_dining" {
		t.Errorf("expected find_dining, got %s", rec.Intent)
	}
	if rec.CategoryHint != catalog.CategoryFacility {
		t.Errorf("expected facility hint, got %s", rec.CategoryHint)
	}

	// Success must be cached: second call stays off the oracle.
	_ = e.Extract(context.Background(), "饿了想找点吃的")
	if fake.calls != 1 {
		t.Errorf("expected 1 oracle call, got %d", fake.calls)
	}

	// And persisted.
	if len(store.saved) != 1 {
		t.Errorf("expected 1 persisted record, got %d", len(store.saved))
	}
}

func TestExtractOracleFencedOutput(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{replies: []string{
		"```json\n{\"intent\":\"find_bank\",\"keywords\":[\"bank\",\"atm\"],\"category_hint\":\"facility\"}\n```",
	}}
	e := newExtractor(fake, nil)

	rec := e.Extract(context.Background(), "我需要用自动取款机")
	if rec.Intent != "find_bank" {
		t.Errorf("expected find_bank from fenced reply, got %s", rec.Intent)
	}
}

func TestExtractOracleRetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{replies: []string{
		"not json at all",
		`{"intent":"find_toilet","keywords":["toilet","洗手间"],"category_hint":"facility"}`,
	}}
	e := newExtractor(fake, nil)

	rec := e.Extract(context.Background(), "急需方便一下")
	if rec.Intent != "find_toilet" {
		t.Errorf("expected find_toilet after retry, got %s", rec.Intent)
	}
	if fake.calls != 2 {
		t.Errorf("expected 2 oracle calls, got %d", fake.calls)
	}
}

func TestExtractOracleDownFallsBackToRules(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{err: errors.New("connection refused")}
	e := newExtractor(fake, nil)

	rec := e.Extract(context.Background(), "哪里可以停车啊")
	if rec.Intent != "find_parking" {
		t.Errorf("expected parking rule, got %s", rec.Intent)
	}
	found := false
	for _, kw := range rec.Keywords {
		if kw == "parking" {
			found = true
		}
	}
	if !found {
		t.Error("expected keyword set to contain 'parking'")
	}
	if rec.SubcategoryHint != "Parking" {
		t.Errorf("expected Parking subcategory hint, got %q", rec.SubcategoryHint)
	}
}

func TestExtractFailedOracleNotCached(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{err: errors.New("connection refused")}
	store := newMemStore()
	e := newExtractor(fake, store)

	_ = e.Extract(context.Background(), "我想找个地方健身")
	if len(store.saved) != 0 {
		t.Error("rule fallback results must not be persisted")
	}
	if _, ok := e.cache.Get("我想找个地方健身"); ok {
		t.Error("rule fallback results must not be cached")
	}
}

func TestExtractDefaultRecord(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{err: errors.New("connection refused")}
	e := newExtractor(fake, nil)

	rec := e.Extract(context.Background(), "xyzzy plugh?")
	if rec.Intent != "unknown" {
		t.Errorf("expected unknown intent, got %s", rec.Intent)
	}
	if len(rec.Keywords) == 0 {
		t.Fatal("expected default keywords")
	}
	if rec.Keywords[0] != "xyzzy plugh?" {
		t.Errorf("expected original query first, got %q", rec.Keywords[0])
	}
	if rec.CategoryHint != catalog.CategoryFacility {
		t.Errorf("expected facility default, got %s", rec.CategoryHint)
	}
}

func TestExtractNilCompleter(t *testing.T) {
	t.Parallel()

	e := newExtractor(nil, nil)

	rec := e.Extract(context.Background(), "我要去游泳")
	if rec.Intent != "find_sports_facility" && rec.Intent != "find_swimming" {
		t.Errorf("expected a rule hit with nil completer, got %s", rec.Intent)
	}
}

func TestLoadPersisted(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	raw, _ := json.Marshal(Record{
		Intent:       "find_dining",
		Keywords:     []string{"餐厅", "canteen"},
		CategoryHint: catalog.CategoryFacility,
	})
	_ = store.SaveIntent(context.Background(), "附近有什么好吃的", string(raw))
	_ = store.SaveIntent(context.Background(), "corrupt", "{not json")

	fake := &fakeCompleter{err: errors.New("must not be called")}
	e := newExtractor(fake, store)
	if err := e.LoadPersisted(context.Background()); err != nil {
		t.Fatalf("LoadPersisted() failed: %v", err)
	}

	rec := e.Extract(context.Background(), "附近有什么好吃的")
	if rec.Intent != "find_dining" {
		t.Errorf("expected persisted record, got %s", rec.Intent)
	}
	if fake.calls != 0 {
		t.Errorf("expected no oracle calls, got %d", fake.calls)
	}
}
