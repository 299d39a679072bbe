package intent

import (
	"context"
	"encoding/json"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/campusnav/hku-mapbot-go/internal/catalog"
	"github.com/campusnav/hku-mapbot-go/internal/logger"
	"github.com/campusnav/hku-mapbot-go/internal/metrics"
	"github.com/campusnav/hku-mapbot-go/internal/oracle"
	"github.com/campusnav/hku-mapbot-go/internal/stringutil"
)

const oracleAttempts = 2

// Store persists oracle extractions across restarts. Records are stored
// as JSON strings keyed by normalized phrase.
type Store interface {
	SaveIntent(ctx context.Context, phrase, record string) error
	LoadIntents(ctx context.Context) (map[string]string, error)
}

// Extractor resolves a phrase to a Record via cache, oracle, or the rule
// table. It never fails: an unreachable or incoherent oracle degrades to
// the deterministic fallback.
type Extractor struct {
	completer oracle.Completer
	cache     *Cache
	store     Store
	group     singleflight.Group
	log       *logger.Logger
	metrics   *metrics.Metrics
}

// New creates an extractor. completer and store may be nil; a nil store
// disables persistence and a nil completer routes every uncached phrase
// to the rule table.
func New(completer oracle.Completer, cache *Cache, store Store, log *logger.Logger, m *metrics.Metrics) *Extractor {
	return &Extractor{
		completer: completer,
		cache:     cache,
		store:     store,
		log:       log.WithModule("intent"),
		metrics:   m,
	}
}

// LoadPersisted merges previously persisted extractions into the memory
// cache. Seed entries are not overwritten.
func (e *Extractor) LoadPersisted(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	stored, err := e.store.LoadIntents(ctx)
	if err != nil {
		return err
	}
	loaded := 0
	for phrase, raw := range stored {
		if _, ok := e.cache.Get(phrase); ok {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			e.log.WithError(err).WithField("phrase", phrase).Warn("skipping corrupt persisted intent")
			continue
		}
		e.cache.Put(phrase, rec)
		loaded++
	}
	e.log.WithField("count", loaded).Info("persisted intents loaded")
	return nil
}

// Extract returns the intent record for a query. Cache first, then the
// oracle with bounded attempts, then the rule table, then the default
// record. Only oracle successes are cached and persisted.
func (e *Extractor) Extract(ctx context.Context, query string) Record {
	phrase := stringutil.Normalize(query)

	if rec, ok := e.cache.Get(phrase); ok {
		e.metrics.RecordCacheHit("memory")
		return rec
	}
	e.metrics.RecordCacheMiss("memory")

	// Concurrent first-time extraction of the same phrase would call the
	// oracle redundantly; collapse those callers onto one flight.
	v, err, shared := e.group.Do(phrase, func() (any, error) {
		if rec, ok := e.fromOracle(ctx, query); ok {
			e.cache.Put(phrase, rec)
			e.persist(ctx, phrase, rec)
			return rec, nil
		}
		if rec, ok := matchRules(query); ok {
			return rec, nil
		}
		return DefaultRecord(query), nil
	})
	if shared {
		e.metrics.RecordSingleflightDedup("intent")
	}
	if err != nil {
		// The flight function never returns an error; keep a safe floor.
		return DefaultRecord(query)
	}
	return v.(Record)
}

// fromOracle asks the oracle for a structured record, retrying once on
// transport failure or unusable output.
func (e *Extractor) fromOracle(ctx context.Context, query string) (Record, bool) {
	if e.completer == nil {
		return Record{}, false
	}
	prompt := buildIntentPrompt(query)

	for attempt := 1; attempt <= oracleAttempts; attempt++ {
		raw, err := e.completer.Complete(ctx, prompt)
		if err != nil {
			e.log.WithError(err).WithFields(map[string]any{
				"attempt": attempt,
				"query":   query,
			}).Warn("oracle call failed")
			continue
		}

		rec, ok := decodeRecord(raw)
		if !ok {
			e.log.WithFields(map[string]any{
				"attempt": attempt,
				"query":   query,
			}).Warn("oracle returned unusable output")
			continue
		}
		return rec, true
	}
	return Record{}, false
}

func (e *Extractor) persist(ctx context.Context, phrase string, rec Record) {
	if e.store == nil {
		return
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := e.store.SaveIntent(ctx, phrase, string(raw)); err != nil {
		e.log.WithError(err).WithField("phrase", phrase).Warn("failed to persist intent")
	}
}

// oracleRecord is the strict decode target for the oracle's reply. Any
// missing or mistyped field triggers the fallback rather than partial
// field coercion.
type oracleRecord struct {
	Intent       string   `json:"intent"`
	Keywords     []string `json:"keywords"`
	CategoryHint string   `json:"category_hint"`
	Subcategory  string   `json:"subcategory"`
}

// decodeRecord strips code fences from the oracle's text and attempts a
// typed parse. Keywords are required; an empty intent defaults to
// "unknown" and an unknown category hint defaults to facility.
func decodeRecord(raw string) (Record, bool) {
	text := stripCodeFences(raw)
	if text == "" {
		return Record{}, false
	}

	var or oracleRecord
	if err := json.Unmarshal([]byte(text), &or); err != nil {
		return Record{}, false
	}
	if len(or.Keywords) == 0 {
		return Record{}, false
	}

	intentName := or.Intent
	if intentName == "" {
		intentName = "unknown"
	}

	return Record{
		Intent:          intentName,
		Keywords:        or.Keywords,
		CategoryHint:    catalog.ParseCategory(or.CategoryHint),
		SubcategoryHint: or.Subcategory,
	}, true
}

// stripCodeFences extracts a JSON object from a reply that may wrap it in
// markdown fences or surrounding prose.
func stripCodeFences(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.Contains(text, "```") {
		for _, part := range strings.Split(text, "```") {
			part = strings.TrimSpace(part)
			part = strings.TrimSpace(strings.TrimPrefix(part, "json"))
			if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
				return part
			}
		}
		return ""
	}
	return text
}
