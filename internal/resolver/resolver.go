// Package resolver sequences the matching strategies over the catalog:
// exact, fuzzy substring, intent-driven keyword search, and similarity
// ranking, with fixed confidence thresholds deciding between a direct
// answer, a candidate menu, and unresolved.
package resolver

import (
	"context"
	"time"

	"github.com/campusnav/hku-mapbot-go/internal/catalog"
	"github.com/campusnav/hku-mapbot-go/internal/intent"
	"github.com/campusnav/hku-mapbot-go/internal/logger"
	"github.com/campusnav/hku-mapbot-go/internal/metrics"
	"github.com/campusnav/hku-mapbot-go/internal/stringutil"
)

// Fixed policy constants. Tests pin these values as part of the contract.
const (
	// HighConfidence resolves a similarity hit directly.
	HighConfidence = 0.6
	// LowConfidence is the floor for offering similarity candidates.
	LowConfidence = 0.3
	// ShortQueryRunes bounds queries eligible for intent extraction.
	ShortQueryRunes = 15
	// MaxCandidates caps any candidate menu.
	MaxCandidates = 5
	// SimilarityTopN is the similarity ranking depth.
	SimilarityTopN = 3
	// KeywordScore is the flat score assigned to keyword-search hits.
	KeywordScore = 0.75
)

// Resolver runs the strategy cascade.
type Resolver struct {
	catalog   *catalog.Catalog
	extractor *intent.Extractor
	log       *logger.Logger
	metrics   *metrics.Metrics
}

// New creates a resolver over an immutable catalog.
func New(cat *catalog.Catalog, ext *intent.Extractor, log *logger.Logger, m *metrics.Metrics) *Resolver {
	return &Resolver{
		catalog:   cat,
		extractor: ext,
		log:       log.WithModule("resolver"),
		metrics:   m,
	}
}

// Resolve maps a free-form query to an outcome. It never fails; the worst
// result is Unresolved.
func (r *Resolver) Resolve(ctx context.Context, query string) Outcome {
	start := time.Now()

	normalized := stringutil.Normalize(query)
	if normalized == "" {
		r.metrics.RecordResolve("none", "unresolved", time.Since(start).Seconds())
		return Outcome{Kind: KindUnresolved, Query: query}
	}

	if place, ok := r.catalog.MatchExact(query); ok {
		r.record("exact", "resolved", start)
		return Outcome{Kind: KindResolved, Place: place, Method: MethodExact, Query: query}
	}

	if place, ok := r.catalog.MatchFuzzy(query); ok {
		r.record("fuzzy", "resolved", start)
		return Outcome{Kind: KindResolved, Place: place, Method: MethodFuzzy, Query: query}
	}

	// Only short queries without digits look like intents; anything else
	// is treated as a garbled place name and goes straight to similarity.
	if stringutil.RuneLen(normalized) < ShortQueryRunes && !stringutil.ContainsDigit(normalized) {
		if out, ok := r.resolveByIntent(ctx, query); ok {
			r.record("intent", "ambiguous", start)
			return out
		}
	}

	return r.resolveBySimilarity(query, start)
}

// resolveByIntent extracts an intent and searches the catalog with its
// keywords. Hits come back as a candidate menu, never a direct answer.
func (r *Resolver) resolveByIntent(ctx context.Context, query string) (Outcome, bool) {
	rec := r.extractor.Extract(ctx, query)

	matches := r.catalog.SearchByKeywords(rec.Keywords, rec.SubcategoryHint)
	if len(matches) == 0 {
		return Outcome{}, false
	}

	// Prefer entities of the hinted category, but never filter down to
	// nothing.
	filtered := make([]catalog.KeywordMatch, 0, len(matches))
	for _, m := range matches {
		if m.Place.Category == rec.CategoryHint {
			filtered = append(filtered, m)
		}
	}
	if len(filtered) == 0 {
		filtered = matches
	}

	if len(filtered) > MaxCandidates {
		filtered = filtered[:MaxCandidates]
	}

	candidates := make([]Candidate, 0, len(filtered))
	for _, m := range filtered {
		candidates = append(candidates, Candidate{
			Place:          m.Place,
			Score:          KeywordScore,
			MatchedKeyword: m.Keyword,
		})
	}

	r.log.WithFields(map[string]any{
		"intent":     rec.Intent,
		"candidates": len(candidates),
	}).Debug("keyword search produced candidates")

	return Outcome{
		Kind:            KindCandidates,
		Method:          MethodKeyword,
		Candidates:      candidates,
		SubcategoryHint: rec.SubcategoryHint,
		Query:           query,
	}, true
}

func (r *Resolver) resolveBySimilarity(query string, start time.Time) Outcome {
	ranked := r.catalog.RankBySimilarity(query, SimilarityTopN)
	if len(ranked) == 0 {
		r.record("similarity", "unresolved", start)
		return Outcome{Kind: KindUnresolved, Query: query}
	}

	top := ranked[0]
	switch {
	case top.Score > HighConfidence:
		r.record("similarity", "resolved", start)
		return Outcome{Kind: KindResolved, Place: top.Place, Method: MethodSimilarity, Query: query}

	case top.Score > LowConfidence:
		candidates := make([]Candidate, 0, len(ranked))
		for _, s := range ranked {
			candidates = append(candidates, Candidate{Place: s.Place, Score: s.Score})
		}
		r.record("similarity", "ambiguous", start)
		return Outcome{
			Kind:       KindCandidates,
			Method:     MethodSimilarity,
			Candidates: candidates,
			Query:      query,
		}

	default:
		r.record("similarity", "unresolved", start)
		return Outcome{Kind: KindUnresolved, Query: query}
	}
}

func (r *Resolver) record(stage, status string, start time.Time) {
	r.metrics.RecordResolve(stage, status, time.Since(start).Seconds())
}
