package catalog

import (
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/campusnav/hku-mapbot-go/internal/stringutil"
)

// Scored pairs a place with its similarity score against a query.
type Scored struct {
	Place Place
	Score float64
}

// RankBySimilarity scores every place against the query and returns the
// topN best matches in descending score order. Per place the score is the
// maximum similarity over the canonical name and every alias. Ties keep
// catalog order, so output is stable for identical input.
func (c *Catalog) RankBySimilarity(query string, topN int) []Scored {
	q := stringutil.Normalize(query)
	if q == "" || topN <= 0 {
		return nil
	}

	scored := make([]Scored, 0, len(c.places))
	for _, p := range c.places {
		best := similarity(q, stringutil.Normalize(p.Name))
		for _, a := range p.Aliases {
			if s := similarity(q, stringutil.Normalize(a)); s > best {
				best = s
			}
		}
		scored = append(scored, Scored{Place: p, Score: best})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}

// similarity is the normalized edit distance ratio between two strings,
// in [0, 1] with 1 meaning equal.
func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	la, lb := stringutil.RuneLen(a), stringutil.RuneLen(b)
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}
