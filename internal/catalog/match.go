package catalog

import (
	"strings"

	"github.com/campusnav/hku-mapbot-go/internal/stringutil"
)

// MatchExact returns the first place whose canonical name or alias equals
// the normalized query. Catalog order breaks alias ties.
func (c *Catalog) MatchExact(query string) (Place, bool) {
	q := stringutil.Normalize(query)
	if q == "" {
		return Place{}, false
	}
	for _, p := range c.places {
		if stringutil.Normalize(p.Name) == q {
			return p, true
		}
		for _, a := range p.Aliases {
			if stringutil.Normalize(a) == q {
				return p, true
			}
		}
	}
	return Place{}, false
}

// MatchFuzzy returns the first place whose canonical name or alias contains
// the normalized query, or is contained in it. Both directions are tried
// because a query may be a fragment of a long official name or a sentence
// that embeds the name. No ranking among multiple hits.
func (c *Catalog) MatchFuzzy(query string) (Place, bool) {
	q := stringutil.Normalize(query)
	if q == "" {
		return Place{}, false
	}
	for _, p := range c.places {
		if containsEither(q, stringutil.Normalize(p.Name)) {
			return p, true
		}
		for _, a := range p.Aliases {
			if containsEither(q, stringutil.Normalize(a)) {
				return p, true
			}
		}
	}
	return Place{}, false
}

func containsEither(query, name string) bool {
	if name == "" {
		return false
	}
	return strings.Contains(query, name) || strings.Contains(name, query)
}
