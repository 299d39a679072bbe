// Package intent turns short ambiguous queries into a structured intent
// with multilingual search keywords. Extraction is layered: a seeded
// in-memory cache of known phrases, then the external oracle, then a
// deterministic rule table when the oracle is unavailable or returns
// unusable output.
package intent

import (
	"github.com/campusnav/hku-mapbot-go/internal/catalog"
	"github.com/campusnav/hku-mapbot-go/internal/sliceutil"
	"github.com/campusnav/hku-mapbot-go/internal/stringutil"
)

// Record is one extraction result.
type Record struct {
	Intent          string           `json:"intent"`
	Keywords        []string         `json:"keywords"`
	CategoryHint    catalog.Category `json:"category_hint"`
	SubcategoryHint string           `json:"subcategory_hint,omitempty"`
}

// DefaultRecord is the last-resort extraction when no rule matches: search
// for the query text itself, with and without punctuation.
func DefaultRecord(query string) Record {
	keywords := sliceutil.Deduplicate(
		[]string{query, stringutil.StripPunctuation(query)},
		func(s string) string { return s },
	)
	return Record{
		Intent:       "unknown",
		Keywords:     keywords,
		CategoryHint: catalog.CategoryFacility,
	}
}
