package catalog

import (
	"strings"

	"github.com/campusnav/hku-mapbot-go/internal/stringutil"
)

// KeywordMatch records which keyword surfaced a place during search.
type KeywordMatch struct {
	Place   Place
	Keyword string
}

// SearchByKeywords finds places whose canonical name or alias contains any
// of the keywords, deduplicated by canonical name with first occurrence
// kept. When subcategoryHint names an existing facility bucket, the whole
// bucket is returned immediately with the first keyword recorded as the
// match, skipping the general scan.
func (c *Catalog) SearchByKeywords(keywords []string, subcategoryHint string) []KeywordMatch {
	if subcategoryHint != "" {
		if bucket := c.Subcategory(subcategoryHint); len(bucket) > 0 {
			first := ""
			if len(keywords) > 0 {
				first = keywords[0]
			}
			out := make([]KeywordMatch, 0, len(bucket))
			for _, p := range bucket {
				out = append(out, KeywordMatch{Place: p, Keyword: first})
			}
			return out
		}
	}

	var out []KeywordMatch
	found := make(map[string]struct{})
	for _, kw := range keywords {
		k := stringutil.Normalize(kw)
		if k == "" {
			continue
		}
		for _, p := range c.places {
			if _, ok := found[p.Name]; ok {
				continue
			}
			if placeContains(p, k) {
				found[p.Name] = struct{}{}
				out = append(out, KeywordMatch{Place: p, Keyword: kw})
			}
		}
	}
	return out
}

func placeContains(p Place, keyword string) bool {
	if strings.Contains(stringutil.Normalize(p.Name), keyword) {
		return true
	}
	for _, a := range p.Aliases {
		if strings.Contains(stringutil.Normalize(a), keyword) {
			return true
		}
	}
	return false
}
