package resolver

import "github.com/campusnav/hku-mapbot-go/internal/catalog"

// Method names the strategy that produced a resolution.
type Method string

const (
	MethodExact      Method = "exact"
	MethodFuzzy      Method = "fuzzy"
	MethodKeyword    Method = "keyword"
	MethodSimilarity Method = "similarity"
)

// Kind discriminates the outcome union.
type Kind int

const (
	KindResolved Kind = iota
	KindCandidates
	KindUnresolved
)

// Candidate is one ranked place offered for confirmation.
type Candidate struct {
	Place          catalog.Place
	Score          float64
	MatchedKeyword string
}

// Outcome is the result of one resolution pass.
// Place and Method are set for KindResolved; Candidates, Method, and
// SubcategoryHint for KindCandidates; Query always carries the original
// input.
type Outcome struct {
	Kind            Kind
	Place           catalog.Place
	Method          Method
	Candidates      []Candidate
	SubcategoryHint string
	Query           string
}

// Resolved reports whether the outcome carries a final place.
func (o Outcome) Resolved() bool {
	return o.Kind == KindResolved
}
