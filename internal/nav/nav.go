// Package nav defines the navigation collaborator contract. Once a place
// is resolved, a Navigator performs the actual lookup on the external map
// surface; the engine only depends on this interface, not on how the
// surface is driven.
package nav

import (
	"context"

	"github.com/campusnav/hku-mapbot-go/internal/catalog"
)

// Target identifies the place to navigate to.
type Target struct {
	Name        string
	Category    catalog.Category
	Subcategory string
}

// Navigator performs navigation for a resolved target and reports whether
// it succeeded, with a diagnostic message.
type Navigator interface {
	Navigate(ctx context.Context, t Target) (bool, string)
}

// Noop is a Navigator that accepts every target without side effects.
// Used when no map surface is attached.
type Noop struct{}

func (Noop) Navigate(_ context.Context, _ Target) (bool, string) {
	return true, ""
}
