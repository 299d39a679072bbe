// Package catalog provides the immutable in-memory index of campus places.
// It loads canonical entities from JSON sources at startup and exposes the
// matching primitives the resolver builds on: exact lookup, substring
// matching, keyword search, and similarity ranking.
package catalog

// Category partitions the catalog.
type Category string

const (
	CategoryBuilding   Category = "building"
	CategoryDepartment Category = "department"
	CategoryFacility   Category = "facility"
)

// Categories returns all categories in catalog iteration order.
func Categories() []Category {
	return []Category{CategoryBuilding, CategoryDepartment, CategoryFacility}
}

// ParseCategory maps a free-form hint to a known category.
// Unknown values default to facility, the broadest bucket.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryBuilding, CategoryDepartment, CategoryFacility:
		return Category(s)
	default:
		return CategoryFacility
	}
}

// Place is one canonical campus entity. The canonical name is the only
// identifier ever returned to callers; aliases are search-only.
type Place struct {
	Name        string
	Aliases     []string
	Category    Category
	Subcategory string
}

// Catalog is read-only after Load. All places are held in a single slice
// ordered by category (building, department, facility) then source order,
// so iteration order is deterministic and ties resolve to the first entry.
type Catalog struct {
	places        []Place
	subcategories map[string][]int // bucket name -> indexes into places
}

// Places returns every place in catalog iteration order.
func (c *Catalog) Places() []Place {
	return c.places
}

// ByCategory returns the places of one category in catalog order.
func (c *Catalog) ByCategory(cat Category) []Place {
	var out []Place
	for _, p := range c.places {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

// Subcategory returns the places of a named facility bucket, or nil if the
// bucket does not exist.
func (c *Catalog) Subcategory(name string) []Place {
	idxs, ok := c.subcategories[name]
	if !ok {
		return nil
	}
	out := make([]Place, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, c.places[i])
	}
	return out
}

// Len returns the number of places in the catalog.
func (c *Catalog) Len() int {
	return len(c.places)
}
