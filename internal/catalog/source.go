package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	apperrors "github.com/campusnav/hku-mapbot-go/internal/errors"
	"github.com/campusnav/hku-mapbot-go/internal/stringutil"
)

// entitiesFile is the primary catalog source.
type entitiesFile struct {
	Buildings   []sourceEntry `json:"buildings"`
	Departments []sourceEntry `json:"departments"`
	Facilities  []sourceEntry `json:"facilities"`
}

// facilitiesFile is the optional secondary source with facility detail.
type facilitiesFile struct {
	Facilities struct {
		All         []sourceEntry            `json:"all"`
		Subcategory map[string][]sourceEntry `json:"subcategory"`
	} `json:"facilities"`
}

type sourceEntry struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases"`
	Subcategory string   `json:"subcategory"`
}

// Load builds the catalog from the primary entities source and an optional
// facility detail source. The primary source is required; a missing or
// malformed file is a fatal CatalogError. The secondary source is skipped
// when absent. Facility entries from the secondary source are appended only
// if no place of the same canonical name exists yet (first-seen wins, no
// field-level overwrite).
func Load(entitiesPath, facilitiesPath string) (*Catalog, error) {
	raw, err := os.ReadFile(entitiesPath)
	if err != nil {
		return nil, apperrors.NewCatalogError(entitiesPath, err)
	}

	var entities entitiesFile
	if err := json.Unmarshal(raw, &entities); err != nil {
		return nil, apperrors.NewCatalogError(entitiesPath, err)
	}

	c := &Catalog{subcategories: make(map[string][]int)}
	seen := make(map[string]int) // normalized canonical name -> index into places

	appendPlace := func(e sourceEntry, cat Category, source string) error {
		if e.Name == "" {
			return apperrors.NewCatalogError(source, fmt.Errorf("entity missing name field: %w", apperrors.ErrInvalidInput))
		}
		key := stringutil.Normalize(e.Name)
		if _, ok := seen[key]; ok {
			return nil
		}
		seen[key] = len(c.places)
		c.places = append(c.places, Place{
			Name:        e.Name,
			Aliases:     e.Aliases,
			Category:    cat,
			Subcategory: e.Subcategory,
		})
		return nil
	}

	for _, e := range entities.Buildings {
		if err := appendPlace(e, CategoryBuilding, entitiesPath); err != nil {
			return nil, err
		}
	}
	for _, e := range entities.Departments {
		if err := appendPlace(e, CategoryDepartment, entitiesPath); err != nil {
			return nil, err
		}
	}
	for _, e := range entities.Facilities {
		if err := appendPlace(e, CategoryFacility, entitiesPath); err != nil {
			return nil, err
		}
	}

	if facilitiesPath == "" {
		return c, nil
	}

	raw, err = os.ReadFile(facilitiesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, apperrors.NewCatalogError(facilitiesPath, err)
	}

	var detail facilitiesFile
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, apperrors.NewCatalogError(facilitiesPath, err)
	}

	for _, e := range detail.Facilities.All {
		if err := appendPlace(e, CategoryFacility, facilitiesPath); err != nil {
			return nil, err
		}
	}

	for bucket, members := range detail.Facilities.Subcategory {
		for _, e := range members {
			if err := appendPlace(e, CategoryFacility, facilitiesPath); err != nil {
				return nil, err
			}
			c.subcategories[bucket] = append(c.subcategories[bucket], seen[stringutil.Normalize(e.Name)])
		}
	}

	return c, nil
}
