package index

import (
	"fmt"
	"sort"
	"time"

	"fontdb/core/artifact"
	"fontdb/core/models"
)

// PopularLimit is the number of families in the popularity ranking.
const PopularLimit = 100

// Families lists every family name.
type Families struct {
	Families []string  `json:"families"`
	Count    int       `json:"count"`
	Version  string    `json:"version"`
	Updated  time.Time `json:"updated"`
}

// Categories groups family names by category.
type Categories struct {
	Categories map[models.Category][]string `json:"categories"`
	Version    string                       `json:"version"`
	Updated    time.Time                    `json:"updated"`
}

// PopularEntry is one ranked family.
type PopularEntry struct {
	Family   string `json:"family"`
	Variants int    `json:"variants"`
}

// Popular ranks families by variant count.
type Popular struct {
	Popular []PopularEntry `json:"popular"`
	Version string         `json:"version"`
	Updated time.Time      `json:"updated"`
}

// Set holds the three projections of one database.
type Set struct {
	Families   Families
	Categories Categories
	Popular    Popular
}

// Build computes every projection of db.
func Build(db *models.FontDatabase) *Set {
	return &Set{
		Families:   BuildFamilies(db),
		Categories: BuildCategories(db),
		Popular:    BuildPopular(db, PopularLimit),
	}
}

// BuildFamilies returns the sorted family list.
func BuildFamilies(db *models.FontDatabase) Families {
	names := db.FamilyNames()
	return Families{
		Families: names,
		Count:    len(names),
		Version:  db.Version,
		Updated:  db.Updated,
	}
}

// BuildCategories groups every family under exactly one category. Families
// without a category, or without any data, are listed as sans-serif.
func BuildCategories(db *models.FontDatabase) Categories {
	groups := make(map[models.Category][]string)
	for _, name := range db.FamilyNames() {
		var category models.Category
		if family := db.Fonts[name]; family != nil {
			category = family.Category
		}
		if category == "" {
			category = models.CategorySansSerif
		}
		groups[category] = append(groups[category], name)
	}
	return Categories{
		Categories: groups,
		Version:    db.Version,
		Updated:    db.Updated,
	}
}

// BuildPopular returns the limit families with the most variants. Ties are
// broken by name.
func BuildPopular(db *models.FontDatabase, limit int) Popular {
	entries := make([]PopularEntry, 0, len(db.Fonts))
	for name, family := range db.Fonts {
		entry := PopularEntry{Family: name}
		if family != nil {
			entry.Variants = len(family.Variants)
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Variants != entries[j].Variants {
			return entries[i].Variants > entries[j].Variants
		}
		return entries[i].Family < entries[j].Family
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return Popular{
		Popular: entries,
		Version: db.Version,
		Updated: db.Updated,
	}
}

// Write stores the three projections as compact JSON.
func Write(ws *artifact.Workspace, set *Set) error {
	files := []struct {
		name string
		doc  any
	}{
		{artifact.FamiliesIndex, set.Families},
		{artifact.CategoriesIndex, set.Categories},
		{artifact.PopularIndex, set.Popular},
	}
	for _, f := range files {
		if _, err := ws.WriteJSON(f.name, f.doc, artifact.Compact); err != nil {
			return fmt.Errorf("failed to write index %s: %w", f.name, err)
		}
	}
	return nil
}
