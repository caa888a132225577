package checks

import (
	"errors"
	"strings"

	"fontdb/core/models"
)

// CheckDatabase validates the top-level fields of db and the families in its
// sample. A sample of zero or less checks every family.
func CheckDatabase(db *models.FontDatabase, sample int) Findings {
	var f Findings

	if db.Version == "" {
		f.Errorf("Missing required field in database: version")
	} else if _, err := models.ParseVersion(db.Version); err != nil {
		f.Warnf("Database version is not date coded: %s", db.Version)
	}
	if db.Updated.IsZero() {
		f.Errorf("Missing required field in database: updated")
	}
	if db.Fonts == nil {
		f.Errorf("Missing required field in database: fonts")
		return f
	}
	if db.TotalFamilies != len(db.Fonts) {
		f.Errorf("total_families is %d but database has %d families", db.TotalFamilies, len(db.Fonts))
	}
	if db.Optimized && db.OptimizationDate == nil {
		f.Warnf("Optimized database without optimization_date")
	}

	names := db.FamilyNames()
	if sample > 0 && sample < len(names) {
		names = names[:sample]
	}
	for _, name := range names {
		f = append(f, CheckFamily(name, db.Fonts[name])...)
	}
	return f
}

// CheckFamily validates one family and its variants.
func CheckFamily(name string, family *models.FontFamily) Findings {
	var f Findings

	if family == nil {
		f.Errorf("Font %s has no data", name)
		return f
	}
	switch {
	case family.Category == "":
		f.Errorf("Font %s missing required field: category", name)
	case !family.Category.IsValid():
		f.Warnf("Font %s has unknown category: %s", name, family.Category)
	}
	if len(family.Variants) == 0 {
		f.Errorf("Font %s has no variants", name)
		return f
	}

	for i, v := range family.Variants {
		switch {
		case v.Weight == 0:
			f.Errorf("Font %s variant %d missing: weight", name, i)
		case !models.IsValidWeight(v.Weight):
			f.Warnf("Font %s variant %d has unusual weight: %d", name, i, v.Weight)
		}
		switch {
		case v.Style == "":
			f.Errorf("Font %s variant %d missing: style", name, i)
		case !v.Style.IsValid():
			f.Warnf("Font %s variant %d has unusual style: %s", name, i, v.Style)
		}

		url, err := family.ResolveURL(v)
		switch {
		case errors.Is(err, models.ErrMissingBaseURL):
			f.Errorf("Font %s variant %d has filename without family base_url", name, i)
		case err != nil:
			f.Errorf("Font %s variant %d missing download information", name, i)
		case !strings.HasPrefix(url, "https://"):
			f.Warnf("Font %s variant %d URL not HTTPS: %s", name, i, url)
		}
	}
	return f
}
