package models

import (
	"fmt"
	"sort"
	"time"
)

// VersionLayout is the date layout of database versions, e.g. "2025.03.14".
const VersionLayout = "2006.01.02"

// FontDatabase is the root aggregate of the catalog.
type FontDatabase struct {
	Version          string                 `json:"version"`
	Updated          time.Time              `json:"updated"`
	TotalFamilies    int                    `json:"total_families"`
	Fonts            map[string]*FontFamily `json:"fonts"`
	PreviewStats     *PreviewStats          `json:"preview_stats,omitempty"`
	Optimized        bool                   `json:"optimized,omitempty"`
	OptimizationDate *time.Time             `json:"optimization_date,omitempty"`
}

// New returns an empty database stamped with the version derived from now.
func New(now time.Time) *FontDatabase {
	return &FontDatabase{
		Version: NewVersion(now),
		Updated: now.UTC(),
		Fonts:   make(map[string]*FontFamily),
	}
}

// NewVersion formats the date-coded version for t.
func NewVersion(t time.Time) string {
	return t.UTC().Format(VersionLayout)
}

// ParseVersion parses a date-coded version.
func ParseVersion(version string) (time.Time, error) {
	t, err := time.Parse(VersionLayout, version)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid database version %q: %w", version, err)
	}
	return t, nil
}

// CompareVersions compares two versions by calendar date. Versions that do not
// parse fall back to lexical comparison.
func CompareVersions(a, b string) int {
	ta, errA := ParseVersion(a)
	tb, errB := ParseVersion(b)
	if errA != nil || errB != nil {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	}
	return ta.Compare(tb)
}

// FamilyNames returns the family names in ascending order.
func (db *FontDatabase) FamilyNames() []string {
	names := make([]string, 0, len(db.Fonts))
	for name := range db.Fonts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VariantCount returns the number of variants across all families.
func (db *FontDatabase) VariantCount() int {
	total := 0
	for _, f := range db.Fonts {
		if f == nil {
			continue
		}
		total += len(f.Variants)
	}
	return total
}

// Recount sets TotalFamilies from Fonts.
func (db *FontDatabase) Recount() {
	db.TotalFamilies = len(db.Fonts)
}

// RefreshPreviewStats recomputes PreviewStats from the families' previews.
// It clears the stats when no family has a preview.
func (db *FontDatabase) RefreshPreviewStats() {
	stats := PreviewStats{}
	for _, f := range db.Fonts {
		if f == nil || f.Preview == nil {
			continue
		}
		stats.TotalPreviews++
		stats.TotalCompressedSize += f.Preview.CompressedSize
	}
	if stats.TotalPreviews == 0 {
		db.PreviewStats = nil
		return
	}
	stats.AverageSize = float64(stats.TotalCompressedSize) / float64(stats.TotalPreviews)
	db.PreviewStats = &stats
}

// Clone returns a deep copy of db.
func (db *FontDatabase) Clone() *FontDatabase {
	if db == nil {
		return nil
	}
	cp := *db
	cp.Fonts = make(map[string]*FontFamily, len(db.Fonts))
	for name, f := range db.Fonts {
		cp.Fonts[name] = f.Clone()
	}
	if db.PreviewStats != nil {
		ps := *db.PreviewStats
		cp.PreviewStats = &ps
	}
	if db.OptimizationDate != nil {
		od := *db.OptimizationDate
		cp.OptimizationDate = &od
	}
	return &cp
}
