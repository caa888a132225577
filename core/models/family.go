package models

import (
	"fmt"
	"sort"
)

// FontFamily is a named design and its variants.
type FontFamily struct {
	Category Category  `json:"category"`
	Variants []Variant `json:"variants"`
	License  License   `json:"license"`
	Preview  *Preview  `json:"preview,omitempty"`
	// AvgFileSize replaces per-variant sizes when they are all close to the mean.
	AvgFileSize *int64 `json:"avg_file_size,omitempty"`
	// BaseURL is the directory prefix FamilyFile variants resolve against.
	BaseURL string `json:"base_url,omitempty"`
}

// ResolveURL returns the download URL of v within f.
func (f *FontFamily) ResolveURL(v Variant) (string, error) {
	if v.Location == nil {
		return "", ErrMissingLocation
	}
	return v.Location.Resolve(f.BaseURL)
}

// SortVariants orders the variants by (weight, style).
func (f *FontFamily) SortVariants() {
	sort.SliceStable(f.Variants, func(i, j int) bool {
		return f.Variants[i].Less(f.Variants[j])
	})
}

// VariantKeys returns the set of (weight, style) keys of f.
func (f *FontFamily) VariantKeys() map[VariantKey]struct{} {
	keys := make(map[VariantKey]struct{}, len(f.Variants))
	for _, v := range f.Variants {
		keys[v.Key()] = struct{}{}
	}
	return keys
}

// DistinctWeights returns the number of distinct weights among the variants.
func (f *FontFamily) DistinctWeights() int {
	seen := make(map[int]struct{})
	for _, v := range f.Variants {
		seen[v.Weight] = struct{}{}
	}
	return len(seen)
}

// Clone returns a deep copy of f.
func (f *FontFamily) Clone() *FontFamily {
	if f == nil {
		return nil
	}
	cp := *f
	cp.Variants = make([]Variant, len(f.Variants))
	for i, v := range f.Variants {
		cp.Variants[i] = v.Clone()
	}
	cp.Preview = f.Preview.Clone()
	if f.AvgFileSize != nil {
		avg := *f.AvgFileSize
		cp.AvgFileSize = &avg
	}
	return &cp
}

// String is used in log fields.
func (f *FontFamily) String() string {
	return fmt.Sprintf("%s (%d variants)", f.Category, len(f.Variants))
}
