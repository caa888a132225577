package models

import (
	"encoding/json"
	"fmt"
)

// Variant is one weight and style of a family, backed by one font file.
type Variant struct {
	Weight int
	Style  Style
	// WeightClass is set only when it differs from StandardWeightClass(Weight)
	// in an optimized database. The canonical database always carries it.
	WeightClass *int
	// FileSize is cleared when the family carries AvgFileSize.
	FileSize *int64
	Location Location
}

// VariantKey identifies a variant within its family.
type VariantKey struct {
	Weight int
	Style  Style
}

// String formats the key the way release notes print it, e.g. "700 italic".
func (k VariantKey) String() string {
	return fmt.Sprintf("%d %s", k.Weight, k.Style)
}

// Key returns the (weight, style) identity of v.
func (v Variant) Key() VariantKey {
	return VariantKey{Weight: v.Weight, Style: v.Style}
}

// Less orders variants by weight, then style.
func (v Variant) Less(o Variant) bool {
	if v.Weight != o.Weight {
		return v.Weight < o.Weight
	}
	return v.Style < o.Style
}

// Clone returns a deep copy of v.
func (v Variant) Clone() Variant {
	cp := v
	if v.WeightClass != nil {
		wc := *v.WeightClass
		cp.WeightClass = &wc
	}
	if v.FileSize != nil {
		fs := *v.FileSize
		cp.FileSize = &fs
	}
	return cp
}

type variantJSON struct {
	Weight      int    `json:"weight"`
	Style       Style  `json:"style"`
	WeightClass *int   `json:"weight_class,omitempty"`
	FileSize    *int64 `json:"file_size,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
	Filename    string `json:"filename,omitempty"`
}

// MarshalJSON writes exactly one of download_url or filename.
func (v Variant) MarshalJSON() ([]byte, error) {
	wire := variantJSON{
		Weight:      v.Weight,
		Style:       v.Style,
		WeightClass: v.WeightClass,
		FileSize:    v.FileSize,
	}
	switch loc := v.Location.(type) {
	case AbsoluteURL:
		wire.DownloadURL = string(loc)
	case FamilyFile:
		wire.Filename = string(loc)
	}
	return json.Marshal(wire)
}

// UnmarshalJSON rejects variants that declare both location forms. A variant
// with neither form decodes with a nil Location so validation can report it.
func (v *Variant) UnmarshalJSON(data []byte) error {
	var wire variantJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.DownloadURL != "" && wire.Filename != "" {
		return ErrInvalidLocation
	}

	*v = Variant{
		Weight:      wire.Weight,
		Style:       wire.Style,
		WeightClass: wire.WeightClass,
		FileSize:    wire.FileSize,
	}
	switch {
	case wire.DownloadURL != "":
		v.Location = AbsoluteURL(wire.DownloadURL)
	case wire.Filename != "":
		v.Location = FamilyFile(wire.Filename)
	}
	return nil
}
