package models

import "sort"

// Category is the design classification of a family.
type Category string

const (
	CategorySerif       Category = "serif"
	CategorySansSerif   Category = "sans-serif"
	CategoryDisplay     Category = "display"
	CategoryHandwriting Category = "handwriting"
	CategoryMonospace   Category = "monospace"
)

// Categories lists every known category in index order.
var Categories = []Category{
	CategorySerif,
	CategorySansSerif,
	CategoryDisplay,
	CategoryHandwriting,
	CategoryMonospace,
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Style is the slant of a variant.
type Style string

const (
	StyleNormal  Style = "normal"
	StyleItalic  Style = "italic"
	StyleOblique Style = "oblique"
)

// IsValid reports whether s is normal, italic or oblique.
func (s Style) IsValid() bool {
	switch s {
	case StyleNormal, StyleItalic, StyleOblique:
		return true
	default:
		return false
	}
}

// ValidWeights is the set of weights a variant may declare.
var ValidWeights = []int{100, 200, 300, 400, 500, 600, 700, 800, 900}

// IsValidWeight reports whether w is one of ValidWeights.
func IsValidWeight(w int) bool {
	i := sort.SearchInts(ValidWeights, w)
	return i < len(ValidWeights) && ValidWeights[i] == w
}

// StandardWeightClass returns the OS/2 weight class a weight maps to when the
// font does not override it.
func StandardWeightClass(weight int) (int, bool) {
	if !IsValidWeight(weight) {
		return 0, false
	}
	return weight, true
}

// License describes the license a family is distributed under.
type License struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Preview is a compressed SVG rendering of the family name.
// Data is gzip-compressed SVG text; it is base64 encoded on the wire.
type Preview struct {
	Data           []byte `json:"svg_compressed"`
	CompressedSize int    `json:"compressed_size"`
	Text           string `json:"preview_text"`
}

// MaxPreviewText is the longest text a preview renders.
const MaxPreviewText = 12

// PreviewText returns the default preview text for a family name.
func PreviewText(family string) string {
	runes := []rune(family)
	if len(runes) > MaxPreviewText {
		return string(runes[:MaxPreviewText])
	}
	return family
}

// Clone returns a deep copy of p.
func (p *Preview) Clone() *Preview {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Data = append([]byte(nil), p.Data...)
	return &cp
}

// PreviewStats summarizes the previews attached to the database.
type PreviewStats struct {
	TotalPreviews       int     `json:"total_previews"`
	TotalCompressedSize int     `json:"total_compressed_size"`
	AverageSize         float64 `json:"average_size"`
}
