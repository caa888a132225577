package aggregate

import (
	"path"
	"strings"

	"fontdb/core/models"
)

type keywords struct {
	category models.Category
	words    []string
}

// categoryKeywords are matched against the family directory of OFL fonts,
// in order.
var categoryKeywords = []keywords{
	{models.CategorySerif, []string{"serif", "times", "georgia", "playfair", "lora", "merriweather", "crimson", "libre", "spectral", "vollkorn", "bitter"}},
	{models.CategoryDisplay, []string{"display", "fancy", "decorative", "title", "headline", "lobster", "pacifico", "righteous", "fredoka"}},
	{models.CategoryHandwriting, []string{"handwriting", "script", "cursive", "hand", "dancing", "satisfy", "allura", "great vibes", "caveat"}},
	{models.CategoryMonospace, []string{"mono", "code", "inconsolata", "source code", "jetbrains", "fira code", "roboto mono", "ubuntu mono"}},
}

// weightKeywords is ordered so that no keyword is preceded by one of its
// substrings ("extrabold" before "bold").
var weightKeywords = []struct {
	word   string
	weight int
}{
	{"extralight", 200}, {"ultralight", 200},
	{"extrabold", 800}, {"ultrabold", 800},
	{"semibold", 600}, {"demibold", 600},
	{"hairline", 100}, {"thin", 100},
	{"regular", 400}, {"normal", 400}, {"book", 400},
	{"medium", 500},
	{"light", 300},
	{"black", 900}, {"heavy", 900},
	{"bold", 700},
}

var licenses = map[string]models.License{
	"ofl":    {Type: "OFL", URL: "https://scripts.sil.org/OFL"},
	"apache": {Type: "Apache", URL: "https://www.apache.org/licenses/LICENSE-2.0"},
	"ufl":    {Type: "UFL", URL: "https://www.ubuntu.com/legal/terms-and-policies/font-licence"},
}

var defaultLicense = models.License{Type: "Open Source"}

func pathParts(p string) []string {
	return strings.Split(path.Clean(strings.ReplaceAll(p, "\\", "/")), "/")
}

func hasPart(parts []string, want string) bool {
	for _, part := range parts {
		if part == want {
			return true
		}
	}
	return false
}

// InferCategory guesses the category of the font at the relative path p.
func InferCategory(p string) models.Category {
	parts := pathParts(p)
	if !hasPart(parts, "ofl") || len(parts) < 2 {
		return models.CategorySansSerif
	}

	dir := strings.ToLower(parts[len(parts)-2])
	for _, k := range categoryKeywords {
		for _, word := range k.words {
			if strings.Contains(dir, word) {
				return k.category
			}
		}
	}
	return models.CategorySansSerif
}

// InferLicense derives the license of the font at the relative path p from
// its license directory.
func InferLicense(p string) models.License {
	parts := pathParts(p)
	for _, dir := range []string{"ofl", "apache", "ufl"} {
		if hasPart(parts, dir) {
			return licenses[dir]
		}
	}
	return defaultLicense
}

// ParseWeightStyle reads the weight and style from a subfamily name,
// falling back to the file name, and defaults to 400 normal.
func ParseWeightStyle(subfamily, filename string) (int, models.Style) {
	sources := []string{strings.ToLower(subfamily), strings.ToLower(filename)}

	weight := 400
weights:
	for _, src := range sources {
		for _, k := range weightKeywords {
			if strings.Contains(src, k.word) {
				weight = k.weight
				break weights
			}
		}
	}

	style := models.StyleNormal
	for _, src := range sources {
		if strings.Contains(src, "italic") {
			style = models.StyleItalic
			break
		}
		if strings.Contains(src, "oblique") {
			style = models.StyleOblique
			break
		}
	}
	return weight, style
}
