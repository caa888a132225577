package changelog

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"fontdb/core/artifact"
	"fontdb/core/metrics"
	"fontdb/core/models"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var runTime = time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)

func family(category models.Category, keys ...models.VariantKey) *models.FontFamily {
	f := &models.FontFamily{Category: category}
	for _, k := range keys {
		f.Variants = append(f.Variants, models.Variant{
			Weight:   k.Weight,
			Style:    k.Style,
			Location: models.AbsoluteURL(fmt.Sprintf("https://fonts.example/%d-%s.ttf", k.Weight, k.Style)),
		})
	}
	return f
}

func key(weight int, style models.Style) models.VariantKey {
	return models.VariantKey{Weight: weight, Style: style}
}

func database(version string, fonts map[string]*models.FontFamily) *models.FontDatabase {
	db := models.New(runTime)
	db.Version = version
	db.Fonts = fonts
	db.Recount()
	return db
}

var (
	regular = key(400, models.StyleNormal)
	italic  = key(400, models.StyleItalic)
	bold    = key(700, models.StyleNormal)
)

func diff(t *testing.T, previous, current *models.FontDatabase) *ChangeSet {
	t.Helper()
	cs, err := NewDiffer(zap.NewNop()).Diff(context.Background(), previous, current)
	require.NoError(t, err)
	return cs
}

func TestDiff_NewFamilyAndVariant(t *testing.T) {
	previous := database("2025.03.13", map[string]*models.FontFamily{
		"A": family(models.CategorySansSerif, regular, italic),
	})
	current := database("2025.03.14", map[string]*models.FontFamily{
		"A": family(models.CategorySansSerif, regular, italic, bold),
		"B": family(models.CategorySerif, regular),
	})

	cs := diff(t, previous, current)
	assert.False(t, cs.FirstRun)
	assert.Equal(t, []string{"B"}, cs.NewFamilies)
	assert.Equal(t, map[string]FamilyUpdate{"A": {PreviousVariants: 2, CurrentVariants: 3}}, cs.UpdatedFamilies)
	assert.Equal(t, map[string][]models.VariantKey{"A": {bold}}, cs.NewVariantsByFamily)
	assert.Empty(t, cs.RemovedFamilies)
	assert.Empty(t, cs.RemovedVariantsByFamily)
	assert.Equal(t, 1, cs.NetChange())

	notes := ReleaseNotes(cs)
	assert.Contains(t, notes, "**Total font families:** 2 (+1 from previous version)")
	assert.Contains(t, notes, "### ✨ New Fonts (1)")
	assert.Contains(t, notes, "**Serif:**\n- **B** (1 variants)")
	assert.Contains(t, notes, "- **A**: 2 → 3 variants (+1)")
	assert.Contains(t, notes, "### 🆕 New Variants (1 families)\n\n- **A**: 700 normal")
	assert.NotContains(t, notes, "No Changes")
}

func TestDiff_Identical(t *testing.T) {
	fonts := func() map[string]*models.FontFamily {
		return map[string]*models.FontFamily{"A": family(models.CategorySerif, regular, bold)}
	}

	tests := []struct {
		name     string
		previous *models.FontDatabase
		current  *models.FontDatabase
	}{
		{name: "Same families", previous: database("2025.03.13", fonts()), current: database("2025.03.14", fonts())},
		{name: "Both empty", previous: database("2025.03.13", nil), current: database("2025.03.14", nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := diff(t, tt.previous, tt.current)
			assert.True(t, cs.Empty())

			notes := ReleaseNotes(cs)
			assert.Contains(t, notes, "(+0 from previous version)")
			assert.Contains(t, notes, "### 📝 No Changes\n\nNo new, updated, or removed fonts in this release.")
		})
	}
}

func TestDiff_FirstRun(t *testing.T) {
	current := database("2025.03.14", map[string]*models.FontFamily{
		"Zed":   family(models.CategoryMonospace, regular),
		"Alpha": family(models.CategoryMonospace, regular, bold),
	})

	cs := diff(t, nil, current)
	assert.True(t, cs.FirstRun)
	assert.Equal(t, []string{"Alpha", "Zed"}, cs.NewFamilies)
	assert.Equal(t, 0, cs.PreviousTotal)
	assert.Empty(t, cs.UpdatedFamilies)

	notes := ReleaseNotes(cs)
	assert.Contains(t, notes, "(+2 from previous version)")
	assert.Contains(t, notes, "**Monospace:**\n- **Alpha** (2 variants)\n- **Zed** (1 variants)")
}

func TestDiff_PreviewAndVariantSwap(t *testing.T) {
	withPreview := family(models.CategoryDisplay, regular)
	withPreview.Preview = &models.Preview{Data: []byte{1}, CompressedSize: 4, Text: "A"}

	previous := database("2025.03.13", map[string]*models.FontFamily{
		"A": family(models.CategoryDisplay, regular),
		"B": family(models.CategoryDisplay, regular, bold),
		"C": family(models.CategoryDisplay, regular),
	})
	current := database("2025.03.14", map[string]*models.FontFamily{
		"A": withPreview,
		"B": family(models.CategoryDisplay, regular, italic),
	})

	cs := diff(t, previous, current)
	assert.Equal(t, map[string]FamilyUpdate{"A": {PreviousVariants: 1, CurrentVariants: 1, PreviewAdded: true}}, cs.UpdatedFamilies)
	assert.Equal(t, map[string][]models.VariantKey{"B": {italic}}, cs.NewVariantsByFamily)
	assert.Equal(t, map[string][]models.VariantKey{"B": {bold}}, cs.RemovedVariantsByFamily)
	assert.Equal(t, []string{"C"}, cs.RemovedFamilies)
	assert.Equal(t, -1, cs.NetChange())

	notes := ReleaseNotes(cs)
	assert.Contains(t, notes, "(-1 from previous version)")
	assert.Contains(t, notes, "- **A**: Preview added")
	assert.Contains(t, notes, "- **B**: 400 italic")
	assert.Contains(t, notes, "### ➖ Removed Variants (1 families)\n\n- **B**: 700 normal")
	assert.Contains(t, notes, "### ❌ Removed Fonts (1)\n\n- C")
}

func TestReleaseNotes_Truncation(t *testing.T) {
	previous := map[string]*models.FontFamily{}
	current := map[string]*models.FontFamily{}
	for i := 0; i < 12; i++ {
		current[fmt.Sprintf("Serif %02d", i)] = family(models.CategorySerif, regular)
	}
	for i := 0; i < 25; i++ {
		previous[fmt.Sprintf("Old %02d", i)] = family(models.CategorySansSerif, regular)
	}

	cs := diff(t, database("2025.03.13", previous), database("2025.03.14", current))
	notes := ReleaseNotes(cs)

	assert.Contains(t, notes, "- **Serif 09** (1 variants)\n- ... and 2 more serif fonts")
	assert.NotContains(t, notes, "Serif 10")
	assert.Contains(t, notes, "- Old 19\n- ... and 5 more")
	assert.NotContains(t, notes, "Old 20")
}

func TestMerge(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }

	first := Merge("", "2025.03.12", day(12), "notes one\n")
	assert.True(t, strings.HasPrefix(first, changelogTitle+"\n"))
	assert.Contains(t, first, "## [2025.03.12] - 2025-03-12\n\nnotes one\n")
	assert.NotContains(t, first, sectionSeparator)

	second := Merge(first, "2025.03.13", day(13), "notes two")
	assert.Equal(t, []string{"2025.03.13", "2025.03.12"}, Versions(second))
	assert.Contains(t, second, "notes two\n\n---\n\n## [2025.03.12]")

	third := Merge(second, "2025.03.14", day(14), "notes three")
	assert.Equal(t, []string{"2025.03.14", "2025.03.13", "2025.03.12"}, Versions(third))

	rerun := Merge(third, "2025.03.14", day(14), "notes three again")
	assert.Equal(t, []string{"2025.03.14", "2025.03.13", "2025.03.12"}, Versions(rerun))
	assert.Contains(t, rerun, "notes three again")
	assert.NotContains(t, rerun, "notes three\n")
	assert.Equal(t, 2, strings.Count(rerun, sectionSeparator+"\n"))
}

func TestMerge_KeepsNewestFirst(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }

	log := Merge("", "2025.03.14", day(14), "notes fourteen")
	log = Merge(log, "2025.03.12", day(12), "notes twelve")
	assert.Equal(t, []string{"2025.03.14", "2025.03.12"}, Versions(log))
	assert.Contains(t, log, "notes fourteen\n\n---\n\n## [2025.03.12] - 2025-03-12\n\nnotes twelve\n")

	log = Merge(log, "2025.03.13", day(13), "notes thirteen")
	assert.Equal(t, []string{"2025.03.14", "2025.03.13", "2025.03.12"}, Versions(log))
	assert.Equal(t, 2, strings.Count(log, sectionSeparator+"\n"))
}

func TestService_Generate(t *testing.T) {
	ws := artifact.NewWorkspace(afero.NewMemMapFs(), "/out")
	previous := database("2025.03.13", map[string]*models.FontFamily{"A": family(models.CategorySerif, regular)})
	prevData, err := artifact.Encode(previous, artifact.Indented)
	require.NoError(t, err)
	require.NoError(t, ws.WriteFile("previous.json", prevData))

	current := database("2025.03.14", map[string]*models.FontFamily{
		"A": family(models.CategorySerif, regular),
		"B": family(models.CategorySerif, regular),
	})

	svc := NewService(ws, NewFileSource(ws, "previous.json"), zap.NewNop(), metrics.New(), WithClock(func() time.Time { return runTime }))
	cs, err := svc.Generate(context.Background(), current)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, cs.NewFamilies)
	assert.Equal(t, "2025.03.13", cs.PreviousVersion)

	notes, err := ws.ReadFile(artifact.ReleaseNotes)
	require.NoError(t, err)
	assert.Equal(t, ReleaseNotes(cs), string(notes))

	_, err = svc.Generate(context.Background(), current)
	require.NoError(t, err)
	log, err := ws.ReadFile(artifact.Changelog)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025.03.14"}, Versions(string(log)))
	assert.Contains(t, string(log), "## [2025.03.14] - 2025-03-14")
}
