package stats

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"fontdb/core/artifact"
	"fontdb/core/models"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedAt = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func size(kb int64) *int64 {
	n := kb * 1024
	return &n
}

func fixture() *models.FontDatabase {
	db := models.New(generatedAt.Add(-time.Hour))
	db.Fonts["Roboto"] = &models.FontFamily{
		Category: models.CategorySansSerif,
		License:  models.License{Type: "OFL"},
		Preview:  &models.Preview{CompressedSize: 100},
		Variants: []models.Variant{
			{Weight: 400, Style: models.StyleNormal, FileSize: size(100)},
			{Weight: 700, Style: models.StyleNormal, FileSize: size(200)},
			{Weight: 400, Style: models.StyleItalic, FileSize: size(300)},
		},
	}
	db.Fonts["Lora"] = &models.FontFamily{
		Category:    models.CategorySerif,
		License:     models.License{Type: "Apache"},
		Preview:     &models.Preview{CompressedSize: 300},
		AvgFileSize: size(50),
		Variants: []models.Variant{
			{Weight: 400, Style: models.StyleNormal},
			{Weight: 700, Style: models.StyleItalic},
		},
	}
	db.Fonts["Odd"] = &models.FontFamily{
		Variants: []models.Variant{{Weight: 450, Style: "slanted"}},
	}
	db.Recount()
	return db
}

func TestGenerate_Basic(t *testing.T) {
	s := Generate(fixture(), nil, generatedAt)

	assert.Equal(t, generatedAt, s.Generated)
	assert.Equal(t, "2025.03.14", s.DatabaseVersion)
	assert.Equal(t, Basic{
		TotalFamilies:        3,
		TotalVariants:        6,
		AvgVariantsPerFamily: 2,
		Categories:           map[string]int{"sans-serif": 1, "serif": 1, "unknown": 1},
		Weights:              map[string]int{"400": 3, "700": 2, "450": 1},
		Styles:               map[string]int{"normal": 3, "italic": 2, "slanted": 1},
	}, s.Basic)
	assert.Equal(t, map[string]int{"OFL": 1, "Apache": 1, "unknown": 1}, s.Licenses.Distribution)
	assert.Equal(t, map[string]int{"unknown": 1}, s.Licenses.ByCategory["unknown"])
}

func TestGenerate_FileSizes(t *testing.T) {
	sizes := Generate(fixture(), nil, generatedAt).FileSizes
	require.NotNil(t, sizes.Overall)

	overall := sizes.Overall
	assert.Equal(t, 4, overall.TotalFiles)
	assert.Equal(t, 0.63, overall.TotalSizeMB)
	assert.Equal(t, 162.5, overall.AvgSizeKB)
	assert.Equal(t, 150.0, overall.MedianSizeKB)
	assert.Equal(t, 50.0, overall.MinSizeKB)
	assert.Equal(t, 300.0, overall.MaxSizeKB)
	assert.InDelta(t, 110.87, overall.StdDevKB, 0.01)

	assert.Equal(t, GroupSize{Count: 1, AvgSizeKB: 50, TotalSizeMB: 0.05}, sizes.ByCategory["serif"])
	assert.Equal(t, GroupSize{Count: 3, AvgSizeKB: 200, TotalSizeMB: 0.59}, sizes.ByCategory["sans-serif"])
	assert.Equal(t, map[string]GroupSize{"400": {Count: 2, AvgSizeKB: 200}}, sizes.ByWeight)

	empty := Generate(models.New(generatedAt), nil, generatedAt).FileSizes
	assert.Nil(t, empty.Overall)
	assert.Equal(t, "No file size data available", empty.Error)
}

func TestGenerate_PreviewsAndPopular(t *testing.T) {
	s := Generate(fixture(), nil, generatedAt)

	assert.Equal(t, Previews{
		FamiliesWithPreviews: 2,
		TotalCompressedSize:  400,
		AvgPreviewSize:       200,
		MedianPreviewSize:    200,
		MinPreviewSize:       100,
		MaxPreviewSize:       300,
	}, s.Previews)

	assert.Equal(t, []VariantRank{{"Roboto", 3}, {"Lora", 2}, {"Odd", 1}}, s.Popular.MostVariants)
	assert.Equal(t, []WeightRank{{"Lora", 2}, {"Roboto", 2}, {"Odd", 1}}, s.Popular.MostWeights)
	assert.Equal(t, 1, s.Popular.SingleVariantFamilies)
	assert.Equal(t, 2, s.Popular.MultiVariantFamilies)
}

func TestGenerate_Quality(t *testing.T) {
	tests := []struct {
		name string
		db   *models.FontDatabase
		want Quality
	}{
		{
			name: "Mixed database",
			db:   fixture(),
			want: Quality{
				Completeness: Completeness{PreviewCoverage: 66.7, LicenseCoverage: 66.7, SizeDataCoverage: 83.3},
				Consistency:  Consistency{MissingCategories: 1, InvalidWeights: 1, InvalidStyles: 1, ConsistencyScore: 66.7},
				Coverage:     Coverage{CategoriesCovered: 3, WeightsCovered: 3, MostCommonCategory: "sans-serif", MostCommonWeight: 400},
			},
		},
		{
			name: "Empty database",
			db:   models.New(generatedAt),
			want: Quality{Consistency: Consistency{ConsistencyScore: 100}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.db, nil, generatedAt).Quality)
		})
	}
}

func TestWrite(t *testing.T) {
	ws := artifact.NewWorkspace(afero.NewMemMapFs(), "/out")
	require.NoError(t, ws.WriteFile(artifact.CanonicalDatabase, make([]byte, 2048)))
	require.NoError(t, ws.WriteFile(artifact.FamiliesIndex, make([]byte, 512)))

	s := Generate(fixture(), ws, generatedAt)
	assert.Equal(t, DatabaseFiles{
		OriginalDatabaseSizeKB:  2,
		OptimizedFiles:          map[string]float64{},
		IndexFiles:              map[string]float64{artifact.FamiliesIndex: 0.5},
		TotalDistributionSizeKB: 2.5,
	}, s.Database)
	require.NoError(t, Write(ws, s))

	data, err := ws.ReadFile(artifact.Stats)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, section := range []string{"basic", "file_sizes", "previews", "licenses", "popular", "quality", "database"} {
		assert.Contains(t, doc, section)
	}

	summary := strings.Join(s.Summary(), "\n")
	assert.Contains(t, summary, "Font families: 3")
	assert.Contains(t, summary, "Database size: 2.0 KB")
	assert.Contains(t, summary, "Top category: sans-serif (1 families)")
}

func TestGenerate_FamilyWithoutData(t *testing.T) {
	db := fixture()
	db.Fonts["Empty"] = nil

	var s *Stats
	require.NotPanics(t, func() { s = Generate(db, nil, generatedAt) })
	assert.Equal(t, 3, s.Basic.TotalFamilies)
	assert.Equal(t, 6, s.Basic.TotalVariants)
	assert.Len(t, db.Fonts, 4)
}
