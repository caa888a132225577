package checks

import (
	"testing"
	"time"

	"fontdb/core/artifact"
	"fontdb/core/models"
	"fontdb/feature/preview"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFamily(t *testing.T) {
	url := models.AbsoluteURL("https://fonts.example/a.ttf")

	tests := []struct {
		name     string
		family   *models.FontFamily
		errors   int
		warnings int
	}{
		{
			name:   "Valid",
			family: &models.FontFamily{Category: models.CategorySerif, Variants: []models.Variant{{Weight: 400, Style: models.StyleNormal, Location: url}}},
		},
		{
			name:   "No variants",
			family: &models.FontFamily{Category: models.CategorySerif},
			errors: 1,
		},
		{
			name:   "Missing category",
			family: &models.FontFamily{Variants: []models.Variant{{Weight: 400, Style: models.StyleNormal, Location: url}}},
			errors: 1,
		},
		{
			name:   "Missing weight and style",
			family: &models.FontFamily{Category: models.CategorySerif, Variants: []models.Variant{{Location: url}}},
			errors: 2,
		},
		{
			name:     "Unusual weight and style",
			family:   &models.FontFamily{Category: models.CategorySerif, Variants: []models.Variant{{Weight: 950, Style: "slanted", Location: url}}},
			warnings: 2,
		},
		{
			name:   "No location",
			family: &models.FontFamily{Category: models.CategorySerif, Variants: []models.Variant{{Weight: 400, Style: models.StyleNormal}}},
			errors: 1,
		},
		{
			name:   "Filename without base url",
			family: &models.FontFamily{Category: models.CategorySerif, Variants: []models.Variant{{Weight: 400, Style: models.StyleNormal, Location: models.FamilyFile("a.ttf")}}},
			errors: 1,
		},
		{
			name:     "Plain http",
			family:   &models.FontFamily{Category: models.CategorySerif, Variants: []models.Variant{{Weight: 400, Style: models.StyleNormal, Location: models.AbsoluteURL("http://fonts.example/a.ttf")}}},
			warnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := CheckFamily("Alpha", tt.family)
			assert.Equal(t, tt.errors, f.Count(SeverityError), f.Messages(SeverityError))
			assert.Equal(t, tt.warnings, f.Count(SeverityWarning), f.Messages(SeverityWarning))
		})
	}
}

func TestCheckDatabase(t *testing.T) {
	db := &models.FontDatabase{TotalFamilies: 2, Fonts: map[string]*models.FontFamily{}}
	f := CheckDatabase(db, 0)
	assert.ElementsMatch(t, []string{
		"Missing required field in database: version",
		"Missing required field in database: updated",
		"total_families is 2 but database has 0 families",
	}, f.Messages(SeverityError))

	f = CheckDatabase(&models.FontDatabase{Version: "2025.03.14", Updated: time.Now()}, 0)
	assert.Equal(t, []string{"Missing required field in database: fonts"}, f.Messages(SeverityError))
}

func TestCheckDatabase_Sample(t *testing.T) {
	db := models.New(time.Now())
	db.Fonts["A"] = &models.FontFamily{Category: models.CategorySerif}
	db.Fonts["B"] = &models.FontFamily{Category: models.CategorySerif}
	db.Recount()

	assert.Equal(t, 1, CheckDatabase(db, 1).Count(SeverityError))
	assert.Equal(t, 2, CheckDatabase(db, 0).Count(SeverityError))
}

func TestCheckPreviews(t *testing.T) {
	good, err := preview.Encode("<svg></svg>", "Good")
	require.NoError(t, err)
	malformed, err := preview.Encode("<svg>", "Bad")
	require.NoError(t, err)

	db := models.New(time.Now())
	db.Fonts["Good"] = &models.FontFamily{Preview: good}
	db.Fonts["Malformed"] = &models.FontFamily{Preview: malformed}
	db.Fonts["Corrupt"] = &models.FontFamily{Preview: &models.Preview{Data: []byte("zzz")}}
	db.Fonts["None"] = &models.FontFamily{}

	f := CheckPreviews(db, 0, 0.1)
	assert.Equal(t, 1, f.Count(SeverityError))
	assert.Contains(t, f.Messages(SeverityInfo), "Preview validation: 3 previews checked, 2 errors (66.7% error rate)")
	assert.Contains(t, f.Messages(SeverityWarning), "High preview error rate: 66.7%")

	sampled := CheckPreviews(db, 1, 0.1)
	assert.Contains(t, sampled.Messages(SeverityInfo), "Preview validation: 1 previews checked, 1 errors (100.0% error rate)")
}

func TestCheckSizes(t *testing.T) {
	ws := artifact.NewWorkspace(afero.NewMemMapFs(), "/out")
	require.NoError(t, ws.WriteFile(artifact.CanonicalDatabase, make([]byte, 2048)))
	require.NoError(t, ws.WriteFile(artifact.OptimizedDatabase, make([]byte, 1000)))
	require.NoError(t, ws.WriteFile(artifact.CompressedDatabase, make([]byte, 900)))

	f := CheckSizes(ws, SizeLimits{MaxDatabaseBytes: 4096, InfoDatabaseBytes: 1024, MaxCompressionRatio: 0.8})
	assert.Equal(t, []string{"Main database size: 0.0MB"}, f.Messages(SeverityInfo))
	assert.Equal(t, []string{"Poor compression ratio: 0.90"}, f.Messages(SeverityWarning))

	f = CheckSizes(ws, SizeLimits{MaxDatabaseBytes: 1024, InfoDatabaseBytes: 512, MaxCompressionRatio: 0.95})
	assert.Equal(t, []string{"Main database very large: 0.0MB"}, f.Messages(SeverityWarning))
	assert.Equal(t, []string{"Good compression ratio: 0.90"}, f.Messages(SeverityInfo))
}

func TestCheckIndexes_Structure(t *testing.T) {
	ws := artifact.NewWorkspace(afero.NewMemMapFs(), "/out")
	require.NoError(t, ws.WriteFile(artifact.FamiliesIndex, []byte(`{"families":["A","B"],"count":3,"version":"x"}`)))
	require.NoError(t, ws.WriteFile(artifact.CategoriesIndex, []byte(`{"categories":["A"],"version":"x"}`)))
	require.NoError(t, ws.WriteFile(artifact.PopularIndex, []byte(`{"version":"x"}`)))

	f := CheckIndexes(ws, nil)
	assert.ElementsMatch(t, []string{
		"categories field must be a dictionary of lists",
		"Missing required field in popular index: popular",
	}, f.Messages(SeverityError))
	assert.Equal(t, []string{"Family count mismatch: listed 2, reported 3"}, f.Messages(SeverityWarning))
}
