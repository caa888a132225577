package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"fontdb/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }
func sizePtr(v int64) *int64 { return &v }

func TestVariant_JSONLocation(t *testing.T) {
	t.Run("AbsoluteURL", func(t *testing.T) {
		v := models.Variant{Weight: 400, Style: models.StyleNormal, Location: models.AbsoluteURL("https://example.com/ofl/a/A-Regular.ttf")}
		data, err := json.Marshal(v)
		require.NoError(t, err)
		assert.JSONEq(t, `{"weight":400,"style":"normal","download_url":"https://example.com/ofl/a/A-Regular.ttf"}`, string(data))

		var decoded models.Variant
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, v, decoded)
	})

	t.Run("FamilyFile", func(t *testing.T) {
		v := models.Variant{Weight: 700, Style: models.StyleItalic, WeightClass: intPtr(650), FileSize: sizePtr(1200), Location: models.FamilyFile("A-BoldItalic.ttf")}
		data, err := json.Marshal(v)
		require.NoError(t, err)
		assert.JSONEq(t, `{"weight":700,"style":"italic","weight_class":650,"file_size":1200,"filename":"A-BoldItalic.ttf"}`, string(data))

		var decoded models.Variant
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, v, decoded)
	})

	t.Run("BothForms", func(t *testing.T) {
		var decoded models.Variant
		err := json.Unmarshal([]byte(`{"weight":400,"style":"normal","download_url":"https://x/a.ttf","filename":"a.ttf"}`), &decoded)
		assert.ErrorIs(t, err, models.ErrInvalidLocation)
	})

	t.Run("NeitherForm", func(t *testing.T) {
		var decoded models.Variant
		require.NoError(t, json.Unmarshal([]byte(`{"weight":400,"style":"normal"}`), &decoded))
		assert.Nil(t, decoded.Location)
	})
}

func TestFontFamily_ResolveURL(t *testing.T) {
	f := &models.FontFamily{BaseURL: "https://example.com/ofl/a/"}

	url, err := f.ResolveURL(models.Variant{Location: models.FamilyFile("A-Regular.ttf")})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/ofl/a/A-Regular.ttf", url)

	url, err = f.ResolveURL(models.Variant{Location: models.AbsoluteURL("https://cdn.example.com/A.ttf")})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/A.ttf", url)

	_, err = f.ResolveURL(models.Variant{})
	assert.ErrorIs(t, err, models.ErrMissingLocation)

	_, err = (&models.FontFamily{}).ResolveURL(models.Variant{Location: models.FamilyFile("A.ttf")})
	assert.ErrorIs(t, err, models.ErrMissingBaseURL)
}

func TestAbsoluteURL_Dir(t *testing.T) {
	prefix, file := models.AbsoluteURL("https://example.com/ofl/a/A-Regular.ttf").Dir()
	assert.Equal(t, "https://example.com/ofl/a/", prefix)
	assert.Equal(t, "A-Regular.ttf", file)

	prefix, file = models.AbsoluteURL("A.ttf").Dir()
	assert.Equal(t, "", prefix)
	assert.Equal(t, "A.ttf", file)
}

func TestFontFamily_SortVariants(t *testing.T) {
	f := &models.FontFamily{Variants: []models.Variant{
		{Weight: 700, Style: models.StyleNormal},
		{Weight: 400, Style: models.StyleItalic},
		{Weight: 400, Style: models.StyleNormal},
	}}
	f.SortVariants()

	assert.Equal(t, models.VariantKey{Weight: 400, Style: models.StyleItalic}, f.Variants[0].Key())
	assert.Equal(t, models.VariantKey{Weight: 400, Style: models.StyleNormal}, f.Variants[1].Key())
	assert.Equal(t, models.VariantKey{Weight: 700, Style: models.StyleNormal}, f.Variants[2].Key())
	assert.Equal(t, 2, f.DistinctWeights())
}

func TestFontDatabase_CloneIsDeep(t *testing.T) {
	db := models.New(time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC))
	db.Fonts["Alpha"] = &models.FontFamily{
		Category: models.CategorySerif,
		Variants: []models.Variant{{Weight: 400, Style: models.StyleNormal, FileSize: sizePtr(10), Location: models.AbsoluteURL("https://x/a.ttf")}},
		Preview:  &models.Preview{Data: []byte{1, 2, 3}, CompressedSize: 4, Text: "Alpha"},
	}
	db.Recount()

	cp := db.Clone()
	*cp.Fonts["Alpha"].Variants[0].FileSize = 99
	cp.Fonts["Alpha"].Preview.Data[0] = 9
	cp.Fonts["Alpha"].Category = models.CategoryDisplay

	assert.Equal(t, int64(10), *db.Fonts["Alpha"].Variants[0].FileSize)
	assert.Equal(t, byte(1), db.Fonts["Alpha"].Preview.Data[0])
	assert.Equal(t, models.CategorySerif, db.Fonts["Alpha"].Category)
	assert.Equal(t, 1, cp.TotalFamilies)
}

func TestVersions(t *testing.T) {
	assert.Equal(t, "2025.03.14", models.NewVersion(time.Date(2025, 3, 14, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, models.CompareVersions("2025.03.14", "2025.10.01"))
	assert.Equal(t, 1, models.CompareVersions("2026.01.01", "2025.12.31"))
	assert.Equal(t, 0, models.CompareVersions("2025.03.14", "2025.03.14"))
	assert.Equal(t, -1, models.CompareVersions("abc", "abd"))

	_, err := models.ParseVersion("14/03/2025")
	assert.Error(t, err)
}

func TestWeightsAndEnums(t *testing.T) {
	assert.True(t, models.IsValidWeight(100))
	assert.True(t, models.IsValidWeight(900))
	assert.False(t, models.IsValidWeight(450))
	assert.False(t, models.IsValidWeight(1000))

	wc, ok := models.StandardWeightClass(300)
	assert.True(t, ok)
	assert.Equal(t, 300, wc)
	_, ok = models.StandardWeightClass(350)
	assert.False(t, ok)

	assert.True(t, models.StyleOblique.IsValid())
	assert.False(t, models.Style("slanted").IsValid())
	assert.True(t, models.CategoryMonospace.IsValid())
	assert.False(t, models.Category("blackletter").IsValid())
}

func TestPreviewTextAndStats(t *testing.T) {
	assert.Equal(t, "Short", models.PreviewText("Short"))
	assert.Equal(t, "Noto Sans Ja", models.PreviewText("Noto Sans Japanese"))

	db := models.New(time.Now())
	db.Fonts["A"] = &models.FontFamily{Preview: &models.Preview{CompressedSize: 100}}
	db.Fonts["B"] = &models.FontFamily{Preview: &models.Preview{CompressedSize: 300}}
	db.Fonts["C"] = &models.FontFamily{}
	db.RefreshPreviewStats()

	require.NotNil(t, db.PreviewStats)
	assert.Equal(t, 2, db.PreviewStats.TotalPreviews)
	assert.Equal(t, 400, db.PreviewStats.TotalCompressedSize)
	assert.Equal(t, 200.0, db.PreviewStats.AverageSize)
}
