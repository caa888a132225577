package aggregate

import (
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

const records = `{
	"ofl/lora/Lora-Regular.ttf": {
		"family": "Lora", "subfamily": "Regular", "weight": 400, "style": "normal",
		"weight_class": 400, "file_size": "120000",
		"download_url": "https://fonts.example/ofl/lora/Lora-Regular.ttf"
	},
	"ofl/lora/Lora-BoldItalic.ttf": {
		"family": "Lora", "subfamily": "Bold Italic", "file_size": 130000.0,
		"download_url": "https://fonts.example/ofl/lora/Lora-BoldItalic.ttf"
	},
	"ofl/lora/Lora-Regular-copy.ttf": {
		"family": "Lora", "weight": "400", "style": "Normal",
		"download_url": "https://fonts.example/ofl/lora/Lora-Regular-copy.ttf"
	},
	"apache/roboto/Roboto-ExtraBold.ttf": {
		"family": "Roboto", "subfamily": "ExtraBold", "weight_class": "780",
		"download_url": "https://fonts.example/apache/roboto/Roboto-ExtraBold.ttf"
	},
	"ofl/caveat/Caveat-Regular.ttf": {
		"family": "Caveat", "category": "Handwriting", "license_type": "OFL-1.1",
		"license_url": "https://openfontlicense.org",
		"download_url": "https://fonts.example/ofl/caveat/Caveat-Regular.ttf"
	},
	"ofl/nameless/Nameless.ttf": {
		"family": " ", "download_url": "https://fonts.example/ofl/nameless/Nameless.ttf"
	},
	"ofl/nowhere/Nowhere.ttf": {"family": "Nowhere"}
}`

func TestBuild(t *testing.T) {
	ws := artifact.NewWorkspace(afero.NewMemMapFs(), "/in")
	require.NoError(t, ws.WriteFile("font-records.json", []byte(records)))

	recs, err := Load(ws, "font-records.json")
	require.NoError(t, err)
	require.Len(t, recs, 7)

	rec := metrics.New()
	now := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)
	db, res := New(zap.NewNop(), rec, WithClock(func() time.Time { return now })).Build(recs)

	assert.Equal(t, Result{Records: 7, Families: 3, Variants: 4, Skipped: 2, Duplicates: 1}, res)
	assert.Equal(t, "2025.03.14", db.Version)
	assert.Equal(t, now, db.Updated)
	assert.Equal(t, 3, db.TotalFamilies)
	assert.Equal(t, 3, rec.Count(metrics.StageAggregate, metrics.SeverityWarning))

	lora := db.Fonts["Lora"]
	require.NotNil(t, lora)
	assert.Equal(t, models.CategorySerif, lora.Category)
	assert.Equal(t, models.License{Type: "OFL", URL: "https://scripts.sil.org/OFL"}, lora.License)
	require.Len(t, lora.Variants, 2)
	assert.Equal(t, models.VariantKey{Weight: 400, Style: models.StyleNormal}, lora.Variants[0].Key())
	assert.Equal(t, models.VariantKey{Weight: 700, Style: models.StyleItalic}, lora.Variants[1].Key())
	assert.Equal(t, int64(130000), *lora.Variants[1].FileSize)
	assert.Equal(t, 700, *lora.Variants[1].WeightClass)

	roboto := db.Fonts["Roboto"]
	require.NotNil(t, roboto)
	assert.Equal(t, models.CategorySansSerif, roboto.Category)
	assert.Equal(t, "Apache", roboto.License.Type)
	assert.Equal(t, 800, roboto.Variants[0].Weight)
	assert.Equal(t, 780, *roboto.Variants[0].WeightClass)
	assert.Nil(t, roboto.Variants[0].FileSize)

	caveat := db.Fonts["Caveat"]
	require.NotNil(t, caveat)
	assert.Equal(t, models.CategoryHandwriting, caveat.Category)
	assert.Equal(t, models.License{Type: "OFL-1.1", URL: "https://openfontlicense.org"}, caveat.License)

	url, err := caveat.ResolveURL(caveat.Variants[0])
	require.NoError(t, err)
	assert.Equal(t, "https://fonts.example/ofl/caveat/Caveat-Regular.ttf", url)
}

func TestBuild_UnknownCategory(t *testing.T) {
	rec := metrics.New()
	db, _ := New(zap.NewNop(), rec).Build(map[string]Record{
		"ofl/vollkorn/Vollkorn.ttf": {Family: "Vollkorn", Category: "blackletter", DownloadURL: "https://fonts.example/Vollkorn.ttf"},
	})
	assert.Equal(t, models.CategorySerif, db.Fonts["Vollkorn"].Category)
	assert.Equal(t, 1, rec.Count(metrics.StageAggregate, metrics.SeverityWarning))
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte(`["not", "an", "object"]`))
	assert.ErrorContains(t, err, "failed to parse font records")
}

func TestInferCategory(t *testing.T) {
	tests := []struct {
		path string
		want models.Category
	}{
		{"ofl/playfairdisplay/PlayfairDisplay-Regular.ttf", models.CategorySerif},
		{"ofl/lobster/Lobster-Regular.ttf", models.CategoryDisplay},
		{"ofl/dancingscript/DancingScript.ttf", models.CategoryHandwriting},
		{"ofl/jetbrainsmono/JetBrainsMono.ttf", models.CategoryMonospace},
		{"ofl/roboto/Roboto.ttf", models.CategorySansSerif},
		{"apache/robotomono/RobotoMono.ttf", models.CategorySansSerif},
		{"Roboto.ttf", models.CategorySansSerif},
		{`ofl\lora\Lora.ttf`, models.CategorySerif},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, InferCategory(tt.path))
		})
	}
}

func TestInferLicense(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"ofl/lora/Lora.ttf", "OFL"},
		{"apache/roboto/Roboto.ttf", "Apache"},
		{"ufl/ubuntu/Ubuntu.ttf", "UFL"},
		{"other/font/Font.ttf", "Open Source"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, InferLicense(tt.path).Type)
		})
	}
}

func TestParseWeightStyle(t *testing.T) {
	tests := []struct {
		name       string
		subfamily  string
		filename   string
		wantWeight int
		wantStyle  models.Style
	}{
		{"Bold italic subfamily", "Bold Italic", "x.ttf", 700, models.StyleItalic},
		{"Extra bold is not bold", "ExtraBold", "", 800, models.StyleNormal},
		{"File name fallback", "", "Font-SemiBoldOblique.ttf", 600, models.StyleOblique},
		{"Subfamily wins over file name", "Regular", "NothingYouCouldDo.ttf", 400, models.StyleNormal},
		{"Defaults", "", "Font.ttf", 400, models.StyleNormal},
		{"Hairline", "Hairline", "", 100, models.StyleNormal},
		{"Extra light italic", "ExtraLight Italic", "", 200, models.StyleItalic},
		{"Black", "", "Inter-Black.ttf", 900, models.StyleNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weight, style := ParseWeightStyle(tt.subfamily, tt.filename)
			assert.Equal(t, tt.wantWeight, weight)
			assert.Equal(t, tt.wantStyle, style)
		})
	}
}
