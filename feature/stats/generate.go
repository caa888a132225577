package stats

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"fontdb/core/artifact"
	"fontdb/core/models"
	"fontdb/core/utils"
)

const (
	mostVariantsLimit = 20
	mostWeightsLimit  = 15
	unknown           = "unknown"
	kib               = 1024.0
	mib               = 1024.0 * 1024.0
)

// Generate computes the statistics of db. Artifact sizes are read from ws
// when it is not nil.
func Generate(db *models.FontDatabase, ws *artifact.Workspace, now time.Time) *Stats {
	db = withData(db)
	s := &Stats{
		Generated:       now.UTC(),
		DatabaseVersion: db.Version,
		DatabaseUpdated: db.Updated,
		Basic:           basic(db),
		FileSizes:       fileSizes(db),
		Previews:        previews(db),
		Licenses:        licenses(db),
		Popular:         popular(db),
		Quality:         quality(db),
	}
	if ws != nil {
		s.Database = databaseFiles(ws)
	}
	return s
}

// Write stores s as the statistics artifact.
func Write(ws *artifact.Workspace, s *Stats) error {
	_, err := ws.WriteJSON(artifact.Stats, s, artifact.Indented)
	return err
}

// Summary returns the headline figures for the run log.
func (s *Stats) Summary() []string {
	lines := []string{
		"Font families: " + utils.Count(s.Basic.TotalFamilies),
		"Font variants: " + utils.Count(s.Basic.TotalVariants),
		fmt.Sprintf("Database size: %.1f KB", s.Database.OriginalDatabaseSizeKB),
		fmt.Sprintf("Preview coverage: %.1f%%", s.Quality.Completeness.PreviewCoverage),
		fmt.Sprintf("Quality score: %.1f%%", s.Quality.Consistency.ConsistencyScore),
	}
	if top := s.Quality.Coverage.MostCommonCategory; top != "" {
		lines = append(lines, fmt.Sprintf("Top category: %s (%d families)", top, s.Basic.Categories[top]))
	}
	return lines
}

// withData returns db without the families that hold no data. db is returned
// as is when every family has data.
func withData(db *models.FontDatabase) *models.FontDatabase {
	for _, f := range db.Fonts {
		if f != nil {
			continue
		}
		cp := *db
		cp.Fonts = make(map[string]*models.FontFamily, len(db.Fonts))
		for name, f := range db.Fonts {
			if f != nil {
				cp.Fonts[name] = f
			}
		}
		return &cp
	}
	return db
}

func categoryOf(f *models.FontFamily) string {
	if f.Category == "" {
		return unknown
	}
	return string(f.Category)
}

func basic(db *models.FontDatabase) Basic {
	b := Basic{
		TotalFamilies: len(db.Fonts),
		TotalVariants: db.VariantCount(),
		Categories:    make(map[string]int),
		Weights:       make(map[string]int),
		Styles:        make(map[string]int),
	}
	for _, f := range db.Fonts {
		b.Categories[categoryOf(f)]++
		for _, v := range f.Variants {
			b.Weights[strconv.Itoa(v.Weight)]++
			b.Styles[string(v.Style)]++
		}
	}
	if b.TotalFamilies > 0 {
		b.AvgVariantsPerFamily = round(float64(b.TotalVariants)/float64(b.TotalFamilies), 2)
	}
	return b
}

func fileSizes(db *models.FontDatabase) FileSizes {
	var all []float64
	byCategory := make(map[string][]float64)
	byWeight := make(map[string][]float64)

	for _, name := range db.FamilyNames() {
		f := db.Fonts[name]
		category := categoryOf(f)
		if f.AvgFileSize != nil && *f.AvgFileSize > 0 {
			size := float64(*f.AvgFileSize)
			all = append(all, size)
			byCategory[category] = append(byCategory[category], size)
			continue
		}
		for _, v := range f.Variants {
			if v.FileSize == nil || *v.FileSize <= 0 {
				continue
			}
			size := float64(*v.FileSize)
			all = append(all, size)
			byCategory[category] = append(byCategory[category], size)
			weight := strconv.Itoa(v.Weight)
			byWeight[weight] = append(byWeight[weight], size)
		}
	}

	if len(all) == 0 {
		return FileSizes{Error: "No file size data available"}
	}

	out := FileSizes{
		Overall: &SizeSummary{
			TotalFiles:   len(all),
			TotalSizeMB:  round(sum(all)/mib, 2),
			AvgSizeKB:    round(mean(all)/kib, 2),
			MedianSizeKB: round(median(all)/kib, 2),
			MinSizeKB:    round(minOf(all)/kib, 2),
			MaxSizeKB:    round(maxOf(all)/kib, 2),
			StdDevKB:     round(stdDev(all)/kib, 2),
		},
		ByCategory: make(map[string]GroupSize, len(byCategory)),
		ByWeight:   make(map[string]GroupSize, len(byWeight)),
	}
	for category, sizes := range byCategory {
		out.ByCategory[category] = GroupSize{
			Count:       len(sizes),
			AvgSizeKB:   round(mean(sizes)/kib, 2),
			TotalSizeMB: round(sum(sizes)/mib, 2),
		}
	}
	for weight, sizes := range byWeight {
		if len(sizes) < 2 {
			continue
		}
		out.ByWeight[weight] = GroupSize{Count: len(sizes), AvgSizeKB: round(mean(sizes)/kib, 2)}
	}
	return out
}

func previews(db *models.FontDatabase) Previews {
	var p Previews
	var sizes []float64
	for _, f := range db.Fonts {
		if f.Preview == nil {
			continue
		}
		p.FamiliesWithPreviews++
		if f.Preview.CompressedSize > 0 {
			p.TotalCompressedSize += f.Preview.CompressedSize
			sizes = append(sizes, float64(f.Preview.CompressedSize))
		}
	}
	if len(sizes) > 0 {
		p.AvgPreviewSize = math.Round(mean(sizes))
		p.MedianPreviewSize = math.Round(median(sizes))
		p.MinPreviewSize = int(minOf(sizes))
		p.MaxPreviewSize = int(maxOf(sizes))
		p.TotalPreviewSizeMB = round(float64(p.TotalCompressedSize)/mib, 2)
	}
	return p
}

func licenses(db *models.FontDatabase) Licenses {
	l := Licenses{
		Distribution: make(map[string]int),
		ByCategory:   make(map[string]map[string]int),
	}
	for _, f := range db.Fonts {
		license := f.License.Type
		if license == "" {
			license = unknown
		}
		category := categoryOf(f)
		l.Distribution[license]++
		if l.ByCategory[category] == nil {
			l.ByCategory[category] = make(map[string]int)
		}
		l.ByCategory[category][license]++
	}
	return l
}

func popular(db *models.FontDatabase) Popular {
	names := db.FamilyNames()
	p := Popular{
		MostVariants: make([]VariantRank, 0, len(names)),
		MostWeights:  make([]WeightRank, 0, len(names)),
	}
	for _, name := range names {
		f := db.Fonts[name]
		n := len(f.Variants)
		p.MostVariants = append(p.MostVariants, VariantRank{Family: name, Variants: n})
		p.MostWeights = append(p.MostWeights, WeightRank{Family: name, Weights: f.DistinctWeights()})
		switch {
		case n == 1:
			p.SingleVariantFamilies++
		case n > 1:
			p.MultiVariantFamilies++
		}
	}

	// names are sorted, so a stable sort breaks ties by name.
	sort.SliceStable(p.MostVariants, func(i, j int) bool {
		return p.MostVariants[i].Variants > p.MostVariants[j].Variants
	})
	sort.SliceStable(p.MostWeights, func(i, j int) bool {
		return p.MostWeights[i].Weights > p.MostWeights[j].Weights
	})
	p.MostVariants = p.MostVariants[:min(len(p.MostVariants), mostVariantsLimit)]
	p.MostWeights = p.MostWeights[:min(len(p.MostWeights), mostWeightsLimit)]
	return p
}

func quality(db *models.FontDatabase) Quality {
	var q Quality
	var withPreview, withLicense, variants, withSize int
	categoryCounts := make(map[string]int)
	weightCounts := make(map[int]int)

	for _, f := range db.Fonts {
		if f.Preview != nil {
			withPreview++
		}
		if f.License.Type != "" {
			withLicense++
		}
		if f.Category == "" {
			q.Consistency.MissingCategories++
		}
		categoryCounts[categoryOf(f)]++

		hasAvg := f.AvgFileSize != nil && *f.AvgFileSize > 0
		for _, v := range f.Variants {
			variants++
			if hasAvg || (v.FileSize != nil && *v.FileSize > 0) {
				withSize++
			}
			if !models.IsValidWeight(v.Weight) {
				q.Consistency.InvalidWeights++
			}
			if !v.Style.IsValid() {
				q.Consistency.InvalidStyles++
			}
			weightCounts[v.Weight]++
		}
	}

	families := len(db.Fonts)
	q.Completeness = Completeness{
		PreviewCoverage:  percent(withPreview, families),
		LicenseCoverage:  percent(withLicense, families),
		SizeDataCoverage: percent(withSize, variants),
	}

	q.Consistency.ConsistencyScore = 100
	if total := families + variants; total > 0 {
		issues := q.Consistency.MissingCategories + q.Consistency.InvalidWeights + q.Consistency.InvalidStyles
		q.Consistency.ConsistencyScore = round((1-float64(issues)/float64(total))*100, 1)
	}

	q.Coverage = Coverage{
		CategoriesCovered: len(categoryCounts),
		WeightsCovered:    len(weightCounts),
	}
	best := 0
	for category, n := range categoryCounts {
		if n > best || (n == best && category < q.Coverage.MostCommonCategory) {
			best, q.Coverage.MostCommonCategory = n, category
		}
	}
	best = 0
	for weight, n := range weightCounts {
		if n > best || (n == best && weight < q.Coverage.MostCommonWeight) {
			best, q.Coverage.MostCommonWeight = n, weight
		}
	}
	return q
}

func databaseFiles(ws *artifact.Workspace) DatabaseFiles {
	d := DatabaseFiles{
		OptimizedFiles: make(map[string]float64),
		IndexFiles:     make(map[string]float64),
	}
	var total int64
	if size, err := ws.Size(artifact.CanonicalDatabase); err == nil {
		d.OriginalDatabaseSizeKB = round(float64(size)/kib, 2)
		total += size
	}
	for _, name := range []string{artifact.OptimizedDatabase, artifact.CompressedDatabase} {
		if size, err := ws.Size(name); err == nil {
			d.OptimizedFiles[name] = round(float64(size)/kib, 2)
			total += size
		}
	}
	for _, name := range artifact.IndexFiles {
		if size, err := ws.Size(name); err == nil {
			d.IndexFiles[name] = round(float64(size)/kib, 2)
			total += size
		}
	}
	d.OptimizationApplied = ws.Exists(artifact.OptimizedDatabase)
	d.TotalDistributionSizeKB = round(float64(total)/kib, 2)
	return d
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return round(float64(n)/float64(total)*100, 1)
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

func mean(xs []float64) float64 {
	return sum(xs) / float64(len(xs))
}

func median(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		m = math.Min(m, x)
	}
	return m
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		m = math.Max(m, x)
	}
	return m
}

// stdDev is the sample standard deviation; it is zero for fewer than two values.
func stdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		ss += (x - m) * (x - m)
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
