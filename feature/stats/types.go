package stats

import "time"

// Stats is the stats.json document.
type Stats struct {
	Generated       time.Time     `json:"generated"`
	DatabaseVersion string        `json:"database_version"`
	DatabaseUpdated time.Time     `json:"database_updated"`
	Basic           Basic         `json:"basic"`
	FileSizes       FileSizes     `json:"file_sizes"`
	Previews        Previews      `json:"previews"`
	Licenses        Licenses      `json:"licenses"`
	Popular         Popular       `json:"popular"`
	Quality         Quality       `json:"quality"`
	Database        DatabaseFiles `json:"database"`
}

type Basic struct {
	TotalFamilies        int            `json:"total_families"`
	TotalVariants        int            `json:"total_variants"`
	AvgVariantsPerFamily float64        `json:"avg_variants_per_family"`
	Categories           map[string]int `json:"categories"`
	Weights              map[string]int `json:"weights"`
	Styles               map[string]int `json:"styles"`
}

// SizeSummary describes a set of font file sizes.
type SizeSummary struct {
	TotalFiles   int     `json:"total_files"`
	TotalSizeMB  float64 `json:"total_size_mb"`
	AvgSizeKB    float64 `json:"avg_size_kb"`
	MedianSizeKB float64 `json:"median_size_kb"`
	MinSizeKB    float64 `json:"min_size_kb"`
	MaxSizeKB    float64 `json:"max_size_kb"`
	StdDevKB     float64 `json:"std_dev_kb"`
}

type GroupSize struct {
	Count       int     `json:"count"`
	AvgSizeKB   float64 `json:"avg_size_kb"`
	TotalSizeMB float64 `json:"total_size_mb,omitempty"`
}

// FileSizes is empty apart from Error when no size is known.
type FileSizes struct {
	Overall    *SizeSummary         `json:"overall,omitempty"`
	ByCategory map[string]GroupSize `json:"by_category,omitempty"`
	ByWeight   map[string]GroupSize `json:"by_weight,omitempty"`
	Error      string               `json:"error,omitempty"`
}

type Previews struct {
	FamiliesWithPreviews int     `json:"families_with_previews"`
	TotalCompressedSize  int     `json:"total_compressed_size"`
	AvgPreviewSize       float64 `json:"avg_preview_size,omitempty"`
	MedianPreviewSize    float64 `json:"median_preview_size,omitempty"`
	MinPreviewSize       int     `json:"min_preview_size,omitempty"`
	MaxPreviewSize       int     `json:"max_preview_size,omitempty"`
	TotalPreviewSizeMB   float64 `json:"total_preview_size_mb,omitempty"`
}

type Licenses struct {
	Distribution map[string]int            `json:"distribution"`
	ByCategory   map[string]map[string]int `json:"by_category"`
}

type VariantRank struct {
	Family   string `json:"family"`
	Variants int    `json:"variants"`
}

type WeightRank struct {
	Family  string `json:"family"`
	Weights int    `json:"weights"`
}

type Popular struct {
	MostVariants          []VariantRank `json:"most_variants"`
	MostWeights           []WeightRank  `json:"most_weights"`
	SingleVariantFamilies int           `json:"single_variant_families"`
	MultiVariantFamilies  int           `json:"multi_variant_families"`
}

type Quality struct {
	Completeness Completeness `json:"completeness"`
	Consistency  Consistency  `json:"consistency"`
	Coverage     Coverage     `json:"coverage"`
}

// Completeness values are percentages.
type Completeness struct {
	PreviewCoverage  float64 `json:"preview_coverage"`
	LicenseCoverage  float64 `json:"license_coverage"`
	SizeDataCoverage float64 `json:"size_data_coverage"`
}

type Consistency struct {
	MissingCategories int     `json:"missing_categories"`
	InvalidWeights    int     `json:"invalid_weights"`
	InvalidStyles     int     `json:"invalid_styles"`
	ConsistencyScore  float64 `json:"consistency_score"`
}

type Coverage struct {
	CategoriesCovered  int    `json:"categories_covered"`
	WeightsCovered     int    `json:"weights_covered"`
	MostCommonCategory string `json:"most_common_category,omitempty"`
	MostCommonWeight   int    `json:"most_common_weight,omitempty"`
}

// DatabaseFiles lists artifact sizes in KiB.
type DatabaseFiles struct {
	OriginalDatabaseSizeKB  float64            `json:"original_database_size_kb"`
	OptimizedFiles          map[string]float64 `json:"optimized_files"`
	IndexFiles              map[string]float64 `json:"index_files"`
	OptimizationApplied     bool               `json:"optimization_applied"`
	TotalDistributionSizeKB float64            `json:"total_distribution_size_kb"`
}
