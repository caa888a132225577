package aggregate

import (
	"path"
	"sort"
	"strings"
	"time"

	"fontdb/core/metrics"
	"fontdb/core/models"

	"go.uber.org/zap"
)

// Result counts what Build did with the records.
type Result struct {
	Records    int
	Families   int
	Variants   int
	Skipped    int
	Duplicates int
}

// Aggregator builds the canonical database.
type Aggregator struct {
	logger *zap.Logger
	rec    *metrics.Recorder
	now    func() time.Time
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock sets the clock that stamps the database version.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// New returns an Aggregator.
func New(logger *zap.Logger, rec *metrics.Recorder, opts ...Option) *Aggregator {
	a := &Aggregator{logger: logger, rec: rec, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Build merges records, keyed by relative font path, into a new database.
// Records are visited in path order, so the first path of a family decides
// its category and license.
func (a *Aggregator) Build(records map[string]Record) (*models.FontDatabase, Result) {
	db := models.New(a.now())
	res := Result{Records: len(records)}

	paths := make([]string, 0, len(records))
	for p := range records {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		r := records[p]
		name := strings.TrimSpace(r.Family)
		if name == "" {
			a.skip(&res, p, "missing family name")
			continue
		}
		if r.DownloadURL == "" {
			a.skip(&res, p, "missing download url")
			continue
		}

		family, ok := db.Fonts[name]
		if !ok {
			family = a.newFamily(p, r)
			db.Fonts[name] = family
		}

		v := variant(p, r)
		if _, dup := family.VariantKeys()[v.Key()]; dup {
			res.Duplicates++
			a.rec.Inc(metrics.StageAggregate, metrics.SeverityWarning)
			a.logger.Warn("Duplicate variant ignored",
				zap.String("family", name),
				zap.String("variant", v.Key().String()),
				zap.String("path", p),
			)
			continue
		}
		family.Variants = append(family.Variants, v)
		res.Variants++
	}

	for _, family := range db.Fonts {
		family.SortVariants()
	}
	db.Recount()
	res.Families = db.TotalFamilies

	a.logger.Info("Aggregated font records",
		zap.String("version", db.Version),
		zap.Int("records", res.Records),
		zap.Int("families", res.Families),
		zap.Int("variants", res.Variants),
		zap.Int("skipped", res.Skipped),
	)
	return db, res
}

func (a *Aggregator) skip(res *Result, p, reason string) {
	res.Skipped++
	a.rec.Inc(metrics.StageAggregate, metrics.SeverityWarning)
	a.logger.Warn("Skipping font record", zap.String("path", p), zap.String("reason", reason))
}

func (a *Aggregator) newFamily(p string, r Record) *models.FontFamily {
	family := &models.FontFamily{}

	category := models.Category(strings.ToLower(strings.TrimSpace(r.Category)))
	switch {
	case category.IsValid():
		family.Category = category
	case category != "":
		a.rec.Inc(metrics.StageAggregate, metrics.SeverityWarning)
		a.logger.Warn("Unknown category, inferring from path",
			zap.String("family", r.Family),
			zap.String("category", string(category)),
		)
		family.Category = InferCategory(p)
	default:
		family.Category = InferCategory(p)
	}

	if r.LicenseType != "" {
		family.License = models.License{Type: r.LicenseType, URL: r.LicenseURL}
	} else {
		family.License = InferLicense(p)
	}
	return family
}

func variant(p string, r Record) models.Variant {
	weight, style := r.Weight, models.Style(strings.ToLower(r.Style))
	if weight == 0 || style == "" {
		parsedWeight, parsedStyle := ParseWeightStyle(r.Subfamily, path.Base(p))
		if weight == 0 {
			weight = parsedWeight
		}
		if style == "" {
			style = parsedStyle
		}
	}

	weightClass := r.WeightClass
	if weightClass == 0 {
		weightClass = weight
		if std, ok := models.StandardWeightClass(weight); ok {
			weightClass = std
		}
	}

	v := models.Variant{
		Weight:      weight,
		Style:       style,
		WeightClass: &weightClass,
		Location:    models.AbsoluteURL(r.DownloadURL),
	}
	if r.FileSize > 0 {
		size := r.FileSize
		v.FileSize = &size
	}
	return v
}
