package optimize

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"fontdb/core/artifact"
	"fontdb/core/metrics"
	"fontdb/core/models"
	"fontdb/feature/preview"

	"go.uber.org/zap"
)

// SizeTolerance is the largest relative deviation from the family mean that
// still lets variant sizes collapse.
const SizeTolerance = 0.1

// ErrSemanticsChanged is returned when an optimized variant no longer resolves
// to the URL it resolved to before.
var ErrSemanticsChanged = errors.New("optimization changed a variant download url")

// Result describes one optimization pass.
type Result struct {
	SizesCollapsed       int
	FileSizesElided      int
	WeightClassesElided  int
	PreviewsRecompressed int
	RecompressFailures   int
	URLsDeduplicated     int
	EmptyFamilies        int
	BytesBefore          int
	BytesAfter           int
}

// FieldsElided is the number of per-variant fields the pass removed.
func (r Result) FieldsElided() int {
	return r.FileSizesElided + r.WeightClassesElided + r.URLsDeduplicated
}

// BytesSaved is the difference of the compact encodings.
func (r Result) BytesSaved() int {
	return r.BytesBefore - r.BytesAfter
}

// Optimizer applies the size-reducing transforms.
type Optimizer struct {
	logger *zap.Logger
	rec    *metrics.Recorder
	now    func() time.Time
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithClock sets the clock used for the optimization date.
func WithClock(now func() time.Time) Option {
	return func(o *Optimizer) { o.now = now }
}

// New returns an Optimizer.
func New(logger *zap.Logger, rec *metrics.Recorder, opts ...Option) *Optimizer {
	o := &Optimizer{logger: logger, rec: rec, now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Optimize returns an optimized copy of db. db is not modified.
func (o *Optimizer) Optimize(db *models.FontDatabase) (*models.FontDatabase, *Result, error) {
	before, err := artifact.Encode(db, artifact.Compact)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode input: %w", err)
	}

	out := db.Clone()
	res := &Result{BytesBefore: len(before)}

	for _, name := range out.FamilyNames() {
		family := out.Fonts[name]
		if family == nil {
			res.EmptyFamilies++
			o.rec.Inc(metrics.StageOptimize, metrics.SeverityWarning)
			o.logger.Warn("Skipping family without data", zap.String("family", name))
			continue
		}

		if n := collapseSizes(family); n > 0 {
			res.SizesCollapsed++
			res.FileSizesElided += n
		}
		res.WeightClassesElided += elideWeightClasses(family)
		o.recompressPreview(name, family, res)
		res.URLsDeduplicated += dedupURLs(family)
	}

	if err := verify(db, out); err != nil {
		return nil, nil, err
	}

	out.Recount()
	out.RefreshPreviewStats()
	out.Optimized = true
	date := o.now().UTC()
	out.OptimizationDate = &date

	after, err := artifact.Encode(out, artifact.Compact)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode output: %w", err)
	}
	res.BytesAfter = len(after)

	o.logger.Info("Optimized database",
		zap.Int("fields_elided", res.FieldsElided()),
		zap.Int("sizes_collapsed", res.SizesCollapsed),
		zap.Int("previews_recompressed", res.PreviewsRecompressed),
		zap.Int("urls_deduplicated", res.URLsDeduplicated),
		zap.Int("bytes_saved", res.BytesSaved()),
	)
	return out, res, nil
}

func (o *Optimizer) recompressPreview(name string, family *models.FontFamily, res *Result) {
	if family.Preview == nil {
		return
	}
	p, changed, err := preview.Recompress(family.Preview)
	if err != nil {
		res.RecompressFailures++
		o.rec.Inc(metrics.StageOptimize, metrics.SeverityFailure)
		o.logger.Warn("Failed to recompress preview", zap.String("family", name), zap.Error(err))
		return
	}
	if changed {
		family.Preview = p
		res.PreviewsRecompressed++
	}
}

// collapseSizes replaces per-variant sizes with their mean when every known
// size lies within SizeTolerance of it. Zero sizes are unknown and ignored.
// It returns the number of sizes removed.
func collapseSizes(f *models.FontFamily) int {
	if len(f.Variants) < 2 || f.AvgFileSize != nil {
		return 0
	}

	var sum int64
	var known []int64
	for _, v := range f.Variants {
		if v.FileSize != nil && *v.FileSize > 0 {
			known = append(known, *v.FileSize)
			sum += *v.FileSize
		}
	}
	if len(known) == 0 {
		return 0
	}

	avg := float64(sum) / float64(len(known))
	for _, size := range known {
		if math.Abs(float64(size)-avg)/avg >= SizeTolerance {
			return 0
		}
	}

	removed := 0
	for i := range f.Variants {
		if f.Variants[i].FileSize != nil {
			f.Variants[i].FileSize = nil
			removed++
		}
	}
	mean := int64(avg)
	f.AvgFileSize = &mean
	return removed
}

// elideWeightClasses drops weight classes equal to the standard mapping.
func elideWeightClasses(f *models.FontFamily) int {
	removed := 0
	for i, v := range f.Variants {
		if v.WeightClass == nil {
			continue
		}
		if std, ok := models.StandardWeightClass(v.Weight); ok && std == *v.WeightClass {
			f.Variants[i].WeightClass = nil
			removed++
		}
	}
	return removed
}

// dedupURLs factors the most shared directory prefix into the family base URL.
// A family that already has a base URL only converts URLs under that base.
func dedupURLs(f *models.FontFamily) int {
	groups := make(map[string][]int)
	for i, v := range f.Variants {
		u, ok := v.Location.(models.AbsoluteURL)
		if !ok {
			continue
		}
		if prefix, _ := u.Dir(); prefix != "" {
			groups[prefix] = append(groups[prefix], i)
		}
	}

	base := f.BaseURL
	if base == "" {
		prefixes := make([]string, 0, len(groups))
		for p := range groups {
			prefixes = append(prefixes, p)
		}
		sort.Strings(prefixes)
		for _, p := range prefixes {
			if len(groups[p]) > len(groups[base]) {
				base = p
			}
		}
		if len(groups[base]) < 2 {
			return 0
		}
		f.BaseURL = base
	}

	for _, i := range groups[base] {
		_, file := f.Variants[i].Location.(models.AbsoluteURL).Dir()
		f.Variants[i].Location = models.FamilyFile(file)
	}
	return len(groups[base])
}

// verify checks that every variant of out resolves to the URL the same
// variant of in resolved to.
func verify(in, out *models.FontDatabase) error {
	for name, family := range in.Fonts {
		opt := out.Fonts[name]
		if family == nil || opt == nil {
			if (family == nil) != (opt == nil) {
				return fmt.Errorf("%w: %s presence", ErrSemanticsChanged, name)
			}
			continue
		}
		for i, v := range family.Variants {
			want, wantErr := family.ResolveURL(v)
			got, gotErr := opt.ResolveURL(opt.Variants[i])
			if (wantErr == nil) != (gotErr == nil) || want != got {
				return fmt.Errorf("%w: %s variant %s", ErrSemanticsChanged, name, v.Key())
			}
		}
	}
	return nil
}
