package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fontdb/core/artifact"
	"fontdb/core/metrics"
	"fontdb/core/models"
	"fontdb/core/utils"
	"fontdb/feature/archive"
	"fontdb/feature/changelog"
	"fontdb/feature/history"
	"fontdb/feature/integrity"
	"fontdb/feature/integrity/checks"
	"fontdb/feature/optimize"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Summary describes a full run.
type Summary struct {
	RunID      string
	Version    string
	StartedAt  time.Time
	FinishedAt time.Time
	Families   int
	Variants   int
	Skipped    int
	Duplicates int
	Optimize   *optimize.Result
	Report     *integrity.Report
	Changes    *changelog.ChangeSet
	Archive    *archive.Result
	Conditions []metrics.Line
}

// Lines returns the human readable run summary.
func (s *Summary) Lines() []string {
	lines := []string{
		fmt.Sprintf("Run %s: version %s", s.RunID, s.Version),
		fmt.Sprintf("Families: %s, variants: %s", utils.Count(s.Families), utils.Count(s.Variants)),
	}
	if s.Skipped > 0 || s.Duplicates > 0 {
		lines = append(lines, fmt.Sprintf("Records: %s skipped, %s duplicates",
			utils.Count(s.Skipped), utils.Count(s.Duplicates)))
	}
	if s.Optimize != nil {
		lines = append(lines, fmt.Sprintf("Optimized: %s fields elided, %s saved",
			utils.Count(s.Optimize.FieldsElided()), utils.Bytes(int64(s.Optimize.BytesSaved()))))
	}
	if s.Report != nil {
		lines = append(lines, fmt.Sprintf("Validation: %s (%d errors, %d warnings)",
			s.Report.OverallStatus, s.Report.Errors, s.Report.Warnings))
	}
	if s.Changes != nil {
		lines = append(lines, fmt.Sprintf("Changes: %d new, %d updated, %d removed (%s families)",
			len(s.Changes.NewFamilies), len(s.Changes.UpdatedFamilies), len(s.Changes.RemovedFamilies),
			utils.Signed(s.Changes.NetChange())))
	}
	if s.Archive != nil {
		if s.Archive.Skipped {
			lines = append(lines, "Archive: "+s.Archive.Key+" already captured")
		} else {
			lines = append(lines, fmt.Sprintf("Archive: %s (%d files)", s.Archive.Key, s.Archive.Metadata.FileCount))
		}
	}
	for _, c := range s.Conditions {
		lines = append(lines, "Condition "+c.String())
	}
	return lines
}

// Run executes every stage. The previous snapshot is loaded before anything
// is written, so it may live in the workspace itself.
func (p *Pipeline) Run(ctx context.Context, forceArchive bool) (*Summary, error) {
	sum := &Summary{RunID: history.NewRunID(), StartedAt: p.now().UTC()}
	p.logger.Info("Starting build", zap.String("run_id", sum.RunID), zap.String("work_dir", p.ws.Dir()))

	err := p.run(ctx, sum, forceArchive)

	sum.FinishedAt = p.now().UTC()
	p.recordRun(ctx, sum, err)
	sum.Conditions = p.rec.Summary()

	if file := p.cfg.Files.MetricsFile; file != "" {
		if werr := p.rec.WriteTextfile(p.ws.Path(file)); werr != nil {
			p.logger.Warn("Metrics not written", zap.String("file", file), zap.Error(werr))
		}
	}

	if err != nil {
		p.logger.Error("Build failed", zap.String("run_id", sum.RunID), zap.Error(err))
		return sum, err
	}
	p.logger.Info("Build finished",
		zap.String("run_id", sum.RunID),
		zap.String("version", sum.Version),
		zap.Duration("elapsed", sum.FinishedAt.Sub(sum.StartedAt)),
		zap.Int("warnings", p.rec.Total(metrics.SeverityWarning)),
		zap.Int("failures", p.rec.Total(metrics.SeverityFailure)),
	)
	return sum, nil
}

func (p *Pipeline) run(ctx context.Context, sum *Summary, forceArchive bool) error {
	changes := p.Changelog()
	previous, err := changes.LoadPrevious(ctx)
	if err != nil {
		return err
	}

	canonical, agg, err := p.Aggregate(ctx)
	if err != nil {
		return err
	}
	sum.Skipped = agg.Skipped
	sum.Duplicates = agg.Duplicates
	sum.Version = canonical.Version
	sum.Families = canonical.TotalFamilies
	sum.Variants = canonical.VariantCount()

	optimized, res, err := p.Optimize(canonical)
	if err != nil {
		return err
	}
	sum.Optimize = res

	validator := p.Validator()
	var model checks.Findings
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := p.Index(optimized)
		return err
	})
	g.Go(func() error {
		model = validator.CheckModel(optimized)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if err := p.Checksums(); err != nil {
		return err
	}
	if _, err := p.Stats(canonical); err != nil {
		return err
	}

	err = p.timed(metrics.StageValidate, func() error {
		findings := append(model, validator.CheckArtifacts(optimized)...)
		sum.Report = validator.Report(findings)
		return validator.WriteReport(sum.Report)
	})
	if err != nil {
		return err
	}
	if !sum.Report.Passed() {
		return fmt.Errorf("%w: %d errors", ErrValidationFailed, sum.Report.Errors)
	}

	err = p.timed(metrics.StageChangelog, func() error {
		var err error
		sum.Changes, err = changes.Write(ctx, previous, canonical)
		return err
	})
	if err != nil {
		return err
	}

	sum.Archive, err = p.Archive(ctx, sum.RunID, canonical.Version, forceArchive)
	return err
}

func (p *Pipeline) recordRun(ctx context.Context, sum *Summary, runErr error) {
	if p.history == nil {
		return
	}

	run := &history.Run{
		ID:         sum.RunID,
		Version:    sum.Version,
		Status:     history.StatusPass,
		StartedAt:  sum.StartedAt,
		FinishedAt: sum.FinishedAt,
		Families:   sum.Families,
		Variants:   sum.Variants,
	}
	if runErr != nil {
		run.Status = history.StatusFail
	}
	if sum.Report != nil {
		run.Errors = sum.Report.Errors
		run.Warnings = sum.Report.Warnings
	}
	if sum.Changes != nil {
		run.NewFamilies = len(sum.Changes.NewFamilies)
		run.UpdatedFamilies = len(sum.Changes.UpdatedFamilies)
		run.RemovedFamilies = len(sum.Changes.RemovedFamilies)
	}

	if err := p.history.RecordRun(ctx, run); err != nil {
		p.rec.Inc(metrics.StageHistory, metrics.SeverityFailure)
		p.logger.Warn("Run not recorded", zap.String("run_id", run.ID), zap.Error(err))
	}
}

// LoadCurrent reads the optimized database, falling back to the canonical one.
func (p *Pipeline) LoadCurrent() (*models.FontDatabase, error) {
	db, err := p.LoadDatabase(artifact.OptimizedDatabase)
	if errors.Is(err, ErrMissingInput) {
		return p.LoadDatabase(artifact.CanonicalDatabase)
	}
	return db, err
}
