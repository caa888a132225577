package integrity

import (
	"time"

	"fontdb/core/artifact"
	"fontdb/core/metrics"
	"fontdb/core/models"
	"fontdb/feature/integrity/checks"

	"go.uber.org/zap"
)

// RequiredFiles must exist after a complete build.
var RequiredFiles = []string{
	artifact.CanonicalDatabase,
	artifact.FamiliesIndex,
	artifact.CategoriesIndex,
	artifact.PopularIndex,
	artifact.Stats,
}

// OptionalFiles are reported when present.
var OptionalFiles = []string{
	artifact.OptimizedDatabase,
	artifact.CompressedDatabase,
	artifact.Checksums,
}

// Service validates a database and the artifacts written for it.
// Data problems never surface as errors; they become report entries.
type Service struct {
	ws     *artifact.Workspace
	cfg    Config
	logger *zap.Logger
	rec    *metrics.Recorder
	now    func() time.Time
}

// NewService creates a new integrity service.
func NewService(ws *artifact.Workspace, cfg Config, logger *zap.Logger, rec *metrics.Recorder) *Service {
	return &Service{
		ws:     ws,
		cfg:    cfg,
		logger: logger,
		rec:    rec,
		now:    time.Now,
	}
}

// WithClock sets the clock used to date reports.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CheckModel validates the in-memory database. It only reads db and may run
// concurrently with other readers.
func (s *Service) CheckModel(db *models.FontDatabase) checks.Findings {
	var f checks.Findings
	f = append(f, checks.CheckDatabase(db, s.cfg.SampleSize)...)
	f = append(f, checks.CheckPreviews(db, s.cfg.PreviewSampleSize, s.cfg.PreviewErrorRate)...)
	return f
}

// CheckArtifacts validates the files in the workspace. optimized is the
// database the compressed artifact must decode to; nil only checks that it
// is readable.
func (s *Service) CheckArtifacts(optimized *models.FontDatabase) checks.Findings {
	var f checks.Findings
	f = append(f, checks.CheckFiles(s.ws, RequiredFiles, OptionalFiles)...)
	f = append(f, checks.CheckIndexes(s.ws, optimized)...)
	f = append(f, checks.CheckStats(s.ws)...)
	f = append(f, checks.CheckChecksums(s.ws)...)
	f = append(f, checks.CheckCompressed(s.ws, optimized)...)
	f = append(f, checks.CheckSizes(s.ws, checks.SizeLimits{
		MaxDatabaseBytes:    s.cfg.MaxDatabaseBytes,
		InfoDatabaseBytes:   s.cfg.InfoDatabaseBytes,
		MaxCompressionRatio: s.cfg.MaxCompressionRatio,
	})...)
	return f
}

// Validate runs every check against db and the workspace.
func (s *Service) Validate(db *models.FontDatabase) *Report {
	f := s.CheckModel(db)
	f = append(f, s.CheckArtifacts(db)...)
	return s.Report(f)
}

// Report builds the report for findings, counts them and logs the outcome.
func (s *Service) Report(findings checks.Findings) *Report {
	report := NewReport(s.now(), findings)

	s.rec.Add(metrics.StageValidate, metrics.SeverityError, report.Errors)
	s.rec.Add(metrics.StageValidate, metrics.SeverityWarning, report.Warnings)
	s.rec.Add(metrics.StageValidate, metrics.SeverityInfo, report.InfoMessages)

	for _, msg := range report.Details.Errors {
		s.logger.Error("Validation error", zap.String("detail", msg))
	}
	for _, msg := range report.Details.Warnings {
		s.logger.Warn("Validation warning", zap.String("detail", msg))
	}
	s.logger.Info("Validation finished",
		zap.String("status", string(report.OverallStatus)),
		zap.Int("errors", report.Errors),
		zap.Int("warnings", report.Warnings),
		zap.Int("info", report.InfoMessages),
	)
	return report
}

// WriteReport stores the report as indented JSON.
func (s *Service) WriteReport(report *Report) error {
	_, err := s.ws.WriteJSON(artifact.ValidationReport, report, artifact.Indented)
	return err
}
