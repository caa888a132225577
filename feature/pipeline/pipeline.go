package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fontdb/core/artifact"
	"fontdb/core/logger"
	"fontdb/core/metrics"
	"fontdb/core/models"
	"fontdb/feature/aggregate"
	"fontdb/feature/archive"
	"fontdb/feature/changelog"
	"fontdb/feature/history"
	"fontdb/feature/index"
	"fontdb/feature/integrity"
	"fontdb/feature/optimize"
	"fontdb/feature/preview"
	"fontdb/feature/stats"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var (
	// ErrMissingInput is returned when a required input file does not exist.
	ErrMissingInput = errors.New("required input is missing")
	// ErrValidationFailed is returned by Run when the report has errors.
	ErrValidationFailed = errors.New("validation failed")
)

// Pipeline runs the build stages over one workspace.
type Pipeline struct {
	ws        *artifact.Workspace
	cfg       Config
	logger    *zap.Logger
	rec       *metrics.Recorder
	now       func() time.Time
	source    changelog.Source
	publisher *archive.Publisher
	history   *history.Store
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock sets the clock used for versions and timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithPreviousSource sets where the previous published database is read from.
func WithPreviousSource(src changelog.Source) Option {
	return func(p *Pipeline) { p.source = src }
}

// WithPublisher uploads archives to object storage.
func WithPublisher(pub *archive.Publisher) Option {
	return func(p *Pipeline) { p.publisher = pub }
}

// WithHistory records runs and archives in store.
func WithHistory(store *history.Store) Option {
	return func(p *Pipeline) { p.history = store }
}

// New returns a Pipeline writing into cfg.Files.WorkDir on fs.
func New(fs afero.Fs, cfg Config, logger *zap.Logger, rec *metrics.Recorder, opts ...Option) *Pipeline {
	p := &Pipeline{
		ws:     artifact.NewWorkspace(fs, cfg.Files.WorkDir),
		cfg:    cfg,
		logger: logger,
		rec:    rec,
		now:    time.Now,
		source: changelog.None(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Workspace returns the artifact workspace.
func (p *Pipeline) Workspace() *artifact.Workspace {
	return p.ws
}

// Recorder returns the condition counters of the pipeline.
func (p *Pipeline) Recorder() *metrics.Recorder {
	return p.rec
}

func (p *Pipeline) log(stage string) *zap.Logger {
	return logger.ForStage(p.logger, stage)
}

func (p *Pipeline) timed(stage string, fn func() error) error {
	start := time.Now()
	err := fn()
	p.rec.ObserveStage(stage, time.Since(start))
	if err != nil {
		p.rec.Inc(stage, metrics.SeverityError)
	}
	return err
}

// LoadDatabase reads a database artifact.
func (p *Pipeline) LoadDatabase(name string) (*models.FontDatabase, error) {
	var db models.FontDatabase
	if err := p.ws.ReadJSON(name, &db); err != nil {
		if artifact.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, p.ws.Path(name))
		}
		return nil, err
	}
	return &db, nil
}

// Aggregate builds the canonical database from the record file, attaches
// the previews when configured and writes the canonical artifact.
func (p *Pipeline) Aggregate(ctx context.Context) (*models.FontDatabase, aggregate.Result, error) {
	var (
		db  *models.FontDatabase
		res aggregate.Result
	)
	err := p.timed(metrics.StageAggregate, func() error {
		records, err := aggregate.Load(p.ws, p.cfg.Files.InputFile)
		if artifact.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrMissingInput, p.ws.Path(p.cfg.Files.InputFile))
		}
		if err != nil {
			return err
		}
		db, res = aggregate.New(p.log(metrics.StageAggregate), p.rec, aggregate.WithClock(p.now)).Build(records)
		return nil
	})
	if err != nil {
		return nil, res, err
	}

	if p.cfg.Files.PreviewsFile != "" {
		err := p.timed(metrics.StagePreview, func() error {
			previews, err := preview.Load(p.ws, p.cfg.Files.PreviewsFile)
			if err != nil {
				return err
			}
			preview.Attach(db, previews, p.log(metrics.StagePreview), p.rec)
			return nil
		})
		if err != nil {
			p.logger.Warn("Previews not attached", zap.Error(err))
		}
	}

	if _, err := p.ws.WriteJSON(artifact.CanonicalDatabase, db, artifact.Indented); err != nil {
		return nil, res, err
	}
	return db, res, nil
}

// Optimize writes the optimized and compressed artifacts for db.
func (p *Pipeline) Optimize(db *models.FontDatabase) (*models.FontDatabase, *optimize.Result, error) {
	var (
		out *models.FontDatabase
		res *optimize.Result
	)
	err := p.timed(metrics.StageOptimize, func() error {
		var err error
		out, res, err = optimize.New(p.log(metrics.StageOptimize), p.rec, optimize.WithClock(p.now)).Optimize(db)
		if err != nil {
			return err
		}

		data, err := p.ws.WriteJSON(artifact.OptimizedDatabase, out, artifact.Compact)
		if err != nil {
			return err
		}
		gz, err := artifact.Compress(data)
		if err != nil {
			return err
		}
		if err := p.ws.WriteFile(artifact.CompressedDatabase, gz); err != nil {
			return err
		}

		p.logger.Info("Wrote distribution files",
			zap.Int("optimized_bytes", len(data)),
			zap.Int("compressed_bytes", len(gz)),
		)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return out, res, nil
}

// Index writes the three index projections of db.
func (p *Pipeline) Index(db *models.FontDatabase) (*index.Set, error) {
	var set *index.Set
	err := p.timed(metrics.StageIndex, func() error {
		set = index.Build(db)
		return index.Write(p.ws, set)
	})
	return set, err
}

// Checksums writes the checksum file for the distribution files.
func (p *Pipeline) Checksums() error {
	_, err := p.ws.WriteChecksums(artifact.ChecksummedFiles)
	return err
}

// Stats writes the statistics of db.
func (p *Pipeline) Stats(db *models.FontDatabase) (*stats.Stats, error) {
	var s *stats.Stats
	err := p.timed(metrics.StageStats, func() error {
		s = stats.Generate(db, p.ws, p.now())
		return stats.Write(p.ws, s)
	})
	return s, err
}

// Validator returns the integrity service of the workspace.
func (p *Pipeline) Validator() *integrity.Service {
	return integrity.NewService(p.ws, p.cfg.Checks, p.log(metrics.StageValidate), p.rec).WithClock(p.now)
}

// Validate checks db and the workspace artifacts and writes the report.
func (p *Pipeline) Validate(db *models.FontDatabase) (*integrity.Report, error) {
	var report *integrity.Report
	err := p.timed(metrics.StageValidate, func() error {
		svc := p.Validator()
		report = svc.Validate(db)
		return svc.WriteReport(report)
	})
	return report, err
}

// Changelog returns the changelog service reading from the configured source.
func (p *Pipeline) Changelog() *changelog.Service {
	return changelog.NewService(p.ws, p.source, p.log(metrics.StageChangelog), p.rec, changelog.WithClock(p.now))
}

// Archiver returns the archiver of the workspace.
func (p *Pipeline) Archiver() *archive.Archiver {
	opts := []archive.Option{archive.WithClock(p.now)}
	if p.publisher != nil {
		opts = append(opts, archive.WithPublisher(p.publisher))
	}
	return archive.New(p.ws, p.cfg.Files.ArchiveDir, p.log(metrics.StageArchive), p.rec, opts...)
}

// Archive archives the current artifacts under version and records the
// archive in the history catalog when one is configured.
func (p *Pipeline) Archive(ctx context.Context, runID, version string, force bool) (*archive.Result, error) {
	var res *archive.Result
	err := p.timed(metrics.StageArchive, func() error {
		var err error
		res, err = p.Archiver().Archive(ctx, version, artifact.ArchivedFiles, force)
		return err
	})
	if err != nil {
		return res, err
	}

	if !res.Skipped && p.history != nil {
		rec := &history.Archive{
			RunID:      runID,
			Version:    version,
			Path:       res.Metadata.ArchivePath,
			FileCount:  res.Metadata.FileCount,
			ArchivedAt: res.Metadata.ArchivedDate,
		}
		if err := p.history.RecordArchive(ctx, rec); err != nil {
			p.rec.Inc(metrics.StageHistory, metrics.SeverityFailure)
			p.logger.Warn("Archive not recorded", zap.Error(err))
		}
	}
	return res, nil
}
