package changelog

import (
	"context"
	"fmt"
	"time"

	"fontdb/core/artifact"
	"fontdb/core/metrics"
	"fontdb/core/models"

	"go.uber.org/zap"
)

// Service writes the release notes and the cumulative changelog.
type Service struct {
	ws     *artifact.Workspace
	source Source
	differ *Differ
	logger *zap.Logger
	rec    *metrics.Recorder
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used for the section date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService returns a Service reading the previous snapshot from source.
func NewService(ws *artifact.Workspace, source Source, logger *zap.Logger, rec *metrics.Recorder, opts ...Option) *Service {
	if source == nil {
		source = None()
	}
	s := &Service{
		ws:     ws,
		source: source,
		differ: NewDiffer(logger),
		logger: logger,
		rec:    rec,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadPrevious loads the previous snapshot from the configured source.
func (s *Service) LoadPrevious(ctx context.Context) (*models.FontDatabase, error) {
	return LoadPrevious(ctx, s.source, s.logger, s.rec)
}

// Generate compares current with the previous snapshot and writes both
// changelog artifacts.
func (s *Service) Generate(ctx context.Context, current *models.FontDatabase) (*ChangeSet, error) {
	previous, err := s.LoadPrevious(ctx)
	if err != nil {
		return nil, err
	}
	return s.Write(ctx, previous, current)
}

// Write compares current with previous, which may be nil, and writes both
// changelog artifacts.
func (s *Service) Write(ctx context.Context, previous, current *models.FontDatabase) (*ChangeSet, error) {
	cs, err := s.differ.Diff(ctx, previous, current)
	if err != nil {
		return nil, err
	}

	notes := ReleaseNotes(cs)
	if err := s.ws.WriteFile(artifact.ReleaseNotes, []byte(notes)); err != nil {
		return nil, fmt.Errorf("failed to write release notes: %w", err)
	}

	existing, err := s.ws.ReadFile(artifact.Changelog)
	if err != nil && !artifact.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read changelog: %w", err)
	}
	merged := Merge(string(existing), current.Version, s.now(), notes)
	if err := s.ws.WriteFile(artifact.Changelog, []byte(merged)); err != nil {
		return nil, fmt.Errorf("failed to write changelog: %w", err)
	}

	s.logger.Info("Changelog written",
		zap.String("version", current.Version),
		zap.String("previous_version", cs.PreviousVersion),
		zap.Int("net_change", cs.NetChange()),
	)
	return cs, nil
}
