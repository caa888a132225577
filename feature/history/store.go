package history

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store persists runs and archives.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStore returns a Store over db.
func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Migrate creates or updates the catalog tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Run{}, &Archive{}); err != nil {
		return fmt.Errorf("failed to migrate history tables: %w", err)
	}
	return nil
}

// RecordRun stores run, assigning an ID when it has none.
func (s *Store) RecordRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = NewRunID()
	}
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.ID, err)
	}
	s.logger.Debug("Recorded run", zap.String("run_id", run.ID), zap.String("status", run.Status))
	return nil
}

// RecordArchive stores archive.
func (s *Store) RecordArchive(ctx context.Context, archive *Archive) error {
	if err := s.db.WithContext(ctx).Create(archive).Error; err != nil {
		return fmt.Errorf("failed to record archive %s: %w", archive.Path, err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. A limit of zero or
// less returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	var runs []Run
	q := s.db.WithContext(ctx).Order("started_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// LastArchive returns the most recent archive of version, or nil.
func (s *Store) LastArchive(ctx context.Context, version string) (*Archive, error) {
	var archive Archive
	err := s.db.WithContext(ctx).
		Where("version = ?", version).
		Order("archived_at desc").
		First(&archive).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up archive %s: %w", version, err)
	}
	return &archive, nil
}
