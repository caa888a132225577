package history

import (
	"time"

	"github.com/google/uuid"
)

// Run statuses.
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

// Run is one execution of the build pipeline.
type Run struct {
	ID              string    `gorm:"column:id;primaryKey;size:36"`
	Version         string    `gorm:"column:version;size:16;index"`
	Status          string    `gorm:"column:status;size:8"`
	StartedAt       time.Time `gorm:"column:started_at"`
	FinishedAt      time.Time `gorm:"column:finished_at"`
	Families        int       `gorm:"column:families"`
	Variants        int       `gorm:"column:variants"`
	Errors          int       `gorm:"column:errors"`
	Warnings        int       `gorm:"column:warnings"`
	NewFamilies     int       `gorm:"column:new_families"`
	UpdatedFamilies int       `gorm:"column:updated_families"`
	RemovedFamilies int       `gorm:"column:removed_families"`
}

// TableName overrides the table name.
func (Run) TableName() string {
	return "pipeline_runs"
}

// Duration is the wall time of the run.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Archive is one dated archive written by a run.
type Archive struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement"`
	RunID      string    `gorm:"column:run_id;size:36;index"`
	Version    string    `gorm:"column:version;size:16"`
	Path       string    `gorm:"column:path"`
	FileCount  int       `gorm:"column:file_count"`
	ArchivedAt time.Time `gorm:"column:archived_at"`
}

// TableName overrides the table name.
func (Archive) TableName() string {
	return "archives"
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}
