package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"time"

	"fontdb/core/artifact"
	"fontdb/core/metrics"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrNothingToArchive is returned when none of the requested files exist.
var ErrNothingToArchive = errors.New("no files to archive")

// UnknownVersion is recorded when the database version cannot be read.
const UnknownVersion = "unknown"

// Metadata describes one archive.
type Metadata struct {
	ArchivedDate    time.Time `json:"archived_date"`
	ArchivePath     string    `json:"archive_path"`
	ArchivedFiles   []string  `json:"archived_files"`
	FileCount       int       `json:"file_count"`
	DatabaseVersion string    `json:"database_version"`
}

// Result is the outcome of Archive.
type Result struct {
	// Key is the archive location relative to the archive root, e.g. "2025/03/2025.03.14".
	Key      string
	Metadata *Metadata
	// Skipped is set when the period already captured the version.
	Skipped bool
	Missing []string
}

// Entry is one archive found by List.
type Entry struct {
	Year     string
	Month    string
	Metadata Metadata
}

func (e Entry) String() string {
	return fmt.Sprintf("%s/%s: v%s (%d files)", e.Year, e.Month, e.Metadata.DatabaseVersion, e.Metadata.FileCount)
}

// Archiver copies workspace artifacts into dated archives.
type Archiver struct {
	ws        *artifact.Workspace
	root      string
	logger    *zap.Logger
	rec       *metrics.Recorder
	now       func() time.Time
	publisher *Publisher
}

// Option configures an Archiver.
type Option func(*Archiver)

// WithClock sets the clock that selects the archive period.
func WithClock(now func() time.Time) Option {
	return func(a *Archiver) { a.now = now }
}

// WithPublisher uploads every new archive through p.
func WithPublisher(p *Publisher) Option {
	return func(a *Archiver) { a.publisher = p }
}

// New returns an Archiver storing archives under root inside ws.
func New(ws *artifact.Workspace, root string, logger *zap.Logger, rec *metrics.Recorder, opts ...Option) *Archiver {
	a := &Archiver{
		ws:     ws,
		root:   ws.Path(root),
		logger: logger,
		rec:    rec,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Root returns the archive root directory.
func (a *Archiver) Root() string {
	return a.root
}

// Key returns the archive location of version for the period containing t.
func Key(t time.Time, version string) string {
	return path.Join(t.Format("2006"), t.Format("01"), version)
}

// Archive copies the existing files among names into the archive of version.
func (a *Archiver) Archive(ctx context.Context, version string, names []string, force bool) (*Result, error) {
	now := a.now().UTC()
	res := &Result{Key: Key(now, version)}
	dir := filepath.Join(a.root, filepath.FromSlash(res.Key))
	metaPath := filepath.Join(dir, artifact.ArchiveMetadata)

	if existing, err := readMetadata(a.ws.Fs(), metaPath); err == nil && !force {
		a.logger.Info("Archive already exists for version, skipping",
			zap.String("archive", res.Key),
			zap.String("version", existing.DatabaseVersion),
		)
		a.rec.Inc(metrics.StageArchive, metrics.SeverityInfo)
		res.Skipped = true
		res.Metadata = existing
		return res, nil
	}

	var present []string
	for _, name := range names {
		if a.ws.Exists(name) {
			present = append(present, name)
		} else {
			res.Missing = append(res.Missing, name)
		}
	}
	if len(res.Missing) > 0 {
		a.rec.Add(metrics.StageArchive, metrics.SeverityWarning, len(res.Missing))
		a.logger.Warn("Skipping missing files", zap.Strings("files", res.Missing))
	}
	if len(present) == 0 {
		a.rec.Inc(metrics.StageArchive, metrics.SeverityError)
		return nil, ErrNothingToArchive
	}

	// A forced run replaces the archive, so files no longer present are not
	// left behind unlisted.
	if force {
		if err := a.ws.Fs().RemoveAll(dir); err != nil {
			return nil, fmt.Errorf("failed to clear archive %s: %w", res.Key, err)
		}
	}

	archived := make([]string, 0, len(present))
	for _, name := range present {
		if err := a.ws.Copy(name, filepath.Join(dir, name)); err != nil {
			a.rec.Inc(metrics.StageArchive, metrics.SeverityFailure)
			a.logger.Error("Failed to archive file", zap.String("file", name), zap.Error(err))
			continue
		}
		archived = append(archived, name)
	}

	res.Metadata = &Metadata{
		ArchivedDate:    now,
		ArchivePath:     filepath.ToSlash(filepath.Join(filepath.Base(a.root), res.Key)),
		ArchivedFiles:   archived,
		FileCount:       len(archived),
		DatabaseVersion: version,
	}
	data, err := artifact.Encode(res.Metadata, artifact.Indented)
	if err != nil {
		return nil, err
	}
	if err := artifact.WriteAtomic(a.ws.Fs(), metaPath, data); err != nil {
		return nil, fmt.Errorf("failed to write archive metadata: %w", err)
	}

	a.logger.Info("Archive completed",
		zap.String("archive", res.Key),
		zap.Int("files", len(archived)),
		zap.Bool("forced", force),
	)

	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, a.ws.Fs(), dir, res); err != nil {
			return res, err
		}
	}
	return res, nil
}

// List returns the archives under the root ordered by period and version.
func (a *Archiver) List() ([]Entry, error) {
	fs := a.ws.Fs()
	if ok, _ := afero.DirExists(fs, a.root); !ok {
		return nil, nil
	}

	var entries []Entry
	years, err := afero.ReadDir(fs, a.root)
	if err != nil {
		return nil, err
	}
	for _, year := range years {
		if !year.IsDir() {
			continue
		}
		months, err := afero.ReadDir(fs, filepath.Join(a.root, year.Name()))
		if err != nil {
			return nil, err
		}
		for _, month := range months {
			if !month.IsDir() {
				continue
			}
			monthDir := filepath.Join(a.root, year.Name(), month.Name())
			versions, err := afero.ReadDir(fs, monthDir)
			if err != nil {
				return nil, err
			}
			for _, version := range versions {
				if !version.IsDir() {
					continue
				}
				meta, err := readMetadata(fs, filepath.Join(monthDir, version.Name(), artifact.ArchiveMetadata))
				if err != nil {
					a.logger.Warn("Unreadable archive metadata", zap.String("archive", path.Join(year.Name(), month.Name(), version.Name())), zap.Error(err))
					meta = &Metadata{DatabaseVersion: version.Name()}
				}
				entries = append(entries, Entry{Year: year.Name(), Month: month.Name(), Metadata: *meta})
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Year != entries[j].Year {
			return entries[i].Year < entries[j].Year
		}
		if entries[i].Month != entries[j].Month {
			return entries[i].Month < entries[j].Month
		}
		return entries[i].Metadata.DatabaseVersion < entries[j].Metadata.DatabaseVersion
	})
	return entries, nil
}

func readMetadata(fs afero.Fs, name string) (*Metadata, error) {
	data, err := afero.ReadFile(fs, name)
	if err != nil {
		return nil, err
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// VersionOf reads the version of the database stored in name, or
// UnknownVersion when it cannot be read.
func VersionOf(ws *artifact.Workspace, name string) string {
	var db struct {
		Version string `json:"version"`
	}
	if err := ws.ReadJSON(name, &db); err != nil || db.Version == "" {
		return UnknownVersion
	}
	return db.Version
}
