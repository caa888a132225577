package changelog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fontdb/core/artifact"
	"fontdb/core/metrics"
	"fontdb/core/models"
	"fontdb/core/storage"

	"go.uber.org/zap"
)

// ErrUnparsable is returned by a Source whose snapshot is not a database.
var ErrUnparsable = errors.New("previous database is not parsable")

// Source loads the previous snapshot. It returns nil without error when
// there is no snapshot.
type Source interface {
	Load(ctx context.Context) (*models.FontDatabase, error)
	String() string
}

// FileSource reads the snapshot from a workspace file.
type FileSource struct {
	ws   *artifact.Workspace
	name string
}

// NewFileSource returns a source reading name from ws.
func NewFileSource(ws *artifact.Workspace, name string) *FileSource {
	return &FileSource{ws: ws, name: name}
}

func (s *FileSource) Load(ctx context.Context) (*models.FontDatabase, error) {
	data, err := s.ws.ReadFile(s.name)
	if artifact.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.name, err)
	}
	return parse(data)
}

func (s *FileSource) String() string {
	return "file:" + s.ws.Path(s.name)
}

// StorageSource reads the snapshot from an object storage key.
type StorageSource struct {
	client storage.Client
	bucket string
	key    string
}

// NewStorageSource returns a source reading key from bucket.
func NewStorageSource(client storage.Client, bucket, key string) *StorageSource {
	return &StorageSource{client: client, bucket: bucket, key: key}
}

func (s *StorageSource) Load(ctx context.Context) (*models.FontDatabase, error) {
	data, err := storage.Download(ctx, s.client, s.bucket, s.key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func (s *StorageSource) String() string {
	return "s3://" + s.bucket + "/" + s.key
}

// noSource is used when no previous snapshot is configured.
type noSource struct{}

// None returns a source without a snapshot.
func None() Source {
	return noSource{}
}

func (noSource) Load(context.Context) (*models.FontDatabase, error) { return nil, nil }
func (noSource) String() string                                     { return "none" }

func parse(data []byte) (*models.FontDatabase, error) {
	var db models.FontDatabase
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsable, err)
	}
	return &db, nil
}

// LoadPrevious loads the snapshot of src. An unparsable snapshot is logged,
// counted and treated as absent; other errors are returned.
func LoadPrevious(ctx context.Context, src Source, logger *zap.Logger, rec *metrics.Recorder) (*models.FontDatabase, error) {
	prev, err := src.Load(ctx)
	switch {
	case errors.Is(err, ErrUnparsable):
		rec.Inc(metrics.StageChangelog, metrics.SeverityWarning)
		logger.Warn("Ignoring previous database", zap.String("source", src.String()), zap.Error(err))
		return nil, nil
	case err != nil:
		return nil, err
	case prev == nil:
		rec.Inc(metrics.StageChangelog, metrics.SeverityInfo)
		logger.Info("No previous database, treating all fonts as new", zap.String("source", src.String()))
		return nil, nil
	}

	logger.Info("Loaded previous database",
		zap.String("source", src.String()),
		zap.String("version", prev.Version),
		zap.Int("families", len(prev.Fonts)),
	)
	return prev, nil
}
