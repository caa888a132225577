// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small interface covering what the
// pipeline needs from a bucket: fetching the previously published database
// and publishing dated archives. Both AWS S3 and self-hosted MinIO work.
//
// The Client interface keeps storage interactions mockable (see
// core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	data, err := storage.Download(ctx, client, cfg.Storage.Bucket, cfg.Storage.PreviousObject)
//	if errors.Is(err, storage.ErrObjectNotFound) {
//	    // first run
//	}
package storage
