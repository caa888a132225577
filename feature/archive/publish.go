package archive

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"fontdb/core/artifact"
	"fontdb/core/storage"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Publisher uploads archives to object storage.
type Publisher struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewPublisher returns a Publisher writing under prefix in bucket.
func NewPublisher(client storage.Client, bucket, prefix string, logger *zap.Logger) *Publisher {
	return &Publisher{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: logger,
	}
}

// ObjectKey returns the storage key of file within the archive key.
func (p *Publisher) ObjectKey(key, file string) string {
	return path.Join(p.prefix, key, file)
}

// Publish uploads the archived files and the metadata found in dir.
func (p *Publisher) Publish(ctx context.Context, fs afero.Fs, dir string, res *Result) error {
	if err := storage.EnsureBucket(ctx, p.client, p.bucket, ""); err != nil {
		return err
	}

	files := append(append([]string(nil), res.Metadata.ArchivedFiles...), artifact.ArchiveMetadata)
	for _, file := range files {
		data, err := afero.ReadFile(fs, filepath.Join(dir, file))
		if err != nil {
			return fmt.Errorf("failed to read archived %s: %w", file, err)
		}
		if err := storage.Upload(ctx, p.client, p.bucket, p.ObjectKey(res.Key, file), data, contentType(file)); err != nil {
			return err
		}
	}

	p.logger.Info("Archive published",
		zap.String("bucket", p.bucket),
		zap.String("prefix", p.ObjectKey(res.Key, "")),
		zap.Int("objects", len(files)),
	)
	return nil
}

// Published lists the archive keys present in storage, e.g. "2025/03/2025.03.14".
func (p *Publisher) Published(ctx context.Context) ([]string, error) {
	prefix := ""
	if p.prefix != "" {
		prefix = p.prefix + "/"
	}
	keys, err := storage.ListKeys(ctx, p.client, p.bucket, prefix)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for _, k := range keys {
		if path.Base(k) != artifact.ArchiveMetadata {
			continue
		}
		key := strings.TrimPrefix(path.Dir(k), prefix)
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out, nil
}

func contentType(name string) string {
	switch path.Ext(name) {
	case ".json":
		return "application/json"
	case ".gz":
		return "application/gzip"
	case ".md":
		return "text/markdown; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
