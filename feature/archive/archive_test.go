package archive

import (
	"context"
	"testing"
	"time"

	"fontdb/core/artifact"
	"fontdb/core/metrics"
	"fontdb/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func march(day int) func() time.Time {
	return func() time.Time { return time.Date(2025, 3, day, 10, 0, 0, 0, time.UTC) }
}

func workspace(t *testing.T, files ...string) *artifact.Workspace {
	t.Helper()
	ws := artifact.NewWorkspace(afero.NewMemMapFs(), "/work")
	for _, name := range files {
		require.NoError(t, ws.WriteFile(name, []byte(`{"version":"2025.03.14"}`)))
	}
	return ws
}

func TestArchive(t *testing.T) {
	ws := workspace(t, artifact.CanonicalDatabase, artifact.Stats)
	rec := metrics.New()
	a := New(ws, "archives", zap.NewNop(), rec, WithClock(march(14)))

	res, err := a.Archive(context.Background(), "2025.03.14", []string{artifact.CanonicalDatabase, artifact.Stats, artifact.Checksums}, false)
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, "2025/03/2025.03.14", res.Key)
	assert.Equal(t, []string{artifact.Checksums}, res.Missing)
	assert.Equal(t, []string{artifact.CanonicalDatabase, artifact.Stats}, res.Metadata.ArchivedFiles)
	assert.Equal(t, 2, res.Metadata.FileCount)
	assert.Equal(t, "archives/2025/03/2025.03.14", res.Metadata.ArchivePath)
	assert.Equal(t, 1, rec.Count(metrics.StageArchive, metrics.SeverityWarning))

	copied, err := afero.ReadFile(ws.Fs(), "/work/archives/2025/03/2025.03.14/"+artifact.Stats)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"2025.03.14"}`, string(copied))

	meta, err := readMetadata(ws.Fs(), "/work/archives/2025/03/2025.03.14/"+artifact.ArchiveMetadata)
	require.NoError(t, err)
	assert.Equal(t, *res.Metadata, *meta)
}

func TestArchive_OncePerVersion(t *testing.T) {
	tests := []struct {
		name        string
		version     string
		force       bool
		wantSkipped bool
	}{
		{name: "Same version skipped", version: "2025.03.14", wantSkipped: true},
		{name: "Same version forced", version: "2025.03.14", force: true},
		{name: "New version archived", version: "2025.03.20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := workspace(t, artifact.CanonicalDatabase)
			_, err := New(ws, "archives", zap.NewNop(), nil, WithClock(march(14))).
				Archive(context.Background(), "2025.03.14", []string{artifact.CanonicalDatabase}, false)
			require.NoError(t, err)

			res, err := New(ws, "archives", zap.NewNop(), nil, WithClock(march(20))).
				Archive(context.Background(), tt.version, []string{artifact.CanonicalDatabase}, tt.force)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSkipped, res.Skipped)
			if tt.wantSkipped {
				assert.Equal(t, 14, res.Metadata.ArchivedDate.Day())
			} else {
				assert.Equal(t, 20, res.Metadata.ArchivedDate.Day())
			}
		})
	}
}

func TestArchive_ForcedReplacesArchive(t *testing.T) {
	ws := workspace(t, artifact.CanonicalDatabase, artifact.Stats)
	a := New(ws, "archives", zap.NewNop(), nil, WithClock(march(14)))
	dir := "/work/archives/2025/03/2025.03.14/"

	_, err := a.Archive(context.Background(), "2025.03.14", []string{artifact.CanonicalDatabase, artifact.Stats}, false)
	require.NoError(t, err)
	require.NoError(t, ws.Fs().Remove(ws.Path(artifact.Stats)))

	res, err := a.Archive(context.Background(), "2025.03.14", []string{artifact.CanonicalDatabase, artifact.Stats}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{artifact.CanonicalDatabase}, res.Metadata.ArchivedFiles)

	files, err := afero.ReadDir(ws.Fs(), dir)
	require.NoError(t, err)
	var names []string
	for _, f := range files {
		names = append(names, f.Name())
	}
	assert.ElementsMatch(t, []string{artifact.CanonicalDatabase, artifact.ArchiveMetadata}, names)
}

func TestArchive_NothingToArchive(t *testing.T) {
	ws := workspace(t)
	a := New(ws, "archives", zap.NewNop(), nil, WithClock(march(14)))

	res, err := a.Archive(context.Background(), "2025.03.14", artifact.ArchivedFiles, false)
	assert.ErrorIs(t, err, ErrNothingToArchive)
	assert.Nil(t, res)

	exists, err := afero.DirExists(ws.Fs(), a.Root())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestList(t *testing.T) {
	ws := workspace(t, artifact.CanonicalDatabase, artifact.Changelog)
	names := []string{artifact.CanonicalDatabase, artifact.Changelog}

	empty, err := New(ws, "archives", zap.NewNop(), nil).List()
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, run := range []struct {
		at      time.Time
		version string
	}{
		{time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), "2025.04.02"},
		{time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), "2025.03.14"},
		{time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), "2025.03.20"},
	} {
		at := run.at
		_, err := New(ws, "archives", zap.NewNop(), nil, WithClock(func() time.Time { return at })).
			Archive(context.Background(), run.version, names, false)
		require.NoError(t, err)
	}

	entries, err := New(ws, "archives", zap.NewNop(), nil).List()
	require.NoError(t, err)

	var lines []string
	for _, e := range entries {
		lines = append(lines, e.String())
	}
	assert.Equal(t, []string{
		"2025/03: v2025.03.14 (2 files)",
		"2025/03: v2025.03.20 (2 files)",
		"2025/04: v2025.04.02 (2 files)",
	}, lines)
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	ws := workspace(t, artifact.CanonicalDatabase, artifact.CompressedDatabase)

	m := new(mocks.Client)
	m.On("BucketExists", ctx, "fonts").Return(true, nil)
	for key, ct := range map[string]string{
		"archives/2025/03/2025.03.14/" + artifact.CanonicalDatabase:  "application/json",
		"archives/2025/03/2025.03.14/" + artifact.CompressedDatabase: "application/gzip",
		"archives/2025/03/2025.03.14/" + artifact.ArchiveMetadata:    "application/json",
	} {
		m.On("PutObject", ctx, "fonts", key, mock.Anything, mock.AnythingOfType("int64"), minio.PutObjectOptions{ContentType: ct}).
			Return(minio.UploadInfo{}, nil).Once()
	}

	publisher := NewPublisher(m, "fonts", "/archives/", zap.NewNop())
	a := New(ws, "archives", zap.NewNop(), nil, WithClock(march(14)), WithPublisher(publisher))

	_, err := a.Archive(ctx, "2025.03.14", []string{artifact.CanonicalDatabase, artifact.CompressedDatabase}, false)
	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestPublished(t *testing.T) {
	ctx := context.Background()

	m := mocks.NewClient(t)
	m.On("ListObjects", ctx, "fonts", minio.ListObjectsOptions{Prefix: "archives/", Recursive: true}).
		Return(mocks.Objects(
			"archives/2025/04/2025.04.01/"+artifact.CanonicalDatabase,
			"archives/2025/04/2025.04.01/"+artifact.ArchiveMetadata,
			"archives/2025/03/2025.03.14/"+artifact.ArchiveMetadata,
			"archives/2025/03/2025.03.14/"+artifact.CanonicalDatabase,
			"archives/stray.json",
		))

	keys, err := NewPublisher(m, "fonts", "archives", zap.NewNop()).Published(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025/03/2025.03.14", "2025/04/2025.04.01"}, keys)
}

func TestVersionOf(t *testing.T) {
	ws := workspace(t, artifact.CanonicalDatabase)
	require.NoError(t, ws.WriteFile("broken.json", []byte("{")))

	assert.Equal(t, "2025.03.14", VersionOf(ws, artifact.CanonicalDatabase))
	assert.Equal(t, UnknownVersion, VersionOf(ws, "broken.json"))
	assert.Equal(t, UnknownVersion, VersionOf(ws, "absent.json"))
}
