package cmd

import (
	"context"
	"fmt"
	"io"

	"fontdb/core/artifact"
	"fontdb/core/config"
	"fontdb/core/database"
	"fontdb/core/logger"
	"fontdb/core/metrics"
	"fontdb/core/storage"
	"fontdb/feature/archive"
	"fontdb/feature/changelog"
	"fontdb/feature/history"
	"fontdb/feature/pipeline"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app bundles what every command needs.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	pipeline  *pipeline.Pipeline
	history   *history.Store
	publisher *archive.Publisher
	out       io.Writer
}

// setup loads the configuration and wires the pipeline with its optional
// storage and history backends.
func setup(cmd *cobra.Command) (*app, error) {
	ctx := cmd.Context()

	// 1. Load Configuration
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if workDir != "" {
		cfg.Pipeline.Files.WorkDir = workDir
	}

	// 2. Initialize Logger
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	fs := afero.NewOsFs()
	opts := []pipeline.Option{}
	var publisher *archive.Publisher
	source := changelog.None()
	if name := cfg.Pipeline.Files.PreviousFile; name != "" {
		source = changelog.NewFileSource(artifact.NewWorkspace(fs, cfg.Pipeline.Files.WorkDir), name)
	}

	// 3. Object storage (optional)
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if cfg.Storage.PreviousObject != "" {
			source = changelog.NewStorageSource(client, cfg.Storage.Bucket, cfg.Storage.PreviousObject)
		}
		publisher = archive.NewPublisher(client, cfg.Storage.Bucket, cfg.Storage.ArchivePrefix, logg)
		opts = append(opts, pipeline.WithPublisher(publisher))
	}

	// 4. Connect to Database (optional)
	var store *history.Store
	if cfg.Database.Enabled {
		store, err = openHistory(ctx, cfg.Database, logg)
		if err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
			store = nil
		} else {
			opts = append(opts, pipeline.WithHistory(store))
		}
	}

	opts = append(opts, pipeline.WithPreviousSource(source))
	p := pipeline.New(fs, cfg.Pipeline, logg, metrics.New(), opts...)

	logg.Debug("Pipeline ready",
		zap.String("work_dir", p.Workspace().Dir()),
		zap.String("previous", source.String()),
		zap.Bool("storage", cfg.Storage.Enabled),
		zap.Bool("history", store != nil),
	)

	return &app{
		cfg:       cfg,
		logger:    logg,
		pipeline:  p,
		history:   store,
		publisher: publisher,
		out:       cmd.OutOrStdout(),
	}, nil
}

func openHistory(ctx context.Context, cfg database.Config, logg *zap.Logger) (*history.Store, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	store := history.NewStore(db, logg)
	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (a *app) print(lines ...string) {
	for _, l := range lines {
		fmt.Fprintln(a.out, l)
	}
}

func (a *app) close() {
	_ = a.logger.Sync()
}
