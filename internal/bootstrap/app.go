package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/export"
	"resume-builder/internal/resume"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/storage/kv"
	"resume-builder/internal/shared/storage/kv/local"
	"resume-builder/internal/shared/storage/kv/memory"
	kvpostgres "resume-builder/internal/shared/storage/kv/postgres"
	kvs3 "resume-builder/internal/shared/storage/kv/s3"
	kvsqlite "resume-builder/internal/shared/storage/kv/sqlite"
	"resume-builder/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	Storage       kv.Store
	Store         *resume.Store
	Exporter      *export.Service
	ResumeHandler *resume.Handler
	ExportHandler *export.Handler

	closers []io.Closer
}

// Options override dependencies, mainly for tests.
type Options struct {
	Storage kv.Store
	Browser export.Browser
}

// Build wires storage, the resume store, the exporter and the router.
func Build(cfg config.Config) (*App, error) {
	return BuildWith(context.Background(), cfg, Options{})
}

// BuildWith is Build with explicit overrides.
func BuildWith(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.StoreBackend) == "" {
		cfg.StoreBackend = config.BackendLocal
	}

	app := &App{Config: cfg}

	storage := opts.Storage
	if storage == nil {
		var err error
		storage, err = app.buildStorage(ctx, cfg)
		if err != nil {
			app.Close()
			return nil, err
		}
	}
	app.Storage = storage

	app.Store = resume.Open(ctx, storage, resume.Options{
		Key:          cfg.StoreKey,
		HistoryLimit: cfg.HistoryLimit,
	})

	renderer, err := export.NewRenderer()
	if err != nil {
		app.Close()
		return nil, err
	}
	browser := opts.Browser
	if browser == nil {
		browser = export.NewChrome(cfg.ChromePath)
	}
	app.Exporter = export.NewService(renderer, browser, cfg.ExportTimeout)

	app.ResumeHandler = resume.NewHandler(app.Store)
	app.ExportHandler = export.NewHandler(app.Store, app.Exporter)
	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		Health:        health.NewService(cfg.StoreBackend, app.Exporter),
		ResumeHandler: app.ResumeHandler,
		ExportHandler: app.ExportHandler,
		Limiter:       middleware.NewRateLimiter(nil),
	})

	telemetry.Info("bootstrap complete", map[string]any{
		"env":     cfg.Env,
		"storage": cfg.StoreBackend,
	})
	return app, nil
}

// Close releases storage connections.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

func (a *App) buildStorage(ctx context.Context, cfg config.Config) (kv.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendSQLite:
		store, err := kvsqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		a.closers = append(a.closers, store)
		return store, nil
	case config.BackendPostgres:
		sqlDB, err := connectPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, sqlDB)
		return kvpostgres.New(sqlDB), nil
	case config.BackendS3:
		return kvs3.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return local.New(cfg.LocalStoreDir), nil
	}
}

func connectPostgres(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.PoolFromEnv(db.ServerPool()))
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}
