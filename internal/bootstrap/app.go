package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-analysis/internal/analyses"
	"resume-analysis/internal/audit"
	googleauth "resume-analysis/internal/auth"
	"resume-analysis/internal/resumes"
	"resume-analysis/internal/services/health"
	"resume-analysis/internal/shared/config"
	"resume-analysis/internal/shared/server"
	"resume-analysis/internal/shared/storage/db"
	"resume-analysis/internal/shared/storage/object"
	localstore "resume-analysis/internal/shared/storage/object/local"
	s3store "resume-analysis/internal/shared/storage/object/s3"
	"resume-analysis/internal/shared/telemetry"
	"resume-analysis/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Store           object.ObjectStore
	Engine          EngineDeps
	AnalysesRepo    analyses.Repo
	ResumesRepo     resumes.Repo
	UsersRepo       users.Repo
	AuditRepo       audit.Repo
	AnalysesService *analyses.Service
	ResumesService  *resumes.Service
	UsersService    *users.Service
	AnalysisHandler *analyses.Handler
	UsersHandler    *users.Handler
	GoogleAuth      *googleauth.GoogleService
	Health          *health.Service
}

// Build wires repositories, services and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	sqlDB, err := openDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	closeDB := func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		closeDB()
		return nil, err
	}

	engine, err := BuildEngine(ctx, cfg)
	if err != nil {
		closeDB()
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Engine: engine,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		AnalysisHandler: app.AnalysisHandler,
		UserHandler:     app.UsersHandler,
		GoogleAuth:      app.GoogleAuth,
		Health:          app.Health,
	})
	return app, nil
}

// Close releases the database and cache.
func (a *App) Close() error {
	_ = a.Engine.Close()
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// openDB is swapped in tests.
var openDB = buildDB

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database unavailable", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.AnalysesRepo = &analyses.PGRepo{DB: app.DB}
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.AuditRepo = &audit.PGRepo{DB: app.DB}
	} else {
		app.AnalysesRepo = analyses.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
		app.AuditRepo = audit.NewMemoryRepo()
	}

	recorder := audit.NewRecorder(app.AuditRepo)
	app.ResumesService = resumes.NewService(app.ResumesRepo, app.Store, recorder)
	app.AnalysesService = analyses.NewService(app.Engine.Engine, app.AnalysesRepo, app.ResumesService, recorder)
	app.UsersService = users.NewService(app.UsersRepo)

	app.AnalysisHandler = analyses.NewHandler(app.AnalysesService)
	app.UsersHandler = users.NewHandler(app.UsersService)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		googleauth.WithUserSyncer(app.UsersService),
	)

	var pinger health.Pinger
	if app.DB != nil {
		pinger = app.DB
	}
	app.Health = health.NewService(pinger, app.Engine.Engine.AIEnabled())
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
