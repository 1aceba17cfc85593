// Package app wires configuration, storage, repositories and the
// service layer into one runnable unit.
package app

import (
	"context"

	"github.com/micbed86/FancyNote-sub000/internal/dao"
	"github.com/micbed86/FancyNote-sub000/internal/routers"
	"github.com/micbed86/FancyNote-sub000/internal/service"
	"github.com/micbed86/FancyNote-sub000/internal/task"
	pkgapp "github.com/micbed86/FancyNote-sub000/pkg/app"
	"github.com/micbed86/FancyNote-sub000/pkg/workerpool"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is the composed application.
type App struct {
	Config *Config
	DB     *gorm.DB
	Pool   *workerpool.Pool
	Svc    *service.Service
	Engine *gin.Engine
	Tasks  *task.Scheduler
}

// New builds the application from a loaded configuration.
func New(cfg *Config, logger *zap.Logger) (*App, error) {
	db, err := dao.NewDBEngine(&cfg.Database)
	if err != nil {
		return nil, errors.Wrap(err, "app: database")
	}

	noteRepo := dao.NewNoteRepository(db)
	userRepo := dao.NewUserRepository(db)
	notificationRepo := dao.NewNotificationRepository(db)

	tokenManager := pkgapp.NewTokenManager(cfg.Security)

	pool := workerpool.New(&workerpool.Config{
		MaxWorkers: cfg.Pool.MaxWorkers,
		QueueSize:  cfg.Pool.QueueSize,
	}, logger)

	svc := service.New(
		cfg.Service,
		cfg.Storage,
		noteRepo,
		userRepo,
		notificationRepo,
		tokenManager,
		pool,
	)

	cfg.Server.Config.Version = Version
	engine := routers.NewRouter(cfg.Server.Config, svc)

	tasks := task.NewScheduler(task.Config{
		Enabled:            cfg.Cron.Enabled,
		TempSweepSpec:      cfg.Cron.TempSweep,
		TempPath:           cfg.Service.TempPath,
		TempMaxAge:         cfg.Cron.TempMaxAge,
		CleanupSpec:        cfg.Cron.NotificationCleanup,
		NotificationMaxAge: cfg.Cron.NotificationMaxAge,
	}, notificationRepo, logger)

	return &App{
		Config: cfg,
		DB:     db,
		Pool:   pool,
		Svc:    svc,
		Engine: engine,
		Tasks:  tasks,
	}, nil
}

// Start launches the background machinery; the HTTP server is run by
// the caller.
func (a *App) Start() {
	a.Tasks.Start()
}

// Shutdown stops background work and releases the database.
func (a *App) Shutdown(ctx context.Context) error {
	a.Tasks.Stop()
	if err := a.Pool.Shutdown(ctx); err != nil {
		return err
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
