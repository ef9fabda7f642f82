package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/ddubrovin/lunchboard/internal/config"
	"github.com/ddubrovin/lunchboard/internal/domain"
	"github.com/ddubrovin/lunchboard/internal/handler"
	"github.com/ddubrovin/lunchboard/internal/middleware"
	"github.com/ddubrovin/lunchboard/internal/notification"
	"github.com/ddubrovin/lunchboard/internal/repository/memory"
	"github.com/ddubrovin/lunchboard/internal/repository/postgres"
	"github.com/ddubrovin/lunchboard/internal/router"
	"github.com/ddubrovin/lunchboard/internal/scheduler"
	"github.com/ddubrovin/lunchboard/internal/service"
	"github.com/ddubrovin/lunchboard/internal/service/ports"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/logger"
)

const migrationsDir = "migrations"

type App struct {
	cfg        *config.Config
	log        logger.Logger
	db         *dbpg.DB
	httpServer *http.Server
	scheduler  *scheduler.Scheduler
}

func New(cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg}

	log, err := logger.InitLogger(
		cfg.Logger.LogEngine(),
		"LunchBoard",
		cfg.Gin.Mode,
		logger.WithLevel(cfg.Logger.LogLevel()),
	)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	app.log = log

	eventRepo, userRepo, err := app.initStorage()
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	if err = app.initServices(eventRepo, userRepo); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}

	return app, nil
}

func (a *App) initStorage() (ports.EventRepo, ports.UserRepo, error) {
	if a.cfg.Storage.Driver == config.StorageDriverPostgres {
		if err := a.runMigrations(); err != nil {
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
		if err := a.initDB(); err != nil {
			return nil, nil, fmt.Errorf("init db: %w", err)
		}
		return postgres.NewEventRepo(a.db), postgres.NewUserRepo(a.db), nil
	}

	eventRepo := memory.NewEventRepo()
	userRepo := memory.NewUserRepo()
	userRepo.Seed(seedUsers())

	a.log.Info("using in-memory storage, state will not survive a restart")

	return eventRepo, userRepo, nil
}

func (a *App) initDB() error {
	db, err := dbpg.New(
		a.cfg.Postgres.DSN(),
		nil,
		&dbpg.Options{
			MaxOpenConns: a.cfg.Postgres.MaxOpenConns,
			MaxIdleConns: a.cfg.Postgres.MaxIdleConns,
		},
	)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	if err := db.Master.PingContext(context.Background()); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	a.db = db
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connected",
		logger.String("host", a.cfg.Postgres.Host),
		logger.Int("port", a.cfg.Postgres.Port),
		logger.String("database", a.cfg.Postgres.Database),
	)

	return nil
}

func (a *App) initServices(eventRepo ports.EventRepo, userRepo ports.UserRepo) error {
	n, err := notification.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.log)
	if err != nil {
		return fmt.Errorf("init notifier: %w", err)
	}

	eventService := service.NewEventService(eventRepo, userRepo, n, a.log)
	orderService := service.NewOrderService(eventRepo, userRepo)
	votingService := service.NewVotingService(eventRepo, userRepo, n)
	userService := service.NewUserService(userRepo)

	a.scheduler = scheduler.New(
		eventService,
		a.cfg.Scheduler.Interval,
		a.log,
	)

	h := handler.NewHandler(eventService, orderService, votingService, userService)
	r := router.InitRouter(
		a.cfg.Gin.Mode,
		h,
		middleware.RequestID(),
		middleware.RequestLogger(a.log),
		middleware.Recovery(a.log),
	)

	a.httpServer = &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	return nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.scheduler.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.log.LogAttrs(ctx, logger.InfoLevel, "HTTP server starting",
			logger.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		a.cfg.Server.WriteTimeout,
	)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "HTTP server stopped")

	if a.db != nil {
		if err := a.db.Master.Close(); err != nil {
			return fmt.Errorf("close db: %w", err)
		}
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connection closed")
	}

	a.log.LogAttrs(context.Background(), logger.InfoLevel, "app stopped")

	return nil
}

func (a *App) runMigrations() error {
	db, err := sql.Open("postgres", a.cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	a.log.Info("migrations applied successfully")
	return nil
}

// seedUsers is the mock user directory for the memory driver. Fixed IDs so
// the X-User-ID header is usable straight away in local setups.
func seedUsers() []*domain.User {
	now := time.Now().UTC()
	return []*domain.User{
		{
			ID:        "6a8f2f6e-0b3a-4a8e-9c36-3f72cbe0a111",
			Name:      "Ola Admin",
			Email:     "ola@lunchboard.local",
			Role:      domain.RoleAdmin,
			CreatedAt: now,
		},
		{
			ID:        "0d5c1f1a-7a41-4c97-9f51-8d2de1b4a222",
			Name:      "Marek",
			Email:     "marek@lunchboard.local",
			Role:      domain.RoleUser,
			CreatedAt: now,
		},
		{
			ID:        "f3b8f7d0-5a92-43e6-8a54-6c1f0d9cb333",
			Name:      "Kasia",
			Email:     "kasia@lunchboard.local",
			Role:      domain.RoleUser,
			CreatedAt: now,
		},
	}
}
