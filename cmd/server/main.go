// Command clipy-server starts the clipy HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/and161185/clipy/internal/assets"
	"github.com/and161185/clipy/internal/config"
	"github.com/and161185/clipy/internal/limiter"
	"github.com/and161185/clipy/internal/migrate"
	"github.com/and161185/clipy/internal/repository"
	filestore "github.com/and161185/clipy/internal/repository/file"
	"github.com/and161185/clipy/internal/repository/postgres"
	"github.com/and161185/clipy/internal/seed"
	httpserver "github.com/and161185/clipy/internal/server/http"
	"github.com/and161185/clipy/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, prepares the chosen storage backend, seeds
// fixed data and runs the HTTP server until a stop signal.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.HTTPAddr),
		zap.String("driver", cfg.StorageDriver),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		itemRepo repository.ItemRepository
		userRepo repository.UserRepository
		catRepo  repository.CategoryRepository
	)
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		if err := migrate.Up(ctx, cfg.PostgresDSN); err != nil {
			logger.Fatal("migrate up", zap.Error(err))
		}
		db, err := postgres.New(ctx, cfg.PostgresDSN)
		if err != nil {
			logger.Fatal("postgres.New", zap.Error(err))
		}
		defer db.Close()
		itemRepo = postgres.NewItemRepo(db)
		userRepo = postgres.NewUserRepo(db)
		catRepo = postgres.NewCategoryRepo(db)
	case config.DriverFile:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			logger.Fatal("data dir", zap.Error(err))
		}
		itemRepo = filestore.NewItemStore(cfg.DataDir)
		userRepo = filestore.NewUserStore(cfg.DataDir)
		catRepo = filestore.NewCategoryStore(cfg.DataDir)
	}

	if err := seed.Run(ctx, userRepo, catRepo); err != nil {
		logger.Fatal("seed", zap.Error(err))
	}

	uploads, err := assets.New(cfg.UploadsDir, logger)
	if err != nil {
		logger.Fatal("assets.New", zap.Error(err))
	}

	lim := limiter.NewMemory(15*time.Minute, 5, 15*time.Minute)

	// Services
	authSvc := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), time.Duration(cfg.JWTExpireMin)*time.Minute, lim)
	itemSvc := service.NewItemService(itemRepo, uploads)

	app := httpserver.New(itemSvc, authSvc, catRepo, uploads, logger)
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: app.Router()}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			_ = srv.Close()
		}
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
