package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nttm-tools/sla-server/internal/config"
	"github.com/nttm-tools/sla-server/internal/httpapi"
	"github.com/nttm-tools/sla-server/internal/service"
	"github.com/nttm-tools/sla-server/pkg/cache"
	"github.com/nttm-tools/sla-server/pkg/httpserver"
)

type App struct {
	logger *zap.Logger
	cache  *cache.Cache
	server *httpserver.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	cacheClient, err := cache.New(ctx,
		cache.WithAddress(cfg.RedisAddr),
	)
	if err != nil {
		return nil, fmt.Errorf("cache init failed: %w", err)
	}
	logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))

	reportService := service.NewReportService(cfg.TargetRatio, logger)
	logger.Info("Report service initialized", zap.Float64("target_ratio", cfg.TargetRatio))

	handlers := httpapi.NewHandlers(reportService, cacheClient, logger, cfg.CacheTTL, cfg.MaxUploadBytes)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), httpserver.RequestLogger(logger))
	handlers.Register(engine)

	server, err := httpserver.New(
		httpserver.WithPort(cfg.HTTPPort),
		httpserver.WithLogger(logger),
		httpserver.WithHandler(engine),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP server: %w", err)
	}

	return &App{
		logger: logger,
		cache:  cacheClient,
		server: server,
	}, nil
}

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run() error {
	a.logger.Info("application starting")

	a.server.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info("application shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("HTTP server shutdown error", zap.Error(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("cache shutdown error", zap.Error(err))
	}

	a.logger.Info("graceful shutdown completed")

	_ = a.logger.Sync()
	return nil
}
