package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sammyTGR/tgr-sub005/config"
	"github.com/sammyTGR/tgr-sub005/internal/api/handler"
	"github.com/sammyTGR/tgr-sub005/internal/api/router"
	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/jobs"
	"github.com/sammyTGR/tgr-sub005/internal/realtime"
	"github.com/sammyTGR/tgr-sub005/internal/repository"
	"github.com/sammyTGR/tgr-sub005/internal/service"
	"github.com/sammyTGR/tgr-sub005/pkg/database"
	"github.com/sammyTGR/tgr-sub005/pkg/jwt"
	applogger "github.com/sammyTGR/tgr-sub005/pkg/logger"
	"github.com/sammyTGR/tgr-sub005/pkg/redis"
)

func main() {
	// 1. config
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database + migrations
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("run migrations failed", zap.Error(err))
	}

	// 4. Redis is optional: without it tokens cannot be revoked, caches and
	// rate limits are per instance, and realtime events stay local.
	var (
		deps     service.Deps
		routeOpt router.Options
		broker   realtime.Broker
	)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, running degraded", zap.Error(err))
		rdb = nil
	} else {
		deps.Tokens = rdb
		deps.Cache = rdb
		routeOpt.Tokens = rdb
		routeOpt.Rate = rdb
		broker = rdb
	}

	// 5. JWT + request validation
	jwtMgr := jwt.NewManager(&cfg.Auth)
	if err := dto.RegisterValidators(); err != nil {
		logger.Fatal("register validators failed", zap.Error(err))
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 6. realtime hub
	hub := realtime.NewHub(broker, logger)
	deps.Publisher = hub
	go func() {
		if err := hub.Run(ctx); err != nil {
			logger.Error("realtime hub stopped", zap.Error(err))
		}
	}()

	// 7. Repository -> Service -> Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, deps, logger)
	h := handler.NewHandler(cfg, svc, hub, jwtMgr)

	// 8. background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler, err = jobs.NewScheduler(&cfg.Jobs, svc.BreakRoom, svc.Schedule, logger)
		if err != nil {
			logger.Fatal("init job scheduler failed", zap.Error(err))
		}
		scheduler.Start()
	}

	// 9. router + HTTP server
	gin.SetMode(gin.ReleaseMode)
	engine := router.Setup(cfg, h, jwtMgr, routeOpt, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 10. graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	stop()

	if err := sqlDB.Close(); err != nil {
		logger.Warn("close database failed", zap.Error(err))
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
