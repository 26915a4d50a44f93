package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/horsefeed/internal/config"
	"github.com/mamadbah2/horsefeed/internal/repository"
	"github.com/mamadbah2/horsefeed/internal/scheduler"
	"github.com/mamadbah2/horsefeed/internal/server/handlers"
	"github.com/mamadbah2/horsefeed/internal/server/router"
	catalogsvc "github.com/mamadbah2/horsefeed/internal/service/catalog"
	nutritionsvc "github.com/mamadbah2/horsefeed/internal/service/nutrition"
	sessionsvc "github.com/mamadbah2/horsefeed/internal/service/session"
	"github.com/mamadbah2/horsefeed/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	sources, err := repository.Open(context.Background(), cfg, logger.Named(baseLogger, "repo"))
	if err != nil {
		baseLogger.Fatal("failed to open reference sources", zap.Error(err))
	}
	defer func() {
		if err := sources.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close reference sources", zap.Error(err))
		}
	}()

	cache := catalogsvc.NewCache(sources.Requirements, sources.Feeds, sources.FeedOptions, logger.Named(baseLogger, "svc.catalog"))

	// Reference data problems are fatal: nothing can be computed without them.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 2*time.Minute)
	if _, err := cache.Get(loadCtx); err != nil {
		cancelLoad()
		baseLogger.Fatal("failed to load reference data", zap.Error(err))
	}
	cancelLoad()

	nutritionSvc := nutritionsvc.NewService(cache, logger.Named(baseLogger, "svc.nutrition"))
	sessions := sessionsvc.NewManager(cfg.Auth.AccessPassword, cfg.Session.IdleTTL)

	sessionHandler := handlers.NewSessionHandler(sessions, logger.Named(baseLogger, "handlers.session"))
	nutritionHandler := handlers.NewNutritionHandler(nutritionSvc, cache, sessions, logger.Named(baseLogger, "handlers.nutrition"))
	engine := router.New(sessionHandler, nutritionHandler, logger.Named(baseLogger, "router"))

	sched := scheduler.NewScheduler(logger.Named(baseLogger, "scheduler"))
	if cfg.Catalog.RefreshCron != "" {
		if err := sched.RefreshCatalog(cfg.Catalog.RefreshCron, cache); err != nil {
			baseLogger.Fatal("failed to schedule catalog refresh", zap.Error(err))
		}
	} else {
		baseLogger.Info("catalog refresh schedule not configured")
	}
	if cfg.Session.IdleTTL > 0 {
		if err := sched.SweepSessions(cfg.Session.SweepCron, sessions); err != nil {
			baseLogger.Fatal("failed to schedule session sweep", zap.Error(err))
		}
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
