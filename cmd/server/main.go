package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/app"
	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/scheduler"
	"github.com/mamadbah2/stockroom/internal/server/handlers"
	"github.com/mamadbah2/stockroom/internal/server/router"
	"github.com/mamadbah2/stockroom/pkg/clients/webhook"
	"github.com/mamadbah2/stockroom/pkg/logger"
)

func main() {
	envFile := flag.String("env-file", "", "path to a .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level, cfg.Log.Format))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inv, err := app.Open(ctx, cfg, baseLogger, app.WithMirror())
	if err != nil {
		baseLogger.Fatal("failed to open inventory", zap.Error(err))
	}
	defer func() {
		if err := inv.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close storage", zap.Error(err))
		}
	}()

	var notifier scheduler.Notifier
	if cfg.Notifier.Enabled() {
		client, err := webhook.NewClient(cfg.Notifier)
		if err != nil {
			baseLogger.Fatal("failed to init webhook client", zap.Error(err))
		}
		notifier = client
		baseLogger.Info("summary notifications enabled")
	} else {
		baseLogger.Warn("webhook url missing, summary notifications disabled")
	}

	sched, err := scheduler.NewScheduler(cfg.Schedule, inv.Store, inv.Mirror, inv.Reporting, notifier, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	inventoryHandler := handlers.NewInventoryHandler(inv.Store, inv.Editor, inv.Reporting, baseLogger.Named("handlers.inventory"))
	engine := router.New(inventoryHandler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

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
