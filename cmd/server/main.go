package main

import (
	"context"
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/salesboard/api/handler"
	"github.com/fastygo/salesboard/internal/config"
	"github.com/fastygo/salesboard/internal/infrastructure/monitor"
	"github.com/fastygo/salesboard/internal/middleware"
	"github.com/fastygo/salesboard/internal/router"
	"github.com/fastygo/salesboard/internal/services"
	"github.com/fastygo/salesboard/internal/services/lifecycle"
	"github.com/fastygo/salesboard/pkg/httpcontext"
	"github.com/fastygo/salesboard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:       cfg.Logger.Level,
		Encoding:    cfg.Logger.Encoding,
		AppName:     cfg.AppName,
		Environment: cfg.Environment,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	board := services.NewPipeline(services.PipelineConfig{
		SeedDemo:     cfg.Pipeline.SeedDemo,
		DefaultStage: cfg.Pipeline.DefaultStage,
		Events:       metrics,
	}, zapLogger)

	mon := monitor.New(board.Controller, registry, cfg.Pipeline.StatsInterval, zapLogger.Named("monitor"))
	mon.Start(appCtx)
	manager.Register("monitor", mon.Stop)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Stage:  apiHandler.NewStageHandler(board.Controller, ctxAdapter, zapLogger),
		Lead:   apiHandler.NewLeadHandler(board.Controller, board.Search, ctxAdapter, zapLogger),
		Drag:   apiHandler.NewDragHandler(board.Controller, ctxAdapter, zapLogger),
		Board:  apiHandler.NewBoardHandler(board.Controller, ctxAdapter, zapLogger),
		Export: apiHandler.NewExportHandler(board.Exporter, metrics, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	opts := router.Options{Pprof: cfg.HTTP.EnablePprof}
	if cfg.HTTP.EnableMetrics {
		opts.Metrics = registry
	}
	if !cfg.AuthEnabled() {
		zapLogger.Warn("JWT_SECRET not set, mutating routes are unauthenticated")
	}
	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, cfg.JWT.Issuer, zapLogger)
	r := router.New(handlers, authMiddleware, opts)

	server := &fasthttp.Server{
		Handler:      router.Chain(r, metrics.Handler),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Concurrency:  cfg.HTTP.MaxConn,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
