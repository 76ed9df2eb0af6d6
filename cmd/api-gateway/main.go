package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/college-predictor-api/api/swagger"
	"github.com/noah-isme/college-predictor-api/internal/bootstrap"
	"github.com/noah-isme/college-predictor-api/internal/handler"
	"github.com/noah-isme/college-predictor-api/internal/middleware"
	"github.com/noah-isme/college-predictor-api/internal/service"
	"github.com/noah-isme/college-predictor-api/pkg/config"
	"github.com/noah-isme/college-predictor-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/college-predictor-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/college-predictor-api/pkg/middleware/requestid"
	"github.com/noah-isme/college-predictor-api/pkg/storage"
)

// @title College Predictor API
// @version 1.0.0
// @description Rank and budget eligibility search over a merged college dataset
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	sources, closeSources, err := bootstrap.NewSources(ctx, cfg.Data, cfg.Database, logr)
	if err != nil {
		return err
	}
	defer closeSources()

	dataset := service.NewDatasetService(sources.Colleges, sources.Statuses, sources.Images, metrics, logr)
	if _, err := dataset.Load(ctx); err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	sessions, closeSessions, err := bootstrap.NewSessionStore(ctx, cfg.Session, cfg.Redis, logr)
	if err != nil {
		return err
	}
	defer closeSessions()

	exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		return err
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	validate := validator.New()
	search := service.NewSearchService(dataset, metrics, validate, service.SearchConfig{
		PageSize:       cfg.Search.PageSize,
		MaxPageSize:    cfg.Search.MaxPageSize,
		ImageURLPrefix: "/",
	}, logr)
	selections := service.NewSelectionService(sessions, dataset, validate, logr)
	exports := service.NewExportService(search, selections, exportStore, signer, metrics, validate, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Exports.SignedURLTTL,
	}, logr)

	metricsHandler := handler.NewMetricsHandler(metrics)
	datasetHandler := handler.NewDatasetHandler(dataset)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins, middleware.SessionHeader))
	if metrics != nil {
		r.Use(middleware.Metrics(metrics))
		r.GET("/metrics", metricsHandler.Prometheus)
	}

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", datasetHandler.Ready)
	r.Static("/images", sources.Images.Dir())

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Handlers{
		Colleges:   handler.NewCollegeHandler(search, selections),
		Selections: handler.NewSelectionHandler(selections),
		Exports:    handler.NewExportHandler(exports),
		Dataset:    datasetHandler,
	}.Register(r.Group(cfg.APIPrefix))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logr.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
