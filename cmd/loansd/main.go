package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/application/usecase"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/port"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/service"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/infrastructure/adapter"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/infrastructure/config"
	infrakafka "github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/infrastructure/kafka"
	pgRepo "github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/infrastructure/persistence/postgres"
	appmw "github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/presentation/middleware"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/presentation/rest"
	pkgkafka "github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/pkg/kafka"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/pkg/observability"
	pkgpostgres "github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/pkg/postgres"
)

const idempotencyTTL = 24 * time.Hour

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	cfg.Validate()
	policy := config.LoadPolicy()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})

	logger.Info("starting underwriting-engine",
		"http_port", cfg.HTTPPort,
		"metrics_port", cfg.MetricsPort,
	)

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	dbCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Run database migrations.
	if migErr := pkgpostgres.RunMigrations(dbCfg.DSN(), cfg.MigrationsDir); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	appRepo := pgRepo.NewApplicationRepo(pool)
	docRepo := pgRepo.NewDocumentRepo(pool)
	actionLog := pgRepo.NewActionLogRepo(pool)
	analytics := pgRepo.NewAnalyticsRepo(pool)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()
	publisher := infrakafka.NewEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)

	// Without a remote model the estimator falls back to its local
	// heuristic; the stub predictor is opt-in for dev environments.
	var predictor port.CreditScorePredictor
	switch {
	case cfg.Predictor.BaseURL != "":
		predictor = adapter.NewScorePredictorClient(adapter.PredictorConfig{
			BaseURL: cfg.Predictor.BaseURL,
			Timeout: cfg.Predictor.Timeout,
		})
		logger.Info("remote score predictor enabled", "base_url", cfg.Predictor.BaseURL)
	case cfg.Predictor.UseStub:
		predictor = adapter.NewStubPredictor()
		logger.Info("stub score predictor enabled")
	default:
		logger.Info("remote score predictor disabled, using local fallback")
	}

	// Wire domain services.
	estimator := service.NewScoreEstimator(predictor, logger)
	analyzer := service.NewAnalyzer(policy)
	assessor := service.NewAssessor(estimator, analyzer, policy)
	chain := service.NewRuleChain(policy)

	// Wire use cases.
	submitUC := usecase.NewSubmitApplicationUseCase(appRepo, publisher, logger)
	assessUC := usecase.NewAssessEligibilityUseCase(appRepo, assessor, publisher, actionLog, logger)
	decideUC := usecase.NewMakeDecisionUseCase(appRepo, docRepo, assessor, chain, publisher, actionLog, policy, logger)
	getUC := usecase.NewGetApplicationUseCase(appRepo, docRepo)
	offerUC := usecase.NewGetOfferLetterUseCase(appRepo)
	uploadUC := usecase.NewUploadDocumentUseCase(appRepo, docRepo)
	verifyUC := usecase.NewVerifyDocumentUseCase(docRepo, publisher, actionLog, logger)
	summaryUC := usecase.NewPortfolioSummaryUseCase(analytics)

	// Metrics registry and instruments.
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	// HTTP server.
	e := echo.New()
	e.HideBanner = true
	e.Validator = rest.NewValidator()
	e.Use(echomw.Recover(), appmw.Metrics(metrics))

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	e.Use(appmw.Idempotency(rdb, idempotencyTTL, logger))

	rest.NewApplicationHandler(submitUC, assessUC, decideUC, getUC, offerUC, metrics, logger).RegisterRoutes(e)
	rest.NewDocumentHandler(uploadUC, verifyUC, metrics, logger).RegisterRoutes(e)
	rest.NewAdminHandler(summaryUC, logger).RegisterRoutes(e)
	rest.NewHealthHandler(cfg.ServiceName, pool).RegisterRoutes(e)

	// Metrics server on its own port.
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", observability.MetricsHandler(registry))
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr(),
		Handler:           metricsMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := e.Start(cfg.HTTPAddr()); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("metrics server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", "error", err)
	}

	logger.Info("underwriting-engine stopped")
}
