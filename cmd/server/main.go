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

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/adapter/http/handler"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/adapter/http/router"
	natsAdapter "github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/adapter/messaging/nats"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/adapter/relayclient"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/adapter/repository/cache"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/adapter/storage/s3"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/app"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/auth"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/config"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/metrics"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/tracer"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/usecase"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	appLogger := logger.NewLogger()
	defer func() { _ = appLogger.Sync() }()

	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	appLogger.Info("Application starting...",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("store_driver", cfg.StoreDriver),
		zap.String("transition_policy", string(cfg.Policy())))

	ctx := context.Background()

	tp := tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint, appLogger)
	defer func() {
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctxShutdown); err != nil {
			appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	stores, err := app.OpenStores(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open stores", zap.Error(err))
	}
	defer stores.Close(context.Background())

	imageStorage, err := s3.NewS3Storage(ctx, s3.Config{
		Endpoint:      cfg.S3Endpoint,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		Bucket:        cfg.S3Bucket,
		UseSSL:        cfg.S3UseSSL,
		PublicBaseURL: cfg.S3PublicBaseURL,
	}, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize image storage", zap.Error(err))
	}

	// Optional collaborators stay nil interfaces when not configured.
	var listingCache usecase.ListingCache
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		listingCache = cache.NewListingCache(redisClient, cfg.CacheTTL, appLogger)
	} else {
		appLogger.Info("Browse cache disabled (REDIS_ADDR not set).")
	}

	var events usecase.EventPublisher
	if cfg.NATSURL != "" {
		publisher, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
		if err != nil {
			appLogger.Fatal("Failed to initialize NATS publisher", zap.Error(err))
		}
		defer publisher.Close()
		events = publisher
	} else {
		appLogger.Info("Lifecycle events disabled (NATS_URL not set).")
	}

	var notifier usecase.ContactNotifier
	if cfg.RelayURL != "" {
		notifier = relayclient.NewClient(cfg.RelayURL, appLogger)
	} else {
		appLogger.Info("Email relay disabled (RELAY_URL not set).")
	}

	submission := usecase.NewSubmissionUsecase(stores.Listings, imageStorage, listingCache, events, appLogger)
	browse := usecase.NewBrowseUsecase(stores.Listings, listingCache, appLogger)
	moderation := usecase.NewModerationUsecase(stores.Listings, stores.Messages, imageStorage, listingCache, events, cfg.Policy(), appLogger)
	contact := usecase.NewContactUsecase(stores.Messages, notifier, events, appLogger)
	authenticator := auth.NewAuthenticator(cfg.AdminPasswordHash, cfg.JWTSecret, cfg.AdminSessionTTL)

	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)

	mux := router.New(router.Deps{
		Listings:       handler.NewListingHandler(submission, browse, metricsManager, appLogger),
		Admin:          handler.NewAdminHandler(moderation, metricsManager, appLogger),
		Contact:        handler.NewContactHandler(contact, metricsManager, appLogger),
		Auth:           handler.NewAuthHandler(authenticator, appLogger),
		Verifier:       authenticator,
		Metrics:        metricsManager,
		AllowedOrigins: cfg.AllowedOrigins(),
		Logger:         appLogger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	go func() {
		if err := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Prometheus metrics server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server graceful shutdown failed", zap.Error(err))
	}
	appLogger.Info("Application shutting down...")
}
