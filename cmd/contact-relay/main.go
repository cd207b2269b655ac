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

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/config"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/mailer"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/middleware"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/metrics"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/relay"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	appLogger := logger.NewLogger()
	defer func() { _ = appLogger.Sync() }()

	cfg, err := config.LoadRelayConfig()
	if err != nil {
		appLogger.Fatal("Failed to load relay configuration", zap.Error(err))
	}

	var m mailer.Mailer
	switch {
	case cfg.ResendAPIKey != "":
		m = mailer.NewResendMailer(cfg.ResendAPIKey, appLogger)
		appLogger.Info("Contact relay delivering through Resend")
	case cfg.SMTPConfigured():
		smtpMailer, err := mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:        cfg.SMTP.Host,
			Port:        cfg.SMTP.Port,
			Username:    cfg.SMTP.Username,
			Password:    cfg.SMTP.Password,
			SenderEmail: cfg.SMTP.SenderEmail,
			Encryption:  cfg.SMTP.Encryption,
			ServerName:  cfg.SMTP.ServerName,
		}, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize SMTP mailer", zap.Error(err))
		}
		m = smtpMailer
		appLogger.Info("Contact relay delivering through SMTP", zap.String("host", cfg.SMTP.Host))
	default:
		appLogger.Warn("No mail provider configured (RESEND_API_KEY or SMTP_HOST); submissions are validated and acknowledged only")
	}

	relayHandler, err := relay.NewHandler(m, cfg.FromEmail, cfg.ContactEmail, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize relay handler", zap.Error(err))
	}

	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)
	h := relayHandler.Routes()
	h = middleware.Metrics(metricsManager)(h)
	h = middleware.RequestLogger(appLogger)(h)
	h = middleware.RequestID(h)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Starting contact relay", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Relay server error", zap.Error(err))
		}
	}()

	if cfg.MetricsPort != "" {
		go func() {
			if err := metrics.StartMetricsServer(cfg.MetricsPort, appLogger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error("Prometheus metrics server failed", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down contact relay...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Relay graceful shutdown failed", zap.Error(err))
	}
}
