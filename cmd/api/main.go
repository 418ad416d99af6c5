package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/mashkanta-plus/leads-api/internal/abuse"
	"github.com/mashkanta-plus/leads-api/internal/api/router"
	appconfig "github.com/mashkanta-plus/leads-api/internal/config"
	"github.com/mashkanta-plus/leads-api/internal/leads"
	"github.com/mashkanta-plus/leads-api/internal/notify"
	"github.com/mashkanta-plus/leads-api/internal/observability/metrics"
	"github.com/mashkanta-plus/leads-api/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting leads API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	repo := buildRepository(ctx, cfg, logger)
	limiter := buildLimiter(ctx, cfg, logger)
	originGuard := abuse.NewOriginGuard(cfg.AllowedOrigins, cfg.IsProduction())

	intakeMetrics := metrics.NewIntakeMetrics(nil)

	sender := buildEmailSender(ctx, cfg, logger)
	notifyService := notify.NewService(sender, cfg.OwnerEmail, cfg.OwnerName, logger)
	dispatcher := notify.NewDispatcher(notifyService, cfg.NotifyQueueSize, intakeMetrics, logger)

	leadsHandler := leads.NewHandler(repo, originGuard, limiter, dispatcher, intakeMetrics, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		LeadsHandler:       leadsHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Drain queued owner alerts before exiting.
	dispatcher.Close()

	logger.Info("server stopped")
}

// buildRepository selects the persistence sink: explicit LEADS_SINK wins,
// otherwise Postgres when DATABASE_URL is set, then Sheets, then memory.
func buildRepository(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) leads.Repository {
	sink := cfg.LeadsSink
	if sink == "" {
		switch {
		case cfg.DatabaseURL != "":
			sink = "postgres"
		case cfg.SheetsSpreadsheetID != "":
			sink = "sheets"
		default:
			sink = "memory"
		}
	}

	switch sink {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create pgx pool", "error", err)
			os.Exit(1)
		}
		logger.Info("leads sink: postgres")
		return leads.NewPostgresRepository(pool)
	case "sheets":
		logger.Info("leads sink: google sheets", "spreadsheet_id", cfg.SheetsSpreadsheetID)
		return leads.NewSheetsRepository(leads.SheetsConfig{
			SpreadsheetID:   cfg.SheetsSpreadsheetID,
			WriteRange:      cfg.SheetsRange,
			CredentialsJSON: cfg.SheetsCredentialsJSON,
		})
	default:
		logger.Warn("leads sink: in-memory, leads will not survive a restart")
		return leads.NewInMemoryRepository()
	}
}

// buildLimiter prefers the shared Redis ledger when configured; the
// in-process window is correct for a single instance only.
func buildLimiter(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) abuse.Limiter {
	if cfg.RedisAddr == "" {
		return abuse.NewMemoryLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	}

	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available, falling back to in-memory rate limiting", "error", err)
		return abuse.NewMemoryLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	}
	logger.Info("rate limiter: redis", "addr", cfg.RedisAddr)
	return abuse.NewRedisLimiter(client, cfg.RateLimitMax, cfg.RateLimitWindow, logger)
}

func buildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	provider := cfg.EmailProvider
	if provider == "auto" {
		switch {
		case cfg.SendGridAPIKey != "":
			provider = "sendgrid"
		case cfg.SESFromEmail != "":
			provider = "ses"
		default:
			provider = "stub"
		}
	}

	switch provider {
	case "sendgrid":
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sender != nil {
			logger.Info("email provider: sendgrid")
			return sender
		}
		logger.Warn("sendgrid selected but not configured, using stub sender")
	case "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			logger.Warn("failed to load AWS config, using stub sender", "error", err)
			break
		}
		logger.Info("email provider: ses", "region", cfg.AWSRegion)
		return notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger)
	}
	return notify.NewStubEmailSender(logger)
}
