package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cognitiondigest/digest-backend/internal/delivery"
	"github.com/cognitiondigest/digest-backend/internal/queue"
	"github.com/cognitiondigest/digest-backend/internal/reports"
	"github.com/cognitiondigest/digest-backend/internal/worker"
	"github.com/cognitiondigest/digest-backend/pkg/config"
	"github.com/cognitiondigest/digest-backend/pkg/db"
	"github.com/cognitiondigest/digest-backend/pkg/logger"
	"github.com/cognitiondigest/digest-backend/pkg/mailer"
	"github.com/cognitiondigest/digest-backend/pkg/metrics"
	"github.com/cognitiondigest/digest-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	queueClient, err := queue.NewClient(cfg.Redis, cfg.Queue)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap task queue", err)
		os.Exit(1)
	}
	defer func() {
		if err := queueClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing task queue", err)
		}
	}()

	dispatcher, err := delivery.NewDispatcher(queueClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create delivery dispatcher", err)
		os.Exit(1)
	}

	repo := reports.NewRepository(dbClient.DB())
	reportService, err := reports.NewService(repo, reports.NewStaticSummarizer(), queueClient, dispatcher, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create report service", err)
		os.Exit(1)
	}

	mail := mailer.NewSendGridMailer(cfg.Sendgrid, logg)
	emailService, err := delivery.NewEmailService(repo, mail, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create email delivery service", err)
		os.Exit(1)
	}

	taskMetrics := metrics.NewTaskMetrics(prometheus.DefaultRegisterer)
	processor, err := worker.NewProcessor(reportService, emailService, taskMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create task processor", err)
		os.Exit(1)
	}

	connOpt, err := queue.ConnOpt(cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to resolve redis connection", err)
		os.Exit(1)
	}
	server := asynq.NewServer(connOpt, asynq.Config{
		Concurrency: cfg.Queue.Concurrency,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"concurrency": cfg.Queue.Concurrency,
	})

	metricsServer := &http.Server{
		Addr:    ":" + cfg.App.MetricsPort,
		Handler: promhttp.Handler(),
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "metrics server stopped unexpectedly", err)
		}
	}()

	go func() {
		<-ctx.Done()
		server.Shutdown()
		if err := metricsServer.Close(); err != nil {
			logg.Error(context.Background(), "error closing metrics server", err)
		}
	}()

	logg.Info(ctx, "starting worker")
	if err := server.Run(processor.Handler()); err != nil {
		logg.Error(ctx, "worker stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "worker shutting down gracefully")
}
