package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/cognitiondigest/digest-backend/api/routes"
	"github.com/cognitiondigest/digest-backend/internal/delivery"
	"github.com/cognitiondigest/digest-backend/internal/queue"
	"github.com/cognitiondigest/digest-backend/internal/reports"
	"github.com/cognitiondigest/digest-backend/pkg/config"
	"github.com/cognitiondigest/digest-backend/pkg/db"
	"github.com/cognitiondigest/digest-backend/pkg/logger"
	"github.com/cognitiondigest/digest-backend/pkg/mailer"
	"github.com/cognitiondigest/digest-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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
	legacyStore := reports.NewLegacyStore()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, reportService, legacyStore, mail),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
