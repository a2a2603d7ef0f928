package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"team-roster-service/internal/config"
	"team-roster-service/internal/migrations"
	"team-roster-service/internal/repository/postgres"
	"team-roster-service/internal/service"
	"team-roster-service/internal/telemetry"
	httptransport "team-roster-service/internal/transport/http"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(logger); err != nil {
		logger.Error("application startup error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.NewProviders(ctx, telemetry.Config{
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
		ServiceName: "roster-api",
	})
	if err != nil {
		return err
	}
	tel.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown failed", "error", err)
		}
	}()
	logger.Info("telemetry initialized", "otlp_endpoint", cfg.OTLPEndpoint)

	logger.Info("connecting to database...")
	retrier := postgres.NewPostgresRetrier(cfg.DBConnectRetries, cfg.DBConnectDelay, postgres.NewPsqlConnection, logger)
	dbPool, err := postgres.NewPsqlConnectionWithRetrier(ctx, postgres.Config{
		DSN:      cfg.DatabaseDSN,
		MaxConns: cfg.DBMaxConns,
	}, retrier)
	if err != nil {
		return err
	}
	defer dbPool.Close()
	logger.Info("database connection established")

	logger.Info("running database migrations...")
	if err := migrations.Up(cfg.DatabaseDSN); err != nil {
		return err
	}
	logger.Info("database migrations complete")

	rosterRepo := postgres.NewRosterRepo(dbPool)
	rosterService := service.NewRosterService(rosterRepo)

	httpHandler := httptransport.NewHandler(rosterService, logger)

	router := httpHandler.RegisterRoutes()

	srv := &http.Server{
		Addr:         cfg.ServerAddr(),
		Handler:      tel.Handler(router, "roster-api"),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("server starting", "addr", cfg.ServerAddr())
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server shut down gracefully")
	return nil
}
