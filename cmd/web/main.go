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
	"team-roster-service/internal/rosterclient"
	"team-roster-service/internal/telemetry"
	"team-roster-service/internal/web"
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
		ServiceName: "roster-web",
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

	apiClient := rosterclient.New(cfg.APIBaseURL, &http.Client{
		Timeout:   cfg.APITimeout,
		Transport: tel.Transport(http.DefaultTransport),
	})

	pageHandler := web.NewHandler(apiClient, cfg.TeamName, logger)

	srv := &http.Server{
		Addr:         cfg.WebAddr(),
		Handler:      tel.Handler(pageHandler.RegisterRoutes(), "roster-web"),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.APITimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("web view starting", "addr", cfg.WebAddr(), "team", cfg.TeamName, "api", cfg.APIBaseURL)
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

	logger.Info("web view shut down gracefully")
	return nil
}
