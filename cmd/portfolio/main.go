package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/MikeSquared-Agency/Portfolio/internal/api"
	"github.com/MikeSquared-Agency/Portfolio/internal/broker"
	"github.com/MikeSquared-Agency/Portfolio/internal/config"
	"github.com/MikeSquared-Agency/Portfolio/internal/hermes"
	"github.com/MikeSquared-Agency/Portfolio/internal/logging"
	"github.com/MikeSquared-Agency/Portfolio/internal/metrics"
	"github.com/MikeSquared-Agency/Portfolio/internal/portfolio"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to config file")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, level, err := logging.New(cfg.Logging, os.Stdout)
	slog.SetDefault(logger)
	if err != nil {
		logger.Warn("unknown log level, using info", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	recorder := metrics.NewRecorder(prometheus.DefaultRegisterer)
	svc := portfolio.NewService(cfg.Optimizer, hermesClient, recorder, logger)

	// Broker
	b := broker.New(svc, hermesClient, cfg, logger)
	if err := b.SetupSubscriptions(); err != nil {
		logger.Error("failed to register optimize responder", "error", err)
	}
	b.Start(ctx)
	defer b.Stop()
	logger.Info("broker started", "stats_interval", cfg.StatsInterval())

	// Live limits and log level
	if *configPath != "" {
		go func() {
			err := config.Watch(ctx, *configPath, logger, func(next *config.Config) {
				svc.Reconfigure(next.Optimizer)
				if err := logging.SetLevel(level, next.Logging.Level); err != nil {
					logger.Warn("ignoring log level", "error", err)
				}
			})
			if err != nil {
				logger.Error("config watcher stopped", "error", err)
			}
		}()
	}

	// API server
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewRouter(svc, cfg.Server, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           api.NewMetricsRouter(prometheus.DefaultGatherer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}
