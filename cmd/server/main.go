package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/quake-severity-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/quake-severity-service/internal/adapter/kafka"
	"github.com/couchcryptid/quake-severity-service/internal/adapter/mapbox"
	"github.com/couchcryptid/quake-severity-service/internal/artifact"
	"github.com/couchcryptid/quake-severity-service/internal/config"
	"github.com/couchcryptid/quake-severity-service/internal/domain"
	"github.com/couchcryptid/quake-severity-service/internal/inference"
	"github.com/couchcryptid/quake-severity-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Artifacts are read once; the service cannot score anything without them.
	bundle, err := artifact.Load(cfg.ModelPath, cfg.ColumnsPath)
	if err != nil {
		logger.Error("failed to load model artifacts", "error", err)
		os.Exit(1)
	}
	if err := bundle.CheckCoherence(); err != nil {
		logger.Warn("model and feature columns disagree, predictions will fail", "error", err)
	}
	logger.Info("model artifacts loaded",
		"model_path", cfg.ModelPath,
		"columns_path", cfg.ColumnsPath,
		"columns", bundle.Columns.Len(),
		"classes", bundle.Classifier.Classes(),
	)

	// Reverse geocoding is display-only (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	var publisher inference.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("assessment publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	svc := inference.NewService(bundle, geocoder, publisher, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
