package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	censusadapter "github.com/couchcryptid/boom-loudness-etl/internal/adapter/census"
	httpadapter "github.com/couchcryptid/boom-loudness-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/boom-loudness-etl/internal/adapter/kafka"
	"github.com/couchcryptid/boom-loudness-etl/internal/catalog"
	"github.com/couchcryptid/boom-loudness-etl/internal/config"
	"github.com/couchcryptid/boom-loudness-etl/internal/domain"
	"github.com/couchcryptid/boom-loudness-etl/internal/loudness"
	"github.com/couchcryptid/boom-loudness-etl/internal/observability"
	"github.com/couchcryptid/boom-loudness-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	cat, err := catalog.Load()
	if err != nil {
		logger.Error("failed to load product catalog", "error", err)
		os.Exit(1)
	}

	// Initialize population source (feature-flagged via CENSUS_ENABLED / CENSUS_API_KEY).
	var population domain.PopulationSource
	if cfg.CensusEnabled {
		client := censusadapter.NewClient(cfg.CensusAPIKey, cfg.CensusTimeout, metrics, logger)
		population = censusadapter.NewCachedSource(client, cfg.CensusCacheSize, metrics)
		metrics.CensusEnabled.Set(1)
		logger.Info("census population enrichment enabled", "cache_size", cfg.CensusCacheSize, "timeout", cfg.CensusTimeout)
	} else {
		logger.Info("census population enrichment disabled")
	}

	opts := loudness.Options{
		PadFront:  cfg.LoudnessPadFront,
		PadRear:   cfg.LoudnessPadRear,
		WindowLen: cfg.LoudnessWindowLen,
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(opts, population, logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, cat, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ETL pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
