package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/lagunalabs/sucesos/internal/adapter/http"
	"github.com/lagunalabs/sucesos/internal/adapter/mapbox"
	"github.com/lagunalabs/sucesos/internal/config"
	"github.com/lagunalabs/sucesos/internal/domain"
	"github.com/lagunalabs/sucesos/internal/observability"
	"github.com/lagunalabs/sucesos/internal/recorder"
	"github.com/lagunalabs/sucesos/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	db, err := store.Open(cfg.DatabasePath, logger)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	repo := store.NewRepository(db)

	// Geocoding is feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxLocality, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		logger.Info("mapbox geocoding enabled",
			"locality", cfg.MapboxLocality,
			"cache_size", cfg.MapboxCacheSize,
			"timeout", cfg.MapboxTimeout,
		)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	rec := recorder.New(repo, geocoder, cfg.AllowWrite, logger, metrics)
	if !cfg.AllowWrite {
		logger.Info("registry running in read-only mode")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, repo, rec, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := store.Close(db); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("shutdown complete")
}
