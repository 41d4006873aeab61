package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/wj-stack/NetFlow/internal/api"
	"github.com/wj-stack/NetFlow/internal/audit"
	"github.com/wj-stack/NetFlow/internal/config"
	"github.com/wj-stack/NetFlow/internal/metadata"
	"github.com/wj-stack/NetFlow/internal/store"
	"github.com/wj-stack/NetFlow/internal/strategy"
	"github.com/wj-stack/NetFlow/internal/telemetry"
	"github.com/wj-stack/NetFlow/internal/webhook"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("config")
	}

	telemetry.Init()

	st := store.NewMemoryStore()
	defer st.Close()

	dir := metadata.NewDirectory()
	if cfg.SeedMetadata {
		dir.Seed(metadata.DefaultEntries())
		logger.Info().Int("entries", len(dir.List())).Msg("metadata seeded")
	}
	if cfg.SeedExamples {
		ctx := context.Background()
		for _, doc := range strategy.ExampleDocuments() {
			if err := st.Upsert(ctx, doc); err != nil {
				logger.Fatal().Err(err).Msg("seed examples")
			}
		}
		logger.Info().Int("strategies", st.Len()).Msg("example strategies seeded")
	}
	telemetry.StoredStrategies.Set(float64(st.Len()))
	telemetry.MetadataEntries.Set(float64(len(dir.List())))

	srvAPI := api.NewServer(st, dir, cfg.AdminAPIKey, cfg.RateLimitPerIP, logger)
	srvAPI.SetAudit(audit.NewMemorySink(0))

	if cfg.WebhookURL != "" {
		dispatcher := webhook.NewDispatcher(cfg.WebhookURL, cfg.WebhookSecret, logger)
		dispatcher.Start()
		defer dispatcher.Close()
		srvAPI.SetWebhooks(dispatcher)
		logger.Info().Str("url", cfg.WebhookURL).Msg("engine notifications enabled")
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      srvAPI.Router(),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server")
		}
	}()

	metricsSrv := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: promhttp.Handler(),
	}
	go func() {
		logger.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listening")
		if err := metricsSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctxShut, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShut)
	_ = metricsSrv.Shutdown(ctxShut)
	logger.Info().Msg("stopped")
}
