package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/avelikov/go-bookmark-sync/internal/adapter"
	"github.com/avelikov/go-bookmark-sync/internal/bridge"
	"github.com/avelikov/go-bookmark-sync/internal/browser"
	"github.com/avelikov/go-bookmark-sync/internal/config"
	"github.com/avelikov/go-bookmark-sync/internal/logger"
	"github.com/avelikov/go-bookmark-sync/internal/service"
	"github.com/avelikov/go-bookmark-sync/internal/store"
	"github.com/avelikov/go-bookmark-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewDaemonLogger("bookmark-syncd")
	cfg, err := config.GetSyncdConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	hub := bridge.NewHubTransport(cfg.Bridge.HubAddress, log)
	if err = hub.Start(); err != nil {
		log.Fatal().Err(err).Msg("error starting bridge hub")
	}

	br := bridge.New(hub, bridge.Config{
		Source:         models.SourceSyncd,
		RequestTimeout: cfg.Bridge.RequestTimeout,
		WarmupDelay:    cfg.Bridge.WarmupDelay,
	}, log)

	fetcher := browser.NewFetcher(br, cfg.Bridge.RequestTimeout, log)

	persistence, err := adapter.NewHTTPPersistence(adapter.HTTPClientConfig{
		BaseURL: cfg.Adapter.BaseURL,
		Token:   cfg.Adapter.Token,
		Timeout: cfg.Adapter.RequestTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("error creating bookmark store client")
	}

	fingerprints, err := store.NewSQLiteFingerprintStore(cfg.Storage.FingerprintsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening fingerprint store")
	}

	orchestrator := service.NewSyncOrchestrator(fetcher, persistence, fingerprints,
		service.OrchestratorConfig{
			ProbeTimeout: cfg.Bridge.ProbeTimeout,
			SyncTimeout:  cfg.Workers.SyncTimeout,
		}, log)

	job := service.NewSyncJob(orchestrator, br.Events(),
		service.SyncJobConfig{
			Interval: cfg.Workers.SyncInterval,
			Debounce: cfg.Workers.EventDebounce,
		}, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	job.Start(ctx)
	log.Info().Str("hub_address", cfg.Bridge.HubAddress).Msg("sync daemon started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	job.Stop()

	if err = br.Close(); err != nil {
		log.Error().Err(err).Msg("error closing bridge")
	}
	if err = fingerprints.Close(); err != nil {
		log.Error().Err(err).Msg("error closing fingerprint store")
	}

	log.Info().Msg("sync daemon stopped")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
