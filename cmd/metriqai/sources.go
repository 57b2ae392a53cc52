package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/ssenthilnathan3/metriqai/internal/engine"
	"github.com/ssenthilnathan3/metriqai/internal/ingest"
	"github.com/ssenthilnathan3/metriqai/internal/models"
	"github.com/ssenthilnathan3/metriqai/internal/projectconfig"
	"github.com/ssenthilnathan3/metriqai/internal/respcache"
)

// newFetcher assembles the ingestion pipeline from project configuration.
// The hub source is always present; the SOTA source can be disabled.
func newFetcher(cfg *projectconfig.Config, logger *slog.Logger) *ingest.Fetcher {
	synth := ingest.NewSyntheticGenerator(time.Now().UnixNano())

	var hubOpts []ingest.HubOption
	if cfg.Sources.HubBaseURL != "" {
		hubOpts = append(hubOpts, ingest.WithHubBaseURL(cfg.Sources.HubBaseURL))
	}
	hubOpts = append(hubOpts, ingest.WithHubRateLimit(
		rate.Limit(cfg.Sources.HubRatePerSec), cfg.Sources.HubRateBurst))

	sources := []ingest.Source{
		ingest.NewHubClient(cfg.Sources.MaxModelsPerTask, synth, logger, hubOpts...),
	}

	if !cfg.Sources.DisableSOTA {
		var sotaOpts []ingest.SOTAOption
		if cfg.Sources.SOTABaseURL != "" {
			sotaOpts = append(sotaOpts, ingest.WithSOTABaseURL(cfg.Sources.SOTABaseURL))
		}
		sources = append(sources, ingest.NewSOTAClient(logger, sotaOpts...))
	}

	return ingest.NewFetcher(logger, sources...)
}

// newRefresher binds ingestion and the aggregation engine into the
// function the response cache calls on every refresh.
func newRefresher(cfg *projectconfig.Config, logger *slog.Logger) respcache.Refresher {
	fetcher := newFetcher(cfg, logger)
	eng := engine.New()

	return func(ctx context.Context) (*models.BenchmarkResponse, error) {
		entries, err := fetcher.FetchAll(ctx)
		if err != nil {
			return nil, err
		}
		return eng.Compute(ctx, entries, time.Now().UTC())
	}
}

// loadConfig reads the project config named by the persistent --config flag.
func loadConfig(cmd *cobra.Command) (*projectconfig.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return projectconfig.Load(path)
}
