package main

import (
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssenthilnathan3/metriqai/internal/respcache"
	"github.com/ssenthilnathan3/metriqai/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var host string
	var port int
	var skipInitialLoad bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the benchmark aggregation HTTP API",
		Long: `Start the benchmark aggregation HTTP API.

On startup the server performs an initial ingestion and aggregation pass
to warm the response cache; a failed initial load is logged and the
server starts with an empty cache instead of exiting. Subsequent
requests refresh the cache when it is older than the configured TTL.

Endpoints:
  GET  /api/health        Liveness probe
  GET  /api/benchmarks    Full aggregated payload (?force_refresh=true)
  POST /api/refresh       Trigger a background refresh
  GET  /api/cache-status  Cache freshness and payload counts
  GET  /metrics           Prometheus metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if port != 0 {
				cfg.Server.Port = port
			}

			logger := slog.Default()
			cache := respcache.New(newRefresher(cfg, logger), logger,
				respcache.WithTTL(time.Duration(cfg.Cache.TTLMinutes)*time.Minute))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if !skipInitialLoad {
				// Errors already logged; an empty cache is acceptable.
				_ = cache.Init(ctx)
			}

			server, err := webserver.New(webserver.Config{
				Host:           cfg.Server.Host,
				Port:           cfg.Server.Port,
				AllowedOrigins: cfg.Server.AllowedOrigins,
				Cache:          cache,
				Logger:         logger,
			})
			if err != nil {
				return err
			}
			return server.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Bind address (overrides config)")
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides config)")
	cmd.Flags().BoolVar(&skipInitialLoad, "skip-initial-load", false,
		"Start with an empty cache instead of ingesting at startup")

	return cmd
}
