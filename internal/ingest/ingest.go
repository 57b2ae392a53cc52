// Package ingest retrieves raw model and evaluation records from external
// registries and materializes them into classified benchmark entries. The
// complete entry sequence is handed to the engine only after every source
// has finished; a failed source degrades to partial results rather than
// failing the batch.
package ingest

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ssenthilnathan3/metriqai/internal/models"
)

// Source produces benchmark entries from one upstream registry.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	// Fetch retrieves and classifies all entries from the source.
	Fetch(ctx context.Context) ([]models.BenchmarkEntry, error)
}

// Fetcher fans out over multiple sources and merges their entries.
type Fetcher struct {
	sources []Source
	logger  *slog.Logger
}

// NewFetcher creates a Fetcher over the given sources.
func NewFetcher(logger *slog.Logger, sources ...Source) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{sources: sources, logger: logger}
}

// FetchAll retrieves entries from every source concurrently, then
// deduplicates by model identifier with the first occurrence winning.
// Source order determines merge order, so the result is deterministic
// for a given set of source payloads. A source error is logged and its
// entries are dropped; the remaining sources still contribute.
func (f *Fetcher) FetchAll(ctx context.Context) ([]models.BenchmarkEntry, error) {
	results := make([][]models.BenchmarkEntry, len(f.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range f.sources {
		g.Go(func() error {
			entries, err := src.Fetch(gctx)
			if err != nil {
				f.logger.Error("source fetch failed", "source", src.Name(), "error", err)
				return nil
			}
			f.logger.Info("source fetched", "source", src.Name(), "entries", len(entries))
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var merged []models.BenchmarkEntry
	for _, entries := range results {
		for _, entry := range entries {
			id := entry.ModelInfo.ModelID
			if seen[id] {
				continue
			}
			seen[id] = true
			merged = append(merged, entry)
		}
	}

	f.logger.Info("ingestion complete", "entries", len(merged), "sources", len(f.sources))
	return merged, nil
}
