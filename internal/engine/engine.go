// Package engine computes the three analytical views over a benchmark
// entry sequence: summary statistics, per-task metric correlations, and
// ranked leaderboards. The engine is stateless and synchronous: each call
// reads an immutable input slice and returns fresh outputs, so it is safe
// to call repeatedly with different inputs.
package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ssenthilnathan3/metriqai/internal/models"
)

// Engine derives analytical views from benchmark entries. The zero value
// is usable.
type Engine struct{}

// New returns an Engine.
func New() *Engine {
	return &Engine{}
}

// Compute evaluates the three analytical components over the same
// read-only entry slice. The components are independent, so they run
// concurrently; sequential evaluation would produce identical results.
// now fixes the computation instant for trend bucketing and timestamps.
func (e *Engine) Compute(ctx context.Context, entries []models.BenchmarkEntry, now time.Time) (*models.BenchmarkResponse, error) {
	resp := &models.BenchmarkResponse{Data: entries}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp.Summary = ComputeSummary(entries, now)
		return nil
	})
	g.Go(func() error {
		resp.Correlations = ComputeCorrelations(entries)
		return nil
	})
	g.Go(func() error {
		resp.Leaderboards = BuildLeaderboards(entries, now)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}
