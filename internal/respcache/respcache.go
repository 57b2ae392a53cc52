// Package respcache owns the single shared mutable resource in the
// system: the cached benchmark response and its timestamp. Refreshes are
// serialized so at most one aggregation computation is in flight, and a
// failed refresh leaves the previously cached payload intact.
package respcache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ssenthilnathan3/metriqai/internal/models"
)

// DefaultTTL is how long a cached response stays fresh.
const DefaultTTL = 60 * time.Minute

// ErrEmpty is returned when no payload is available, even after a
// refresh attempt.
var ErrEmpty = errors.New("benchmark data is not available")

// Refresher produces a fresh benchmark response (ingestion + engine).
type Refresher func(ctx context.Context) (*models.BenchmarkResponse, error)

// Status describes the cache for the cache-status endpoint.
type Status struct {
	Valid       bool       `json:"cache_valid"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
	TTLMinutes  int        `json:"ttl_minutes"`
	HasData     bool       `json:"has_data"`
	DataCount   int        `json:"data_count"`
}

// Cache holds one benchmark response with TTL bookkeeping.
type Cache struct {
	ttl     time.Duration
	refresh Refresher
	logger  *slog.Logger
	nowFn   func() time.Time

	// mu guards the payload and serializes refreshes.
	mu          sync.Mutex
	data        *models.BenchmarkResponse
	lastUpdated time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides the default freshness window.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithNow overrides the clock (used by tests).
func WithNow(fn func() time.Time) Option {
	return func(c *Cache) { c.nowFn = fn }
}

// New creates an empty cache backed by the given refresher.
func New(refresh Refresher, logger *slog.Logger, opts ...Option) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Cache{
		ttl:     DefaultTTL,
		refresh: refresh,
		logger:  logger,
		nowFn:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init performs the initial load. An initial failure is logged and
// reported but must not be fatal to the host: the cache simply starts
// empty.
func (c *Cache) Init(ctx context.Context) error {
	if err := c.Refresh(ctx); err != nil {
		c.logger.Warn("initial cache load failed", "error", err)
		return err
	}
	return nil
}

// Get returns the cached response, refreshing first when forced or
// stale. Returns ErrEmpty when no payload exists even after the refresh
// attempt.
func (c *Cache) Get(ctx context.Context, force bool) (*models.BenchmarkResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if force || !c.validLocked() {
		if err := c.refreshLocked(ctx); err != nil && c.data == nil {
			return nil, fmt.Errorf("%w: %v", ErrEmpty, err)
		}
	}
	if c.data == nil {
		return nil, ErrEmpty
	}
	return c.data, nil
}

// Refresh computes a fresh payload and swaps it in. Holding mu for the
// whole computation guarantees at most one aggregation is in flight.
func (c *Cache) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked(ctx)
}

func (c *Cache) refreshLocked(ctx context.Context) error {
	c.logger.Info("starting cache refresh")
	resp, err := c.refresh(ctx)
	if err != nil {
		// Previous payload stays intact.
		c.logger.Error("cache refresh failed", "error", err)
		return fmt.Errorf("refreshing cache: %w", err)
	}
	if resp == nil || len(resp.Data) == 0 {
		c.logger.Warn("cache refresh produced no entries")
		return nil
	}

	c.data = resp
	c.lastUpdated = c.nowFn().UTC()
	c.logger.Info("cache refreshed", "entries", len(resp.Data))
	return nil
}

// Invalidate drops the cached payload so the next Get refreshes.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
	c.lastUpdated = time.Time{}
}

// Valid reports whether a payload exists and is within its TTL.
func (c *Cache) Valid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validLocked()
}

func (c *Cache) validLocked() bool {
	if c.data == nil || c.lastUpdated.IsZero() {
		return false
	}
	return c.nowFn().UTC().Sub(c.lastUpdated) < c.ttl
}

// CurrentStatus snapshots the cache state.
func (c *Cache) CurrentStatus() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{
		Valid:      c.validLocked(),
		TTLMinutes: int(c.ttl / time.Minute),
		HasData:    c.data != nil,
	}
	if !c.lastUpdated.IsZero() {
		t := c.lastUpdated
		st.LastUpdated = &t
	}
	if c.data != nil {
		st.DataCount = len(c.data.Data)
	}
	return st
}
