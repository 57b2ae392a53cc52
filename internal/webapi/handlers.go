// Package webapi exposes the benchmark aggregation service over HTTP.
package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ssenthilnathan3/metriqai/internal/respcache"
)

// Version is set at build time or defaults to dev.
var Version = "1.0.0"

// refreshTimeout bounds a background refresh triggered over the API.
const refreshTimeout = 5 * time.Minute

// Handlers holds the HTTP handler methods for the benchmark API.
type Handlers struct {
	cache  *respcache.Cache
	logger *slog.Logger
}

// NewHandlers creates a new Handlers backed by the given cache.
func NewHandlers(cache *respcache.Cache, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{cache: cache, logger: logger}
}

// HandleRoot returns API information.
func (h *Handlers) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Message: "ML Benchmark API",
		Version: Version,
		Endpoints: map[string]string{
			"health":       "/health",
			"benchmarks":   "/api/benchmarks",
			"refresh":      "/api/refresh",
			"cache_status": "/api/cache-status",
		},
	})
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   Version,
	})
}

// HandleBenchmarks returns the full benchmark payload, refreshing the
// cache first when it is stale or force_refresh is set.
func (h *Handlers) HandleBenchmarks(w http.ResponseWriter, r *http.Request) {
	force := false
	switch r.URL.Query().Get("force_refresh") {
	case "true", "1":
		force = true
	}

	resp, err := h.cache.Get(r.Context(), force)
	if err != nil {
		if errors.Is(err, respcache.ErrEmpty) {
			writeError(w, http.StatusServiceUnavailable,
				"Benchmark data is not available. Please try again later.")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleRefresh triggers a background refresh of benchmark data.
func (h *Handlers) HandleRefresh(w http.ResponseWriter, _ *http.Request) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		if err := h.cache.Refresh(ctx); err != nil {
			h.logger.Error("background refresh failed", "error", err)
		}
	}()

	writeJSON(w, http.StatusOK, RefreshResponse{
		Message:   "Benchmark data refresh started",
		Timestamp: time.Now().UTC(),
	})
}

// HandleCacheStatus reports the current cache state.
func (h *Handlers) HandleCacheStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.cache.CurrentStatus())
}

// RegisterRoutes registers all API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, h *Handlers, metrics *Metrics) {
	mux.HandleFunc("GET /{$}", h.HandleRoot)
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/benchmarks", h.HandleBenchmarks)
	mux.HandleFunc("POST /api/refresh", h.HandleRefresh)
	mux.HandleFunc("GET /api/cache-status", h.HandleCacheStatus)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics.Handler())
	}
}

// DefaultAllowedOrigins are the development origins permitted by CORS
// when no explicit list is configured.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
}

// CORSMiddleware wraps a handler with CORS headers. The request Origin
// is checked against the allowed list; unlisted origins get no CORS
// headers.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// LoggingMiddleware logs every request with its status and duration.
func LoggingMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).Round(time.Millisecond).String(),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
