package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ssenthilnathan3/metriqai/internal/classify"
	"github.com/ssenthilnathan3/metriqai/internal/models"
)

// DefaultSOTABaseURL is the state-of-the-art benchmark API root.
const DefaultSOTABaseURL = "https://paperswithcode.com/api/v1"

// SOTAClient fetches published leaderboard rows for a fixed set of
// well-known benchmarks (GLUE, ImageNet, SQuAD, WMT14). Rows carry only
// a free-text model name, so classification uses the reduced name-only
// family table.
type SOTAClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
	nowFn   func() time.Time
}

// SOTAOption configures a SOTAClient.
type SOTAOption func(*SOTAClient)

// WithSOTABaseURL overrides the API root (used by tests).
func WithSOTABaseURL(u string) SOTAOption {
	return func(c *SOTAClient) { c.baseURL = u }
}

// WithSOTAHTTPClient overrides the HTTP client.
func WithSOTAHTTPClient(hc *http.Client) SOTAOption {
	return func(c *SOTAClient) { c.client = hc }
}

// WithSOTANow overrides the clock (used by tests).
func WithSOTANow(fn func() time.Time) SOTAOption {
	return func(c *SOTAClient) { c.nowFn = fn }
}

// NewSOTAClient creates a SOTA benchmark source.
func NewSOTAClient(logger *slog.Logger, opts ...SOTAOption) *SOTAClient {
	if logger == nil {
		logger = slog.Default()
	}
	c := &SOTAClient{
		baseURL: DefaultSOTABaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
		nowFn:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements Source.
func (c *SOTAClient) Name() string { return "sota" }

// Fetch retrieves all benchmark boards concurrently. A failed board is
// logged and contributes nothing; the others still do.
func (c *SOTAClient) Fetch(ctx context.Context) ([]models.BenchmarkEntry, error) {
	boards := []struct {
		name  string
		fetch func(context.Context) ([]models.BenchmarkEntry, error)
	}{
		{"glue", c.fetchGLUE},
		{"imagenet", c.fetchImageNet},
		{"squad", c.fetchSQuAD},
		{"wmt", c.fetchWMT},
	}

	results := make([][]models.BenchmarkEntry, len(boards))
	g, gctx := errgroup.WithContext(ctx)
	for i, board := range boards {
		g.Go(func() error {
			entries, err := board.fetch(gctx)
			if err != nil {
				c.logger.Warn("benchmark board fetch failed", "board", board.name, "error", err)
				return nil
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var entries []models.BenchmarkEntry
	for _, r := range results {
		entries = append(entries, r...)
	}
	return entries, nil
}

// sotaListResponse is a board whose rows carry a list of metrics.
type sotaListResponse struct {
	Results []struct {
		ModelName string `json:"model_name"`
		Metrics   []struct {
			Name        string   `json:"name"`
			Value       *float64 `json:"value"`
			DatasetName string   `json:"dataset_name"`
		} `json:"metrics"`
	} `json:"results"`
}

// sotaMapResponse is a board whose rows carry a metric-name map.
type sotaMapResponse struct {
	Results []struct {
		ModelName string             `json:"model_name"`
		Metrics   map[string]float64 `json:"metrics"`
	} `json:"results"`
}

func (c *SOTAClient) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sota request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sota returned status %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// entryFor builds the descriptor shared by all board rows.
func (c *SOTAClient) entryFor(name string, task models.TaskType, tags []string, results []models.EvaluationResult) models.BenchmarkEntry {
	now := c.nowFn().UTC()
	return models.BenchmarkEntry{
		ModelInfo: models.ModelInfo{
			ModelID:     name,
			ModelName:   name,
			ModelFamily: classify.FamilyFromName(name),
			TaskType:    task,
			CreatedAt:   &now,
			Tags:        tags,
		},
		EvaluationResults: results,
		EvaluatedAt:       &now,
	}
}

func (c *SOTAClient) fetchGLUE(ctx context.Context) ([]models.BenchmarkEntry, error) {
	var payload sotaListResponse
	if err := c.getJSON(ctx, "/sota/glue", &payload); err != nil {
		return nil, err
	}

	var entries []models.BenchmarkEntry
	for _, row := range payload.Results {
		if row.ModelName == "" {
			continue
		}
		var results []models.EvaluationResult
		for _, metric := range row.Metrics {
			name := metric.Name
			if name == "" {
				name = "accuracy"
			}
			value := 0.0
			if metric.Value != nil {
				value = *metric.Value
			}
			results = append(results, models.EvaluationResult{
				MetricName:    name,
				MetricType:    models.MetricAccuracy,
				Value:         value,
				DatasetName:   "GLUE",
				DatasetConfig: metric.DatasetName,
				DatasetSplit:  "test",
			})
		}
		if len(results) == 0 {
			continue
		}
		entries = append(entries, c.entryFor(row.ModelName, models.TaskTextClassification,
			[]string{"glue", "text-classification"}, results))
	}
	return entries, nil
}

func (c *SOTAClient) fetchImageNet(ctx context.Context) ([]models.BenchmarkEntry, error) {
	var payload sotaMapResponse
	if err := c.getJSON(ctx, "/sota/image-classification-on-imagenet", &payload); err != nil {
		return nil, err
	}

	var entries []models.BenchmarkEntry
	for _, row := range payload.Results {
		if row.ModelName == "" {
			continue
		}
		accuracy, ok := row.Metrics["accuracy"]
		if !ok {
			continue
		}
		entries = append(entries, c.entryFor(row.ModelName, models.TaskImageClassification,
			[]string{"imagenet", "image-classification"},
			[]models.EvaluationResult{{
				MetricName:   "accuracy",
				MetricType:   models.MetricAccuracy,
				Value:        accuracy,
				DatasetName:  "ImageNet",
				DatasetSplit: "validation",
			}}))
	}
	return entries, nil
}

func (c *SOTAClient) fetchSQuAD(ctx context.Context) ([]models.BenchmarkEntry, error) {
	var payload sotaMapResponse
	if err := c.getJSON(ctx, "/sota/question-answering-on-squad", &payload); err != nil {
		return nil, err
	}

	var entries []models.BenchmarkEntry
	for _, row := range payload.Results {
		if row.ModelName == "" {
			continue
		}
		em := row.Metrics["exact_match"]
		f1 := row.Metrics["f1"]
		if em == 0 && f1 == 0 {
			continue
		}

		var results []models.EvaluationResult
		if em != 0 {
			results = append(results, models.EvaluationResult{
				MetricName:   "exact_match",
				MetricType:   models.MetricExactMatch,
				Value:        em,
				DatasetName:  "SQuAD",
				DatasetSplit: "test",
			})
		}
		if f1 != 0 {
			results = append(results, models.EvaluationResult{
				MetricName:   "f1",
				MetricType:   models.MetricF1,
				Value:        f1,
				DatasetName:  "SQuAD",
				DatasetSplit: "test",
			})
		}
		entries = append(entries, c.entryFor(row.ModelName, models.TaskQuestionAnswering,
			[]string{"squad", "question-answering"}, results))
	}
	return entries, nil
}

func (c *SOTAClient) fetchWMT(ctx context.Context) ([]models.BenchmarkEntry, error) {
	pairs := []struct {
		path   string
		config string
	}{
		{"/sota/machine-translation-on-wmt2014-english-german", "en-de"},
		{"/sota/machine-translation-on-wmt2014-english-french", "en-fr"},
	}

	var entries []models.BenchmarkEntry
	for _, pair := range pairs {
		var payload sotaMapResponse
		if err := c.getJSON(ctx, pair.path, &payload); err != nil {
			// The first language pair failing fails the board; a later
			// one just stops the walk with what was already collected.
			if len(entries) == 0 {
				return nil, err
			}
			c.logger.Warn("wmt language pair fetch failed", "config", pair.config, "error", err)
			break
		}
		for _, row := range payload.Results {
			if row.ModelName == "" {
				continue
			}
			bleu, ok := row.Metrics["bleu"]
			if !ok || bleu == 0 {
				continue
			}
			entries = append(entries, c.entryFor(row.ModelName, models.TaskTranslation,
				[]string{"wmt", "translation", pair.config},
				[]models.EvaluationResult{{
					MetricName:    "bleu",
					MetricType:    models.MetricBLEU,
					Value:         bleu,
					DatasetName:   "WMT14",
					DatasetConfig: pair.config,
					DatasetSplit:  "test",
				}}))
		}
	}
	return entries, nil
}
