package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"golang.org/x/time/rate"

	"github.com/ssenthilnathan3/metriqai/internal/classify"
	"github.com/ssenthilnathan3/metriqai/internal/models"
)

// DefaultHubBaseURL is the model hub API root.
const DefaultHubBaseURL = "https://huggingface.co/api"

// hubPipelines are the task pipelines the hub source enumerates.
var hubPipelines = []string{
	"text-classification",
	"image-classification",
	"text-generation",
	"question-answering",
	"token-classification",
	"translation",
	"summarization",
	"object-detection",
	"automatic-speech-recognition",
}

// HubClient lists models per pipeline from the model hub and turns each
// listing into a classified benchmark entry. Requests are paced by a
// token-bucket limiter so the hub API is never hammered.
type HubClient struct {
	baseURL    string
	client     *http.Client
	limiter    *rate.Limiter
	maxPerTask int
	synth      *SyntheticGenerator
	logger     *slog.Logger
	nowFn      func() time.Time
}

// HubOption configures a HubClient.
type HubOption func(*HubClient)

// WithHubBaseURL overrides the hub API root (used by tests).
func WithHubBaseURL(u string) HubOption {
	return func(c *HubClient) { c.baseURL = u }
}

// WithHubHTTPClient overrides the HTTP client.
func WithHubHTTPClient(hc *http.Client) HubOption {
	return func(c *HubClient) { c.client = hc }
}

// WithHubRateLimit sets the sustained request rate and burst.
func WithHubRateLimit(limit rate.Limit, burst int) HubOption {
	return func(c *HubClient) { c.limiter = rate.NewLimiter(limit, burst) }
}

// WithHubNow overrides the clock (used by tests).
func WithHubNow(fn func() time.Time) HubOption {
	return func(c *HubClient) { c.nowFn = fn }
}

// NewHubClient creates a hub source fetching up to maxPerTask models for
// each pipeline. synth supplies placeholder evaluation results for models
// whose card carries none.
func NewHubClient(maxPerTask int, synth *SyntheticGenerator, logger *slog.Logger, opts ...HubOption) *HubClient {
	if logger == nil {
		logger = slog.Default()
	}
	c := &HubClient{
		baseURL:    DefaultHubBaseURL,
		client:     &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(5), 10),
		maxPerTask: maxPerTask,
		synth:      synth,
		logger:     logger,
		nowFn:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements Source.
func (c *HubClient) Name() string { return "hub" }

// hubModel is the raw hub listing payload for one model.
type hubModel struct {
	ID           string         `json:"id"`
	ModelID      string         `json:"modelId"`
	PipelineTag  string         `json:"pipeline_tag"`
	Tags         []string       `json:"tags"`
	Downloads    *int64         `json:"downloads"`
	Likes        *int64         `json:"likes"`
	LibraryName  string         `json:"library_name"`
	License      string         `json:"license"`
	CreatedAt    string         `json:"createdAt"`
	LastModified string         `json:"lastModified"`
	CardData     map[string]any `json:"cardData"`
}

// Fetch lists models for every pipeline and builds one entry per model
// that has (or receives placeholder) evaluation results. Per-model
// failures are logged and skipped.
func (c *HubClient) Fetch(ctx context.Context) ([]models.BenchmarkEntry, error) {
	var entries []models.BenchmarkEntry
	for _, pipeline := range hubPipelines {
		raw, err := c.listModels(ctx, pipeline)
		if err != nil {
			c.logger.Warn("listing pipeline failed", "pipeline", pipeline, "error", err)
			continue
		}
		for _, m := range raw {
			entry, ok := c.buildEntry(m, pipeline)
			if !ok {
				continue
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// listModels fetches one pipeline's model listing, sorted by downloads.
func (c *HubClient) listModels(ctx context.Context, pipeline string) ([]hubModel, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("pipeline_tag", pipeline)
	params.Set("sort", "downloads")
	params.Set("direction", "-1")
	params.Set("limit", strconv.Itoa(c.maxPerTask))
	params.Set("full", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hub request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hub returned status %d for pipeline %s", resp.StatusCode, pipeline)
	}

	var raw []hubModel
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding hub listing: %w", err)
	}
	return raw, nil
}

// buildEntry classifies a raw hub model and assembles its entry. Returns
// ok=false when the model has no usable identifier or yields no
// evaluation results even after placeholder generation.
func (c *HubClient) buildEntry(m hubModel, pipeline string) (models.BenchmarkEntry, bool) {
	if m.ID == "" {
		return models.BenchmarkEntry{}, false
	}

	pipelineTag := m.PipelineTag
	if pipelineTag == "" {
		pipelineTag = pipeline
	}
	taskType := classify.TaskFromPipeline(pipelineTag)
	family := classify.Family(m.ID, m.Tags)

	info := models.ModelInfo{
		ModelID:     m.ID,
		ModelName:   m.ID,
		ModelFamily: family,
		TaskType:    taskType,
		Downloads:   m.Downloads,
		Likes:       m.Likes,
		LibraryName: m.LibraryName,
		License:     m.License,
		Tags:        m.Tags,
		PipelineTag: pipelineTag,
	}
	if m.ModelID != "" {
		info.ModelName = m.ModelID
	}
	if size, ok := classify.Size(m.ID, m.Tags); ok {
		info.ModelSize = &size
	}
	if params, ok := classify.ParameterCount(m.ID, m.Tags); ok {
		info.ParameterCount = &params
	}
	if t, ok := c.parseTime(m.CreatedAt); ok {
		info.CreatedAt = &t
	}
	if t, ok := c.parseTime(m.LastModified); ok {
		info.LastModified = &t
	}

	evalResults := c.parseCardResults(m.ID, m.CardData)
	if len(evalResults) == 0 && c.synth != nil {
		evalResults = c.synth.Results(taskType, family)
	}
	if len(evalResults) == 0 {
		return models.BenchmarkEntry{}, false
	}

	evaluatedAt := info.LastModified
	if evaluatedAt == nil {
		now := c.nowFn().UTC()
		evaluatedAt = &now
	}

	return models.BenchmarkEntry{
		ModelInfo:         info,
		EvaluationResults: evalResults,
		EvaluatedAt:       evaluatedAt,
	}, true
}

// parseTime accepts the hub's RFC3339 variants (with or without a "Z"
// suffix). A malformed timestamp is logged and the field is skipped.
func (c *HubClient) parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	c.logger.Warn("skipping malformed timestamp", "value", s)
	return time.Time{}, false
}

// cardEval mirrors the loosely-typed eval_results block of a model card.
type cardEval struct {
	Dataset struct {
		Name   string `mapstructure:"name"`
		Config string `mapstructure:"config"`
		Split  string `mapstructure:"split"`
	} `mapstructure:"dataset"`
	Metrics []struct {
		Name  string `mapstructure:"name"`
		Value any    `mapstructure:"value"`
	} `mapstructure:"metrics"`
}

// parseCardResults decodes eval_results from a model card. Malformed
// blocks or metrics are skipped with a warning; partial results are
// preferred over dropping the model.
func (c *HubClient) parseCardResults(modelID string, cardData map[string]any) []models.EvaluationResult {
	if cardData == nil {
		return nil
	}
	rawResults, ok := cardData["eval_results"]
	if !ok {
		return nil
	}

	var decoded []cardEval
	if err := mapstructure.Decode(rawResults, &decoded); err != nil {
		c.logger.Warn("skipping malformed eval_results", "model", modelID, "error", err)
		return nil
	}

	var out []models.EvaluationResult
	for _, block := range decoded {
		datasetName := block.Dataset.Name
		if datasetName == "" {
			datasetName = "unknown"
		}
		split := block.Dataset.Split
		if split == "" {
			split = "test"
		}
		for _, metric := range block.Metrics {
			value, ok := toFloat(metric.Value)
			if !ok {
				c.logger.Warn("skipping non-numeric metric value",
					"model", modelID, "metric", metric.Name)
				continue
			}
			out = append(out, models.EvaluationResult{
				MetricName:    metric.Name,
				MetricType:    classify.Metric(metric.Name),
				Value:         value,
				DatasetName:   datasetName,
				DatasetConfig: block.Dataset.Config,
				DatasetSplit:  split,
			})
		}
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
