package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssenthilnathan3/metriqai/internal/models"
)

// newSOTAServer serves canned board payloads keyed by URL path.
func newSOTAServer(t *testing.T, payloads map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, ok := payloads[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
}

func findEntry(t *testing.T, entries []models.BenchmarkEntry, id string) models.BenchmarkEntry {
	t.Helper()
	for _, e := range entries {
		if e.ModelInfo.ModelID == id {
			return e
		}
	}
	t.Fatalf("entry %q not found", id)
	return models.BenchmarkEntry{}
}

func TestSOTAClient_FetchAllBoards(t *testing.T) {
	srv := newSOTAServer(t, map[string]any{
		"/sota/glue": map[string]any{
			"results": []map[string]any{{
				"model_name": "BERT-large (ensemble)",
				"metrics": []map[string]any{
					{"name": "score", "value": 80.5, "dataset_name": "cola"},
				},
			}},
		},
		"/sota/image-classification-on-imagenet": map[string]any{
			"results": []map[string]any{{
				"model_name": "ViT-H/14",
				"metrics":    map[string]float64{"accuracy": 88.6},
			}},
		},
		"/sota/question-answering-on-squad": map[string]any{
			"results": []map[string]any{{
				"model_name": "BERT QA",
				"metrics":    map[string]float64{"exact_match": 85.1, "f1": 91.8},
			}},
		},
		"/sota/machine-translation-on-wmt2014-english-german": map[string]any{
			"results": []map[string]any{{
				"model_name": "Transformer Big",
				"metrics":    map[string]float64{"bleu": 29.3},
			}},
		},
		"/sota/machine-translation-on-wmt2014-english-french": map[string]any{
			"results": []map[string]any{},
		},
	})
	defer srv.Close()

	client := NewSOTAClient(nil, WithSOTABaseURL(srv.URL))
	entries, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 4)

	glue := findEntry(t, entries, "BERT-large (ensemble)")
	assert.Equal(t, models.FamilyBERT, glue.ModelInfo.ModelFamily)
	assert.Equal(t, models.TaskTextClassification, glue.ModelInfo.TaskType)
	require.Len(t, glue.EvaluationResults, 1)
	assert.Equal(t, "GLUE", glue.EvaluationResults[0].DatasetName)
	assert.Equal(t, "cola", glue.EvaluationResults[0].DatasetConfig)

	image := findEntry(t, entries, "ViT-H/14")
	assert.Equal(t, models.FamilyViT, image.ModelInfo.ModelFamily)
	assert.Equal(t, "validation", image.EvaluationResults[0].DatasetSplit)
	assert.InDelta(t, 88.6, image.EvaluationResults[0].Value, 1e-9)

	qa := findEntry(t, entries, "BERT QA")
	require.Len(t, qa.EvaluationResults, 2)
	assert.Equal(t, "exact_match", qa.EvaluationResults[0].MetricName)
	assert.Equal(t, "f1", qa.EvaluationResults[1].MetricName)

	wmt := findEntry(t, entries, "Transformer Big")
	assert.Equal(t, models.TaskTranslation, wmt.ModelInfo.TaskType)
	assert.Equal(t, "en-de", wmt.EvaluationResults[0].DatasetConfig)
}

func TestSOTAClient_FailedBoardSkipped(t *testing.T) {
	// Only the imagenet board responds; the rest 404 and are skipped.
	srv := newSOTAServer(t, map[string]any{
		"/sota/image-classification-on-imagenet": map[string]any{
			"results": []map[string]any{{
				"model_name": "ResNet-152",
				"metrics":    map[string]float64{"accuracy": 78.3},
			}},
		},
	})
	defer srv.Close()

	client := NewSOTAClient(nil, WithSOTABaseURL(srv.URL))
	entries, err := client.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "ResNet-152", entries[0].ModelInfo.ModelID)
	assert.Equal(t, models.FamilyResNet, entries[0].ModelInfo.ModelFamily)
}

func TestSOTAClient_SkipsRowsWithoutUsableMetrics(t *testing.T) {
	srv := newSOTAServer(t, map[string]any{
		"/sota/question-answering-on-squad": map[string]any{
			"results": []map[string]any{
				{"model_name": "zeros", "metrics": map[string]float64{"exact_match": 0, "f1": 0}},
				{"model_name": "", "metrics": map[string]float64{"f1": 90.0}},
				{"model_name": "good", "metrics": map[string]float64{"f1": 89.5}},
			},
		},
	})
	defer srv.Close()

	client := NewSOTAClient(nil, WithSOTABaseURL(srv.URL))
	entries, err := client.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "good", entries[0].ModelInfo.ModelID)
	// Only the nonzero metric is reported.
	require.Len(t, entries[0].EvaluationResults, 1)
	assert.Equal(t, "f1", entries[0].EvaluationResults[0].MetricName)
}
