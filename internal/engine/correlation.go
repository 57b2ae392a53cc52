package engine

import (
	"github.com/ssenthilnathan3/metriqai/internal/models"
	"github.com/ssenthilnathan3/metriqai/internal/stats"
)

// Correlation qualification thresholds: an entry contributes only when it
// reports at least two distinct metrics, a metric qualifies with at least
// three recorded values, and a task produces a matrix only with at least
// two qualifying metrics.
const (
	minMetricsPerEntry = 2
	minValuesPerMetric = 3
	minMetricsPerTask  = 2
)

// taskMetricAccum collects per-metric value lists for one task, keeping
// first-seen metric order so output is deterministic.
type taskMetricAccum struct {
	values map[string][]float64
	order  []string
}

// ComputeCorrelations builds one Pearson correlation matrix per task type
// that has enough multi-metric observations. Matrices are square and
// symmetric with 1.0 on the diagonal; undefined coefficients are reported
// as 0.0.
func ComputeCorrelations(entries []models.BenchmarkEntry) []models.CorrelationMatrix {
	taskOrder := []models.TaskType{}
	tasks := map[models.TaskType]*taskMetricAccum{}

	for _, entry := range entries {
		// Last value wins when an entry repeats a metric name.
		entryMetrics := map[string]float64{}
		var entryOrder []string
		for _, res := range entry.EvaluationResults {
			if _, ok := entryMetrics[res.MetricName]; !ok {
				entryOrder = append(entryOrder, res.MetricName)
			}
			entryMetrics[res.MetricName] = res.Value
		}
		if len(entryMetrics) < minMetricsPerEntry {
			continue
		}

		task := entry.ModelInfo.TaskType
		acc, ok := tasks[task]
		if !ok {
			acc = &taskMetricAccum{values: map[string][]float64{}}
			tasks[task] = acc
			taskOrder = append(taskOrder, task)
		}
		for _, name := range entryOrder {
			if _, ok := acc.values[name]; !ok {
				acc.order = append(acc.order, name)
			}
			acc.values[name] = append(acc.values[name], entryMetrics[name])
		}
	}

	var out []models.CorrelationMatrix
	for _, task := range taskOrder {
		acc := tasks[task]

		var names []string
		for _, name := range acc.order {
			if len(acc.values[name]) >= minValuesPerMetric {
				names = append(names, name)
			}
		}
		if len(names) < minMetricsPerTask {
			continue
		}

		n := len(names)
		matrix := make([][]float64, n)
		for i := 0; i < n; i++ {
			matrix[i] = make([]float64, n)
			for j := 0; j < n; j++ {
				if i == j {
					matrix[i][j] = 1.0
					continue
				}
				matrix[i][j] = stats.Round3(pairwise(acc.values[names[i]], acc.values[names[j]]))
			}
		}

		out = append(out, models.CorrelationMatrix{
			Metrics:  names,
			Matrix:   matrix,
			TaskType: task,
		})
	}
	return out
}

// pairwise correlates two value lists after truncating both to the
// shorter length. Values are aligned positionally, not by model.
func pairwise(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	return stats.Pearson(a[:n], b[:n])
}
