package engine

import (
	"sort"
	"time"

	"github.com/ssenthilnathan3/metriqai/internal/models"
	"github.com/ssenthilnathan3/metriqai/internal/stats"
)

// trendMonths is the number of monthly checkpoints in the trend series,
// stepped 30 days apart starting 365 days before the computation instant.
const (
	trendMonths    = 12
	trendSpanDays  = 365
	trendStepDays  = 30
	topModelsLimit = 5
)

// familyAccum carries the per-family running totals built in the first
// pass over the entries. Counts are incremented once per evaluation
// result, matching the upstream aggregation.
type familyAccum struct {
	count       int
	metrics     map[string][]float64
	metricOrder []string
	tasks       map[models.TaskType]int
}

// ComputeSummary derives the benchmark summary from the entry sequence.
// The input is read-only; every output structure is freshly allocated.
// now fixes the computation instant so repeated calls with the same
// inputs produce identical results.
func ComputeSummary(entries []models.BenchmarkEntry, now time.Time) models.BenchmarkSummary {
	var (
		datasetOrder   []string
		datasetSeen    = map[string]bool{}
		datasetTasks   = map[string][]models.TaskType{}
		taskOrder      []models.TaskType
		taskModelCount = map[models.TaskType]int{}
		familyOrder    []models.ModelFamily
		families       = map[models.ModelFamily]*familyAccum{}
	)

	for _, entry := range entries {
		task := entry.ModelInfo.TaskType
		if _, ok := taskModelCount[task]; !ok {
			taskOrder = append(taskOrder, task)
		}
		taskModelCount[task]++

		family := entry.ModelInfo.ModelFamily
		fa, ok := families[family]
		if !ok {
			fa = &familyAccum{metrics: map[string][]float64{}, tasks: map[models.TaskType]int{}}
			families[family] = fa
			familyOrder = append(familyOrder, family)
		}

		for _, res := range entry.EvaluationResults {
			if !datasetSeen[res.DatasetName] {
				datasetSeen[res.DatasetName] = true
				datasetOrder = append(datasetOrder, res.DatasetName)
			}
			if !containsTask(datasetTasks[res.DatasetName], task) {
				datasetTasks[res.DatasetName] = append(datasetTasks[res.DatasetName], task)
			}

			fa.count++
			if _, ok := fa.metrics[res.MetricName]; !ok {
				fa.metricOrder = append(fa.metricOrder, res.MetricName)
			}
			fa.metrics[res.MetricName] = append(fa.metrics[res.MetricName], res.Value)
			fa.tasks[task]++
		}
	}

	return models.BenchmarkSummary{
		TotalModels:      len(entries),
		TotalDatasets:    len(datasetOrder),
		TaskStats:        taskStats(entries, taskOrder, taskModelCount, datasetOrder, datasetTasks),
		DatasetStats:     datasetStats(entries, datasetOrder, datasetTasks),
		ModelFamilyStats: familyStats(entries, familyOrder, families),
		TrendData:        trendData(entries, taskOrder, now),
		LastUpdated:      now,
	}
}

func taskStats(
	entries []models.BenchmarkEntry,
	taskOrder []models.TaskType,
	taskModelCount map[models.TaskType]int,
	datasetOrder []string,
	datasetTasks map[string][]models.TaskType,
) []models.TaskStats {
	out := make([]models.TaskStats, 0, len(taskOrder))

	for _, task := range taskOrder {
		datasetCount := 0
		for _, ds := range datasetOrder {
			if containsTask(datasetTasks[ds], task) {
				datasetCount++
			}
		}

		metrics := map[string][]float64{}
		type scored struct {
			modelID string
			score   float64
		}
		var candidates []scored

		for _, entry := range entries {
			if entry.ModelInfo.TaskType != task {
				continue
			}
			for _, res := range entry.EvaluationResults {
				metrics[res.MetricName] = append(metrics[res.MetricName], res.Value)
			}
			if len(entry.EvaluationResults) > 0 {
				sum := 0.0
				for _, res := range entry.EvaluationResults {
					sum += res.Value
				}
				candidates = append(candidates, scored{
					modelID: entry.ModelInfo.ModelID,
					score:   sum / float64(len(entry.EvaluationResults)),
				})
			}
		}

		// Stable sort keeps original entry order on score ties.
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].score > candidates[j].score
		})
		top := make([]string, 0, topModelsLimit)
		for _, c := range candidates {
			if len(top) == topModelsLimit {
				break
			}
			top = append(top, c.modelID)
		}

		avg := make(map[string]float64, len(metrics))
		for name, values := range metrics {
			if len(values) > 0 {
				avg[name] = stats.Mean(values)
			}
		}

		out = append(out, models.TaskStats{
			TaskType:     task,
			ModelCount:   taskModelCount[task],
			DatasetCount: datasetCount,
			AvgMetrics:   avg,
			TopModels:    top,
		})
	}
	return out
}

func datasetStats(
	entries []models.BenchmarkEntry,
	datasetOrder []string,
	datasetTasks map[string][]models.TaskType,
) []models.DatasetStats {
	out := make([]models.DatasetStats, 0, len(datasetOrder))

	for _, ds := range datasetOrder {
		metrics := map[string][]float64{}
		modelSeen := map[string]bool{}

		for _, entry := range entries {
			onDataset := false
			for _, res := range entry.EvaluationResults {
				if res.DatasetName != ds {
					continue
				}
				onDataset = true
				metrics[res.MetricName] = append(metrics[res.MetricName], res.Value)
			}
			if onDataset {
				modelSeen[entry.ModelInfo.ModelID] = true
			}
		}
		if len(metrics) == 0 {
			continue
		}

		avg := make(map[string]float64, len(metrics))
		best := make(map[string]float64, len(metrics))
		worst := make(map[string]float64, len(metrics))
		for name, values := range metrics {
			avg[name] = stats.Mean(values)
			best[name] = stats.Max(values)
			worst[name] = stats.Min(values)
		}

		// The reported task type is the first task observed with this
		// dataset, not a majority vote.
		task := models.TaskTextClassification
		if tasks := datasetTasks[ds]; len(tasks) > 0 {
			task = tasks[0]
		}

		out = append(out, models.DatasetStats{
			DatasetName:      ds,
			TaskType:         task,
			ModelCount:       len(modelSeen),
			AvgPerformance:   avg,
			BestPerformance:  best,
			WorstPerformance: worst,
		})
	}
	return out
}

func familyStats(
	entries []models.BenchmarkEntry,
	familyOrder []models.ModelFamily,
	families map[models.ModelFamily]*familyAccum,
) []models.ModelFamilyStats {
	out := make([]models.ModelFamilyStats, 0, len(familyOrder))

	for _, family := range familyOrder {
		fa := families[family]

		avg := make(map[string]float64, len(fa.metrics))
		for name, values := range fa.metrics {
			if len(values) > 0 {
				avg[name] = stats.Mean(values)
			}
		}

		var paramCounts []float64
		for _, entry := range entries {
			p := entry.ModelInfo.ParameterCount
			if entry.ModelInfo.ModelFamily == family && p != nil && *p > 0 {
				paramCounts = append(paramCounts, float64(*p))
			}
		}
		var avgParams *float64
		if len(paramCounts) > 0 {
			v := stats.Mean(paramCounts)
			avgParams = &v
		}

		tasks := make(map[models.TaskType]int, len(fa.tasks))
		for task, n := range fa.tasks {
			tasks[task] = n
		}

		out = append(out, models.ModelFamilyStats{
			Family:            family,
			ModelCount:        fa.count,
			AvgParameterCount: avgParams,
			AvgPerformance:    avg,
			TaskDistribution:  tasks,
		})
	}
	return out
}

func trendData(entries []models.BenchmarkEntry, taskOrder []models.TaskType, now time.Time) []models.TrendPoint {
	var out []models.TrendPoint
	start := now.UTC().AddDate(0, 0, -trendSpanDays)

	for _, task := range taskOrder {
		for month := 0; month < trendMonths; month++ {
			checkpoint := start.AddDate(0, 0, trendStepDays*month)

			var cohort []models.BenchmarkEntry
			for _, entry := range entries {
				created := entry.ModelInfo.CreatedAt
				if entry.ModelInfo.TaskType != task || created == nil {
					continue
				}
				if !created.UTC().After(checkpoint) {
					cohort = append(cohort, entry)
				}
			}
			if len(cohort) == 0 {
				continue
			}

			metrics := map[string][]float64{}
			var metricOrder []string
			for _, entry := range cohort {
				for _, res := range entry.EvaluationResults {
					if _, ok := metrics[res.MetricName]; !ok {
						metricOrder = append(metricOrder, res.MetricName)
					}
					metrics[res.MetricName] = append(metrics[res.MetricName], res.Value)
				}
			}

			for _, name := range metricOrder {
				values := metrics[name]
				if len(values) == 0 {
					continue
				}
				out = append(out, models.TrendPoint{
					Date:       checkpoint,
					TaskType:   task,
					MetricName: name,
					AvgValue:   stats.Mean(values),
					ModelCount: len(cohort),
					BestValue:  stats.Max(values),
				})
			}
		}
	}
	return out
}

func containsTask(tasks []models.TaskType, t models.TaskType) bool {
	for _, existing := range tasks {
		if existing == t {
			return true
		}
	}
	return false
}
