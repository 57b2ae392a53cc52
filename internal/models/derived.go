package models

import "time"

// TaskStats aggregates entries that share a task type.
type TaskStats struct {
	TaskType     TaskType           `json:"task_type"`
	ModelCount   int                `json:"model_count"`
	DatasetCount int                `json:"dataset_count"`
	AvgMetrics   map[string]float64 `json:"avg_metrics"`
	TopModels    []string           `json:"top_models"`
}

// DatasetStats aggregates every evaluation result observed on one dataset.
type DatasetStats struct {
	DatasetName      string             `json:"dataset_name"`
	TaskType         TaskType           `json:"task_type"`
	ModelCount       int                `json:"model_count"`
	AvgPerformance   map[string]float64 `json:"avg_performance"`
	BestPerformance  map[string]float64 `json:"best_performance"`
	WorstPerformance map[string]float64 `json:"worst_performance"`
}

// ModelFamilyStats aggregates entries that share a model family.
// AvgParameterCount is nil when no entry in the family has a known
// parameter count.
type ModelFamilyStats struct {
	Family            ModelFamily        `json:"family"`
	ModelCount        int                `json:"model_count"`
	AvgParameterCount *float64           `json:"avg_parameter_count,omitempty"`
	AvgPerformance    map[string]float64 `json:"avg_performance"`
	TaskDistribution  map[TaskType]int   `json:"task_distribution"`
}

// TrendPoint is one (date, task, metric) aggregate snapshot.
type TrendPoint struct {
	Date       time.Time `json:"date"`
	TaskType   TaskType  `json:"task_type"`
	MetricName string    `json:"metric_name"`
	AvgValue   float64   `json:"avg_value"`
	ModelCount int       `json:"model_count"`
	BestValue  float64   `json:"best_value"`
}

// BenchmarkSummary is the output of the summary aggregator.
type BenchmarkSummary struct {
	TotalModels      int                `json:"total_models"`
	TotalDatasets    int                `json:"total_datasets"`
	TaskStats        []TaskStats        `json:"task_stats"`
	DatasetStats     []DatasetStats     `json:"dataset_stats"`
	ModelFamilyStats []ModelFamilyStats `json:"model_family_stats"`
	TrendData        []TrendPoint       `json:"trend_data"`
	LastUpdated      time.Time          `json:"last_updated"`
}

// CorrelationMatrix holds pairwise Pearson coefficients among the metrics
// observed for one task. Matrix is square with the same ordering as
// Metrics and 1.0 on the diagonal.
type CorrelationMatrix struct {
	Metrics  []string    `json:"metrics"`
	Matrix   [][]float64 `json:"correlation_matrix"`
	TaskType TaskType    `json:"task_type"`
}

// LeaderboardEntry is one ranked model within a leaderboard.
// EfficiencyScore is the primary metric value per million parameters,
// nil when the parameter count is unknown.
type LeaderboardEntry struct {
	Rank             int                `json:"rank"`
	ModelInfo        ModelInfo          `json:"model_info"`
	PrimaryMetric    EvaluationResult   `json:"primary_metric"`
	SecondaryMetrics []EvaluationResult `json:"secondary_metrics"`
	EfficiencyScore  *float64           `json:"efficiency_score,omitempty"`
}

// Leaderboard ranks the top deduplicated models for one (task, dataset)
// pair. MetricName is taken from the first entry's primary metric.
type Leaderboard struct {
	TaskType    TaskType           `json:"task_type"`
	DatasetName string             `json:"dataset_name"`
	MetricName  string             `json:"metric_name"`
	Entries     []LeaderboardEntry `json:"entries"`
	LastUpdated time.Time          `json:"last_updated"`
}

// BenchmarkResponse is the full API payload: the raw entries plus the
// three derived views.
type BenchmarkResponse struct {
	Data         []BenchmarkEntry    `json:"data"`
	Summary      BenchmarkSummary    `json:"summary"`
	Correlations []CorrelationMatrix `json:"correlations"`
	Leaderboards []Leaderboard       `json:"leaderboards"`
}
