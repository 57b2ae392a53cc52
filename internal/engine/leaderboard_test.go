package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssenthilnathan3/metriqai/internal/models"
)

func TestBuildLeaderboards_BelowMinimumPairs(t *testing.T) {
	// Four (entry, result) pairs on one (task, dataset) group: one short
	// of the floor, so no leaderboard is produced.
	var entries []models.BenchmarkEntry
	for i := 0; i < 4; i++ {
		entries = append(entries, makeEntry(
			"m"+string(rune('1'+i)), models.TaskTextClassification, models.FamilyBERT,
			result("accuracy", 0.7+float64(i)*0.05, "imdb")))
	}

	assert.Empty(t, BuildLeaderboards(entries, testNow))
}

func TestBuildLeaderboards_RankingAndOrdering(t *testing.T) {
	entries := []models.BenchmarkEntry{
		makeEntry("m1", models.TaskTextClassification, models.FamilyBERT, result("accuracy", 0.70, "imdb")),
		makeEntry("m2", models.TaskTextClassification, models.FamilyBERT, result("accuracy", 0.95, "imdb")),
		makeEntry("m3", models.TaskTextClassification, models.FamilyBERT, result("accuracy", 0.85, "imdb")),
		makeEntry("m4", models.TaskTextClassification, models.FamilyBERT, result("accuracy", 0.90, "imdb")),
		makeEntry("m5", models.TaskTextClassification, models.FamilyBERT, result("accuracy", 0.80, "imdb")),
	}

	boards := BuildLeaderboards(entries, testNow)

	require.Len(t, boards, 1)
	board := boards[0]
	assert.Equal(t, models.TaskTextClassification, board.TaskType)
	assert.Equal(t, "imdb", board.DatasetName)
	assert.Equal(t, "accuracy", board.MetricName)
	assert.Equal(t, testNow, board.LastUpdated)

	require.Len(t, board.Entries, 5)
	wantOrder := []string{"m2", "m4", "m3", "m5", "m1"}
	for i, entry := range board.Entries {
		assert.Equal(t, i+1, entry.Rank)
		assert.Equal(t, wantOrder[i], entry.ModelInfo.ModelID)
	}
}

func TestBuildLeaderboards_DedupeKeepsHighestValue(t *testing.T) {
	entries := []models.BenchmarkEntry{
		makeEntry("dup", models.TaskTextClassification, models.FamilyBERT,
			result("accuracy", 0.70, "imdb"),
			result("accuracy", 0.92, "imdb"),
			result("accuracy", 0.85, "imdb")),
		makeEntry("m2", models.TaskTextClassification, models.FamilyBERT, result("accuracy", 0.80, "imdb")),
		makeEntry("m3", models.TaskTextClassification, models.FamilyBERT, result("accuracy", 0.75, "imdb")),
	}

	boards := BuildLeaderboards(entries, testNow)

	require.Len(t, boards, 1)
	board := boards[0]
	require.Len(t, board.Entries, 3)

	// One row per model, led by dup's best value.
	seen := map[string]bool{}
	for _, entry := range board.Entries {
		assert.False(t, seen[entry.ModelInfo.ModelID], "duplicate model %s", entry.ModelInfo.ModelID)
		seen[entry.ModelInfo.ModelID] = true
	}
	assert.Equal(t, "dup", board.Entries[0].ModelInfo.ModelID)
	assert.InDelta(t, 0.92, board.Entries[0].PrimaryMetric.Value, 1e-9)
}

func TestBuildLeaderboards_SecondaryMetricsSameModelOnly(t *testing.T) {
	entries := []models.BenchmarkEntry{
		makeEntry("top", models.TaskTextClassification, models.FamilyBERT,
			result("accuracy", 0.95, "imdb"),
			result("f1", 0.93, "imdb")),
		makeEntry("m2", models.TaskTextClassification, models.FamilyBERT, result("accuracy", 0.80, "imdb")),
		makeEntry("m3", models.TaskTextClassification, models.FamilyBERT, result("accuracy", 0.75, "imdb")),
		makeEntry("m4", models.TaskTextClassification, models.FamilyBERT, result("accuracy", 0.70, "imdb")),
	}

	boards := BuildLeaderboards(entries, testNow)

	require.Len(t, boards, 1)
	top := boards[0].Entries[0]
	require.Equal(t, "top", top.ModelInfo.ModelID)

	// Only top's own f1 row: the primary is excluded and other models'
	// results never appear.
	require.Len(t, top.SecondaryMetrics, 1)
	assert.Equal(t, "f1", top.SecondaryMetrics[0].MetricName)

	m2 := boards[0].Entries[1]
	assert.Empty(t, m2.SecondaryMetrics)
}

func TestBuildLeaderboards_SecondaryExcludesPrimaryByIdentity(t *testing.T) {
	// The model reports the same metric name and value twice. Excluding
	// the primary by identity leaves exactly one secondary row.
	entries := []models.BenchmarkEntry{
		makeEntry("twin", models.TaskTextClassification, models.FamilyBERT,
			result("accuracy", 0.90, "imdb"),
			result("accuracy", 0.90, "imdb")),
		makeEntry("m2", models.TaskTextClassification, models.FamilyBERT, result("accuracy", 0.80, "imdb")),
		makeEntry("m3", models.TaskTextClassification, models.FamilyBERT, result("accuracy", 0.75, "imdb")),
		makeEntry("m4", models.TaskTextClassification, models.FamilyBERT, result("accuracy", 0.70, "imdb")),
	}

	boards := BuildLeaderboards(entries, testNow)

	require.Len(t, boards, 1)
	twin := boards[0].Entries[0]
	require.Equal(t, "twin", twin.ModelInfo.ModelID)
	assert.Len(t, twin.SecondaryMetrics, 1)
}

func TestBuildLeaderboards_EfficiencyScore(t *testing.T) {
	params := int64(500_000_000)
	entry := makeEntry("sized", models.TaskTextClassification, models.FamilyBERT,
		result("accuracy", 0.90, "imdb"))
	entry.ModelInfo.ParameterCount = &params

	entries := []models.BenchmarkEntry{
		entry,
		makeEntry("m2", models.TaskTextClassification, models.FamilyBERT, result("accuracy", 0.85, "imdb")),
		makeEntry("m3", models.TaskTextClassification, models.FamilyBERT, result("accuracy", 0.80, "imdb")),
		makeEntry("m4", models.TaskTextClassification, models.FamilyBERT, result("accuracy", 0.75, "imdb")),
		makeEntry("m5", models.TaskTextClassification, models.FamilyBERT, result("accuracy", 0.70, "imdb")),
	}

	boards := BuildLeaderboards(entries, testNow)

	require.Len(t, boards, 1)
	sized := boards[0].Entries[0]
	require.Equal(t, "sized", sized.ModelInfo.ModelID)

	// 0.90 per 500 million parameters.
	require.NotNil(t, sized.EfficiencyScore)
	assert.InDelta(t, 0.90/500.0, *sized.EfficiencyScore, 1e-12)

	// Unknown parameter count leaves the score nil.
	assert.Nil(t, boards[0].Entries[1].EfficiencyScore)
}

func TestBuildLeaderboards_MixedMetricNames(t *testing.T) {
	// The board's declared metric comes from the top-ranked entry even
	// when the group mixes metric names.
	entries := []models.BenchmarkEntry{
		makeEntry("m1", models.TaskQuestionAnswering, models.FamilyBERT, result("exact_match", 0.82, "squad")),
		makeEntry("m2", models.TaskQuestionAnswering, models.FamilyBERT, result("f1", 0.91, "squad")),
		makeEntry("m3", models.TaskQuestionAnswering, models.FamilyBERT, result("exact_match", 0.78, "squad")),
		makeEntry("m4", models.TaskQuestionAnswering, models.FamilyBERT, result("f1", 0.88, "squad")),
		makeEntry("m5", models.TaskQuestionAnswering, models.FamilyBERT, result("exact_match", 0.75, "squad")),
	}

	boards := BuildLeaderboards(entries, testNow)

	require.Len(t, boards, 1)
	assert.Equal(t, "m2", boards[0].Entries[0].ModelInfo.ModelID)
	assert.Equal(t, "f1", boards[0].MetricName)
}

func TestBuildLeaderboards_CappedAtTwenty(t *testing.T) {
	var entries []models.BenchmarkEntry
	for i := 0; i < 25; i++ {
		entries = append(entries, makeEntry(
			"model-"+string(rune('a'+i)), models.TaskTextClassification, models.FamilyBERT,
			result("accuracy", float64(i)/100, "imdb")))
	}

	boards := BuildLeaderboards(entries, testNow)

	require.Len(t, boards, 1)
	assert.Len(t, boards[0].Entries, 20)
}

func TestBuildLeaderboards_GroupsByTaskAndDataset(t *testing.T) {
	var entries []models.BenchmarkEntry
	for i := 0; i < 5; i++ {
		entries = append(entries, makeEntry(
			"text-"+string(rune('a'+i)), models.TaskTextClassification, models.FamilyBERT,
			result("accuracy", 0.7+float64(i)*0.02, "imdb")))
	}
	for i := 0; i < 5; i++ {
		entries = append(entries, makeEntry(
			"img-"+string(rune('a'+i)), models.TaskImageClassification, models.FamilyResNet,
			result("accuracy", 0.6+float64(i)*0.02, "imagenet")))
	}

	boards := BuildLeaderboards(entries, testNow)

	require.Len(t, boards, 2)
	assert.Equal(t, models.TaskTextClassification, boards[0].TaskType)
	assert.Equal(t, "imdb", boards[0].DatasetName)
	assert.Equal(t, models.TaskImageClassification, boards[1].TaskType)
	assert.Equal(t, "imagenet", boards[1].DatasetName)
}
