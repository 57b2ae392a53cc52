package engine

import (
	"sort"
	"time"

	"github.com/ssenthilnathan3/metriqai/internal/models"
)

// Leaderboard thresholds: a (task, dataset) group needs at least five
// (entry, result) pairs to produce a leaderboard, and each leaderboard
// keeps at most the top twenty models.
const (
	minLeaderboardPairs = 5
	leaderboardLimit    = 20
	paramsPerMillion    = 1_000_000
)

// resultRef is one (entry, evaluation result) pair within a group. The
// index identifies the exact result object so the primary metric can be
// excluded from secondary metrics by identity, not value.
type resultRef struct {
	entry  *models.BenchmarkEntry
	result models.EvaluationResult
	index  int
}

// BuildLeaderboards produces one ranked, deduplicated leaderboard per
// (task type, dataset name) pair with sufficient data. Ranks are
// contiguous from 1 and model identifiers are unique within a board.
func BuildLeaderboards(entries []models.BenchmarkEntry, now time.Time) []models.Leaderboard {
	type groupKey struct {
		task    models.TaskType
		dataset string
	}
	var keyOrder []groupKey
	groups := map[groupKey][]resultRef{}

	refIndex := 0
	for i := range entries {
		entry := &entries[i]
		task := entry.ModelInfo.TaskType
		for _, res := range entry.EvaluationResults {
			key := groupKey{task: task, dataset: res.DatasetName}
			if _, ok := groups[key]; !ok {
				keyOrder = append(keyOrder, key)
			}
			groups[key] = append(groups[key], resultRef{entry: entry, result: res, index: refIndex})
			refIndex++
		}
	}

	var out []models.Leaderboard
	for _, key := range keyOrder {
		pairs := groups[key]
		if len(pairs) < minLeaderboardPairs {
			continue
		}

		// Deduplicate by model, keeping the pair with the highest value.
		// Ties keep the first pair encountered.
		var modelOrder []string
		best := map[string]resultRef{}
		for _, ref := range pairs {
			id := ref.entry.ModelInfo.ModelID
			cur, ok := best[id]
			if !ok {
				best[id] = ref
				modelOrder = append(modelOrder, id)
				continue
			}
			if ref.result.Value > cur.result.Value {
				best[id] = ref
			}
		}

		ranked := make([]resultRef, 0, len(modelOrder))
		for _, id := range modelOrder {
			ranked = append(ranked, best[id])
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].result.Value > ranked[j].result.Value
		})
		if len(ranked) > leaderboardLimit {
			ranked = ranked[:leaderboardLimit]
		}

		boardEntries := make([]models.LeaderboardEntry, 0, len(ranked))
		for rank, primary := range ranked {
			var secondary []models.EvaluationResult
			for _, ref := range pairs {
				if ref.index == primary.index {
					continue
				}
				if ref.entry.ModelInfo.ModelID == primary.entry.ModelInfo.ModelID {
					secondary = append(secondary, ref.result)
				}
			}

			var efficiency *float64
			if p := primary.entry.ModelInfo.ParameterCount; p != nil && *p > 0 {
				v := primary.result.Value / (float64(*p) / paramsPerMillion)
				efficiency = &v
			}

			boardEntries = append(boardEntries, models.LeaderboardEntry{
				Rank:             rank + 1,
				ModelInfo:        primary.entry.ModelInfo,
				PrimaryMetric:    primary.result,
				SecondaryMetrics: secondary,
				EfficiencyScore:  efficiency,
			})
		}
		if len(boardEntries) == 0 {
			continue
		}

		out = append(out, models.Leaderboard{
			TaskType:    key.task,
			DatasetName: key.dataset,
			MetricName:  boardEntries[0].PrimaryMetric.MetricName,
			Entries:     boardEntries,
			LastUpdated: now,
		})
	}
	return out
}
