// Package dataset exports derived benchmark views to flat files.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ssenthilnathan3/metriqai/internal/models"
)

// leaderboardHeader is the column layout of an exported leaderboard.
var leaderboardHeader = []string{
	"task_type", "dataset_name", "rank", "model_id", "model_family",
	"metric_name", "value", "parameter_count", "efficiency_score",
}

// WriteLeaderboardsCSV writes every leaderboard entry as one CSV row.
func WriteLeaderboardsCSV(w io.Writer, boards []models.Leaderboard) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(leaderboardHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, board := range boards {
		for _, entry := range board.Entries {
			params := ""
			if p := entry.ModelInfo.ParameterCount; p != nil {
				params = strconv.FormatInt(*p, 10)
			}
			efficiency := ""
			if e := entry.EfficiencyScore; e != nil {
				efficiency = strconv.FormatFloat(*e, 'f', -1, 64)
			}

			row := []string{
				string(board.TaskType),
				board.DatasetName,
				strconv.Itoa(entry.Rank),
				entry.ModelInfo.ModelID,
				string(entry.ModelInfo.ModelFamily),
				entry.PrimaryMetric.MetricName,
				strconv.FormatFloat(entry.PrimaryMetric.Value, 'f', -1, 64),
				params,
				efficiency,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("csv: write row: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return nil
}

// SaveLeaderboardsCSV writes the leaderboards to a file.
func SaveLeaderboardsCSV(path string, boards []models.Leaderboard) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	return WriteLeaderboardsCSV(f, boards)
}
