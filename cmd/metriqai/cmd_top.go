package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ssenthilnathan3/metriqai/internal/engine"
	"github.com/ssenthilnathan3/metriqai/internal/models"
)

func newTopCommand() *cobra.Command {
	var inputPath string
	var taskFilter string
	var datasetFilter string
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Render ranked leaderboards as tables",
		Long: `Render ranked leaderboards as tables.

Reads a previously fetched JSON payload with --input, or runs a fresh
ingestion and aggregation pass when no input file is given. Filter the
boards with --task and --dataset; --limit caps the rows per board.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var boards []models.Leaderboard

			if inputPath != "" {
				data, err := os.ReadFile(inputPath)
				if err != nil {
					return fmt.Errorf("reading payload: %w", err)
				}
				var resp models.BenchmarkResponse
				if err := json.Unmarshal(data, &resp); err != nil {
					return fmt.Errorf("parsing payload %s: %w", inputPath, err)
				}
				boards = resp.Leaderboards
			} else {
				cfg, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				logger := slog.Default()
				entries, err := newFetcher(cfg, logger).FetchAll(cmd.Context())
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					return &NoDataError{Message: "no benchmark entries ingested from any source"}
				}
				resp, err := engine.New().Compute(cmd.Context(), entries, time.Now().UTC())
				if err != nil {
					return err
				}
				boards = resp.Leaderboards
			}

			boards = filterBoards(boards, taskFilter, datasetFilter)
			if len(boards) == 0 {
				return &NoDataError{Message: "no leaderboards match the given filters"}
			}

			for _, board := range boards {
				renderBoard(cmd, board, limit)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Read a fetched JSON payload instead of ingesting")
	cmd.Flags().StringVar(&taskFilter, "task", "", "Only show boards for this task type")
	cmd.Flags().StringVar(&datasetFilter, "dataset", "", "Only show boards for this dataset (case-insensitive)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum rows per board")

	return cmd
}

func filterBoards(boards []models.Leaderboard, task, dataset string) []models.Leaderboard {
	var out []models.Leaderboard
	for _, board := range boards {
		if task != "" && string(board.TaskType) != task {
			continue
		}
		if dataset != "" && !strings.EqualFold(board.DatasetName, dataset) {
			continue
		}
		out = append(out, board)
	}
	return out
}

func renderBoard(cmd *cobra.Command, board models.Leaderboard, limit int) {
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s / %s (%s)\n",
		board.TaskType, board.DatasetName, board.MetricName)

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Rank", "Model", "Family", "Value", "Params", "Efficiency"})

	rows := board.Entries
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	for _, entry := range rows {
		params := "-"
		if p := entry.ModelInfo.ParameterCount; p != nil {
			params = formatParams(*p)
		}
		efficiency := "-"
		if e := entry.EfficiencyScore; e != nil {
			efficiency = strconv.FormatFloat(*e, 'f', 4, 64)
		}
		t.AppendRow(table.Row{
			entry.Rank,
			entry.ModelInfo.ModelID,
			entry.ModelInfo.ModelFamily,
			strconv.FormatFloat(entry.PrimaryMetric.Value, 'f', 3, 64),
			params,
			efficiency,
		})
	}
	t.Render()
}

// formatParams renders a parameter count in the familiar B/M shorthand.
func formatParams(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return strconv.FormatFloat(float64(n)/1e9, 'f', 1, 64) + "B"
	case n >= 1_000_000:
		return strconv.FormatFloat(float64(n)/1e6, 'f', 1, 64) + "M"
	default:
		return strconv.FormatInt(n, 10)
	}
}
