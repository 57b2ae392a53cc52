package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssenthilnathan3/metriqai/internal/dataset"
	"github.com/ssenthilnathan3/metriqai/internal/engine"
)

func newFetchCommand() *cobra.Command {
	var outputPath string
	var csvPath string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Run one ingestion and aggregation pass and write the payload",
		Long: `Run one ingestion and aggregation pass and write the payload.

Fetches models and published benchmark rows from the configured sources,
classifies them, computes summary statistics, correlations and
leaderboards, and writes the full payload as JSON. Use --csv to also
export the leaderboards as a flat CSV file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger := slog.Default()
			fetcher := newFetcher(cfg, logger)

			entries, err := fetcher.FetchAll(cmd.Context())
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

			out := cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close() //nolint:errcheck
				out = f
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(resp); err != nil {
				return fmt.Errorf("encoding payload: %w", err)
			}

			if csvPath != "" {
				if err := dataset.SaveLeaderboardsCSV(csvPath, resp.Leaderboards); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d leaderboards to %s\n",
					len(resp.Leaderboards), csvPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write JSON payload to a file instead of stdout")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also export leaderboards to a CSV file")

	return cmd
}
