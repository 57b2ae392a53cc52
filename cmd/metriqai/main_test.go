package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssenthilnathan3/metriqai/internal/models"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "fetch")
	assert.Contains(t, names, "top")
}

func TestFilterBoards(t *testing.T) {
	boards := []models.Leaderboard{
		{TaskType: models.TaskTextClassification, DatasetName: "imdb"},
		{TaskType: models.TaskTextClassification, DatasetName: "sst2"},
		{TaskType: models.TaskImageClassification, DatasetName: "ImageNet"},
	}

	t.Run("no_filters", func(t *testing.T) {
		assert.Len(t, filterBoards(boards, "", ""), 3)
	})

	t.Run("by_task", func(t *testing.T) {
		got := filterBoards(boards, "text-classification", "")
		require.Len(t, got, 2)
		assert.Equal(t, "imdb", got[0].DatasetName)
	})

	t.Run("by_dataset_case_insensitive", func(t *testing.T) {
		got := filterBoards(boards, "", "imagenet")
		require.Len(t, got, 1)
		assert.Equal(t, models.TaskImageClassification, got[0].TaskType)
	})

	t.Run("no_match", func(t *testing.T) {
		assert.Empty(t, filterBoards(boards, "translation", ""))
	})
}

func TestFormatParams(t *testing.T) {
	tests := []struct {
		input  int64
		expect string
	}{
		{70_000_000_000, "70.0B"},
		{1_500_000_000, "1.5B"},
		{350_000_000, "350.0M"},
		{999, "999"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expect, formatParams(tt.input))
	}
}
