package main

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/limaJavier/tournament/internal/metrics"
	"github.com/limaJavier/tournament/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurationsAreValid(t *testing.T) {
	instance, _ := model.NewInstance(6)
	configurations := getConfigurations([]string{"gini", "kissat"})

	assert.Len(t, configurations, 20)
	keys := make(map[string]bool)
	for _, configuration := range configurations {
		_, err := model.NewModel(instance, configuration.Options)
		assert.NoError(t, err, configuration.Tag().Key())
		keys[configuration.Tag().Key()] = true
	}
	assert.Len(t, keys, 20)
}

func TestRun(t *testing.T) {
	//** Arrange
	configurations := []Configuration{
		{Solver: "gini", Options: model.Options{LabelFixing: true}},
		{Solver: "gini", Options: model.Options{LabelFixing: true, Objective: true}},
	}
	registry := metrics.New()

	//** Act
	results, err := run(context.Background(), []int{4, 6}, configurations, time.Minute, 2, registry)

	//** Assert
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, unsatisfiable, results[0].Result)
	assert.Equal(t, unsatisfiable, results[1].Result)
	assert.Equal(t, solved, results[2].Result)
	assert.Equal(t, solved, results[3].Result)
	assert.Equal(t, uint64(1), *results[3].Objective)
	assert.True(t, results[3].Optimal)
	assert.Equal(t, 6, results[3].Teams)
}

func TestRunKeepsResultsOfOtherRuns(t *testing.T) {
	//** Arrange
	configurations := []Configuration{
		{Solver: "z3"},
		{Solver: "gini", Options: model.Options{LabelFixing: true}},
	}

	//** Act
	results, err := run(context.Background(), []int{6}, configurations, time.Minute, 1, metrics.New())

	//** Assert
	assert.ErrorContains(t, err, "z3")
	require.Len(t, results, 2)
	assert.Equal(t, failed, results[0].Result)
	assert.Equal(t, 6, results[0].Teams)
	assert.Equal(t, solved, results[1].Result)
}

func TestToCsv(t *testing.T) {
	path := filepath.Join(t.TempDir(), resultsFile)
	objective := uint64(1)
	results := []BenchmarkResult{
		{Teams: 4, Configuration: Configuration{Solver: "gini"}, Variables: 60, Result: unsatisfiable, Optimal: true},
		{Teams: 6, Configuration: Configuration{Solver: "gini", Options: model.Options{Objective: true}}, Objective: &objective, Optimal: true, Result: solved},
	}

	toCsv(path, results)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Teams", rows[0][0])
	assert.Equal(t, []string{"4", "gini", "pairing", "pairing", "false", "false", "60", "0", "0", "0", "", "true", "unsatisfiable"}, rows[1])
	assert.Equal(t, "1", rows[2][10])
	assert.Equal(t, "solved", rows[2][12])
}
