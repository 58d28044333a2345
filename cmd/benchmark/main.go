package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/go-logr/logr"
	"github.com/limaJavier/tournament/internal/logging"
	"github.com/limaJavier/tournament/internal/metrics"
	"github.com/limaJavier/tournament/pkg/model"
	"github.com/limaJavier/tournament/pkg/sat"
	"github.com/limaJavier/tournament/pkg/search"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

const (
	resultsFile = "benchmark_results.csv"
	metricsFile = "benchmark_results.prom"
)

type ResultType int

const (
	solved ResultType = iota
	unsatisfiable
	timeout
	failed
)

var resultTypes = map[ResultType]string{
	solved:        "solved",
	unsatisfiable: "unsatisfiable",
	timeout:       "timeout",
	failed:        "failed",
}

type Configuration struct {
	Solver  string
	Options model.Options
}

func (configuration Configuration) Tag() search.Tag {
	return search.NewTag(configuration.Solver, configuration.Options)
}

type BenchmarkResult struct {
	Teams         int
	Configuration Configuration
	Variables     uint64
	Clauses       int
	Cards         int
	Duration      int64 // milliseconds
	Objective     *uint64
	Optimal       bool
	Result        ResultType
}

func main() {
	teams := pflag.IntSlice("teams", []int{4, 6, 8, 10, 12}, "Team counts to benchmark")
	solvers := pflag.StringSlice("solvers", []string{"gini", "gophersat"}, fmt.Sprintf("Solvers to benchmark, any of %v", sat.Solvers()))
	budget := pflag.Duration("budget", 300*time.Second, "Wall-clock budget of every run")
	parallelism := pflag.Int("parallelism", runtime.NumCPU(), "Runs solved at the same time")
	out := pflag.String("out", resultsFile, "CSV output file")
	metricsOut := pflag.String("metrics-file", metricsFile, "Prometheus textfile output")
	pflag.Parse()

	logger := lo.Must(logging.NewLogger("info", true))
	ctx := logr.NewContext(context.Background(), logger)

	registry := metrics.New()
	results, runErr := run(ctx, *teams, getConfigurations(*solvers), *budget, *parallelism, registry)

	toCsv(*out, results)
	if err := registry.WriteToTextfile(*metricsOut); err != nil {
		log.Fatalf("cannot write metrics: %v", err)
	}
	if runErr != nil {
		log.Fatalf("benchmark finished with failures: %v", runErr)
	}
}

// getConfigurations lists every valid combination of encoding, symmetry
// breaking and objective for each solver.
func getConfigurations(solvers []string) []Configuration {
	options := []model.Options{
		{Encoding: model.PairingEncoding},
		{Encoding: model.PairingEncoding, LabelFixing: true},
		{Encoding: model.PairingEncoding, Objective: true},
		{Encoding: model.PairingEncoding, LabelFixing: true, Objective: true},
		{Encoding: model.PairingEncoding, PostponedPeriods: true},
		{Encoding: model.PairingEncoding, PostponedPeriods: true, LabelFixing: true},
		{Encoding: model.SlotEncoding},
		{Encoding: model.SlotEncoding, LabelFixing: true, HomeAwayOrder: true, PairKey: model.OrderedPairKey},
		{Encoding: model.SlotEncoding, Objective: true},
		{Encoding: model.SlotEncoding, LabelFixing: true, Objective: true},
	}

	configurations := make([]Configuration, 0, len(solvers)*len(options))
	for _, solver := range solvers {
		for _, option := range options {
			configurations = append(configurations, Configuration{Solver: solver, Options: option})
		}
	}
	return configurations
}

// run solves every instance under every configuration. Runs are independent
// and at most parallelism of them are in flight. A failed run is kept as a
// failed result and does not stop the others; the failures are returned
// joined along with every result.
func run(ctx context.Context, teams []int, configurations []Configuration, budget time.Duration, parallelism int, registry *metrics.Metrics) ([]BenchmarkResult, error) {
	logger := logr.FromContextOrDiscard(ctx)
	results := make([]BenchmarkResult, len(teams)*len(configurations))
	errs := make([]error, len(results))

	var group errgroup.Group
	group.SetLimit(parallelism)
	for i, n := range teams {
		for j, configuration := range configurations {
			index := i*len(configurations) + j
			group.Go(func() error {
				logger.Info("Benchmarking", "teams", n, "tag", configuration.Tag().Key())
				result, err := measure(ctx, n, configuration, budget, registry)
				if err != nil {
					err = fmt.Errorf("%d teams with %s: %w", n, configuration.Tag().Key(), err)
					logger.Error(err, "Run failed", "teams", n, "tag", configuration.Tag().Key())
					result = BenchmarkResult{Teams: n, Configuration: configuration, Result: failed}
				}
				results[index], errs[index] = result, err
				return nil
			})
		}
	}

	_ = group.Wait()
	return results, errors.Join(errs...)
}

func measure(ctx context.Context, teams int, configuration Configuration, budget time.Duration, registry *metrics.Metrics) (BenchmarkResult, error) {
	instance, err := model.NewInstance(teams)
	if err != nil {
		return BenchmarkResult{}, err
	}
	m, err := model.NewModel(instance, configuration.Options)
	if err != nil {
		return BenchmarkResult{}, err
	}
	solver, err := sat.NewSolver(configuration.Solver, nil)
	if err != nil {
		return BenchmarkResult{}, err
	}

	tag := configuration.Tag()
	controller := search.NewController(solver, m, search.WithTag(tag), search.WithObserver(registry))
	searchResult, err := controller.Run(ctx, search.NewSearchContext(budget))
	if err != nil {
		return BenchmarkResult{}, err
	}
	registry.ObserveResult(tag, instance.Teams(), searchResult)

	formula := m.Formula()
	return BenchmarkResult{
		Teams:         teams,
		Configuration: configuration,
		Variables:     formula.Variables,
		Clauses:       len(formula.Clauses),
		Cards:         len(formula.Cards),
		Duration:      searchResult.Elapsed.Milliseconds(),
		Objective:     searchResult.Objective,
		Optimal:       searchResult.ProvenOptimal,
		Result:        classify(searchResult),
	}, nil
}

func classify(result search.Result) ResultType {
	switch {
	case result.Schedule != nil:
		return solved
	case result.Status == sat.Unsatisfiable:
		return unsatisfiable
	default:
		return timeout
	}
}

func toCsv(path string, results []BenchmarkResult) {
	file, err := os.Create(path)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Teams", "Solver", "Encoding", "Strategy", "SymmetryBreaking", "Objective", "Variables", "Clauses", "Cards", "Duration(ms)", "Imbalance", "Optimal", "Result"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		tag := result.Configuration.Tag()
		imbalance := ""
		if result.Objective != nil {
			imbalance = fmt.Sprintf("%d", *result.Objective)
		}
		record := []string{
			fmt.Sprintf("%d", result.Teams),
			tag.Solver,
			result.Configuration.Options.Encoding.String(),
			tag.Strategy,
			fmt.Sprintf("%v", tag.SymmetryBreaking),
			fmt.Sprintf("%v", tag.Objective),
			fmt.Sprintf("%d", result.Variables),
			fmt.Sprintf("%d", result.Clauses),
			fmt.Sprintf("%d", result.Cards),
			fmt.Sprintf("%d", result.Duration),
			imbalance,
			fmt.Sprintf("%v", result.Optimal),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}
