package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-logr/logr"
	"github.com/limaJavier/tournament/internal/config"
	"github.com/limaJavier/tournament/internal/logging"
	"github.com/limaJavier/tournament/internal/metrics"
	"github.com/limaJavier/tournament/internal/store"
	"github.com/limaJavier/tournament/pkg/model"
	"github.com/limaJavier/tournament/pkg/sat"
	"github.com/limaJavier/tournament/pkg/search"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type solveOptions struct {
	teams         []int
	configPath    string
	labelFixing   bool
	homeAwayOrder bool
	orderedKey    bool
	objective     bool
	postponed     bool
	save          bool
}

func newSolveCommand(out io.Writer) *cobra.Command {
	opts := &solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Schedule one or more tournaments",
		Example: `  tournament solve --teams 6,8,10 --objective --label-fixing
  tournament solve -n 12 --solver kissat --encoding slot --home-away-order --budget 5m --save`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd, opts, out)
		},
	}

	flags := cmd.Flags()
	flags.IntSliceVarP(&opts.teams, "teams", "n", nil, "Even team counts to schedule")
	flags.StringVar(&opts.configPath, "config", "", "Path to a YAML or JSON configuration file")
	flags.BoolVar(&opts.labelFixing, "label-fixing", false, "Team 1 hosts team 2 in the first slot")
	flags.BoolVar(&opts.homeAwayOrder, "home-away-order", false, "The home team has the smaller label in every game (slot encoding)")
	flags.BoolVar(&opts.orderedKey, "ordered-key", false, "Tell games apart by ordered pair (requires --home-away-order)")
	flags.BoolVar(&opts.objective, "objective", false, "Minimize the home/away imbalance")
	flags.BoolVar(&opts.postponed, "postponed", false, "Assign periods after solving (pairing encoding, correctness is not guaranteed)")
	flags.BoolVar(&opts.save, "save", false, "Merge the records into <output-dir>/<teams>.json")

	// Bound to the configuration keys of the same name
	flags.String("solver", "gini", fmt.Sprintf("SAT solver, one of %v", sat.Solvers()))
	flags.String("encoding", model.PairingEncoding.String(), `Variable layout, "pairing" or "slot"`)
	flags.Duration("budget", 300*time.Second, "Wall-clock budget of every instance")
	flags.String("output-dir", "res", "Directory of the result store")
	flags.String("format", "json", `Output format, "json" or "yaml"`)
	flags.String("log-level", "info", "Log level")
	flags.Bool("development", false, "Human readable logs")
	flags.String("metrics-file", "", "Write Prometheus metrics to this file when done")

	_ = cmd.MarkFlagRequired("teams")
	return cmd
}

func runSolve(cmd *cobra.Command, opts *solveOptions, out io.Writer) error {
	cfg, err := config.Load(opts.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger(cfg.LogLevel, cfg.Development)
	if err != nil {
		return err
	}
	ctx := logr.NewContext(cmd.Context(), logger)

	encoding := lo.Must(model.ParseEncoding(cfg.Encoding)) // validated by config.Load
	options := model.Options{
		Encoding:         encoding,
		LabelFixing:      opts.labelFixing,
		HomeAwayOrder:    opts.homeAwayOrder,
		PairKey:          lo.Ternary(opts.orderedKey, model.OrderedPairKey, model.UnorderedPairKey),
		Objective:        opts.objective,
		PostponedPeriods: opts.postponed,
	}
	solver, err := cfg.NewSolver("")
	if err != nil {
		return err
	}

	tag := search.NewTag(cfg.Solver, options)
	registry := metrics.New()
	results := make(map[uint64]store.Records)
	var errs []error

	for _, teams := range lo.Uniq(opts.teams) {
		record, err := solveInstance(ctx, teams, options, solver, tag, cfg.Budget, registry)
		if record == nil {
			errs = append(errs, fmt.Errorf("solving %d teams: %w", teams, err))
			continue
		}
		results[uint64(teams)] = store.Records{tag.Key(): *record}
		if err != nil {
			// The record of a failed search is reported but never stored
			logger.Error(err, "Search failed, reporting it without a schedule", "teams", teams, "tag", tag.Key())
			errs = append(errs, fmt.Errorf("solving %d teams: %w", teams, err))
			continue
		}

		if opts.save {
			if err := store.New(cfg.OutputDir).Save(uint64(teams), tag, *record); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if err := encode(out, cfg.Format, results); err != nil {
		errs = append(errs, err)
	}
	if cfg.MetricsFile != "" {
		if err := registry.WriteToTextfile(cfg.MetricsFile); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if code := exitCode(results); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

// exitCode summarizes the records of a run regardless of their order: 20 when
// any instance was proven infeasible, otherwise 0 when any instance ran out of
// budget without a schedule, otherwise 10.
func exitCode(results map[uint64]store.Records) int {
	records := lo.FlatMap(lo.Values(results), func(records store.Records, _ int) []search.Record {
		return lo.Values(records)
	})
	switch {
	case lo.ContainsBy(records, func(record search.Record) bool { return record.Optimal && len(record.Sol) == 0 }):
		return exitUnsatisfiable
	case lo.ContainsBy(records, func(record search.Record) bool { return len(record.Sol) == 0 }):
		return 0
	}
	return exitSatisfiable
}

// solveInstance returns a nil record when the instance could not be set up,
// and the record of the failed search along with the error when the search
// itself failed.
func solveInstance(ctx context.Context, teams int, options model.Options, solver sat.SATSolver, tag search.Tag, budget time.Duration, registry *metrics.Metrics) (*search.Record, error) {
	instance, err := model.NewInstance(teams)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModel(instance, options)
	if err != nil {
		return nil, err
	}

	controller := search.NewController(solver, m, search.WithTag(tag), search.WithObserver(registry))
	result, err := controller.Run(ctx, search.NewSearchContext(budget))
	registry.ObserveResult(tag, instance.Teams(), result)
	record := result.Record(budget)
	return &record, err
}

func encode(out io.Writer, format string, value any) error {
	if format == "yaml" {
		encoder := yaml.NewEncoder(out)
		defer encoder.Close()
		return encoder.Encode(value)
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
