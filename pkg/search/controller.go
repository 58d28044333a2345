package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/limaJavier/tournament/internal/logging"
	"github.com/limaJavier/tournament/pkg/model"
	"github.com/limaJavier/tournament/pkg/sat"
)

// Observer is notified of every oracle query and every new incumbent.
type Observer interface {
	ObserveQuery(tag Tag, teams uint64, status sat.Status, elapsed time.Duration)
	ObserveIncumbent(tag Tag, teams uint64, objective uint64)
}

type Option func(*Controller)

func WithObserver(observer Observer) Option {
	return func(controller *Controller) {
		controller.observer = observer
	}
}

// WithTag sets the tag reported to the observer.
func WithTag(tag Tag) Option {
	return func(controller *Controller) {
		controller.tag = tag
	}
}

// Controller answers the decision or the optimization variant of a model with
// a single oracle. Queries are strictly sequential; a Controller runs one
// search at a time.
type Controller struct {
	solver   sat.SATSolver
	model    *model.Model
	tag      Tag
	observer Observer
}

func NewController(solver sat.SATSolver, model *model.Model, options ...Option) *Controller {
	controller := &Controller{
		solver: solver,
		model:  model,
		tag:    NewTag("", model.Options()),
	}
	for _, option := range options {
		option(controller)
	}
	return controller
}

// Run optimizes when the model carries an objective and decides otherwise.
func (controller *Controller) Run(ctx context.Context, sc SearchContext) (Result, error) {
	if controller.model.Options().Objective {
		return controller.Optimize(ctx, sc)
	}
	return controller.Decide(ctx, sc)
}

// Decide issues a single query on the base formula.
func (controller *Controller) Decide(ctx context.Context, sc SearchContext) (Result, error) {
	logger := logr.FromContextOrDiscard(ctx).WithValues("teams", controller.model.Instance().Teams(), "tag", controller.tag.Key())

	session, err := sat.NewSession(controller.solver, controller.model.Formula())
	if err != nil {
		return controller.failed(sc), fmt.Errorf("opening session: %w", err)
	}
	defer session.Close()

	if sc.Expired() {
		return controller.timedOut(sc, nil, nil), nil
	}

	answer, err := controller.check(ctx, logger, session, sc, "decision")
	if err != nil {
		return controller.failed(sc), err
	}

	switch answer.Status {
	case sat.Unknown:
		logger.Info("Decision query timed out", "elapsed", sc.Elapsed())
		return controller.timedOut(sc, nil, nil), nil
	case sat.Unsatisfiable:
		logger.Info("Instance is unsatisfiable", "elapsed", sc.Elapsed())
		return controller.unsatisfiable(sc), nil
	}

	schedule, err := controller.model.Extract(answer.Assignment)
	var unassignable *model.UnassignableError
	if errors.As(err, &unassignable) {
		// Failing to place the periods of a week proves nothing
		logger.Info("Could not assign periods", "week", unassignable.Week)
		return controller.timedOut(sc, nil, nil), nil
	}
	if err != nil {
		return controller.failed(sc), fmt.Errorf("extracting schedule: %w", err)
	}

	logger.Info("Schedule found", "elapsed", sc.Elapsed())
	return Result{
		Elapsed:       sc.Elapsed(),
		ProvenOptimal: true,
		Schedule:      schedule,
		Status:        sat.Satisfiable,
		State:         Proved,
	}, nil
}

// Optimize probes the base formula and then binary searches the smallest
// imbalance bound the oracle can satisfy. The schedule of the probe seeds the
// incumbent, so the search starts below its imbalance.
func (controller *Controller) Optimize(ctx context.Context, sc SearchContext) (Result, error) {
	logger := logr.FromContextOrDiscard(ctx).WithValues("teams", controller.model.Instance().Teams(), "tag", controller.tag.Key())

	session, err := sat.NewSession(controller.solver, controller.model.Formula())
	if err != nil {
		return controller.failed(sc), fmt.Errorf("opening session: %w", err)
	}
	defer session.Close()

	if sc.Expired() {
		return controller.timedOut(sc, nil, nil), nil
	}

	// Probing
	probe, err := controller.check(ctx, logger, session, sc, Probing.String())
	if err != nil {
		return controller.failed(sc), err
	}
	switch probe.Status {
	case sat.Unknown:
		logger.Info("Probe timed out", "elapsed", sc.Elapsed())
		return controller.timedOut(sc, nil, nil), nil
	case sat.Unsatisfiable:
		logger.Error(errors.New("base formula is unsatisfiable"), "No schedule exists", "elapsed", sc.Elapsed())
		return controller.unsatisfiable(sc), nil
	}

	incumbent, err := controller.model.Extract(probe.Assignment)
	if err != nil {
		return controller.failed(sc), fmt.Errorf("extracting probe schedule: %w", err)
	}
	best := incumbent.MaxImbalance()
	controller.observeIncumbent(best)
	logger.Info("Probe found a schedule", "imbalance", best)

	// Every team plays an odd number of games, so no schedule goes below 1
	low, high := 0, int(best)-1
	if best <= 1 {
		high = -1
	}

	// Searching
	for low <= high {
		if sc.Expired() {
			logger.Info("Budget exhausted", "low", low, "high", high, "best", best)
			return controller.timedOut(sc, &best, incumbent), nil
		}

		mid := (low + high) / 2
		answer, err := controller.trial(ctx, logger, session, sc, uint64(mid))
		if err != nil {
			return controller.failed(sc), err
		}

		switch answer.Status {
		case sat.Unknown:
			logger.Info("Trial timed out", "bound", mid, "best", best)
			return controller.timedOut(sc, &best, incumbent), nil
		case sat.Unsatisfiable:
			low = mid + 1
		case sat.Satisfiable:
			schedule, err := controller.model.Extract(answer.Assignment)
			if err != nil {
				return controller.failed(sc), fmt.Errorf("extracting schedule under bound %d: %w", mid, err)
			}
			// The schedule may beat the bound it was asked for
			incumbent, best = schedule, schedule.MaxImbalance()
			controller.observeIncumbent(best)
			high = int(best) - 1
		}
		logger.V(logging.DEBUG).Info("Trial finished", "bound", mid, "status", answer.Status, "low", low, "high", high)
	}

	logger.Info("Optimum proved", "objective", best, "elapsed", sc.Elapsed())
	return Result{
		Elapsed:       sc.Elapsed(),
		ProvenOptimal: true,
		Objective:     &best,
		Schedule:      incumbent,
		Status:        sat.Satisfiable,
		State:         Proved,
	}, nil
}

// trial checks the base formula under an imbalance bound and retracts the
// bound afterwards.
func (controller *Controller) trial(ctx context.Context, logger logr.Logger, session sat.Session, sc SearchContext, bound uint64) (sat.Result, error) {
	session.Push()
	if err := session.Add(controller.model.Bound(bound)); err != nil {
		_ = session.Pop()
		return sat.Result{}, fmt.Errorf("adding bound %d: %w", bound, err)
	}

	answer, err := controller.check(ctx, logger, session, sc, Searching.String())
	if popErr := session.Pop(); err == nil && popErr != nil {
		err = fmt.Errorf("retracting bound %d: %w", bound, popErr)
	}
	return answer, err
}

func (controller *Controller) check(ctx context.Context, logger logr.Logger, session sat.Session, sc SearchContext, phase string) (sat.Result, error) {
	budget := sc.Remaining()
	started := sc.now()

	answer, err := session.Check(ctx, budget)
	elapsed := sc.now().Sub(started)
	if err != nil {
		return sat.Result{}, fmt.Errorf("%s query: %w", phase, err)
	}

	logger.V(logging.DEBUG).Info("Query finished", "phase", phase, "budget", budget, "elapsed", elapsed, "status", answer.Status)
	if controller.observer != nil {
		controller.observer.ObserveQuery(controller.tag, controller.model.Instance().Teams(), answer.Status, elapsed)
	}
	return answer, nil
}

func (controller *Controller) observeIncumbent(objective uint64) {
	if controller.observer != nil {
		controller.observer.ObserveIncumbent(controller.tag, controller.model.Instance().Teams(), objective)
	}
}

func (controller *Controller) unsatisfiable(sc SearchContext) Result {
	return Result{
		Elapsed:       sc.Elapsed(),
		ProvenOptimal: true,
		Status:        sat.Unsatisfiable,
		State:         Proved,
	}
}

func (controller *Controller) timedOut(sc SearchContext, objective *uint64, schedule model.Schedule) Result {
	status := sat.Unknown
	if schedule != nil {
		status = sat.Satisfiable
	}
	return Result{
		Elapsed:   min(sc.Elapsed(), sc.Budget),
		Objective: objective,
		Schedule:  schedule,
		Status:    status,
		State:     TimedOut,
	}
}

func (controller *Controller) failed(sc SearchContext) Result {
	return Result{
		Elapsed: sc.Elapsed(),
		Status:  sat.Unknown,
		State:   TimedOut,
	}
}
