package sat

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"
)

type SATSolver interface {
	// Solve decides instance within budget. Running out of budget is not an
	// error: the result is Unknown. Errors wrap ErrSolverFailure.
	Solve(ctx context.Context, instance SAT, budget time.Duration) (Result, error)
}

// Solver constructors by name. In-process solvers ignore the executable path.
var solvers = map[string]func(path string) SATSolver{
	"gini":          func(string) SATSolver { return NewGiniSolver() },
	"gophersat":     func(string) SATSolver { return NewGophersatSolver() },
	"kissat":        NewKissatSolver,
	"cadical":       NewCadicalSolver,
	"cryptominisat": NewCryptominisatSolver,
	"minisat":       NewMinisatSolver,
	"glucose":       NewGlucoseSolver,
	"slime":         NewSlimeSolver,
}

// Solvers lists the valid solver names in alphabetical order.
func Solvers() []string {
	names := lo.Keys(solvers)
	slices.Sort(names)
	return names
}

// NewSolver builds the named solver. paths maps solver names to executables;
// a missing entry falls back to the solver name, resolved through PATH.
func NewSolver(name string, paths map[string]string) (SATSolver, error) {
	constructor, ok := solvers[name]
	if !ok {
		return nil, fmt.Errorf("%q is not a valid solver, allowed values are %v", name, Solvers())
	}
	return constructor(lo.ValueOr(paths, name, "")), nil
}

// effectiveBudget shortens budget to the deadline of ctx, if any.
func effectiveBudget(ctx context.Context, budget time.Duration) time.Duration {
	if deadline, ok := ctx.Deadline(); ok {
		budget = min(budget, time.Until(deadline))
	}
	if ctx.Err() != nil {
		return 0
	}
	return budget
}
