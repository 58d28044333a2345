package sat

import (
	"context"
	"fmt"
	"time"

	"github.com/crillab/gophersat/solver"
	"github.com/samber/lo"
)

// gophersatSolver hands cardinality constraints to crillab/gophersat natively.
// gophersat cannot be interrupted, so a query that outlives its budget is
// reported as Unknown and left to finish in the background.
type gophersatSolver struct{}

func NewGophersatSolver() SATSolver {
	return &gophersatSolver{}
}

func (adapter *gophersatSolver) Solve(ctx context.Context, instance SAT, budget time.Duration) (Result, error) {
	budget = effectiveBudget(ctx, budget)
	if budget <= 0 {
		return Result{Status: Unknown}, nil
	}

	fixed, reduced, ok := fixUnits(instance)
	if !ok {
		return Result{Status: Unsatisfiable}, nil
	}

	constraints := make([]solver.CardConstr, 0, len(reduced.Clauses)+len(reduced.Cards))
	for _, clause := range reduced.Clauses {
		constraints = append(constraints, solver.AtLeast1(toInts(clause)...))
	}
	for _, card := range reduced.Cards {
		constraints = append(constraints, solver.CardConstr{Lits: toInts(card.Lits), AtLeast: card.AtLeast})
	}
	if len(constraints) == 0 {
		return Result{Status: Satisfiable, Assignment: fixed.complete(instance.Variables, nil)}, nil
	}

	type outcome struct {
		status solver.Status
		model  []bool
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("%w: gophersat panicked: %v", ErrSolverFailure, r)}
			}
		}()
		s := solver.New(solver.ParseCardConstrs(constraints))
		status := s.Solve()
		var model []bool
		if status == solver.Sat {
			model = s.Model()
		}
		done <- outcome{status: status, model: model}
	}()

	timer := time.NewTimer(budget)
	defer timer.Stop()

	select {
	case out := <-done:
		if out.err != nil {
			return Result{}, out.err
		}
		switch out.status {
		case solver.Sat:
			assignment := fixed.complete(instance.Variables, out.model)
			if err := assignment.Satisfies(instance); err != nil {
				return Result{}, fmt.Errorf("%w: gophersat model: %v", ErrSolverFailure, err)
			}
			return Result{Status: Satisfiable, Assignment: assignment}, nil
		case solver.Unsat:
			return Result{Status: Unsatisfiable}, nil
		default:
			return Result{Status: Unknown}, nil
		}
	case <-timer.C:
		return Result{Status: Unknown}, nil
	case <-ctx.Done():
		return Result{Status: Unknown}, nil
	}
}

func toInts(lits []int64) []int {
	return lo.Map(lits, func(lit int64, _ int) int { return int(lit) })
}

// rootValues holds the variables forced at the root, by literal sign.
type rootValues map[uint64]bool

func (values rootValues) literal(lit int64) (holds, known bool) {
	value, known := values[uint64(max(lit, -lit))]
	return value == (lit > 0), known
}

// complete merges the solver model (model[i] is variable i+1) with the root
// values.
func (values rootValues) complete(variables uint64, model []bool) Assignment {
	assignment := make(Assignment, variables+1)
	for i, value := range model {
		if uint64(i+1) <= variables {
			assignment[i+1] = value
		}
	}
	for variable, value := range values {
		if variable <= variables {
			assignment[variable] = value
		}
	}
	return assignment
}

// fixUnits propagates every constraint forcing all of its literals until a
// fixpoint, then returns the residual formula without fixed literals. gophersat
// mishandles unit clauses mixed with cardinality constraints, so none reach
// it. ok is false when propagation runs into a conflict.
func fixUnits(instance SAT) (values rootValues, reduced SAT, ok bool) {
	values = make(rootValues)
	cards := make([]Card, 0, len(instance.Clauses)+len(instance.Cards))
	for _, clause := range instance.Clauses {
		cards = append(cards, Card{Lits: clause, AtLeast: 1})
	}
	cards = append(cards, instance.Cards...)

	for changed := true; changed; {
		changed = false
		residual := cards[:0:0]
		for _, card := range cards {
			lits := make([]int64, 0, len(card.Lits))
			atLeast := card.AtLeast
			for _, lit := range card.Lits {
				holds, known := values.literal(lit)
				switch {
				case !known:
					lits = append(lits, lit)
				case holds:
					atLeast--
				}
			}

			card = Card{Lits: lits, AtLeast: atLeast}
			switch {
			case card.Trivial():
				continue
			case card.Infeasible():
				return nil, SAT{}, false
			case card.AtLeast == len(card.Lits):
				for _, lit := range card.Lits {
					if holds, known := values.literal(lit); known && !holds {
						return nil, SAT{}, false
					}
					values[uint64(max(lit, -lit))] = lit > 0
				}
				changed = true
				continue
			}
			residual = append(residual, card)
		}
		cards = residual
	}

	reduced = SAT{Variables: instance.Variables}
	for _, card := range cards {
		if card.AtLeast == 1 {
			reduced.Clauses = append(reduced.Clauses, card.Lits)
		} else {
			reduced.Cards = append(reduced.Cards, card)
		}
	}
	return values, reduced, true
}
