package sat

import (
	"context"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// giniSolver runs the go-air/gini CDCL solver in process. Its sessions are
// incremental: every scope gets a fresh selector literal. Scoped clauses are
// added as "clause or not selector", the selector is assumed on Check and
// fixed false on Pop, so learned clauses survive between trials.
type giniSolver struct{}

func NewGiniSolver() SATSolver {
	return &giniSolver{}
}

func (solver *giniSolver) Solve(ctx context.Context, instance SAT, budget time.Duration) (Result, error) {
	session, err := solver.newSession(instance)
	if err != nil {
		return Result{}, err
	}
	defer session.Close()
	return session.Check(ctx, budget)
}

func (solver *giniSolver) newSession(base SAT) (Session, error) {
	g := gini.NewV(int(base.Variables))
	// Reserve every declared variable so that scope selectors and
	// auxiliary variables are always numbered above them
	for g.MaxVar() < z.Var(base.Variables) {
		g.Lit()
	}

	session := &giniSession{
		g:         g,
		variables: base.Variables,
	}
	if err := session.Add(base); err != nil {
		return nil, err
	}
	return session, nil
}

type giniScope struct {
	selector z.Lit // z.LitNull until the scope receives a clause
	empty      bool  // the scope holds the empty clause
}

type giniSession struct {
	g         *gini.Gini
	variables uint64
	scopes    []giniScope
	failed    bool // the base holds the empty clause
}

func (session *giniSession) Push() {
	session.scopes = append(session.scopes, giniScope{selector: z.LitNull})
}

func (session *giniSession) Add(fragment SAT) error {
	var scope *giniScope
	if len(session.scopes) > 0 {
		scope = &session.scopes[len(session.scopes)-1]
		if scope.selector == z.LitNull && (len(fragment.Clauses) > 0 || len(fragment.Cards) > 0) {
			scope.selector = session.g.Lit()
		}
	}

	// Auxiliary variables go above everything gini has seen so far
	next := max(uint64(session.g.MaxVar()), session.variables)

	clauses := fragment.Clauses
	for _, card := range fragment.Cards {
		clauses = append(clauses[:len(clauses):len(clauses)], card.lower(&next)...)
	}

	for _, clause := range clauses {
		if len(clause) == 0 {
			if scope == nil {
				session.failed = true
			} else {
				scope.empty = true
			}
			continue
		}

		for _, literal := range clause {
			session.g.Add(z.Dimacs2Lit(int(literal)))
		}
		if scope != nil {
			session.g.Add(scope.selector.Not())
		}
		session.g.Add(z.LitNull)
	}
	return nil
}

func (session *giniSession) Pop() error {
	if len(session.scopes) == 0 {
		return ErrNoScope
	}
	scope := session.scopes[len(session.scopes)-1]
	session.scopes = session.scopes[:len(session.scopes)-1]
	if scope.selector != z.LitNull {
		// Retires the scope for good, its clauses become satisfied
		session.g.Add(scope.selector.Not())
		session.g.Add(z.LitNull)
	}
	return nil
}

func (session *giniSession) Check(ctx context.Context, budget time.Duration) (Result, error) {
	if session.failed {
		return Result{Status: Unsatisfiable}, nil
	}

	assumptions := make([]z.Lit, 0, len(session.scopes))
	for _, scope := range session.scopes {
		if scope.empty {
			return Result{Status: Unsatisfiable}, nil
		}
		if scope.selector != z.LitNull {
			assumptions = append(assumptions, scope.selector)
		}
	}

	budget = effectiveBudget(ctx, budget)
	if budget <= 0 {
		return Result{Status: Unknown}, nil
	}

	session.g.Assume(assumptions...)
	switch session.g.Try(budget) {
	case 1:
		assignment := make(Assignment, session.variables+1)
		for variable := uint64(1); variable <= session.variables; variable++ {
			assignment[variable] = session.g.Value(z.Var(variable).Pos())
		}
		return Result{Status: Satisfiable, Assignment: assignment}, nil
	case -1:
		return Result{Status: Unsatisfiable}, nil
	default:
		return Result{Status: Unknown}, nil
	}
}

func (session *giniSession) Close() error {
	session.scopes = nil
	return nil
}
