package sat

import (
	"context"
	"errors"
	"time"
)

var ErrNoScope = errors.New("pop without a matching push")

// Session is a base formula plus a stack of scopes. Constraints added after a
// Push are discarded by the matching Pop; constraints added with no open scope
// become part of the base. A Session serves one query at a time.
type Session interface {
	Push()
	Add(fragment SAT) error
	Pop() error
	Check(ctx context.Context, budget time.Duration) (Result, error)
	Close() error
}

// incrementalSolver is implemented by solvers able to retract scoped
// constraints without rebuilding the whole formula.
type incrementalSolver interface {
	SATSolver
	newSession(base SAT) (Session, error)
}

// NewSession opens a session over base. Incremental solvers keep learned state
// between checks; any other solver is handed the conjunction of base and the
// open scopes on every Check.
func NewSession(solver SATSolver, base SAT) (Session, error) {
	if incremental, ok := solver.(incrementalSolver); ok {
		return incremental.newSession(base)
	}
	owned := SAT{Variables: base.Variables}
	owned.Append(base)
	return &stackSession{
		solver: solver,
		scopes: []SAT{owned},
	}, nil
}

type stackSession struct {
	solver SATSolver
	scopes []SAT // scopes[0] is the base
}

func (session *stackSession) Push() {
	session.scopes = append(session.scopes, SAT{Variables: session.scopes[0].Variables})
}

func (session *stackSession) Add(fragment SAT) error {
	session.scopes[len(session.scopes)-1].Append(fragment)
	return nil
}

func (session *stackSession) Pop() error {
	if len(session.scopes) == 1 {
		return ErrNoScope
	}
	session.scopes = session.scopes[:len(session.scopes)-1]
	return nil
}

func (session *stackSession) Check(ctx context.Context, budget time.Duration) (Result, error) {
	instance := SAT{Variables: session.scopes[0].Variables}
	for _, scope := range session.scopes {
		instance.Append(scope)
	}
	return session.solver.Solve(ctx, instance, budget)
}

func (session *stackSession) Close() error {
	session.scopes = nil
	return nil
}
