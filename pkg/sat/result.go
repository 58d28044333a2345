package sat

import (
	"errors"
	"fmt"
)

// ErrSolverFailure marks an oracle that crashed or could not be reached. It is
// never used for a timeout, which is reported as Unknown.
var ErrSolverFailure = errors.New("solver failure")

type Status int

const (
	Unknown Status = iota
	Satisfiable
	Unsatisfiable
)

func (status Status) String() string {
	switch status {
	case Satisfiable:
		return "SAT"
	case Unsatisfiable:
		return "UNSAT"
	default:
		return "UNKNOWN"
	}
}

type Result struct {
	Status     Status
	Assignment Assignment // only set when Status is Satisfiable
}

// Assignment maps every declared variable (1-based) to its value.
type Assignment []bool

// NewAssignment keeps the positive literals of a solution whose variable is
// declared; auxiliary variables are dropped.
func NewAssignment(variables uint64, solution SATSolution) Assignment {
	assignment := make(Assignment, variables+1)
	for _, literal := range solution {
		if literal > 0 && uint64(literal) <= variables {
			assignment[literal] = true
		}
	}
	return assignment
}

func (assignment Assignment) Variables() uint64 {
	if len(assignment) == 0 {
		return 0
	}
	return uint64(len(assignment) - 1)
}

func (assignment Assignment) Value(variable uint64) bool {
	return variable < uint64(len(assignment)) && assignment[variable]
}

// Holds evaluates a literal.
func (assignment Assignment) Holds(literal int64) bool {
	if literal < 0 {
		return !assignment.Value(uint64(-literal))
	}
	return assignment.Value(uint64(literal))
}

// Satisfies checks every clause and cardinality constraint of instance.
func (assignment Assignment) Satisfies(instance SAT) error {
	for i, clause := range instance.Clauses {
		if !AtLeast(1, clause...).Satisfied(assignment) {
			return fmt.Errorf("clause %d %v is not satisfied", i, clause)
		}
	}
	for i, card := range instance.Cards {
		if !card.Satisfied(assignment) {
			return fmt.Errorf("cardinality constraint %d (at least %d of %v) is not satisfied", i, card.AtLeast, card.Lits)
		}
	}
	return nil
}
