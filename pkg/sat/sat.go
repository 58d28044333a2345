package sat

import (
	"fmt"
	"strings"
)

// SATSolution is the list of literals reported by a solver, one per variable
type SATSolution []int64

// SAT is a formula over 1-based variables: plain clauses plus cardinality
// constraints. Variables counts the declared (model) variables only; auxiliary
// variables introduced while lowering cardinalities are numbered above it.
type SAT struct {
	Variables uint64
	Clauses   [][]int64
	Cards     []Card
}

// Append adds the clauses and cardinality constraints of other to s.
func (s *SAT) Append(other SAT) {
	s.Clauses = append(s.Clauses, other.Clauses...)
	s.Cards = append(s.Cards, other.Cards...)
	if other.Variables > s.Variables {
		s.Variables = other.Variables
	}
}

// Lower returns an equivalent clause-only formula. Cardinality constraints are
// encoded with sequential counters whose auxiliary variables start right after
// the highest variable in use.
func (s SAT) Lower() SAT {
	if len(s.Cards) == 0 {
		return s
	}

	next := s.Variables
	clauses := make([][]int64, 0, len(s.Clauses)+4*len(s.Cards))
	clauses = append(clauses, s.Clauses...)
	for _, card := range s.Cards {
		clauses = append(clauses, card.lower(&next)...)
	}

	return SAT{
		Variables: next,
		Clauses:   clauses,
	}
}

func (s SAT) ToDIMACS() string {
	lowered := s.Lower()

	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", lowered.Variables, len(lowered.Clauses))
	for _, clause := range lowered.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}
