package sat

import "github.com/samber/lo"

// Below this size an at-most-one constraint is cheaper as pairwise clauses
// than as a counter.
const pairwiseLimit = 6

// Card states that at least AtLeast of Lits must be true. A clause is a Card
// with AtLeast = 1.
type Card struct {
	Lits    []int64
	AtLeast int
}

func AtLeast(k int, lits ...int64) Card {
	return Card{Lits: append([]int64(nil), lits...), AtLeast: k}
}

// AtMost is encoded as "at least len-k of the negated literals".
func AtMost(k int, lits ...int64) Card {
	return Card{
		Lits:    negate(lits),
		AtLeast: len(lits) - k,
	}
}

func Exactly(k int, lits ...int64) []Card {
	return []Card{AtLeast(k, lits...), AtMost(k, lits...)}
}

// Trivial reports whether the constraint holds under every assignment.
func (c Card) Trivial() bool {
	return c.AtLeast <= 0
}

// Infeasible reports whether the constraint holds under no assignment.
func (c Card) Infeasible() bool {
	return c.AtLeast > len(c.Lits)
}

// Satisfied evaluates the constraint against an assignment of its literals.
func (c Card) Satisfied(assignment Assignment) bool {
	return lo.CountBy(c.Lits, assignment.Holds) >= c.AtLeast
}

// lower encodes the constraint as clauses, allocating auxiliary variables
// from *next onwards.
func (c Card) lower(next *uint64) [][]int64 {
	switch {
	case c.Trivial():
		return nil
	case c.Infeasible():
		return [][]int64{{}}
	case c.AtLeast == 1:
		return [][]int64{append([]int64(nil), c.Lits...)}
	case c.AtLeast == len(c.Lits):
		return lo.Map(c.Lits, func(lit int64, _ int) []int64 { return []int64{lit} })
	}
	return atMost(negate(c.Lits), len(c.Lits)-c.AtLeast, next)
}

// atMost encodes sum(lits) <= k for 1 <= k < len(lits) with Sinz's sequential
// counter: s(i,j) holds when at least j of the first i literals are true.
func atMost(lits []int64, k int, next *uint64) [][]int64 {
	n := len(lits)
	if k == 1 && n <= pairwiseLimit {
		clauses := make([][]int64, 0, n*(n-1)/2)
		for i := range n - 1 {
			for j := i + 1; j < n; j++ {
				clauses = append(clauses, []int64{-lits[i], -lits[j]})
			}
		}
		return clauses
	}

	base := *next
	*next += uint64((n - 1) * k)
	s := func(i, j int) int64 { // i in [1, n-1], j in [1, k]
		return int64(base + uint64((i-1)*k+j))
	}

	clauses := make([][]int64, 0, 2*n*k+n)
	clauses = append(clauses, []int64{-lits[0], s(1, 1)})
	for j := 2; j <= k; j++ {
		clauses = append(clauses, []int64{-s(1, j)})
	}
	for i := 2; i < n; i++ {
		x := lits[i-1]
		clauses = append(clauses,
			[]int64{-x, s(i, 1)},
			[]int64{-s(i-1, 1), s(i, 1)},
		)
		for j := 2; j <= k; j++ {
			clauses = append(clauses,
				[]int64{-x, -s(i-1, j-1), s(i, j)},
				[]int64{-s(i-1, j), s(i, j)},
			)
		}
		clauses = append(clauses, []int64{-x, -s(i-1, k)})
	}
	clauses = append(clauses, []int64{-lits[n-1], -s(n-1, k)})

	return clauses
}

func negate(lits []int64) []int64 {
	return lo.Map(lits, func(lit int64, _ int) int64 { return -lit })
}
