package sat

import (
	"math/rand/v2"
	"os/exec"
	"testing"
)

func generateSATInstance(random *rand.Rand, literals uint64, clauses int) SAT {
	satInstance := SAT{
		Variables: literals,
		Clauses:   make([][]int64, clauses),
	}

	for i := range clauses {
		satInstance.Clauses[i] = make([]int64, 0, literals)
		for j := range literals {
			if random.Float32() < 0.5 {
				var sign int64 = 1
				if random.Float32() < 0.5 {
					sign = -1
				}
				satInstance.Clauses[i] = append(satInstance.Clauses[i], sign*(1+int64(j)))
			}
		}

		if len(satInstance.Clauses[i]) == 0 {
			var sign int64 = 1
			if random.Float32() < 0.5 {
				sign = -1
			}
			satInstance.Clauses[i] = append(satInstance.Clauses[i], sign*(1+random.Int64N(int64(literals))))
		}
	}

	return satInstance
}

// pigeonhole states that pigeons pigeons fit into holes holes, one per hole.
func pigeonhole(pigeons, holes int) SAT {
	variable := func(pigeon, hole int) int64 { return int64(pigeon*holes + hole + 1) }
	instance := SAT{Variables: uint64(pigeons * holes)}
	for pigeon := range pigeons {
		lits := make([]int64, 0, holes)
		for hole := range holes {
			lits = append(lits, variable(pigeon, hole))
		}
		instance.Clauses = append(instance.Clauses, lits)
	}
	for hole := range holes {
		lits := make([]int64, 0, pigeons)
		for pigeon := range pigeons {
			lits = append(lits, variable(pigeon, hole))
		}
		instance.Cards = append(instance.Cards, AtMost(1, lits...))
	}
	return instance
}

func requireExecutable(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%v is not installed", name)
	}
	return path
}
