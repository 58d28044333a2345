package model

import (
	"sync"

	"github.com/limaJavier/tournament/pkg/sat"
)

// buildSat runs every constraint function on its own goroutine and merges the
// fragments in the order the functions were given, so the formula is the same
// on every run.
func buildSat[S any](variables uint64, constraints []func(state S) sat.SAT, state S) sat.SAT {
	fragments := make([]sat.SAT, len(constraints))

	var wg sync.WaitGroup
	for i, constraint := range constraints {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fragments[i] = constraint(state)
		}()
	}
	wg.Wait()

	satInstance := sat.SAT{Variables: variables}
	for _, fragment := range fragments {
		satInstance.Append(fragment)
	}
	// Fragments never declare variables of their own
	satInstance.Variables = variables
	return satInstance
}
