package model

import (
	"context"
	"testing"
	"time"

	"github.com/limaJavier/tournament/pkg/sat"
	"github.com/stretchr/testify/require"
)

const testBudget = time.Minute

// sixTeams is a valid tournament for six teams
var sixTeams = Schedule{
	{{1, 6}, {1, 5}, {5, 3}, {4, 2}, {3, 6}},
	{{2, 5}, {6, 4}, {6, 2}, {1, 3}, {4, 5}},
	{{3, 4}, {2, 3}, {1, 4}, {5, 6}, {1, 2}},
}

func cloneSchedule(schedule Schedule) Schedule {
	clone := make(Schedule, len(schedule))
	for period := range schedule {
		clone[period] = append([]Game(nil), schedule[period]...)
	}
	return clone
}

func mustInstance(t *testing.T, teams int) Instance {
	t.Helper()
	instance, err := NewInstance(teams)
	require.NoError(t, err)
	return instance
}

func mustModel(t *testing.T, teams int, options Options) *Model {
	t.Helper()
	model, err := NewModel(mustInstance(t, teams), options)
	require.NoError(t, err)
	return model
}

// encode builds the assignment a solver would return for schedule.
func encode(model *Model, schedule Schedule) sat.Assignment {
	assignment := make(sat.Assignment, model.formula.Variables+1)
	set := func(variable uint64) { assignment[variable] = true }

	switch encoding := model.encoding.(type) {
	case *pairingEncoding:
		indexer := encoding.state.indexer
		for period, row := range schedule {
			for week, game := range row {
				host, guest := game.Home()-1, game.Away()-1
				set(indexer.Home(host, guest, uint64(week)))
				if !encoding.postponed {
					set(indexer.Period(host, uint64(week), uint64(period)))
					set(indexer.Period(guest, uint64(week), uint64(period)))
				}
			}
		}
	case *slotEncoding:
		indexer := encoding.state.indexer
		for period, row := range schedule {
			for week, game := range row {
				p, w, host, guest := uint64(period), uint64(week), game.Home()-1, game.Away()-1
				set(indexer.Home(p, w, host))
				set(indexer.Away(p, w, guest))
				set(indexer.Game(p, w, host, guest))
				set(indexer.Occupies(p, w, host))
				set(indexer.Occupies(p, w, guest))
			}
		}
	}
	return assignment
}

func solve(t *testing.T, model *Model, extra ...sat.SAT) sat.Result {
	t.Helper()
	formula := model.Formula()
	for _, fragment := range extra {
		formula.Append(fragment)
	}
	result, err := sat.NewGiniSolver().Solve(context.Background(), formula, testBudget)
	require.NoError(t, err)
	require.NotEqual(t, sat.Unknown, result.Status, "the solver ran out of time")
	return result
}
