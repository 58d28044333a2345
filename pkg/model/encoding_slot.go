package model

import (
	"fmt"

	"github.com/limaJavier/tournament/pkg/sat"
)

type slotEncoding struct {
	state slotState
}

func newSlotEncoding(instance Instance, pairKey PairKey) *slotEncoding {
	return &slotEncoding{
		state: slotState{
			indexer: newSlotIndexer(instance.Teams(), instance.Weeks(), instance.Periods()),
			pairKey: pairKey,
			teams:   instance.Teams(),
			weeks:   instance.Weeks(),
			periods: instance.Periods(),
		},
	}
}

func (encoding *slotEncoding) variables() uint64 {
	return encoding.state.indexer.Variables()
}

func (encoding *slotEncoding) build() sat.SAT {
	constraints := []func(state slotState) sat.SAT{
		domainConstraints,
		slotNoSelfPlayConstraints,
		weeklyDistinctConstraints,
		gameChannelingConstraints,
		pairUniquenessConstraints,
		occupancyChannelingConstraints,
		slotPeriodCapConstraints,
	}
	return buildSat(encoding.variables(), constraints, encoding.state)
}

func (encoding *slotEncoding) labelFixing() sat.SAT {
	return slotLabelFixing(encoding.state)
}

func (encoding *slotEncoding) homeAwayOrder() sat.SAT {
	return homeAwayOrder(encoding.state)
}

func (encoding *slotEncoding) homeLiterals(team uint64) []int64 {
	return slotHomeLiterals(encoding.state, team)
}

func (encoding *slotEncoding) extract(assignment sat.Assignment) (Schedule, error) {
	state := encoding.state
	schedule := make(Schedule, state.periods)
	for period := range state.periods {
		schedule[period] = make([]Game, state.weeks)
		for week := range state.weeks {
			homes, aways := make([]uint64, 0, 1), make([]uint64, 0, 1)
			for team := range state.teams {
				if assignment.Value(state.indexer.Home(period, week, team)) {
					homes = append(homes, team)
				}
				if assignment.Value(state.indexer.Away(period, week, team)) {
					aways = append(aways, team)
				}
			}

			switch {
			case len(homes) != 1 || len(aways) != 1:
				return nil, &ModelInvariantViolation{Period: period, Week: week, Reason: fmt.Sprintf("expected one home and one away team, found %d and %d", len(homes), len(aways))}
			case homes[0] == aways[0]:
				return nil, &ModelInvariantViolation{Period: period, Week: week, Reason: fmt.Sprintf("team %d plays itself", homes[0]+1)}
			}
			schedule[period][week] = Game{homes[0] + 1, aways[0] + 1}
		}
	}
	return schedule, nil
}
