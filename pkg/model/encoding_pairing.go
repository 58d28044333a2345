package model

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/limaJavier/tournament/pkg/sat"
)

type pairingEncoding struct {
	state     pairingState
	postponed bool
}

func newPairingEncoding(instance Instance, postponed bool) *pairingEncoding {
	return &pairingEncoding{
		state: pairingState{
			indexer: newPairingIndexer(instance.Teams(), instance.Weeks(), instance.Periods()),
			teams:   instance.Teams(),
			weeks:   instance.Weeks(),
			periods: instance.Periods(),
		},
		postponed: postponed,
	}
}

func (encoding *pairingEncoding) variables() uint64 {
	if encoding.postponed {
		return encoding.state.indexer.HomeVariables()
	}
	return encoding.state.indexer.Variables()
}

func (encoding *pairingEncoding) build() sat.SAT {
	constraints := []func(state pairingState) sat.SAT{
		noSelfPlayConstraints,
		pairingConstraints,
		weeklyGameConstraints,
	}
	if !encoding.postponed {
		constraints = append(constraints,
			weeklyPeriodConstraints,
			occupancyConstraints,
			channelingConstraints,
			converseChannelingConstraints,
			periodCapConstraints,
		)
	}
	return buildSat(encoding.variables(), constraints, encoding.state)
}

func (encoding *pairingEncoding) labelFixing() sat.SAT {
	return pairingLabelFixing(encoding.state, encoding.postponed)
}

// homeAwayOrder is empty: ordering home and away teams needs the slot layout,
// and Options rejects the combination.
func (encoding *pairingEncoding) homeAwayOrder() sat.SAT {
	return sat.SAT{Variables: encoding.variables()}
}

func (encoding *pairingEncoding) homeLiterals(team uint64) []int64 {
	return pairingHomeLiterals(encoding.state, team)
}

func (encoding *pairingEncoding) extract(assignment sat.Assignment) (Schedule, error) {
	if encoding.postponed {
		return assignPeriods(encoding.weeklyGames(assignment), encoding.state.teams, encoding.state.periods)
	}

	state := encoding.state
	schedule := make(Schedule, state.periods)
	for period := range state.periods {
		schedule[period] = make([]Game, state.weeks)
		for week := range state.weeks {
			teams := make([]uint64, 0, 2)
			for team := range state.teams {
				if assignment.Value(state.indexer.Period(team, week, period)) {
					teams = append(teams, team)
				}
			}
			if len(teams) != 2 {
				return nil, &ModelInvariantViolation{Period: period, Week: week, Reason: fmt.Sprintf("expected two teams, found %d", len(teams))}
			}

			first, second := teams[0], teams[1]
			firstHosts := assignment.Value(state.indexer.Home(first, second, week))
			secondHosts := assignment.Value(state.indexer.Home(second, first, week))
			switch {
			case firstHosts && !secondHosts:
				schedule[period][week] = Game{first + 1, second + 1}
			case secondHosts && !firstHosts:
				schedule[period][week] = Game{second + 1, first + 1}
			default:
				return nil, &ModelInvariantViolation{Period: period, Week: week, Reason: fmt.Sprintf("teams %d and %d share the period but the pairing does not say who hosts", first+1, second+1)}
			}
		}
	}
	return schedule, nil
}

// weeklyGames decodes the true home variables into the games of every week,
// ordered by host and then guest.
func (encoding *pairingEncoding) weeklyGames(assignment sat.Assignment) [][]Game {
	state := encoding.state
	weeks := make([][]Game, state.weeks)
	for variable := uint64(1); variable <= state.indexer.HomeVariables(); variable++ {
		if !assignment.Value(variable) {
			continue
		}
		_, host, guest, week := state.indexer.Attributes(variable)
		if host != guest {
			weeks[week] = append(weeks[week], Game{host + 1, guest + 1})
		}
	}
	for _, games := range weeks {
		slices.SortFunc(games, func(a, b Game) int {
			return cmp.Or(cmp.Compare(a.Home(), b.Home()), cmp.Compare(a.Away(), b.Away()))
		})
	}
	return weeks
}
