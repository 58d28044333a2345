package model

import "github.com/limaJavier/tournament/pkg/sat"

type pairingState struct {
	indexer pairingIndexer

	teams,
	weeks,
	periods uint64
}

func (state pairingState) home(host, guest, week uint64) int64 {
	return int64(state.indexer.Home(host, guest, week))
}

func (state pairingState) period(team, week, period uint64) int64 {
	return int64(state.indexer.Period(team, week, period))
}

// games lists both orientations of the pair {i, j} in week
func (state pairingState) games(i, j, week uint64) []int64 {
	return []int64{state.home(i, j, week), state.home(j, i, week)}
}

// ¬home(i, i, w)
func noSelfPlayConstraints(state pairingState) sat.SAT {
	clauses := make([][]int64, 0, state.teams*state.weeks)
	for team := range state.teams {
		for week := range state.weeks {
			clauses = append(clauses, []int64{-state.home(team, team, week)})
		}
	}
	return sat.SAT{Clauses: clauses}
}

// Every unordered pair meets in exactly one week, in exactly one orientation
func pairingConstraints(state pairingState) sat.SAT {
	cards := make([]sat.Card, 0, state.teams*state.teams)
	for i := range state.teams {
		for j := i + 1; j < state.teams; j++ {
			lits := make([]int64, 0, 2*state.weeks)
			for week := range state.weeks {
				lits = append(lits, state.games(i, j, week)...)
			}
			cards = append(cards, sat.Exactly(1, lits...)...)
		}
	}
	return sat.SAT{Cards: cards}
}

// Every team plays exactly one game per week
func weeklyGameConstraints(state pairingState) sat.SAT {
	cards := make([]sat.Card, 0, 2*state.teams*state.weeks)
	for team := range state.teams {
		for week := range state.weeks {
			lits := make([]int64, 0, 2*(state.teams-1))
			for opponent := range state.teams {
				if opponent != team {
					lits = append(lits, state.games(team, opponent, week)...)
				}
			}
			cards = append(cards, sat.Exactly(1, lits...)...)
		}
	}
	return sat.SAT{Cards: cards}
}

// Every team is placed in exactly one period per week
func weeklyPeriodConstraints(state pairingState) sat.SAT {
	cards := make([]sat.Card, 0, 2*state.teams*state.weeks)
	for team := range state.teams {
		for week := range state.weeks {
			lits := make([]int64, 0, state.periods)
			for period := range state.periods {
				lits = append(lits, state.period(team, week, period))
			}
			cards = append(cards, sat.Exactly(1, lits...)...)
		}
	}
	return sat.SAT{Cards: cards}
}

// Exactly two teams occupy every period of every week
func occupancyConstraints(state pairingState) sat.SAT {
	cards := make([]sat.Card, 0, 2*state.weeks*state.periods)
	for week := range state.weeks {
		for period := range state.periods {
			lits := make([]int64, 0, state.teams)
			for team := range state.teams {
				lits = append(lits, state.period(team, week, period))
			}
			cards = append(cards, sat.Exactly(2, lits...)...)
		}
	}
	return sat.SAT{Cards: cards}
}

// home(i, j, w) ∧ per(i, w, p) → per(j, w, p), for every ordered pair, so the
// two teams of a game share their period in both directions
func channelingConstraints(state pairingState) sat.SAT {
	clauses := make([][]int64, 0, state.teams*state.teams*state.weeks*state.periods)
	for i := range state.teams {
		for j := range state.teams {
			if i == j {
				continue
			}
			for week := range state.weeks {
				for period := range state.periods {
					clauses = append(clauses, []int64{
						-state.home(i, j, week),
						-state.period(i, week, period),
						state.period(j, week, period),
					})
				}
			}
		}
	}
	return sat.SAT{Clauses: clauses}
}

// per(i, w, p) ∧ per(j, w, p) → home(i, j, w) ∨ home(j, i, w): two teams sharing
// a period play each other
func converseChannelingConstraints(state pairingState) sat.SAT {
	clauses := make([][]int64, 0, state.teams*state.teams*state.weeks*state.periods/2)
	for i := range state.teams {
		for j := i + 1; j < state.teams; j++ {
			for week := range state.weeks {
				for period := range state.periods {
					clauses = append(clauses, []int64{
						-state.period(i, week, period),
						-state.period(j, week, period),
						state.home(i, j, week),
						state.home(j, i, week),
					})
				}
			}
		}
	}
	return sat.SAT{Clauses: clauses}
}

// No team plays in the same period in more than two weeks
func periodCapConstraints(state pairingState) sat.SAT {
	cards := make([]sat.Card, 0, state.teams*state.periods)
	for team := range state.teams {
		for period := range state.periods {
			lits := make([]int64, 0, state.weeks)
			for week := range state.weeks {
				lits = append(lits, state.period(team, week, period))
			}
			cards = append(cards, sat.AtMost(2, lits...))
		}
	}
	return sat.SAT{Cards: cards}
}

// Team 1 hosts team 2 in the first week. With periods in the formula, both
// also take the first period.
func pairingLabelFixing(state pairingState, postponed bool) sat.SAT {
	clauses := [][]int64{{state.home(0, 1, 0)}}
	if !postponed {
		clauses = append(clauses,
			[]int64{state.period(0, 0, 0)},
			[]int64{state.period(1, 0, 0)},
		)
	}
	return sat.SAT{Clauses: clauses}
}

func pairingHomeLiterals(state pairingState, team uint64) []int64 {
	lits := make([]int64, 0, (state.teams-1)*state.weeks)
	for opponent := range state.teams {
		if opponent == team {
			continue
		}
		for week := range state.weeks {
			lits = append(lits, state.home(team, opponent, week))
		}
	}
	return lits
}
