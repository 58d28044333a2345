package model

import "github.com/limaJavier/tournament/pkg/sat"

type slotState struct {
	indexer slotIndexer
	pairKey PairKey

	teams,
	weeks,
	periods uint64
}

func (state slotState) home(period, week, team uint64) int64 {
	return int64(state.indexer.Home(period, week, team))
}

func (state slotState) away(period, week, team uint64) int64 {
	return int64(state.indexer.Away(period, week, team))
}

func (state slotState) game(period, week, host, guest uint64) int64 {
	return int64(state.indexer.Game(period, week, host, guest))
}

func (state slotState) occupies(period, week, team uint64) int64 {
	return int64(state.indexer.Occupies(period, week, team))
}

// Each slot has exactly one home team and one away team in [1, n]
func domainConstraints(state slotState) sat.SAT {
	cards := make([]sat.Card, 0, 4*state.periods*state.weeks)
	for period := range state.periods {
		for week := range state.weeks {
			homes, aways := make([]int64, 0, state.teams), make([]int64, 0, state.teams)
			for team := range state.teams {
				homes = append(homes, state.home(period, week, team))
				aways = append(aways, state.away(period, week, team))
			}
			cards = append(cards, sat.Exactly(1, homes...)...)
			cards = append(cards, sat.Exactly(1, aways...)...)
		}
	}
	return sat.SAT{Cards: cards}
}

// home ≠ away
func slotNoSelfPlayConstraints(state slotState) sat.SAT {
	clauses := make([][]int64, 0, state.periods*state.weeks*state.teams)
	for period := range state.periods {
		for week := range state.weeks {
			for team := range state.teams {
				clauses = append(clauses, []int64{-state.home(period, week, team), -state.away(period, week, team)})
			}
		}
	}
	return sat.SAT{Clauses: clauses}
}

// The 2·periods team values of a week are distinct, hence every team appears
// exactly once
func weeklyDistinctConstraints(state slotState) sat.SAT {
	cards := make([]sat.Card, 0, 2*state.weeks*state.teams)
	for week := range state.weeks {
		for team := range state.teams {
			lits := make([]int64, 0, 2*state.periods)
			for period := range state.periods {
				lits = append(lits, state.home(period, week, team), state.away(period, week, team))
			}
			cards = append(cards, sat.Exactly(1, lits...)...)
		}
	}
	return sat.SAT{Cards: cards}
}

// game(p, w, i, j) ↔ home(p, w, i) ∧ away(p, w, j)
func gameChannelingConstraints(state slotState) sat.SAT {
	clauses := make([][]int64, 0, 3*state.periods*state.weeks*state.teams*state.teams)
	for period := range state.periods {
		for week := range state.weeks {
			for host := range state.teams {
				for guest := range state.teams {
					game := state.game(period, week, host, guest)
					if host == guest {
						clauses = append(clauses, []int64{-game})
						continue
					}
					home, away := state.home(period, week, host), state.away(period, week, guest)
					clauses = append(clauses,
						[]int64{-game, home},
						[]int64{-game, away},
						[]int64{-home, -away, game},
					)
				}
			}
		}
	}
	return sat.SAT{Clauses: clauses}
}

// Every unordered pair is played in exactly one slot. The ordered key counts
// only the (smaller, larger) orientation and relies on home < away.
func pairUniquenessConstraints(state slotState) sat.SAT {
	cards := make([]sat.Card, 0, state.teams*state.teams)
	for i := range state.teams {
		for j := i + 1; j < state.teams; j++ {
			lits := make([]int64, 0, 2*state.periods*state.weeks)
			for period := range state.periods {
				for week := range state.weeks {
					lits = append(lits, state.game(period, week, i, j))
					if state.pairKey == UnorderedPairKey {
						lits = append(lits, state.game(period, week, j, i))
					}
				}
			}
			cards = append(cards, sat.Exactly(1, lits...)...)
		}
	}
	return sat.SAT{Cards: cards}
}

// occupies(p, w, t) ↔ home(p, w, t) ∨ away(p, w, t)
func occupancyChannelingConstraints(state slotState) sat.SAT {
	clauses := make([][]int64, 0, 3*state.periods*state.weeks*state.teams)
	for period := range state.periods {
		for week := range state.weeks {
			for team := range state.teams {
				occupies := state.occupies(period, week, team)
				home, away := state.home(period, week, team), state.away(period, week, team)
				clauses = append(clauses,
					[]int64{-home, occupies},
					[]int64{-away, occupies},
					[]int64{-occupies, home, away},
				)
			}
		}
	}
	return sat.SAT{Clauses: clauses}
}

// No team plays in the same period in more than two weeks
func slotPeriodCapConstraints(state slotState) sat.SAT {
	cards := make([]sat.Card, 0, state.teams*state.periods)
	for team := range state.teams {
		for period := range state.periods {
			lits := make([]int64, 0, state.weeks)
			for week := range state.weeks {
				lits = append(lits, state.occupies(period, week, team))
			}
			cards = append(cards, sat.AtMost(2, lits...))
		}
	}
	return sat.SAT{Cards: cards}
}

// Team 1 hosts team 2 in the first slot
func slotLabelFixing(state slotState) sat.SAT {
	return sat.SAT{Clauses: [][]int64{
		{state.home(0, 0, 0)},
		{state.away(0, 0, 1)},
	}}
}

// home < away in every slot
func homeAwayOrder(state slotState) sat.SAT {
	clauses := make([][]int64, 0, state.periods*state.weeks*state.teams*state.teams/2)
	for period := range state.periods {
		for week := range state.weeks {
			for host := range state.teams {
				for guest := range host {
					clauses = append(clauses, []int64{-state.game(period, week, host, guest)})
				}
			}
		}
	}
	return sat.SAT{Clauses: clauses}
}

func slotHomeLiterals(state slotState, team uint64) []int64 {
	lits := make([]int64, 0, state.periods*state.weeks)
	for period := range state.periods {
		for week := range state.weeks {
			lits = append(lits, state.home(period, week, team))
		}
	}
	return lits
}
