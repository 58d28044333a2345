package model

import (
	"fmt"

	"github.com/samber/lo"
)

// Game is an ordered pair {home, away} of 1-based team labels.
type Game [2]uint64

func (game Game) Home() uint64 {
	return game[0]
}

func (game Game) Away() uint64 {
	return game[1]
}

// Pair is the unordered form of the game, smaller label first.
func (game Game) Pair() [2]uint64 {
	return [2]uint64{min(game[0], game[1]), max(game[0], game[1])}
}

// Schedule is indexed as schedule[period][week].
type Schedule [][]Game

func (schedule Schedule) Teams() uint64 {
	return uint64(2 * len(schedule))
}

// HomeCounts returns the number of home games of every team, indexed by team
// label (index 0 unused).
func (schedule Schedule) HomeCounts() []uint64 {
	counts := make([]uint64, schedule.Teams()+1)
	for _, row := range schedule {
		for _, game := range row {
			if game.Home() < uint64(len(counts)) {
				counts[game.Home()]++
			}
		}
	}
	return counts
}

// Imbalances returns |home games - away games| of every team, indexed by team
// label (index 0 unused).
func (schedule Schedule) Imbalances() []uint64 {
	games := int64(schedule.Teams()) - 1
	return lo.Map(schedule.HomeCounts(), func(home uint64, team int) uint64 {
		if team == 0 {
			return 0
		}
		difference := 2*int64(home) - games
		if difference < 0 {
			difference = -difference
		}
		return uint64(difference)
	})
}

func (schedule Schedule) MaxImbalance() uint64 {
	return lo.Max(schedule.Imbalances())
}

// Verify checks that schedule is a complete tournament for instance: every
// pair meets once, every team plays once a week and no team uses a period in
// more than two weeks. The first broken rule is returned as a
// *ModelInvariantViolation.
func Verify(instance Instance, schedule Schedule) error {
	teams, weeks, periods := instance.Teams(), instance.Weeks(), instance.Periods()

	if uint64(len(schedule)) != periods {
		return &ModelInvariantViolation{Reason: fmt.Sprintf("expected %d periods, found %d", periods, len(schedule))}
	}

	//** Initialize assistance matrices
	weekAssistance := make([][]bool, teams+1)
	periodAssistance := make([][]uint64, teams+1)
	for team := range teams + 1 {
		weekAssistance[team] = make([]bool, weeks)
		periodAssistance[team] = make([]uint64, periods)
	}
	pairs := make(map[[2]uint64]bool, instance.Games())

	for period, row := range schedule {
		if uint64(len(row)) != weeks {
			return &ModelInvariantViolation{Period: uint64(period), Reason: fmt.Sprintf("expected %d weeks, found %d", weeks, len(row))}
		}

		for week, game := range row {
			violation := func(format string, args ...any) error {
				return &ModelInvariantViolation{Period: uint64(period), Week: uint64(week), Reason: fmt.Sprintf(format, args...)}
			}

			home, away := game.Home(), game.Away()
			// Check that:
			// - Both teams exist and are distinct
			// - Neither team already played this week
			// - Neither team already used this period twice
			// - The pair did not meet before
			switch {
			case home < 1 || home > teams || away < 1 || away > teams:
				return violation("game %v involves an unknown team", game)
			case home == away:
				return violation("team %d plays itself", home)
			case weekAssistance[home][week] || weekAssistance[away][week]:
				return violation("game %v repeats a team within the week", game)
			case periodAssistance[home][period] >= 2 || periodAssistance[away][period] >= 2:
				return violation("game %v exceeds the period cap", game)
			case pairs[game.Pair()]:
				return violation("pair %v meets more than once", game.Pair())
			}

			weekAssistance[home][week], weekAssistance[away][week] = true, true
			periodAssistance[home][period]++
			periodAssistance[away][period]++
			pairs[game.Pair()] = true
		}
	}

	// Every slot holds a distinct pair and there are as many slots as pairs,
	// so the round robin is complete
	if uint64(len(pairs)) != instance.Games() {
		return &ModelInvariantViolation{Reason: fmt.Sprintf("expected %d distinct pairs, found %d", instance.Games(), len(pairs))}
	}
	return nil
}
