package model

import (
	"fmt"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// assignPeriods places the games of every week into distinct periods, week by
// week, keeping every team within the period cap. A week is solved as a
// maximum bipartite matching between its games and the periods still open to
// both teams. Earlier choices are never revisited, so failing to place a week
// proves nothing about the instance.
func assignPeriods(weeks [][]Game, teams, periods uint64) (Schedule, error) {
	schedule := make(Schedule, periods)
	for period := range schedule {
		schedule[period] = make([]Game, len(weeks))
	}

	// usage[team][period] counts the weeks the team already spent in the period
	usage := make([][]uint64, teams+1)
	for team := range usage {
		usage[team] = make([]uint64, periods)
	}

	for week, games := range weeks {
		if uint64(len(games)) != periods {
			return nil, &ModelInvariantViolation{Week: uint64(week), Reason: fmt.Sprintf("expected %d games, found %d", periods, len(games))}
		}

		assignments, err := matchPeriods(games, periods, usage)
		if err != nil {
			return nil, err
		}
		if assignments == nil {
			return nil, &UnassignableError{Week: uint64(week)}
		}

		for i, period := range assignments {
			game := games[i]
			schedule[period][week] = game
			usage[game.Home()][period]++
			usage[game.Away()][period]++
		}
	}

	return schedule, nil
}

// matchPeriods returns the period of every game, or nil when no complete
// matching exists.
func matchPeriods(games []Game, periods uint64, usage [][]uint64) ([]uint64, error) {
	// Build neighbors predicate based on period usage
	neighbors := func(gameAny any, periodAny any) (bool, error) {
		game := gameAny.(Game)
		period := periodAny.(uint64)

		return usage[game.Home()][period] < 2 && usage[game.Away()][period] < 2, nil
	}

	// Transform games and periods to slices of any
	gamesAny := lo.Map(games, func(game Game, _ int) any { return game })
	periodsAny := lo.Times(int(periods), func(period int) any { return uint64(period) })

	graph, err := bipartitegraph.NewBipartiteGraph(gamesAny, periodsAny, neighbors)
	if err != nil {
		return nil, err
	}

	matching := graph.LargestMatching()

	// Check the matching is a perfect one
	if len(matching) < len(games) {
		return nil, nil
	}

	assignments := make([]uint64, len(games))
	for _, edge := range matching {
		gameIndex, periodIndex := edge.Node1, edge.Node2-len(games)
		assignments[gameIndex] = uint64(periodIndex)
	}
	return assignments, nil
}
