package model

type variableFamily int

const (
	homeFamily variableFamily = iota
	periodFamily
	awayFamily
	gameFamily
	occupiesFamily
)

// pairingIndexer gives a unique index to the variables of the pairing
// encoding and vice versa. Indexes are 1-based and contiguous: first every
// home variable, then every period variable.
type pairingIndexer interface {
	// "host plays guest at home in week"
	Home(host, guest, week uint64) uint64
	// "team plays in period during week"
	Period(team, week, period uint64) uint64
	// Attributes returns the family of a variable and its coordinates in the
	// order of the matching constructor
	Attributes(index uint64) (family variableFamily, first, second, third uint64)
	HomeVariables() uint64
	Variables() uint64
}

func newPairingIndexer(teams, weeks, periods uint64) pairingIndexer {
	return &pairingIndexerImplementation{
		teams:   teams,
		weeks:   weeks,
		periods: periods,
	}
}

// slotIndexer gives a unique index to the variables of the slot encoding and
// vice versa: one-hot home and away teams per slot, the derived ordered game
// per slot and the derived occupancy per slot and team.
type slotIndexer interface {
	Home(period, week, team uint64) uint64
	Away(period, week, team uint64) uint64
	Game(period, week, host, guest uint64) uint64
	Occupies(period, week, team uint64) uint64
	Attributes(index uint64) (family variableFamily, period, week, first, second uint64)
	Variables() uint64
}

func newSlotIndexer(teams, weeks, periods uint64) slotIndexer {
	return &slotIndexerImplementation{
		teams:   teams,
		weeks:   weeks,
		periods: periods,
	}
}
