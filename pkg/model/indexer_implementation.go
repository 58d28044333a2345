package model

type pairingIndexerImplementation struct {
	teams   uint64
	weeks   uint64
	periods uint64
}

func (indexer *pairingIndexerImplementation) Home(host, guest, week uint64) uint64 {
	return host + indexer.teams*guest + indexer.teams*indexer.teams*week + 1
}

func (indexer *pairingIndexerImplementation) Period(team, week, period uint64) uint64 {
	return indexer.HomeVariables() + team + indexer.teams*week + indexer.teams*indexer.weeks*period + 1
}

func (indexer *pairingIndexerImplementation) Attributes(index uint64) (family variableFamily, first, second, third uint64) {
	index = index - 1
	if index < indexer.HomeVariables() {
		first = index % indexer.teams
		index = index / indexer.teams

		second = index % indexer.teams
		index = index / indexer.teams

		third = index % indexer.weeks
		return homeFamily, first, second, third
	}

	index = index - indexer.HomeVariables()
	first = index % indexer.teams
	index = index / indexer.teams

	second = index % indexer.weeks
	index = index / indexer.weeks

	third = index % indexer.periods
	return periodFamily, first, second, third
}

func (indexer *pairingIndexerImplementation) HomeVariables() uint64 {
	return indexer.teams * indexer.teams * indexer.weeks
}

func (indexer *pairingIndexerImplementation) Variables() uint64 {
	return indexer.HomeVariables() + indexer.teams*indexer.weeks*indexer.periods
}

type slotIndexerImplementation struct {
	teams   uint64
	weeks   uint64
	periods uint64
}

// slots is the size of one (period, week) layer
func (indexer *slotIndexerImplementation) slots() uint64 {
	return indexer.periods * indexer.weeks
}

func (indexer *slotIndexerImplementation) slot(period, week uint64) uint64 {
	return period + indexer.periods*week
}

func (indexer *slotIndexerImplementation) Home(period, week, team uint64) uint64 {
	return indexer.slot(period, week) + indexer.slots()*team + 1
}

func (indexer *slotIndexerImplementation) Away(period, week, team uint64) uint64 {
	return indexer.slots()*indexer.teams + indexer.slot(period, week) + indexer.slots()*team + 1
}

func (indexer *slotIndexerImplementation) Game(period, week, host, guest uint64) uint64 {
	return 2*indexer.slots()*indexer.teams + indexer.slot(period, week) + indexer.slots()*host + indexer.slots()*indexer.teams*guest + 1
}

func (indexer *slotIndexerImplementation) Occupies(period, week, team uint64) uint64 {
	return (2+indexer.teams)*indexer.slots()*indexer.teams + indexer.slot(period, week) + indexer.slots()*team + 1
}

func (indexer *slotIndexerImplementation) Attributes(index uint64) (family variableFamily, period, week, first, second uint64) {
	layer := indexer.slots() * indexer.teams
	index = index - 1

	switch {
	case index < layer:
		family = homeFamily
	case index < 2*layer:
		family, index = awayFamily, index-layer
	case index < (2+indexer.teams)*layer:
		family, index = gameFamily, index-2*layer
	default:
		family, index = occupiesFamily, index-(2+indexer.teams)*layer
	}

	period = index % indexer.periods
	index = index / indexer.periods

	week = index % indexer.weeks
	index = index / indexer.weeks

	first = index % indexer.teams
	index = index / indexer.teams

	if family == gameFamily {
		second = index % indexer.teams
	}
	return family, period, week, first, second
}

func (indexer *slotIndexerImplementation) Variables() uint64 {
	return (3 + indexer.teams) * indexer.slots() * indexer.teams
}
