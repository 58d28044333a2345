package model

import "fmt"

// Instance is a single round robin of an even number of teams: every week each
// team plays once, and the games of a week run in parallel periods.
type Instance struct {
	teams uint64
}

func NewInstance(teams int) (Instance, error) {
	if teams < 2 || teams%2 != 0 {
		return Instance{}, &ConfigurationError{Reason: fmt.Sprintf("the number of teams must be even and at least 2: %d", teams)}
	}
	return Instance{teams: uint64(teams)}, nil
}

func (instance Instance) Teams() uint64 {
	return instance.teams
}

func (instance Instance) Weeks() uint64 {
	return instance.teams - 1
}

func (instance Instance) Periods() uint64 {
	return instance.teams / 2
}

// Games is the number of unordered pairs of teams, which is also the number of
// slots.
func (instance Instance) Games() uint64 {
	return instance.teams * (instance.teams - 1) / 2
}
