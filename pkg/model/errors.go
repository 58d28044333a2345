package model

import "fmt"

// ConfigurationError reports an invalid instance or an inconsistent choice of
// options. It is raised before any query is issued.
type ConfigurationError struct {
	Reason string
}

func (err *ConfigurationError) Error() string {
	return "invalid configuration: " + err.Reason
}

// ModelInvariantViolation reports an assignment or schedule breaking one of
// the tournament rules. Coming out of a solver it means the constraint model
// is wrong.
type ModelInvariantViolation struct {
	Period, Week uint64
	Reason       string
}

func (err *ModelInvariantViolation) Error() string {
	return fmt.Sprintf("model invariant violated at period %d, week %d: %v", err.Period, err.Week, err.Reason)
}

// UnassignableError reports a week whose games could not be given distinct
// periods without exceeding the period cap of some team.
type UnassignableError struct {
	Week uint64
}

func (err *UnassignableError) Error() string {
	return fmt.Sprintf("not all games of week %d can be assigned a period", err.Week)
}
