package model

import (
	"github.com/limaJavier/tournament/pkg/sat"
)

// encoding is one way of laying out the tournament as a formula.
type encoding interface {
	variables() uint64
	build() sat.SAT
	labelFixing() sat.SAT
	homeAwayOrder() sat.SAT
	homeLiterals(team uint64) []int64
	extract(assignment sat.Assignment) (Schedule, error)
}

// Model is the base formula of an instance, symmetry breaking included, and
// the means to bound it and to read schedules back from its models.
type Model struct {
	instance Instance
	options  Options
	encoding encoding
	formula  sat.SAT
}

func NewModel(instance Instance, options Options) (*Model, error) {
	if instance.Teams() == 0 {
		return nil, &ConfigurationError{Reason: "uninitialized instance"}
	}
	if err := options.validate(); err != nil {
		return nil, err
	}

	var encoding encoding
	switch options.Encoding {
	case SlotEncoding:
		encoding = newSlotEncoding(instance, options.PairKey)
	default:
		encoding = newPairingEncoding(instance, options.PostponedPeriods)
	}

	formula := encoding.build()
	if options.LabelFixing {
		formula.Append(encoding.labelFixing())
	}
	if options.HomeAwayOrder {
		formula.Append(encoding.homeAwayOrder())
	}

	return &Model{
		instance: instance,
		options:  options,
		encoding: encoding,
		formula:  formula,
	}, nil
}

func (model *Model) Instance() Instance {
	return model.instance
}

func (model *Model) Options() Options {
	return model.options
}

// Formula returns a copy of the base formula.
func (model *Model) Formula() sat.SAT {
	formula := sat.SAT{Variables: model.formula.Variables}
	formula.Append(model.formula)
	return formula
}

// Bound returns the constraints limiting the imbalance of every team to at
// most bound: ⌈(n-1-bound)/2⌉ <= homeCount <= ⌊(n-1+bound)/2⌋. The fragment is
// empty once bound reaches n-1, and tightening the bound only ever removes
// models.
func (model *Model) Bound(bound uint64) sat.SAT {
	fragment := sat.SAT{Variables: model.formula.Variables}
	games := model.instance.Weeks()
	if bound >= games {
		return fragment
	}

	upper := (games + bound) / 2
	lower := (games - bound + 1) / 2
	for team := range model.instance.Teams() {
		lits := model.encoding.homeLiterals(team)
		fragment.Cards = append(fragment.Cards, sat.AtMost(int(upper), lits...))
		if lower > 0 {
			fragment.Cards = append(fragment.Cards, sat.AtLeast(int(lower), lits...))
		}
	}
	return fragment
}

// Extract reads the schedule out of a model of the formula and verifies it.
// A *ModelInvariantViolation means the formula admits an invalid schedule; an
// *UnassignableError means postponed periods could not be assigned.
func (model *Model) Extract(assignment sat.Assignment) (Schedule, error) {
	if assignment.Variables() < model.formula.Variables {
		return nil, &ModelInvariantViolation{Reason: "assignment does not cover every variable of the model"}
	}

	schedule, err := model.encoding.extract(assignment)
	if err != nil {
		return nil, err
	}
	if err := Verify(model.instance, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}
