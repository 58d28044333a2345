package model

import (
	"fmt"
	"strings"
)

type Encoding int

const (
	// One boolean per ordered pair and week, channeled to one boolean per
	// team, week and period
	PairingEncoding Encoding = iota
	// One-hot home and away team per slot
	SlotEncoding
)

var encodingNames = map[Encoding]string{
	PairingEncoding: "pairing",
	SlotEncoding:    "slot",
}

func (encoding Encoding) String() string {
	return encodingNames[encoding]
}

func ParseEncoding(name string) (Encoding, error) {
	for encoding, encodingName := range encodingNames {
		if strings.EqualFold(name, encodingName) {
			return encoding, nil
		}
	}
	return 0, &ConfigurationError{Reason: fmt.Sprintf("%q is not a valid encoding, allowed values are \"pairing\" and \"slot\"", name)}
}

// PairKey selects how the slot encoding tells two games apart.
type PairKey int

const (
	// {i, j} and {j, i} are the same game
	UnorderedPairKey PairKey = iota
	// (i, j) and (j, i) are different games; only sound when home < away holds
	OrderedPairKey
)

type Options struct {
	Encoding Encoding
	// Team 1 hosts team 2 in the first period of the first week
	LabelFixing bool
	// The home team has the smaller label in every game (slot encoding only)
	HomeAwayOrder bool
	PairKey       PairKey
	// The model will be bounded on the home/away imbalance
	Objective bool
	// Periods are left out of the formula and assigned after solving
	// (pairing encoding only)
	PostponedPeriods bool
}

// SymmetryBreaking reports whether any symmetry breaking rule is enabled.
func (options Options) SymmetryBreaking() bool {
	return options.LabelFixing || options.HomeAwayOrder
}

// Strategy names the variable layout and period handling of the options.
func (options Options) Strategy() string {
	if options.PostponedPeriods {
		return options.Encoding.String() + "-postponed"
	}
	return options.Encoding.String()
}

func (options Options) validate() error {
	var reason string
	switch {
	case options.Encoding != PairingEncoding && options.Encoding != SlotEncoding:
		reason = fmt.Sprintf("unknown encoding %d", options.Encoding)
	case options.HomeAwayOrder && options.Encoding != SlotEncoding:
		reason = "home/away ordering needs the slot encoding"
	case options.HomeAwayOrder && options.Objective:
		reason = "home/away ordering fixes every home assignment and cannot be combined with the imbalance objective"
	case options.PairKey == OrderedPairKey && !options.HomeAwayOrder:
		reason = "an ordered pair key treats both orientations of a pair as different games unless home/away ordering is enabled"
	case options.PostponedPeriods && options.Encoding != PairingEncoding:
		reason = "postponed periods need the pairing encoding"
	case options.PostponedPeriods && options.Objective:
		reason = "postponed periods cannot prove optimality"
	default:
		return nil
	}
	return &ConfigurationError{Reason: reason}
}
