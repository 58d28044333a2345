package search

import (
	"strings"
	"time"

	"github.com/limaJavier/tournament/pkg/model"
	"github.com/limaJavier/tournament/pkg/sat"
)

type State int

const (
	Probing State = iota
	Searching
	Proved
	TimedOut
)

func (state State) String() string {
	switch state {
	case Probing:
		return "probing"
	case Searching:
		return "searching"
	case Proved:
		return "proved"
	default:
		return "timed-out"
	}
}

// Result is the outcome of a search. Objective is only set by optimizing
// searches that found a schedule; Schedule is nil unless one was found.
type Result struct {
	Elapsed       time.Duration
	ProvenOptimal bool
	Objective     *uint64
	Schedule      model.Schedule
	Status        sat.Status // answer to the base formula
	State         State
}

// Record is the persisted form of a Result.
type Record struct {
	Time    uint64         `json:"time" yaml:"time"`
	Optimal bool           `json:"optimal" yaml:"optimal"`
	Obj     *uint64        `json:"obj" yaml:"obj"`
	Sol     model.Schedule `json:"sol" yaml:"sol"`
}

// Record converts the result. Time is whole seconds, and a search that did
// not finish is charged the full budget.
func (result Result) Record(budget time.Duration) Record {
	seconds := uint64(budget / time.Second)
	if result.ProvenOptimal {
		seconds = uint64(min(result.Elapsed, budget) / time.Second)
	}

	sol := result.Schedule
	if sol == nil {
		sol = model.Schedule{}
	}
	return Record{
		Time:    seconds,
		Optimal: result.ProvenOptimal,
		Obj:     result.Objective,
		Sol:     sol,
	}
}

// Tag names the configuration that produced a record.
type Tag struct {
	Solver           string
	Objective        bool
	SymmetryBreaking bool
	Strategy         string
}

func NewTag(solver string, options model.Options) Tag {
	return Tag{
		Solver:           solver,
		Objective:        options.Objective,
		SymmetryBreaking: options.SymmetryBreaking(),
		Strategy:         options.Strategy(),
	}
}

// Key is the store key of the tag, e.g. gini_obj_sb_pairing or
// kissat_noobj_nosb_slot.
func (tag Tag) Key() string {
	parts := []string{tag.Solver, "noobj", "nosb", tag.Strategy}
	if tag.Objective {
		parts[1] = "obj"
	}
	if tag.SymmetryBreaking {
		parts[2] = "sb"
	}
	return strings.Join(parts, "_")
}

// ParseTag reverses Key.
func ParseTag(key string) (Tag, bool) {
	parts := strings.SplitN(key, "_", 4)
	if len(parts) != 4 || parts[0] == "" || parts[3] == "" {
		return Tag{}, false
	}
	objective, sb := parts[1] == "obj", parts[2] == "sb"
	if (!objective && parts[1] != "noobj") || (!sb && parts[2] != "nosb") {
		return Tag{}, false
	}
	return Tag{Solver: parts[0], Objective: objective, SymmetryBreaking: sb, Strategy: parts[3]}, true
}
