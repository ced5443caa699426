// Package scenario describes vector operation sequences in YAML or JSON and
// replays them against every vector variant, comparing each with a plain
// slice.
package scenario

import (
	"errors"
	"fmt"
)

// Op names accepted in a Step.
const (
	OpPushBack    = "push_back"
	OpPushRange   = "push_range"
	OpPopBack     = "pop_back"
	OpInsert      = "insert"
	OpErase       = "erase"
	OpResize      = "resize"
	OpClear       = "clear"
	OpReserve     = "reserve"
	OpShrinkToFit = "shrink_to_fit"
	OpGet         = "get"
	OpAt          = "at"
)

var knownOps = map[string]bool{
	OpPushBack: true, OpPushRange: true, OpPopBack: true, OpInsert: true,
	OpErase: true, OpResize: true, OpClear: true, OpReserve: true,
	OpShrinkToFit: true, OpGet: true, OpAt: true,
}

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid scenario")

// Scenario is a named sequence of steps applied to an initially populated
// vector of ints.
type Scenario struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// InlineCapacity and FixedCapacity override the runner's defaults when
	// positive.
	InlineCapacity int    `yaml:"inline_capacity,omitempty" json:"inline_capacity,omitempty"`
	FixedCapacity  int    `yaml:"fixed_capacity,omitempty" json:"fixed_capacity,omitempty"`
	Initial        []int  `yaml:"initial,omitempty" json:"initial,omitempty"`
	Steps          []Step `yaml:"steps" json:"steps"`
}

// Step is one operation. Which fields matter depends on Op:
//
//	push_back      value
//	push_range     values
//	pop_back, clear, shrink_to_fit
//	insert         pos, then values, or count copies of value, or value
//	erase          pos, and last for a range
//	resize         size, filled with value when given
//	reserve        size
//	get, at        pos (get is the unchecked index, at the checked one)
type Step struct {
	Op     string `yaml:"op" json:"op"`
	Pos    int    `yaml:"pos,omitempty" json:"pos,omitempty"`
	Last   *int   `yaml:"last,omitempty" json:"last,omitempty"`
	Count  int    `yaml:"count,omitempty" json:"count,omitempty"`
	Value  *int   `yaml:"value,omitempty" json:"value,omitempty"`
	Values []int  `yaml:"values,omitempty" json:"values,omitempty"`
	Size   int    `yaml:"size,omitempty" json:"size,omitempty"`
}

func (s Step) value() int {
	if s.Value == nil {
		return 0
	}
	return *s.Value
}

// Validate checks names and counts. Positions are deliberately not checked:
// replaying bad positions is how precondition handling is compared.
func (sc *Scenario) Validate() error {
	if sc.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalid)
	}
	if sc.InlineCapacity < 0 || sc.FixedCapacity < 0 {
		return fmt.Errorf("%w: %s: capacities must not be negative", ErrInvalid, sc.Name)
	}
	for i, st := range sc.Steps {
		if !knownOps[st.Op] {
			return fmt.Errorf("%w: %s: step %d: unknown op %q", ErrInvalid, sc.Name, i, st.Op)
		}
		if st.Count < 0 || st.Size < 0 {
			return fmt.Errorf("%w: %s: step %d: negative count or size", ErrInvalid, sc.Name, i)
		}
	}
	return nil
}
