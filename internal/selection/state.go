package selection

import (
	"strings"

	"github.com/KaramelBytes/calview-cli/internal/variables"
)

// Matches applies the filter predicate to one name: the filter is split on
// commas, each term trimmed and lower-cased, and the name matches when it
// case-insensitively contains any term. An empty filter matches everything.
func Matches(name, filter string) bool {
	if filter == "" {
		return true
	}
	lower := strings.ToLower(name)
	for _, term := range strings.Split(filter, ",") {
		if strings.Contains(lower, strings.ToLower(strings.TrimSpace(term))) {
			return true
		}
	}
	return false
}

// State tracks the selected subset of a load's variables and edge-detects
// selection changes against a prior snapshot, so a downstream view resets its
// bounds exactly once per logical interaction rather than per redraw.
//
// A State is bound to one registry generation; it is rebuilt (all flags
// false) on every reload because indices are not stable across loads.
type State struct {
	reg  *variables.Registry
	prev []bool
}

// New builds the all-false selection state for a freshly classified registry.
func New(reg *variables.Registry) *State {
	return &State{reg: reg, prev: make([]bool, reg.Len())}
}

// Set updates the flag at index i. Stale indices are a no-op, never a fault.
func (s *State) Set(i int, selected bool) {
	if v := s.reg.At(i); v != nil {
		v.Selected = selected
	}
}

// Toggle flips the flag at index i, ignoring stale indices.
func (s *State) Toggle(i int) {
	if v := s.reg.At(i); v != nil {
		v.Selected = !v.Selected
	}
}

// Filtered returns the variables visible under the filter, in registry order.
func (s *State) Filtered(filter string) []*variables.Variable {
	var out []*variables.Variable
	for _, v := range s.reg.Vars() {
		if Matches(v.Name, filter) {
			out = append(out, v)
		}
	}
	return out
}

// SelectAllFiltered selects every filter-visible variable. Variables hidden
// by the filter keep their current flag.
func (s *State) SelectAllFiltered(filter string) {
	for _, v := range s.reg.Vars() {
		if Matches(v.Name, filter) {
			v.Selected = true
		}
	}
}

// UnselectAll clears every flag regardless of filter visibility.
func (s *State) UnselectAll() {
	for _, v := range s.reg.Vars() {
		v.Selected = false
	}
}

// UnselectAllFiltered clears only the filter-visible flags.
func (s *State) UnselectAllFiltered(filter string) {
	for _, v := range s.reg.Vars() {
		if Matches(v.Name, filter) {
			v.Selected = false
		}
	}
}

// SelectedCount returns the number of selected variables.
func (s *State) SelectedCount() int {
	n := 0
	for _, v := range s.reg.Vars() {
		if v.Selected {
			n++
		}
	}
	return n
}

// Changed compares the live selection to the prior snapshot. It reports true
// at most once per actual change and refreshes the snapshot, making the
// signal one-shot.
func (s *State) Changed() bool {
	changed := false
	for i, v := range s.reg.Vars() {
		if v.Selected != s.prev[i] {
			changed = true
			s.prev[i] = v.Selected
		}
	}
	return changed
}
