package selection_test

import (
	"testing"

	"github.com/KaramelBytes/calview-cli/internal/selection"
	"github.com/KaramelBytes/calview-cli/internal/variables"
)

func newState(t *testing.T, columns ...string) (*selection.State, *variables.Registry) {
	t.Helper()
	reg := variables.Classify(columns)
	return selection.New(reg), reg
}

func flags(reg *variables.Registry) []bool {
	out := make([]bool, reg.Len())
	for i, v := range reg.Vars() {
		out[i] = v.Selected
	}
	return out
}

func TestMatches(t *testing.T) {
	cases := []struct {
		name, filter string
		want         bool
	}{
		{"X", "", true},
		{"X", "x", true},
		{"Y", "x", false},
		{"X", "x,y", true},
		{"Y", "x,y", true},
		{"Gain", " ai ", true},
		{"Gain", "z, in", true},
		{"Gain", "z", false},
	}
	for _, tc := range cases {
		if got := selection.Matches(tc.name, tc.filter); got != tc.want {
			t.Fatalf("Matches(%q, %q) = %v, want %v", tc.name, tc.filter, got, tc.want)
		}
	}
}

func TestSelectAllFilteredKeepsHiddenFlags(t *testing.T) {
	st, reg := newState(t, "Error:X", "Error:Y", "Error:Z")
	st.Set(1, true) // Y selected, then hidden by the filter

	st.SelectAllFiltered("x,z")
	got := flags(reg)
	want := []bool{true, true, true}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("flags = %v, want %v", got, want)
		}
	}

	st.UnselectAllFiltered("x,z")
	got = flags(reg)
	// Y was untouched by both filtered operations.
	want = []bool{false, true, false}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("flags after unselect filtered = %v, want %v", got, want)
		}
	}
}

func TestSelectThenUnselectAllRestoresZeroVector(t *testing.T) {
	st, reg := newState(t, "Error:X", "Value:Y")
	st.SelectAllFiltered("")
	st.UnselectAll()
	for i, f := range flags(reg) {
		if f {
			t.Fatalf("flag %d still set after UnselectAll", i)
		}
	}
}

func TestFilteredRoundTripRestoresPriorVector(t *testing.T) {
	st, reg := newState(t, "Error:A", "Error:B", "Error:C")
	st.Set(0, true)
	before := flags(reg)

	// Select-all-filtered then unselect-all-filtered with the same filter
	// restores the exact pre-operation vector.
	st.SelectAllFiltered("b")
	st.UnselectAllFiltered("b")
	after := flags(reg)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("vector changed at %d: before %v after %v", i, before, after)
		}
	}
}

func TestChangedIsOneShot(t *testing.T) {
	st, _ := newState(t, "Error:X", "Error:Y")
	if st.Changed() {
		t.Fatalf("fresh state must not report a change")
	}
	st.Set(0, true)
	if !st.Changed() {
		t.Fatalf("expected change after Set")
	}
	if st.Changed() {
		t.Fatalf("change signal must be one-shot")
	}
	// Toggling twice lands back on the snapshot value.
	st.Toggle(0)
	st.Toggle(0)
	if st.Changed() {
		t.Fatalf("no net change expected")
	}
}

func TestStaleIndexIsNoOp(t *testing.T) {
	st, reg := newState(t, "Error:X")
	st.Set(5, true)
	st.Toggle(-1)
	if st.SelectedCount() != 0 {
		t.Fatalf("stale accesses mutated state")
	}
	if reg.At(0).Selected {
		t.Fatalf("unexpected selection")
	}
}
