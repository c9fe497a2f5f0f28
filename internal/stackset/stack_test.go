package stackset_test

import (
	"reflect"
	"testing"

	"github.com/yourusername/stackwm/internal/stackset"
	"github.com/yourusername/stackwm/internal/types"
)

func mkStack(up []uint32, focus uint32, down []uint32) *stackset.Stack {
	s := &stackset.Stack{Focus: types.WindowID(focus)}
	for _, w := range up {
		s.Up = append(s.Up, types.WindowID(w))
	}
	for _, w := range down {
		s.Down = append(s.Down, types.WindowID(w))
	}
	return s
}

func wins(ws ...uint32) []types.WindowID {
	out := make([]types.WindowID, len(ws))
	for i, w := range ws {
		out[i] = types.WindowID(w)
	}
	return out
}

func TestIntegrateOrder(t *testing.T) {
	// Up is stored nearest-first: [2 1] means 1 is at the top.
	s := mkStack([]uint32{2, 1}, 3, []uint32{4, 5})
	got := s.Integrate()
	want := wins(1, 2, 3, 4, 5)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Integrate() = %v, want %v", got, want)
	}
}

func TestDifferentiateRoundTrip(t *testing.T) {
	in := wins(1, 2, 3)
	s := stackset.Differentiate(in)
	if s == nil {
		t.Fatal("Differentiate returned nil for non-empty list")
	}
	if s.Focus != 1 {
		t.Errorf("focus = %d, want head", s.Focus)
	}
	if got := s.Integrate(); !reflect.DeepEqual(got, in) {
		t.Errorf("round trip = %v, want %v", got, in)
	}
	if stackset.Differentiate(nil) != nil {
		t.Error("Differentiate(nil) should be nil")
	}
}

func TestFocusUpDownWrap(t *testing.T) {
	s := mkStack(nil, 1, []uint32{2, 3})

	up := s.FocusUp()
	if up.Focus != 3 {
		t.Errorf("FocusUp at top wraps to %d, want 3", up.Focus)
	}
	down := up.FocusDown()
	if down.Focus != 1 {
		t.Errorf("FocusDown at bottom wraps to %d, want 1", down.Focus)
	}
}

func TestFocusUpDownInverse(t *testing.T) {
	cases := []*stackset.Stack{
		mkStack(nil, 1, nil),
		mkStack(nil, 1, []uint32{2}),
		mkStack([]uint32{1}, 2, []uint32{3, 4}),
		mkStack([]uint32{3, 2, 1}, 4, nil),
	}
	for _, s := range cases {
		want := s.Integrate()
		if got := s.FocusUp().FocusDown().Integrate(); !reflect.DeepEqual(got, want) {
			t.Errorf("FocusDown . FocusUp changed %v to %v", want, got)
		}
		if got := s.FocusDown().FocusUp().Integrate(); !reflect.DeepEqual(got, want) {
			t.Errorf("FocusUp . FocusDown changed %v to %v", want, got)
		}
	}
}

func TestFocusPreservedByRotation(t *testing.T) {
	s := mkStack([]uint32{1}, 2, []uint32{3})
	if got := s.FocusUp().FocusDown().Focus; got != 2 {
		t.Errorf("focus after up+down = %d, want 2", got)
	}
}

func TestSwapUpDown(t *testing.T) {
	s := mkStack([]uint32{1}, 2, []uint32{3})

	swapped := s.SwapUp()
	if got := swapped.Integrate(); !reflect.DeepEqual(got, wins(2, 1, 3)) {
		t.Errorf("SwapUp = %v, want [2 1 3]", got)
	}
	if swapped.Focus != 2 {
		t.Errorf("SwapUp moved focus to %d", swapped.Focus)
	}

	back := swapped.SwapDown()
	if got := back.Integrate(); !reflect.DeepEqual(got, wins(1, 2, 3)) {
		t.Errorf("SwapDown = %v, want [1 2 3]", got)
	}
}

func TestSwapMaster(t *testing.T) {
	s := mkStack([]uint32{2, 1}, 3, []uint32{4})
	m := s.SwapMaster()
	if m.Focus != 3 {
		t.Errorf("SwapMaster changed focus to %d", m.Focus)
	}
	// The old master lands behind the rest of up.
	if got := m.Integrate(); !reflect.DeepEqual(got, wins(3, 2, 1, 4)) {
		t.Errorf("SwapMaster = %v, want [3 2 1 4]", got)
	}
	if got := m.SwapMaster().Integrate(); !reflect.DeepEqual(got, m.Integrate()) {
		t.Errorf("SwapMaster not idempotent at master: %v", got)
	}
}

func TestFocusMaster(t *testing.T) {
	s := mkStack([]uint32{2, 1}, 3, []uint32{4})
	m := s.FocusMaster()
	if m.Focus != 1 {
		t.Errorf("FocusMaster = %d, want 1", m.Focus)
	}
	if got := m.Integrate(); !reflect.DeepEqual(got, s.Integrate()) {
		t.Errorf("FocusMaster reordered windows: %v", got)
	}
}

func TestFilterFocusFallsDownThenUp(t *testing.T) {
	s := mkStack([]uint32{1}, 2, []uint32{3})

	noFocus := s.Filter(func(w types.WindowID) bool { return w != 2 })
	if noFocus.Focus != 3 {
		t.Errorf("focus fell to %d, want next below", noFocus.Focus)
	}

	onlyUp := s.Filter(func(w types.WindowID) bool { return w == 1 })
	if onlyUp.Focus != 1 {
		t.Errorf("focus fell to %d, want 1", onlyUp.Focus)
	}

	if s.Filter(func(types.WindowID) bool { return false }) != nil {
		t.Error("empty filter result should be nil")
	}
}

func TestInsertUp(t *testing.T) {
	s := mkStack([]uint32{1}, 2, nil)
	in := s.InsertUp(9)
	if in.Focus != 9 {
		t.Errorf("InsertUp focus = %d, want 9", in.Focus)
	}
	if got := in.Integrate(); !reflect.DeepEqual(got, wins(1, 9, 2)) {
		t.Errorf("InsertUp = %v, want [1 9 2]", got)
	}
}
