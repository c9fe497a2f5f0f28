package layout_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/yourusername/stackwm/internal/layout"
	"github.com/yourusername/stackwm/internal/stackset"
	"github.com/yourusername/stackwm/internal/types"
)

func stackOf(n int) stackset.Stack {
	s := stackset.Stack{Focus: 1}
	for i := 2; i <= n; i++ {
		s.Down = append(s.Down, types.WindowID(i))
	}
	return s
}

func area(r types.Rect) uint64 {
	return uint64(r.W) * uint64(r.H)
}

// checkTiling asserts the tiling laws: every rectangle inside the
// viewport, no two overlapping, and the union covering the viewport.
func checkTiling(t *testing.T, viewport types.Rect, placements []stackset.Placement) {
	t.Helper()
	var total uint64
	for i, p := range placements {
		if p.Rect.W < 1 || p.Rect.H < 1 {
			t.Fatalf("placement %d has degenerate rect %v", i, p.Rect)
		}
		if !viewport.Contains(p.Rect) {
			t.Fatalf("placement %d (%v) outside viewport %v", i, p.Rect, viewport)
		}
		for j := i + 1; j < len(placements); j++ {
			if p.Rect.Overlaps(placements[j].Rect) {
				t.Fatalf("placements %d and %d overlap: %v vs %v", i, j, p.Rect, placements[j].Rect)
			}
		}
		total += area(p.Rect)
	}
	if total != area(viewport) {
		t.Fatalf("union covers %d pixels of %d", total, area(viewport))
	}
}

func TestTallProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		viewport := types.Rect{
			X: int32(rng.Intn(2000) - 1000),
			Y: int32(rng.Intn(2000) - 1000),
			W: uint32(100 + rng.Intn(3000)),
			H: uint32(100 + rng.Intn(3000)),
		}
		n := 1 + rng.Intn(10)
		tall := layout.Tall{
			NMaster: rng.Intn(4),
			Delta:   0.03,
			Frac:    0.05 + 0.9*rng.Float64(),
		}
		s := stackOf(n)
		placements, updated, err := tall.DoLayout(viewport, s)
		if err != nil {
			t.Fatalf("DoLayout failed: %v", err)
		}
		if updated != nil {
			t.Fatal("pure layout claimed to have changed")
		}
		if len(placements) != n {
			t.Fatalf("placed %d of %d windows", len(placements), n)
		}
		checkTiling(t, viewport, placements)
	}
}

func TestTallSingleColumnCases(t *testing.T) {
	viewport := types.Rect{W: 1024, H: 768}

	// No more windows than master slots: one full-width column.
	tall := layout.NewTall()
	placements, _, _ := tall.DoLayout(viewport, stackOf(1))
	if len(placements) != 1 || placements[0].Rect != viewport {
		t.Errorf("single window got %v, want full viewport", placements[0].Rect)
	}

	// nmaster = 0: everything in one column too.
	zero := layout.Tall{NMaster: 0, Delta: 0.03, Frac: 0.5}
	placements, _, _ = zero.DoLayout(viewport, stackOf(3))
	for _, p := range placements {
		if p.Rect.W != viewport.W {
			t.Errorf("window %d not full width: %v", p.Window, p.Rect)
		}
	}
}

func TestTallMessages(t *testing.T) {
	tall := layout.Tall{NMaster: 1, Delta: 0.1, Frac: 0.5}

	shrunk, err := tall.HandleMessage(layout.Resize{Dir: layout.Shrink})
	if err != nil || shrunk == nil {
		t.Fatalf("shrink not handled: %v", err)
	}
	if got := shrunk.(layout.Tall).Frac; math.Abs(got-0.4) > 1e-9 {
		t.Errorf("frac after shrink = %v, want 0.4", got)
	}

	// The fraction clamps to [0, 1].
	l := stackset.Layout(tall)
	for i := 0; i < 20; i++ {
		next, _ := l.HandleMessage(layout.Resize{Dir: layout.Expand})
		if next != nil {
			l = next
		}
	}
	if got := l.(layout.Tall).Frac; got != 1 {
		t.Errorf("frac after many expands = %v, want 1", got)
	}

	// Master count clamps at zero.
	dec, _ := tall.HandleMessage(layout.IncMasterN{Delta: -5})
	if got := dec.(layout.Tall).NMaster; got != 0 {
		t.Errorf("nmaster = %d, want 0", got)
	}

	// Unknown messages are ignored.
	if updated, err := tall.HandleMessage(layout.Hide{}); err != nil || updated != nil {
		t.Error("hide should be unrecognised by Tall")
	}
}

func TestFullShowsFocusOnTop(t *testing.T) {
	viewport := types.Rect{W: 800, H: 600}
	s := stackset.Stack{Focus: 2, Up: []types.WindowID{1}, Down: []types.WindowID{3}}

	placements, _, err := layout.Full{}.DoLayout(viewport, s)
	if err != nil {
		t.Fatalf("DoLayout failed: %v", err)
	}
	if len(placements) != 3 {
		t.Fatalf("placed %d windows, want 3", len(placements))
	}
	for _, p := range placements {
		if p.Rect != viewport {
			t.Errorf("window %d got %v, want full viewport", p.Window, p.Rect)
		}
	}
	// Placements are bottom-most first; the focus comes last.
	if placements[len(placements)-1].Window != 2 {
		t.Error("focused window is not on top")
	}
}
