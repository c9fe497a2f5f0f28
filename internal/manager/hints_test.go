package manager

import (
	"testing"

	"github.com/yourusername/stackwm/internal/types"
)

func TestApplySizeHintsNoHints(t *testing.T) {
	w, h := ApplySizeHints(types.SizeHints{}, 800, 600)
	if w != 800 || h != 600 {
		t.Errorf("unhinted size changed to %dx%d", w, h)
	}
}

func TestApplySizeHintsIncrements(t *testing.T) {
	// A terminal with a 7x14 cell grid and a 2x4 base.
	hints := types.SizeHints{BaseW: 2, BaseH: 4, IncW: 7, IncH: 14}

	w, h := ApplySizeHints(hints, 804, 600)
	// 802 rounds down to 114 cells = 798, plus base.
	if w != 800 {
		t.Errorf("width = %d, want 800", w)
	}
	// 596 rounds down to 42 rows = 588, plus base.
	if h != 592 {
		t.Errorf("height = %d, want 592", h)
	}

	// Already on the grid: unchanged.
	w, h = ApplySizeHints(hints, 800, 592)
	if w != 800 || h != 592 {
		t.Errorf("aligned size changed to %dx%d", w, h)
	}
}

func TestApplySizeHintsMax(t *testing.T) {
	hints := types.SizeHints{MaxW: 400, MaxH: 300}
	w, h := ApplySizeHints(hints, 800, 600)
	if w != 400 || h != 300 {
		t.Errorf("max clamp gave %dx%d, want 400x300", w, h)
	}
}

func TestApplySizeHintsAspect(t *testing.T) {
	// Lock to 4:3 from both sides.
	hints := types.SizeHints{
		MinAspectNum: 4, MinAspectDen: 3,
		MaxAspectNum: 4, MaxAspectDen: 3,
	}

	// Too wide: width shrinks to match.
	w, h := ApplySizeHints(hints, 1000, 600)
	if w != 800 || h != 600 {
		t.Errorf("wide input gave %dx%d, want 800x600", w, h)
	}

	// Too tall: height shrinks to match.
	w, h = ApplySizeHints(hints, 400, 600)
	if w != 400 || h != 300 {
		t.Errorf("tall input gave %dx%d, want 400x300", w, h)
	}
}

func TestApplySizeHintsMinimumResult(t *testing.T) {
	hints := types.SizeHints{BaseW: 50, BaseH: 50, IncW: 10, IncH: 10}
	w, h := ApplySizeHints(hints, 3, 3)
	if w < 1 || h < 1 {
		t.Errorf("result %dx%d below 1x1", w, h)
	}
}

func TestFixedSizeDetection(t *testing.T) {
	fixed := types.SizeHints{MinW: 400, MinH: 300, MaxW: 400, MaxH: 300}
	if !fixed.Fixed() {
		t.Error("min==max should read as fixed")
	}
	resizable := types.SizeHints{MinW: 100, MinH: 100, MaxW: 800, MaxH: 600}
	if resizable.Fixed() {
		t.Error("min!=max should not read as fixed")
	}
	if (types.SizeHints{}).Fixed() {
		t.Error("absent hints should not read as fixed")
	}
}
