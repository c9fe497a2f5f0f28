package types

import "testing"

func TestShrinkByGap(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 1024, H: 768}
	g := Gap{Top: 20, Bottom: 10, Left: 5, Right: 5}

	got := r.Shrink(g)
	want := Rect{X: 5, Y: 20, W: 1014, H: 738}
	if got != want {
		t.Errorf("Shrink = %v, want %v", got, want)
	}

	// A zero gap is the identity.
	if r.Shrink(Gap{}) != r {
		t.Error("zero gap changed the rect")
	}

	// An oversized gap degrades to 1x1 instead of underflowing.
	huge := r.Shrink(Gap{Top: 1000, Bottom: 1000, Left: 2000, Right: 2000})
	if huge.W != 1 || huge.H != 1 {
		t.Errorf("oversized gap gave %v", huge)
	}
}

func TestRationalRoundTrip(t *testing.T) {
	screen := Rect{X: 1920, Y: 0, W: 1920, H: 1080}
	r := Rect{X: 2400, Y: 270, W: 960, H: 540}

	rr := r.ToRational(screen)
	back := rr.ToPixels(screen)
	if back != r {
		t.Errorf("round trip %v -> %v -> %v", r, rr, back)
	}
}

func TestRationalSurvivesResize(t *testing.T) {
	small := Rect{W: 1000, H: 1000}
	large := Rect{W: 2000, H: 2000}
	rr := RationalRect{X: 0.25, Y: 0.25, W: 0.5, H: 0.5}

	onSmall := rr.ToPixels(small)
	onLarge := rr.ToPixels(large)
	if onSmall != (Rect{X: 250, Y: 250, W: 500, H: 500}) {
		t.Errorf("on small screen: %v", onSmall)
	}
	if onLarge != (Rect{X: 500, Y: 500, W: 1000, H: 1000}) {
		t.Errorf("on large screen: %v", onLarge)
	}
}

func TestToPixelsNeverDegenerate(t *testing.T) {
	screen := Rect{W: 100, H: 100}
	tiny := RationalRect{X: 0.5, Y: 0.5, W: 0.0001, H: 0.0001}
	r := tiny.ToPixels(screen)
	if r.W < 1 || r.H < 1 {
		t.Errorf("degenerate rect %v", r)
	}
}

func TestContainsAndOverlaps(t *testing.T) {
	outer := Rect{X: 0, Y: 0, W: 100, H: 100}
	inner := Rect{X: 10, Y: 10, W: 50, H: 50}
	beside := Rect{X: 100, Y: 0, W: 10, H: 10}

	if !outer.Contains(inner) {
		t.Error("inner should be contained")
	}
	if outer.Contains(beside) {
		t.Error("beside should not be contained")
	}
	if !outer.Overlaps(inner) {
		t.Error("inner should overlap")
	}
	if outer.Overlaps(beside) {
		t.Error("touching edges should not overlap")
	}
}

func TestFixedHints(t *testing.T) {
	if !(SizeHints{MinW: 10, MinH: 10, MaxW: 10, MaxH: 10}).Fixed() {
		t.Error("equal min and max should be fixed")
	}
	if (SizeHints{MinW: 10, MinH: 10}).Fixed() {
		t.Error("no max should not be fixed")
	}
}
