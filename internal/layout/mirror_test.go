package layout_test

import (
	"reflect"
	"testing"

	"github.com/yourusername/stackwm/internal/layout"
	"github.com/yourusername/stackwm/internal/types"
)

func TestMirrorTransposes(t *testing.T) {
	viewport := types.Rect{W: 1000, H: 600}
	tall := layout.Tall{NMaster: 1, Delta: 0.03, Frac: 0.5}
	s := stackOf(2)

	straight, _, _ := tall.DoLayout(viewport, s)
	mirrored, _, err := layout.Mirror{Inner: tall}.DoLayout(viewport, s)
	if err != nil {
		t.Fatalf("DoLayout failed: %v", err)
	}

	// A vertical master/stack split becomes a horizontal one: the
	// master occupies the top half instead of the left half.
	if straight[0].Rect.W != 500 || straight[0].Rect.H != 600 {
		t.Fatalf("unexpected straight master %v", straight[0].Rect)
	}
	if mirrored[0].Rect.W != 1000 || mirrored[0].Rect.H != 300 {
		t.Errorf("mirrored master = %v, want 1000x300", mirrored[0].Rect)
	}
	checkTiling(t, viewport, mirrored)
}

func TestMirrorInvolution(t *testing.T) {
	viewport := types.Rect{X: 17, Y: 23, W: 1280, H: 720}
	tall := layout.Tall{NMaster: 1, Delta: 0.03, Frac: 0.6}
	double := layout.Mirror{Inner: layout.Mirror{Inner: tall}}

	for n := 1; n <= 6; n++ {
		s := stackOf(n)
		want, _, _ := tall.DoLayout(viewport, s)
		got, _, err := double.DoLayout(viewport, s)
		if err != nil {
			t.Fatalf("DoLayout failed: %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("n=%d: Mirror(Mirror(Tall)) = %v, want %v", n, got, want)
		}
	}
}

func TestMirrorForwardsMessages(t *testing.T) {
	m := layout.Mirror{Inner: layout.Tall{NMaster: 1, Delta: 0.1, Frac: 0.5}}

	updated, err := m.HandleMessage(layout.IncMasterN{Delta: 1})
	if err != nil || updated == nil {
		t.Fatalf("message not forwarded: %v", err)
	}
	inner := updated.(layout.Mirror).Inner.(layout.Tall)
	if inner.NMaster != 2 {
		t.Errorf("inner nmaster = %d, want 2", inner.NMaster)
	}

	if updated, _ := m.HandleMessage(layout.Hide{}); updated != nil {
		t.Error("unrecognised message should not change Mirror")
	}
}

func TestMirrorDescription(t *testing.T) {
	m := layout.Mirror{Inner: layout.NewTall()}
	if m.Description() != "Mirror Tall" {
		t.Errorf("description = %q", m.Description())
	}
}
