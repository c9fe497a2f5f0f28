package layout_test

import (
	"testing"

	"github.com/yourusername/stackwm/internal/layout"
	"github.com/yourusername/stackwm/internal/stackset"
	"github.com/yourusername/stackwm/internal/types"
)

func descriptions(l stackset.Layout) []string {
	sel := l.(layout.Selector)
	out := make([]string, len(sel.Layouts))
	for i, member := range sel.Layouts {
		out[i] = member.Description()
	}
	return out
}

func TestSelectorNextRotatesLeft(t *testing.T) {
	sel := layout.NewSelector(layout.NewTall(), layout.Mirror{Inner: layout.NewTall()}, layout.Full{})

	next, err := sel.HandleMessage(layout.NextLayout{})
	if err != nil || next == nil {
		t.Fatalf("NextLayout not handled: %v", err)
	}
	got := descriptions(next)
	want := []string{"Mirror Tall", "Full", "Tall"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after next: %v, want %v", got, want)
		}
	}
}

func TestSelectorPrevRotatesRight(t *testing.T) {
	sel := layout.NewSelector(layout.NewTall(), layout.Full{})

	prev, err := sel.HandleMessage(layout.PrevLayout{})
	if err != nil || prev == nil {
		t.Fatalf("PrevLayout not handled: %v", err)
	}
	if prev.Description() != "Full" {
		t.Errorf("head after prev = %q, want Full", prev.Description())
	}
}

func TestSelectorJumpByDescription(t *testing.T) {
	sel := layout.NewSelector(layout.NewTall(), layout.Mirror{Inner: layout.NewTall()}, layout.Full{})

	jumped, err := sel.HandleMessage(layout.JumpToLayout{Name: "Full"})
	if err != nil || jumped == nil {
		t.Fatalf("jump not handled: %v", err)
	}
	if jumped.Description() != "Full" {
		t.Errorf("head = %q, want Full", jumped.Description())
	}

	// Unknown names change nothing.
	if updated, _ := sel.HandleMessage(layout.JumpToLayout{Name: "Spiral"}); updated != nil {
		t.Error("jump to unknown layout should be ignored")
	}
}

func TestSelectorDelegatesToHead(t *testing.T) {
	viewport := types.Rect{W: 640, H: 480}
	sel := layout.NewSelector(layout.Full{}, layout.NewTall())
	s := stackOf(2)

	placements, updated, err := sel.DoLayout(viewport, s)
	if err != nil {
		t.Fatalf("DoLayout failed: %v", err)
	}
	if updated != nil {
		t.Error("Full produced a layout update")
	}
	for _, p := range placements {
		if p.Rect != viewport {
			t.Errorf("head is not Full: %v", p.Rect)
		}
	}

	// Tile messages reach the head, not the whole list.
	resized, err := sel.HandleMessage(layout.Resize{Dir: layout.Expand})
	if err != nil {
		t.Fatalf("message failed: %v", err)
	}
	if resized != nil {
		t.Error("Full recognised a resize message")
	}
}

func TestSelectorSingleEntryRotationIsNoop(t *testing.T) {
	sel := layout.NewSelector(layout.Full{})
	if updated, _ := sel.HandleMessage(layout.NextLayout{}); updated != nil {
		t.Error("rotating a single layout should change nothing")
	}
}
