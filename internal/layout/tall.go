package layout

import (
	"encoding/json"

	"github.com/yourusername/stackwm/internal/stackset"
	"github.com/yourusername/stackwm/internal/types"
)

// Tall is the classic master/stack tile: NMaster windows share a left
// column sized Frac of the viewport width, the rest share the right
// column, and each column is split evenly. Resize messages move Frac by
// Delta; IncMasterN adjusts the master count.
type Tall struct {
	NMaster int
	Delta   float64
	Frac    float64
}

// NewTall returns a Tall with the conventional defaults: one master
// window at half the screen, resizing in 3% steps.
func NewTall() Tall {
	return Tall{NMaster: 1, Delta: 3.0 / 100.0, Frac: 1.0 / 2.0}
}

func (t Tall) DoLayout(viewport types.Rect, s stackset.Stack) ([]stackset.Placement, stackset.Layout, error) {
	wins := s.Integrate()
	rects := tile(t.Frac, viewport, t.NMaster, len(wins))
	out := make([]stackset.Placement, len(wins))
	for i, w := range wins {
		out[i] = stackset.Placement{Window: w, Rect: rects[i]}
	}
	return out, nil, nil
}

func (t Tall) HandleMessage(msg stackset.Message) (stackset.Layout, error) {
	switch m := msg.(type) {
	case Resize:
		switch m.Dir {
		case Shrink:
			t.Frac = clampFrac(t.Frac - t.Delta)
		case Expand:
			t.Frac = clampFrac(t.Frac + t.Delta)
		}
		return t, nil
	case IncMasterN:
		t.NMaster += m.Delta
		if t.NMaster < 0 {
			t.NMaster = 0
		}
		return t, nil
	}
	return nil, nil
}

func (Tall) Description() string { return "Tall" }

func (t Tall) Encode() ([]byte, error) {
	return json.Marshal(struct {
		Type    string  `json:"type"`
		NMaster int     `json:"nmaster"`
		Delta   float64 `json:"delta"`
		Frac    float64 `json:"frac"`
	}{"Tall", t.NMaster, t.Delta, t.Frac})
}

func clampFrac(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// tile computes the rectangles for n windows with nmaster in the master
// column at fraction frac. With no master windows, or nothing beyond
// them, a single column spans the viewport.
func tile(frac float64, viewport types.Rect, nmaster, n int) []types.Rect {
	if n <= 0 {
		return nil
	}
	if nmaster == 0 || n <= nmaster {
		return splitVertically(n, viewport)
	}
	left, right := splitHorizontallyBy(frac, viewport)
	return append(splitVertically(nmaster, left), splitVertically(n-nmaster, right)...)
}

// splitVertically cuts r into k rows of equal height, spreading the
// rounding remainder over the top rows so the union covers r exactly.
func splitVertically(k int, r types.Rect) []types.Rect {
	if k <= 0 {
		return nil
	}
	out := make([]types.Rect, k)
	base := r.H / uint32(k)
	extra := r.H % uint32(k)
	y := r.Y
	for i := range out {
		h := base
		if uint32(i) < extra {
			h++
		}
		if h < 1 {
			h = 1
		}
		out[i] = types.Rect{X: r.X, Y: y, W: r.W, H: h}
		y += int32(h)
	}
	return out
}

// splitHorizontallyBy cuts r into a left column of fraction f and the
// remainder on the right.
func splitHorizontallyBy(f float64, r types.Rect) (types.Rect, types.Rect) {
	leftw := uint32(f * float64(r.W))
	if leftw < 1 {
		leftw = 1
	}
	if r.W > 1 && leftw > r.W-1 {
		leftw = r.W - 1
	}
	rightw := uint32(1)
	if r.W > leftw {
		rightw = r.W - leftw
	}
	left := types.Rect{X: r.X, Y: r.Y, W: leftw, H: r.H}
	right := types.Rect{X: r.X + int32(leftw), Y: r.Y, W: rightw, H: r.H}
	return left, right
}
