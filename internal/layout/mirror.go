package layout

import (
	"encoding/json"

	"github.com/yourusername/stackwm/internal/stackset"
	"github.com/yourusername/stackwm/internal/types"
)

// Mirror wraps a layout, transposing its input viewport and output
// rectangles so columns become rows. Mirroring twice is the identity.
type Mirror struct {
	Inner stackset.Layout
}

func (m Mirror) DoLayout(viewport types.Rect, s stackset.Stack) ([]stackset.Placement, stackset.Layout, error) {
	placements, updated, err := m.Inner.DoLayout(mirrorRect(viewport), s)
	if err != nil {
		return nil, nil, err
	}
	out := make([]stackset.Placement, len(placements))
	for i, p := range placements {
		out[i] = stackset.Placement{Window: p.Window, Rect: mirrorRect(p.Rect)}
	}
	if updated != nil {
		return out, Mirror{Inner: updated}, nil
	}
	return out, nil, nil
}

func (m Mirror) HandleMessage(msg stackset.Message) (stackset.Layout, error) {
	updated, err := m.Inner.HandleMessage(msg)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}
	return Mirror{Inner: updated}, nil
}

func (m Mirror) Description() string { return "Mirror " + m.Inner.Description() }

func (m Mirror) Encode() ([]byte, error) {
	inner, err := m.Inner.Encode()
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type  string          `json:"type"`
		Inner json.RawMessage `json:"inner"`
	}{"Mirror", inner})
}

func mirrorRect(r types.Rect) types.Rect {
	return types.Rect{X: r.Y, Y: r.X, W: r.H, H: r.W}
}
