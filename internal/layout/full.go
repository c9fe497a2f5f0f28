package layout

import (
	"encoding/json"

	"github.com/yourusername/stackwm/internal/stackset"
	"github.com/yourusername/stackwm/internal/types"
)

// Full gives every window the whole viewport, with the focused window
// stacked on top.
type Full struct{}

func (Full) DoLayout(viewport types.Rect, s stackset.Stack) ([]stackset.Placement, stackset.Layout, error) {
	wins := s.Integrate()
	out := make([]stackset.Placement, 0, len(wins))
	// Focus last: placements are in painter's order, bottom-most first.
	for _, w := range wins {
		if w == s.Focus {
			continue
		}
		out = append(out, stackset.Placement{Window: w, Rect: viewport})
	}
	out = append(out, stackset.Placement{Window: s.Focus, Rect: viewport})
	return out, nil, nil
}

func (Full) HandleMessage(stackset.Message) (stackset.Layout, error) {
	return nil, nil
}

func (Full) Description() string { return "Full" }

func (Full) Encode() ([]byte, error) {
	return json.Marshal(map[string]string{"type": "Full"})
}
