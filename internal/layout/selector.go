package layout

import (
	"encoding/json"
	"fmt"

	"github.com/yourusername/stackwm/internal/stackset"
	"github.com/yourusername/stackwm/internal/types"
)

// Selector holds an ordered, non-empty list of layouts and delegates to
// the head. NextLayout and PrevLayout rotate the list; JumpToLayout
// rotates the first layout with a matching description to the head. The
// outgoing head receives a Hide message before any switch.
type Selector struct {
	Layouts []stackset.Layout
}

// NewSelector builds a Selector over the given layouts.
func NewSelector(layouts ...stackset.Layout) Selector {
	return Selector{Layouts: layouts}
}

func (c Selector) head() stackset.Layout { return c.Layouts[0] }

func (c Selector) replaceHead(l stackset.Layout) Selector {
	out := make([]stackset.Layout, len(c.Layouts))
	copy(out, c.Layouts)
	out[0] = l
	return Selector{Layouts: out}
}

func (c Selector) DoLayout(viewport types.Rect, s stackset.Stack) ([]stackset.Placement, stackset.Layout, error) {
	placements, updated, err := c.head().DoLayout(viewport, s)
	if err != nil {
		return nil, nil, err
	}
	if updated != nil {
		return placements, c.replaceHead(updated), nil
	}
	return placements, nil, nil
}

func (c Selector) HandleMessage(msg stackset.Message) (stackset.Layout, error) {
	switch m := msg.(type) {
	case NextLayout:
		return c.rotate(1)
	case PrevLayout:
		return c.rotate(len(c.Layouts) - 1)
	case JumpToLayout:
		for i, l := range c.Layouts {
			if l.Description() == m.Name {
				return c.rotate(i)
			}
		}
		return nil, nil
	case ReleaseResources:
		// Shutdown reaches every member, not just the visible head.
		out := make([]stackset.Layout, len(c.Layouts))
		changed := false
		for i, l := range c.Layouts {
			updated, err := l.HandleMessage(msg)
			if err != nil {
				return nil, err
			}
			if updated != nil {
				out[i] = updated
				changed = true
			} else {
				out[i] = l
			}
		}
		if !changed {
			return nil, nil
		}
		return Selector{Layouts: out}, nil
	}
	updated, err := c.head().HandleMessage(msg)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}
	return c.replaceHead(updated), nil
}

// rotate moves the layout at index n to the head, preserving cyclic
// order, after hiding the current head.
func (c Selector) rotate(n int) (stackset.Layout, error) {
	if len(c.Layouts) < 2 {
		return nil, nil
	}
	n = n % len(c.Layouts)
	if n == 0 {
		return nil, nil
	}
	cur := c
	if hidden, err := c.head().HandleMessage(Hide{}); err != nil {
		return nil, err
	} else if hidden != nil {
		cur = c.replaceHead(hidden)
	}
	out := make([]stackset.Layout, 0, len(cur.Layouts))
	out = append(out, cur.Layouts[n:]...)
	out = append(out, cur.Layouts[:n]...)
	return Selector{Layouts: out}, nil
}

func (c Selector) Description() string { return c.head().Description() }

func (c Selector) Encode() ([]byte, error) {
	raws := make([]json.RawMessage, len(c.Layouts))
	for i, l := range c.Layouts {
		raw, err := l.Encode()
		if err != nil {
			return nil, err
		}
		raws[i] = raw
	}
	return json.Marshal(struct {
		Type    string            `json:"type"`
		Layouts []json.RawMessage `json:"layouts"`
	}{"Selector", raws})
}

// Decode rebuilds a layout from its Encode form. It recognises every
// built-in layout; unknown types are an error so a resume with a stale
// layout set fails loudly instead of silently dropping state.
func Decode(raw []byte) (stackset.Layout, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("layout: decode: %w", err)
	}
	switch head.Type {
	case "Full":
		return Full{}, nil
	case "Tall":
		var t struct {
			NMaster int     `json:"nmaster"`
			Delta   float64 `json:"delta"`
			Frac    float64 `json:"frac"`
		}
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("layout: decode Tall: %w", err)
		}
		return Tall{NMaster: t.NMaster, Delta: t.Delta, Frac: t.Frac}, nil
	case "Mirror":
		var m struct {
			Inner json.RawMessage `json:"inner"`
		}
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("layout: decode Mirror: %w", err)
		}
		inner, err := Decode(m.Inner)
		if err != nil {
			return nil, err
		}
		return Mirror{Inner: inner}, nil
	case "Selector":
		var c struct {
			Layouts []json.RawMessage `json:"layouts"`
		}
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("layout: decode Selector: %w", err)
		}
		if len(c.Layouts) == 0 {
			return nil, fmt.Errorf("layout: decode Selector: empty layout list")
		}
		layouts := make([]stackset.Layout, len(c.Layouts))
		for i, lr := range c.Layouts {
			l, err := Decode(lr)
			if err != nil {
				return nil, err
			}
			layouts[i] = l
		}
		return Selector{Layouts: layouts}, nil
	}
	return nil, fmt.Errorf("layout: unknown layout type %q", head.Type)
}

// Default is the layout stack a fresh workspace starts with: Tall, its
// mirror, and Full.
func Default() stackset.Layout {
	tall := NewTall()
	return NewSelector(tall, Mirror{Inner: tall}, Full{})
}
