package manager

import (
	"github.com/yourusername/stackwm/internal/logging"
	"github.com/yourusername/stackwm/internal/stackset"
	"github.com/yourusername/stackwm/internal/types"
)

// MouseMoveWindow starts an interactive move: motion events drag the
// window and the release commits its final position to the floating
// map through the usual reconciliation path.
func (m *Manager) MouseMoveWindow(w types.WindowID) {
	if m.dragging != nil || !m.windowset.Member(w) {
		return
	}
	if err := m.conn.GrabPointer(); err != nil {
		logging.Debug().Err(err).Msg("move: pointer grab refused")
		return
	}
	g, err := m.conn.Geometry(w)
	if err != nil {
		_ = m.conn.UngrabPointer()
		return
	}
	px, py, err := m.conn.QueryPointer()
	if err != nil {
		_ = m.conn.UngrabPointer()
		return
	}
	offX := g.X - px
	offY := g.Y - py

	m.Windows(func(s stackset.StackSet) stackset.StackSet {
		return s.FocusWindow(w)
	})
	m.dragging = &drag{
		motion: func(x, y int32) {
			r := types.Rect{X: x + offX, Y: y + offY, W: g.W, H: g.H}
			if err := m.conn.MoveResize(w, r); err != nil {
				logging.Debug().Err(err).Msg("move: drag failed")
			}
		},
		cleanup: func() { m.finishDrag(w) },
	}
}

// MouseResizeWindow starts an interactive resize anchored at the
// window's top-left corner, honouring the client's size hints.
func (m *Manager) MouseResizeWindow(w types.WindowID) {
	if m.dragging != nil || !m.windowset.Member(w) {
		return
	}
	if err := m.conn.GrabPointer(); err != nil {
		logging.Debug().Err(err).Msg("resize: pointer grab refused")
		return
	}
	g, err := m.conn.Geometry(w)
	if err != nil {
		_ = m.conn.UngrabPointer()
		return
	}
	hints := m.conn.NormalHints(w)

	m.Windows(func(s stackset.StackSet) stackset.StackSet {
		return s.FocusWindow(w)
	})
	m.dragging = &drag{
		motion: func(x, y int32) {
			var nw, nh uint32 = 1, 1
			if x > g.X {
				nw = uint32(x - g.X)
			}
			if y > g.Y {
				nh = uint32(y - g.Y)
			}
			nw, nh = ApplySizeHints(hints, nw, nh)
			r := types.Rect{X: g.X, Y: g.Y, W: nw, H: nh}
			if err := m.conn.MoveResize(w, r); err != nil {
				logging.Debug().Err(err).Msg("resize: drag failed")
			}
		},
		cleanup: func() { m.finishDrag(w) },
	}
}

// finishDrag releases the pointer and records the window's final
// geometry as its floating rectangle.
func (m *Manager) finishDrag(w types.WindowID) {
	if err := m.conn.UngrabPointer(); err != nil {
		logging.Debug().Err(err).Msg("pointer ungrab failed")
	}
	rr := m.suggestedRect(w)
	m.Windows(func(s stackset.StackSet) stackset.StackSet {
		return s.Float(w, rr)
	})
}
