package manager

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/yourusername/stackwm/internal/keysym"
	"github.com/yourusername/stackwm/internal/logging"
	"github.com/yourusername/stackwm/internal/stackset"
	"github.com/yourusername/stackwm/internal/types"
)

// handleEvent is the reducer: every event either advances manager
// state or is broadcast to the layouts. It never fails; one bad event
// must not take the loop down.
func (m *Manager) handleEvent(ev xgb.Event) {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		m.handleKeyPress(e)

	case xproto.MapRequestEvent:
		w := types.WindowID(e.Window)
		if m.windowset.Member(w) {
			return
		}
		attrs, err := m.conn.WindowAttributes(w)
		if err != nil || attrs.OverrideRedirect {
			return
		}
		m.Manage(w)

	case xproto.DestroyNotifyEvent:
		w := types.WindowID(e.Window)
		if m.windowset.Member(w) {
			m.unmanage(w, false)
		}

	case xproto.UnmapNotifyEvent:
		m.handleUnmap(types.WindowID(e.Window))

	case xproto.ConfigureRequestEvent:
		m.handleConfigureRequest(e)

	case xproto.ConfigureNotifyEvent:
		if e.Window == m.conn.Root {
			m.Rescreen()
		}

	case xproto.MappingNotifyEvent:
		m.handleMappingNotify(e)

	case xproto.ButtonPressEvent:
		m.handleButtonPress(e)

	case xproto.ButtonReleaseEvent:
		if m.dragging != nil {
			m.dragging.cleanup()
			m.dragging = nil
			return
		}
		m.BroadcastMessage(ev)

	case xproto.MotionNotifyEvent:
		if m.dragging != nil {
			// Compress the motion stream: only the newest pointer
			// position matters.
			x, y := int32(e.RootX), int32(e.RootY)
			for {
				next := m.conn.PollEvent()
				if next == nil {
					break
				}
				if mn, ok := next.(xproto.MotionNotifyEvent); ok {
					x, y = int32(mn.RootX), int32(mn.RootY)
					continue
				}
				m.pending = append(m.pending, next)
				break
			}
			m.dragging.motion(x, y)
			return
		}
		m.BroadcastMessage(ev)

	case xproto.EnterNotifyEvent:
		if e.Mode != xproto.NotifyModeNormal || e.Event == m.conn.Root {
			return
		}
		if !m.cfg.FocusFollowsMouse {
			return
		}
		w := types.WindowID(e.Event)
		if !m.windowset.Member(w) {
			return
		}
		m.Windows(func(s stackset.StackSet) stackset.StackSet {
			return s.FocusWindow(w)
		})

	case xproto.ClientMessageEvent:
		switch e.Type {
		case m.conn.Atoms.Restart:
			m.Restart()
		case m.conn.Atoms.Shutdown:
			m.Quit()
		default:
			m.BroadcastMessage(ev)
		}

	default:
		m.BroadcastMessage(ev)
	}
}

func (m *Manager) handleKeyPress(e xproto.KeyPressEvent) {
	sym := m.keymap.SymForCode(e.Detail)
	action, ok := m.keys[keyBinding{Mod: m.cleanMask(e.State), Sym: sym}]
	if !ok {
		return
	}
	action(m)
}

// handleUnmap distinguishes unmaps the manager itself caused, which are
// pre-counted, from client-initiated withdrawals.
func (m *Manager) handleUnmap(w types.WindowID) {
	if !m.windowset.Member(w) {
		return
	}
	if m.waitingUnmap[w] > 0 {
		m.waitingUnmap[w]--
		if m.waitingUnmap[w] == 0 {
			delete(m.waitingUnmap, w)
		}
		return
	}
	m.unmanage(w, true)
}

// handleConfigureRequest honours geometry requests from floating and
// unmanaged windows; tiled windows get a synthetic ConfigureNotify
// echoing the geometry they already have.
func (m *Manager) handleConfigureRequest(e xproto.ConfigureRequestEvent) {
	w := types.WindowID(e.Window)
	_, floating := m.windowset.Floating[w]
	managed := m.windowset.Member(w)

	if floating || !managed {
		var mask uint16
		var values []uint32
		if e.ValueMask&xproto.ConfigWindowX != 0 {
			mask |= xproto.ConfigWindowX
			values = append(values, uint32(e.X))
		}
		if e.ValueMask&xproto.ConfigWindowY != 0 {
			mask |= xproto.ConfigWindowY
			values = append(values, uint32(e.Y))
		}
		if e.ValueMask&xproto.ConfigWindowWidth != 0 {
			mask |= xproto.ConfigWindowWidth
			values = append(values, uint32(e.Width))
		}
		if e.ValueMask&xproto.ConfigWindowHeight != 0 {
			mask |= xproto.ConfigWindowHeight
			values = append(values, uint32(e.Height))
		}
		if e.ValueMask&xproto.ConfigWindowBorderWidth != 0 {
			mask |= xproto.ConfigWindowBorderWidth
			values = append(values, uint32(e.BorderWidth))
		}
		if e.ValueMask&xproto.ConfigWindowSibling != 0 {
			mask |= xproto.ConfigWindowSibling
			values = append(values, uint32(e.Sibling))
		}
		if e.ValueMask&xproto.ConfigWindowStackMode != 0 {
			mask |= xproto.ConfigWindowStackMode
			values = append(values, uint32(e.StackMode))
		}
		if mask != 0 {
			if err := m.conn.Configure(w, mask, values); err != nil {
				logging.Warn().Err(err).Uint32("window", uint32(w)).Msg("configure failed")
			}
		}
		if floating {
			// Keep the stored rational rect in step with where the
			// client asked to be.
			rr := m.suggestedRect(w)
			m.Windows(func(s stackset.StackSet) stackset.StackSet {
				return s.Float(w, rr)
			})
		}
		return
	}

	g, err := m.conn.Geometry(w)
	if err != nil {
		return
	}
	if err := m.conn.SendConfigureNotify(w, g, m.cfg.BorderWidth); err != nil {
		logging.Warn().Err(err).Uint32("window", uint32(w)).Msg("synthetic configure failed")
	}
}

func (m *Manager) handleMappingNotify(e xproto.MappingNotifyEvent) {
	km, err := keysym.Load(m.conn.X)
	if err != nil {
		logging.Warn().Err(err).Msg("keyboard mapping reload failed")
		return
	}
	m.keymap = km
	if e.Request == xproto.MappingModifier {
		if mask, err := keysym.ModifierFor(m.conn.X, m.keymap, keysym.XK_Num_Lock); err == nil {
			m.numLockMask = mask
		}
	}
	if err := m.grabKeys(); err != nil {
		logging.Warn().Err(err).Msg("key regrab failed")
	}
}

func (m *Manager) handleButtonPress(e xproto.ButtonPressEvent) {
	if e.Event == m.conn.Root {
		// A grabbed chord on the root; Child carries the window
		// under the pointer.
		action, ok := m.buttons[buttonBinding{Mod: m.cleanMask(e.State), Button: e.Detail}]
		if ok && e.Child != 0 {
			action(m, types.WindowID(e.Child))
		}
		return
	}
	// A synchronous click-to-focus grab on a client window: focus it,
	// then hand the click to the application.
	w := types.WindowID(e.Event)
	if m.windowset.Member(w) {
		m.Windows(func(s stackset.StackSet) stackset.StackSet {
			return s.FocusWindow(w)
		})
	}
	if err := m.conn.ReplayPointer(); err != nil {
		logging.Debug().Err(err).Msg("pointer replay failed")
	}
}
