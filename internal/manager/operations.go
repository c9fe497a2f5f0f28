package manager

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/yourusername/stackwm/internal/ipc"
	"github.com/yourusername/stackwm/internal/layout"
	"github.com/yourusername/stackwm/internal/logging"
	"github.com/yourusername/stackwm/internal/stackset"
	"github.com/yourusername/stackwm/internal/types"
	"github.com/yourusername/stackwm/internal/x11"
)

// Windows is the reconciliation choke point: it applies a pure
// transform to the StackSet and then makes the server match the new
// model. Every state change in the manager flows through here.
func (m *Manager) Windows(f func(stackset.StackSet) stackset.StackSet) {
	old := m.windowset
	m.windowset = f(old)

	// Workspaces that were visible and no longer are get a Hide
	// message before their windows disappear.
	newVisibleTags := make(map[string]bool)
	for _, scr := range m.windowset.Screens() {
		newVisibleTags[scr.Workspace.Tag] = true
	}
	for _, scr := range old.Screens() {
		if !newVisibleTags[scr.Workspace.Tag] {
			m.messageWorkspace(scr.Workspace.Tag, layout.Hide{})
		}
	}

	// Place every visible window screen by screen, current first.
	visible := make(map[types.WindowID]struct{})
	var restackOrder []types.WindowID // top-most first
	focused, hasFocus := m.windowset.Peek()

	for _, scr := range m.windowset.Screens() {
		ws := scr.Workspace
		viewport := scr.Detail.Rect.Shrink(scr.Detail.Gap)

		var placements []stackset.Placement
		if ws.Stack != nil {
			tiled := ws.Stack.Filter(func(w types.WindowID) bool {
				_, floating := m.windowset.Floating[w]
				return !floating
			})
			if tiled != nil {
				var updated stackset.Layout
				placements, updated = m.runLayout(ws.Layout, viewport, *tiled)
				if updated != nil {
					m.windowset = m.windowset.SetLayout(ws.Tag, updated)
				}
			}
		}

		var floats []types.WindowID
		for _, w := range stackset.Integrate(ws.Stack) {
			if _, ok := m.windowset.Floating[w]; ok {
				floats = append(floats, w)
			}
		}
		// The focused window of the current screen stays on top of
		// the floating layer.
		if hasFocus && scr.ID == m.windowset.Current.ID {
			for i, w := range floats {
				if w == focused && i > 0 {
					floats = append([]types.WindowID{w}, append(floats[:i:i], floats[i+1:]...)...)
					break
				}
			}
		}

		for _, w := range floats {
			rr := m.windowset.Floating[w]
			m.placeWindow(w, rr.ToPixels(scr.Detail.Rect))
			visible[w] = struct{}{}
		}
		restackOrder = append(restackOrder, floats...)

		// Placements come bottom-most first; restacking wants
		// top-most first, below the floating layer.
		for i := len(placements) - 1; i >= 0; i-- {
			restackOrder = append(restackOrder, placements[i].Window)
		}
		for _, p := range placements {
			m.placeWindow(p.Window, p.Rect)
			visible[p.Window] = struct{}{}
		}
	}

	if err := m.conn.Restack(restackOrder); err != nil {
		logging.Warn().Err(err).Msg("restack failed")
	}

	m.applyFocus()

	// Anything we had mapped that no layout placed gets hidden. The
	// comparison is by window identity: a window that moved between
	// two visible workspaces stays mapped.
	for w := range m.mapped {
		if _, ok := visible[w]; !ok {
			m.hide(w)
		}
	}
	m.mapped = visible

	// The moves and maps above generate EnterNotify events that must
	// not feed focus-follows-mouse. Flush the server and pull them
	// off the queue; everything else is kept for the loop.
	m.conn.Sync()
	for {
		ev := m.conn.PollEvent()
		if ev == nil {
			break
		}
		if _, isEnter := ev.(xproto.EnterNotifyEvent); isEnter {
			continue
		}
		m.pending = append(m.pending, ev)
	}

	m.publishSnapshot()
}

// Refresh reconciles without changing the model.
func (m *Manager) Refresh() error {
	m.Windows(func(s stackset.StackSet) stackset.StackSet { return s })
	return nil
}

// runLayout runs a layout, substituting Full for this cycle when the
// layout fails. The workspace's stored layout is not replaced on
// failure.
func (m *Manager) runLayout(l stackset.Layout, viewport types.Rect, s stackset.Stack) (placements []stackset.Placement, updated stackset.Layout) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error().Interface("panic", r).Str("layout", l.Description()).Msg("layout panicked, using Full")
			placements, _, _ = layout.Full{}.DoLayout(viewport, s)
			updated = nil
		}
	}()
	placements, updated, err := l.DoLayout(viewport, s)
	if err != nil {
		logging.Error().Err(err).Str("layout", l.Description()).Msg("layout failed, using Full")
		placements, _, _ = layout.Full{}.DoLayout(viewport, s)
		return placements, nil
	}
	return placements, updated
}

// placeWindow positions a window and makes it viewable. Server errors
// are logged and the window skipped; it was likely destroyed between
// events.
func (m *Manager) placeWindow(w types.WindowID, r types.Rect) {
	bw := 2 * m.cfg.BorderWidth
	if r.W > bw {
		r.W -= bw
	}
	if r.H > bw {
		r.H -= bw
	}
	if err := m.conn.MoveResize(w, r); err != nil {
		logging.Warn().Err(err).Uint32("window", uint32(w)).Msg("move/resize failed")
		return
	}
	m.reveal(w)
}

// applyFocus hands input focus to the focused window of the current
// screen, or parks it on the root, and repaints borders to match.
func (m *Manager) applyFocus() {
	focused, ok := m.windowset.Peek()
	for _, w := range m.windowset.AllWindows() {
		pixel := m.normalPixel
		if ok && w == focused {
			pixel = m.focusedPixel
		}
		if err := m.conn.SetBorderColor(w, pixel); err != nil {
			logging.Debug().Err(err).Uint32("window", uint32(w)).Msg("border update failed")
		}
	}
	if !ok {
		if err := m.conn.FocusRoot(); err != nil {
			logging.Warn().Err(err).Msg("focus root failed")
		}
		return
	}
	if err := m.conn.SetInputFocus(focused); err != nil {
		logging.Warn().Err(err).Uint32("window", uint32(focused)).Msg("focus failed")
		return
	}
	if m.conn.HasProtocol(focused, m.conn.Atoms.WMTakeFocus) {
		if err := m.conn.SendProtocolMessage(focused, m.conn.Atoms.WMTakeFocus); err != nil {
			logging.Debug().Err(err).Msg("WM_TAKE_FOCUS failed")
		}
	}
}

// SendMessage delivers a message to the current workspace's layout and
// refreshes when the layout changed.
func (m *Manager) SendMessage(msg stackset.Message) {
	ws := m.windowset.Current.Workspace
	updated, err := ws.Layout.HandleMessage(msg)
	if err != nil {
		logging.Error().Err(err).Str("layout", ws.Layout.Description()).Msg("message failed")
		return
	}
	if updated == nil {
		return
	}
	m.windowset = m.windowset.SetLayout(ws.Tag, updated)
	_ = m.Refresh()
}

// BroadcastMessage delivers a message to every workspace's layout
// without refreshing.
func (m *Manager) BroadcastMessage(msg stackset.Message) {
	for _, ws := range m.windowset.Workspaces() {
		m.messageWorkspace(ws.Tag, msg)
	}
}

// messageWorkspace sends a message to one workspace's layout, storing
// the updated layout without a refresh.
func (m *Manager) messageWorkspace(tag string, msg stackset.Message) {
	for _, ws := range m.windowset.Workspaces() {
		if ws.Tag != tag {
			continue
		}
		updated, err := ws.Layout.HandleMessage(msg)
		if err != nil {
			logging.Error().Err(err).Str("tag", tag).Msg("message failed")
			return
		}
		if updated != nil {
			m.windowset = m.windowset.SetLayout(tag, updated)
		}
		return
	}
}

// Manage brings a new window under management. Fixed-size and
// transient windows float at their suggested geometry; everything else
// tiles at the focus of the current workspace.
func (m *Manager) Manage(w types.WindowID) {
	if m.windowset.Member(w) {
		return
	}
	if err := m.conn.SelectClientInput(w, true); err != nil {
		logging.Warn().Err(err).Uint32("window", uint32(w)).Msg("manage: select input failed")
		return
	}
	if err := m.conn.SetBorderWidth(w, m.cfg.BorderWidth); err != nil {
		logging.Debug().Err(err).Uint32("window", uint32(w)).Msg("manage: border width failed")
	}
	m.grabClientButtons(w)

	hints := m.conn.NormalHints(w)
	_, transient := m.conn.TransientFor(w)
	if transient || hints.Fixed() {
		rr := m.suggestedRect(w)
		m.Windows(func(s stackset.StackSet) stackset.StackSet {
			return s.Float(w, rr)
		})
		return
	}
	m.Windows(func(s stackset.StackSet) stackset.StackSet {
		return s.InsertUp(w)
	})
}

// suggestedRect converts a window's current server geometry into a
// rational rect on the current screen.
func (m *Manager) suggestedRect(w types.WindowID) types.RationalRect {
	screen := m.windowset.Current.Detail.Rect
	g, err := m.conn.Geometry(w)
	if err != nil {
		// Destroyed already, or never mapped; give it a quarter
		// screen in the middle.
		return types.RationalRect{X: 0.25, Y: 0.25, W: 0.5, H: 0.5}
	}
	return g.ToRational(screen)
}

// unmanage removes a window from the model. setWithdrawn is false when
// the window is already destroyed and no server call can reach it. The
// tracking maps are purged first so the reconciliation pass does not
// try to hide the departed window.
func (m *Manager) unmanage(w types.WindowID, setWithdrawn bool) {
	delete(m.mapped, w)
	delete(m.waitingUnmap, w)
	m.Windows(func(s stackset.StackSet) stackset.StackSet {
		return s.Delete(w)
	})
	if setWithdrawn {
		if err := m.conn.SetWMState(w, x11.WMStateWithdrawn); err != nil {
			logging.Debug().Err(err).Uint32("window", uint32(w)).Msg("unmanage: WM_STATE failed")
		}
	}
}

// Kill closes the focused client, politely when it speaks
// WM_DELETE_WINDOW and forcibly otherwise.
func (m *Manager) Kill() {
	w, ok := m.windowset.Peek()
	if !ok {
		return
	}
	if m.conn.HasProtocol(w, m.conn.Atoms.WMDeleteWindow) {
		if err := m.conn.SendProtocolMessage(w, m.conn.Atoms.WMDeleteWindow); err != nil {
			logging.Warn().Err(err).Uint32("window", uint32(w)).Msg("delete message failed")
		}
		return
	}
	if err := m.conn.KillClient(w); err != nil {
		logging.Warn().Err(err).Uint32("window", uint32(w)).Msg("kill failed")
	}
}

// hide unmaps a window the manager no longer shows. StructureNotify is
// suppressed around the unmap and the expected-unmap counter bumped so
// the resulting UnmapNotify is not mistaken for a client withdrawal.
func (m *Manager) hide(w types.WindowID) {
	if err := m.conn.SelectClientInput(w, false); err != nil {
		logging.Debug().Err(err).Uint32("window", uint32(w)).Msg("hide: select input failed")
	}
	if err := m.conn.Unmap(w); err != nil {
		logging.Warn().Err(err).Uint32("window", uint32(w)).Msg("hide: unmap failed")
	}
	if err := m.conn.SelectClientInput(w, true); err != nil {
		logging.Debug().Err(err).Uint32("window", uint32(w)).Msg("hide: restore input failed")
	}
	if err := m.conn.SetWMState(w, x11.WMStateIconic); err != nil {
		logging.Debug().Err(err).Uint32("window", uint32(w)).Msg("hide: WM_STATE failed")
	}
	m.waitingUnmap[w]++
}

// reveal maps a window back onto the screen.
func (m *Manager) reveal(w types.WindowID) {
	if err := m.conn.SetWMState(w, x11.WMStateNormal); err != nil {
		logging.Debug().Err(err).Uint32("window", uint32(w)).Msg("reveal: WM_STATE failed")
	}
	if err := m.conn.Map(w); err != nil {
		logging.Warn().Err(err).Uint32("window", uint32(w)).Msg("reveal: map failed")
	}
}

// Rescreen re-reads the physical screen layout and rebinds workspaces
// positionally. Gap settings survive for screens that still exist; new
// screens start with no gap.
func (m *Manager) Rescreen() {
	rects, err := m.conn.Screens()
	if err != nil {
		logging.Warn().Err(err).Msg("rescreen: query failed")
		return
	}
	oldScreens := m.windowset.Screens()
	details := make([]stackset.ScreenDetail, len(rects))
	for i, r := range rects {
		details[i] = stackset.ScreenDetail{Rect: r}
		if i < len(oldScreens) {
			details[i].Gap = oldScreens[i].Detail.Gap
		}
	}
	if len(details) > len(m.cfg.Tags) {
		details = details[:len(m.cfg.Tags)]
	}
	m.Windows(func(s stackset.StackSet) stackset.StackSet {
		return s.WithScreens(details)
	})
}

// FloatFocused floats the focused window at its current geometry.
func (m *Manager) FloatFocused() {
	w, ok := m.windowset.Peek()
	if !ok {
		return
	}
	rr := m.suggestedRect(w)
	m.Windows(func(s stackset.StackSet) stackset.StackSet {
		return s.Float(w, rr)
	})
}

// SinkFocused pushes the focused window back into the tiling layer.
func (m *Manager) SinkFocused() {
	w, ok := m.windowset.Peek()
	if !ok {
		return
	}
	m.Windows(func(s stackset.StackSet) stackset.StackSet {
		return s.Sink(w)
	})
}

// publishSnapshot hands the IPC server a fresh read-only view.
func (m *Manager) publishSnapshot() {
	if m.publish == nil {
		return
	}
	snap := ipc.Snapshot{CurrentTag: m.windowset.CurrentTag()}
	if w, ok := m.windowset.Peek(); ok {
		snap.FocusedWindow = uint32(w)
	}
	screenOf := make(map[string]int)
	for _, scr := range m.windowset.Screens() {
		screenOf[scr.Workspace.Tag] = int(scr.ID)
		snap.Screens = append(snap.Screens, ipc.ScreenInfo{
			ID:     int(scr.ID),
			Tag:    scr.Workspace.Tag,
			X:      scr.Detail.Rect.X,
			Y:      scr.Detail.Rect.Y,
			Width:  scr.Detail.Rect.W,
			Height: scr.Detail.Rect.H,
		})
	}
	for _, ws := range m.windowset.Workspaces() {
		info := ipc.WorkspaceInfo{
			Tag:    ws.Tag,
			Layout: ws.Layout.Description(),
			Screen: -1,
		}
		if id, ok := screenOf[ws.Tag]; ok {
			info.Screen = id
		}
		for _, w := range stackset.Integrate(ws.Stack) {
			info.Windows = append(info.Windows, uint32(w))
			if _, ok := m.windowset.Floating[w]; ok {
				info.Floating = append(info.Floating, uint32(w))
			}
		}
		if ws.Stack != nil {
			info.Focused = uint32(ws.Stack.Focus)
		}
		snap.Workspaces = append(snap.Workspaces, info)
	}
	m.publish(snap)
}
