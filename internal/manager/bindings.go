package manager

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/yourusername/stackwm/internal/config"
	"github.com/yourusername/stackwm/internal/keysym"
	"github.com/yourusername/stackwm/internal/layout"
	"github.com/yourusername/stackwm/internal/stackset"
	"github.com/yourusername/stackwm/internal/types"
)

// keyBinding is a cleaned modifier mask plus a key symbol.
type keyBinding struct {
	Mod uint16
	Sym xproto.Keysym
}

// buttonBinding is a cleaned modifier mask plus a pointer button.
type buttonBinding struct {
	Mod    uint16
	Button xproto.Button
}

// defaultKeys is the compiled-in binding table. The Mod field already
// includes the configured base modifier; grabKeys adds the lock variants.
func defaultKeys(cfg *config.Config) map[keyBinding]func(*Manager) {
	mod := modMaskFromName(cfg.Modifier)
	shift := uint16(xproto.ModMaskShift)

	pure := func(f func(stackset.StackSet) stackset.StackSet) func(*Manager) {
		return func(m *Manager) { m.Windows(f) }
	}

	keys := map[keyBinding]func(*Manager){
		{mod, keysym.XK_Return}:         func(m *Manager) { m.Windows(stackset.StackSet.SwapMaster) },
		{mod | shift, keysym.XK_Return}: func(m *Manager) { m.Spawn(m.cfg.Terminal) },

		{mod, keysym.XK_j}:         pure(stackset.StackSet.FocusDown),
		{mod, keysym.XK_k}:         pure(stackset.StackSet.FocusUp),
		{mod, keysym.XK_m}:         pure(stackset.StackSet.FocusMaster),
		{mod | shift, keysym.XK_j}: pure(stackset.StackSet.SwapDown),
		{mod | shift, keysym.XK_k}: pure(stackset.StackSet.SwapUp),

		{mod, keysym.XK_h}: func(m *Manager) { m.SendMessage(layout.Resize{Dir: layout.Shrink}) },
		{mod, keysym.XK_l}: func(m *Manager) { m.SendMessage(layout.Resize{Dir: layout.Expand}) },
		{mod, keysym.XK_comma}:  func(m *Manager) { m.SendMessage(layout.IncMasterN{Delta: 1}) },
		{mod, keysym.XK_period}: func(m *Manager) { m.SendMessage(layout.IncMasterN{Delta: -1}) },

		{mod, keysym.XK_space}: func(m *Manager) { m.SendMessage(layout.NextLayout{}) },
		{mod | shift, keysym.XK_space}: func(m *Manager) {
			m.SendMessage(layout.PrevLayout{})
		},

		{mod, keysym.XK_t}:         func(m *Manager) { m.SinkFocused() },
		{mod | shift, keysym.XK_t}: func(m *Manager) { m.FloatFocused() },

		{mod | shift, keysym.XK_c}: func(m *Manager) { m.Kill() },
		{mod, keysym.XK_q}:         func(m *Manager) { m.Restart() },
		{mod | shift, keysym.XK_q}: func(m *Manager) { m.Quit() },
	}

	workspaceSyms := []xproto.Keysym{
		keysym.XK_1, keysym.XK_2, keysym.XK_3, keysym.XK_4, keysym.XK_5,
		keysym.XK_6, keysym.XK_7, keysym.XK_8, keysym.XK_9,
	}
	for i, tag := range cfg.Tags {
		if i >= len(workspaceSyms) {
			break
		}
		tag := tag
		keys[keyBinding{mod, workspaceSyms[i]}] = pure(func(s stackset.StackSet) stackset.StackSet {
			return s.GreedyView(tag)
		})
		keys[keyBinding{mod | shift, workspaceSyms[i]}] = pure(func(s stackset.StackSet) stackset.StackSet {
			return s.Shift(tag)
		})
	}
	return keys
}

// defaultButtons is the compiled-in pointer binding table: move with
// mod+button1, raise to master with mod+button2, resize with
// mod+button3.
func defaultButtons(cfg *config.Config) map[buttonBinding]func(*Manager, types.WindowID) {
	mod := modMaskFromName(cfg.Modifier)
	return map[buttonBinding]func(*Manager, types.WindowID){
		{mod, xproto.ButtonIndex1}: func(m *Manager, w types.WindowID) {
			m.MouseMoveWindow(w)
		},
		{mod, xproto.ButtonIndex2}: func(m *Manager, w types.WindowID) {
			m.Windows(func(s stackset.StackSet) stackset.StackSet {
				return s.FocusWindow(w).SwapMaster()
			})
		},
		{mod, xproto.ButtonIndex3}: func(m *Manager, w types.WindowID) {
			m.MouseResizeWindow(w)
		},
	}
}
