package manager

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/yourusername/stackwm/internal/types"
)

// cleanMask strips NumLock, CapsLock and button bits from an event
// state so bindings fire regardless of lock state.
func (m *Manager) cleanMask(state uint16) uint16 {
	return state &^ (m.numLockMask | xproto.ModMaskLock |
		xproto.ButtonMask1 | xproto.ButtonMask2 | xproto.ButtonMask3 |
		xproto.ButtonMask4 | xproto.ButtonMask5)
}

// lockCombos are the modifier variants each grab is registered under:
// plain, NumLock, CapsLock, and both together.
func (m *Manager) lockCombos() []uint16 {
	return []uint16{
		0,
		m.numLockMask,
		xproto.ModMaskLock,
		m.numLockMask | xproto.ModMaskLock,
	}
}

// grabKeys claims every bound key combination on the root.
func (m *Manager) grabKeys() error {
	if err := m.conn.UngrabAllKeys(); err != nil {
		return err
	}
	for binding := range m.keys {
		for _, code := range m.keymap.CodesForSym(binding.Sym) {
			for _, lock := range m.lockCombos() {
				if err := m.conn.GrabKey(binding.Mod|lock, code); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// grabButtons claims every bound pointer chord on the root.
func (m *Manager) grabButtons() error {
	for binding := range m.buttons {
		for _, lock := range m.lockCombos() {
			if err := m.conn.GrabButton(binding.Mod|lock, binding.Button); err != nil {
				return err
			}
		}
	}
	return nil
}

// grabClientButtons arms the click-to-focus grab on a managed window.
// The grab is synchronous; the press is replayed to the client after
// the manager reacts.
func (m *Manager) grabClientButtons(w types.WindowID) {
	for _, button := range []xproto.Button{
		xproto.ButtonIndex1, xproto.ButtonIndex2, xproto.ButtonIndex3,
	} {
		_ = m.conn.GrabButtonOn(w, button, xproto.ModMaskAny)
	}
}
