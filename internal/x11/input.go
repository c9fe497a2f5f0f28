package x11

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/yourusername/stackwm/internal/types"
)

// GrabKey claims a keycode+modifier combination on the root.
func (c *Conn) GrabKey(modifiers uint16, code xproto.Keycode) error {
	return xproto.GrabKeyChecked(c.X, false, c.Root, modifiers, code,
		xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
}

// UngrabAllKeys releases every key grab on the root.
func (c *Conn) UngrabAllKeys() error {
	return xproto.UngrabKeyChecked(c.X, xproto.GrabAny, c.Root,
		xproto.ModMaskAny).Check()
}

// GrabButton claims a pointer button+modifier combination on the root.
func (c *Conn) GrabButton(modifiers uint16, button xproto.Button) error {
	return xproto.GrabButtonChecked(c.X, false, c.Root,
		uint16(xproto.EventMaskButtonPress),
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		xproto.WindowNone, xproto.CursorNone, byte(button), modifiers).Check()
}

// GrabButtonOn claims button presses on a specific window under the
// given modifiers, in sync mode so the press can be replayed to the
// client after the manager reacts to it.
func (c *Conn) GrabButtonOn(w types.WindowID, button xproto.Button, modifiers uint16) error {
	return xproto.GrabButtonChecked(c.X, false, xproto.Window(w),
		uint16(xproto.EventMaskButtonPress),
		xproto.GrabModeSync, xproto.GrabModeSync,
		xproto.WindowNone, xproto.CursorNone, byte(button), modifiers).Check()
}

// ReplayPointer releases a frozen pointer grab, replaying the pending
// button press to the client it was headed for.
func (c *Conn) ReplayPointer() error {
	return xproto.AllowEventsChecked(c.X, xproto.AllowReplayPointer,
		xproto.TimeCurrentTime).Check()
}

// GrabPointer starts an active pointer grab reporting motion and
// release events, used for interactive move and resize drags.
func (c *Conn) GrabPointer() error {
	reply, err := xproto.GrabPointer(c.X, false, c.Root,
		uint16(xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion),
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		xproto.WindowNone, xproto.CursorNone, xproto.TimeCurrentTime).Reply()
	if err != nil {
		return err
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return ErrGrabFailed
	}
	return nil
}

// UngrabPointer ends an active pointer grab.
func (c *Conn) UngrabPointer() error {
	return xproto.UngrabPointerChecked(c.X, xproto.TimeCurrentTime).Check()
}

// QueryPointer returns the pointer's root coordinates.
func (c *Conn) QueryPointer() (int32, int32, error) {
	reply, err := xproto.QueryPointer(c.X, c.Root).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int32(reply.RootX), int32(reply.RootY), nil
}
