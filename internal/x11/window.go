package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/yourusername/stackwm/internal/types"
)

// SelectClientInput selects the managed-window event mask, optionally
// suppressing StructureNotify. The manager drops StructureNotify around
// its own unmaps so they do not come back as client withdrawals.
func (c *Conn) SelectClientInput(w types.WindowID, structureNotify bool) error {
	mask := uint32(ClientEventMask)
	if !structureNotify {
		mask &^= xproto.EventMaskStructureNotify
	}
	return xproto.ChangeWindowAttributesChecked(c.X, xproto.Window(w),
		xproto.CwEventMask, []uint32{mask}).Check()
}

// WindowAttributes fetches the attributes of w.
func (c *Conn) WindowAttributes(w types.WindowID) (*xproto.GetWindowAttributesReply, error) {
	return xproto.GetWindowAttributes(c.X, xproto.Window(w)).Reply()
}

// Geometry returns w's current server-side geometry.
func (c *Conn) Geometry(w types.WindowID) (types.Rect, error) {
	reply, err := xproto.GetGeometry(c.X, xproto.Drawable(w)).Reply()
	if err != nil {
		return types.Rect{}, fmt.Errorf("x11: geometry of %d: %w", w, err)
	}
	return types.Rect{
		X: int32(reply.X),
		Y: int32(reply.Y),
		W: uint32(reply.Width),
		H: uint32(reply.Height),
	}, nil
}

// MoveResize places w at r. Width and height are clamped to 1.
func (c *Conn) MoveResize(w types.WindowID, r types.Rect) error {
	if r.W < 1 {
		r.W = 1
	}
	if r.H < 1 {
		r.H = 1
	}
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)
	values := []uint32{uint32(r.X), uint32(r.Y), r.W, r.H}
	return xproto.ConfigureWindowChecked(c.X, xproto.Window(w), mask, values).Check()
}

// Configure applies a raw configure mask, used to honour a client's
// ConfigureRequest verbatim.
func (c *Conn) Configure(w types.WindowID, mask uint16, values []uint32) error {
	return xproto.ConfigureWindowChecked(c.X, xproto.Window(w), mask, values).Check()
}

// SetBorderWidth sets w's border width in pixels.
func (c *Conn) SetBorderWidth(w types.WindowID, width uint32) error {
	return xproto.ConfigureWindowChecked(c.X, xproto.Window(w),
		xproto.ConfigWindowBorderWidth, []uint32{width}).Check()
}

// SetBorderColor paints w's border with an allocated pixel.
func (c *Conn) SetBorderColor(w types.WindowID, pixel uint32) error {
	return xproto.ChangeWindowAttributesChecked(c.X, xproto.Window(w),
		xproto.CwBorderPixel, []uint32{pixel}).Check()
}

// Map makes w viewable.
func (c *Conn) Map(w types.WindowID) error {
	return xproto.MapWindowChecked(c.X, xproto.Window(w)).Check()
}

// Unmap hides w.
func (c *Conn) Unmap(w types.WindowID) error {
	return xproto.UnmapWindowChecked(c.X, xproto.Window(w)).Check()
}

// Restack enforces a top-to-bottom stacking order over the given
// windows: each window is stacked directly below its predecessor.
func (c *Conn) Restack(order []types.WindowID) error {
	if len(order) == 0 {
		return nil
	}
	if err := xproto.ConfigureWindowChecked(c.X, xproto.Window(order[0]),
		xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove}).Check(); err != nil {
		return err
	}
	for i := 1; i < len(order); i++ {
		err := xproto.ConfigureWindowChecked(c.X, xproto.Window(order[i]),
			xproto.ConfigWindowSibling|xproto.ConfigWindowStackMode,
			[]uint32{uint32(order[i-1]), xproto.StackModeBelow}).Check()
		if err != nil {
			return err
		}
	}
	return nil
}

// SetInputFocus hands keyboard focus to w.
func (c *Conn) SetInputFocus(w types.WindowID) error {
	return xproto.SetInputFocusChecked(c.X, xproto.InputFocusPointerRoot,
		xproto.Window(w), xproto.TimeCurrentTime).Check()
}

// FocusRoot parks keyboard focus on the root window.
func (c *Conn) FocusRoot() error {
	return xproto.SetInputFocusChecked(c.X, xproto.InputFocusPointerRoot,
		c.Root, xproto.TimeCurrentTime).Check()
}

// QueryTree lists the root's direct children in stacking order.
func (c *Conn) QueryTree() ([]types.WindowID, error) {
	reply, err := xproto.QueryTree(c.X, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11: query tree: %w", err)
	}
	out := make([]types.WindowID, len(reply.Children))
	for i, ch := range reply.Children {
		out[i] = types.WindowID(ch)
	}
	return out, nil
}

// KillClient forcibly disconnects the client owning w.
func (c *Conn) KillClient(w types.WindowID) error {
	return xproto.KillClientChecked(c.X, uint32(w)).Check()
}

// SendConfigureNotify echoes w's given geometry back to it as a
// synthetic ConfigureNotify, the ICCCM answer to a ConfigureRequest the
// manager chose not to honour.
func (c *Conn) SendConfigureNotify(w types.WindowID, r types.Rect, borderWidth uint32) error {
	ev := xproto.ConfigureNotifyEvent{
		Event:            xproto.Window(w),
		Window:           xproto.Window(w),
		AboveSibling:     0,
		X:                int16(r.X),
		Y:                int16(r.Y),
		Width:            uint16(r.W),
		Height:           uint16(r.H),
		BorderWidth:      uint16(borderWidth),
		OverrideRedirect: false,
	}
	return xproto.SendEventChecked(c.X, false, xproto.Window(w),
		xproto.EventMaskStructureNotify, string(ev.Bytes())).Check()
}
