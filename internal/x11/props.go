package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/yourusername/stackwm/internal/types"
)

// WM_NORMAL_HINTS flag bits, ICCCM 4.1.2.3.
const (
	hintPMinSize   = 1 << 4
	hintPMaxSize   = 1 << 5
	hintPResizeInc = 1 << 6
	hintPAspect    = 1 << 7
	hintPBaseSize  = 1 << 8
)

// NormalHints reads and decodes WM_NORMAL_HINTS. Absent or malformed
// properties yield empty hints, not an error.
func (c *Conn) NormalHints(w types.WindowID) types.SizeHints {
	var h types.SizeHints
	reply, err := xproto.GetProperty(c.X, false, xproto.Window(w),
		xproto.AtomWmNormalHints, xproto.GetPropertyTypeAny, 0, 18).Reply()
	if err != nil || reply == nil || reply.Format != 32 || len(reply.Value) < 4 {
		return h
	}
	fields := decodeCard32s(reply.Value)
	if len(fields) < 18 {
		return h
	}
	flags := fields[0]
	if flags&hintPMinSize != 0 {
		h.MinW = int(int32(fields[5]))
		h.MinH = int(int32(fields[6]))
	}
	if flags&hintPMaxSize != 0 {
		h.MaxW = int(int32(fields[7]))
		h.MaxH = int(int32(fields[8]))
	}
	if flags&hintPResizeInc != 0 {
		h.IncW = int(int32(fields[9]))
		h.IncH = int(int32(fields[10]))
	}
	if flags&hintPAspect != 0 {
		h.MinAspectNum = int(int32(fields[11]))
		h.MinAspectDen = int(int32(fields[12]))
		h.MaxAspectNum = int(int32(fields[13]))
		h.MaxAspectDen = int(int32(fields[14]))
	}
	if flags&hintPBaseSize != 0 {
		h.BaseW = int(int32(fields[15]))
		h.BaseH = int(int32(fields[16]))
	} else if flags&hintPMinSize != 0 {
		// ICCCM: base size defaults to the minimum size.
		h.BaseW = h.MinW
		h.BaseH = h.MinH
	}
	return h
}

// TransientFor returns the window w is a transient of, if any.
func (c *Conn) TransientFor(w types.WindowID) (types.WindowID, bool) {
	reply, err := xproto.GetProperty(c.X, false, xproto.Window(w),
		xproto.AtomWmTransientFor, xproto.GetPropertyTypeAny, 0, 1).Reply()
	if err != nil || reply == nil || len(reply.Value) < 4 {
		return 0, false
	}
	fields := decodeCard32s(reply.Value)
	if len(fields) == 0 || fields[0] == 0 {
		return 0, false
	}
	return types.WindowID(fields[0]), true
}

// SetWMState writes the ICCCM WM_STATE property.
func (c *Conn) SetWMState(w types.WindowID, state uint32) error {
	data := encodeCard32s([]uint32{state, 0})
	return xproto.ChangePropertyChecked(c.X, xproto.PropModeReplace,
		xproto.Window(w), c.Atoms.WMState, c.Atoms.WMState, 32, 2, data).Check()
}

// Protocols lists the atoms in w's WM_PROTOCOLS property.
func (c *Conn) Protocols(w types.WindowID) []xproto.Atom {
	reply, err := xproto.GetProperty(c.X, false, xproto.Window(w),
		c.Atoms.WMProtocols, xproto.GetPropertyTypeAny, 0, 64).Reply()
	if err != nil || reply == nil {
		return nil
	}
	fields := decodeCard32s(reply.Value)
	out := make([]xproto.Atom, len(fields))
	for i, f := range fields {
		out[i] = xproto.Atom(f)
	}
	return out
}

// HasProtocol reports whether w advertises the given WM_PROTOCOLS atom.
func (c *Conn) HasProtocol(w types.WindowID, atom xproto.Atom) bool {
	for _, p := range c.Protocols(w) {
		if p == atom {
			return true
		}
	}
	return false
}

// SendProtocolMessage delivers a WM_PROTOCOLS client message such as
// WM_DELETE_WINDOW or WM_TAKE_FOCUS to w.
func (c *Conn) SendProtocolMessage(w types.WindowID, protocol xproto.Atom) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(w),
		Type:   c.Atoms.WMProtocols,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(protocol),
			uint32(xproto.TimeCurrentTime),
			0, 0, 0,
		}),
	}
	return xproto.SendEventChecked(c.X, false, xproto.Window(w),
		xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}

// SendClientMessage delivers a bare client message of the given type to
// w. With a zero event mask the server routes it to the client that
// created w, which lets the manager wake its own event loop.
func (c *Conn) SendClientMessage(w types.WindowID, msgType xproto.Atom, datum uint32) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(w),
		Type:   msgType,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{datum, 0, 0, 0, 0}),
	}
	return xproto.SendEventChecked(c.X, false, xproto.Window(w),
		xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}

func decodeCard32s(value []byte) []uint32 {
	out := make([]uint32, 0, len(value)/4)
	for v := value; len(v) >= 4; v = v[4:] {
		out = append(out, uint32(v[0])|uint32(v[1])<<8|uint32(v[2])<<16|uint32(v[3])<<24)
	}
	return out
}

func encodeCard32s(fields []uint32) []byte {
	out := make([]byte, 0, len(fields)*4)
	for _, f := range fields {
		out = append(out, byte(f), byte(f>>8), byte(f>>16), byte(f>>24))
	}
	return out
}

// SetSupportingWMName creates an off-screen check window and names it
// so pagers and a later --replace can identify the running manager.
// Returns the check window; the manager selection is taken with it
// separately, by AcquireSelection.
func (c *Conn) SetSupportingWMName(name string) (types.WindowID, error) {
	wid, err := xproto.NewWindowId(c.X)
	if err != nil {
		return 0, fmt.Errorf("x11: allocate check window: %w", err)
	}
	err = xproto.CreateWindowChecked(c.X, 0, wid, c.Root,
		-1, -1, 1, 1, 0, xproto.WindowClassInputOnly,
		xproto.Visualid(xproto.WindowClassCopyFromParent), 0, nil).Check()
	if err != nil {
		return 0, fmt.Errorf("x11: create check window: %w", err)
	}
	err = xproto.ChangePropertyChecked(c.X, xproto.PropModeReplace, wid,
		c.Atoms.NetWMName, c.Atoms.UTF8String, 8, uint32(len(name)), []byte(name)).Check()
	if err != nil {
		return 0, fmt.Errorf("x11: name check window: %w", err)
	}
	return types.WindowID(wid), nil
}
