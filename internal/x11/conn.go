// Package x11 wraps the display-server connection. Every server call
// the manager makes goes through here; nothing above this package
// touches the wire protocol directly.
package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/yourusername/stackwm/internal/types"
)

// ErrAnotherWM means the root window's substructure-redirect mask is
// already owned: a window manager is running and --replace was not
// given.
var ErrAnotherWM = errors.New("x11: another window manager is already running")

// ErrConnClosed means the event-reading primitive itself failed; the
// process cannot continue.
var ErrConnClosed = errors.New("x11: connection closed")

// Atoms caches the interned atoms the manager uses.
type Atoms struct {
	WMProtocols    xproto.Atom
	WMDeleteWindow xproto.Atom
	WMTakeFocus    xproto.Atom
	WMState        xproto.Atom
	NetWMName      xproto.Atom
	UTF8String     xproto.Atom
	ManagerSel     xproto.Atom // WM_S<screen>
	Restart        xproto.Atom
	Shutdown       xproto.Atom
}

// WM_STATE values from ICCCM 4.1.3.1.
const (
	WMStateWithdrawn = 0
	WMStateNormal    = 1
	WMStateIconic    = 3
)

// rootEventMask is what the manager selects on the root window.
const rootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskButtonPress |
	xproto.EventMaskPropertyChange

// ClientEventMask is selected on every managed window.
const ClientEventMask = xproto.EventMaskStructureNotify |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskPropertyChange

// Conn is an open display connection plus the root screen and the atoms
// the manager needs.
type Conn struct {
	X      *xgb.Conn
	Setup  *xproto.SetupInfo
	Screen *xproto.ScreenInfo
	Root   xproto.Window
	Atoms  Atoms

	haveXinerama bool
}

// Dial opens the display named by DISPLAY and interns the manager's
// atoms.
func Dial() (*Conn, error) {
	x, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11: connect: %w", err)
	}
	setup := xproto.Setup(x)
	if setup == nil || len(setup.Roots) == 0 {
		x.Close()
		return nil, fmt.Errorf("x11: could not parse connection setup")
	}
	c := &Conn{X: x, Setup: setup}
	c.Screen = setup.DefaultScreen(x)
	c.Root = c.Screen.Root

	if err := xinerama.Init(x); err == nil {
		c.haveXinerama = true
	}

	names := []struct {
		name string
		dst  *xproto.Atom
	}{
		{"WM_PROTOCOLS", &c.Atoms.WMProtocols},
		{"WM_DELETE_WINDOW", &c.Atoms.WMDeleteWindow},
		{"WM_TAKE_FOCUS", &c.Atoms.WMTakeFocus},
		{"WM_STATE", &c.Atoms.WMState},
		{"_NET_WM_NAME", &c.Atoms.NetWMName},
		{"UTF8_STRING", &c.Atoms.UTF8String},
		{fmt.Sprintf("WM_S%d", x.DefaultScreen), &c.Atoms.ManagerSel},
		{"STACKWM_RESTART", &c.Atoms.Restart},
		{"STACKWM_SHUTDOWN", &c.Atoms.Shutdown},
	}
	for _, a := range names {
		reply, err := xproto.InternAtom(x, false, uint16(len(a.name)), a.name).Reply()
		if err != nil {
			x.Close()
			return nil, fmt.Errorf("x11: intern %s: %w", a.name, err)
		}
		*a.dst = reply.Atom
	}
	return c, nil
}

// Close shuts the connection down.
func (c *Conn) Close() {
	if c.X != nil {
		c.X.Close()
	}
}

// SelectRootInput claims the substructure-redirect mask on the root.
// BadAccess maps to ErrAnotherWM.
func (c *Conn) SelectRootInput() error {
	err := xproto.ChangeWindowAttributesChecked(c.X, c.Root,
		xproto.CwEventMask, []uint32{rootEventMask}).Check()
	if err != nil {
		if _, ok := err.(xproto.AccessError); ok {
			return ErrAnotherWM
		}
		return fmt.Errorf("x11: select root input: %w", err)
	}
	return nil
}

// Screens reports the physical outputs. Without Xinerama, or with no
// active heads, the root geometry is the single screen.
func (c *Conn) Screens() ([]types.Rect, error) {
	if c.haveXinerama {
		if reply, err := xinerama.QueryScreens(c.X).Reply(); err == nil && len(reply.ScreenInfo) > 0 {
			out := make([]types.Rect, len(reply.ScreenInfo))
			for i, si := range reply.ScreenInfo {
				out[i] = types.Rect{
					X: int32(si.XOrg),
					Y: int32(si.YOrg),
					W: uint32(si.Width),
					H: uint32(si.Height),
				}
			}
			return out, nil
		}
	}
	return []types.Rect{{
		X: 0, Y: 0,
		W: uint32(c.Screen.WidthInPixels),
		H: uint32(c.Screen.HeightInPixels),
	}}, nil
}

// Sync forces a full round trip, flushing every queued request and
// draining their errors.
func (c *Conn) Sync() {
	_, _ = xproto.GetInputFocus(c.X).Reply()
}

// WaitEvent blocks for the next event. ErrConnClosed is fatal; any
// other error is an asynchronous server error to log and survive.
func (c *Conn) WaitEvent() (xgb.Event, error) {
	ev, xerr := c.X.WaitForEvent()
	if ev == nil && xerr == nil {
		return nil, ErrConnClosed
	}
	if xerr != nil {
		return nil, fmt.Errorf("x11: %s", xerr.Error())
	}
	return ev, nil
}

// PollEvent returns the next queued event without blocking.
func (c *Conn) PollEvent() xgb.Event {
	ev, _ := c.X.PollForEvent()
	return ev
}

// AllocColor resolves a "#rrggbb" string to a pixel value in the
// default colormap.
func (c *Conn) AllocColor(hex string) (uint32, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, fmt.Errorf("x11: bad color %q: %w", hex, err)
	}
	reply, err := xproto.AllocColor(c.X, c.Screen.DefaultColormap,
		uint16(r)<<8, uint16(g)<<8, uint16(b)<<8).Reply()
	if err != nil {
		return 0, fmt.Errorf("x11: alloc color %q: %w", hex, err)
	}
	return reply.Pixel, nil
}
