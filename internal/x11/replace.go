package x11

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/yourusername/stackwm/internal/types"
)

// ErrGrabFailed means an active pointer grab was refused.
var ErrGrabFailed = errors.New("x11: pointer grab failed")

const replaceTimeout = 10 * time.Second

// AcquireSelection performs the ICCCM manager-selection handover on
// WM_S<screen> using the given owner window. With replace set and an
// incumbent present, it takes the selection and waits for the
// incumbent's selection-owner window to be destroyed before returning.
// Without replace, an incumbent is an error.
func (c *Conn) AcquireSelection(owner types.WindowID, replace bool) error {
	reply, err := xproto.GetSelectionOwner(c.X, c.Atoms.ManagerSel).Reply()
	if err != nil {
		return fmt.Errorf("x11: query manager selection: %w", err)
	}
	incumbent := reply.Owner

	if incumbent != xproto.WindowNone && !replace {
		return ErrAnotherWM
	}

	if incumbent != xproto.WindowNone {
		// Watch the incumbent's owner window so its DestroyNotify
		// tells us the old manager has shut down.
		err := xproto.ChangeWindowAttributesChecked(c.X, incumbent,
			xproto.CwEventMask, []uint32{xproto.EventMaskStructureNotify}).Check()
		if err != nil {
			// It may already be gone; treat the selection as free.
			incumbent = xproto.WindowNone
		}
	}

	err = xproto.SetSelectionOwnerChecked(c.X, xproto.Window(owner),
		c.Atoms.ManagerSel, xproto.TimeCurrentTime).Check()
	if err != nil {
		return fmt.Errorf("x11: take manager selection: %w", err)
	}
	cur, err := xproto.GetSelectionOwner(c.X, c.Atoms.ManagerSel).Reply()
	if err != nil || cur.Owner != xproto.Window(owner) {
		return fmt.Errorf("x11: manager selection was not granted")
	}

	if incumbent == xproto.WindowNone {
		return nil
	}

	deadline := time.Now().Add(replaceTimeout)
	for time.Now().Before(deadline) {
		ev, xerr := c.X.WaitForEvent()
		if ev == nil && xerr == nil {
			return ErrConnClosed
		}
		if xerr != nil {
			continue
		}
		if de, ok := ev.(xproto.DestroyNotifyEvent); ok && de.Window == incumbent {
			return nil
		}
	}
	return fmt.Errorf("x11: incumbent window manager did not exit")
}
