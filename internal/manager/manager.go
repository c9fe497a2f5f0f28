// Package manager drives the window manager: it owns the StackSet,
// applies pure transforms to it, reconciles the X server with the
// result, and runs the event loop that feeds it.
package manager

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"golang.org/x/sys/unix"

	"github.com/yourusername/stackwm/internal/config"
	"github.com/yourusername/stackwm/internal/ipc"
	"github.com/yourusername/stackwm/internal/keysym"
	"github.com/yourusername/stackwm/internal/layout"
	"github.com/yourusername/stackwm/internal/logging"
	"github.com/yourusername/stackwm/internal/stackset"
	"github.com/yourusername/stackwm/internal/types"
	"github.com/yourusername/stackwm/internal/x11"
)

// drag is an in-progress pointer drag: motion events feed the motion
// function and the button release runs the cleanup.
type drag struct {
	motion  func(x, y int32)
	cleanup func()
}

// Manager is the single mutable context of the whole program. The
// event loop owns it; nothing mutates it from another goroutine.
type Manager struct {
	conn *x11.Conn
	cfg  *config.Config

	windowset    stackset.StackSet
	mapped       map[types.WindowID]struct{}
	waitingUnmap map[types.WindowID]int
	dragging     *drag
	extState     map[string]string

	keymap      *keysym.Keymap
	numLockMask uint16
	keys        map[keyBinding]func(*Manager)
	buttons     map[buttonBinding]func(*Manager, types.WindowID)

	normalPixel  uint32
	focusedPixel uint32
	checkWin     types.WindowID

	// pending holds events pulled off the wire while draining the
	// EnterNotify storm a reconciliation causes.
	pending []xgb.Event

	publish func(ipc.Snapshot)

	quitRequested    bool
	restartRequested bool
}

// Options carries startup choices from the command line.
type Options struct {
	// Replace requests the ICCCM handover with an incumbent manager.
	Replace bool
	// ResumeState and ResumeExtState are the serialised StackSet and
	// extension map from an in-place restart.
	ResumeState    string
	ResumeExtState string
}

// New connects to the display and builds an initialised manager.
func New(cfg *config.Config, opts Options) (*Manager, error) {
	conn, err := x11.Dial()
	if err != nil {
		return nil, err
	}
	m := &Manager{
		conn:         conn,
		cfg:          cfg,
		mapped:       make(map[types.WindowID]struct{}),
		waitingUnmap: make(map[types.WindowID]int),
		extState:     make(map[string]string),
	}
	if err := m.setup(opts); err != nil {
		conn.Close()
		return nil, err
	}
	return m, nil
}

// SetPublisher wires the IPC snapshot sink and pushes the current
// state so queries work before the first event arrives.
func (m *Manager) SetPublisher(publish func(ipc.Snapshot)) {
	m.publish = publish
	m.publishSnapshot()
}

func (m *Manager) setup(opts Options) error {
	checkWin, err := m.conn.SetSupportingWMName("stackwm")
	if err != nil {
		return err
	}
	m.checkWin = checkWin

	if err := m.conn.AcquireSelection(checkWin, opts.Replace); err != nil {
		return err
	}
	if err := m.conn.SelectRootInput(); err != nil {
		return err
	}

	if m.normalPixel, err = m.conn.AllocColor(m.cfg.NormalBorderColor); err != nil {
		return err
	}
	if m.focusedPixel, err = m.conn.AllocColor(m.cfg.FocusedBorderColor); err != nil {
		return err
	}

	if m.keymap, err = keysym.Load(m.conn.X); err != nil {
		return err
	}
	if m.numLockMask, err = keysym.ModifierFor(m.conn.X, m.keymap, keysym.XK_Num_Lock); err != nil {
		return err
	}
	m.keys = defaultKeys(m.cfg)
	m.buttons = defaultButtons(m.cfg)
	if err := m.grabKeys(); err != nil {
		return err
	}
	if err := m.grabButtons(); err != nil {
		return err
	}

	rects, err := m.conn.Screens()
	if err != nil {
		return err
	}
	details := make([]stackset.ScreenDetail, len(rects))
	for i, r := range rects {
		details[i] = stackset.ScreenDetail{Rect: r, Gap: types.Gap(m.cfg.Gap)}
	}
	if len(details) > len(m.cfg.Tags) {
		details = details[:len(m.cfg.Tags)]
	}

	if opts.ResumeState != "" {
		ws, err := stackset.Decode(opts.ResumeState, layout.Decode)
		if err != nil {
			logging.Error().Err(err).Msg("resume state rejected, starting fresh")
		} else {
			m.windowset = ws.EnsureTags(layout.Default(), m.cfg.Tags).WithScreens(details)
			m.decodeExtState(opts.ResumeExtState)
		}
	}
	if m.windowset.Floating == nil {
		ws, err := stackset.New(layout.Default(), m.cfg.Tags, details)
		if err != nil {
			return fmt.Errorf("build stackset: %w", err)
		}
		m.windowset = ws
	}

	m.adoptExisting()
	return m.Refresh()
}

// adoptExisting manages the viewable windows a previous manager (or a
// pre-manager session) left on the root.
func (m *Manager) adoptExisting() {
	children, err := m.conn.QueryTree()
	if err != nil {
		logging.Warn().Err(err).Msg("could not query existing windows")
		return
	}
	for _, w := range children {
		if w == m.checkWin || m.windowset.Member(w) {
			continue
		}
		attrs, err := m.conn.WindowAttributes(w)
		if err != nil || attrs.OverrideRedirect || attrs.MapState != xproto.MapStateViewable {
			continue
		}
		m.Manage(w)
	}
}

// Run is the event loop. It returns when a quit or restart was
// requested, or when reading events fails fatally.
func (m *Manager) Run() error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		// Wake the blocked event read; the zero event mask routes
		// the message back to our own connection.
		_ = m.conn.SendClientMessage(m.checkWin, m.conn.Atoms.Shutdown, 0)
	}()

	for !m.quitRequested && !m.restartRequested {
		var ev xgb.Event
		if len(m.pending) > 0 {
			ev = m.pending[0]
			m.pending = m.pending[1:]
		} else {
			var err error
			ev, err = m.conn.WaitEvent()
			if err == x11.ErrConnClosed {
				return err
			}
			if err != nil {
				logging.Warn().Err(err).Msg("server error")
				continue
			}
		}
		m.handleEvent(ev)
	}

	m.BroadcastMessage(layout.ReleaseResources{})
	if m.restartRequested {
		return m.execRestart()
	}
	return nil
}

// Close releases the connection.
func (m *Manager) Close() {
	m.conn.Close()
}

// Quit asks the event loop to exit after the current event.
func (m *Manager) Quit() { m.quitRequested = true }

// Restart asks the event loop to re-exec the binary, carrying the
// window state across via --resume.
func (m *Manager) Restart() { m.restartRequested = true }

func (m *Manager) execRestart() error {
	state, err := m.windowset.Encode()
	if err != nil {
		return fmt.Errorf("encode state for restart: %w", err)
	}
	ext := m.encodeExtState()
	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	argv := []string{self, "--resume", state, ext}
	logging.Info().Msg("restarting in place")
	m.conn.Close()
	return unix.Exec(self, argv, os.Environ())
}

// Spawn runs a command without waiting for it.
func (m *Manager) Spawn(command string, args ...string) {
	cmd := exec.Command(command, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		logging.Warn().Err(err).Str("command", command).Msg("spawn failed")
		return
	}
	go func() { _ = cmd.Wait() }()
}

func modMaskFromName(name string) uint16 {
	switch name {
	case "mod1":
		return xproto.ModMask1
	case "mod2":
		return xproto.ModMask2
	case "mod3":
		return xproto.ModMask3
	case "mod4":
		return xproto.ModMask4
	case "mod5":
		return xproto.ModMask5
	case "control":
		return xproto.ModMaskControl
	}
	return xproto.ModMask1
}
