package x11

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// WMName is announced through _NET_SUPPORTING_WM_CHECK.
const WMName = "winister"

// stopAtomName types the client message Interrupt sends to the root window.
const stopAtomName = "_WINISTER_STOP"

// Connection manages the X11 connection and core X resources. It
// implements platform.Conn.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	logger     *slog.Logger
	ignoreMods []uint16
	pending    []pendingRequest
	deferred   []error
	checkWin   *xwindow.Window
	stopAtom   xproto.Atom
}

// NewConnection establishes a connection to the given display (empty means
// $DISPLAY) and loads the keyboard mapping.
func NewConnection(display string, logger *slog.Logger) (*Connection, error) {
	if logger == nil {
		logger = slog.Default()
	}

	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X display %q: %w", display, err)
	}

	keybind.Initialize(xu)

	stopAtom, err := xprop.Atm(xu, stopAtomName)
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("failed to intern %s: %w", stopAtomName, err)
	}

	c := &Connection{
		XUtil:    xu,
		Root:     xu.RootWin(),
		logger:   logger,
		stopAtom: stopAtom,
	}
	c.ignoreMods = c.loadIgnoreMods()
	return c, nil
}

// Announce publishes the EWMH supporting-WM check window and the list of
// hints this manager maintains. Failures only affect pagers and panels.
func (c *Connection) Announce() error {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return fmt.Errorf("failed to allocate check window: %w", err)
	}
	if err := win.CreateChecked(c.Root, -1, -1, 1, 1, 0); err != nil {
		return fmt.Errorf("failed to create check window: %w", err)
	}
	c.checkWin = win

	if err := ewmh.SupportingWmCheckSet(c.XUtil, c.Root, win.Id); err != nil {
		return err
	}
	if err := ewmh.SupportingWmCheckSet(c.XUtil, win.Id, win.Id); err != nil {
		return err
	}
	if err := ewmh.WmNameSet(c.XUtil, win.Id, WMName); err != nil {
		return err
	}
	if err := icccm.WmClassSet(c.XUtil, win.Id, &icccm.WmClass{Instance: WMName, Class: WMName}); err != nil {
		return err
	}
	return ewmh.SupportedSet(c.XUtil, []string{
		"_NET_SUPPORTED",
		"_NET_SUPPORTING_WM_CHECK",
		"_NET_WM_NAME",
		"_NET_NUMBER_OF_DESKTOPS",
		"_NET_CURRENT_DESKTOP",
		"_NET_ACTIVE_WINDOW",
		"_NET_CLIENT_LIST",
		"_NET_WM_WINDOW_TYPE",
		"_NET_WM_STRUT_PARTIAL",
	})
}

// Interrupt wakes WaitForEvent with a StopRequested notification. It is
// safe to call from another goroutine; the connection stays open until
// Close.
func (c *Connection) Interrupt() error {
	ev := stopMessage(c.Root, c.stopAtom)
	// Only the window manager selects SubstructureRedirect on the root, so
	// the message reaches no other client.
	return xproto.SendEventChecked(c.XUtil.Conn(), false, c.Root,
		xproto.EventMaskSubstructureRedirect, string(ev.Bytes())).Check()
}

func stopMessage(root xproto.Window, atom xproto.Atom) xproto.ClientMessageEvent {
	return xproto.ClientMessageEvent{
		Format: 32,
		Window: root,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New(make([]uint32, 5)),
	}
}

func isStopMessage(ev xproto.ClientMessageEvent, root xproto.Window, atom xproto.Atom) bool {
	return atom != 0 && ev.Window == root && ev.Type == atom
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	if c.checkWin != nil {
		c.checkWin.Destroy()
	}
	c.XUtil.Conn().Close()
}
