package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/1broseidon/winister/internal/platform"
)

type checker interface {
	Check() error
}

// pendingRequest is a checked request whose outcome is collected at Flush.
type pendingRequest struct {
	name   string
	window xproto.Window
	cookie checker
}

// WaitForEvent blocks until the server delivers an event and translates it.
// Protocol errors for individual requests are logged and skipped.
func (c *Connection) WaitForEvent() (platform.Notification, error) {
	for {
		ev, xerr := c.XUtil.Conn().WaitForEvent()
		if ev == nil && xerr == nil {
			return nil, fmt.Errorf("X connection closed")
		}
		if xerr != nil {
			c.logger.Warn("X protocol error", "error", xerr)
			continue
		}
		return c.translate(ev), nil
	}
}

func (c *Connection) translate(ev xgb.Event) platform.Notification {
	switch e := ev.(type) {
	case xproto.MapRequestEvent:
		if !c.IsNormalWindow(e.Window) {
			// Docks, desktops and notifications keep their own placement.
			xproto.MapWindow(c.XUtil.Conn(), e.Window)
			return platform.Other{Name: "MapRequest(unmanaged)"}
		}
		return platform.WindowMapped{Window: platform.WindowID(e.Window)}

	case xproto.DestroyNotifyEvent:
		return platform.WindowDestroyed{Window: platform.WindowID(e.Window)}

	case xproto.ConfigureRequestEvent:
		return platform.ConfigureRequested{
			Window: platform.WindowID(e.Window),
			Geometry: platform.Rect{
				X:      int(e.X),
				Y:      int(e.Y),
				Width:  int(e.Width),
				Height: int(e.Height),
			},
			BorderWidth: int(e.BorderWidth),
		}

	case xproto.KeyPressEvent:
		return platform.KeyPressed{
			KeyCode: uint8(e.Detail),
			State:   normalizeState(e.State, c.ignoreMods),
		}

	case xproto.ButtonPressEvent:
		// The grab is synchronous; replay the click to the client.
		xproto.AllowEvents(c.XUtil.Conn(), xproto.AllowReplayPointer, xproto.TimeCurrentTime)
		if e.Child == xproto.WindowNone {
			return platform.Other{Name: "ButtonPress(root)"}
		}
		return platform.ButtonPressed{Child: platform.WindowID(e.Child)}

	case xproto.ClientMessageEvent:
		if isStopMessage(e, c.Root, c.stopAtom) {
			return platform.StopRequested{Reason: "interrupted"}
		}

	case xproto.MappingNotifyEvent:
		keyMap, modMap := keybind.MapsGet(c.XUtil)
		keybind.KeyMapSet(c.XUtil, keyMap)
		keybind.ModMapSet(c.XUtil, modMap)
		c.ignoreMods = c.loadIgnoreMods()
		return platform.Other{Name: "MappingNotify"}
	}
	return platform.Other{Name: fmt.Sprintf("%T", ev)}
}

// Send queues a request. Its result is observed at the next Flush.
func (c *Connection) Send(req platform.Request) {
	conn := c.XUtil.Conn()
	switch r := req.(type) {
	case platform.ConfigureGeometry:
		win := xproto.Window(r.Window)
		mask, values := configureValues(r)
		c.track("ConfigureWindow", win, xproto.ConfigureWindowChecked(conn, win, mask, values))

	case platform.SetBorderColor:
		win := xproto.Window(r.Window)
		c.track("ChangeWindowAttributes(border)", win,
			xproto.ChangeWindowAttributesChecked(conn, win, xproto.CwBorderPixel, []uint32{uint32(r.Color)}))

	case platform.SetInputFocus:
		win := xproto.Window(r.Window)
		c.track("SetInputFocus", win,
			xproto.SetInputFocusChecked(conn, xproto.InputFocusPointerRoot, win, xproto.TimeCurrentTime))

	case platform.MapWindow:
		win := xproto.Window(r.Window)
		c.track("MapWindow", win, xproto.MapWindowChecked(conn, win))

	case platform.UnmapWindow:
		win := xproto.Window(r.Window)
		c.track("UnmapWindow", win, xproto.UnmapWindowChecked(conn, win))

	case platform.TerminateClient:
		p, err := c.terminate(xproto.Window(r.Window))
		if err != nil {
			c.deferred = append(c.deferred, err)
			return
		}
		c.pending = append(c.pending, p)

	case platform.GrabKey:
		for _, m := range c.ignoreMods {
			c.track("GrabKey", c.Root, xproto.GrabKeyChecked(conn, true, c.Root,
				uint16(r.Modifiers)|m, xproto.Keycode(r.KeyCode),
				xproto.GrabModeAsync, xproto.GrabModeAsync))
		}

	case platform.GrabPointerButton:
		c.track("GrabButton", c.Root, xproto.GrabButtonChecked(conn, false, c.Root,
			xproto.EventMaskButtonPress, xproto.GrabModeSync, xproto.GrabModeAsync,
			xproto.WindowNone, xproto.CursorNone, r.Button, xproto.ModMaskAny))

	case platform.SetRootEventInterest:
		c.track("ChangeWindowAttributes(root)", c.Root,
			xproto.ChangeWindowAttributesChecked(conn, c.Root, xproto.CwEventMask, []uint32{eventMask(r.Mask)}))

	case platform.PublishDesktop:
		if err := c.publish(r); err != nil {
			c.deferred = append(c.deferred, err)
		}

	default:
		c.deferred = append(c.deferred, fmt.Errorf("unsupported request %T", req))
	}
}

func (c *Connection) track(name string, win xproto.Window, cookie checker) {
	c.pending = append(c.pending, pendingRequest{name: name, window: win, cookie: cookie})
}

// Flush waits for every request sent since the previous Flush. Protocol
// errors on client windows, usually a window that was destroyed before the
// request arrived, are logged. Transport failures and failed requests on
// the root window are returned together.
func (c *Connection) Flush() error {
	pending := c.pending
	errs := c.deferred
	c.pending = nil
	c.deferred = nil

	var failures []requestFailure
	for _, p := range pending {
		if err := p.cookie.Check(); err != nil {
			failures = append(failures, requestFailure{
				window: p.window,
				err:    fmt.Errorf("%s(0x%x): %w", p.name, uint32(p.window), err),
			})
		}
	}

	returned, logged := splitFailures(c.Root, failures)
	for _, err := range logged {
		c.logger.Warn("X request failed", "error", err)
	}
	return errors.Join(append(errs, returned...)...)
}

type requestFailure struct {
	window xproto.Window
	err    error
}

// splitFailures returns the failures the caller must act on and those that
// only need logging.
func splitFailures(root xproto.Window, failures []requestFailure) (returned, logged []error) {
	for _, f := range failures {
		var xerr xgb.Error
		if f.window != root && errors.As(f.err, &xerr) {
			logged = append(logged, f.err)
			continue
		}
		returned = append(returned, f.err)
	}
	return returned, logged
}

// ScreenSize returns the root window dimensions.
func (c *Connection) ScreenSize() (int, int) {
	s := c.XUtil.Screen()
	return int(s.WidthInPixels), int(s.HeightInPixels)
}

func configureValues(r platform.ConfigureGeometry) (uint16, []uint32) {
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight |
		xproto.ConfigWindowBorderWidth)
	w, h := r.Width, r.Height
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return mask, []uint32{
		uint32(int32(r.X)),
		uint32(int32(r.Y)),
		uint32(w),
		uint32(h),
		uint32(r.BorderWidth),
	}
}

func eventMask(m platform.EventMask) uint32 {
	var out uint32
	if m&platform.EventSubstructureNotify != 0 {
		out |= xproto.EventMaskSubstructureNotify
	}
	if m&platform.EventSubstructureRedirect != 0 {
		out |= xproto.EventMaskSubstructureRedirect
	}
	if m&platform.EventButtonPress != 0 {
		out |= xproto.EventMaskButtonPress
	}
	if m&platform.EventKeyPress != 0 {
		out |= xproto.EventMaskKeyPress
	}
	if m&platform.EventStructureNotify != 0 {
		out |= xproto.EventMaskStructureNotify
	}
	return out
}

var _ platform.Conn = (*Connection)(nil)
