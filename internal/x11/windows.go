package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/1broseidon/winister/internal/platform"
)

// ExistingWindows returns the mapped, manageable top-level windows present
// when the manager starts.
func (c *Connection) ExistingWindows() ([]platform.WindowID, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query root children: %w", err)
	}

	var out []platform.WindowID
	for _, win := range tree.Children {
		if c.checkWin != nil && win == c.checkWin.Id {
			continue
		}
		attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), win).Reply()
		if err != nil {
			continue
		}
		if attrs.OverrideRedirect || attrs.MapState != xproto.MapStateViewable {
			continue
		}
		if !c.IsNormalWindow(win) {
			continue
		}
		out = append(out, platform.WindowID(win))
	}
	return out, nil
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}
	return isNormalType(types)
}

func isNormalType(types []string) bool {
	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL", "_NET_WM_WINDOW_TYPE_DIALOG":
			return true
		case "_NET_WM_WINDOW_TYPE_DESKTOP",
			"_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH",
			"_NET_WM_WINDOW_TYPE_NOTIFICATION":
			return false
		}
	}
	// If no specific type is set, assume it's normal
	return len(types) == 0
}

// terminate asks the client to close via WM_DELETE_WINDOW when it supports
// the protocol, and kills the connection otherwise.
func (c *Connection) terminate(win xproto.Window) (pendingRequest, error) {
	protocols, err := icccm.WmProtocolsGet(c.XUtil, win)
	if err == nil && supportsDelete(protocols) {
		ev, err := c.deleteMessage(win)
		if err != nil {
			return pendingRequest{}, err
		}
		cookie := xproto.SendEventChecked(c.XUtil.Conn(), false, win, xproto.EventMaskNoEvent, string(ev.Bytes()))
		return pendingRequest{name: "SendEvent(WM_DELETE_WINDOW)", window: win, cookie: cookie}, nil
	}
	cookie := xproto.KillClientChecked(c.XUtil.Conn(), uint32(win))
	return pendingRequest{name: "KillClient", window: win, cookie: cookie}, nil
}

func supportsDelete(protocols []string) bool {
	for _, p := range protocols {
		if p == "WM_DELETE_WINDOW" {
			return true
		}
	}
	return false
}

func (c *Connection) deleteMessage(win xproto.Window) (xproto.ClientMessageEvent, error) {
	wmProtocols, err := xprop.Atm(c.XUtil, "WM_PROTOCOLS")
	if err != nil {
		return xproto.ClientMessageEvent{}, fmt.Errorf("failed to intern WM_PROTOCOLS: %w", err)
	}
	wmDelete, err := xprop.Atm(c.XUtil, "WM_DELETE_WINDOW")
	if err != nil {
		return xproto.ClientMessageEvent{}, fmt.Errorf("failed to intern WM_DELETE_WINDOW: %w", err)
	}
	return xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   wmProtocols,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(wmDelete), uint32(xproto.TimeCurrentTime), 0, 0, 0}),
	}, nil
}
