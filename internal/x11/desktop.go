package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/winister/internal/platform"
)

// publish mirrors workspace state into the EWMH root properties read by
// pagers and panels.
func (c *Connection) publish(d platform.PublishDesktop) error {
	var errs []error

	if err := ewmh.NumberOfDesktopsSet(c.XUtil, uint(d.Count)); err != nil {
		errs = append(errs, fmt.Errorf("failed to set desktop count: %w", err))
	}
	if err := ewmh.CurrentDesktopSet(c.XUtil, uint(d.Current)); err != nil {
		errs = append(errs, fmt.Errorf("failed to set current desktop: %w", err))
	}
	// Window 0 clears the active window hint.
	if err := ewmh.ActiveWindowSet(c.XUtil, xproto.Window(d.Active)); err != nil {
		errs = append(errs, fmt.Errorf("failed to set active window: %w", err))
	}
	if err := ewmh.ClientListSet(c.XUtil, clientList(d.Clients)); err != nil {
		errs = append(errs, fmt.Errorf("failed to set client list: %w", err))
	}
	return errors.Join(errs...)
}

func clientList(ids []platform.WindowID) []xproto.Window {
	out := make([]xproto.Window, len(ids))
	for i, id := range ids {
		out[i] = xproto.Window(id)
	}
	return out
}
