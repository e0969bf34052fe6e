package wm

import (
	"fmt"

	"github.com/1broseidon/winister/internal/platform"
)

// Run processes notifications until an exit is requested or a fatal error
// occurs. Each notification is handled completely, then the requests it
// produced are flushed, before the next one is read.
func (m *Manager) Run() error {
	m.logger.Info("entering event loop")
	for !m.shouldExit {
		n, err := m.conn.WaitForEvent()
		if err != nil {
			return &ConnectionError{Err: err}
		}

		if err := m.Handle(n); err != nil {
			if IsFatal(err) {
				return err
			}
			m.logger.Warn("handler failed", "notification", n.Kind(), "error", err)
		}

		if err := m.flush(); err != nil {
			if IsFatal(err) {
				return err
			}
			m.logger.Warn("flush failed", "error", err)
		}
	}
	m.logger.Info("event loop stopped")
	return nil
}

// Handle routes one notification to its handler.
func (m *Manager) Handle(n platform.Notification) error {
	switch n := n.(type) {
	case platform.KeyPressed:
		return m.onKeyPressed(n)
	case platform.ButtonPressed:
		return m.onButtonPressed(n)
	case platform.WindowMapped:
		return m.onWindowMapped(n)
	case platform.WindowDestroyed:
		return m.onWindowDestroyed(n)
	case platform.ConfigureRequested:
		return m.onConfigureRequested(n)
	case platform.StopRequested:
		m.logger.Info("stop requested", "reason", n.Reason)
		m.RequestExit()
		return nil
	case platform.Other:
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnhandledNotification, n)
	}
}

// flush pushes pending requests. Failures are counted; too many in a row
// turn into a ConnectionError.
func (m *Manager) flush() error {
	if err := m.conn.Flush(); err != nil {
		m.flushFailures++
		if m.flushFailures >= MaxConsecutiveFlushFailures {
			return &ConnectionError{Err: fmt.Errorf("%d consecutive flush failures: %w", m.flushFailures, err)}
		}
		return &FlushError{Consecutive: m.flushFailures, Err: err}
	}
	m.flushFailures = 0
	return nil
}

func (m *Manager) onKeyPressed(ev platform.KeyPressed) error {
	kb, ok := m.keybinds.Lookup(ev.KeyCode, ev.State)
	if !ok {
		m.logger.Debug("no keybind", "keycode", ev.KeyCode, "state", ev.State)
		return nil
	}
	m.logger.Debug("keybind triggered", "keybind", kb.String())
	return m.Execute(kb.Action)
}

func (m *Manager) onButtonPressed(ev platform.ButtonPressed) error {
	ws := m.Active()
	if !ws.Contains(ev.Child) {
		return nil
	}
	if cur, ok := ws.Focused(); ok && cur == ev.Child {
		return nil
	}
	ws.Focus(ev.Child)
	m.Retile()
	m.publish()
	return nil
}

func (m *Manager) onWindowMapped(ev platform.WindowMapped) error {
	if _, ok := m.owner(ev.Window); ok {
		return nil
	}

	ws := m.Active()
	ws.Add(ev.Window)
	ws.Focus(ev.Window)
	m.conn.Send(platform.MapWindow{Window: ev.Window})
	m.Retile()
	m.publish()
	m.logger.Debug("managing window", "window", ev.Window, "workspace", m.active)
	return nil
}

func (m *Manager) onWindowDestroyed(ev platform.WindowDestroyed) error {
	idx, ok := m.owner(ev.Window)
	if !ok {
		return nil
	}

	ws := m.workspaces[idx]
	cur, hadFocus := ws.Focused()
	ws.Remove(ev.Window)
	if hadFocus && cur == ev.Window {
		ws.FocusLast()
	}

	if idx == m.active {
		m.Retile()
	}
	m.publish()
	m.logger.Debug("window gone", "window", ev.Window, "workspace", idx)
	return nil
}

// onConfigureRequested keeps managed windows inside the layout and lets
// unmanaged ones have their way.
func (m *Manager) onConfigureRequested(ev platform.ConfigureRequested) error {
	idx, ok := m.owner(ev.Window)
	if !ok {
		m.conn.Send(platform.ConfigureGeometry{
			Window:      ev.Window,
			X:           ev.Geometry.X,
			Y:           ev.Geometry.Y,
			Width:       ev.Geometry.Width,
			Height:      ev.Geometry.Height,
			BorderWidth: ev.BorderWidth,
		})
		return nil
	}
	if idx == m.active {
		m.Retile()
	}
	return nil
}
