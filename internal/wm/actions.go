package wm

import (
	"fmt"

	"github.com/1broseidon/winister/internal/hotkeys"
	"github.com/1broseidon/winister/internal/platform"
)

// Execute applies one keybind action to the manager state.
func (m *Manager) Execute(action hotkeys.Action) error {
	switch a := action.(type) {
	case hotkeys.RunCommand:
		return m.runCommand(a.Program)
	case hotkeys.SwitchToWorkspace:
		return m.switchToWorkspace(a.Index)
	case hotkeys.MoveFocusedWindowToWorkspace:
		return m.moveFocusedToWorkspace(a.Index)
	case hotkeys.CloseFocusedWindow:
		return m.closeFocused()
	case hotkeys.Quit:
		m.RequestExit()
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}
}

func (m *Manager) runCommand(program string) error {
	if m.launcher == nil {
		return &SpawnError{Program: program, Err: fmt.Errorf("no launcher configured")}
	}
	if err := m.launcher.Spawn(program); err != nil {
		return &SpawnError{Program: program, Err: err}
	}
	m.logger.Debug("launched program", "program", program)
	return nil
}

// switchToWorkspace hides every window of the current workspace before
// showing any window of the new one, so two workspaces are never visible
// at once. The new windows are placed before they are mapped and focused
// after, since focusing an unmapped window fails.
func (m *Manager) switchToWorkspace(idx int) error {
	if err := m.checkIndex(idx); err != nil {
		return err
	}
	if idx == m.active {
		return nil
	}

	for _, win := range m.Active().Windows() {
		m.conn.Send(platform.UnmapWindow{Window: win})
	}
	prev := m.active
	m.active = idx
	ws := m.Active()
	ws.Arrange(m.conn, m.layout, m.Region(), m.style)
	for _, win := range ws.Windows() {
		m.conn.Send(platform.MapWindow{Window: win})
	}
	ws.SendFocus(m.conn)

	m.publish()
	m.logger.Debug("switched workspace", "from", prev, "to", idx)
	return nil
}

func (m *Manager) moveFocusedToWorkspace(idx int) error {
	if err := m.checkIndex(idx); err != nil {
		return err
	}
	src := m.Active()
	win, ok := src.Focused()
	if !ok || idx == m.active {
		return nil
	}

	// The unmap must reach the server before membership changes.
	m.conn.Send(platform.UnmapWindow{Window: win})
	if err := m.flush(); err != nil {
		return fmt.Errorf("move window %d to workspace %d: %w", win, idx, err)
	}

	src.Remove(win)
	src.FocusLast()
	dst := m.workspaces[idx]
	dst.Add(win)
	dst.Focus(win)

	m.Retile()
	m.publish()
	m.logger.Debug("moved window", "window", win, "from", m.active, "to", idx)
	return nil
}

func (m *Manager) closeFocused() error {
	ws := m.Active()
	win, ok := ws.Focused()
	if !ok {
		return nil
	}

	m.conn.Send(platform.TerminateClient{Window: win})
	ws.Remove(win)
	ws.FocusLast()

	m.Retile()
	m.publish()
	m.logger.Debug("closed window", "window", win)
	return nil
}
