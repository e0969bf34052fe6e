package wm

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/winister/internal/hotkeys"
	"github.com/1broseidon/winister/internal/platform"
	"github.com/1broseidon/winister/internal/tiling"
	"github.com/1broseidon/winister/internal/workspace"
)

// DefaultWorkspaceCount is the number of workspaces when none is configured.
const DefaultWorkspaceCount = 10

// Launcher starts external programs.
type Launcher interface {
	Spawn(program string) error
}

// Config holds everything the manager needs besides the connection.
type Config struct {
	Workspaces int
	Keybinds   *hotkeys.Table
	Launcher   Launcher
	Style      workspace.Style
	Padding    tiling.Margins
	// Layout defaults to tiling.Partition.
	Layout tiling.Layout
	Logger *slog.Logger
}

// Manager owns all window-manager state: the workspaces, the active
// workspace cursor and the exit flag. It is driven by a single goroutine
// and does no locking.
type Manager struct {
	conn       platform.Conn
	workspaces []*workspace.Workspace
	active     int
	keybinds   *hotkeys.Table
	launcher   Launcher
	style      workspace.Style
	padding    tiling.Margins
	layout     tiling.Layout
	logger     *slog.Logger

	shouldExit    bool
	flushFailures int
}

// NewManager creates a manager with a fixed number of empty workspaces.
// Keybinds referring to missing workspaces are rejected here so that the
// executor never sees them.
func NewManager(conn platform.Conn, cfg Config) (*Manager, error) {
	if conn == nil {
		return nil, fmt.Errorf("nil connection")
	}

	count := cfg.Workspaces
	if count == 0 {
		count = DefaultWorkspaceCount
	}
	if count < 0 {
		return nil, fmt.Errorf("invalid workspace count %d", count)
	}

	for _, kb := range cfg.Keybinds.All() {
		if idx, ok := hotkeys.WorkspaceIndex(kb.Action); ok && (idx < 0 || idx >= count) {
			return nil, fmt.Errorf("keybind %s: %w", kb, &WorkspaceIndexError{Index: idx, Count: count})
		}
	}

	layout := cfg.Layout
	if layout == nil {
		layout = tiling.Partition
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	workspaces := make([]*workspace.Workspace, count)
	for i := range workspaces {
		workspaces[i] = workspace.New()
	}

	return &Manager{
		conn:       conn,
		workspaces: workspaces,
		keybinds:   cfg.Keybinds,
		launcher:   cfg.Launcher,
		style:      cfg.Style,
		padding:    cfg.Padding,
		layout:     layout,
		logger:     logger,
	}, nil
}

// WorkspaceCount returns the fixed number of workspaces.
func (m *Manager) WorkspaceCount() int {
	return len(m.workspaces)
}

// ActiveIndex returns the index of the visible workspace.
func (m *Manager) ActiveIndex() int {
	return m.active
}

// Active returns the visible workspace.
func (m *Manager) Active() *workspace.Workspace {
	return m.workspaces[m.active]
}

// Workspace returns the workspace at idx.
func (m *Manager) Workspace(idx int) (*workspace.Workspace, error) {
	if err := m.checkIndex(idx); err != nil {
		return nil, err
	}
	return m.workspaces[idx], nil
}

// ShouldExit reports whether the event loop has been asked to stop.
func (m *Manager) ShouldExit() bool {
	return m.shouldExit
}

// RequestExit asks the event loop to stop after the current notification.
// There is no way back.
func (m *Manager) RequestExit() {
	if !m.shouldExit {
		m.logger.Info("exit requested")
	}
	m.shouldExit = true
}

func (m *Manager) checkIndex(idx int) error {
	if idx < 0 || idx >= len(m.workspaces) {
		return &WorkspaceIndexError{Index: idx, Count: len(m.workspaces)}
	}
	return nil
}

// owner returns the index of the workspace holding win.
func (m *Manager) owner(win platform.WindowID) (int, bool) {
	for i, ws := range m.workspaces {
		if ws.Contains(win) {
			return i, true
		}
	}
	return 0, false
}

// Region returns the screen area available for tiling.
func (m *Manager) Region() platform.Rect {
	w, h := m.conn.ScreenSize()
	return tiling.ApplyPadding(platform.Rect{Width: w, Height: h}, m.padding)
}

// Retile lays out the active workspace.
func (m *Manager) Retile() {
	m.Active().Resize(m.conn, m.layout, m.Region(), m.style)
}

// publish mirrors workspace state into desktop hints.
func (m *Manager) publish() {
	var clients []platform.WindowID
	for _, ws := range m.workspaces {
		clients = append(clients, ws.Windows()...)
	}
	active, _ := m.Active().Focused()
	m.conn.Send(platform.PublishDesktop{
		Count:   len(m.workspaces),
		Current: m.active,
		Active:  active,
		Clients: clients,
	})
}

// Setup registers for root notifications and grabs every keybind and the
// primary pointer button, then flushes.
func (m *Manager) Setup() error {
	m.conn.Send(platform.SetRootEventInterest{
		Mask: platform.EventSubstructureRedirect |
			platform.EventSubstructureNotify |
			platform.EventButtonPress |
			platform.EventStructureNotify,
	})
	for _, kb := range m.keybinds.All() {
		m.conn.Send(platform.GrabKey{KeyCode: kb.KeyCode, Modifiers: kb.Modifiers})
	}
	m.conn.Send(platform.GrabPointerButton{Button: 1})
	m.publish()

	if err := m.conn.Flush(); err != nil {
		return &ConnectionError{Err: fmt.Errorf("setup: %w", err)}
	}
	m.logger.Info("window manager ready",
		"workspaces", len(m.workspaces),
		"keybinds", m.keybinds.Len())
	return nil
}

// Adopt takes over windows that were already mapped before the manager
// started. They all join the active workspace; the last one gets focus.
func (m *Manager) Adopt(windows []platform.WindowID) error {
	added := 0
	for _, win := range windows {
		if _, ok := m.owner(win); ok {
			continue
		}
		if m.Active().Add(win) {
			added++
		}
	}
	if added == 0 {
		return nil
	}

	m.Active().FocusLast()
	m.Retile()
	m.publish()
	m.logger.Info("adopted existing windows", "count", added)
	return m.flush()
}
