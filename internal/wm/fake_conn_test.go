package wm

import (
	"errors"
	"io"
	"log/slog"

	"github.com/1broseidon/winister/internal/hotkeys"
	"github.com/1broseidon/winister/internal/platform"
)

// flushMarker is recorded in the request log at every Flush call.
type flushMarker struct{ platform.Request }

type fakeConn struct {
	events    []platform.Notification
	waitErr   error
	sent      []platform.Request
	flushErrs []error
	flushes   int
	width     int
	height    int
}

func newFakeConn() *fakeConn {
	return &fakeConn{width: 100, height: 100}
}

func (c *fakeConn) WaitForEvent() (platform.Notification, error) {
	if len(c.events) == 0 {
		if c.waitErr != nil {
			return nil, c.waitErr
		}
		return nil, io.EOF
	}
	n := c.events[0]
	c.events = c.events[1:]
	return n, nil
}

func (c *fakeConn) Send(req platform.Request) {
	c.sent = append(c.sent, req)
}

func (c *fakeConn) Flush() error {
	c.flushes++
	c.sent = append(c.sent, flushMarker{})
	if len(c.flushErrs) == 0 {
		return nil
	}
	err := c.flushErrs[0]
	c.flushErrs = c.flushErrs[1:]
	return err
}

func (c *fakeConn) ScreenSize() (int, int) {
	return c.width, c.height
}

func (c *fakeConn) reset() {
	c.sent = nil
}

// only filters reqs down to those of type T.
func only[T platform.Request](reqs []platform.Request) []T {
	var out []T
	for _, r := range reqs {
		if v, ok := r.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

type fakeLauncher struct {
	spawned []string
	err     error
}

func (l *fakeLauncher) Spawn(program string) error {
	if l.err != nil {
		return l.err
	}
	l.spawned = append(l.spawned, program)
	return nil
}

var errBoom = errors.New("boom")

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTable() *hotkeys.Table {
	binds := []hotkeys.Keybind{
		{Action: hotkeys.RunCommand{Program: "alacritty"}, KeyCode: 36, Modifiers: platform.Mod4},
		{Action: hotkeys.CloseFocusedWindow{}, KeyCode: 24, Modifiers: platform.Mod4 | platform.ModShift},
		{Action: hotkeys.Quit{}, KeyCode: 26, Modifiers: platform.Mod4 | platform.ModShift},
	}
	for i := 0; i < 10; i++ {
		binds = append(binds,
			hotkeys.Keybind{Action: hotkeys.SwitchToWorkspace{Index: i}, KeyCode: uint8(10 + i), Modifiers: platform.Mod4},
			hotkeys.Keybind{Action: hotkeys.MoveFocusedWindowToWorkspace{Index: i}, KeyCode: uint8(10 + i), Modifiers: platform.Mod4 | platform.ModShift},
		)
	}
	t, err := hotkeys.NewTable(binds)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestManager(conn *fakeConn, launcher Launcher) *Manager {
	m, err := NewManager(conn, Config{
		Keybinds: testTable(),
		Launcher: launcher,
		Logger:   quietLogger(),
	})
	if err != nil {
		panic(err)
	}
	return m
}

// populate adds windows to workspace idx and focuses focus (0 = none).
func populate(m *Manager, idx int, focus platform.WindowID, wins ...platform.WindowID) {
	ws, err := m.Workspace(idx)
	if err != nil {
		panic(err)
	}
	for _, w := range wins {
		ws.Add(w)
	}
	if focus != 0 {
		ws.Focus(focus)
	}
}
