package hotkeys

import "fmt"

// Action is what a keybind does when triggered. The set is closed: the
// concrete types in this file are the only implementations.
type Action interface {
	fmt.Stringer
	isAction()
}

// RunCommand launches an external program with no arguments.
type RunCommand struct {
	Program string
}

// SwitchToWorkspace makes another workspace the active one.
type SwitchToWorkspace struct {
	Index int
}

// MoveFocusedWindowToWorkspace sends the focused window to another workspace.
type MoveFocusedWindowToWorkspace struct {
	Index int
}

// CloseFocusedWindow asks the focused window's client to terminate.
type CloseFocusedWindow struct{}

// Quit stops the window manager.
type Quit struct{}

func (a RunCommand) String() string        { return fmt.Sprintf("run(%s)", a.Program) }
func (a SwitchToWorkspace) String() string { return fmt.Sprintf("workspace(%d)", a.Index) }
func (a MoveFocusedWindowToWorkspace) String() string {
	return fmt.Sprintf("move_to_workspace(%d)", a.Index)
}
func (CloseFocusedWindow) String() string { return "close" }
func (Quit) String() string               { return "quit" }

func (RunCommand) isAction()                   {}
func (SwitchToWorkspace) isAction()            {}
func (MoveFocusedWindowToWorkspace) isAction() {}
func (CloseFocusedWindow) isAction()           {}
func (Quit) isAction()                         {}

// WorkspaceIndex returns the workspace an action refers to, if any.
func WorkspaceIndex(a Action) (int, bool) {
	switch a := a.(type) {
	case SwitchToWorkspace:
		return a.Index, true
	case MoveFocusedWindowToWorkspace:
		return a.Index, true
	}
	return 0, false
}
