package config

import (
	"fmt"
	"strings"

	"github.com/1broseidon/winister/internal/hotkeys"
	"github.com/1broseidon/winister/internal/platform"
)

// KeyResolver parses a key sequence such as "Mod4-Shift-q" against the
// running display, returning its modifier mask and keycode. Modifiers in
// seq use the X names (Shift, Lock, Control, Mod1 to Mod5).
type KeyResolver func(seq string) (platform.ModMask, uint8, error)

// KeybindTable builds the lookup table for the configured keybinds. resolve
// may be nil when every entry uses an explicit keycode.
func (c *Config) KeybindTable(resolve KeyResolver) (*hotkeys.Table, error) {
	binds := make([]hotkeys.Keybind, 0, len(c.Keybinds))
	for i, kb := range c.Keybinds {
		bind, err := kb.keybind(resolve)
		if err != nil {
			return nil, &ValidationError{Path: fmt.Sprintf("keybinds[%d]", i), Err: err}
		}
		binds = append(binds, bind)
	}
	return hotkeys.NewTable(binds)
}

func (kb KeybindConfig) keybind(resolve KeyResolver) (hotkeys.Keybind, error) {
	var mods platform.ModMask
	for _, name := range kb.Modifiers {
		m, err := hotkeys.ParseModifier(name)
		if err != nil {
			return hotkeys.Keybind{}, err
		}
		mods |= m
	}

	var code uint8
	if kb.KeyCode != nil {
		code = *kb.KeyCode
	} else {
		seq, err := canonicalSequence(kb.Key)
		if err != nil {
			return hotkeys.Keybind{}, err
		}
		if resolve == nil {
			return hotkeys.Keybind{}, fmt.Errorf("cannot resolve key %q without a display", kb.Key)
		}
		seqMods, kc, err := resolve(seq)
		if err != nil {
			return hotkeys.Keybind{}, fmt.Errorf("key %q: %w", kb.Key, err)
		}
		code = kc
		mods |= seqMods
	}

	action, err := kb.action()
	if err != nil {
		return hotkeys.Keybind{}, err
	}
	return hotkeys.Keybind{KeyCode: code, Modifiers: mods, Action: action}, nil
}

// canonicalSequence rewrites the modifier aliases (ctrl, alt, super) in seq
// to their X names. Every part before the key must name a modifier.
func canonicalSequence(seq string) (string, error) {
	parts := strings.Split(strings.TrimSpace(seq), "-")
	if parts[len(parts)-1] == "" {
		return "", fmt.Errorf("key sequence %q has no key", seq)
	}
	for i, p := range parts[:len(parts)-1] {
		m, err := hotkeys.ParseModifier(p)
		if err != nil {
			return "", fmt.Errorf("key sequence %q: %w", seq, err)
		}
		parts[i] = strings.TrimSuffix(hotkeys.FormatModifiers(m), "-")
	}
	return strings.Join(parts, "-"), nil
}

func (kb KeybindConfig) action() (hotkeys.Action, error) {
	switch kb.Action {
	case ActionRun:
		return hotkeys.RunCommand{Program: kb.Command}, nil
	case ActionWorkspace:
		if kb.Workspace == nil {
			return nil, fmt.Errorf("workspace action requires a workspace")
		}
		return hotkeys.SwitchToWorkspace{Index: *kb.Workspace}, nil
	case ActionMoveToWorkspace:
		if kb.Workspace == nil {
			return nil, fmt.Errorf("move_to_workspace action requires a workspace")
		}
		return hotkeys.MoveFocusedWindowToWorkspace{Index: *kb.Workspace}, nil
	case ActionClose:
		return hotkeys.CloseFocusedWindow{}, nil
	case ActionQuit:
		return hotkeys.Quit{}, nil
	}
	return nil, fmt.Errorf("unknown action %q", kb.Action)
}
