package hotkeys

import (
	"fmt"

	"github.com/1broseidon/winister/internal/platform"
)

// Keybind maps one key code plus modifier mask to an action.
type Keybind struct {
	Action    Action
	KeyCode   uint8
	Modifiers platform.ModMask
}

func (k Keybind) String() string {
	return fmt.Sprintf("%s%d -> %s", FormatModifiers(k.Modifiers), k.KeyCode, k.Action)
}

type chord struct {
	code uint8
	mods platform.ModMask
}

// Table is an immutable set of keybinds. It is safe to share once built.
type Table struct {
	binds []Keybind
	index map[chord]int
}

// NewTable builds a table from binds, keeping their order. Two binds on the
// same key code and modifier mask are rejected.
func NewTable(binds []Keybind) (*Table, error) {
	t := &Table{
		binds: make([]Keybind, 0, len(binds)),
		index: make(map[chord]int, len(binds)),
	}
	for i, b := range binds {
		if b.Action == nil {
			return nil, fmt.Errorf("keybind %d (keycode %d): missing action", i, b.KeyCode)
		}
		c := chord{code: b.KeyCode, mods: b.Modifiers}
		if prev, ok := t.index[c]; ok {
			return nil, fmt.Errorf("keybind %d (%s%d) duplicates keybind %d",
				i, FormatModifiers(b.Modifiers), b.KeyCode, prev)
		}
		t.index[c] = len(t.binds)
		t.binds = append(t.binds, b)
	}
	return t, nil
}

// Lookup returns the keybind for an exact key code and modifier mask.
func (t *Table) Lookup(code uint8, mods platform.ModMask) (Keybind, bool) {
	if t == nil {
		return Keybind{}, false
	}
	i, ok := t.index[chord{code: code, mods: mods}]
	if !ok {
		return Keybind{}, false
	}
	return t.binds[i], true
}

// All returns every keybind in configuration order.
func (t *Table) All() []Keybind {
	if t == nil {
		return nil
	}
	out := make([]Keybind, len(t.binds))
	copy(out, t.binds)
	return out
}

// Len returns the number of keybinds.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.binds)
}
