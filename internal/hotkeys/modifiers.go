package hotkeys

import (
	"fmt"
	"strings"

	"github.com/1broseidon/winister/internal/platform"
)

var modifierNames = map[string]platform.ModMask{
	"shift":   platform.ModShift,
	"lock":    platform.ModLock,
	"control": platform.ModControl,
	"ctrl":    platform.ModControl,
	"mod1":    platform.Mod1,
	"alt":     platform.Mod1,
	"mod2":    platform.Mod2,
	"mod3":    platform.Mod3,
	"mod4":    platform.Mod4,
	"super":   platform.Mod4,
	"mod5":    platform.Mod5,
}

// ParseModifier converts a modifier name ("Mod4", "shift", "ctrl", ...)
// into its mask bit. Names are case-insensitive.
func ParseModifier(name string) (platform.ModMask, error) {
	m, ok := modifierNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown modifier %q", name)
	}
	return m, nil
}

// FormatModifiers renders a mask as "Mod4-Shift-" style prefix.
func FormatModifiers(m platform.ModMask) string {
	order := []struct {
		bit  platform.ModMask
		name string
	}{
		{platform.Mod4, "Mod4"},
		{platform.Mod1, "Mod1"},
		{platform.Mod2, "Mod2"},
		{platform.Mod3, "Mod3"},
		{platform.Mod5, "Mod5"},
		{platform.ModControl, "Control"},
		{platform.ModShift, "Shift"},
		{platform.ModLock, "Lock"},
	}

	var b strings.Builder
	for _, o := range order {
		if m&o.bit != 0 {
			b.WriteString(o.name)
			b.WriteByte('-')
		}
	}
	return b.String()
}
