package hotkeys

import (
	"testing"

	"github.com/1broseidon/winister/internal/platform"
)

func TestParseModifier_Aliases(t *testing.T) {
	tests := []struct {
		name string
		want platform.ModMask
	}{
		{"Mod4", platform.Mod4},
		{"super", platform.Mod4},
		{"ALT", platform.Mod1},
		{"ctrl", platform.ModControl},
		{" Control ", platform.ModControl},
		{"shift", platform.ModShift},
	}
	for _, tt := range tests {
		got, err := ParseModifier(tt.name)
		if err != nil {
			t.Fatalf("ParseModifier(%q): %v", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("ParseModifier(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if _, err := ParseModifier("hyper"); err == nil {
		t.Fatal("expected error for unknown modifier")
	}
}

func TestFormatModifiers(t *testing.T) {
	if got := FormatModifiers(platform.Mod4 | platform.ModShift); got != "Mod4-Shift-" {
		t.Fatalf("FormatModifiers = %q", got)
	}
	if got := FormatModifiers(0); got != "" {
		t.Fatalf("FormatModifiers(0) = %q", got)
	}
}
