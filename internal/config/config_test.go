package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/winister/internal/hotkeys"
	"github.com/1broseidon/winister/internal/platform"
)

func writeConfig(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Workspaces != DefaultWorkspaces {
		t.Fatalf("expected %d workspaces, got %d", DefaultWorkspaces, cfg.Workspaces)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Keybinds) != len(DefaultKeybinds(DefaultWorkspaces)) {
		t.Fatalf("expected default keybinds, got %d", len(cfg.Keybinds))
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(writeConfig(t, "# empty"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BorderWidth != 2 {
		t.Fatalf("expected default border width, got %d", cfg.BorderWidth)
	}
}

func TestLoadFromPath_WorkspacesOnlyScalesDefaultKeybinds(t *testing.T) {
	cfg, err := LoadFromPath(writeConfig(t, "workspaces: 4"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	table, err := cfg.KeybindTable(nil)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	for i := 0; i < 4; i++ {
		kb, ok := table.Lookup(uint8(10+i), platform.Mod4)
		if !ok || kb.Action != (hotkeys.SwitchToWorkspace{Index: i}) {
			t.Fatalf("workspace %d bind = %v %v", i, kb.Action, ok)
		}
		kb, ok = table.Lookup(uint8(10+i), platform.Mod4|platform.ModShift)
		if !ok || kb.Action != (hotkeys.MoveFocusedWindowToWorkspace{Index: i}) {
			t.Fatalf("move %d bind = %v %v", i, kb.Action, ok)
		}
	}
	if kb, ok := table.Lookup(14, platform.Mod4); ok {
		t.Fatalf("unexpected bind for workspace 4: %v", kb.Action)
	}
	if _, ok := table.Lookup(26, platform.Mod4|platform.ModShift); !ok {
		t.Fatalf("expected quit bind to remain")
	}
}

func TestLoadFromPath_EmptyKeybindsStayEmpty(t *testing.T) {
	cfg, err := LoadFromPath(writeConfig(t, "keybinds: []"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Keybinds) != 0 {
		t.Fatalf("expected no keybinds, got %d", len(cfg.Keybinds))
	}
}

func TestLoadFromPath_OverridesFields(t *testing.T) {
	path := writeConfig(t,
		`display: ":1"`,
		`xauthority: "/tmp/test-xauth"`,
		"workspaces: 4",
		"gap_size: 6",
		"screen_padding:",
		"  top: 24",
		"keybinds:",
		"  - key: Mod4-Return",
		"    action: run",
		"    command: xterm",
		"  - keycode: 10",
		"    modifiers: [super]",
		"    action: workspace",
		"    workspace: 3",
	)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Display != ":1" || cfg.XAuthority != "/tmp/test-xauth" {
		t.Fatalf("display/xauthority not loaded: %q %q", cfg.Display, cfg.XAuthority)
	}
	if cfg.Workspaces != 4 || cfg.GapSize != 6 || cfg.ScreenPadding.Top != 24 {
		t.Fatalf("unexpected values: %+v", cfg)
	}
	if len(cfg.Keybinds) != 2 {
		t.Fatalf("expected keybinds to replace defaults, got %d", len(cfg.Keybinds))
	}
	if cfg.BorderColor != DefaultConfig().BorderColor {
		t.Fatalf("unset keys must keep defaults")
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := writeConfig(t, "unknown_key: 1")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrorHasPathAndFile(t *testing.T) {
	path := writeConfig(t, "workspaces: 40")

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "workspaces" || verr.File != path {
		t.Fatalf("unexpected error context: %+v", verr)
	}
}

func TestDefaultConfigPath_EnvOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/winister-test.yaml")
	got, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if got != "/tmp/winister-test.yaml" {
		t.Fatalf("expected env override, got %q", got)
	}
}

func TestValidate_Rejects(t *testing.T) {
	code := func(c uint8) *uint8 { return &c }
	idx := func(i int) *int { return &i }

	tests := []struct {
		name string
		mod  func(*Config)
		path string
	}{
		{"zero workspaces", func(c *Config) { c.Workspaces = 0 }, "workspaces"},
		{"negative border", func(c *Config) { c.BorderWidth = -1 }, "border_width"},
		{"negative gap", func(c *Config) { c.GapSize = -1 }, "gap_size"},
		{"negative padding", func(c *Config) { c.ScreenPadding.Left = -2 }, "screen_padding"},
		{"bad colour", func(c *Config) { c.BorderColor = "not-a-colour" }, "border_color"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"run without command", func(c *Config) {
			c.Keybinds = []KeybindConfig{{KeyCode: code(36), Action: ActionRun}}
		}, "keybinds[0]"},
		{"key and keycode", func(c *Config) {
			c.Keybinds = []KeybindConfig{{Key: "q", KeyCode: code(24), Action: ActionQuit}}
		}, "keybinds[0]"},
		{"neither key nor keycode", func(c *Config) {
			c.Keybinds = []KeybindConfig{{Action: ActionQuit}}
		}, "keybinds[0]"},
		{"workspace out of range", func(c *Config) {
			c.Keybinds = []KeybindConfig{{KeyCode: code(10), Action: ActionWorkspace, Workspace: idx(10)}}
		}, "keybinds[0]"},
		{"move without workspace", func(c *Config) {
			c.Keybinds = []KeybindConfig{{KeyCode: code(10), Action: ActionMoveToWorkspace}}
		}, "keybinds[0]"},
		{"unknown action", func(c *Config) {
			c.Keybinds = []KeybindConfig{{KeyCode: code(10), Action: "dance"}}
		}, "keybinds[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mod(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, verr.Path)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want platform.Color
	}{
		{"#ff0000", 0xff0000},
		{"88c0d0", 0x88c0d0},
		{"#000000", 0},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseColor(%q) = %06x, want %06x", tt.in, got, tt.want)
		}
	}
	if _, err := ParseColor("#zzzzzz"); err == nil {
		t.Fatalf("expected error for invalid colour")
	}
}

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
	} {
		got, err := ParseLogLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLogLevel(%q) = %v, %v", in, got, err)
		}
	}
}

func TestStyle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BorderColor = "#102030"
	cfg.FocusedBorderColor = "#ffffff"
	cfg.GapSize = 4

	style, err := cfg.Style()
	if err != nil {
		t.Fatalf("style: %v", err)
	}
	if style.BorderColor != 0x102030 || style.FocusedBorder != 0xffffff {
		t.Fatalf("unexpected colours: %06x %06x", style.BorderColor, style.FocusedBorder)
	}
	if style.BorderWidth != 2 || style.Gap != 4 {
		t.Fatalf("unexpected sizes: %+v", style)
	}
}

func TestKeybindTable_Defaults(t *testing.T) {
	table, err := DefaultConfig().KeybindTable(nil)
	if err != nil {
		t.Fatalf("table: %v", err)
	}

	tests := []struct {
		code uint8
		mods platform.ModMask
		want hotkeys.Action
	}{
		{36, platform.Mod4, hotkeys.RunCommand{Program: DefaultTerminal}},
		{10, platform.Mod4, hotkeys.SwitchToWorkspace{Index: 0}},
		{19, platform.Mod4, hotkeys.SwitchToWorkspace{Index: 9}},
		{12, platform.Mod4 | platform.ModShift, hotkeys.MoveFocusedWindowToWorkspace{Index: 2}},
		{24, platform.Mod4 | platform.ModShift, hotkeys.CloseFocusedWindow{}},
		{26, platform.Mod4 | platform.ModShift, hotkeys.Quit{}},
	}
	for _, tt := range tests {
		kb, ok := table.Lookup(tt.code, tt.mods)
		if !ok {
			t.Fatalf("expected bind for %d/%d", tt.code, tt.mods)
		}
		if kb.Action != tt.want {
			t.Fatalf("bind %d/%d = %v, want %v", tt.code, tt.mods, kb.Action, tt.want)
		}
	}
}

func TestKeybindTable_ResolvesKeySequences(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keybinds = []KeybindConfig{
		{Key: "super-ctrl-Return", Modifiers: []string{"shift"}, Action: ActionRun, Command: "xterm"},
	}

	var asked string
	table, err := cfg.KeybindTable(func(seq string) (platform.ModMask, uint8, error) {
		asked = seq
		return platform.Mod4 | platform.ModControl, 36, nil
	})
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if asked != "Mod4-Control-Return" {
		t.Fatalf("resolver asked for %q", asked)
	}
	if _, ok := table.Lookup(36, platform.Mod4|platform.ModControl|platform.ModShift); !ok {
		t.Fatalf("expected combined modifiers from key and modifiers list")
	}
}

func TestKeybindTable_RejectsMalformedSequences(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"unknown modifier", "hyper-q"},
		{"no key", "Mod4-"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Keybinds = []KeybindConfig{{Key: tt.key, Action: ActionQuit}}
			called := false
			_, err := cfg.KeybindTable(func(string) (platform.ModMask, uint8, error) {
				called = true
				return 0, 24, nil
			})
			if err == nil {
				t.Fatalf("expected error for %q", tt.key)
			}
			if called {
				t.Fatalf("resolver called for %q", tt.key)
			}
		})
	}
}

func TestKeybindTable_Errors(t *testing.T) {
	code := func(c uint8) *uint8 { return &c }

	cfg := DefaultConfig()
	cfg.Keybinds = []KeybindConfig{{Key: "q", Action: ActionQuit}}
	if _, err := cfg.KeybindTable(nil); err == nil {
		t.Fatalf("expected error resolving key name without a resolver")
	}

	cfg.Keybinds = []KeybindConfig{{Key: "q", Action: ActionQuit}}
	boom := errors.New("no such key")
	_, err := cfg.KeybindTable(func(string) (platform.ModMask, uint8, error) { return 0, 0, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected resolver error, got %v", err)
	}

	cfg.Keybinds = []KeybindConfig{
		{KeyCode: code(24), Modifiers: []string{"mod4"}, Action: ActionQuit},
		{KeyCode: code(24), Modifiers: []string{"super"}, Action: ActionClose},
	}
	if _, err := cfg.KeybindTable(nil); err == nil || !strings.Contains(err.Error(), "duplicates") {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	cfg.Keybinds = []KeybindConfig{{KeyCode: code(24), Modifiers: []string{"hyper"}, Action: ActionQuit}}
	if _, err := cfg.KeybindTable(nil); err == nil {
		t.Fatalf("expected unknown modifier error")
	}
}
