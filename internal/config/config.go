package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/1broseidon/winister/internal/platform"
	"github.com/1broseidon/winister/internal/tiling"
	"github.com/1broseidon/winister/internal/workspace"
)

const (
	DefaultWorkspaces = 10
	MaxWorkspaces     = 32
	DefaultTerminal   = "alacritty"
)

// Margins represents padding reserved at the screen edges.
type Margins struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
}

// KeybindAction names what a configured keybind does.
type KeybindAction string

const (
	ActionRun             KeybindAction = "run"
	ActionWorkspace       KeybindAction = "workspace"
	ActionMoveToWorkspace KeybindAction = "move_to_workspace"
	ActionClose           KeybindAction = "close"
	ActionQuit            KeybindAction = "quit"
)

// KeybindConfig is one entry of the keybinds list. Exactly one of Key and
// KeyCode must be set. Key may carry its own modifiers ("Mod4-Shift-q");
// they are combined with Modifiers.
type KeybindConfig struct {
	Key       string        `yaml:"key,omitempty"`
	KeyCode   *uint8        `yaml:"keycode,omitempty"`
	Modifiers []string      `yaml:"modifiers,omitempty"`
	Action    KeybindAction `yaml:"action"`
	Command   string        `yaml:"command,omitempty"`
	Workspace *int          `yaml:"workspace,omitempty"`
}

// Config is the top-level configuration file.
type Config struct {
	Display            string          `yaml:"display"`
	XAuthority         string          `yaml:"xauthority"`
	Workspaces         int             `yaml:"workspaces"`
	BorderWidth        int             `yaml:"border_width"`
	BorderColor        string          `yaml:"border_color"`
	FocusedBorderColor string          `yaml:"focused_border_color"`
	GapSize            int             `yaml:"gap_size"`
	ScreenPadding      Margins         `yaml:"screen_padding"`
	LogLevel           string          `yaml:"log_level"`
	Keybinds           []KeybindConfig `yaml:"keybinds"`
}

// ValidationError points at the config key that failed validation.
type ValidationError struct {
	Path string
	File string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %v", e.File, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Workspaces:         DefaultWorkspaces,
		BorderWidth:        2,
		BorderColor:        "#3b4252",
		FocusedBorderColor: "#88c0d0",
		LogLevel:           "info",
		Keybinds:           DefaultKeybinds(DefaultWorkspaces),
	}
}

// DefaultKeybinds binds Mod4+Return to a terminal, Mod4+1..0 to the first
// ten workspaces (fewer when workspaces is smaller), Mod4+Shift+1..0 to
// moving the focused window, Mod4+Shift+q to close and Mod4+Shift+e to quit.
// Keycodes follow the common pc105 layout.
func DefaultKeybinds(workspaces int) []KeybindConfig {
	code := func(c uint8) *uint8 { return &c }
	idx := func(i int) *int { return &i }

	binds := []KeybindConfig{
		{KeyCode: code(36), Modifiers: []string{"mod4"}, Action: ActionRun, Command: DefaultTerminal},
	}
	n := min(workspaces, 10)
	for i := 0; i < n; i++ {
		binds = append(binds, KeybindConfig{
			KeyCode:   code(uint8(10 + i)),
			Modifiers: []string{"mod4"},
			Action:    ActionWorkspace,
			Workspace: idx(i),
		})
	}
	for i := 0; i < n; i++ {
		binds = append(binds, KeybindConfig{
			KeyCode:   code(uint8(10 + i)),
			Modifiers: []string{"mod4", "shift"},
			Action:    ActionMoveToWorkspace,
			Workspace: idx(i),
		})
	}
	binds = append(binds,
		KeybindConfig{KeyCode: code(24), Modifiers: []string{"mod4", "shift"}, Action: ActionClose},
		KeybindConfig{KeyCode: code(26), Modifiers: []string{"mod4", "shift"}, Action: ActionQuit},
	)
	return binds
}

// Validate checks ranges and keybind shape. Key names are resolved later,
// once an X connection exists.
func (c *Config) Validate() error {
	if c.Workspaces < 1 || c.Workspaces > MaxWorkspaces {
		return &ValidationError{Path: "workspaces", Err: fmt.Errorf("workspaces must be between 1 and %d", MaxWorkspaces)}
	}
	if c.BorderWidth < 0 {
		return &ValidationError{Path: "border_width", Err: fmt.Errorf("border_width must be >= 0")}
	}
	if c.GapSize < 0 {
		return &ValidationError{Path: "gap_size", Err: fmt.Errorf("gap_size must be >= 0")}
	}
	if c.ScreenPadding.Top < 0 || c.ScreenPadding.Bottom < 0 || c.ScreenPadding.Left < 0 || c.ScreenPadding.Right < 0 {
		return &ValidationError{Path: "screen_padding", Err: fmt.Errorf("screen_padding values must be >= 0")}
	}
	if _, err := ParseColor(c.BorderColor); err != nil {
		return &ValidationError{Path: "border_color", Err: err}
	}
	if _, err := ParseColor(c.FocusedBorderColor); err != nil {
		return &ValidationError{Path: "focused_border_color", Err: err}
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return &ValidationError{Path: "log_level", Err: err}
	}
	for i, kb := range c.Keybinds {
		if err := kb.validate(c.Workspaces); err != nil {
			return &ValidationError{Path: fmt.Sprintf("keybinds[%d]", i), Err: err}
		}
	}
	return nil
}

func (kb KeybindConfig) validate(workspaces int) error {
	hasKey := strings.TrimSpace(kb.Key) != ""
	if hasKey == (kb.KeyCode != nil) {
		return fmt.Errorf("exactly one of key and keycode must be set")
	}
	switch kb.Action {
	case ActionRun:
		if strings.TrimSpace(kb.Command) == "" {
			return fmt.Errorf("run requires a command")
		}
	case ActionWorkspace, ActionMoveToWorkspace:
		if kb.Workspace == nil {
			return fmt.Errorf("%s requires a workspace", kb.Action)
		}
		if *kb.Workspace < 0 || *kb.Workspace >= workspaces {
			return fmt.Errorf("workspace %d out of range (0..%d)", *kb.Workspace, workspaces-1)
		}
	case ActionClose, ActionQuit:
	default:
		return fmt.Errorf("action must be one of: run, workspace, move_to_workspace, close, quit")
	}
	return nil
}

// Style returns the border and gap settings used when tiling.
func (c *Config) Style() (workspace.Style, error) {
	normal, err := ParseColor(c.BorderColor)
	if err != nil {
		return workspace.Style{}, &ValidationError{Path: "border_color", Err: err}
	}
	focused, err := ParseColor(c.FocusedBorderColor)
	if err != nil {
		return workspace.Style{}, &ValidationError{Path: "focused_border_color", Err: err}
	}
	return workspace.Style{
		BorderWidth:   c.BorderWidth,
		Gap:           c.GapSize,
		BorderColor:   normal,
		FocusedBorder: focused,
	}, nil
}

// Padding converts screen_padding to tiling margins.
func (c *Config) Padding() tiling.Margins {
	return tiling.Margins{
		Top:    c.ScreenPadding.Top,
		Bottom: c.ScreenPadding.Bottom,
		Left:   c.ScreenPadding.Left,
		Right:  c.ScreenPadding.Right,
	}
}

// ParseColor converts a hex colour ("#rrggbb" or "#rgb") to a pixel value.
func ParseColor(s string) (platform.Color, error) {
	c, err := colorful.Hex(normalizeHex(s))
	if err != nil {
		return 0, fmt.Errorf("invalid colour %q", s)
	}
	r, g, b := c.RGB255()
	return platform.Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b)), nil
}

func normalizeHex(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	return s
}

// ParseLogLevel maps a log_level value to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log_level must be one of: debug, info, warn, error")
}
