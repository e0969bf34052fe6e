package x11

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var (
	readDirFn = os.ReadDir
	statFn    = os.Stat
	getenvFn  = os.Getenv
)

const x11SocketDir = "/tmp/.X11-unix"

// DisplayEnv is the X display and authority file the manager connects with.
type DisplayEnv struct {
	Display    string
	XAuthority string
}

// ResolveDisplay picks DISPLAY and XAUTHORITY. Explicit configuration wins
// over the environment; the newest local X socket and ~/.Xauthority are the
// last resort.
func ResolveDisplay(display, xauthority string) (DisplayEnv, error) {
	env := DisplayEnv{
		Display:    strings.TrimSpace(display),
		XAuthority: strings.TrimSpace(xauthority),
	}

	if env.Display == "" {
		env.Display = strings.TrimSpace(getenvFn("DISPLAY"))
	}
	if env.XAuthority == "" {
		env.XAuthority = strings.TrimSpace(getenvFn("XAUTHORITY"))
	}
	if env.Display == "" {
		env.Display = detectDisplayFromSockets(x11SocketDir)
	}
	if env.Display == "" {
		return DisplayEnv{}, fmt.Errorf("no X display found; export DISPLAY or set display in config (e.g. display: \":1\")")
	}

	if env.XAuthority == "" {
		home := strings.TrimSpace(getenvFn("HOME"))
		if home == "" {
			if detected, err := os.UserHomeDir(); err == nil {
				home = detected
			}
		}
		if home != "" {
			candidate := filepath.Join(home, ".Xauthority")
			if _, err := statFn(candidate); err == nil {
				env.XAuthority = candidate
			}
		}
	}
	return env, nil
}

// Export writes the resolved values into the process environment so the X
// library and launched programs see them.
func (e DisplayEnv) Export() error {
	if err := os.Setenv("DISPLAY", e.Display); err != nil {
		return err
	}
	if e.XAuthority != "" {
		return os.Setenv("XAUTHORITY", e.XAuthority)
	}
	return nil
}

func detectDisplayFromSockets(dir string) string {
	entries, err := readDirFn(dir)
	if err != nil {
		return ""
	}

	var displays []int
	for _, entry := range entries {
		name := entry.Name()
		if len(name) < 2 || name[0] != 'X' {
			continue
		}
		n, err := strconv.Atoi(name[1:])
		if err != nil {
			continue
		}
		displays = append(displays, n)
	}

	if len(displays) == 0 {
		return ""
	}
	sort.Ints(displays)
	return fmt.Sprintf(":%d", displays[len(displays)-1])
}
