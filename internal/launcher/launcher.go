package launcher

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Launcher starts user programs detached from the window manager. It does
// not track exit status beyond logging it.
type Launcher struct {
	env    []string
	logger *slog.Logger
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithEnv sets an environment variable for every launched program.
func WithEnv(key, value string) Option {
	return func(l *Launcher) {
		if strings.TrimSpace(value) == "" {
			return
		}
		l.env = upsertEnv(l.env, key, value)
	}
}

// WithLogger sets the logger used for exit reports.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Launcher) {
		l.logger = logger
	}
}

// New creates a launcher that passes on the current environment.
func New(opts ...Option) *Launcher {
	l := &Launcher{
		env:    os.Environ(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Spawn starts program with no arguments and returns once it is running.
func (l *Launcher) Spawn(program string) error {
	program = strings.TrimSpace(program)
	if program == "" {
		return fmt.Errorf("empty program name")
	}

	cmd := exec.Command(program)
	cmd.Env = l.env
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", program, err)
	}

	pid := cmd.Process.Pid
	l.logger.Info("launched", "program", program, "pid", pid)
	go func() {
		if err := cmd.Wait(); err != nil {
			l.logger.Debug("program exited", "program", program, "pid", pid, "error", err)
		}
	}()
	return nil
}

func upsertEnv(env []string, key string, value string) []string {
	prefix := key + "="
	out := make([]string, 0, len(env)+1)
	replaced := false
	for _, e := range env {
		if strings.HasPrefix(e, prefix) {
			if !replaced {
				out = append(out, prefix+value)
				replaced = true
			}
			continue
		}
		out = append(out, e)
	}
	if !replaced {
		out = append(out, prefix+value)
	}
	return out
}
