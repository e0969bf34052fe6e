package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/phsym/console-slog"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/1broseidon/winister/internal/config"
	"github.com/1broseidon/winister/internal/launcher"
	"github.com/1broseidon/winister/internal/tiling"
	"github.com/1broseidon/winister/internal/wm"
	"github.com/1broseidon/winister/internal/x11"
)

var version = "dev"

type options struct {
	configPath string
	debug      bool
	check      bool
	version    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}
	if opts.version {
		fmt.Fprintf(stdout, "winister %s\n", version)
		return 0
	}

	// A missing .env is normal.
	_ = godotenv.Load()

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	if opts.check {
		fmt.Fprintln(stdout, "config OK")
		return 0
	}

	level, _ := config.ParseLogLevel(cfg.LogLevel)
	if opts.debug {
		level = slog.LevelDebug
	}
	logger := newLogger(stderr, level)
	slog.SetDefault(logger)

	if err := runManager(cfg, logger); err != nil {
		logger.Error("window manager stopped", "error", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("winister", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.configPath, "config", "c", "", "path to config file (default ~/.config/winister/config.yaml, or $"+config.EnvConfigPath+")")
	fs.BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
	fs.BoolVar(&opts.check, "check", false, "validate the config file and exit")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: winister [flags]")
		fmt.Fprintln(stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(console.NewHandler(w, &console.HandlerOptions{Level: level}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runManager(cfg *config.Config, logger *slog.Logger) error {
	display, err := x11.ResolveDisplay(cfg.Display, cfg.XAuthority)
	if err != nil {
		return err
	}
	if err := display.Export(); err != nil {
		return fmt.Errorf("failed to export display environment: %w", err)
	}

	conn, err := x11.NewConnection(display.Display, logger.With("component", "x11"))
	if err != nil {
		return err
	}
	defer conn.Close()
	logger.Info("connected", "display", display.Display)

	keybinds, err := cfg.KeybindTable(conn.ResolveKey)
	if err != nil {
		return err
	}
	style, err := cfg.Style()
	if err != nil {
		return err
	}

	spawner := launcher.New(
		launcher.WithLogger(logger.With("component", "launcher")),
		launcher.WithEnv("DISPLAY", display.Display),
		launcher.WithEnv("XAUTHORITY", display.XAuthority),
	)

	manager, err := wm.NewManager(conn, wm.Config{
		Workspaces: cfg.Workspaces,
		Keybinds:   keybinds,
		Launcher:   spawner,
		Style:      style,
		Padding:    addMargins(cfg.Padding(), conn.DockMargins()),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	if err := manager.Setup(); err != nil {
		return fmt.Errorf("failed to become the window manager (is another one running?): %w", err)
	}
	if err := conn.Announce(); err != nil {
		logger.Warn("failed to announce EWMH support", "error", err)
	}

	existing, err := conn.ExistingWindows()
	if err != nil {
		logger.Warn("failed to list existing windows", "error", err)
	}
	if err := manager.Adopt(existing); err != nil {
		if wm.IsFatal(err) {
			return err
		}
		logger.Warn("failed to adopt existing windows", "error", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		sig := <-sigCh
		logger.Info("shutting down", "signal", sig.String())
		if err := conn.Interrupt(); err != nil {
			logger.Error("failed to stop event loop", "error", err)
			os.Exit(1)
		}
		sig = <-sigCh
		logger.Warn("exiting without cleanup", "signal", sig.String())
		os.Exit(1)
	}()

	return manager.Run()
}

func addMargins(a, b tiling.Margins) tiling.Margins {
	return tiling.Margins{
		Top:    a.Top + b.Top,
		Bottom: a.Bottom + b.Bottom,
		Left:   a.Left + b.Left,
		Right:  a.Right + b.Right,
	}
}
