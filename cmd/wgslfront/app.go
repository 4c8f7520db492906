package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"wgslfront/internal/driver"
	"wgslfront/internal/observ"
	"wgslfront/internal/prof"
	"wgslfront/internal/project"
)

// app holds what every command needs after flags and wgslfront.toml are merged.
type app struct {
	stdout, stderr io.Writer

	cfg            project.Config
	color          bool
	quiet          bool
	maxDiagnostics int
	ui             uiMode
	timer          *observ.Timer

	closeTrace func()
	profiler   *prof.Session
}

// setup runs before every command: it loads the configuration, lets
// explicitly set flags override it and installs the tracer in the context.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	cfg, err := a.loadConfig(flags)
	if err != nil {
		return err
	}
	a.cfg = cfg

	colorMode := cfg.Diagnostics.Color
	if flags.Changed("color") {
		colorMode, _ = flags.GetString("color")
	}
	switch strings.ToLower(colorMode) {
	case "on":
		a.color = true
	case "off":
		a.color = false
	case "auto":
		a.color = isTerminal(a.stderr)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorMode)
	}

	a.maxDiagnostics = cfg.Diagnostics.Max
	if flags.Changed("max-diagnostics") {
		a.maxDiagnostics, _ = flags.GetInt("max-diagnostics")
	}
	a.quiet, _ = flags.GetBool("quiet")

	uiValue, _ := flags.GetString("ui")
	if a.ui, err = readUIMode(uiValue); err != nil {
		return err
	}

	if timings, _ := flags.GetBool("timings"); timings {
		a.timer = observ.NewTimer()
	}

	if err := a.setupProfiling(flags); err != nil {
		return err
	}
	return a.setupTracing(cmd)
}

func (a *app) setupProfiling(flags *pflag.FlagSet) error {
	var opts prof.Options
	opts.CPU, _ = flags.GetString("cpu-profile")
	opts.Mem, _ = flags.GetString("mem-profile")
	opts.Trace, _ = flags.GetString("runtime-trace")
	if !opts.Enabled() {
		return nil
	}
	session, err := prof.Start(opts)
	if err != nil {
		return err
	}
	a.profiler = session
	return nil
}

func (a *app) loadConfig(flags *pflag.FlagSet) (project.Config, error) {
	if path, _ := flags.GetString("config"); path != "" {
		cfg, err := project.Load(path)
		if err != nil {
			return project.Config{}, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
	cfg, _, err := project.Discover(".")
	if err != nil {
		return project.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (a *app) teardown() {
	if a.closeTrace != nil {
		a.closeTrace()
		a.closeTrace = nil
	}
	if err := a.profiler.Stop(); err != nil {
		fmt.Fprintf(a.stderr, "profile: %v\n", err)
	}
}

// driverOptions builds the driver options shared by all commands.
func (a *app) driverOptions() driver.Options {
	return driver.Options{
		MaxDiagnostics: a.maxDiagnostics,
		Jobs:           a.cfg.Driver.Jobs,
		Extensions:     a.cfg.Driver.Extensions,
		Timer:          a.timer,
	}
}

// fail dumps the trace ring (if any) and returns the exit error.
func (a *app) fail(ctx context.Context) error {
	a.dumpRing(ctx)
	return errFailed
}
