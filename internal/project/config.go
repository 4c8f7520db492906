package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"wgslfront/internal/diag"
	"wgslfront/internal/driver"
	"wgslfront/internal/trace"
)

// Config is the decoded wgslfront.toml. Keys missing from the file keep
// their defaults, see Default.
type Config struct {
	// Path is empty for the built-in defaults.
	Path string `toml:"-"`
	Root string `toml:"-"`

	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Trace       TraceConfig       `toml:"trace"`
	Driver      DriverConfig      `toml:"driver"`
}

type DiagnosticsConfig struct {
	Max   int    `toml:"max"`
	Color string `toml:"color"` // auto|on|off
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"` // "-" is stderr
}

type DriverConfig struct {
	Jobs       int      `toml:"jobs"` // 0 = GOMAXPROCS
	Extensions []string `toml:"extensions"`
	Cache      bool     `toml:"cache"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Diagnostics: DiagnosticsConfig{Max: 100, Color: "auto"},
		Trace:       TraceConfig{Level: "off", Output: "-"},
		Driver: DriverConfig{
			Extensions: append([]string(nil), driver.DefaultExtensions...),
			Cache:      true,
		},
	}
}

// ConfigError is a semantic problem in a configuration file.
type ConfigError struct {
	Path string
	Key  string
	Msg  string
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s (%s)", e.Path, e.Msg, e.Code().ID())
	}
	return fmt.Sprintf("%s: %s: %s (%s)", e.Path, e.Key, e.Msg, e.Code().ID())
}

func (e *ConfigError) Code() diag.Code { return diag.PrjBadConfig }

// Discover finds wgslfront.toml above startDir and loads it. Without a file
// it returns Default() and ok=false.
func Discover(startDir string) (cfg Config, ok bool, err error) {
	path, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return Default(), false, err
	}
	cfg, err = Load(path)
	return cfg, true, err
}

// Load decodes and validates the file at path.
func Load(path string) (Config, error) {
	var file Config
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return Config{}, &ConfigError{Path: path, Msg: fmt.Sprintf("line %d: %s", perr.Position.Line, perr.Message)}
		}
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, &ConfigError{Path: path, Key: undecoded[0].String(), Msg: "unknown key"}
	}

	cfg := Default()
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	if meta.IsDefined("diagnostics", "max") {
		cfg.Diagnostics.Max = file.Diagnostics.Max
	}
	if meta.IsDefined("diagnostics", "color") {
		cfg.Diagnostics.Color = strings.TrimSpace(file.Diagnostics.Color)
	}
	if meta.IsDefined("trace", "level") {
		cfg.Trace.Level = strings.TrimSpace(file.Trace.Level)
	}
	if meta.IsDefined("trace", "output") {
		cfg.Trace.Output = file.Trace.Output
	}
	if meta.IsDefined("driver", "jobs") {
		cfg.Driver.Jobs = file.Driver.Jobs
	}
	if meta.IsDefined("driver", "extensions") {
		cfg.Driver.Extensions = file.Driver.Extensions
	}
	if meta.IsDefined("driver", "cache") {
		cfg.Driver.Cache = file.Driver.Cache
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	bad := func(key, format string, args ...any) error {
		return &ConfigError{Path: c.Path, Key: key, Msg: fmt.Sprintf(format, args...)}
	}
	if c.Diagnostics.Max < 0 {
		return bad("diagnostics.max", "must be >= 0, got %d", c.Diagnostics.Max)
	}
	switch c.Diagnostics.Color {
	case "auto", "on", "off":
	default:
		return bad("diagnostics.color", "must be auto, on or off, got %q", c.Diagnostics.Color)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return bad("trace.level", "%v", err)
	}
	if c.Trace.Output == "" {
		return bad("trace.output", "must not be empty")
	}
	if c.Driver.Jobs < 0 {
		return bad("driver.jobs", "must be >= 0, got %d", c.Driver.Jobs)
	}
	if len(c.Driver.Extensions) == 0 {
		return bad("driver.extensions", "must list at least one extension")
	}
	for _, ext := range c.Driver.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return bad("driver.extensions", "%q must start with a dot", ext)
		}
	}
	return nil
}
