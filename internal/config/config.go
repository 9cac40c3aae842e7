// Package config loads the wlankeys TOML configuration.
//
// The default file lives at <UserConfigDir>/wlankeys/config.toml. A missing
// default file is not an error; built-in defaults are used instead.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
)

const (
	appName  = "wlankeys"
	fileName = "config.toml"
)

// Config is the complete wlankeys configuration.
type Config struct {
	// NetshPath is the netsh executable to run.
	NetshPath string `toml:"netsh_path"`
	// CodePage decodes netsh output, e.g. "cp850". Empty means UTF-8.
	CodePage string `toml:"codepage"`
	// CommandTimeout bounds each netsh call. Zero disables the timeout.
	CommandTimeout time.Duration `toml:"command_timeout"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// LogFile receives logs in TUI mode. Empty discards them there.
	LogFile string `toml:"log_file"`
	// RequireAdmin makes key and delete commands insist on an elevated process.
	RequireAdmin bool `toml:"require_admin"`

	Display DisplayConfig `toml:"display"`
	Export  ExportConfig  `toml:"export"`
	Connect ConnectConfig `toml:"connect"`
	Probe   ProbeConfig   `toml:"probe"`
}

type DisplayConfig struct {
	ShowPasswords bool   `toml:"show_passwords"`
	MaskChar      string `toml:"mask_char"`
}

type ExportConfig struct {
	// Dir is where exports go when no output path is given.
	Dir    string `toml:"dir"`
	Format string `toml:"format"`
}

type ConnectConfig struct {
	// Wait is how long connect waits for the interface to report the network.
	Wait         time.Duration `toml:"wait"`
	PollInterval time.Duration `toml:"poll_interval"`
}

// ProbeConfig describes the connectivity check run after connecting.
type ProbeConfig struct {
	Enabled bool          `toml:"enabled"`
	URL     string        `toml:"url"`
	Expect  string        `toml:"expect"`
	Timeout time.Duration `toml:"timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		NetshPath:    "netsh",
		LogLevel:     "info",
		RequireAdmin: true,
		Display: DisplayConfig{
			MaskChar: "•",
		},
		Export: ExportConfig{
			Format: "csv",
		},
		Connect: ConnectConfig{
			Wait:         10 * time.Second,
			PollInterval: time.Second,
		},
		Probe: ProbeConfig{
			Enabled: true,
			URL:     "http://www.msftconnecttest.com/connecttest.txt",
			Expect:  "Microsoft Connect Test",
			Timeout: 3 * time.Second,
		},
	}
}

// DefaultPath returns the location of the default config file.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, fileName), nil
}

// Load reads the config at path. An empty path loads the default file if it
// exists.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if c.CommandTimeout < 0 {
		return errors.New("command_timeout must not be negative")
	}
	if utf8.RuneCountInString(c.Display.MaskChar) > 1 {
		return fmt.Errorf("mask_char must be a single character, got %q", c.Display.MaskChar)
	}
	switch strings.ToLower(c.Export.Format) {
	case "csv", "txt", "text", "json":
	default:
		return fmt.Errorf("invalid export format %q", c.Export.Format)
	}
	if c.Connect.Wait < 0 || c.Connect.PollInterval <= 0 {
		return errors.New("connect wait must be >= 0 and poll_interval > 0")
	}
	if c.Probe.Enabled && c.Probe.URL == "" {
		return errors.New("probe url is required when the probe is enabled")
	}
	return nil
}

// Mask returns the configured mask rune, or 0 for the default.
func (c *Config) Mask() rune {
	r, _ := utf8.DecodeRuneInString(c.Display.MaskChar)
	if r == utf8.RuneError {
		return 0
	}
	return r
}
