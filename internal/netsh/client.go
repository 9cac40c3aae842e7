package netsh

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	// NotAvailable replaces a key that could not be read.
	NotAvailable = "N/A"
	// UnknownSecurity replaces a security type that could not be read.
	UnknownSecurity = "Unknown"
)

// ErrInvalidName is returned for profile names netsh cannot be given safely.
var ErrInvalidName = errors.New("invalid profile name")

// Client issues the wlan subcommands of netsh and parses their output.
type Client struct {
	runner Runner
	logger log.Logger
}

func NewClient(r Runner, logger log.Logger) *Client {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Client{runner: r, logger: logger}
}

func validName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, "\"\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func nameArg(name string) string {
	return `name="` + name + `"`
}

// Profiles lists the saved profile names.
func (c *Client) Profiles(ctx context.Context) ([]string, error) {
	out, err := c.runner.Run(ctx, "wlan", "show", "profiles")
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve WiFi profiles: %w", err)
	}
	names := ParseProfiles(string(out))
	level.Debug(c.logger).Log("msg", "listed profiles", "count", len(names))
	return names, nil
}

// Password returns the stored key of a profile, or NotAvailable.
func (c *Client) Password(ctx context.Context, name string) string {
	if err := validName(name); err != nil {
		level.Warn(c.logger).Log("msg", "skipping key lookup", "err", err)
		return NotAvailable
	}
	out, err := c.runner.Run(ctx, "wlan", "show", "profile", nameArg(name), "key=clear")
	if err != nil {
		level.Debug(c.logger).Log("msg", "key lookup failed", "profile", name, "err", err)
		return NotAvailable
	}
	if key, ok := ParseKeyContent(string(out)); ok {
		return key
	}
	return NotAvailable
}

// Security returns the authentication type of a profile, or UnknownSecurity.
func (c *Client) Security(ctx context.Context, name string) string {
	if err := validName(name); err != nil {
		level.Warn(c.logger).Log("msg", "skipping security lookup", "err", err)
		return UnknownSecurity
	}
	out, err := c.runner.Run(ctx, "wlan", "show", "profile", nameArg(name))
	if err != nil {
		level.Debug(c.logger).Log("msg", "security lookup failed", "profile", name, "err", err)
		return UnknownSecurity
	}
	if sec, ok := ParseSecurity(string(out)); ok {
		return sec
	}
	return UnknownSecurity
}

// Details returns all fields of a profile. With clear set the key content is included.
func (c *Client) Details(ctx context.Context, name string, clear bool) ([]Field, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	args := []string{"wlan", "show", "profile", nameArg(name)}
	if clear {
		args = append(args, "key=clear")
	}
	out, err := c.runner.Run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %q: %w", name, err)
	}
	fields := ParseFields(string(out))
	if len(fields) == 0 {
		return nil, fmt.Errorf("profile %q not found", name)
	}
	return fields, nil
}

// Delete removes a saved profile. A run that completes counts as success
// whatever netsh printed or exited with, including a profile that is already
// gone. Only a run that could not start or was cancelled is an error.
func (c *Client) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	_, err := c.runner.Run(ctx, "wlan", "delete", "profile", nameArg(name))
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		level.Warn(c.logger).Log("msg", "netsh reported a problem deleting profile", "profile", name,
			"code", exitErr.Code, "output", exitErr.Output)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete profile '%s': %w", name, err)
	}
	level.Info(c.logger).Log("msg", "deleted profile", "profile", name)
	return nil
}

// Connect asks the WLAN service to connect using a saved profile.
func (c *Client) Connect(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	if _, err := c.runner.Run(ctx, "wlan", "connect", nameArg(name)); err != nil {
		return fmt.Errorf("failed to connect to '%s': %w", name, err)
	}
	return nil
}

// Disconnect drops the current wireless connection.
func (c *Client) Disconnect(ctx context.Context) error {
	if _, err := c.runner.Run(ctx, "wlan", "disconnect"); err != nil {
		return fmt.Errorf("failed to disconnect: %w", err)
	}
	return nil
}
