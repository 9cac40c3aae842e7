package netsh

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/text/encoding"
)

// DefaultPath is used when no netsh binary is configured.
const DefaultPath = "netsh"

// waitDelay bounds how long output is drained after the process is killed.
const waitDelay = time.Second

// Runner executes netsh with the given arguments and returns its standard output.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// Exec runs the real netsh binary.
type Exec struct {
	// Path of the netsh executable. Empty means DefaultPath.
	Path string
	// Encoding decodes the console output. Nil leaves it untouched (UTF-8).
	Encoding encoding.Encoding
	// Timeout bounds a single invocation. Zero means no timeout.
	Timeout time.Duration
}

func (e *Exec) path() string {
	if e.Path == "" {
		return DefaultPath
	}
	return e.Path
}

func (e *Exec) Run(ctx context.Context, args ...string) ([]byte, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	path := e.path()
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.WaitDelay = waitDelay
	prepare(cmd, path, args)

	out, err := cmd.Output()
	if e.Encoding != nil && len(out) > 0 {
		if decoded, derr := e.Encoding.NewDecoder().Bytes(out); derr == nil {
			out = decoded
		}
	}
	if err == nil {
		return out, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			msg = strings.TrimSpace(string(exitErr.Stderr))
		}
		return out, &ExitError{
			Command: path + " " + strings.Join(args, " "),
			Code:    exitErr.ExitCode(),
			Output:  msg,
			Err:     err,
		}
	}
	return out, fmt.Errorf("%s %s: %w", path, strings.Join(args, " "), err)
}

// ExitError means netsh ran to completion but reported a non-zero exit code.
type ExitError struct {
	Command string
	Code    int
	// Output is the trimmed console output, used as the failure message.
	Output string
	Err    error
}

func (e *ExitError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, e.Output)
}

func (e *ExitError) Unwrap() error { return e.Err }

// commandLine joins the executable and its arguments without any escaping.
// netsh does its own parsing of name="..." arguments, which the default
// Windows argv escaping would break. Only exec_windows.go installs it; it
// lives here so it is tested on every platform.
func commandLine(path string, args []string) string {
	var b strings.Builder
	if strings.ContainsAny(path, " \t") {
		b.WriteString(`"` + path + `"`)
	} else {
		b.WriteString(path)
	}
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(a)
	}
	return b.String()
}
