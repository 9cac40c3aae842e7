package elevate

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// IsAdmin reports whether the current process token is elevated.
func IsAdmin() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}

// Restart launches this executable again through the "runas" verb, which
// shows the UAC prompt. The caller should exit once it returns nil.
func Restart(args []string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to restart as administrator: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to restart as administrator: %w", err)
	}

	verb, _ := windows.UTF16PtrFromString("runas")
	file, err := windows.UTF16PtrFromString(exe)
	if err != nil {
		return err
	}
	params, err := windows.UTF16PtrFromString(joinArgs(args))
	if err != nil {
		return err
	}
	dir, err := windows.UTF16PtrFromString(cwd)
	if err != nil {
		return err
	}
	if err := windows.ShellExecute(0, verb, file, params, dir, windows.SW_NORMAL); err != nil {
		return fmt.Errorf("failed to restart as administrator: %w", err)
	}
	return nil
}
