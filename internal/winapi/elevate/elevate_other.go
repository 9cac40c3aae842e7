//go:build !windows

package elevate

import "os"

// IsAdmin reports whether the process runs as root.
func IsAdmin() bool {
	return os.Geteuid() == 0
}

func Restart([]string) error {
	return ErrUnsupported
}
