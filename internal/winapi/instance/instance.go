// Package instance keeps a single interactive wlankeys running per session.
package instance

import "errors"

// ErrAlreadyRunning is returned when another process holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

// DefaultName is the mutex used by the terminal UI.
const DefaultName = `Local\wlankeys-tui`

// Lock is held until Release is called.
type Lock interface {
	Release() error
}
