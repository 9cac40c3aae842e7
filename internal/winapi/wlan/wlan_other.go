//go:build !windows

package wlan

// Handle is unavailable outside Windows.
type Handle struct{}

func Open() (*Handle, error) { return nil, ErrUnsupported }

func (*Handle) Current() (Connection, error) { return Connection{}, ErrUnsupported }

func (*Handle) Close() error { return nil }
