package instance

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

type mutexLock struct {
	h windows.Handle
}

// Acquire creates the named mutex. If it already exists another instance owns it.
func Acquire(name string) (Lock, error) {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, err
	}
	h, err := windows.CreateMutex(nil, true, p)
	if err != nil {
		if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
			if h != 0 {
				_ = windows.CloseHandle(h)
			}
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("create mutex %s: %w", name, err)
	}
	return &mutexLock{h: h}, nil
}

func (l *mutexLock) Release() error {
	if l.h == 0 {
		return nil
	}
	_ = windows.ReleaseMutex(l.h)
	err := windows.CloseHandle(l.h)
	l.h = 0
	return err
}
