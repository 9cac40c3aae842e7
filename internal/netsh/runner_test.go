package netsh

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh as a stand-in for netsh")
	}
}

func TestExec_Output(t *testing.T) {
	skipOnWindows(t)
	e := &Exec{Path: "/bin/sh"}
	out, err := e.Run(context.Background(), "-c", "printf 'All User Profile : HomeNet\\n'")
	require.NoError(t, err)
	assert.Equal(t, []string{"HomeNet"}, ParseProfiles(string(out)))
}

func TestExec_ExitErrorCarriesOutput(t *testing.T) {
	skipOnWindows(t)
	e := &Exec{Path: "/bin/sh"}
	_, err := e.Run(context.Background(), "-c", "echo 'The Wireless AutoConfig Service (wlansvc) is not running.'; exit 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit status 1")
	assert.Contains(t, err.Error(), "wlansvc")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
}

func TestExec_DeleteOfMissingProfileSucceeds(t *testing.T) {
	skipOnWindows(t)
	script := filepath.Join(t.TempDir(), "netsh")
	require.NoError(t, os.WriteFile(script,
		[]byte("#!/bin/sh\necho 'Profile \"Gone\" is not found on any interface.'\nexit 1\n"), 0o755))

	c := NewClient(&Exec{Path: script}, nil)
	assert.NoError(t, c.Delete(context.Background(), "Gone"))
}

func TestExec_TimeoutIsNotExitError(t *testing.T) {
	skipOnWindows(t)
	e := &Exec{Path: "/bin/sh", Timeout: 50 * time.Millisecond}
	_, err := e.Run(context.Background(), "-c", "exec sleep 5")
	require.Error(t, err)
	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
}

func TestExec_Decodes(t *testing.T) {
	skipOnWindows(t)
	e := &Exec{Path: "/bin/sh", Encoding: charmap.CodePage850}
	out, err := e.Run(context.Background(), "-c", `printf 'Caf\202'`)
	require.NoError(t, err)
	assert.Equal(t, "Café", string(out))
}

func TestExec_Timeout(t *testing.T) {
	skipOnWindows(t)
	e := &Exec{Path: "/bin/sh", Timeout: 50 * time.Millisecond}
	start := time.Now()
	_, err := e.Run(context.Background(), "-c", "exec sleep 5")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestExec_MissingBinary(t *testing.T) {
	e := &Exec{Path: "definitely-not-netsh-12345"}
	_, err := e.Run(context.Background(), "wlan", "show", "profiles")
	assert.Error(t, err)
}
