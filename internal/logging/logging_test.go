package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FiltersLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	require.NoError(t, err)

	level.Info(logger).Log("msg", "hidden")
	level.Warn(logger).Log("msg", "shown", "profile", "HomeNet")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=warn")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "profile=HomeNet")
	assert.Contains(t, out, "caller=logging_test.go")
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "verbose")
	assert.Error(t, err)
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wlankeys.log")
	logger, closer, err := NewFile(path, "debug")
	require.NoError(t, err)
	level.Debug(logger).Log("msg", "written")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=written")
}

func TestNewFile_Discard(t *testing.T) {
	logger, closer, err := NewFile("", "info")
	require.NoError(t, err)
	require.NoError(t, logger.Log("msg", "nowhere"))
	require.NoError(t, closer.Close())

	_, _, err = NewFile("", "nope")
	assert.Error(t, err)
}
