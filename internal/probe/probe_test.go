package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_Online(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("Microsoft Connect Test"))
	}))
	defer srv.Close()

	res, err := New(srv.URL, "Microsoft Connect Test", time.Second).Check(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Online)
	assert.Equal(t, 200, res.StatusCode)
}

func TestCheck_WrongBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>Please log in</html>"))
	}))
	defer srv.Close()

	res, err := New(srv.URL, "Microsoft Connect Test", time.Second).Check(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Online)
	assert.Equal(t, "unexpected response body", res.Reason)
}

func TestCheck_CaptivePortal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://portal.example/login", http.StatusFound)
	}))
	defer srv.Close()

	res, err := New(srv.URL, "Microsoft Connect Test", time.Second).Check(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Online)
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Contains(t, res.Reason, "portal.example/login")
}

func TestCheck_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	res, err := New(srv.URL, "", time.Second).Check(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Online)
	assert.Contains(t, res.Reason, "503")
}

func TestCheck_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, "", 500*time.Millisecond).Check(context.Background())
	assert.Error(t, err)
}
