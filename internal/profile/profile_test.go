package profile

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	names     []string
	listErr   error
	passwords map[string]string
	security  map[string]string

	mu    sync.Mutex
	calls []string
}

func (f *fakeSource) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeSource) Profiles(context.Context) ([]string, error) {
	f.record("list")
	return f.names, f.listErr
}

func (f *fakeSource) Password(_ context.Context, name string) string {
	f.record("key:" + name)
	if p, ok := f.passwords[name]; ok {
		return p
	}
	return "N/A"
}

func (f *fakeSource) Security(_ context.Context, name string) string {
	f.record("sec:" + name)
	if s, ok := f.security[name]; ok {
		return s
	}
	return "Unknown"
}

func TestMask(t *testing.T) {
	assert.Equal(t, "••••••••", Mask("", 0))
	assert.Equal(t, "••••••••", Mask("abc", DefaultMask))
	assert.Equal(t, "**********", Mask("0123456789", '*'))
	assert.Equal(t, "••••••••••", Mask("пароль1234", DefaultMask))
}

func TestDisplayPassword(t *testing.T) {
	p := Profile{Password: "hunter22"}
	assert.Equal(t, "hunter22", p.DisplayPassword(true, 0))
	assert.Equal(t, "########", p.DisplayPassword(false, '#'))
}

func TestLoader_Load(t *testing.T) {
	src := &fakeSource{
		names:     []string{"HomeNet", "Cafe", "Office"},
		passwords: map[string]string{"HomeNet": "hunter22", "Office": "s3cret"},
		security:  map[string]string{"HomeNet": "WPA2-Personal", "Cafe": "Open"},
	}

	var progress []int
	ld := NewLoader(src, WithProgress(func(done, total int, _ string) {
		assert.Equal(t, 3, total)
		progress = append(progress, done)
	}))

	got, err := ld.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Profile{
		{SSID: "HomeNet", Password: "hunter22", Security: "WPA2-Personal", ConnectionType: SavedProfile},
		{SSID: "Cafe", Password: "N/A", Security: "Open", ConnectionType: SavedProfile},
		{SSID: "Office", Password: "s3cret", Security: "Unknown", ConnectionType: SavedProfile},
	}, got)
	assert.Equal(t, []int{1, 2, 3}, progress)
	assert.Equal(t, []string{
		"list",
		"key:HomeNet", "sec:HomeNet",
		"key:Cafe", "sec:Cafe",
		"key:Office", "sec:Office",
	}, src.calls)
}

func TestLoader_ListFailure(t *testing.T) {
	src := &fakeSource{listErr: errors.New("netsh not found")}
	_, err := NewLoader(src).Load(context.Background())
	require.EqualError(t, err, "netsh not found")
}

func TestLoader_Cancelled(t *testing.T) {
	src := &fakeSource{names: []string{"a", "b"}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := NewLoader(src).Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, got)
}

func TestLoader_Start(t *testing.T) {
	src := &fakeSource{names: []string{"HomeNet"}, passwords: map[string]string{"HomeNet": "x"}}
	ch := NewLoader(src).Start(context.Background())

	res, ok := <-ch
	require.True(t, ok)
	require.NoError(t, res.Err)
	require.Len(t, res.Profiles, 1)
	assert.Equal(t, "x", res.Profiles[0].Password)

	_, ok = <-ch
	assert.False(t, ok, "channel should be closed after the result")
}

type fakeDeleter struct {
	fail    map[string]bool
	deleted []string
}

func (f *fakeDeleter) Delete(_ context.Context, name string) error {
	if f.fail[name] {
		return errors.New("failed to delete profile '" + name + "'")
	}
	f.deleted = append(f.deleted, name)
	return nil
}

func TestDeleteAll(t *testing.T) {
	d := &fakeDeleter{fail: map[string]bool{"b": true, "d": true}}
	err := DeleteAll(context.Background(), d, []string{"a", "b", "c", "d"})
	require.Error(t, err)
	assert.Equal(t, []string{"a", "c"}, d.deleted)
	assert.Contains(t, err.Error(), "'b'")
	assert.Contains(t, err.Error(), "'d'")

	d = &fakeDeleter{}
	require.NoError(t, DeleteAll(context.Background(), d, []string{"a"}))
	require.NoError(t, DeleteAll(context.Background(), d, nil))
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Names([]Profile{{SSID: "a"}, {SSID: "b"}}))
	assert.Empty(t, Names(nil))
}
