package wlan

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedQuerier struct {
	mu    sync.Mutex
	steps []Connection
	err   error
	n     int
}

func (s *scriptedQuerier) Current() (Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return Connection{}, s.err
	}
	i := s.n
	if i >= len(s.steps) {
		i = len(s.steps) - 1
	}
	s.n++
	return s.steps[i], nil
}

func TestWaitConnected(t *testing.T) {
	q := &scriptedQuerier{steps: []Connection{
		{},
		{Connected: true, SSID: "Other"},
		{Connected: true, SSID: "HomeNet", Profile: "HomeNet"},
	}}
	conn, err := WaitConnected(context.Background(), q, "HomeNet", time.Second, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "HomeNet", conn.SSID)
}

func TestWaitConnected_WrongNetwork(t *testing.T) {
	q := &scriptedQuerier{steps: []Connection{{Connected: true, SSID: "Other"}}}
	conn, err := WaitConnected(context.Background(), q, "HomeNet", 20*time.Millisecond, time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Other"`)
	assert.Equal(t, "Other", conn.SSID)
}

func TestWaitConnected_Timeout(t *testing.T) {
	q := &scriptedQuerier{err: errors.New("boom")}
	_, err := WaitConnected(context.Background(), q, "HomeNet", 20*time.Millisecond, time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWaitDisconnected(t *testing.T) {
	q := &scriptedQuerier{steps: []Connection{{Connected: true}, {Connected: true}, {}}}
	require.NoError(t, WaitDisconnected(context.Background(), q, time.Second, time.Millisecond))

	q = &scriptedQuerier{steps: []Connection{{Connected: true}}}
	assert.Error(t, WaitDisconnected(context.Background(), q, 20*time.Millisecond, time.Millisecond))
}

func TestPickMAC(t *testing.T) {
	eth := net.HardwareAddr{0, 1, 2, 3, 4, 5}
	wifi := net.HardwareAddr{0xa, 0xb, 0xc, 0xd, 0xe, 0xf}

	mac, err := pickMAC([]net.Interface{
		{Name: "Loopback", Flags: net.FlagUp},
		{Name: "Ethernet", Flags: net.FlagUp, HardwareAddr: eth},
		{Name: "Wi-Fi", Flags: net.FlagUp, HardwareAddr: wifi},
	})
	require.NoError(t, err)
	assert.Equal(t, wifi.String(), mac)

	mac, err = pickMAC([]net.Interface{
		{Name: "Wi-Fi", HardwareAddr: wifi},
		{Name: "Ethernet", Flags: net.FlagUp, HardwareAddr: eth},
	})
	require.NoError(t, err)
	assert.Equal(t, eth.String(), mac)

	_, err = pickMAC(nil)
	assert.Error(t, err)
}
