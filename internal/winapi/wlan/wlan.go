// Package wlan reads the current wireless connection from the WLAN
// AutoConfig service.
package wlan

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

var (
	// ErrUnsupported is returned where wlanapi.dll is not available.
	ErrUnsupported = errors.New("wlanapi is not available on this system")
	// ErrNoInterface means no wireless adapter is present.
	ErrNoInterface = errors.New("no wireless interface found")
)

// Connection describes the state of a wireless interface.
type Connection struct {
	Interface     string
	Connected     bool
	SSID          string
	Profile       string
	SignalQuality int
}

// Querier reports the current connection. *Handle implements it.
type Querier interface {
	Current() (Connection, error)
}

// WaitConnected polls q until it reports a connection to ssid (or any network
// when ssid is empty), ctx is done, or wait elapses.
func WaitConnected(ctx context.Context, q Querier, ssid string, wait, poll time.Duration) (Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	var last Connection
	for {
		conn, err := q.Current()
		if err == nil {
			last = conn
			if conn.Connected && (ssid == "" || conn.SSID == ssid || conn.Profile == ssid) {
				return conn, nil
			}
		}
		select {
		case <-ctx.Done():
			if last.Connected {
				return last, fmt.Errorf("connected to %q instead of %q", last.SSID, ssid)
			}
			return last, fmt.Errorf("timed out waiting for %q: %w", ssid, ctx.Err())
		case <-ticker.C:
		}
	}
}

// WaitDisconnected polls q until no connection is reported.
func WaitDisconnected(ctx context.Context, q Querier, wait, poll time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	ticker := time.NewTicker(poll)
	defer ticker.Stop()
	for {
		if conn, err := q.Current(); err == nil && !conn.Connected {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("still connected: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// LocalMAC returns the hardware address of the Wi-Fi adapter, falling back to
// the first interface that is up and has one.
func LocalMAC() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}
	return pickMAC(ifaces)
}

func pickMAC(ifaces []net.Interface) (string, error) {
	var fallback string
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || len(iface.HardwareAddr) == 0 {
			continue
		}
		name := strings.ToLower(iface.Name)
		if strings.Contains(name, "wi-fi") || strings.Contains(name, "wlan") {
			return iface.HardwareAddr.String(), nil
		}
		if fallback == "" {
			fallback = iface.HardwareAddr.String()
		}
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", errors.New("no network adapter with a MAC address found")
}
