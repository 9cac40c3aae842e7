// Package profile turns netsh lookups into the list of saved Wi-Fi profiles
// shown and exported by wlankeys.
package profile

import (
	"strings"
	"unicode/utf8"
)

// SavedProfile is the connection type of every profile read from netsh.
const SavedProfile = "Saved Profile"

// DefaultMask is the rune used to hide passwords.
const DefaultMask = '•'

const minMaskLen = 8

// Profile is one saved wireless network.
type Profile struct {
	SSID           string `json:"ssid"`
	Password       string `json:"password"`
	Security       string `json:"security"`
	ConnectionType string `json:"connection_type"`
}

// Mask hides a password behind at least eight mask runes so that short keys
// do not reveal their length.
func Mask(password string, mask rune) string {
	if mask == 0 {
		mask = DefaultMask
	}
	n := utf8.RuneCountInString(password)
	if n < minMaskLen {
		n = minMaskLen
	}
	return strings.Repeat(string(mask), n)
}

// DisplayPassword returns the password as it should be shown.
func (p Profile) DisplayPassword(reveal bool, mask rune) string {
	if reveal {
		return p.Password
	}
	return Mask(p.Password, mask)
}

// Names returns the SSIDs of profiles, in order.
func Names(profiles []Profile) []string {
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.SSID)
	}
	return names
}
