// Package export writes profile lists to CSV, plain text and JSON files, and
// renders them as aligned tables for the terminal.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"wlankeys/internal/profile"
)

// Format selects the layout of an export file.
type Format string

const (
	CSV  Format = "csv"
	Text Format = "txt"
	JSON Format = "json"
)

// ErrNoProfiles is returned when there is nothing to export.
var ErrNoProfiles = errors.New("no WiFi profiles to export")

const (
	csvHeader     = "Network Name (SSID),Password,Security Type,Connection Type"
	timestampFmt  = "2006-01-02 15:04:05"
	fileNameStamp = "2006-01-02_15-04-05"
)

// ParseFormat accepts csv, txt/text and json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "csv":
		return CSV, nil
	case "txt", "text":
		return Text, nil
	case "json":
		return JSON, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// FormatFromPath picks the format from the file extension. Anything that is
// not .csv or .json is written as text.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSV
	case ".json":
		return JSON
	}
	return Text
}

// DefaultFileName is the suggested base name of an export made at now.
func DefaultFileName(now time.Time) string {
	return "WiFi_Profiles_" + now.Format(fileNameStamp)
}

// Write renders profiles in the given format.
func Write(w io.Writer, format Format, profiles []profile.Profile, now time.Time) error {
	switch format {
	case CSV:
		return writeCSV(w, profiles)
	case JSON:
		return writeJSON(w, profiles, now)
	case Text:
		return writeText(w, profiles, now)
	}
	return fmt.Errorf("unknown export format %q", format)
}

// WriteFile exports profiles to path. The file holds clear-text keys, so it is
// only readable by the current user.
func WriteFile(path string, format Format, profiles []profile.Profile, now time.Time) error {
	if len(profiles) == 0 {
		return ErrNoProfiles
	}
	var buf bytes.Buffer
	if err := Write(&buf, format, profiles, now); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("error exporting profiles: %w", err)
	}
	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func writeCSV(w io.Writer, profiles []profile.Profile) error {
	var b strings.Builder
	b.WriteString(csvHeader + "\r\n")
	for _, p := range profiles {
		fmt.Fprintf(&b, "%s,%s,%s,%s\r\n",
			quote(p.SSID), quote(p.Password), quote(p.Security), quote(p.ConnectionType))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeText(w io.Writer, profiles []profile.Profile, now time.Time) error {
	var b strings.Builder
	b.WriteString("WiFi Password Export\r\n")
	fmt.Fprintf(&b, "Generated on: %s\r\n", now.Format(timestampFmt))
	fmt.Fprintf(&b, "Total profiles: %d\r\n", len(profiles))
	b.WriteString(strings.Repeat("=", 50) + "\r\n\r\n")
	for _, p := range profiles {
		fmt.Fprintf(&b, "Network Name: %s\r\n", p.SSID)
		fmt.Fprintf(&b, "Password: %s\r\n", p.Password)
		fmt.Fprintf(&b, "Security: %s\r\n", p.Security)
		fmt.Fprintf(&b, "Type: %s\r\n", p.ConnectionType)
		b.WriteString(strings.Repeat("-", 30) + "\r\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

type jsonExport struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Count       int               `json:"count"`
	Profiles    []profile.Profile `json:"profiles"`
}

func writeJSON(w io.Writer, profiles []profile.Profile, now time.Time) error {
	if profiles == nil {
		profiles = []profile.Profile{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonExport{GeneratedAt: now, Count: len(profiles), Profiles: profiles})
}
