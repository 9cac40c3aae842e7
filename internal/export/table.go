package export

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"wlankeys/internal/profile"
)

// TableOptions control how Table renders passwords.
type TableOptions struct {
	Reveal bool
	Mask   rune
	// Header styles the header row, e.g. with terminal colors. Nil leaves it plain.
	Header func(string) string
}

var tableColumns = []string{"Network Name (SSID)", "Password", "Security Type", "Connection Type"}

// Table writes profiles as columns aligned by display width, so SSIDs with
// wide characters still line up.
func Table(w io.Writer, profiles []profile.Profile, opts TableOptions) error {
	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, []string{p.SSID, p.DisplayPassword(opts.Reveal, opts.Mask), p.Security, p.ConnectionType})
	}

	widths := make([]int, len(tableColumns))
	for i, c := range tableColumns {
		widths[i] = runewidth.StringWidth(c)
	}
	for _, r := range rows {
		for i, cell := range r {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	header := formatRow(tableColumns, widths)
	if opts.Header != nil {
		header = opts.Header(header)
	}
	var b strings.Builder
	b.WriteString(header + "\n")
	for _, r := range rows {
		b.WriteString(formatRow(r, widths) + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		if i == len(cells)-1 {
			parts[i] = c
			continue
		}
		parts[i] = runewidth.FillRight(c, widths[i])
	}
	return strings.Join(parts, "  ")
}
