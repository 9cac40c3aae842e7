// Package elevate checks for and requests administrator rights.
package elevate

import (
	"errors"
	"strings"
)

// ErrUnsupported is returned by Restart where UAC elevation does not exist.
var ErrUnsupported = errors.New("elevation is not supported on this system")

// joinArgs quotes arguments for a Windows command line.
func joinArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\"") {
			a = `"` + strings.ReplaceAll(a, `"`, `\"`) + `"`
		}
		quoted[i] = a
	}
	return strings.Join(quoted, " ")
}
