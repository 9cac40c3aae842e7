package netsh

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

var codePages = map[string]encoding.Encoding{
	"cp437":        charmap.CodePage437,
	"cp850":        charmap.CodePage850,
	"cp852":        charmap.CodePage852,
	"cp855":        charmap.CodePage855,
	"cp866":        charmap.CodePage866,
	"windows-1250": charmap.Windows1250,
	"windows-1251": charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
}

// CodePage returns the decoder for a console code page name such as "cp850".
// An empty name or "utf-8" returns nil, meaning the output is used as is.
func CodePage(name string) (encoding.Encoding, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "utf-8", "utf8", "cp65001":
		return nil, nil
	}
	enc, ok := codePages[name]
	if !ok {
		return nil, fmt.Errorf("unsupported code page %q", name)
	}
	return enc, nil
}
