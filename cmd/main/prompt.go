package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// confirm asks a yes/no question. Anything but y or yes counts as no.
func confirm(in *bufio.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// mustConfirm reports whether the action may go ahead: either yes was given
// on the command line or the user agreed to every question in turn.
func (a *app) mustConfirm(yes bool, questions ...string) (bool, error) {
	if yes {
		return true, nil
	}
	if !a.interactive {
		return false, errors.New("refusing to delete without --yes when stdin is not a terminal")
	}
	for _, q := range questions {
		ok, err := confirm(a.in, a.out, q)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
