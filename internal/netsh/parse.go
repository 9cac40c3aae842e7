package netsh

import (
	"regexp"
	"strings"
)

var (
	valueRe = regexp.MustCompile(`:\s*(.+)`)
	fieldRe = regexp.MustCompile(`^\s+(.+?)\s*:\s*(.*)$`)
)

// Field is one "Label : Value" line of a profile, with the section it was found under.
type Field struct {
	Section string
	Label   string
	Value   string
}

func lines(out string) []string {
	ls := strings.Split(out, "\n")
	for i, l := range ls {
		ls[i] = strings.TrimRight(l, "\r")
	}
	return ls
}

// lineValue returns the trimmed text after the first colon of line.
func lineValue(line string) (string, bool) {
	m := valueRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	v := strings.TrimSpace(m[1])
	return v, v != ""
}

// firstValue returns the value of the first line containing any of labels.
func firstValue(out string, labels ...string) (string, bool) {
	for _, l := range lines(out) {
		for _, label := range labels {
			if strings.Contains(l, label) {
				if v, ok := lineValue(l); ok {
					return v, true
				}
				break
			}
		}
	}
	return "", false
}

// ParseProfiles extracts profile names from "netsh wlan show profiles" output,
// in the order they appear.
func ParseProfiles(out string) []string {
	var names []string
	for _, l := range lines(out) {
		// "User Profile" also matches "All User Profile".
		if !strings.Contains(l, "User Profile") {
			continue
		}
		if name, ok := lineValue(l); ok {
			names = append(names, name)
		}
	}
	return names
}

// ParseKeyContent returns the clear-text key from "show profile ... key=clear" output.
func ParseKeyContent(out string) (string, bool) {
	return firstValue(out, "Key Content")
}

// ParseSecurity returns the first "Security key" or "Authentication" value.
func ParseSecurity(out string) (string, bool) {
	return firstValue(out, "Security key", "Authentication")
}

// ParseFields returns every indented "Label : Value" line of a profile listing.
// Sections are the unindented headers underlined with dashes.
func ParseFields(out string) []Field {
	ls := lines(out)
	var (
		fields  []Field
		section string
	)
	for i, l := range ls {
		if l == "" {
			continue
		}
		if l[0] != ' ' && l[0] != '\t' {
			if i+1 < len(ls) && isRule(ls[i+1], '-') {
				section = strings.TrimSpace(l)
			}
			continue
		}
		m := fieldRe.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		fields = append(fields, Field{
			Section: section,
			Label:   m[1],
			Value:   strings.TrimSpace(m[2]),
		})
	}
	return fields
}

func isRule(l string, c rune) bool {
	l = strings.TrimSpace(l)
	if l == "" {
		return false
	}
	for _, r := range l {
		if r != c {
			return false
		}
	}
	return true
}
