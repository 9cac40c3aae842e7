//go:build !windows

package netsh

import "os/exec"

func prepare(*exec.Cmd, string, []string) {}
