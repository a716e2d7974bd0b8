//go:build windows

package cli

import "os/exec"

// configureProcessGroup keeps the exec defaults: cancellation kills the
// child directly.
func configureProcessGroup(*exec.Cmd) {}

func reapProcessGroup(*exec.Cmd, bool) {}
