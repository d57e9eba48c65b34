//go:build windows

package executor

import "os/exec"

// setProcessGroup is a no-op on Windows; WaitDelay still bounds Wait.
func setProcessGroup(cmd *exec.Cmd) {}
