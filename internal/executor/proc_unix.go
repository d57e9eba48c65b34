//go:build !windows

package executor

import (
	"os/exec"
	"syscall"
)

// setProcessGroup starts cmd in its own process group. Cancellation
// kills the whole group, children included.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
