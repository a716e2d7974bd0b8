//go:build !windows

package cli

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// configureProcessGroup starts the child as the leader of a new process
// group so cancellation reaches every descendant.
func configureProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return signalGroup(cmd.Process, syscall.SIGTERM)
	}
}

// reapProcessGroup kills stragglers left in the child's group after a
// cancelled run. The leader has been reaped; members may still hold the
// group id.
func reapProcessGroup(cmd *exec.Cmd, cancelled bool) {
	if !cancelled {
		return
	}
	_ = signalGroup(cmd.Process, syscall.SIGKILL)
}

// signalGroup sends sig to the process group led by proc, returning
// os.ErrProcessDone when the group no longer exists.
func signalGroup(proc *os.Process, sig syscall.Signal) error {
	if proc == nil {
		return os.ErrProcessDone
	}
	err := syscall.Kill(-proc.Pid, sig)
	if errors.Is(err, syscall.ESRCH) {
		return os.ErrProcessDone
	}
	return err
}
