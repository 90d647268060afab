//go:build unix

package dispatch

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// sysProcAttr places the child in its own process group so the whole
// tree can be reaped on timeout or interrupt.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// killGroup terminates the child's entire process group.
func killGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	// Negative pid addresses the process group.
	return unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
}
