//go:build windows

package dispatch

import (
	"os/exec"
	"syscall"
)

func sysProcAttr() *syscall.SysProcAttr {
	return nil
}

// killGroup kills only the direct child on Windows; there is no unix
// process-group equivalent without job objects.
func killGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
