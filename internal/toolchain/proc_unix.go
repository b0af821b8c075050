//go:build !windows

package toolchain

import (
	"os/exec"
	"syscall"
)

// killTree runs arduino-cli in its own process group so a timeout also
// reaches the avrdude/compiler children holding the output pipes.
func killTree(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
