//go:build windows

package toolchain

import "os/exec"

// killTree keeps the default Kill on Windows; WaitDelay bounds the wait for
// children that outlive arduino-cli.
func killTree(cmd *exec.Cmd) {}
