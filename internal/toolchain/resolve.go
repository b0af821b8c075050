package toolchain

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ErrToolchainUnavailable means no arduino-cli binary could be located.
var ErrToolchainUnavailable = errors.New("arduino-cli not found")

// ExecutableName returns the arduino-cli file name for the current OS.
func ExecutableName() string {
	if runtime.GOOS == "windows" {
		return "arduino-cli.exe"
	}
	return "arduino-cli"
}

// Resolve locates the toolchain binary.
// Detection order: explicit path → bundleDir next to the executable →
// bundleDir under the working directory → system PATH.
func Resolve(explicit, bundleDir string) (string, error) {
	if explicit != "" {
		if isFile(explicit) {
			return filepath.Abs(explicit)
		}
		return "", fmt.Errorf("%w: %s", ErrToolchainUnavailable, explicit)
	}

	for _, dir := range bundleCandidates(bundleDir) {
		candidate := filepath.Join(dir, ExecutableName())
		if isFile(candidate) {
			return candidate, nil
		}
	}

	if p, err := exec.LookPath("arduino-cli"); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("%w: install it or set toolchain.path", ErrToolchainUnavailable)
}

func bundleCandidates(bundleDir string) []string {
	if bundleDir == "" {
		return nil
	}
	if filepath.IsAbs(bundleDir) {
		return []string{bundleDir}
	}

	var dirs []string
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Join(filepath.Dir(exe), bundleDir))
	}
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, filepath.Join(cwd, bundleDir))
	}
	return dirs
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
