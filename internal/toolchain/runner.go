package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"arduino_agent/internal/logger"
	"arduino_agent/internal/models"
)

// waitDelay bounds how long run waits for the output pipes to close after
// the process was killed.
const waitDelay = 2 * time.Second

// Runner drives the external arduino-cli binary.
type Runner struct {
	binary  string
	timeout time.Duration // zero: wait for the process however long it takes
	log     *logger.Logger

	execCommand func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewRunner returns a Runner for an already resolved binary path.
func NewRunner(binary string, timeout time.Duration, log *logger.Logger) *Runner {
	return &Runner{
		binary:      binary,
		timeout:     timeout,
		log:         log,
		execCommand: exec.CommandContext,
	}
}

// Binary returns the toolchain path the runner invokes.
func (r *Runner) Binary() string { return r.binary }

// CompileArgs is the argument list for compiling a sketch folder.
func CompileArgs(sketchDir, fqbn string) []string {
	return []string{"compile", "--fqbn", fqbn, sketchDir, "--verbose"}
}

// UploadArgs is the argument list for flashing a compiled sketch folder.
func UploadArgs(sketchDir, port, fqbn string) []string {
	return []string{"upload", "-p", port, "--fqbn", fqbn, sketchDir, "--verbose"}
}

// Compile builds the sketch folder for fqbn.
func (r *Runner) Compile(ctx context.Context, sketchDir, fqbn string) models.Invocation {
	args := CompileArgs(sketchDir, fqbn)
	r.infow("compiling_sketch", "cmd", r.commandLine(args))
	inv := r.run(ctx, args)
	if !inv.Success {
		r.errorw("compile_failed", "exit_code", inv.ExitCode)
	}
	return inv
}

// Upload flashes the sketch folder to the board on port. Only meaningful after
// a successful Compile of the same folder.
func (r *Runner) Upload(ctx context.Context, sketchDir, port, fqbn string) models.Invocation {
	args := UploadArgs(sketchDir, port, fqbn)
	r.infow("uploading_sketch", "cmd", r.commandLine(args))
	inv := r.run(ctx, args)
	if !inv.Success {
		r.errorw("upload_failed", "exit_code", inv.ExitCode, "port", port)
	}
	return inv
}

// Version returns the first line printed by `arduino-cli version`.
func (r *Runner) Version(ctx context.Context) (string, error) {
	inv := r.run(ctx, []string{"version"})
	if !inv.Success {
		return "", fmt.Errorf("%s version: exit %d: %s", r.binary, inv.ExitCode, strings.TrimSpace(inv.Logs))
	}
	line, _, _ := strings.Cut(strings.TrimSpace(inv.Logs), "\n")
	return line, nil
}

// run executes one blocking toolchain step. A dropped client does not abort a
// flash in progress; only the configured timeout can stop the process.
func (r *Runner) run(ctx context.Context, args []string) models.Invocation {
	ctx = context.WithoutCancel(ctx)
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := r.execCommand(ctx, r.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	killTree(cmd)

	err := cmd.Run()
	logs := stdout.String() + "\n" + stderr.String()
	if err == nil {
		return models.Invocation{Success: true, ExitCode: 0, Logs: logs}
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.Exited() {
		exitCode = exitErr.ExitCode()
	} else {
		logs += "\n" + err.Error()
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		logs += fmt.Sprintf("\n%s %s timed out after %s", r.binary, args[0], r.timeout)
	}
	return models.Invocation{Success: false, ExitCode: exitCode, Logs: logs}
}

func (r *Runner) commandLine(args []string) string {
	return r.binary + " " + strings.Join(args, " ")
}

func (r *Runner) infow(msg string, kv ...interface{}) {
	if r.log != nil {
		r.log.Infow(msg, kv...)
	}
}

func (r *Runner) errorw(msg string, kv ...interface{}) {
	if r.log != nil {
		r.log.Errorw(msg, kv...)
	}
}
