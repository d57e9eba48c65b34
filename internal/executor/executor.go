// Package executor runs package-manager commands and captures their output.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"pkgview/internal/log"
)

// DefaultTimeout bounds a single command invocation.
const DefaultTimeout = 10 * time.Second

// waitDelay bounds how long Output waits for the output pipes to close
// after the command has been killed.
const waitDelay = 500 * time.Millisecond

// ErrTimeout is returned when a command does not finish within the timeout.
var ErrTimeout = errors.New("command timed out")

// Executor runs external commands synchronously. Only launch failures and
// timeouts are reported as errors; exit status is ignored.
type Executor struct {
	timeout time.Duration
	verbose bool
}

// New creates a new Executor. A zero timeout disables the bound.
func New(timeout time.Duration, verbose bool) *Executor {
	return &Executor{
		timeout: timeout,
		verbose: verbose,
	}
}

// Output runs a command and returns its stdout. A process that starts and
// exits non-zero is not an error; whatever it printed is returned.
func (e *Executor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	setProcessGroup(cmd)

	log.Debug("exec", "name", name, "args", strings.Join(args, " "))

	err := cmd.Run()

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			log.Warn("command timed out", "name", name, "timeout", e.timeout)
			return nil, fmt.Errorf("%s: %w after %s", name, ErrTimeout, e.timeout)
		}
		return nil, fmt.Errorf("%s: %w", name, ctxErr)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if e.verbose {
				log.Debug("command exited non-zero",
					"name", name,
					"code", exitErr.ExitCode(),
					"stderr", strings.TrimSpace(stderr.String()))
			}
			return stdout.Bytes(), nil
		}
		log.Warn("command could not be launched", "name", name, "err", err)
		return nil, err
	}

	return stdout.Bytes(), nil
}

// LookPath reports whether the named binary is on PATH, and where.
func LookPath(name string) (string, bool) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", false
	}
	return path, true
}
