// Package execx provides the single subprocess primitive used by every
// verification step and installer stage: run an external command, capture its
// combined stdout and stderr, and report the exit status as data rather than
// as an error.
package execx

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/klauern/checkup/internal/logging"
)

// Result holds the outcome of one external command invocation.
type Result struct {
	// Argv is the argument vector that was executed.
	Argv []string
	// Output is the combined stdout and stderr of the process.
	Output string
	// ExitCode is the process exit status. Zero means success.
	ExitCode int
	// Duration is how long the process ran.
	Duration time.Duration
}

// OK returns true if the command exited with status zero.
func (r Result) OK() bool {
	return r.ExitCode == 0
}

// NotFoundError indicates that a command's binary could not be located or
// started. Unlike a nonzero exit, this is an orchestrator-level failure.
type NotFoundError struct {
	Argv []string
	Err  error
}

// Error returns a formatted message naming the missing command.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("command not found: %s", strings.Join(e.Argv, " "))
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err indicates a missing command.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// Runner executes external commands. The orchestrator and installer depend
// on this interface so tests can substitute a scripted fake.
type Runner interface {
	// Run executes argv in dir with combined output capture. A nonzero exit
	// status is reported through the Result, not the error; the error is
	// reserved for failures to start the process at all.
	Run(ctx context.Context, dir string, argv ...string) (Result, error)
}

type execRunner struct{}

// New returns a Runner backed by os/exec.
func New() Runner {
	return execRunner{}
}

// Run implements Runner.
func (execRunner) Run(ctx context.Context, dir string, argv ...string) (Result, error) {
	if len(argv) == 0 {
		return Result{}, errors.New("empty argument vector")
	}

	start := time.Now()
	// #nosec G204 - argv comes from the fixed toolchain command tables
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	result := Result{
		Argv:     argv,
		Output:   string(out),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The tool ran and failed. That is an expected, reported
			// outcome, not an orchestrator error.
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
			logging.Debug("command failed to start",
				logging.Command(argv),
				logging.Err(err),
			)
			return result, &NotFoundError{Argv: argv, Err: err}
		}
	}

	logging.Debug("command finished",
		logging.Command(argv),
		logging.ExitCode(result.ExitCode),
		logging.Duration(result.Duration),
	)

	return result, nil
}
