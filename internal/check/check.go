// Package check implements the verification orchestrator: it sequences the
// lint, format, type-check, and test steps through a toolchain's command
// table and aggregates their outcomes into a single pass/fail verdict.
package check

import (
	"fmt"

	"github.com/klauern/checkup/internal/config"
	"github.com/klauern/checkup/internal/toolchain"
)

// Step names, in the fixed execution order.
const (
	StepLint      = "lint"
	StepFormat    = "format"
	StepTypeCheck = "type-check"
	StepTest      = "test"
)

// Order is the fixed step sequence for every run.
var Order = []string{StepLint, StepFormat, StepTypeCheck, StepTest}

// Options is the parsed flag set for one verification run. It is immutable
// once built.
type Options struct {
	// Fix makes the lint step rewrite what it can instead of only reporting.
	Fix bool
	// Format makes the format step rewrite files instead of check-only.
	Format bool
	// NoCoverage disables coverage collection during the test step.
	NoCoverage bool
	// MinCoverage is the coverage threshold passed to the test runner.
	MinCoverage int

	// SkipLint, SkipFormat, SkipTypeCheck, and SkipTests disable the
	// corresponding step entirely: no result, no effect on the aggregate.
	SkipLint      bool
	SkipFormat    bool
	SkipTypeCheck bool
	SkipTests     bool

	// Dir is the project directory the steps run in.
	Dir string

	// ExtraArgs appends arguments to a step's command, keyed by step name.
	ExtraArgs map[string][]string
}

// DefaultOptions returns the options for a plain `checkup verify` run.
func DefaultOptions() Options {
	return Options{
		MinCoverage: config.DefaultMinCoverage,
		Dir:         ".",
	}
}

// Step is one named unit of verification: a command to execute.
type Step struct {
	Name string
	Argv []string
}

// Steps builds the enabled steps for a toolchain in the fixed order. A
// skipped step is absent from the slice entirely.
func Steps(tc toolchain.Toolchain, opts Options) []Step {
	var steps []Step

	if !opts.SkipLint {
		steps = append(steps, Step{Name: StepLint, Argv: tc.Lint(opts.Fix)})
	}
	if !opts.SkipFormat {
		steps = append(steps, Step{Name: StepFormat, Argv: tc.Format(opts.Format)})
	}
	if !opts.SkipTypeCheck {
		steps = append(steps, Step{Name: StepTypeCheck, Argv: tc.TypeCheck()})
	}
	if !opts.SkipTests {
		steps = append(steps, Step{Name: StepTest, Argv: tc.Test(!opts.NoCoverage, opts.MinCoverage)})
	}

	for i := range steps {
		if extra := opts.ExtraArgs[steps[i].Name]; len(extra) > 0 {
			steps[i].Argv = append(steps[i].Argv, extra...)
		}
	}

	return steps
}

// Result is the outcome of one executed step.
type Result struct {
	// Name is the step's identifier.
	Name string
	// Passed is true iff the step's process exited with status zero.
	Passed bool
	// Output is the step's combined stdout and stderr.
	Output string
}

// Summary aggregates the results of one run. Its result set corresponds
// exactly to the steps that were enabled; skipped steps leave no trace.
type Summary struct {
	Results []Result
}

// AllPassed returns true iff every executed step passed. With zero executed
// steps the run is vacuously successful.
func (s *Summary) AllPassed() bool {
	for _, r := range s.Results {
		if !r.Passed {
			return false
		}
	}
	return true
}

// Failed returns the names of the steps that failed, in execution order.
func (s *Summary) Failed() []string {
	var failed []string
	for _, r := range s.Results {
		if !r.Passed {
			failed = append(failed, r.Name)
		}
	}
	return failed
}

// ToolchainError is the fatal pre-flight failure: the toolchain binary is
// missing or its version query failed. No steps run when it is returned.
type ToolchainError struct {
	Toolchain toolchain.Toolchain
	Err       error
}

// Error returns a formatted message naming the missing toolchain.
func (e *ToolchainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s is not available: %v", e.Toolchain, e.Err)
	}
	return fmt.Sprintf("%s is not available", e.Toolchain)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *ToolchainError) Unwrap() error {
	return e.Err
}
