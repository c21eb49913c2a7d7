package check

import (
	"context"
	"fmt"

	"github.com/klauern/checkup/internal/execx"
	"github.com/klauern/checkup/internal/logging"
	"github.com/klauern/checkup/internal/toolchain"
	"github.com/klauern/checkup/internal/ui"
)

// Runner executes the verification steps for one toolchain and reports
// progress through a ui.Reporter.
type Runner struct {
	exec      execx.Runner
	report    *ui.Reporter
	toolchain toolchain.Toolchain
}

// NewRunner creates a Runner.
func NewRunner(exec execx.Runner, report *ui.Reporter, tc toolchain.Toolchain) *Runner {
	return &Runner{
		exec:      exec,
		report:    report,
		toolchain: tc,
	}
}

// Run performs the pre-flight toolchain check and then executes every
// enabled step sequentially, in the fixed order, with no short-circuit: a
// failing step never prevents later steps from running, so one invocation
// reports the full set of problems.
//
// The returned error is reserved for orchestrator-level failures
// (ToolchainError). Step failures are reported through the Summary.
func (r *Runner) Run(ctx context.Context, opts Options) (*Summary, error) {
	r.report.Banner(fmt.Sprintf("Project Verification (%s)", r.toolchain))

	if err := r.preflight(ctx, opts.Dir); err != nil {
		r.report.Fatal(err.Error())
		return nil, err
	}

	summary := &Summary{}
	for _, step := range Steps(r.toolchain, opts) {
		summary.Results = append(summary.Results, r.runStep(ctx, step, opts.Dir))
	}

	r.report.SummaryHeader()
	for _, result := range summary.Results {
		r.report.SummaryLine(result.Name, result.Passed)
	}
	r.report.Verdict(summary.AllPassed())

	return summary, nil
}

// preflight confirms the toolchain binary answers its version query before
// any step runs. Any failure here is fatal: zero steps are executed.
func (r *Runner) preflight(ctx context.Context, dir string) error {
	result, err := r.exec.Run(ctx, dir, r.toolchain.Preflight()...)
	if err != nil {
		return &ToolchainError{Toolchain: r.toolchain, Err: err}
	}
	if !result.OK() {
		return &ToolchainError{
			Toolchain: r.toolchain,
			Err:       fmt.Errorf("version query exited with status %d", result.ExitCode),
		}
	}

	logging.Debug("toolchain preflight passed",
		logging.Toolchain(string(r.toolchain)),
	)
	return nil
}

// runStep executes a single step. A step passes iff its process exits zero;
// its combined output is captured either way. A missing tool binary counts
// as a failed step rather than aborting the run, so the remaining steps
// still report.
func (r *Runner) runStep(ctx context.Context, step Step, dir string) Result {
	r.report.Section(step.Name)

	logging.Debug("running step",
		logging.Step(step.Name),
		logging.Command(step.Argv),
	)

	execResult, err := r.exec.Run(ctx, dir, step.Argv...)
	result := Result{
		Name:   step.Name,
		Passed: err == nil && execResult.OK(),
		Output: execResult.Output,
	}
	if err != nil && result.Output == "" {
		result.Output = err.Error()
	}

	if result.Passed {
		r.report.StepPassed(step.Name)
	} else {
		r.report.StepFailed(step.Name, result.Output)
		logging.Info("step failed",
			logging.Step(step.Name),
			logging.ExitCode(execResult.ExitCode),
		)
	}

	return result
}
