// Package precommit provisions a git pre-commit hook that re-invokes the
// verification orchestrator on every commit. Provisioning is idempotent: the
// hook definition is regenerated on every run, while an existing verify task
// in the project manifest is left untouched.
package precommit

import (
	"context"
	"fmt"

	"github.com/klauern/checkup/internal/execx"
	"github.com/klauern/checkup/internal/logging"
	"github.com/klauern/checkup/internal/toolchain"
	"github.com/klauern/checkup/internal/ui"
)

// Stage names, in execution order. Each stage gates the next.
const (
	StageInstall   = "install hook manager"
	StageInit      = "initialize hooks"
	StageWriteHook = "write hook"
	StageManifest  = "register verify task"
)

// StageError is a fatal installer failure: the named stage failed and the
// remaining stages were not attempted.
type StageError struct {
	Stage  string
	Output string
	Err    error
}

// Error returns a formatted message naming the failed stage.
func (e *StageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s failed", e.Stage)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *StageError) Unwrap() error {
	return e.Err
}

// Options configures one installer run.
type Options struct {
	// SkipRun is accepted for interface compatibility with the original
	// setup scripts. No stage is conditioned on it; it is deliberately
	// inert.
	SkipRun bool
}

// Installer provisions the pre-commit hook for one project.
type Installer struct {
	exec      execx.Runner
	report    *ui.Reporter
	toolchain toolchain.Toolchain
	dir       string
}

// NewInstaller creates an Installer for the project directory.
func NewInstaller(exec execx.Runner, report *ui.Reporter, tc toolchain.Toolchain, dir string) *Installer {
	return &Installer{
		exec:      exec,
		report:    report,
		toolchain: tc,
		dir:       dir,
	}
}

// Install runs the four provisioning stages in order. Stages 1-3 are fatal
// on failure; stage 4 manifest problems are reported as warnings and do not
// fail the install.
func (i *Installer) Install(ctx context.Context, _ Options) error {
	i.report.Banner(fmt.Sprintf("Pre-commit Setup (%s)", i.toolchain.HookManager()))

	if err := i.runStage(ctx, StageInstall, i.toolchain.InstallHookManager()); err != nil {
		return err
	}
	if err := i.runStage(ctx, StageInit, i.toolchain.InitHooks()); err != nil {
		return err
	}

	if err := i.writeHook(); err != nil {
		i.report.Fatal(err.Error())
		return &StageError{Stage: StageWriteHook, Err: err}
	}
	i.report.Infof("%s", ui.StatusSuccess("hook written to "+i.toolchain.HookPath()))

	i.ensureVerifyTask()

	i.report.Infof("")
	i.report.Infof("%s", ui.StatusSuccess(ui.Bold("Pre-commit setup complete")))
	i.report.Infof("Hooks will run automatically on git commit.")
	return nil
}

// runStage executes one subprocess stage; any failure aborts the installer
// with the stage's captured output.
func (i *Installer) runStage(ctx context.Context, stage string, argv []string) error {
	i.report.Infof("%s...", stage)

	result, err := i.exec.Run(ctx, i.dir, argv...)
	if err != nil {
		i.report.Fatal(fmt.Sprintf("%s: %v", stage, err))
		return &StageError{Stage: stage, Err: err}
	}
	if !result.OK() {
		i.report.Fatal(stage + " failed")
		if result.Output != "" {
			i.report.Infof("%s", result.Output)
		}
		return &StageError{
			Stage:  stage,
			Output: result.Output,
			Err:    fmt.Errorf("exited with status %d", result.ExitCode),
		}
	}

	logging.Debug("installer stage finished",
		logging.Stage(stage),
		logging.Command(argv),
	)
	i.report.Infof("%s", ui.StatusSuccess(stage+" done"))
	return nil
}

// ensureVerifyTask registers the verify task in the project manifest. Every
// failure here is a warning rather than an error: a broken or missing
// manifest should not undo an otherwise successful hook install.
func (i *Installer) ensureVerifyTask() {
	added, err := EnsureVerifyTask(i.toolchain, i.dir)
	switch {
	case err != nil:
		i.report.Warnf("could not update %s: %v", i.toolchain.ManifestPath(), err)
		logging.Warn("manifest update failed",
			logging.Path(i.toolchain.ManifestPath()),
			logging.Err(err),
		)
	case !added:
		i.report.Warnf("verify task already defined in %s, leaving it untouched", i.toolchain.ManifestPath())
	default:
		i.report.Infof("%s", ui.StatusSuccess("verify task added to "+i.toolchain.ManifestPath()))
	}
}
