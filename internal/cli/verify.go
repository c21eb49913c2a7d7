package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/klauern/checkup/internal/check"
	"github.com/klauern/checkup/internal/config"
	"github.com/klauern/checkup/internal/execx"
	"github.com/klauern/checkup/internal/toolchain"
	"github.com/klauern/checkup/internal/ui"
)

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Run lint, format, type-check, and tests against the project",
		UsageText: "checkup verify [options]",
		Description: `Run the full verification sequence for the project's toolchain.

   Steps run in a fixed order: lint, format, type-check, test. A failing
   step does not stop later steps, so one invocation reports every problem.

   Examples:
     checkup verify
     checkup verify --fix --format
     checkup verify --skip-tests --toolchain uv`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "fix",
				Usage: "Auto-fix linting issues where possible",
			},
			&cli.BoolFlag{
				Name:  "format",
				Usage: "Rewrite formatting in place instead of only checking",
			},
			&cli.BoolFlag{
				Name:  "skip-lint",
				Usage: "Skip linting",
			},
			&cli.BoolFlag{
				Name:  "skip-format",
				Usage: "Skip format checking",
			},
			&cli.BoolFlag{
				Name:  "skip-type-check",
				Usage: "Skip type checking",
			},
			&cli.BoolFlag{
				Name:  "skip-tests",
				Usage: "Skip tests",
			},
			&cli.BoolFlag{
				Name:  "no-coverage",
				Usage: "Skip coverage reporting",
			},
			&cli.StringFlag{
				Name:  "min-coverage",
				Usage: fmt.Sprintf("Minimum coverage percentage (default: %d)", config.DefaultMinCoverage),
			},
			toolchainFlag(),
			dirFlag(),
		},
		Action: runVerify,
	}
}

func runVerify(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("dir")

	cfg, err := config.Load(dir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if !cmd.Bool("no-color") {
		applyColorMode(cfg.Output.Color)
	}

	tc, err := resolveToolchain(cmd.String("toolchain"), cfg, dir)
	if err != nil {
		return err
	}

	opts := check.Options{
		Fix:           cmd.Bool("fix"),
		Format:        cmd.Bool("format"),
		NoCoverage:    cmd.Bool("no-coverage"),
		MinCoverage:   resolveMinCoverage(cmd.String("min-coverage"), cfg.Verify.MinCoverage),
		SkipLint:      cmd.Bool("skip-lint"),
		SkipFormat:    cmd.Bool("skip-format"),
		SkipTypeCheck: cmd.Bool("skip-type-check"),
		SkipTests:     cmd.Bool("skip-tests"),
		Dir:           dir,
		ExtraArgs:     cfg.Verify.ExtraArgs,
	}

	runner := check.NewRunner(execx.New(), ui.NewReporter(os.Stdout), tc)
	summary, err := runner.Run(ctx, opts)
	if err != nil {
		return err
	}

	if !summary.AllPassed() {
		return fmt.Errorf("verification failed: %s", strings.Join(summary.Failed(), ", "))
	}
	return nil
}

func toolchainFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "toolchain",
		Aliases: []string{"t"},
		Usage:   "Project toolchain (uv, bun); auto-detected when omitted",
	}
}

func dirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "dir",
		Value: ".",
		Usage: "Project directory",
	}
}

// resolveMinCoverage parses the flag value leniently: absent, malformed, or
// out-of-range values fall back to the configured default rather than
// erroring out.
func resolveMinCoverage(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > 100 {
		return fallback
	}
	return n
}

// resolveToolchain picks the toolchain from, in priority order: the flag,
// the config file, and marker-file detection in the project directory.
func resolveToolchain(flag string, cfg *config.Config, dir string) (toolchain.Toolchain, error) {
	if flag != "" {
		return toolchain.Parse(flag)
	}
	if cfg.Toolchain != "" {
		return toolchain.Parse(cfg.Toolchain)
	}

	detection, found := toolchain.Detect(dir)
	if !found {
		return "", fmt.Errorf(
			"no toolchain detected in %s (looked for uv.lock, pyproject.toml, bun.lock, package.json); use --toolchain",
			dir,
		)
	}
	return detection.Toolchain, nil
}

// applyColorMode applies the config file's color preference. The --no-color
// flag has already been handled and always wins.
func applyColorMode(mode string) {
	switch mode {
	case "always":
		ui.EnableColors()
	case "never":
		ui.DisableColors()
	}
}
