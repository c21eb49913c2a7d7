package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/klauern/checkup/internal/config"
	"github.com/klauern/checkup/internal/execx"
	"github.com/klauern/checkup/internal/precommit"
	"github.com/klauern/checkup/internal/ui"
)

func precommitCommand() *cli.Command {
	return &cli.Command{
		Name:      "precommit",
		Usage:     "Provision a git pre-commit hook that runs checkup verify",
		UsageText: "checkup precommit [options]",
		Description: `Install the toolchain's hook manager, initialize its scaffolding,
   write a pre-commit hook that invokes checkup verify, and register a verify
   task in the project manifest.

   Re-running is safe: the hook is regenerated, an existing verify task is
   left untouched.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "skip-run",
				Usage: "Accepted for compatibility with earlier setup scripts; currently has no effect",
			},
			toolchainFlag(),
			dirFlag(),
		},
		Action: runPrecommit,
	}
}

func runPrecommit(ctx context.Context, cmd *cli.Command) error {
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

	installer := precommit.NewInstaller(execx.New(), ui.NewReporter(os.Stdout), tc, dir)
	return installer.Install(ctx, precommit.Options{
		SkipRun: cmd.Bool("skip-run"),
	})
}
