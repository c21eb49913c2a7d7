package precommit

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/klauern/checkup/internal/toolchain"
)

// verifyEntry is the command the provisioned hook and manifest task invoke.
const verifyEntry = "checkup verify"

// huskyHook is the fixed body of the husky pre-commit hook.
const huskyHook = verifyEntry + "\n"

// preCommitConfig models the .pre-commit-config.yaml the installer
// generates for uv projects: a single local hook invoking the orchestrator.
type preCommitConfig struct {
	Repos []preCommitRepo `yaml:"repos"`
}

type preCommitRepo struct {
	Repo  string          `yaml:"repo"`
	Hooks []preCommitHook `yaml:"hooks"`
}

type preCommitHook struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	Entry         string `yaml:"entry"`
	Language      string `yaml:"language"`
	PassFilenames bool   `yaml:"pass_filenames"`
	AlwaysRun     bool   `yaml:"always_run"`
}

// writeHook writes the hook definition at the hook manager's designated
// path. The content is always regenerated from the fixed template, so a
// re-run repairs a hand-edited or stale hook.
func (i *Installer) writeHook() error {
	path := filepath.Join(i.dir, filepath.FromSlash(i.toolchain.HookPath()))

	switch i.toolchain {
	case toolchain.Bun:
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf("create hook directory: %w", err)
		}
		// Hook scripts must be executable for git to run them.
		// #nosec G306 - git hooks require the execute bit
		if err := os.WriteFile(path, []byte(huskyHook), 0o755); err != nil {
			return fmt.Errorf("write hook script: %w", err)
		}
		return nil

	case toolchain.UV:
		cfg := preCommitConfig{
			Repos: []preCommitRepo{{
				Repo: "local",
				Hooks: []preCommitHook{{
					ID:            "checkup-verify",
					Name:          verifyEntry,
					Entry:         verifyEntry,
					Language:      "system",
					PassFilenames: false,
					AlwaysRun:     true,
				}},
			}},
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("render hook config: %w", err)
		}
		// #nosec G306 - hook config should be readable by user
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write hook config: %w", err)
		}
		return nil
	}

	return fmt.Errorf("no hook template for toolchain %q", i.toolchain)
}
