// Package toolchain defines the supported project toolchains and the fixed
// command tables checkup drives through them: the preflight version query,
// the four verification steps, and the pre-commit hook-manager commands.
package toolchain

import "fmt"

// Toolchain identifies a supported project toolchain.
type Toolchain string

const (
	// UV is the uv-managed Python toolchain (ruff, mypy, pytest, pre-commit).
	UV Toolchain = "uv"
	// Bun is the bun-managed JavaScript/TypeScript toolchain
	// (eslint, prettier, tsc, vitest, husky).
	Bun Toolchain = "bun"
)

// IsValid returns true if the toolchain is recognized.
func (t Toolchain) IsValid() bool {
	switch t {
	case UV, Bun:
		return true
	default:
		return false
	}
}

// All returns all supported toolchains.
func All() []Toolchain {
	return []Toolchain{UV, Bun}
}

// Parse converts a user-supplied name into a Toolchain.
func Parse(s string) (Toolchain, error) {
	t := Toolchain(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unsupported toolchain %q (supported: uv, bun)", s)
	}
	return t, nil
}

// Preflight returns the version-query command used to confirm the toolchain
// binary is available before any step runs.
func (t Toolchain) Preflight() []string {
	return []string{string(t), "--version"}
}

// Lint returns the lint command. With fix set, the linter rewrites what it
// can instead of only reporting.
func (t Toolchain) Lint(fix bool) []string {
	switch t {
	case UV:
		argv := []string{"uv", "run", "ruff", "check"}
		if fix {
			argv = append(argv, "--fix")
		}
		return append(argv, ".")
	case Bun:
		argv := []string{"bunx", "eslint"}
		if fix {
			argv = append(argv, "--fix")
		}
		return append(argv, ".")
	}
	return nil
}

// Format returns the format command. With write set, files are rewritten in
// place; otherwise formatting is only checked.
func (t Toolchain) Format(write bool) []string {
	switch t {
	case UV:
		argv := []string{"uv", "run", "ruff", "format"}
		if !write {
			argv = append(argv, "--check")
		}
		return append(argv, ".")
	case Bun:
		mode := "--check"
		if write {
			mode = "--write"
		}
		return []string{"bunx", "prettier", mode, "."}
	}
	return nil
}

// TypeCheck returns the type-check command.
func (t Toolchain) TypeCheck() []string {
	switch t {
	case UV:
		return []string{"uv", "run", "mypy", "."}
	case Bun:
		return []string{"bunx", "tsc", "--noEmit"}
	}
	return nil
}

// Test returns the test command, with coverage collection and the fail-under
// threshold when coverage is enabled.
func (t Toolchain) Test(coverage bool, minCoverage int) []string {
	switch t {
	case UV:
		argv := []string{"uv", "run", "pytest"}
		if coverage {
			argv = append(argv,
				"--cov=.",
				"--cov-report=term-missing",
				fmt.Sprintf("--cov-fail-under=%d", minCoverage),
			)
		}
		return append(argv, "-v", "--tb=short")
	case Bun:
		argv := []string{"bunx", "vitest", "run"}
		if coverage {
			argv = append(argv,
				"--coverage",
				fmt.Sprintf("--coverage.thresholds.lines=%d", minCoverage),
			)
		}
		return argv
	}
	return nil
}

// HookManager returns the name of the git-hook manager the toolchain uses.
func (t Toolchain) HookManager() string {
	switch t {
	case UV:
		return "pre-commit"
	case Bun:
		return "husky"
	}
	return ""
}

// InstallHookManager returns the command that adds the hook manager to the
// project's dependency manifest.
func (t Toolchain) InstallHookManager() []string {
	switch t {
	case UV:
		return []string{"uv", "add", "--dev", "pre-commit"}
	case Bun:
		return []string{"bun", "add", "--dev", "husky"}
	}
	return nil
}

// InitHooks returns the command that initializes the hook manager's on-disk
// scaffolding.
func (t Toolchain) InitHooks() []string {
	switch t {
	case UV:
		return []string{"uv", "run", "pre-commit", "install"}
	case Bun:
		return []string{"bunx", "husky", "init"}
	}
	return nil
}

// HookPath returns the hook manager's designated hook definition path,
// relative to the project root.
func (t Toolchain) HookPath() string {
	switch t {
	case UV:
		return ".pre-commit-config.yaml"
	case Bun:
		return ".husky/pre-commit"
	}
	return ""
}

// ManifestPath returns the project's task manifest path, relative to the
// project root.
func (t Toolchain) ManifestPath() string {
	switch t {
	case UV:
		return "pyproject.toml"
	case Bun:
		return "package.json"
	}
	return ""
}
