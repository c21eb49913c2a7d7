package precommit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/klauern/checkup/internal/toolchain"
)

// EnsureVerifyTask registers a `verify` task in the project's task manifest,
// pointing at the orchestrator entry point. It returns true if the task was
// added, false if an equivalent entry already existed. The existing entry's
// value is never rewritten.
func EnsureVerifyTask(tc toolchain.Toolchain, dir string) (bool, error) {
	path := filepath.Join(dir, tc.ManifestPath())

	switch tc {
	case toolchain.Bun:
		return ensurePackageJSONTask(path)
	case toolchain.UV:
		return ensurePyprojectTask(path)
	}
	return false, fmt.Errorf("no task manifest for toolchain %q", tc)
}

// ensurePackageJSONTask adds scripts.verify to package.json, rewriting the
// file with stable two-space indentation.
func ensurePackageJSONTask(path string) (bool, error) {
	// #nosec G304 - path is the project's package.json
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read manifest: %w", err)
	}

	var manifest map[string]any
	if err := json.Unmarshal(data, &manifest); err != nil {
		return false, fmt.Errorf("parse manifest: %w", err)
	}

	scripts, ok := manifest["scripts"].(map[string]any)
	if !ok {
		scripts = map[string]any{}
		manifest["scripts"] = scripts
	}
	if _, exists := scripts["verify"]; exists {
		return false, nil
	}
	scripts["verify"] = verifyEntry

	out, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return false, fmt.Errorf("render manifest: %w", err)
	}
	out = append(out, '\n')

	// #nosec G306 - manifest should be readable by user
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return false, fmt.Errorf("write manifest: %w", err)
	}
	return true, nil
}

// pyprojectTaskSection is appended to pyproject.toml when no verify task is
// registered yet. Appending rather than re-encoding the whole document
// preserves the user's comments and section ordering.
const pyprojectTaskSection = "\n[tool.checkup.tasks]\nverify = \"" + verifyEntry + "\"\n"

// ensurePyprojectTask adds a [tool.checkup.tasks] verify entry to
// pyproject.toml.
func ensurePyprojectTask(path string) (bool, error) {
	// #nosec G304 - path is the project's pyproject.toml
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read manifest: %w", err)
	}

	var manifest map[string]any
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return false, fmt.Errorf("parse manifest: %w", err)
	}

	if hasPyprojectVerifyTask(manifest) {
		return false, nil
	}

	content := string(data)
	if !strings.HasSuffix(content, "\n") && content != "" {
		content += "\n"
	}
	content += pyprojectTaskSection

	// #nosec G306 - manifest should be readable by user
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write manifest: %w", err)
	}
	return true, nil
}

// hasPyprojectVerifyTask reports whether tool.checkup.tasks.verify is
// already defined.
func hasPyprojectVerifyTask(manifest map[string]any) bool {
	tool, ok := manifest["tool"].(map[string]any)
	if !ok {
		return false
	}
	checkup, ok := tool["checkup"].(map[string]any)
	if !ok {
		return false
	}
	tasks, ok := checkup["tasks"].(map[string]any)
	if !ok {
		return false
	}
	_, exists := tasks["verify"]
	return exists
}
