package toolchain

import (
	"os"
	"path/filepath"
)

// Detection describes a toolchain found in a project directory.
type Detection struct {
	Toolchain Toolchain
	// Marker is the file that identified the toolchain.
	Marker string
	// Source is how it was detected: "lockfile" or "manifest".
	Source string
}

// markers lists detection candidates in priority order. Lockfiles identify a
// toolchain more reliably than manifests, so they are consulted first: a
// repo can carry both a pyproject.toml and a package.json, but only one
// toolchain owns the lockfile.
var markers = []struct {
	file      string
	toolchain Toolchain
	source    string
}{
	{"uv.lock", UV, "lockfile"},
	{"bun.lock", Bun, "lockfile"},
	{"bun.lockb", Bun, "lockfile"},
	{"pyproject.toml", UV, "manifest"},
	{"package.json", Bun, "manifest"},
}

// Detect scans dir for toolchain marker files and returns the best match.
func Detect(dir string) (Detection, bool) {
	for _, m := range markers {
		path := filepath.Join(dir, m.file)
		if pathExists(path) {
			return Detection{
				Toolchain: m.toolchain,
				Marker:    path,
				Source:    m.source,
			}, true
		}
	}
	return Detection{}, false
}

// DetectAll returns every toolchain with a marker present in dir, in
// priority order without duplicates.
func DetectAll(dir string) []Detection {
	var detected []Detection
	seen := map[Toolchain]bool{}
	for _, m := range markers {
		if seen[m.toolchain] {
			continue
		}
		path := filepath.Join(dir, m.file)
		if pathExists(path) {
			seen[m.toolchain] = true
			detected = append(detected, Detection{
				Toolchain: m.toolchain,
				Marker:    path,
				Source:    m.source,
			})
		}
	}
	return detected
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
