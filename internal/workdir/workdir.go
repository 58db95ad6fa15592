// Package workdir resolves the workspace root that holds the .nexaflow
// directory, so commands work from any subdirectory.
package workdir

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	stateDir = ".nexaflow"
	rootFile = ".nexaflow-root"
)

// ResolveBaseDir walks up from start to the nearest directory containing
// .nexaflow. A .nexaflow-root file found on the way redirects to the path
// it names, relative paths being resolved against the file's directory.
// With no marker, start is returned unchanged.
func ResolveBaseDir(start string) string {
	abs, err := filepath.Abs(start)
	if err != nil {
		return start
	}
	for dir := abs; ; {
		if target, ok := readRootFile(dir); ok {
			return target
		}
		if fi, err := os.Stat(filepath.Join(dir, stateDir)); err == nil && fi.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

func readRootFile(dir string) (string, bool) {
	content, err := os.ReadFile(filepath.Join(dir, rootFile))
	if err != nil {
		return "", false
	}
	resolved := strings.TrimSpace(string(content))
	if resolved == "" {
		return "", false
	}
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(dir, resolved)
	}
	return filepath.Clean(resolved), true
}
