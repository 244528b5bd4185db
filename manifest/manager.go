package manifest

import (
	"os"
	"path/filepath"
	"regexp"
)

// PackageManager identifies the external package manager used for the
// scaffolded project.
type PackageManager string

const (
	ManagerNpm  PackageManager = "npm"
	ManagerYarn PackageManager = "yarn"
)

// yarnLockFile marks a Yarn-managed project.
const yarnLockFile = "yarn.lock"

// DetectManager picks the package manager for a project directory. An
// explicit override (from configuration) wins; otherwise the presence
// of a Yarn lockfile selects Yarn, and npm is the default.
func DetectManager(dir string, override string) PackageManager {
	switch override {
	case string(ManagerNpm):
		return ManagerNpm
	case string(ManagerYarn):
		return ManagerYarn
	}

	if _, err := os.Stat(filepath.Join(dir, yarnLockFile)); err == nil {
		return ManagerYarn
	}
	return ManagerNpm
}

var npmInvocation = regexp.MustCompile(`^(npm run |npm )`)

// RewriteScript rewrites an npm-style script invocation to the
// manager's own prefix. Scripts are authored npm-first; for Yarn the
// leading "npm run " or "npm " becomes "yarn ".
func (p PackageManager) RewriteScript(script string) string {
	if p != ManagerYarn {
		return script
	}
	return npmInvocation.ReplaceAllString(script, "yarn ")
}
