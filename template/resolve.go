package template

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sprouttools/sprout/config"
	"github.com/sprouttools/sprout/errors"
)

// canonicalPrefix is prepended to bare template names, mirroring the
// naming convention template packages publish under. Scoped names and
// names that already carry the prefix are used as-is.
const canonicalPrefix = "cra-template"

// CanonicalName expands a user-supplied template name to the full
// package name it is installed under. "typescript" becomes
// "cra-template-typescript"; "@scope/foo" and "cra-template-foo" pass
// through unchanged.
func CanonicalName(name string) string {
	if name == "" || strings.HasPrefix(name, "@") {
		return name
	}
	if name == canonicalPrefix || strings.HasPrefix(name, canonicalPrefix+"-") {
		return name
	}
	return canonicalPrefix + "-" + name
}

// Resolve locates the root directory of an installed template package.
// A configured templates directory takes precedence; otherwise the
// package is expected under the app's node_modules. The returned path
// is guaranteed to exist.
func Resolve(appDir, name string, cfg *config.Config) (string, error) {
	pkg := CanonicalName(name)

	var dir string
	if cfg != nil && cfg.Templates != nil && cfg.Templates.Dir != "" {
		dir = filepath.Join(cfg.Templates.Dir, pkg)
	} else {
		dir = filepath.Join(appDir, "node_modules", pkg)
	}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", errors.TemplateNotFound(name, dir)
	}
	return dir, nil
}
