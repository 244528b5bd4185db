// Package paths provides XDG-compliant path resolution for sprout.
//
// Resolution order:
// 1. SPROUT_HOME (portable root) → $SPROUT_HOME/{config,data,state,cache}
// 2. XDG env vars → $XDG_*_HOME/sprout
// 3. Platform defaults → ~/.config/sprout, ~/.local/share/sprout, etc.
package paths

import (
	"os"
	"path/filepath"
)

// getConfigHome returns the base config home directory.
func getConfigHome() string {
	if sproutHome := os.Getenv("SPROUT_HOME"); sproutHome != "" {
		return filepath.Join(sproutHome, "config")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

// getDataHome returns the base data home directory.
func getDataHome() string {
	if sproutHome := os.Getenv("SPROUT_HOME"); sproutHome != "" {
		return filepath.Join(sproutHome, "data")
	}
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return xdgDataHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "share")
	}
	return ""
}

// getStateHome returns the base state home directory.
func getStateHome() string {
	if sproutHome := os.Getenv("SPROUT_HOME"); sproutHome != "" {
		return filepath.Join(sproutHome, "state")
	}
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return xdgStateHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state")
	}
	return ""
}

// getCacheHome returns the base cache home directory.
func getCacheHome() string {
	if sproutHome := os.Getenv("SPROUT_HOME"); sproutHome != "" {
		return filepath.Join(sproutHome, "cache")
	}
	if xdgCacheHome := os.Getenv("XDG_CACHE_HOME"); xdgCacheHome != "" {
		return xdgCacheHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".cache")
	}
	return ""
}

// ConfigDir returns the sprout configuration directory.
// Used for config files like sprout.yml.
func ConfigDir() string {
	base := getConfigHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "sprout")
}

// GlobalConfigFile returns the path of the global sprout.yml, or ""
// when no home directory can be resolved.
func GlobalConfigFile() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "sprout.yml")
}

// DataDir returns the sprout data directory.
// Used for persistent data like locally stored template packages.
func DataDir() string {
	base := getDataHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "sprout")
}

// TemplatesDir returns the default local template store, a
// subdirectory of DataDir. Config can override it per project.
func TemplatesDir() string {
	data := DataDir()
	if data == "" {
		return ""
	}
	return filepath.Join(data, "templates")
}

// StateDir returns the sprout state directory.
// Used for runtime state like logs.
func StateDir() string {
	base := getStateHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "sprout")
}

// CacheDir returns the sprout cache directory.
func CacheDir() string {
	base := getCacheHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "sprout")
}

// EnsureDirs creates all sprout directories if they don't exist.
func EnsureDirs() error {
	dirs := []string{
		ConfigDir(),
		DataDir(),
		StateDir(),
		CacheDir(),
		TemplatesDir(),
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
