// Package manifest reads, merges, and writes package.json project
// manifests. The merge policy between an app manifest and the fields a
// template declares is expressed as a declarative rule table so it can
// be unit-tested without touching the filesystem.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sprouttools/sprout/errors"
)

// FileName is the manifest file name inside a project directory.
const FileName = "package.json"

// Manifest is a project manifest: string keys mapped to arbitrary JSON
// values. It is mutated in place during a merge and persisted once at
// the end of the workflow.
type Manifest map[string]interface{}

// Load reads and parses the manifest in the given project directory.
func Load(dir string) (Manifest, error) {
	path := filepath.Join(dir, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ManifestNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeManifestInvalid, "failed to read manifest")
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.ManifestInvalid(path, err)
	}

	return m, nil
}

// Save writes the manifest to the project directory, pretty-printed
// with two-space indentation and terminated by the platform line
// ending.
func (m Manifest) Save(dir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeManifestInvalid, "failed to encode manifest")
	}

	data = append(data, []byte(lineEnding())...)

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrCodeManifestInvalid, "failed to write manifest")
	}

	return nil
}

// Name returns the manifest's name field, or "" when absent.
func (m Manifest) Name() string {
	if name, ok := m["name"].(string); ok {
		return name
	}
	return ""
}

// Dependencies returns the dependencies map, or nil when absent.
func (m Manifest) Dependencies() map[string]interface{} {
	if deps, ok := m["dependencies"].(map[string]interface{}); ok {
		return deps
	}
	return nil
}

// DevDependencies returns the devDependencies map, or nil when absent.
func (m Manifest) DevDependencies() map[string]interface{} {
	if deps, ok := m["devDependencies"].(map[string]interface{}); ok {
		return deps
	}
	return nil
}

// HasDependency reports whether the name appears in dependencies or
// devDependencies.
func (m Manifest) HasDependency(name string) bool {
	if deps := m.Dependencies(); deps != nil {
		if _, ok := deps[name]; ok {
			return true
		}
	}
	if deps := m.DevDependencies(); deps != nil {
		if _, ok := deps[name]; ok {
			return true
		}
	}
	return false
}

func lineEnding() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}
