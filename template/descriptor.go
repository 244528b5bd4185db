// Package template resolves named template packages and materializes
// their file trees into a freshly scaffolded project directory.
package template

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sprouttools/sprout/errors"
	"github.com/sprouttools/sprout/schema"
)

const (
	// DescriptorFile declares the manifest fragment and dependencies a
	// template contributes to a generated app.
	DescriptorFile = "template.json"

	// legacyDescriptorFile is the pre-descriptor format that only
	// listed dependencies. Still honored for old template packages.
	legacyDescriptorFile = ".template.dependencies.json"
)

// Descriptor is the template's declaration file. All fields are
// optional; a template that ships none of them contributes only its
// file tree.
type Descriptor struct {
	// Package holds partial manifest fields merged into the app
	// manifest under the blacklist/merge/replace policy.
	Package map[string]interface{} `json:"package,omitempty"`

	// Dependencies and DevDependencies map package names to version
	// ranges installed into the generated app.
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// LoadDescriptor reads the template's declaration file from its root
// directory. A missing descriptor is not an error; the returned
// descriptor is simply empty. Legacy dependency files are folded into
// the modern shape.
func LoadDescriptor(templateDir string) (*Descriptor, error) {
	path := filepath.Join(templateDir, DescriptorFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return loadLegacyDescriptor(templateDir)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDescriptorInvalid, "failed to read template descriptor")
	}

	validator, err := schema.NewTemplateValidator()
	if err != nil {
		return nil, err
	}

	var parsed interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, errors.DescriptorInvalid(path, err)
	}
	if err := validator.Validate(parsed); err != nil {
		return nil, errors.DescriptorInvalid(path, err)
	}

	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.DescriptorInvalid(path, err)
	}
	return &d, nil
}

// loadLegacyDescriptor reads the old dependencies-only declaration
// file. Its top-level keys are dependency name to version mappings.
func loadLegacyDescriptor(templateDir string) (*Descriptor, error) {
	path := filepath.Join(templateDir, legacyDescriptorFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Descriptor{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDescriptorInvalid, "failed to read legacy template descriptor")
	}

	var legacy struct {
		Dependencies map[string]string `json:"dependencies"`
	}
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, errors.DescriptorInvalid(path, err)
	}
	return &Descriptor{Dependencies: legacy.Dependencies}, nil
}
