package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the base JSON Schema for the sprout configuration.
// It reflects the Config struct from types.go but excludes the 'Extensions'
// field, which is free-form by design.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// Extensions are free-form, so unknown fields stay allowed.
		AllowAdditionalProperties: true,
		// Expand struct references instead of using $ref for a cleaner schema.
		ExpandedStruct: true,
		// Use YAML field names for property names
		FieldNameTag: "yaml",
	}

	// A temporary struct omits the Extensions field so it's not reflected.
	type BaseConfig struct {
		Name      string           `yaml:"name,omitempty" jsonschema:"description=Name of the configuration"`
		Version   string           `yaml:"version" jsonschema:"description=Configuration version (e.g. '1.0')"`
		Manager   string           `yaml:"manager,omitempty" jsonschema:"description=Package manager to use,enum=npm,enum=yarn"`
		Templates *TemplatesConfig `yaml:"templates,omitempty" jsonschema:"description=Template resolution settings"`
		VCS       *VCSConfig       `yaml:"vcs,omitempty" jsonschema:"description=Repository initialization settings"`
	}

	schema := r.Reflect(&BaseConfig{})
	schema.Title = "Sprout Configuration"
	schema.Description = "Schema for sprout.yml properties."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
