package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

// TemplatesConfig controls how template packages are resolved.
type TemplatesConfig struct {
	// Dir is an optional local directory searched for templates before the
	// app's node_modules tree. Useful for developing templates without
	// publishing them.
	Dir string `yaml:"dir,omitempty" toml:"dir,omitempty" jsonschema:"description=Local directory searched for template packages before node_modules"`
}

// VCSConfig controls repository initialization of scaffolded projects.
type VCSConfig struct {
	// Init disables repository initialization entirely when set to false.
	Init *bool `yaml:"init,omitempty" toml:"init,omitempty" jsonschema:"description=Whether to initialize a git repository in new projects (default: true)"`

	// CommitMessage overrides the message used for the initial commit.
	CommitMessage string `yaml:"commit_message,omitempty" toml:"commit_message,omitempty" jsonschema:"description=Message used for the initial commit"`
}

// Config represents the sprout.yml configuration
type Config struct {
	Name    string `yaml:"name,omitempty" toml:"name,omitempty" jsonschema:"description=Name of the configuration"`
	Version string `yaml:"version" toml:"version" jsonschema:"description=Configuration version (e.g. 1.0)"`

	// Manager forces a package manager instead of detecting one from the
	// lockfile. Valid values are "npm" and "yarn".
	Manager string `yaml:"manager,omitempty" toml:"manager,omitempty" jsonschema:"description=Package manager to use: npm or yarn (default: detected from lockfile),enum=npm,enum=yarn"`

	Templates *TemplatesConfig `yaml:"templates,omitempty" toml:"templates,omitempty" jsonschema:"description=Template resolution settings"`
	VCS       *VCSConfig       `yaml:"vcs,omitempty" toml:"vcs,omitempty" jsonschema:"description=Repository initialization settings"`

	// Extensions captures all other top-level keys for extensibility.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" jsonschema:"-"`
}

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = "1.0"
	}
	if c.VCS == nil {
		c.VCS = &VCSConfig{}
	}
	if c.VCS.CommitMessage == "" {
		c.VCS.CommitMessage = "Initialize project using sprout"
	}
}

// ShouldInitVCS reports whether scaffolded projects get a repository.
func (c *Config) ShouldInitVCS() bool {
	if c.VCS == nil || c.VCS.Init == nil {
		return true
	}
	return *c.VCS.Init
}

// Validate performs semantic validation beyond the JSON schema.
func (c *Config) Validate() error {
	switch c.Manager {
	case "", "npm", "yarn":
	default:
		return fmt.Errorf("invalid manager %q (must be npm or yarn)", c.Manager)
	}
	return nil
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded sprout.yml into the provided target struct. The target must be a
// pointer. This provides a type-safe way for extensions to access their
// custom configuration sections.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		// The target struct will simply remain zero-valued.
		return nil
	}

	// Use mapstructure to decode the generic map[string]interface{} into the
	// strongly-typed target struct, using `yaml` tags for consistency.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension %q: %w", key, err)
	}

	return nil
}
