package command

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// SafeBuilder provides command construction with argument validation.
//
// Scaffolding commands (install, commit) are run without a timeout: a hung
// package manager hangs the workflow rather than leaving a half-installed
// project behind. Callers that want cancellation pass their own context.
type SafeBuilder struct {
	validators map[string]func(string) error
	executor   Executor
}

// NewSafeBuilder creates a new SafeBuilder instance with a RealExecutor
func NewSafeBuilder() *SafeBuilder {
	return NewSafeBuilderWithExecutor(&RealExecutor{})
}

// NewSafeBuilderWithExecutor creates a new SafeBuilder with a custom Executor
func NewSafeBuilderWithExecutor(exec Executor) *SafeBuilder {
	return &SafeBuilder{
		validators: makeDefaultValidators(),
		executor:   exec,
	}
}

// makeDefaultValidators returns the default set of validators
func makeDefaultValidators() map[string]func(string) error {
	return map[string]func(string) error{
		"appName":      validateAppName,
		"templateName": validateTemplateName,
		"packageSpec":  validatePackageSpec,
		"fileName":     validateFileName,
		"gitRef":       validateGitRef,
	}
}

// validateAppName ensures app names are valid npm package names
func validateAppName(name string) error {
	if name == "" {
		return fmt.Errorf("app name cannot be empty")
	}

	// npm package names: lowercase letters, digits, hyphens, underscores, dots
	validName := regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)
	if !validName.MatchString(name) {
		return fmt.Errorf("invalid app name: %s (must contain only lowercase letters, digits, dots, underscores, and hyphens)", name)
	}

	if len(name) > 214 {
		return fmt.Errorf("app name too long: %s (max 214 characters)", name)
	}

	return nil
}

// validateTemplateName ensures template names are valid, optionally scoped,
// npm package names
func validateTemplateName(name string) error {
	if name == "" {
		return fmt.Errorf("template name cannot be empty")
	}

	validName := regexp.MustCompile(`^(@[a-z0-9~-][a-z0-9._~-]*/)?[a-z0-9~-][a-z0-9._~-]*$`)
	if !validName.MatchString(name) {
		return fmt.Errorf("invalid template name: %s", name)
	}

	return nil
}

// validatePackageSpec ensures install arguments are package names with an
// optional version suffix (name@version)
func validatePackageSpec(spec string) error {
	if spec == "" {
		return fmt.Errorf("package spec cannot be empty")
	}

	name := spec
	// Split off the version, keeping the leading @ of scoped packages intact
	if at := strings.LastIndex(spec, "@"); at > 0 {
		name = spec[:at]
		version := spec[at+1:]
		validVersion := regexp.MustCompile(`^[a-zA-Z0-9^~><=*. -]+$`)
		if !validVersion.MatchString(version) {
			return fmt.Errorf("invalid version in package spec: %s", spec)
		}
	}

	return validateTemplateName(name)
}

// validateFileName ensures file paths are safe
func validateFileName(path string) error {
	if path == "" {
		return fmt.Errorf("file path cannot be empty")
	}

	// Prevent directory traversal
	if strings.Contains(path, "..") {
		return fmt.Errorf("file path cannot contain '..'")
	}

	// Prevent command injection via shell metacharacters
	if strings.ContainsAny(path, ";|&$`") {
		return fmt.Errorf("file path contains invalid characters")
	}

	return nil
}

// validateGitRef ensures git references are safe
func validateGitRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("git ref cannot be empty")
	}

	// Git refs: alphanumeric, slashes, hyphens, underscores, dots
	validRef := regexp.MustCompile(`^[a-zA-Z0-9/_.-]+$`)
	if !validRef.MatchString(ref) {
		return fmt.Errorf("invalid git ref: %s", ref)
	}

	return nil
}

// Command represents a validated command configuration
type Command struct {
	ctx      context.Context
	name     string
	args     []string
	executor Executor
}

// Build creates a new command with validation
func (sb *SafeBuilder) Build(ctx context.Context, name string, args ...string) (*Command, error) {
	if name == "" {
		return nil, fmt.Errorf("command name cannot be empty")
	}

	return &Command{
		ctx:      ctx,
		name:     name,
		args:     args,
		executor: sb.executor,
	}, nil
}

// Validate validates specific arguments
func (sb *SafeBuilder) Validate(argType string, value string) error {
	validator, exists := sb.validators[argType]
	if !exists {
		return fmt.Errorf("no validator for argument type: %s", argType)
	}

	return validator(value)
}

// Exec creates and returns an exec.Cmd
func (c *Command) Exec() *exec.Cmd {
	return c.executor.CommandContext(c.ctx, c.name, c.args...)
}
