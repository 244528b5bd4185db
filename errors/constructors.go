package errors

import (
	"fmt"
	"os/exec"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *SproutError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// TemplateRequired creates an error for a missing --template flag
func TemplateRequired() *SproutError {
	return New(ErrCodeTemplateRequired, "a template name is required to scaffold a project")
}

// TemplateNotFound creates a template not found error
func TemplateNotFound(name, path string) *SproutError {
	return New(ErrCodeTemplateNotFound, fmt.Sprintf("template '%s' not found at %s", name, path)).
		WithDetail("template", name).
		WithDetail("path", path)
}

// DescriptorInvalid creates an error for an unreadable template descriptor
func DescriptorInvalid(path string, err error) *SproutError {
	return Wrap(err, ErrCodeDescriptorInvalid, fmt.Sprintf("invalid template descriptor: %s", path)).
		WithDetail("path", path)
}

// ManifestNotFound creates an error for a missing package manifest
func ManifestNotFound(path string) *SproutError {
	return New(ErrCodeManifestNotFound, fmt.Sprintf("package manifest not found: %s", path)).
		WithDetail("path", path)
}

// ManifestInvalid creates an error for an unparseable package manifest
func ManifestInvalid(path string, err error) *SproutError {
	return Wrap(err, ErrCodeManifestInvalid, fmt.Sprintf("invalid package manifest: %s", path)).
		WithDetail("path", path)
}

// InstallFailed creates a dependency install failure error
func InstallFailed(manager string, err error) *SproutError {
	sproutErr := Wrap(err, ErrCodeInstallFailed, fmt.Sprintf("%s failed to install dependencies", manager)).
		WithDetail("manager", manager)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		sproutErr = sproutErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return sproutErr
}

// UninstallFailed creates a template removal failure error
func UninstallFailed(manager, pkg string, err error) *SproutError {
	return Wrap(err, ErrCodeUninstallFailed, fmt.Sprintf("%s failed to remove %s", manager, pkg)).
		WithDetail("manager", manager).
		WithDetail("package", pkg)
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *SproutError {
	sproutErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	if exitErr, ok := err.(*exec.ExitError); ok {
		sproutErr = sproutErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return sproutErr
}

// CommitFailed creates a VCS commit failure error
func CommitFailed(dir string, err error) *SproutError {
	return Wrap(err, ErrCodeCommitFailed, fmt.Sprintf("could not create an initial commit in %s", dir)).
		WithDetail("dir", dir)
}
