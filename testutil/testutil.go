// Package testutil holds shared helpers for sprout tests.
package testutil

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireGit skips the test if git is not available
func RequireGit(t *testing.T) {
	t.Helper()

	if err := exec.Command("git", "--version").Run(); err != nil {
		t.Skip("git not available")
	}
}

// InitGitRepo initializes a git repository with an initial commit in
// the given directory
func InitGitRepo(t *testing.T, dir string) {
	t.Helper()

	RunGitCommand(t, dir, "init")
	RunGitCommand(t, dir, "config", "user.name", "Test User")
	RunGitCommand(t, dir, "config", "user.email", "test@example.com")

	testFile := filepath.Join(dir, "README.md")
	if err := os.WriteFile(testFile, []byte("# Test Project\n"), 0600); err != nil {
		t.Fatalf("Failed to create README: %v", err)
	}

	RunGitCommand(t, dir, "add", ".")
	RunGitCommand(t, dir, "commit", "-m", "Initial commit")

	// Ignore error as branch might already be named main
	cmd := exec.Command("git", "branch", "-m", "main")
	cmd.Dir = dir
	_ = cmd.Run()
}

// RunGitCommand runs a git command in the given directory
func RunGitCommand(t *testing.T, dir string, args ...string) {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to run git %v: %v", args, err)
	}
}

// WriteManifest writes a package.json into dir
func WriteManifest(t *testing.T, dir string, manifest map[string]interface{}) {
	t.Helper()

	data, err := json.MarshalIndent(manifest, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), data, 0644))
}

// InstallTemplate lays out a template package under the app's
// node_modules with the given descriptor and template files. Files are
// given as paths relative to the template/ subtree.
func InstallTemplate(t *testing.T, appDir, pkg string, descriptor map[string]interface{}, files map[string]string) string {
	t.Helper()

	root := filepath.Join(appDir, "node_modules", pkg)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "template"), 0755))

	if descriptor != nil {
		data, err := json.MarshalIndent(descriptor, "", "  ")
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(root, "template.json"), data, 0644))
	}

	for name, content := range files {
		path := filepath.Join(root, "template", name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	return root
}
