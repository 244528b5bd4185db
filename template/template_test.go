package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprouttools/sprout/config"
	"github.com/sprouttools/sprout/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"typescript", "cra-template-typescript"},
		{"cra-template-typescript", "cra-template-typescript"},
		{"cra-template", "cra-template"},
		{"@scope/custom", "@scope/custom"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalName(tt.in))
	}
}

func TestResolve(t *testing.T) {
	appDir := t.TempDir()
	tplDir := filepath.Join(appDir, "node_modules", "cra-template-typescript")
	require.NoError(t, os.MkdirAll(tplDir, 0755))

	resolved, err := Resolve(appDir, "typescript", nil)
	require.NoError(t, err)
	assert.Equal(t, tplDir, resolved)
}

func TestResolve_ConfiguredDir(t *testing.T) {
	appDir := t.TempDir()
	storeDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(storeDir, "cra-template-minimal"), 0755))

	cfg := &config.Config{Templates: &config.TemplatesConfig{Dir: storeDir}}
	resolved, err := Resolve(appDir, "minimal", cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(storeDir, "cra-template-minimal"), resolved)
}

func TestResolve_Missing(t *testing.T) {
	_, err := Resolve(t.TempDir(), "nope", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeTemplateNotFound))
}

func TestLoadDescriptor(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, DescriptorFile), `{
  "package": {
    "scripts": {"serve": "serve -s build"}
  },
  "dependencies": {"serve": "^14.0.0"},
  "devDependencies": {"prettier": "^3.0.0"}
}`)

	d, err := LoadDescriptor(dir)
	require.NoError(t, err)
	assert.Equal(t, "^14.0.0", d.Dependencies["serve"])
	assert.Equal(t, "^3.0.0", d.DevDependencies["prettier"])
	scripts := d.Package["scripts"].(map[string]interface{})
	assert.Equal(t, "serve -s build", scripts["serve"])
}

func TestLoadDescriptor_Absent(t *testing.T) {
	d, err := LoadDescriptor(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, d.Dependencies)
	assert.Empty(t, d.DevDependencies)
	assert.Empty(t, d.Package)
}

func TestLoadDescriptor_Legacy(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".template.dependencies.json"),
		`{"dependencies": {"serve": "^14.0.0"}}`)

	d, err := LoadDescriptor(dir)
	require.NoError(t, err)
	assert.Equal(t, "^14.0.0", d.Dependencies["serve"])
}

func TestLoadDescriptor_Invalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, DescriptorFile),
		`{"package": {"dependencies": {"serve": 14}}}`)

	_, err := LoadDescriptor(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeDescriptorInvalid))
}

func TestMaterialize(t *testing.T) {
	tplDir := t.TempDir()
	appDir := t.TempDir()

	writeFile(t, filepath.Join(tplDir, "template", "src", "index.js"), "render()\n")
	writeFile(t, filepath.Join(tplDir, "template", "README.md"), "template readme\n")
	writeFile(t, filepath.Join(tplDir, "template", "gitignore"), "/build\n")
	writeFile(t, filepath.Join(tplDir, "template", "node_modules", "junk.js"), "skip me\n")

	writeFile(t, filepath.Join(appDir, "README.md"), "original readme\n")

	require.NoError(t, Materialize(tplDir, appDir))

	data, err := os.ReadFile(filepath.Join(appDir, "src", "index.js"))
	require.NoError(t, err)
	assert.Equal(t, "render()\n", string(data))

	// Pre-existing README preserved, template one installed
	old, err := os.ReadFile(filepath.Join(appDir, "README.old.md"))
	require.NoError(t, err)
	assert.Equal(t, "original readme\n", string(old))
	installed, err := os.ReadFile(filepath.Join(appDir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "template readme\n", string(installed))

	// Shipped gitignore renamed
	ignore, err := os.ReadFile(filepath.Join(appDir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "/build\n", string(ignore))
	_, err = os.Stat(filepath.Join(appDir, "gitignore"))
	assert.True(t, os.IsNotExist(err))

	// Excluded paths never copied
	_, err = os.Stat(filepath.Join(appDir, "node_modules"))
	assert.True(t, os.IsNotExist(err))
}

func TestMaterialize_AppendsGitignore(t *testing.T) {
	tplDir := t.TempDir()
	appDir := t.TempDir()

	writeFile(t, filepath.Join(tplDir, "template", "gitignore"), "/build\n")
	writeFile(t, filepath.Join(appDir, ".gitignore"), "/coverage\n")

	require.NoError(t, Materialize(tplDir, appDir))

	data, err := os.ReadFile(filepath.Join(appDir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "/coverage\n/build\n", string(data))
}

func TestMaterialize_AppendsGitignoreWithoutTrailingNewline(t *testing.T) {
	tplDir := t.TempDir()
	appDir := t.TempDir()

	writeFile(t, filepath.Join(tplDir, "template", "gitignore"), "/build\n")
	writeFile(t, filepath.Join(appDir, ".gitignore"), "/coverage")

	require.NoError(t, Materialize(tplDir, appDir))

	data, err := os.ReadFile(filepath.Join(appDir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "/coverage\n/build\n", string(data),
		"entries must not fuse when the existing file lacks a final newline")
}

func TestMaterialize_ReadmeRenameFailureNonFatal(t *testing.T) {
	tplDir := t.TempDir()
	appDir := t.TempDir()

	writeFile(t, filepath.Join(tplDir, "template", "README.md"), "template readme\n")

	// A directory at the rename target makes os.Rename fail
	require.NoError(t, os.MkdirAll(filepath.Join(appDir, "README.old.md"), 0755))
	writeFile(t, filepath.Join(appDir, "README.md"), "original readme\n")

	require.NoError(t, Materialize(tplDir, appDir))

	// The copy proceeds and the template README wins
	data, err := os.ReadFile(filepath.Join(appDir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "template readme\n", string(data))
}

func TestMaterialize_MissingTree(t *testing.T) {
	err := Materialize(t.TempDir(), t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeTemplateNotFound))
}
