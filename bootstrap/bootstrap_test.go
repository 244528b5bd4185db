package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprouttools/sprout/errors"
	"github.com/sprouttools/sprout/state"
	"github.com/sprouttools/sprout/testutil"
)

type fakeExecutor struct {
	calls   [][]string
	failOn  string
	gitless bool
}

func (e *fakeExecutor) dispatch(name string, args []string) *exec.Cmd {
	e.calls = append(e.calls, append([]string{name}, args...))
	call := name + " " + strings.Join(args, " ")

	if e.gitless && name == "git" {
		return exec.Command("false")
	}
	// Probes answer "not under version control"
	if name == "hg" || strings.Contains(call, "rev-parse") {
		return exec.Command("false")
	}
	if e.failOn != "" && strings.Contains(call, e.failOn) {
		return exec.Command("false")
	}
	return exec.Command("true")
}

func (e *fakeExecutor) Command(name string, args ...string) *exec.Cmd {
	return e.dispatch(name, args)
}

func (e *fakeExecutor) CommandContext(_ context.Context, name string, args ...string) *exec.Cmd {
	return e.dispatch(name, args)
}

func (e *fakeExecutor) commandLines() []string {
	out := make([]string, 0, len(e.calls))
	for _, call := range e.calls {
		out = append(out, strings.Join(call, " "))
	}
	return out
}

// scaffoldFixture lays out an app directory with a manifest and an
// installed template package.
func scaffoldFixture(t *testing.T) string {
	t.Helper()
	appDir := t.TempDir()

	testutil.WriteManifest(t, appDir, map[string]interface{}{
		"name":    "my-app",
		"version": "0.1.0",
		"dependencies": map[string]interface{}{
			"react":     "^18.0.0",
			"react-dom": "^18.0.0",
		},
	})

	testutil.InstallTemplate(t, appDir, "cra-template-typescript",
		map[string]interface{}{
			"package": map[string]interface{}{
				"scripts": map[string]interface{}{"verify": "npm run build"},
			},
			"dependencies":    map[string]interface{}{"serve": "^14.0.0"},
			"devDependencies": map[string]interface{}{"typescript": "^5.0.0"},
		},
		map[string]string{
			"src/index.tsx": "render()\n",
			"gitignore":     "/build\n",
		})

	return appDir
}

func TestRun_FullWorkflow(t *testing.T) {
	appDir := scaffoldFixture(t)
	executor := &fakeExecutor{}
	var out bytes.Buffer

	err := Run(context.Background(), Options{
		AppPath:      appDir,
		AppName:      "my-app",
		TemplateName: "typescript",
		Executor:     executor,
		Output:       &out,
	})
	require.NoError(t, err)

	// Template tree materialized
	_, statErr := os.Stat(filepath.Join(appDir, "src", "index.tsx"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(appDir, ".gitignore"))
	assert.NoError(t, statErr)

	// Manifest merged and persisted
	data, err := os.ReadFile(filepath.Join(appDir, "package.json"))
	require.NoError(t, err)
	var merged map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &merged))
	scripts := merged["scripts"].(map[string]interface{})
	assert.Equal(t, "react-scripts start", scripts["start"])
	assert.Equal(t, "npm run build", scripts["verify"])

	// Install, dev install, template uninstall, git init and commit
	lines := e2eJoin(executor.commandLines())
	assert.Contains(t, lines, "serve@^14.0.0")
	assert.Contains(t, lines, "--save-dev")
	assert.Contains(t, lines, "npm uninstall cra-template-typescript")
	assert.Contains(t, lines, "git init")
	assert.Contains(t, lines, "git commit")

	// Scaffold record written
	record, ok, err := state.ReadRecord(appDir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "cra-template-typescript", record.Template)
	assert.Equal(t, "npm", record.Manager)

	// Guidance printed
	assert.Contains(t, out.String(), "Success!")
	assert.Contains(t, out.String(), "Happy hacking!")
}

func TestRun_RequiresTemplate(t *testing.T) {
	err := Run(context.Background(), Options{
		AppPath: t.TempDir(),
		AppName: "my-app",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeTemplateRequired))
}

func TestRun_MissingTemplatePackage(t *testing.T) {
	appDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "package.json"),
		[]byte(`{"name": "my-app"}`), 0644))

	err := Run(context.Background(), Options{
		AppPath:      appDir,
		AppName:      "my-app",
		TemplateName: "missing",
		Executor:     &fakeExecutor{},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeTemplateNotFound))

	// Nothing was copied before the failure
	_, statErr := os.Stat(filepath.Join(appDir, ".gitignore"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_InstallFailureAborts(t *testing.T) {
	appDir := scaffoldFixture(t)
	executor := &fakeExecutor{failOn: "npm install"}

	err := Run(context.Background(), Options{
		AppPath:      appDir,
		AppName:      "my-app",
		TemplateName: "typescript",
		Executor:     executor,
		Output:       &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInstallFailed))

	lines := e2eJoin(executor.commandLines())
	assert.NotContains(t, lines, "uninstall", "uninstall must not run after a failed install")
}

func TestRun_GitMissingIsNonFatal(t *testing.T) {
	appDir := scaffoldFixture(t)
	executor := &fakeExecutor{gitless: true}
	var out bytes.Buffer

	err := Run(context.Background(), Options{
		AppPath:      appDir,
		AppName:      "my-app",
		TemplateName: "typescript",
		Executor:     executor,
		Output:       &out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Success!")
}

func TestRun_YarnDetection(t *testing.T) {
	appDir := scaffoldFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "yarn.lock"), nil, 0644))

	executor := &fakeExecutor{}
	err := Run(context.Background(), Options{
		AppPath:      appDir,
		AppName:      "my-app",
		TemplateName: "typescript",
		Executor:     executor,
		Output:       &bytes.Buffer{},
	})
	require.NoError(t, err)

	lines := e2eJoin(executor.commandLines())
	assert.Contains(t, lines, "yarn add")
	assert.Contains(t, lines, "yarn remove cra-template-typescript")

	data, err := os.ReadFile(filepath.Join(appDir, "package.json"))
	require.NoError(t, err)
	var merged map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &merged))
	scripts := merged["scripts"].(map[string]interface{})
	assert.Equal(t, "yarn build", scripts["verify"], "script prefix rewritten for yarn")

	record, _, err := state.ReadRecord(appDir)
	require.NoError(t, err)
	assert.Equal(t, "yarn", record.Manager)
}

// gitExecutor runs git and hg for real while substituting package
// manager commands, so commit contents can be inspected.
type gitExecutor struct {
	fakeExecutor
}

func (e *gitExecutor) dispatch(ctx context.Context, name string, args []string) *exec.Cmd {
	if name == "git" || name == "hg" {
		if ctx != nil {
			return exec.CommandContext(ctx, name, args...)
		}
		return exec.Command(name, args...)
	}
	e.calls = append(e.calls, append([]string{name}, args...))
	return exec.Command("true")
}

func (e *gitExecutor) Command(name string, args ...string) *exec.Cmd {
	return e.dispatch(nil, name, args)
}

func (e *gitExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	return e.dispatch(ctx, name, args)
}

func TestRun_StateDirNotCommitted(t *testing.T) {
	testutil.RequireGit(t)
	t.Setenv("GIT_AUTHOR_NAME", "Test User")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test User")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")

	appDir := scaffoldFixture(t)
	err := Run(context.Background(), Options{
		AppPath:      appDir,
		AppName:      "my-app",
		TemplateName: "typescript",
		Executor:     &gitExecutor{},
		Output:       &bytes.Buffer{},
	})
	require.NoError(t, err)

	ignore, err := os.ReadFile(filepath.Join(appDir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(ignore), ".sprout/\n")

	lsFiles := exec.Command("git", "ls-files")
	lsFiles.Dir = appDir
	tracked, err := lsFiles.Output()
	require.NoError(t, err)
	assert.NotContains(t, string(tracked), ".sprout/",
		"scaffold bookkeeping must stay out of the initial commit")
	assert.Contains(t, string(tracked), "src/index.tsx")
}

func e2eJoin(lines []string) string {
	return strings.Join(lines, "\n")
}
