package installer

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprouttools/sprout/errors"
	"github.com/sprouttools/sprout/manifest"
)

// recordingExecutor captures every invocation and substitutes a
// harmless binary so nothing is actually installed.
type recordingExecutor struct {
	calls [][]string
	fail  bool
}

func (e *recordingExecutor) record(name string, args []string) *exec.Cmd {
	e.calls = append(e.calls, append([]string{name}, args...))
	if e.fail {
		return exec.Command("false")
	}
	return exec.Command("true")
}

func (e *recordingExecutor) Command(name string, args ...string) *exec.Cmd {
	return e.record(name, args)
}

func (e *recordingExecutor) CommandContext(_ context.Context, name string, args ...string) *exec.Cmd {
	return e.record(name, args)
}

type recordingVerifier struct {
	called bool
}

func (v *recordingVerifier) Verify(context.Context, string) error {
	v.called = true
	return nil
}

func TestInstall_TwoPhases(t *testing.T) {
	rec := &recordingExecutor{}
	inst := New(t.TempDir(), manifest.ManagerNpm, rec)

	app := manifest.Manifest{
		"dependencies": map[string]interface{}{
			"react":     "^18.0.0",
			"react-dom": "^18.0.0",
		},
	}
	err := inst.Install(context.Background(), app,
		map[string]string{"serve": "^14.0.0"},
		map[string]string{"prettier": "^3.0.0"})
	require.NoError(t, err)

	require.Len(t, rec.calls, 2)
	assert.Equal(t, []string{
		"npm", "install", "--no-audit", "--save-exact", "--loglevel", "error", "--save",
		"serve@^14.0.0",
	}, rec.calls[0])
	assert.Equal(t, []string{
		"npm", "install", "--no-audit", "--save-exact", "--loglevel", "error", "--save-dev",
		"prettier@^3.0.0",
	}, rec.calls[1])
}

func TestInstall_YarnFlavor(t *testing.T) {
	rec := &recordingExecutor{}
	inst := New(t.TempDir(), manifest.ManagerYarn, rec)

	app := manifest.Manifest{
		"dependencies": map[string]interface{}{
			"react":     "^18.0.0",
			"react-dom": "^18.0.0",
		},
	}
	err := inst.Install(context.Background(), app,
		map[string]string{"serve": "^14.0.0"},
		map[string]string{"prettier": "^3.0.0"})
	require.NoError(t, err)

	require.Len(t, rec.calls, 2)
	assert.Equal(t, []string{"yarn", "add", "serve@^14.0.0"}, rec.calls[0])
	assert.Equal(t, []string{"yarn", "add", "--dev", "prettier@^3.0.0"}, rec.calls[1])
}

func TestInstall_FrameworkCoreFiltered(t *testing.T) {
	rec := &recordingExecutor{}
	inst := New(t.TempDir(), manifest.ManagerNpm, rec)

	app := manifest.Manifest{
		"dependencies": map[string]interface{}{
			"react":     "^18.0.0",
			"react-dom": "^18.0.0",
		},
	}
	err := inst.Install(context.Background(), app,
		map[string]string{
			"react":     "^18.2.0",
			"react-dom": "^18.2.0",
			"serve":     "^14.0.0",
		}, nil)
	require.NoError(t, err)

	require.Len(t, rec.calls, 1)
	for _, arg := range rec.calls[0] {
		assert.NotEqual(t, "react@^18.2.0", arg)
		assert.NotEqual(t, "react-dom@^18.2.0", arg)
	}
	assert.Contains(t, rec.calls[0], "serve@^14.0.0")
}

func TestInstall_FrameworkCoreAddedWhenMissing(t *testing.T) {
	rec := &recordingExecutor{}
	inst := New(t.TempDir(), manifest.ManagerNpm, rec)

	// App manifest carries neither core package
	err := inst.Install(context.Background(), manifest.Manifest{},
		map[string]string{"serve": "^14.0.0"}, nil)
	require.NoError(t, err)

	require.Len(t, rec.calls, 1)
	assert.Contains(t, rec.calls[0], "react")
	assert.Contains(t, rec.calls[0], "react-dom")
}

func TestInstall_FailureIsFatal(t *testing.T) {
	rec := &recordingExecutor{fail: true}
	inst := New(t.TempDir(), manifest.ManagerNpm, rec)

	err := inst.Install(context.Background(), manifest.Manifest{},
		map[string]string{"serve": "^14.0.0"}, map[string]string{"prettier": "^3.0.0"})
	require.Error(t, err)
	assert.Len(t, rec.calls, 1, "dev phase must not run after install failure")
}

func TestInstall_TypeScriptTriggersVerifier(t *testing.T) {
	rec := &recordingExecutor{}
	verifier := &recordingVerifier{}
	inst := New(t.TempDir(), manifest.ManagerNpm, rec).WithVerifier(verifier)

	app := manifest.Manifest{
		"dependencies": map[string]interface{}{
			"react":     "^18.0.0",
			"react-dom": "^18.0.0",
		},
	}
	err := inst.Install(context.Background(), app, nil,
		map[string]string{"typescript": "^5.0.0"})
	require.NoError(t, err)
	assert.True(t, verifier.called)
}

func TestInstall_NoVerifierWithoutMarker(t *testing.T) {
	rec := &recordingExecutor{}
	verifier := &recordingVerifier{}
	inst := New(t.TempDir(), manifest.ManagerNpm, rec).WithVerifier(verifier)

	app := manifest.Manifest{
		"dependencies": map[string]interface{}{
			"react":     "^18.0.0",
			"react-dom": "^18.0.0",
		},
	}
	err := inst.Install(context.Background(), app,
		map[string]string{"serve": "^14.0.0"}, nil)
	require.NoError(t, err)
	assert.False(t, verifier.called)
}

func TestUninstall(t *testing.T) {
	rec := &recordingExecutor{}
	inst := New(t.TempDir(), manifest.ManagerYarn, rec)

	require.NoError(t, inst.Uninstall(context.Background(), "cra-template-typescript"))
	require.Len(t, rec.calls, 1)
	assert.Equal(t, []string{"yarn", "remove", "cra-template-typescript"}, rec.calls[0])
}

func TestUninstall_Npm(t *testing.T) {
	rec := &recordingExecutor{}
	inst := New(t.TempDir(), manifest.ManagerNpm, rec)

	require.NoError(t, inst.Uninstall(context.Background(), "cra-template-typescript"))
	require.Len(t, rec.calls, 1)
	assert.Equal(t, []string{"npm", "uninstall", "cra-template-typescript"}, rec.calls[0])
}

func TestInstall_RejectsMalformedSpec(t *testing.T) {
	rec := &recordingExecutor{}
	inst := New(t.TempDir(), manifest.ManagerNpm, rec)

	err := inst.Install(context.Background(), manifest.Manifest{
		"dependencies": map[string]interface{}{"react": "x", "react-dom": "x"},
	}, map[string]string{"serve; rm -rf /": "^14.0.0"}, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	assert.Empty(t, rec.calls, "nothing may run with a malformed spec")
}
