// Package installer drives the external package manager to install a
// template's declared dependencies into a scaffolded app, then removes
// the template package itself.
package installer

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sprouttools/sprout/command"
	"github.com/sprouttools/sprout/errors"
	"github.com/sprouttools/sprout/logging"
	"github.com/sprouttools/sprout/manifest"
)

// frameworkCore are installed by the scaffolder itself before the
// template workflow runs. They are filtered out of template dependency
// lists unless the app manifest is somehow missing them.
var frameworkCore = []string{"react", "react-dom"}

// typeSystemMarker flags packages whose presence means the project
// opted into static typing.
const typeSystemMarker = "typescript"

// InstallCommand is one fully assembled package-manager invocation.
type InstallCommand struct {
	Executable string
	Subcommand string
	ExtraArgs  []string
}

// TypeScriptVerifier is invoked after installation when any installed
// package name carries the type-system marker. The scaffolder wires a
// real verifier in; tests substitute a recorder.
type TypeScriptVerifier interface {
	Verify(ctx context.Context, appDir string) error
}

// Installer runs install and uninstall phases against an app
// directory. Commands inherit the parent's stdio so package-manager
// progress is visible to the user.
type Installer struct {
	appDir   string
	manager  manifest.PackageManager
	builder  *command.SafeBuilder
	verifier TypeScriptVerifier
	logger   *logrus.Entry
}

// New creates an installer for the app directory using the given
// package manager. The executor abstracts process creation so tests
// can record invocations instead of running them.
func New(appDir string, manager manifest.PackageManager, executor command.Executor) *Installer {
	return &Installer{
		appDir:  appDir,
		manager: manager,
		builder: command.NewSafeBuilderWithExecutor(executor),
		logger:  logging.NewLogger("installer"),
	}
}

// WithVerifier attaches a post-install type-system verifier.
func (i *Installer) WithVerifier(v TypeScriptVerifier) *Installer {
	i.verifier = v
	return i
}

// installCommand assembles the manager-specific install invocation.
// The npm flavor pins exact versions and quiets audit output; the Yarn
// flavor relies on yarn add defaults.
func (i *Installer) installCommand(dev bool) InstallCommand {
	if i.manager == manifest.ManagerYarn {
		cmd := InstallCommand{Executable: "yarn", Subcommand: "add"}
		if dev {
			cmd.ExtraArgs = []string{"--dev"}
		}
		return cmd
	}

	cmd := InstallCommand{
		Executable: "npm",
		Subcommand: "install",
		ExtraArgs:  []string{"--no-audit", "--save-exact", "--loglevel", "error"},
	}
	if dev {
		cmd.ExtraArgs = append(cmd.ExtraArgs, "--save-dev")
	} else {
		cmd.ExtraArgs = append(cmd.ExtraArgs, "--save")
	}
	return cmd
}

// uninstallCommand assembles the invocation that removes the template
// package after its contents have been applied.
func (i *Installer) uninstallCommand() InstallCommand {
	if i.manager == manifest.ManagerYarn {
		return InstallCommand{Executable: "yarn", Subcommand: "remove"}
	}
	return InstallCommand{Executable: "npm", Subcommand: "uninstall"}
}

// Install runs the two install phases for a template's dependencies:
// runtime dependencies first, then devDependencies with the dev flag.
// The framework core pair is excluded from the template's lists and
// appended separately only when the app manifest does not already
// depend on it. Either phase failing is fatal for the workflow.
func (i *Installer) Install(ctx context.Context, app manifest.Manifest, deps, devDeps map[string]string) error {
	runtime := filterFrameworkCore(specs(deps))
	for _, core := range frameworkCore {
		if !app.HasDependency(core) {
			runtime = append(runtime, core)
		}
	}

	if len(runtime) > 0 {
		if err := i.run(ctx, i.installCommand(false), runtime); err != nil {
			return err
		}
	}

	dev := filterFrameworkCore(specs(devDeps))
	if len(dev) > 0 {
		if err := i.run(ctx, i.installCommand(true), dev); err != nil {
			return err
		}
	}

	if i.verifier != nil && containsTypeSystem(runtime, dev) {
		if err := i.verifier.Verify(ctx, i.appDir); err != nil {
			return err
		}
	}

	return nil
}

// Uninstall removes the template package itself from the generated
// app. Templates are scaffolding only and must not remain a runtime
// dependency.
func (i *Installer) Uninstall(ctx context.Context, templatePkg string) error {
	cmd := i.uninstallCommand()
	if err := i.run(ctx, cmd, []string{templatePkg}); err != nil {
		return errors.UninstallFailed(cmd.Executable, templatePkg, err)
	}
	return nil
}

// run executes one assembled package-manager invocation inside the app
// directory, inheriting the parent's stdio.
func (i *Installer) run(ctx context.Context, cmd InstallCommand, packages []string) error {
	for _, pkg := range packages {
		if err := i.builder.Validate("packageSpec", pkg); err != nil {
			return errors.Wrap(err, errors.ErrCodeInvalidInput, "refusing to install "+pkg)
		}
	}

	args := append([]string{cmd.Subcommand}, cmd.ExtraArgs...)
	args = append(args, packages...)

	i.logger.WithFields(logrus.Fields{
		"manager":  cmd.Executable,
		"packages": len(packages),
	}).Debug("Running package manager")

	execCmd, err := i.builder.Build(ctx, cmd.Executable, args...)
	if err != nil {
		return err
	}

	c := execCmd.Exec()
	c.Dir = i.appDir
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	if err := c.Run(); err != nil {
		return errors.InstallFailed(cmd.Executable, err)
	}
	return nil
}

// specs turns a name to version-range map into sorted name@version
// argument strings. Empty ranges install the latest published version.
func specs(deps map[string]string) []string {
	out := make([]string, 0, len(deps))
	for name, version := range deps {
		if version == "" {
			out = append(out, name)
			continue
		}
		out = append(out, name+"@"+version)
	}
	sort.Strings(out)
	return out
}

func filterFrameworkCore(packages []string) []string {
	out := packages[:0]
	for _, spec := range packages {
		if isFrameworkCore(spec) {
			continue
		}
		out = append(out, spec)
	}
	return out
}

func isFrameworkCore(spec string) bool {
	name := spec
	if at := strings.LastIndex(spec, "@"); at > 0 {
		name = spec[:at]
	}
	for _, core := range frameworkCore {
		if name == core {
			return true
		}
	}
	return false
}

func containsTypeSystem(lists ...[]string) bool {
	for _, list := range lists {
		for _, spec := range list {
			if strings.Contains(spec, typeSystemMarker) {
				return true
			}
		}
	}
	return false
}
