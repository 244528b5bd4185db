// Package bootstrap runs the post-scaffold initialization workflow:
// materialize a template, merge the app manifest, install
// dependencies, remove the template package, and set up version
// control. The flow is strictly linear; each phase blocks until its
// external commands finish, and a failed phase aborts everything after
// it.
package bootstrap

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sprouttools/sprout/command"
	"github.com/sprouttools/sprout/config"
	"github.com/sprouttools/sprout/errors"
	"github.com/sprouttools/sprout/installer"
	"github.com/sprouttools/sprout/logging"
	"github.com/sprouttools/sprout/manifest"
	"github.com/sprouttools/sprout/state"
	"github.com/sprouttools/sprout/template"
	"github.com/sprouttools/sprout/vcs"
	"github.com/sprouttools/sprout/version"
)

// Options configures one workflow run.
type Options struct {
	// AppPath is the target directory holding the pre-scaffolded app.
	AppPath string
	// AppName is the project name, used in guidance output.
	AppName string
	// TemplateName selects the template package. Required; the
	// workflow refuses to run without one.
	TemplateName string
	// OriginalDirectory is where the user invoked the scaffolder from,
	// kept for legacy callers so guidance can print a relative path.
	OriginalDirectory string
	// Verbose enables debug-level workflow logging.
	Verbose bool

	// Config is the loaded sprout configuration. Nil means defaults.
	Config *config.Config
	// Executor abstracts process creation; nil means real processes.
	Executor command.Executor
	// Verifier, when set, runs after a type-system package install.
	Verifier installer.TypeScriptVerifier
	// Output receives user-facing guidance. Nil means stdout.
	Output io.Writer
}

// Run executes the workflow. It returns the first fatal error; VCS
// failures are downgraded to warnings and never abort the run.
func Run(ctx context.Context, opts Options) error {
	logger := logging.NewLogger("bootstrap")
	if opts.Verbose {
		logger.Logger.SetLevel(logrus.DebugLevel)
	}

	if opts.TemplateName == "" {
		return errors.TemplateRequired()
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	cfg.SetDefaults()
	executor := opts.Executor
	if executor == nil {
		executor = &command.RealExecutor{}
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	app, err := manifest.Load(opts.AppPath)
	if err != nil {
		return err
	}

	templateDir, err := template.Resolve(opts.AppPath, opts.TemplateName, cfg)
	if err != nil {
		return err
	}

	descriptor, err := template.LoadDescriptor(templateDir)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"template": opts.TemplateName,
		"app":      opts.AppName,
	}).Info("Initializing project from template")

	if err := template.Materialize(templateDir, opts.AppPath); err != nil {
		return err
	}

	manager := manifest.DetectManager(opts.AppPath, cfg.Manager)
	manifest.Merge(app, descriptor.Package, manager)
	if err := app.Save(opts.AppPath); err != nil {
		return err
	}

	initializer := vcs.New(opts.AppPath, cfg.VCS.CommitMessage, executor)
	initialized := false
	if cfg.ShouldInitVCS() {
		initialized = initializer.TryInit(ctx)
	}

	inst := installer.New(opts.AppPath, manager, executor)
	if opts.Verifier != nil {
		inst = inst.WithVerifier(opts.Verifier)
	}
	if err := inst.Install(ctx, app, descriptor.Dependencies, descriptor.DevDependencies); err != nil {
		return err
	}
	if err := inst.Uninstall(ctx, template.CanonicalName(opts.TemplateName)); err != nil {
		return err
	}

	if err := state.WriteRecord(opts.AppPath, state.Record{
		Template:  template.CanonicalName(opts.TemplateName),
		Manager:   string(manager),
		Version:   version.Version,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		// The record is advisory; failing to write it is not worth
		// aborting an otherwise finished scaffold.
		logger.WithError(err).Warn("Could not write scaffold record")
	}
	if err := state.EnsureIgnored(opts.AppPath); err != nil {
		logger.WithError(err).Warn("Could not add the state directory to .gitignore")
	}

	committed := false
	if initialized {
		committed = initializer.TryCommit(ctx)
	}
	if committed {
		logger.Debug("Created initial git commit")
	}

	printGuidance(out, opts, manager)
	return nil
}
