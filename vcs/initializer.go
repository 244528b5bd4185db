// Package vcs conditionally initializes and commits a version-control
// repository for a freshly scaffolded project. Every failure here is
// non-fatal for the workflow; at worst the generated app is left
// without version control.
package vcs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sprouttools/sprout/command"
	"github.com/sprouttools/sprout/errors"
	"github.com/sprouttools/sprout/logging"
)

// DefaultCommitMessage is used when configuration does not override it.
const DefaultCommitMessage = "Initialize project using sprout"

// Initializer runs the init-then-commit sequence at most once per
// scaffold. It has two states, uninitialized and initialized, and the
// only transition is a successful git init.
type Initializer struct {
	dir           string
	commitMessage string
	builder       *command.SafeBuilder
	logger        *logrus.Entry

	initialized bool
}

// New creates an initializer for the app directory. The executor
// abstracts process creation for tests.
func New(dir, commitMessage string, executor command.Executor) *Initializer {
	if commitMessage == "" {
		commitMessage = DefaultCommitMessage
	}
	return &Initializer{
		dir:           dir,
		commitMessage: commitMessage,
		builder:       command.NewSafeBuilderWithExecutor(executor),
		logger:        logging.NewLogger("vcs"),
	}
}

// TryInit initializes a git repository in the app directory unless the
// directory is already under version control or git is unavailable.
// Returns whether the repository was initialized. Failures are logged
// and swallowed.
func (i *Initializer) TryInit(ctx context.Context) bool {
	if !i.gitAvailable(ctx) {
		i.logger.Debug("Git is not installed, skipping repository setup")
		return false
	}
	if i.insideGitWorkTree(ctx) || i.insideMercurialRepo(ctx) {
		i.logger.Debug("Directory is already under version control, skipping init")
		return false
	}

	if err := i.runGit(ctx, "init"); err != nil {
		i.logger.WithError(err).Warn("Could not initialize a git repository")
		return false
	}

	i.initialized = true
	return true
}

// TryCommit stages everything and creates the initial commit. On
// failure the freshly created .git directory is removed so the app is
// not left half-initialized; that removal failing is itself ignored.
// Returns whether a commit was created.
func (i *Initializer) TryCommit(ctx context.Context) bool {
	if !i.initialized {
		return false
	}

	err := i.runGit(ctx, "add", "-A")
	if err == nil {
		if err = i.runGit(ctx, "commit", "-m", i.commitMessage); err == nil {
			return true
		}
	}

	// A failed commit usually means author identity is not configured.
	// Remove the metadata rather than leave a repo with staged files
	// and no history.
	i.logger.WithError(errors.CommitFailed(i.dir, err)).
		Warn("Git commit failed, removing the initialized repository")
	os.RemoveAll(filepath.Join(i.dir, ".git"))
	i.initialized = false
	return false
}

// Initialized reports whether a repository was set up by TryInit and
// survived TryCommit.
func (i *Initializer) Initialized() bool {
	return i.initialized
}

func (i *Initializer) gitAvailable(ctx context.Context) bool {
	return i.runGit(ctx, "--version") == nil
}

// insideGitWorkTree probes whether the app directory already belongs
// to a git work tree, as is the case when scaffolding inside an
// existing checkout.
func (i *Initializer) insideGitWorkTree(ctx context.Context) bool {
	cmd, err := i.builder.Build(ctx, "git", "rev-parse", "--is-inside-work-tree")
	if err != nil {
		return false
	}
	execCmd := cmd.Exec()
	execCmd.Dir = i.dir
	output, err := execCmd.Output()
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(output)) == "true"
}

// insideMercurialRepo is the second probe. Mercurial has no rev-parse;
// asking for the repo root from the app directory serves the same
// purpose.
func (i *Initializer) insideMercurialRepo(ctx context.Context) bool {
	cmd, err := i.builder.Build(ctx, "hg", "--cwd", i.dir, "root")
	if err != nil {
		return false
	}
	return cmd.Exec().Run() == nil
}

func (i *Initializer) runGit(ctx context.Context, args ...string) error {
	cmd, err := i.builder.Build(ctx, "git", args...)
	if err != nil {
		return err
	}
	execCmd := cmd.Exec()
	execCmd.Dir = i.dir
	if err := execCmd.Run(); err != nil {
		return errors.CommandFailed("git "+strings.Join(args, " "), err)
	}
	return nil
}
