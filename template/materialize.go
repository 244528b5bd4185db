package template

import (
	"io"
	"os"
	"path/filepath"

	"github.com/moby/patternmatcher"
	"github.com/sirupsen/logrus"

	"github.com/sprouttools/sprout/errors"
	"github.com/sprouttools/sprout/logging"
)

// treeSubdir is the subtree inside a template package that is copied
// onto the target app directory.
const treeSubdir = "template"

// copyExcludes are never materialized from a template tree, in the
// dockerignore pattern syntax.
var copyExcludes = []string{
	"node_modules",
	".git",
	".DS_Store",
	"*.log",
}

// Materialize copies the template package's file tree onto the app
// directory. A pre-existing README is preserved as README.old.md when
// the template ships its own, and a shipped gitignore file is folded
// into .gitignore.
func Materialize(templateDir, appDir string) error {
	logger := logging.NewLogger("template")

	src := filepath.Join(templateDir, treeSubdir)
	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		return errors.New(errors.ErrCodeTemplateNotFound,
			"could not locate the supplied template tree: "+src)
	}

	matcher, err := patternmatcher.New(copyExcludes)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "invalid copy exclude patterns")
	}

	preserveReadme(src, appDir, logger)

	if err := copyTree(src, appDir, matcher); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to copy template files")
	}

	if err := mergeGitignore(appDir); err != nil {
		return err
	}

	logger.WithField("template", templateDir).Debug("Materialized template tree")
	return nil
}

// preserveReadme renames an existing app README out of the way when
// the template is about to install its own. The rename is cosmetic;
// a failure is logged and the copy overwrites the README instead.
func preserveReadme(src, appDir string, logger *logrus.Entry) {
	if _, err := os.Stat(filepath.Join(src, "README.md")); err != nil {
		return
	}
	old := filepath.Join(appDir, "README.md")
	if _, err := os.Stat(old); err != nil {
		return
	}

	logger.Infof("You had a README.md file, we renamed it to README.old.md")
	if err := os.Rename(old, filepath.Join(appDir, "README.old.md")); err != nil {
		logger.WithError(err).Warn("Could not preserve the existing README")
	}
}

// copyTree walks src and replicates files and directories under dst,
// skipping excluded paths. Existing files are overwritten.
func copyTree(src, dst string, matcher *patternmatcher.PatternMatcher) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		excluded, err := matcher.MatchesOrParentMatches(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if excluded {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, info.Mode().Perm())
		}
		return copyFile(path, target, info.Mode().Perm())
	})
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// mergeGitignore folds a template-shipped gitignore file into the
// app's .gitignore. Templates cannot ship a dotted .gitignore because
// package publishing strips it, so the convention is an undotted file.
func mergeGitignore(appDir string) error {
	shipped := filepath.Join(appDir, "gitignore")
	data, err := os.ReadFile(shipped)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to read shipped gitignore")
	}

	target := filepath.Join(appDir, ".gitignore")
	if existing, err := os.ReadFile(target); err == nil {
		// Existing entries may lack a final newline; appending without
		// one would fuse the last entry with the first shipped one.
		if len(existing) > 0 && existing[len(existing)-1] != '\n' {
			data = append([]byte("\n"), data...)
		}
		f, err := os.OpenFile(target, os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "failed to open .gitignore for append")
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return errors.Wrap(err, errors.ErrCodeInternal, "failed to append to .gitignore")
		}
		if err := f.Close(); err != nil {
			return err
		}
		return os.Remove(shipped)
	}

	return os.Rename(shipped, target)
}
