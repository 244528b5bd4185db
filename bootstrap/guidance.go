package bootstrap

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/sprouttools/sprout/manifest"
	"github.com/sprouttools/sprout/theme"
)

// printGuidance tells the user where their app is and how to run it.
func printGuidance(out io.Writer, opts Options, manager manifest.PackageManager) {
	t := theme.DefaultTheme

	// Prefer a cd path relative to where the user started
	cdPath := opts.AppPath
	if opts.OriginalDirectory != "" {
		if rel, err := filepath.Rel(opts.OriginalDirectory, opts.AppPath); err == nil {
			cdPath = rel
		}
	}

	fmt.Fprintf(out, "\n%s Created %s at %s\n",
		t.Bold.Render("Success!"), opts.AppName, opts.AppPath)
	fmt.Fprintln(out, "Inside that directory, you can run several commands:")

	for _, entry := range []struct {
		script, purpose string
	}{
		{"start", "Starts the development server."},
		{"build", "Bundles the app into static files for production."},
		{"test", "Starts the test runner."},
		{"eject", "Removes this tool and copies build dependencies, configuration\n    files and scripts into the app directory. Once you run this, there is no turning back!"},
	} {
		fmt.Fprintf(out, "\n  %s\n    %s\n",
			t.Accent.Render(runCommand(manager, entry.script)), entry.purpose)
	}

	fmt.Fprintln(out, "\nWe suggest that you begin by typing:")
	fmt.Fprintf(out, "\n  %s %s\n  %s\n\n",
		t.Accent.Render("cd"), cdPath,
		t.Accent.Render(runCommand(manager, "start")))
	fmt.Fprintln(out, t.Muted.Render("Happy hacking!"))
}

// runCommand renders the invocation for a default script. npm needs an
// explicit "run" for anything that is not a builtin subcommand.
func runCommand(manager manifest.PackageManager, script string) string {
	if manager == manifest.ManagerYarn {
		return "yarn " + script
	}
	switch script {
	case "start", "test":
		return "npm " + script
	default:
		return "npm run " + script
	}
}
