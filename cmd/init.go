// Package cmd holds the sprout subcommands.
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sprouttools/sprout/bootstrap"
	"github.com/sprouttools/sprout/cli"
	"github.com/sprouttools/sprout/config"
	"github.com/sprouttools/sprout/errors"
)

// NewInitCmd creates the init command, which runs the post-scaffold
// initialization workflow against an app directory.
func NewInitCmd() *cobra.Command {
	var (
		templateName string
		originalDir  string
	)

	cmd := &cobra.Command{
		Use:   "init <app-path> <app-name>",
		Short: "Initialize a scaffolded app from a template",
		Long: `Initialize a freshly scaffolded app directory from an installed
template package: copy the template's file tree, merge its manifest
fields into package.json, install its dependencies, remove the
template package, and create an initial git commit.

Examples:
  # Initialize my-app from the typescript template
  sprout init ./my-app my-app --template typescript

  # Use a scoped custom template
  sprout init ./my-app my-app --template @acme/internal`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			logger := cli.GetLogger(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			appPath, err := filepath.Abs(args[0])
			if err != nil {
				return handler.Handle(err)
			}
			appName := args[1]

			if templateName == "" {
				return handler.Handle(errors.TemplateRequired())
			}

			var cfg *config.Config
			if opts.ConfigFile != "" {
				cfg, err = config.Load(opts.ConfigFile)
			} else {
				cfg, err = config.LoadFromWithLogger(appPath, logger)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeConfigNotFound) {
				return handler.Handle(err)
			}

			if originalDir == "" {
				originalDir, _ = os.Getwd()
			}

			err = bootstrap.Run(cmd.Context(), bootstrap.Options{
				AppPath:           appPath,
				AppName:           appName,
				TemplateName:      templateName,
				OriginalDirectory: originalDir,
				Verbose:           opts.Verbose,
				Config:            cfg,
			})
			if err != nil {
				return handler.Handle(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateName, "template", "t", "", "Template package to initialize from (required)")
	cmd.Flags().StringVar(&originalDir, "original-dir", "", "Directory the scaffold was started from, for relative guidance paths")

	return cmd
}
