package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sprouttools/sprout/cli"
	"github.com/sprouttools/sprout/state"
	"github.com/sprouttools/sprout/theme"
)

// NewInfoCmd creates the info command, which prints the scaffold
// record of a sprout-generated app.
func NewInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [app-path]",
		Short: "Show how an app was scaffolded",
		Long: `Show the scaffold record of a sprout-generated app: the template it
was created from, the package manager used, and when it was created.

Examples:
  # Inspect the current directory
  sprout info

  # Inspect another app
  sprout info ./my-app`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			dir, err := filepath.Abs(dir)
			if err != nil {
				return err
			}

			record, ok, err := state.ReadRecord(dir)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no scaffold record found in %s", dir)
			}

			opts := cli.GetOptions(cmd)
			if opts.JSONOutput {
				data, err := json.MarshalIndent(record, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			t := theme.DefaultTheme
			fmt.Printf("%s  %s\n", t.Muted.Render("Template:"), record.Template)
			fmt.Printf("%s   %s\n", t.Muted.Render("Manager:"), record.Manager)
			fmt.Printf("%s   %s\n", t.Muted.Render("Version:"), record.Version)
			fmt.Printf("%s   %s\n", t.Muted.Render("Created:"), record.CreatedAt.Format("2006-01-02 15:04:05 MST"))
			return nil
		},
	}
}
