package main

import (
	"os"

	"github.com/sprouttools/sprout/cli"
	"github.com/sprouttools/sprout/cmd"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"sprout",
		"Initialize scaffolded apps from installable templates",
	)

	rootCmd.AddCommand(cmd.NewInitCmd())
	rootCmd.AddCommand(cmd.NewInfoCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())
	rootCmd.AddCommand(cmd.NewPathsCmd())

	cli.ApplyStyledHelpRecursive(rootCmd)

	os.Exit(cli.Execute(rootCmd))
}
