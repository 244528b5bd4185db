package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sprouttools/sprout/paths"
)

// PathsOutput represents the XDG-compliant paths used by sprout.
type PathsOutput struct {
	ConfigDir    string `json:"config_dir"`
	DataDir      string `json:"data_dir"`
	StateDir     string `json:"state_dir"`
	CacheDir     string `json:"cache_dir"`
	TemplatesDir string `json:"templates_dir"`
}

// NewPathsCmd creates the paths command.
func NewPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the XDG-compliant paths used by sprout",
		Long: `Print the XDG-compliant paths used by sprout.

This command outputs the paths in JSON format, making it easy to parse
from scripts and other tools.

The paths follow the XDG Base Directory Specification:
- config_dir: Configuration files (sprout.yml)
- data_dir: Persistent data
- state_dir: Runtime state (logs)
- cache_dir: Temporary/regenerable data
- templates_dir: Locally stored template packages (subdirectory of data_dir)

Missing directories are created, so scripts can rely on every printed
path existing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := paths.EnsureDirs(); err != nil {
				return fmt.Errorf("failed to create sprout directories: %w", err)
			}

			output := PathsOutput{
				ConfigDir:    paths.ConfigDir(),
				DataDir:      paths.DataDir(),
				StateDir:     paths.StateDir(),
				CacheDir:     paths.CacheDir(),
				TemplatesDir: paths.TemplatesDir(),
			}

			jsonData, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal paths to JSON: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		},
	}
}
