package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"searchrank/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default searchrank.yaml",
	Long: `Write the default configuration to searchrank.yaml in the working directory.

Examples:
  searchrank init
  searchrank init --dir ./deploy --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := writeDefaultConfig(rootDir, initForce)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}

func writeDefaultConfig(dir string, force bool) (string, error) {
	path := filepath.Join(dir, "searchrank.yaml")
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}
