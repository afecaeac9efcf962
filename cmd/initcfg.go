package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/overtype/internal/config"
	"github.com/zjrosen/overtype/internal/paths"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default config file",
	Long:  `Write the built-in default configuration to the given path, or to .overtype/config.yaml when no path is given. Refuses to overwrite an existing file.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := paths.ProjectConfigFile
	if len(args) == 1 {
		path = args[0]
	}

	if err := config.WriteDefaultConfig(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
