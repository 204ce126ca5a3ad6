package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"syllabuscal/internal/config"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the syllabuscal config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Long: `Write the default config file to --config.

The file holds the OCR endpoint, API key, timeout and escalation trigger,
and the default calendar name. An existing file is kept unless --force
is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(root.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", root.configPath)
			}
			if err := config.Save(root.configPath, config.DefaultConfig()); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", root.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	cmd.AddCommand(initCmd)
	return cmd
}
