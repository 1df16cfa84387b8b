package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/podgraph/pkg/config"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the config file",
		Args:  cobra.NoArgs,
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), configFile(root))
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := configFile(root)
			if p == "" {
				return fmt.Errorf("cannot determine config directory")
			}
			if _, err := os.Stat(p); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", p)
			}
			cfg := config.DefaultConfig()
			var err error
			if root.config == "" {
				err = config.Save(cfg)
			} else {
				err = config.SaveTo(cfg, p)
			}
			if err != nil {
				return err
			}
			Good.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", p)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.AddCommand(path, initCmd)
	return cmd
}

func configFile(root *rootOptions) string {
	if root.config != "" {
		return root.config
	}
	return config.ConfigPath()
}
