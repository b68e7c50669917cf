package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mybussiness/bazaar/config"
)

// NewConfigCommand inspects and bootstraps configuration.
func NewConfigCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage bazaar configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(app.Config)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default user config if none exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader(app.Logger)
			if err := loader.EnsureUserConfig(); err != nil {
				return fmt.Errorf("failed to initialise config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "User configuration ready.")
			return nil
		},
	})

	return cmd
}
