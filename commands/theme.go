package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mybussiness/bazaar/prefs"
)

// NewThemeCommand manages the persisted dark-mode preference.
func NewThemeCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Manage display preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Prefs.Load(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), themeName(app.Prefs.Current()))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Flip between light and dark mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Prefs.Load(); err != nil {
				return err
			}
			dark, err := app.Prefs.Toggle()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), themeName(prefs.Prefs{DarkMode: dark}))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "watch",
		Short: "Watch the prefs file and print theme changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Prefs.Load(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, themeName(app.Prefs.Current()))
			return app.Prefs.Watch(cmd.Context(), func(p prefs.Prefs) {
				fmt.Fprintln(out, themeName(p))
			})
		},
	})

	return cmd
}

func themeName(p prefs.Prefs) string {
	if p.DarkMode {
		return "dark"
	}
	return "light"
}
