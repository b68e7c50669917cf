package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mybussiness/bazaar/fixture"
	"github.com/mybussiness/bazaar/view"
)

// NewViewCommand shows which dashboard a demo user lands on and what
// they are allowed to do there.
func NewViewCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <email>",
		Short: "Show the dashboard and capabilities for a demo user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			user, ok := fixture.UserByEmail(args[0])
			if !ok {
				return fmt.Errorf("no demo user with email %q", args[0])
			}

			v := view.Compose(user)
			fmt.Fprintf(out, "%s (%s) → %s view\n", user.Name, user.Role, v.Kind)
			if v.BusinessID != "" {
				fmt.Fprintf(out, "scoped to business %s\n", v.BusinessID)
			}
			for _, c := range v.Capabilities() {
				fmt.Fprintf(out, "  can: %s\n", c)
			}
			if v.ReportsDenied {
				fmt.Fprintln(out, "  reports: access denied")
			}
			return nil
		},
	}
	return cmd
}
