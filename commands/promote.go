package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mybussiness/bazaar/catalog"
)

// NewPromoteCommand generates marketing copy for a product.
func NewPromoteCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promote <product>",
		Short: "Generate a short promotion for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			products := app.Catalog.ListProducts(catalog.ProductFilter{Search: args[0]})
			if len(products) == 0 {
				return fmt.Errorf("no product matches %q", args[0])
			}
			product := products[0]

			business, ok := app.Catalog.Business(product.BusinessID)
			if !ok {
				return fmt.Errorf("product %q has no business", product.Name)
			}

			res := app.Assistant.GeneratePromotion(cmd.Context(), product.Name, business.Type)
			fmt.Fprintln(out, res.Text)
			if res.Degraded {
				fmt.Fprintln(out, "(offline fallback — model API unavailable)")
			}
			return nil
		},
	}
	return cmd
}
