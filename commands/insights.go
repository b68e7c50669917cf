package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mybussiness/bazaar/assistant"
	"github.com/mybussiness/bazaar/catalog"
	"github.com/mybussiness/bazaar/domain"
)

// NewInsightsCommand produces an AI growth tip for a business from its
// current order, catalog and expense figures.
func NewInsightsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights <business>",
		Short: "Generate a growth insight for a business",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			business, err := findBusiness(app, args[0])
			if err != nil {
				return err
			}

			snapshot := assistant.Metrics{
				Orders:   len(app.Orders.OrdersForBusiness(business.ID)),
				Products: len(app.Catalog.ListProducts(catalog.ProductFilter{BusinessID: business.ID})),
				Rating:   business.Rating,
				Type:     business.Type,
				Expenses: app.Ledger.TotalExpenses(business.ID),
			}

			res := app.Assistant.BusinessInsights(cmd.Context(), snapshot)
			fmt.Fprintf(out, "Insight for %s:\n%s\n", business.Name, res.Text)
			if res.Degraded {
				fmt.Fprintln(out, "(offline fallback — model API unavailable)")
			}
			return nil
		},
	}
	return cmd
}

// findBusiness resolves a business either by exact id or by
// case-insensitive name match.
func findBusiness(app *App, key string) (domain.Business, error) {
	if b, ok := app.Catalog.Business(key); ok {
		return b, nil
	}
	for _, b := range app.Catalog.ListBusinesses(catalog.BusinessFilter{Search: key}) {
		if strings.Contains(strings.ToLower(b.Name), strings.ToLower(key)) {
			return b, nil
		}
	}
	return domain.Business{}, fmt.Errorf("no business matches %q", key)
}
