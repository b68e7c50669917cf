package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mybussiness/bazaar/catalog"
)

// NewCatalogCommand lists and searches the product catalog.
func NewCatalogCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse businesses and products",
	}

	cmd.AddCommand(newCatalogProductsCommand(app))
	cmd.AddCommand(newCatalogBusinessesCommand(app))
	cmd.AddCommand(newCatalogSuggestCommand(app))
	return cmd
}

func newCatalogProductsCommand(app *App) *cobra.Command {
	var (
		category   string
		search     string
		businessID string
	)

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			products := app.Catalog.ListProducts(catalog.ProductFilter{
				Category:   category,
				Search:     search,
				BusinessID: businessID,
			})
			if len(products) == 0 {
				fmt.Fprintln(out, "No products match.")
				return nil
			}
			for _, p := range products {
				avg, count := p.AverageRating()
				fmt.Fprintf(out, "%-20s  %-10s  Rs. %-8s  stock %-4d  %.1f★ (%d)\n",
					p.Name, p.Category, p.Price.StringFixed(0), p.Stock, avg, count)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", catalog.CategoryAll, "Exact category filter")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive substring search")
	cmd.Flags().StringVar(&businessID, "business", "", "Restrict to one business id")
	return cmd
}

func newCatalogBusinessesCommand(app *App) *cobra.Command {
	var approvedOnly bool

	cmd := &cobra.Command{
		Use:   "businesses",
		Short: "List businesses",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, b := range app.Catalog.ListBusinesses(catalog.BusinessFilter{ApprovedOnly: approvedOnly}) {
				status := "pending approval"
				if b.IsApproved {
					status = "approved"
				}
				fmt.Fprintf(out, "%-25s  %-22s  %.1f★  %s\n", b.Name, b.Type, b.Rating, status)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&approvedOnly, "approved", false, "Only approved businesses")
	return cmd
}

func newCatalogSuggestCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Debounced search suggestions across businesses and products",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			done := make(chan []catalog.Suggestion, 1)

			app.Suggester.Query(args[0], func(results []catalog.Suggestion) {
				done <- results
			})

			select {
			case results := <-done:
				if len(results) == 0 {
					fmt.Fprintln(out, "No suggestions.")
					return nil
				}
				for _, s := range results {
					switch s.Kind {
					case catalog.SuggestionBusiness:
						fmt.Fprintf(out, "[shop]    %s\n", s.Business.Name)
					case catalog.SuggestionProduct:
						fmt.Fprintf(out, "[product] %s — Rs. %s\n", s.Product.Name, s.Product.Price.StringFixed(0))
					}
				}
				return nil
			case <-time.After(5 * time.Second):
				return fmt.Errorf("suggestion lookup timed out")
			}
		},
	}
	return cmd
}
