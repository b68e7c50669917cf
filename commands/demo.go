package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mybussiness/bazaar/catalog"
	"github.com/mybussiness/bazaar/domain"
	"github.com/mybussiness/bazaar/fixture"
	"github.com/mybussiness/bazaar/ledger"
	"github.com/mybussiness/bazaar/view"
)

// NewDemoCommand runs the scripted end-to-end marketplace scenario:
// a customer bargains on a grocery cart, the merchant accepts, staff
// completes the order, and the owner reads the resulting report.
func NewDemoCommand(app *App) *cobra.Command {
	var bargain int64

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the scripted marketplace demo scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, app, bargain)
		},
	}

	cmd.Flags().Int64Var(&bargain, "bargain", 2700, "Customer counter-offer in PKR (0 = direct checkout)")
	return cmd
}

func runDemo(cmd *cobra.Command, app *App, bargain int64) error {
	out := cmd.OutOrStdout()

	customer, _ := fixture.UserByEmail("abdullah@gmail.com")
	owner, _ := fixture.UserByEmail("owner@shop.com")
	staff, _ := fixture.UserByEmail("danyial@shop.com")

	rice, ok := app.Catalog.Product("p1")
	if !ok {
		return fmt.Errorf("fixture product p1 missing")
	}
	oil, ok := app.Catalog.Product("p2")
	if !ok {
		return fmt.Errorf("fixture product p2 missing")
	}

	// Customer view: only approved businesses are shoppable.
	v := view.Compose(customer)
	fmt.Fprintf(out, "%s logs in as %s (%s view)\n", customer.Name, customer.Role, v.Kind)
	for _, b := range app.Catalog.ListBusinesses(catalog.BusinessFilter{ApprovedOnly: true}) {
		fmt.Fprintf(out, "  open shop: %s (%s) — rating %.1f\n", b.Name, b.Type, b.Rating)
	}

	// Build the cart: 2x rice + 1x oil.
	var cart domain.Cart
	cart.Add(rice)
	cart.Add(rice)
	cart.Add(oil)
	fmt.Fprintf(out, "\nCart total: Rs. %s\n", cart.Total().StringFixed(0))

	var offer *decimal.Decimal
	if bargain > 0 {
		d := decimal.NewFromInt(bargain)
		offer = &d
		fmt.Fprintf(out, "Customer submits bargain: Rs. %s\n", d.StringFixed(0))
	}

	o, err := app.Orders.PlaceOrder(&cart, customer.ID, offer)
	if err != nil {
		return fmt.Errorf("place order: %w", err)
	}
	fmt.Fprintf(out, "✓ Order %s placed: %s (original Rs. %s, total Rs. %s)\n",
		shortID(o.ID), o.Status, o.OriginalPrice.StringFixed(0), o.TotalPrice.StringFixed(0))

	// Merchant accepts, dispatches staff, staff fulfils.
	if err := app.Orders.Accept(o.ID, owner.ID); err != nil {
		return fmt.Errorf("accept order: %w", err)
	}
	fmt.Fprintf(out, "✓ %s accepts the order\n", owner.Name)

	app.Ledger.MarkAttendance(staff.ID, staff.BusinessID, domain.AttendancePresent)
	if err := app.Orders.Assign(o.ID, staff.ID, owner.ID); err != nil {
		return fmt.Errorf("assign order: %w", err)
	}
	if err := app.Orders.Start(o.ID, staff.ID); err != nil {
		return fmt.Errorf("start order: %w", err)
	}
	fmt.Fprintf(out, "✓ %s clocks in and starts the delivery\n", staff.Name)

	if err := app.Orders.Finish(o.ID, staff.ID); err != nil {
		return fmt.Errorf("finish order: %w", err)
	}
	fmt.Fprintf(out, "✓ %s completes the order\n", staff.Name)

	// Customer rates the rice after completion.
	if err := app.Catalog.RateProduct(rice.ID, 5); err != nil {
		return fmt.Errorf("rate product: %w", err)
	}
	rated, _ := app.Catalog.Product(rice.ID)
	avg, count := rated.AverageRating()
	fmt.Fprintf(out, "✓ Customer rates %s: now %.1f over %d ratings\n", rated.Name, avg, count)

	// A lowball counter-offer on apples gets turned down.
	apples, ok := app.Catalog.Product("p3")
	if ok {
		var second domain.Cart
		second.Add(apples)
		lowball := decimal.NewFromInt(50)
		if o2, err := app.Orders.PlaceOrder(&second, customer.ID, &lowball); err == nil {
			if err := app.Orders.Reject(o2.ID, owner.ID); err != nil {
				return fmt.Errorf("reject order: %w", err)
			}
			fmt.Fprintf(out, "✗ %s rejects a Rs. 50 offer on %s\n", owner.Name, apples.Name)
		}
	}

	// Owner records the day's expenses and reads the report.
	app.Ledger.AddExpense(ledger.ExpenseInput{
		BusinessID: o.BusinessID,
		Amount:     decimal.NewFromInt(500),
		Category:   "Logistics",
		Note:       "Rickshaw delivery",
	})

	fmt.Fprintf(out, "\nReport for %s:\n", o.BusinessID)
	fmt.Fprintf(out, "  total sales:    Rs. %s\n", app.Orders.TotalSales(o.BusinessID).StringFixed(0))
	fmt.Fprintf(out, "  total expenses: Rs. %s\n", app.Ledger.TotalExpenses(o.BusinessID).StringFixed(0))
	fmt.Fprintf(out, "  net profit:     Rs. %s\n", app.Orders.NetProfit(o.BusinessID).StringFixed(0))
	fmt.Fprintf(out, "  live pipeline:  %d\n", app.Orders.PipelineCount(o.BusinessID))

	return nil
}

func shortID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}
