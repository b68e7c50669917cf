package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybussiness/bazaar/domain"
	"github.com/mybussiness/bazaar/ledger"
)

func rice() domain.Product {
	return domain.Product{ID: "p1", BusinessID: "b1", Name: "Basmati Rice 5kg", Price: decimal.NewFromInt(1200)}
}

func oil() domain.Product {
	return domain.Product{ID: "p2", BusinessID: "b1", Name: "Sunflower Oil 1L", Price: decimal.NewFromInt(650)}
}

func fullCart() *domain.Cart {
	var c domain.Cart
	c.Add(rice())
	c.Add(rice())
	c.Add(oil())
	return &c
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestPlaceOrder_DirectCheckout(t *testing.T) {
	e := NewEngine()

	cart := fullCart()
	o, err := e.PlaceOrder(cart, "u4", nil)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderPending, o.Status)
	assert.True(t, o.TotalPrice.Equal(decimal.NewFromInt(3050)))
	assert.True(t, o.OriginalPrice.Equal(o.TotalPrice))
	assert.False(t, o.Bargained())
	assert.Equal(t, "b1", o.BusinessID)
	assert.Equal(t, "u4", o.CustomerID)
	require.Len(t, o.Items, 2)
	assert.Equal(t, 2, o.Items[0].Quantity)

	// Placing the order empties the cart.
	assert.Equal(t, 0, cart.Len())
}

func TestPlaceOrder_WithBargain(t *testing.T) {
	e := NewEngine()

	o, err := e.PlaceOrder(fullCart(), "u4", ptr(decimal.NewFromInt(2700)))
	require.NoError(t, err)

	assert.Equal(t, domain.OrderBargaining, o.Status)
	assert.True(t, o.TotalPrice.Equal(decimal.NewFromInt(2700)))
	assert.True(t, o.OriginalPrice.Equal(decimal.NewFromInt(3050)))
	assert.True(t, o.Bargained())
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	e := NewEngine()

	var empty domain.Cart
	_, err := e.PlaceOrder(&empty, "u4", nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrder_PolicyFloor(t *testing.T) {
	e := NewEngine(WithBargainPolicy(BargainPolicy{MinRatio: 0.8}))

	// 2440 is exactly 80% of 3050: allowed.
	_, err := e.PlaceOrder(fullCart(), "u4", ptr(decimal.NewFromInt(2440)))
	assert.NoError(t, err)

	_, err = e.PlaceOrder(fullCart(), "u4", ptr(decimal.NewFromInt(2000)))
	assert.ErrorIs(t, err, ErrBargainTooLow)
}

func TestPlaceOrder_PolicyCap(t *testing.T) {
	capped := NewEngine(WithBargainPolicy(BargainPolicy{CapAtOriginal: true}))
	_, err := capped.PlaceOrder(fullCart(), "u4", ptr(decimal.NewFromInt(4000)))
	assert.ErrorIs(t, err, ErrBargainAboveOriginal)

	// The permissive zero-value policy lets the same offer through.
	open := NewEngine()
	o, err := open.PlaceOrder(fullCart(), "u4", ptr(decimal.NewFromInt(4000)))
	require.NoError(t, err)
	assert.Equal(t, domain.OrderBargaining, o.Status)
}

func TestAccept_FromPendingAndBargaining(t *testing.T) {
	e := NewEngine()

	pending, _ := e.PlaceOrder(fullCart(), "u4", nil)
	require.NoError(t, e.Accept(pending.ID, "u2"))

	bargained, _ := e.PlaceOrder(fullCart(), "u4", ptr(decimal.NewFromInt(2700)))
	require.NoError(t, e.Accept(bargained.ID, "u2"))

	got, _ := e.Get(bargained.ID)
	assert.Equal(t, domain.OrderAccepted, got.Status)
	// An accepted bargain keeps the bargained total.
	assert.True(t, got.TotalPrice.Equal(decimal.NewFromInt(2700)))
}

func TestReject_Cancels(t *testing.T) {
	e := NewEngine()

	o, _ := e.PlaceOrder(fullCart(), "u4", ptr(decimal.NewFromInt(50)))
	require.NoError(t, e.Reject(o.ID, "u2"))

	got, _ := e.Get(o.ID)
	assert.Equal(t, domain.OrderCancelled, got.Status)
	assert.True(t, got.Status.Terminal())
}

func TestFullFulfilmentPath(t *testing.T) {
	e := NewEngine()

	o, _ := e.PlaceOrder(fullCart(), "u4", nil)
	require.NoError(t, e.Accept(o.ID, "u2"))
	require.NoError(t, e.Assign(o.ID, "u3", "u2"))
	require.NoError(t, e.Start(o.ID, "u3"))
	require.NoError(t, e.Finish(o.ID, "u3"))

	got, _ := e.Get(o.ID)
	assert.Equal(t, domain.OrderCompleted, got.Status)
	assert.Equal(t, "u3", got.StaffID)

	// Every hop is recorded in order.
	require.Len(t, got.StatusChanges, 4)
	assert.Equal(t, domain.OrderPending, got.StatusChanges[0].From)
	assert.Equal(t, domain.OrderCompleted, got.StatusChanges[3].To)
}

func TestFinish_DirectlyFromAccepted(t *testing.T) {
	e := NewEngine()

	o, _ := e.PlaceOrder(fullCart(), "u4", nil)
	require.NoError(t, e.Accept(o.ID, "u2"))
	require.NoError(t, e.Finish(o.ID, "u3"))

	got, _ := e.Get(o.ID)
	assert.Equal(t, domain.OrderCompleted, got.Status)
}

func TestTransition_FromTerminalIsRejected(t *testing.T) {
	e := NewEngine()

	o, _ := e.PlaceOrder(fullCart(), "u4", nil)
	require.NoError(t, e.Reject(o.ID, "u2"))

	err := e.Accept(o.ID, "u2")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, domain.OrderCancelled, te.From)
	assert.Equal(t, domain.OrderAccepted, te.To)

	// The failed transition must leave the order untouched.
	got, _ := e.Get(o.ID)
	assert.Equal(t, domain.OrderCancelled, got.Status)
	assert.Len(t, got.StatusChanges, 1)
}

func TestTransition_SkippingStepsIsRejected(t *testing.T) {
	e := NewEngine()

	o, _ := e.PlaceOrder(fullCart(), "u4", nil)

	// Cannot assign or start before acceptance.
	assert.ErrorIs(t, e.Assign(o.ID, "u3", "u2"), ErrInvalidTransition)
	assert.ErrorIs(t, e.Start(o.ID, "u3"), ErrInvalidTransition)
	assert.ErrorIs(t, e.Finish(o.ID, "u3"), ErrInvalidTransition)

	got, _ := e.Get(o.ID)
	assert.Equal(t, domain.OrderPending, got.Status)
}

func TestTransition_UnknownOrder(t *testing.T) {
	e := NewEngine()
	assert.ErrorIs(t, e.Accept("ghost", "u2"), ErrOrderNotFound)
}

func TestOrders_NewestFirst(t *testing.T) {
	e := NewEngine()

	first, _ := e.PlaceOrder(fullCart(), "u4", nil)
	second, _ := e.PlaceOrder(fullCart(), "u4", nil)

	all := e.Orders()
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}

func TestOrdersForStaff_IncludesUnassigned(t *testing.T) {
	e := NewEngine()

	mine, _ := e.PlaceOrder(fullCart(), "u4", nil)
	require.NoError(t, e.Accept(mine.ID, "u2"))
	require.NoError(t, e.Assign(mine.ID, "u3", "u2"))

	other, _ := e.PlaceOrder(fullCart(), "u4", nil)
	require.NoError(t, e.Accept(other.ID, "u2"))
	require.NoError(t, e.Assign(other.ID, "u9", "u2"))

	unassigned, _ := e.PlaceOrder(fullCart(), "u4", nil)

	queue := e.OrdersForStaff("b1", "u3")
	ids := make([]string, len(queue))
	for i, o := range queue {
		ids[i] = o.ID
	}
	assert.Contains(t, ids, mine.ID)
	assert.Contains(t, ids, unassigned.ID)
	assert.NotContains(t, ids, other.ID)
}

func TestActiveOrder(t *testing.T) {
	e := NewEngine()

	_, ok := e.ActiveOrder("u4")
	assert.False(t, ok)

	o, _ := e.PlaceOrder(fullCart(), "u4", nil)
	active, ok := e.ActiveOrder("u4")
	require.True(t, ok)
	assert.Equal(t, o.ID, active.ID)

	require.NoError(t, e.Accept(o.ID, "u2"))
	require.NoError(t, e.Finish(o.ID, "u3"))
	_, ok = e.ActiveOrder("u4")
	assert.False(t, ok)
}

func TestTotalSales_OnlyCompletedCount(t *testing.T) {
	e := NewEngine()

	done, _ := e.PlaceOrder(fullCart(), "u4", ptr(decimal.NewFromInt(2700)))
	require.NoError(t, e.Accept(done.ID, "u2"))
	require.NoError(t, e.Finish(done.ID, "u3"))

	open, _ := e.PlaceOrder(fullCart(), "u4", nil)
	require.NoError(t, e.Accept(open.ID, "u2"))

	cancelled, _ := e.PlaceOrder(fullCart(), "u4", nil)
	require.NoError(t, e.Reject(cancelled.ID, "u2"))

	// Only the completed bargained total counts, at its bargained price.
	assert.True(t, e.TotalSales("b1").Equal(decimal.NewFromInt(2700)),
		"sales = %s", e.TotalSales("b1"))
	assert.True(t, e.TotalSales("").Equal(decimal.NewFromInt(2700)))
	assert.True(t, e.TotalSales("b2").IsZero())
}

func TestTotalSales_DropsWhenStatusReverts(t *testing.T) {
	e := NewEngine()

	o, _ := e.PlaceOrder(fullCart(), "u4", nil)
	require.NoError(t, e.Accept(o.ID, "u2"))
	require.NoError(t, e.Finish(o.ID, "u3"))
	require.True(t, e.TotalSales("b1").Equal(decimal.NewFromInt(3050)))

	// Sales are derived from current status, not from history: force
	// the stored status back and the aggregate follows.
	e.mu.Lock()
	for i := range e.orders {
		if e.orders[i].ID == o.ID {
			e.orders[i].Status = domain.OrderInProgress
		}
	}
	e.mu.Unlock()

	assert.True(t, e.TotalSales("b1").IsZero())
	assert.Equal(t, 1, e.PipelineCount("b1"))
}

func TestPipelineCount(t *testing.T) {
	e := NewEngine()

	a, _ := e.PlaceOrder(fullCart(), "u4", nil)
	b, _ := e.PlaceOrder(fullCart(), "u4", nil)
	assert.Equal(t, 2, e.PipelineCount("b1"))

	require.NoError(t, e.Accept(a.ID, "u2"))
	require.NoError(t, e.Finish(a.ID, "u3"))
	assert.Equal(t, 1, e.PipelineCount("b1"))

	require.NoError(t, e.Reject(b.ID, "u2"))
	assert.Equal(t, 0, e.PipelineCount("b1"))
}

func TestNetProfit(t *testing.T) {
	led := ledger.New()
	e := NewEngine(WithLedger(led))

	o, _ := e.PlaceOrder(fullCart(), "u4", nil)
	require.NoError(t, e.Accept(o.ID, "u2"))
	require.NoError(t, e.Finish(o.ID, "u3"))

	led.AddExpense(ledger.ExpenseInput{BusinessID: "b1", Amount: decimal.NewFromInt(500), Category: "Logistics"})

	assert.True(t, e.NetProfit("b1").Equal(decimal.NewFromInt(2550)),
		"profit = %s", e.NetProfit("b1"))
}

func TestTransition_TimestampsUseClock(t *testing.T) {
	fixed := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	e := NewEngine(WithClock(func() time.Time { return fixed }))

	o, _ := e.PlaceOrder(fullCart(), "u4", nil)
	assert.Equal(t, fixed, o.CreatedAt)

	require.NoError(t, e.Accept(o.ID, "u2"))
	got, _ := e.Get(o.ID)
	require.Len(t, got.StatusChanges, 1)
	assert.Equal(t, fixed, got.StatusChanges[0].Timestamp)
}
