package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybussiness/bazaar/domain"
	"github.com/mybussiness/bazaar/ledger"
)

func TestLedger_AddExpense(t *testing.T) {
	fixed := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	l := ledger.New(ledger.WithClock(func() time.Time { return fixed }))

	e := l.AddExpense(ledger.ExpenseInput{
		BusinessID: "b1",
		Amount:     decimal.NewFromInt(500),
		Category:   "Logistics",
		Note:       "Rickshaw delivery",
	})

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "b1", e.BusinessID)
	assert.Equal(t, fixed, e.Date)

	entries := l.Entries("b1")
	require.Len(t, entries, 1)
	assert.Equal(t, e.ID, entries[0].ID)
}

func TestLedger_EntriesNewestFirst(t *testing.T) {
	l := ledger.New()

	first := l.AddExpense(ledger.ExpenseInput{BusinessID: "b1", Amount: decimal.NewFromInt(100), Category: "Rent"})
	second := l.AddExpense(ledger.ExpenseInput{BusinessID: "b1", Amount: decimal.NewFromInt(200), Category: "Supplies"})

	entries := l.Entries("b1")
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)
}

func TestLedger_TotalExpenses_PerBusiness(t *testing.T) {
	l := ledger.New()

	l.AddExpense(ledger.ExpenseInput{BusinessID: "b1", Amount: decimal.NewFromInt(500), Category: "Logistics"})
	l.AddExpense(ledger.ExpenseInput{BusinessID: "b1", Amount: decimal.NewFromFloat(249.50), Category: "Supplies"})
	l.AddExpense(ledger.ExpenseInput{BusinessID: "b2", Amount: decimal.NewFromInt(9999), Category: "Rent"})

	assert.True(t, l.TotalExpenses("b1").Equal(decimal.NewFromFloat(749.50)),
		"b1 total = %s", l.TotalExpenses("b1"))
	assert.True(t, l.TotalExpenses("b2").Equal(decimal.NewFromInt(9999)))
	assert.True(t, l.TotalExpenses("b3").IsZero())
}

func TestLedger_Attendance(t *testing.T) {
	l := ledger.New()

	l.MarkAttendance("u3", "b1", domain.AttendancePresent)
	l.MarkAttendance("u3", "b1", domain.AttendanceLate)
	l.MarkAttendance("u7", "b1", domain.AttendanceAbsent)

	records := l.AttendanceFor("u3")
	require.Len(t, records, 2)
	assert.Equal(t, domain.AttendancePresent, records[0].Status)
	assert.Equal(t, domain.AttendanceLate, records[1].Status)

	assert.Empty(t, l.AttendanceFor("u99"))
}

func TestCategories_ReturnsACopy(t *testing.T) {
	cats := ledger.Categories()
	require.NotEmpty(t, cats)
	assert.Contains(t, cats, "Logistics")

	cats[0] = "Tampered"
	assert.NotContains(t, ledger.Categories(), "Tampered")
}
