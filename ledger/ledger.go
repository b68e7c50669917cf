// Package ledger keeps the append-only expense records of each
// business, plus staff attendance. Records are never updated or
// deleted; aggregates are recomputed from the full record set.
package ledger

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mybussiness/bazaar/domain"
)

// expenseCategories is the option list offered at the input boundary.
// The store itself accepts any free-form label.
var expenseCategories = []string{
	"Supplies",
	"Salaries",
	"Rent",
	"Utilities",
	"Marketing",
	"Logistics",
	"Maintenance",
	"Miscellaneous",
}

// Categories returns the expense category option list.
func Categories() []string {
	return append([]string(nil), expenseCategories...)
}

// ExpenseInput is what a business admin submits when recording an expense.
type ExpenseInput struct {
	BusinessID string
	Amount     decimal.Decimal
	Category   string
	Note       string
}

// Ledger is the append-only expense and attendance store.
type Ledger struct {
	mu         sync.RWMutex
	expenses   []domain.Expense
	attendance []domain.Attendance
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// WithClock overrides the time source. Mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// New creates an empty ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddExpense appends a timestamped expense record and returns it.
// Category is not validated here; the option list constrains input
// forms only.
func (l *Ledger) AddExpense(in ExpenseInput) domain.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := domain.Expense{
		ID:         uuid.New().String(),
		BusinessID: in.BusinessID,
		Amount:     in.Amount,
		Category:   in.Category,
		Note:       in.Note,
		Date:       l.now(),
	}
	l.expenses = append([]domain.Expense{e}, l.expenses...)
	l.logger.Debug("Expense recorded",
		"expense_id", e.ID,
		"business_id", e.BusinessID,
		"amount", e.Amount.String(),
		"category", e.Category)
	return e
}

// Entries returns the expenses of one business, newest first.
func (l *Ledger) Entries(businessID string) []domain.Expense {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []domain.Expense
	for _, e := range l.expenses {
		if e.BusinessID == businessID {
			out = append(out, e)
		}
	}
	return out
}

// TotalExpenses sums all expense amounts for one business.
func (l *Ledger) TotalExpenses(businessID string) decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := decimal.Zero
	for _, e := range l.expenses {
		if e.BusinessID == businessID {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// MarkAttendance appends a dated attendance record for a staff member.
func (l *Ledger) MarkAttendance(staffID, businessID string, status domain.AttendanceStatus) domain.Attendance {
	l.mu.Lock()
	defer l.mu.Unlock()

	a := domain.Attendance{
		ID:         uuid.New().String(),
		StaffID:    staffID,
		BusinessID: businessID,
		Date:       l.now(),
		Status:     status,
	}
	l.attendance = append(l.attendance, a)
	return a
}

// AttendanceFor returns all attendance records of one staff member.
func (l *Ledger) AttendanceFor(staffID string) []domain.Attendance {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []domain.Attendance
	for _, a := range l.attendance {
		if a.StaffID == staffID {
			out = append(out, a)
		}
	}
	return out
}
