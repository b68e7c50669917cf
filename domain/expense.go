package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is an append-only ledger record for a business.
type Expense struct {
	ID         string          `json:"id"`
	BusinessID string          `json:"business_id"`
	Amount     decimal.Decimal `json:"amount"`
	Category   string          `json:"category"`
	Note       string          `json:"note"`
	Date       time.Time       `json:"date"`
}

// AttendanceStatus marks a staff member's presence for a day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
)

// Attendance is a per-day staff presence record.
type Attendance struct {
	ID         string           `json:"id"`
	StaffID    string           `json:"staff_id"`
	BusinessID string           `json:"business_id"`
	Date       time.Time        `json:"date"`
	Status     AttendanceStatus `json:"status"`
}
