package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FixedExpense is the recurring-expense template. It is the single source of
// truth for every month until an ExpenseOverride shadows its amount for one
// specific period.
type FixedExpense struct {
	ID         string          `json:"id"`
	UserID     string          `json:"-"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Category   *string         `json:"category"`
	DayOfMonth *int            `json:"day_of_month"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ExpenseOverride is a per-period amount exception. At most one row exists
// per (user, fixed expense, month, year); absence means the template amount
// applies.
type ExpenseOverride struct {
	ID             string          `json:"id"`
	FixedExpenseID string          `json:"fixed_expense_id"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	Amount         decimal.Decimal `json:"amount"`
}

// MonthlyExpenseStatus is the per-period paid marker. Absence means pending.
type MonthlyExpenseStatus struct {
	FixedExpenseID string `json:"fixed_expense_id"`
	Month          int    `json:"month"`
	Year           int    `json:"year"`
	IsPaid         bool   `json:"is_paid"`
}

// MonthlyExpense is the materialized month view of a template: template
// defaults merged with that month's override and paid status. It is derived
// on every read and never stored.
type MonthlyExpense struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	IsOverride     bool            `json:"is_override"`
	FixedExpenseID string          `json:"fixed_expense_id"`
	Category       *string         `json:"category"`
	DayOfMonth     *int            `json:"day_of_month"`
	IsPaid         bool            `json:"is_paid"`
}

// MonthlyTotal is one row of the yearly fixed-expense view.
type MonthlyTotal struct {
	Month  int             `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

type CreateFixedExpenseRequest struct {
	Name       string          `json:"name" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Category   *string         `json:"category"`
	DayOfMonth *int            `json:"day_of_month" binding:"omitempty,min=1,max=31"`
}

type UpdateFixedExpenseRequest struct {
	Name       string          `json:"name" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Category   *string         `json:"category"`
	DayOfMonth *int            `json:"day_of_month" binding:"omitempty,min=1,max=31"`
}

// UpdateMonthlyExpenseRequest is the "edit this month only" action: a new
// amount and paid flag scoped to a single period, leaving the template alone.
type UpdateMonthlyExpenseRequest struct {
	Month  int             `json:"month" binding:"required,min=1,max=12"`
	Year   int             `json:"year" binding:"required,min=1"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	IsPaid bool            `json:"is_paid"`
}

type SetPaidStatusRequest struct {
	Month  int  `json:"month" binding:"required,min=1,max=12"`
	Year   int  `json:"year" binding:"required,min=1"`
	IsPaid bool `json:"is_paid"`
}

type CopyMonthlyExpensesRequest struct {
	SourceMonth int `json:"source_month" binding:"required,min=1,max=12"`
	SourceYear  int `json:"source_year" binding:"required,min=1"`
	DestMonth   int `json:"dest_month" binding:"required,min=1,max=12"`
	DestYear    int `json:"dest_year" binding:"required,min=1"`
}
