package models

import "github.com/shopspring/decimal"

// MonthlySummary backs the dashboard stat cards and charts for one month.
type MonthlySummary struct {
	Month         int                `json:"month"`
	Year          int                `json:"year"`
	TotalBalance  decimal.Decimal    `json:"total_balance"`
	TotalExpenses decimal.Decimal    `json:"total_expenses"`
	TotalRevenues decimal.Decimal    `json:"total_revenues"`
	FixedExpenses decimal.Decimal    `json:"fixed_expenses"`
	PaidFixed     int                `json:"paid_fixed"`
	PendingFixed  int                `json:"pending_fixed"`
	ByCategory    []CategorySpending `json:"by_category"`
}

// CategorySpending is one slice of the spending-by-category chart.
// Uncategorized spending is grouped under an empty name.
type CategorySpending struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}
