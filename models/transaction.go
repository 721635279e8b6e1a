package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a variable entry. Negative amounts are expenses, positive
// amounts are revenues.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"-"`
	AccountID   *string         `json:"account_id"`
	AccountName *string         `json:"account_name,omitempty"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Category    *string         `json:"category"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

type CreateTransactionRequest struct {
	AccountID *string         `json:"account_id"`
	Name      string          `json:"name" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Category  *string         `json:"category"`
	Date      time.Time       `json:"date" binding:"required"`
}

type UpdateTransactionRequest struct {
	AccountID *string         `json:"account_id"`
	Name      string          `json:"name" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Category  *string         `json:"category"`
	Date      time.Time       `json:"date" binding:"required"`
}
