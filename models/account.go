package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID        string          `json:"id"`
	UserID    string          `json:"-"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

type CreateAccountRequest struct {
	Name    string          `json:"name" binding:"required"`
	Type    string          `json:"type" binding:"omitempty,oneof=checking savings credit investment cash"`
	Balance decimal.Decimal `json:"balance"`
}

type UpdateAccountRequest struct {
	Name    string          `json:"name" binding:"required"`
	Type    string          `json:"type" binding:"omitempty,oneof=checking savings credit investment cash"`
	Balance decimal.Decimal `json:"balance"`
}
