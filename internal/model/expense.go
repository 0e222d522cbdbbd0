package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a budget entry in the expense tracker. Expenses are
// append-only: no edit or delete route exists.
type Expense struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Category  string          `json:"category" gorm:"size:100;not null"`
	CreatedAt time.Time       `json:"created_at"`
}
