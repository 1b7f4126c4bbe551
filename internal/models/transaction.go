package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction is a single ledger record. Amount is always positive; the
// direction of the money movement is carried by Type.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"index;not null" json:"user_id"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Type        string          `gorm:"size:16;index;not null" json:"type"` // income / expense
	CategoryID  uint            `gorm:"index;not null" json:"category_id"`
	OccurredAt  time.Time       `gorm:"index;not null" json:"occurred_at"` // when the money actually moved
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"deleted_at"`
}
