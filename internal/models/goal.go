package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal is a savings target. CurrentAmount stays within
// [0, TargetAmount] as long as progress is added through the
// add-amount operation.
type Goal struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"index;not null" json:"user_id"`
	Name          string          `gorm:"size:100;not null" json:"name"`
	TargetAmount  decimal.Decimal `gorm:"type:numeric;not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:numeric;not null" json:"current_amount"`
	Color         string          `gorm:"size:7;not null" json:"color"`
	Icon          string          `gorm:"size:100" json:"icon"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"deleted_at"`
}

// PercentComplete returns the goal progress as a percentage rounded to
// two decimals. A zero target reads as zero percent.
func (g *Goal) PercentComplete() decimal.Decimal {
	if g.TargetAmount.IsZero() {
		return decimal.Zero
	}
	return g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2)
}
