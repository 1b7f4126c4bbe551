package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is the denormalized per-user summary derived from the
// transaction ledger. It is never authoritative: every field is
// overwritten by a full recompute after each ledger mutation, so
// CurrentBalance always equals TotalIncome - TotalExpenses.
type Balance struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	UserID              uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	CurrentBalance      decimal.Decimal `gorm:"type:numeric;not null" json:"current_balance"`
	MonthlyIncome       decimal.Decimal `gorm:"type:numeric;not null" json:"monthly_income"`
	MonthlyExpenses     decimal.Decimal `gorm:"type:numeric;not null" json:"monthly_expenses"`
	TotalIncome         decimal.Decimal `gorm:"type:numeric;not null" json:"total_income"`
	TotalExpenses       decimal.Decimal `gorm:"type:numeric;not null" json:"total_expenses"`
	DailyAverageExpense decimal.Decimal `gorm:"type:numeric;not null" json:"daily_average_expense"`
	LastTransactionDate *time.Time      `json:"last_transaction_date"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// MonthlyNet is the current month's income minus expenses, rounded to
// two decimals. Computed at read time, never stored.
func (b *Balance) MonthlyNet() decimal.Decimal {
	return b.MonthlyIncome.Sub(b.MonthlyExpenses).Round(2)
}

// TotalNet is the all-time income minus expenses, rounded to two
// decimals.
func (b *Balance) TotalNet() decimal.Decimal {
	return b.TotalIncome.Sub(b.TotalExpenses).Round(2)
}

// ProjectedMonthEndBalance extrapolates the balance to the end of the
// month from the daily average spend. The month is assumed to be 30
// days long regardless of the calendar.
func (b *Balance) ProjectedMonthEndBalance(now time.Time) decimal.Decimal {
	daysRemaining := int64(30 - now.UTC().Day())
	projected := b.DailyAverageExpense.Mul(decimal.NewFromInt(daysRemaining))
	return b.CurrentBalance.Sub(projected).Round(2)
}
