package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestBalanceDerivedProjections(t *testing.T) {
	b := &Balance{
		CurrentBalance:      decimal.NewFromInt(3500),
		MonthlyIncome:       decimal.NewFromInt(5000),
		MonthlyExpenses:     decimal.NewFromInt(1500),
		TotalIncome:         decimal.NewFromInt(8000),
		TotalExpenses:       decimal.NewFromInt(2500),
		DailyAverageExpense: decimal.NewFromInt(100),
	}

	if got := b.MonthlyNet(); !got.Equal(decimal.NewFromInt(3500)) {
		t.Errorf("MonthlyNet() = %s, want 3500", got)
	}
	if got := b.TotalNet(); !got.Equal(decimal.NewFromInt(5500)) {
		t.Errorf("TotalNet() = %s, want 5500", got)
	}

	// day 10 of a 30-day month: 20 days remain at 100/day
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	if got := b.ProjectedMonthEndBalance(now); !got.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("ProjectedMonthEndBalance() = %s, want 1500", got)
	}

	// day 31 overshoots the fixed 30-day month and projects one day back
	eom := time.Date(2024, 7, 31, 8, 0, 0, 0, time.UTC)
	if got := b.ProjectedMonthEndBalance(eom); !got.Equal(decimal.NewFromInt(3600)) {
		t.Errorf("ProjectedMonthEndBalance() at day 31 = %s, want 3600", got)
	}
}

func TestGoalPercentComplete(t *testing.T) {
	cases := []struct {
		name    string
		target  int64
		current string
		want    string
	}{
		{"halfway", 200, "100", "50"},
		{"complete", 1000, "1000", "100"},
		{"rounded", 300, "100", "33.33"},
		{"zero target", 0, "50", "0"},
		{"empty", 500, "0", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := &Goal{
				TargetAmount:  decimal.NewFromInt(tc.target),
				CurrentAmount: decimal.RequireFromString(tc.current),
			}
			want := decimal.RequireFromString(tc.want)
			if got := g.PercentComplete(); !got.Equal(want) {
				t.Errorf("PercentComplete() = %s, want %s", got, want)
			}
		})
	}
}
