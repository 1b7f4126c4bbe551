package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/VYR4L/backend-expense-tracker/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BalanceService maintains the denormalized per-user balance snapshot.
//
// The snapshot is always rebuilt in full from the transaction ledger,
// never patched incrementally, so a successful recompute self-heals any
// prior drift.
type BalanceService struct {
	db  *gorm.DB
	log *logrus.Logger
	now func() time.Time
}

func NewBalanceService(db *gorm.DB, log *logrus.Logger) *BalanceService {
	return &BalanceService{db: db, log: log, now: time.Now}
}

// Recompute rebuilds the user's balance row from all live transactions
// and upserts it. It must be called on the same storage transaction as
// the ledger mutation that triggered it, so that the ledger change and
// the snapshot commit or roll back together.
//
// A user with zero transactions gets an all-zero snapshot.
func (s *BalanceService) Recompute(tx *gorm.DB, userID uint) (*models.Balance, error) {
	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var txns []models.Transaction
	if err := tx.Where("user_id = ?", userID).Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	monthlyIncome := decimal.Zero
	monthlyExpenses := decimal.Zero
	var lastCreated *time.Time

	for i := range txns {
		t := &txns[i]
		inMonth := !t.CreatedAt.UTC().Before(monthStart)

		switch t.Type {
		case models.TypeIncome:
			totalIncome = totalIncome.Add(t.Amount)
			if inMonth {
				monthlyIncome = monthlyIncome.Add(t.Amount)
			}
		case models.TypeExpense:
			totalExpenses = totalExpenses.Add(t.Amount)
			if inMonth {
				monthlyExpenses = monthlyExpenses.Add(t.Amount)
			}
		}

		if lastCreated == nil || t.CreatedAt.After(*lastCreated) {
			created := t.CreatedAt
			lastCreated = &created
		}
	}

	dailyAverage := decimal.Zero
	if day := now.Day(); day > 0 {
		dailyAverage = monthlyExpenses.Div(decimal.NewFromInt(int64(day)))
	}

	balance, err := s.lockBalanceRow(tx, userID)
	if err != nil {
		return nil, err
	}

	balance.CurrentBalance = totalIncome.Sub(totalExpenses)
	balance.TotalIncome = totalIncome
	balance.TotalExpenses = totalExpenses
	balance.MonthlyIncome = monthlyIncome
	balance.MonthlyExpenses = monthlyExpenses
	balance.DailyAverageExpense = dailyAverage
	balance.LastTransactionDate = lastCreated

	if err := tx.Save(balance).Error; err != nil {
		return nil, fmt.Errorf("save balance: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":         userID,
		"current_balance": balance.CurrentBalance,
	}).Debug("balance recomputed")

	return balance, nil
}

// lockBalanceRow loads the user's balance row under a row lock, or
// returns a fresh row when the user has none yet. The lock serializes
// concurrent recomputes for the same user on server databases; SQLite
// has no FOR UPDATE and serializes writers on its own.
func (s *BalanceService) lockBalanceRow(tx *gorm.DB, userID uint) (*models.Balance, error) {
	q := tx
	if tx.Dialector.Name() != "sqlite" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var balance models.Balance
	err := q.Where("user_id = ?", userID).First(&balance).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &models.Balance{UserID: userID}, nil
	case err != nil:
		return nil, fmt.Errorf("load balance: %w", err)
	}
	return &balance, nil
}

// Get returns the stored snapshot for the user. Before the user's first
// transaction no snapshot exists.
func (s *BalanceService) Get(userID uint) (*models.Balance, error) {
	var balance models.Balance
	if err := s.db.Where("user_id = ?", userID).First(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "Balance not found for this user"}
		}
		return nil, fmt.Errorf("load balance: %w", err)
	}
	return &balance, nil
}
