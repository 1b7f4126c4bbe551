package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/VYR4L/backend-expense-tracker/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TransactionService owns the ledger: every create, update and delete
// runs a full balance recompute inside the same storage transaction, so
// the ledger is never settled without a matching snapshot.
type TransactionService struct {
	db      *gorm.DB
	log     *logrus.Logger
	balance *BalanceService
}

func NewTransactionService(db *gorm.DB, log *logrus.Logger, balance *BalanceService) *TransactionService {
	return &TransactionService{db: db, log: log, balance: balance}
}

// TransactionInput carries the fields for a new ledger record.
type TransactionInput struct {
	Description string
	Amount      decimal.Decimal
	Type        string
	CategoryID  uint
	OccurredAt  time.Time
}

// TransactionPatch carries a partial update; nil fields are left
// unchanged.
type TransactionPatch struct {
	Description *string
	Amount      *decimal.Decimal
	Type        *string
	CategoryID  *uint
	OccurredAt  *time.Time
}

func validTransactionType(t string) bool {
	return t == models.TypeIncome || t == models.TypeExpense
}

// Create validates and persists a new transaction, then recomputes the
// owner's balance in the same storage transaction.
func (s *TransactionService) Create(userID uint, in TransactionInput) (*models.Transaction, error) {
	if !validTransactionType(in.Type) {
		return nil, &ValidationError{Reason: "Transaction type must be 'income' or 'expense'"}
	}
	if !in.Amount.IsPositive() {
		return nil, &ValidationError{Reason: "Amount must be positive"}
	}

	var created models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkCategory(tx, in.CategoryID, userID); err != nil {
			return err
		}

		created = models.Transaction{
			UserID:      userID,
			Description: in.Description,
			Amount:      in.Amount,
			Type:        in.Type,
			CategoryID:  in.CategoryID,
			OccurredAt:  in.OccurredAt,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}

		_, err := s.balance.Recompute(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":        userID,
		"transaction_id": created.ID,
		"type":           created.Type,
	}).Info("transaction created")

	return &created, nil
}

// Get returns a single transaction scoped to its owner.
func (s *TransactionService) Get(id, userID uint) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "Transaction not found"}
		}
		return nil, fmt.Errorf("load transaction: %w", err)
	}
	return &txn, nil
}

// List returns one page of the user's transactions in stable id order,
// along with the total number of live rows.
func (s *TransactionService) List(userID uint, skip, limit int) ([]models.Transaction, int64, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 10
	}

	var total int64
	if err := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	var txns []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&txns).Error; err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	return txns, total, nil
}

// ListAll returns every live transaction of the user in stable id order,
// for export.
func (s *TransactionService) ListAll(userID uint) ([]models.Transaction, error) {
	var txns []models.Transaction
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txns, nil
}

// Update applies a partial update to an owned transaction and recomputes
// the balance in the same storage transaction.
func (s *TransactionService) Update(id, userID uint, patch TransactionPatch) (*models.Transaction, error) {
	if patch.Type != nil && !validTransactionType(*patch.Type) {
		return nil, &ValidationError{Reason: "Transaction type must be 'income' or 'expense'"}
	}
	if patch.Amount != nil && !patch.Amount.IsPositive() {
		return nil, &ValidationError{Reason: "Amount must be positive"}
	}

	var txn models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&txn).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Msg: "Transaction not found"}
			}
			return fmt.Errorf("load transaction: %w", err)
		}

		if patch.Description != nil {
			txn.Description = *patch.Description
		}
		if patch.Amount != nil {
			txn.Amount = *patch.Amount
		}
		if patch.Type != nil {
			txn.Type = *patch.Type
		}
		if patch.CategoryID != nil {
			if err := s.checkCategory(tx, *patch.CategoryID, userID); err != nil {
				return err
			}
			txn.CategoryID = *patch.CategoryID
		}
		if patch.OccurredAt != nil {
			txn.OccurredAt = *patch.OccurredAt
		}

		if err := tx.Save(&txn).Error; err != nil {
			return fmt.Errorf("save transaction: %w", err)
		}

		_, err := s.balance.Recompute(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":        userID,
		"transaction_id": txn.ID,
	}).Info("transaction updated")

	return &txn, nil
}

// Delete soft-deletes an owned transaction and recomputes the balance in
// the same storage transaction.
func (s *TransactionService) Delete(id, userID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&txn).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Msg: "Transaction not found"}
			}
			return fmt.Errorf("load transaction: %w", err)
		}

		if err := tx.Delete(&txn).Error; err != nil {
			return fmt.Errorf("delete transaction: %w", err)
		}

		_, err := s.balance.Recompute(tx, userID)
		return err
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":        userID,
		"transaction_id": id,
	}).Info("transaction deleted")

	return nil
}

func (s *TransactionService) checkCategory(tx *gorm.DB, categoryID, userID uint) error {
	var count int64
	if err := tx.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if count == 0 {
		return &NotFoundError{Msg: "Category not found"}
	}
	return nil
}
