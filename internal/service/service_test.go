package service

import (
	"io"
	"testing"
	"time"

	"github.com/VYR4L/backend-expense-tracker/internal/database"
	"github.com/VYR4L/backend-expense-tracker/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixedNow is mid-month so daily-average and projection math is easy to
// verify: day 15 of June 2024.
var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	// a single connection keeps the in-memory database alive and shared
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type testEnv struct {
	db           *gorm.DB
	balances     *BalanceService
	transactions *TransactionService
	categories   *CategoryService
	goals        *GoalService
	users        *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	log := newTestLogger()

	balances := NewBalanceService(db, log)
	balances.now = func() time.Time { return fixedNow }

	return &testEnv{
		db:           db,
		balances:     balances,
		transactions: NewTransactionService(db, log, balances),
		categories:   NewCategoryService(db, log),
		goals:        NewGoalService(db, log),
		users:        NewUserService(db, log, 4), // low bcrypt cost for speed
	}
}

func (e *testEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := e.users.Register(RegisterInput{
		Email:           email,
		FirstName:       "Test",
		LastName:        "User",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	if err != nil {
		t.Fatalf("register user: %v", err)
	}
	return user
}

func (e *testEnv) createCategory(t *testing.T, userID uint, name, categoryType string) *models.Category {
	t.Helper()
	category, err := e.categories.Create(userID, CategoryInput{
		Name:  name,
		Type:  categoryType,
		Color: "#00ff00",
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func (e *testEnv) createTransaction(t *testing.T, userID, categoryID uint, txType string, amount int64) *models.Transaction {
	t.Helper()
	txn, err := e.transactions.Create(userID, TransactionInput{
		Description: "test " + txType,
		Amount:      decimal.NewFromInt(amount),
		Type:        txType,
		CategoryID:  categoryID,
		OccurredAt:  fixedNow,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	return txn
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want int64) {
	t.Helper()
	if !got.Equal(decimal.NewFromInt(want)) {
		t.Errorf("%s = %s, want %d", name, got, want)
	}
}
