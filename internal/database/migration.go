package database

import (
	"fmt"

	"github.com/VYR4L/backend-expense-tracker/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Transaction{},
		&models.Balance{},
		&models.Goal{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
