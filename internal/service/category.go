package service

import (
	"errors"
	"fmt"

	"github.com/VYR4L/backend-expense-tracker/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CategoryService manages income/expense categories. Category names are
// unique per user over live rows.
type CategoryService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewCategoryService(db *gorm.DB, log *logrus.Logger) *CategoryService {
	return &CategoryService{db: db, log: log}
}

// CategoryInput carries the fields for a new category.
type CategoryInput struct {
	Name  string
	Type  string
	Color string
	Icon  string
}

// CategoryPatch carries a partial update; nil fields are left unchanged.
type CategoryPatch struct {
	Name  *string
	Type  *string
	Color *string
	Icon  *string
}

func (s *CategoryService) Create(userID uint, in CategoryInput) (*models.Category, error) {
	if !validTransactionType(in.Type) {
		return nil, &ValidationError{Reason: "Category type must be 'income' or 'expense'"}
	}

	taken, err := s.nameTaken(userID, in.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &ConflictError{Reason: "Category with this name already exists"}
	}

	category := models.Category{
		UserID: userID,
		Name:   in.Name,
		Type:   in.Type,
		Color:  in.Color,
		Icon:   in.Icon,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "category_id": category.ID}).Info("category created")
	return &category, nil
}

// Get returns a single category scoped to its owner.
func (s *CategoryService) Get(id, userID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "Category not found"}
		}
		return nil, fmt.Errorf("load category: %w", err)
	}
	return &category, nil
}

// List returns the user's live categories, optionally filtered by type.
func (s *CategoryService) List(userID uint, categoryType string) ([]models.Category, error) {
	q := s.db.Where("user_id = ?", userID)
	if categoryType != "" {
		q = q.Where("type = ?", categoryType)
	}

	var categories []models.Category
	if err := q.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Update(id, userID uint, patch CategoryPatch) (*models.Category, error) {
	if patch.Type != nil && !validTransactionType(*patch.Type) {
		return nil, &ValidationError{Reason: "Category type must be 'income' or 'expense'"}
	}

	category, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		taken, err := s.nameTaken(userID, *patch.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &ConflictError{Reason: "Category with this name already exists"}
		}
		category.Name = *patch.Name
	}
	if patch.Type != nil {
		category.Type = *patch.Type
	}
	if patch.Color != nil {
		category.Color = *patch.Color
	}
	if patch.Icon != nil {
		category.Icon = *patch.Icon
	}

	if err := s.db.Save(category).Error; err != nil {
		return nil, fmt.Errorf("save category: %w", err)
	}
	return category, nil
}

// Delete soft-deletes an owned category.
func (s *CategoryService) Delete(id, userID uint) error {
	category, err := s.Get(id, userID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(category).Error; err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// nameTaken reports whether another live category of the user already
// carries the name. excludeID skips the category being renamed.
func (s *CategoryService) nameTaken(userID uint, name string, excludeID uint) (bool, error) {
	q := s.db.Model(&models.Category{}).
		Where("user_id = ? AND name = ?", userID, name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return count > 0, nil
}
