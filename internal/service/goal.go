package service

import (
	"errors"
	"fmt"

	"github.com/VYR4L/backend-expense-tracker/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GoalService manages savings goals.
type GoalService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewGoalService(db *gorm.DB, log *logrus.Logger) *GoalService {
	return &GoalService{db: db, log: log}
}

// GoalInput carries the fields for a new goal.
type GoalInput struct {
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Color         string
	Icon          string
}

// GoalPatch carries a partial update; nil fields are left unchanged.
// Note that setting CurrentAmount directly bypasses the clamp that
// AddAmount enforces.
type GoalPatch struct {
	Name          *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	Color         *string
	Icon          *string
}

func (s *GoalService) Create(userID uint, in GoalInput) (*models.Goal, error) {
	if in.TargetAmount.IsNegative() {
		return nil, &ValidationError{Reason: "Target amount must not be negative"}
	}

	goal := models.Goal{
		UserID:        userID,
		Name:          in.Name,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		Color:         in.Color,
		Icon:          in.Icon,
	}
	if err := s.db.Create(&goal).Error; err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "goal_id": goal.ID}).Info("goal created")
	return &goal, nil
}

// Get returns a single goal scoped to its owner.
func (s *GoalService) Get(id, userID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "Goal not found"}
		}
		return nil, fmt.Errorf("load goal: %w", err)
	}
	return &goal, nil
}

// ListForUser returns all live goals of the user.
func (s *GoalService) ListForUser(userID uint) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func (s *GoalService) Update(id, userID uint, patch GoalPatch) (*models.Goal, error) {
	goal, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		goal.Name = *patch.Name
	}
	if patch.TargetAmount != nil {
		goal.TargetAmount = *patch.TargetAmount
	}
	if patch.CurrentAmount != nil {
		goal.CurrentAmount = *patch.CurrentAmount
	}
	if patch.Color != nil {
		goal.Color = *patch.Color
	}
	if patch.Icon != nil {
		goal.Icon = *patch.Icon
	}

	if err := s.db.Save(goal).Error; err != nil {
		return nil, fmt.Errorf("save goal: %w", err)
	}
	return goal, nil
}

// Delete soft-deletes an owned goal.
func (s *GoalService) Delete(id, userID uint) error {
	goal, err := s.Get(id, userID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(goal).Error; err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

// AddAmount adds a positive contribution to the goal's progress. The
// resulting current amount never exceeds the target: contributions past
// the target are clamped. This is the only mutation path that preserves
// the 0 <= current <= target invariant.
func (s *GoalService) AddAmount(id, userID uint, amount decimal.Decimal) (*models.Goal, error) {
	if !amount.IsPositive() {
		return nil, &ValidationError{Reason: "Amount must be positive"}
	}

	goal, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	goal.CurrentAmount = goal.CurrentAmount.Add(amount)
	if goal.CurrentAmount.GreaterThan(goal.TargetAmount) {
		goal.CurrentAmount = goal.TargetAmount
	}

	if err := s.db.Save(goal).Error; err != nil {
		return nil, fmt.Errorf("save goal: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"goal_id": goal.ID,
		"current": goal.CurrentAmount,
	}).Info("goal progress added")

	return goal, nil
}
