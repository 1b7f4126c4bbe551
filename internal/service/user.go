package service

import (
	"errors"
	"fmt"

	"github.com/VYR4L/backend-expense-tracker/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService manages account registration and maintenance.
type UserService struct {
	db         *gorm.DB
	log        *logrus.Logger
	bcryptCost int
}

func NewUserService(db *gorm.DB, log *logrus.Logger, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{db: db, log: log, bcryptCost: bcryptCost}
}

// RegisterInput carries the fields for a new account.
type RegisterInput struct {
	Email           string
	FirstName       string
	LastName        string
	Password        string
	ConfirmPassword string
}

// UserPatch carries a partial update; nil fields are left unchanged. A
// password change must come with its confirmation.
type UserPatch struct {
	Email           *string
	FirstName       *string
	LastName        *string
	Password        *string
	ConfirmPassword *string
}

func (s *UserService) Register(in RegisterInput) (*models.User, error) {
	if in.Password != in.ConfirmPassword {
		return nil, &ValidationError{Reason: "Passwords do not match"}
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, &ConflictError{Reason: "Email already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:          in.Email,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		HashedPassword: string(hash),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.WithField("user_id", user.ID).Info("user registered")
	return &user, nil
}

func (s *UserService) Get(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "User not found"}
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

func (s *UserService) Update(id uint, patch UserPatch) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		var count int64
		if err := s.db.Model(&models.User{}).
			Where("email = ? AND id <> ?", *patch.Email, id).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if count > 0 {
			return nil, &ConflictError{Reason: "Email already registered"}
		}
		user.Email = *patch.Email
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Password != nil {
		if patch.ConfirmPassword == nil || *patch.Password != *patch.ConfirmPassword {
			return nil, &ValidationError{Reason: "Passwords do not match"}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.HashedPassword = string(hash)
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// Delete soft-deletes the account. Outstanding tokens stop working
// because the auth middleware re-checks that the user is still live.
func (s *UserService) Delete(id uint) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(user).Error; err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.WithField("user_id", id).Info("user deleted")
	return nil
}
