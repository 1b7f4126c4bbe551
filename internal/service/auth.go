package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/VYR4L/backend-expense-tracker/internal/config"
	"github.com/VYR4L/backend-expense-tracker/internal/models"
	"github.com/VYR4L/backend-expense-tracker/internal/util"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService authenticates users and issues access tokens.
type AuthService struct {
	db  *gorm.DB
	log *logrus.Logger
	cfg config.JWTConfig
}

func NewAuthService(db *gorm.DB, log *logrus.Logger, cfg config.JWTConfig) *AuthService {
	return &AuthService{db: db, log: log, cfg: cfg}
}

// Login verifies the credentials and returns a signed bearer token
// together with the authenticated user. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, &AuthError{Reason: "Incorrect email or password"}
		}
		return "", nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", nil, &AuthError{Reason: "Incorrect email or password"}
	}

	ttl := time.Duration(s.cfg.ExpireHours) * time.Hour
	token, err := util.GenerateToken(s.cfg.Secret, s.cfg.Issuer, user.ID, ttl)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	s.log.WithField("user_id", user.ID).Info("user logged in")
	return token, &user, nil
}
