package models

import (
	"time"

	"gorm.io/gorm"
)

// Category represents an income/expense category owned by one user.
// Name is unique per user over live rows.
type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Type      string         `gorm:"size:16;index;not null" json:"type"` // income / expense
	Color     string         `gorm:"size:7;not null" json:"color"`       // hex color code
	Icon      string         `gorm:"size:100" json:"icon"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}
