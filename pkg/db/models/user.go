package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents the canonical identity entity. Customers sign in with
// emailed one-time codes, so PasswordHash is only set for staff accounts.
type User struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string     `gorm:"type:text;not null;uniqueIndex"`
	Username     string     `gorm:"column:username;not null"`
	PasswordHash *string    `gorm:"column:password_hash"`
	IsStaff      bool       `gorm:"column:is_staff;not null;default:false"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
