package models

import (
	"time"
)

// Role names stored in the 'user_roles' table.
const (
	RoleAdmin = "admin"
)

// User defines the user model based on the 'users' table
type User struct {
	ID            int64      `json:"id" db:"id" example:"1"`
	Email         string     `json:"email" db:"email" example:"cadet@nccairwing.in"`
	Password      string     `json:"-" db:"password"` // hashed, excluded from JSON
	EmailVerified bool       `json:"emailVerified" db:"email_verified" example:"true"`
	IsActive      bool       `json:"isActive" db:"is_active" example:"true"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}
