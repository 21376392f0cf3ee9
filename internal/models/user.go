package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string
type Role = UserRole // Alias for compatibility

const (
	RoleStudent   UserRole = "student"
	RoleProfessor UserRole = "professor"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	ID           string   `json:"id" gorm:"primaryKey;size:255"`
	FullName     string   `json:"full_name" gorm:"not null;size:100"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	Role         UserRole `json:"role" gorm:"not null;size:20;default:student"`

	// Status
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	LastLoginAt *time.Time `json:"last_login_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// Principal is the authenticated caller as seen by services.
type Principal struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Role UserRole `json:"role"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAuthor reports whether the principal may generate and manage quizzes.
func (p Principal) CanAuthor() bool {
	return p.Role == RoleProfessor || p.Role == RoleAdmin
}
