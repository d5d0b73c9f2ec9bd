package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleAdmin  UserRole = "Admin"
	RoleKAM    UserRole = "KAM"
	RoleViewer UserRole = "Viewer"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleKAM, RoleViewer:
		return true
	}
	return false
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"type:varchar(16);not null;default:'KAM'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
