package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)

type User struct {
	gorm.Model
	Name     string `json:"name" gorm:"default:''"`
	Email    string `json:"email" gorm:"unique;not null"`
	Role     string `json:"role" gorm:"default:'user'"` // user, publisher, admin
	Password string `json:"-" gorm:"not null"`

	// Password recovery. Only the sha256 hash of the reset token is stored.
	ResetPasswordToken  string     `json:"-" gorm:"default:''"`
	ResetPasswordExpire *time.Time `json:"-"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
