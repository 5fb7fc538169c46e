// File: /models/user.go
package models

import (
	"time"
)

// Role determines what a user is allowed to do. See the permissions package
// for the full role/operation table.
type Role string

const (
	RoleExecutive Role = "executive"
	RoleAdmin     Role = "admin"
	RoleUser      Role = "user"
)

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null;size:100"`
	Password  string    `json:"-" gorm:"not null;size:255"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Role      Role      `json:"role" gorm:"not null;size:20;default:'user'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
