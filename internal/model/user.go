package model

import (
	"time"
)

// User is an account row. Role is either "user" or "admin".
type User struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email" gorm:"unique"`
	Username     string    `json:"username" db:"username" gorm:"unique"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// SessionUser is the snapshot stored in the cookie session.
type SessionUser struct {
	ID       int
	Email    string
	Username string
	Role     string
}
