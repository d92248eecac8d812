package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is the authenticated identity behind a session.
// RoleHint and NameHint come from sign-up metadata and may be empty.
type Account struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	RoleHint  string    `json:"role_hint,omitempty" db:"role_hint"`
	NameHint  string    `json:"name_hint,omitempty" db:"name_hint"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Credentials is an account row together with its password hash
type Credentials struct {
	Account
	PasswordHash string `json:"-" db:"password_hash"` // Hidden from JSON responses
}
