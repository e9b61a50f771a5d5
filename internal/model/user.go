package model

import (
	"net/mail"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	Status       Status    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserInput is the create/update payload. Password is optional on update.
type UserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Status   Status `json:"status"`
}

const (
	minPasswordLength = 8
	// maxPasswordLength is the bcrypt input limit in bytes.
	maxPasswordLength = 72

	maxUsernameLength = 64
	maxEmailLength    = 255
)

func (in *UserInput) Normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Role == "" {
		in.Role = RoleUser
	}
	if in.Status == "" {
		in.Status = StatusActive
	}
}

func (in UserInput) Validate(creating bool) error {
	var v validator
	v.check(len(in.Username) >= 3, "username", "must be at least 3 characters")
	v.maxLen(in.Username, maxUsernameLength, "username")
	_, err := mail.ParseAddress(in.Email)
	v.check(err == nil, "email", "must be a valid address")
	v.maxLen(in.Email, maxEmailLength, "email")
	if creating || in.Password != "" {
		v.check(len(in.Password) >= minPasswordLength, "password", "must be at least 8 characters")
		v.check(len(in.Password) <= maxPasswordLength, "password", "must be at most 72 bytes")
	}
	v.check(in.Role.Valid(), "role", "must be admin or user")
	v.check(in.Status.Valid(), "status", "must be active or inactive")
	return v.err()
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (in LoginInput) Validate() error {
	var v validator
	v.check(strings.TrimSpace(in.Username) != "", "username", "is required")
	v.check(in.Password != "", "password", "is required")
	v.check(len(in.Password) <= maxPasswordLength, "password", "must be at most 72 bytes")
	return v.err()
}
