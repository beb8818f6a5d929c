package models

import "time"

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleEmployer  UserRole = "employer"
	RoleCandidate UserRole = "candidate"
)

type User struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Role  UserRole `json:"role"`
}

// Session is the authenticated context handed to service calls.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

type LoginDraft struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterDraft struct {
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=8"`
	ConfirmPassword string   `json:"confirm_password" validate:"required,eqfield=Password"`
	FirstName       string   `json:"first_name" validate:"not_blank"`
	LastName        string   `json:"last_name"`
	Role            UserRole `json:"role" validate:"required,oneof=employer candidate"`
	Company         string   `json:"company,omitempty" validate:"required_if=Role employer"`
}
