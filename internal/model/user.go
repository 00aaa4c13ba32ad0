package model

import "time"

// Role is the fixed set of account kinds.
type Role string

const (
	RoleStudent Role = "Student"
	RoleTutor   Role = "Tutor"
	RoleAdmin   Role = "Admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTutor, RoleAdmin:
		return true
	}
	return false
}

// User represents any account: student, tutor or admin.
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone,omitempty"`
	Role         Role      `json:"role"`
	StandardID   *int      `json:"standard_id,omitempty"` // Student only
	StandardName *string   `json:"standard_name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// CreateUserRequest is the payload for creating a new account.
type CreateUserRequest struct {
	Name       string  `json:"name" binding:"required,notblank,min=2,max=100"`
	Email      string  `json:"email" binding:"required,email,max=255"`
	Phone      *string `json:"phone" binding:"omitempty,min=6,max=20"`
	Role       Role    `json:"role" binding:"required,oneof=Student Tutor Admin"`
	StandardID *int    `json:"standard_id" binding:"omitempty,min=1"`
	Password   string  `json:"password" binding:"required,min=6,max=128"`
}

// UpdateUserRequest is the payload for updating an account. Password is optional.
type UpdateUserRequest struct {
	Name       string  `json:"name" binding:"required,notblank,min=2,max=100"`
	Email      string  `json:"email" binding:"required,email,max=255"`
	Phone      *string `json:"phone" binding:"omitempty,min=6,max=20"`
	Role       Role    `json:"role" binding:"required,oneof=Student Tutor Admin"`
	StandardID *int    `json:"standard_id" binding:"omitempty,min=1"`
	Password   string  `json:"password" binding:"omitempty,min=6,max=128"`
}

// UserFilter narrows user listings.
type UserFilter struct {
	Role       *Role
	StandardID *int
}
