package model

// User role constants
const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// User status constants
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User represents a staff account
type User struct {
	Base
	FullName           string `json:"full_name" db:"full_name"`
	Email              string `json:"email" db:"email"`
	PasswordHash       string `json:"-" db:"password_hash"`
	Role               string `json:"role" db:"role"`
	Status             string `json:"status" db:"status"`
	MustChangePassword bool   `json:"must_change_password" db:"must_change_password"`
}

// IsAdmin reports whether the account carries the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CreateUserRequest represents account creation parameters
type CreateUserRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=staff admin"`
}

// UpdateUserRequest represents account update parameters
type UpdateUserRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required,oneof=staff admin"`
}

// ResetPasswordRequest carries an explicit new password, or nothing when the
// caller wants one generated.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"omitempty,min=8"`
}

// ResetPasswordResponse carries the plaintext exactly once; it is never persisted.
type ResetPasswordResponse struct {
	Password string `json:"password"`
}
