package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrValidation
	ErrUnauthenticated
	ErrForbidden
	ErrInvalidCredentials
	ErrPasswordChangeRequired
	ErrBedOccupied
	ErrDuplicatePatient
	ErrEmailTaken
	ErrSelfDeactivation
	ErrInternal
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error code to the status surfaced at the request boundary.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrValidation:
		return http.StatusBadRequest
	case ErrUnauthenticated, ErrInvalidCredentials:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrPasswordChangeRequired, ErrBedOccupied, ErrDuplicatePatient, ErrEmailTaken, ErrSelfDeactivation:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors
func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
	}
}

func Unauthenticated(message string) *AppError {
	return &AppError{
		Code:    ErrUnauthenticated,
		Message: message,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:    ErrForbidden,
		Message: message,
	}
}

func InvalidCredentials() *AppError {
	return &AppError{
		Code:    ErrInvalidCredentials,
		Message: "invalid email or password",
	}
}

func PasswordChangeRequired() *AppError {
	return &AppError{
		Code:    ErrPasswordChangeRequired,
		Message: "password change required before continuing",
	}
}

func BedOccupied(unit, bed string) *AppError {
	return &AppError{
		Code:    ErrBedOccupied,
		Message: fmt.Sprintf("bed %s in unit %s is already occupied", bed, unit),
	}
}

func DuplicatePatient(name string) *AppError {
	return &AppError{
		Code:    ErrDuplicatePatient,
		Message: fmt.Sprintf("an active patient named %s with this birth date already exists", name),
	}
}

func EmailTaken(email string) *AppError {
	return &AppError{
		Code:    ErrEmailTaken,
		Message: fmt.Sprintf("email %s is already in use", email),
	}
}

func SelfDeactivation() *AppError {
	return &AppError{
		Code:    ErrSelfDeactivation,
		Message: "administrators cannot deactivate their own account",
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// AsAppError unwraps err into an AppError when one is in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether any error in err's chain carries the given code.
func Is(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
