package services

import (
	"errors"
	"fmt"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeUnauthenticated ErrorType = "unauthenticated"
	ErrorTypeForbidden       ErrorType = "forbidden"
	ErrorTypeNotFound        ErrorType = "not_found"
	ErrorTypeInternal        ErrorType = "internal"
)

// DomainError represents a structured error with additional context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is. Two domain errors match when their types match.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

// Sentinels for errors.Is comparisons. Do not attach details to these; build
// a fresh error with NewDomainError instead.
var (
	ErrUnauthenticated = NewDomainError(ErrorTypeUnauthenticated, "Authentication required", nil)
	ErrForbidden       = NewDomainError(ErrorTypeForbidden, "Access forbidden", nil)
	ErrRouteNotFound   = NewDomainError(ErrorTypeNotFound, "Route not found", nil)
	ErrInternal        = NewDomainError(ErrorTypeInternal, "Internal Server Error", nil)
)

// NewUnauthenticatedError reports a request that carries no usable identity.
func NewUnauthenticatedError(err error) *DomainError {
	return NewDomainError(ErrorTypeUnauthenticated, "Authentication required", err)
}

// NewInsufficientPermissionsError reports a missing permission.
func NewInsufficientPermissionsError(required string, userRole string) *DomainError {
	return NewDomainError(ErrorTypeForbidden, "Insufficient permissions", nil).
		WithDetail("required", required).
		WithDetail("userRole", userRole)
}

// NewInsufficientRoleError reports a role outside the accepted set.
func NewInsufficientRoleError(required []string, userRole string) *DomainError {
	return NewDomainError(ErrorTypeForbidden, "Insufficient role", nil).
		WithDetail("required", required).
		WithDetail("userRole", userRole)
}

// IsUnauthenticatedError checks if an error is an unauthenticated error
func IsUnauthenticatedError(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

// IsForbiddenError checks if an error is a forbidden error
func IsForbiddenError(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrRouteNotFound)
}

// IsInternalError checks if an error is an internal error
func IsInternalError(err error) bool {
	return errors.Is(err, ErrInternal)
}

// GetErrorType returns the ErrorType of a domain error, or empty string if not a domain error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// GetErrorDetails returns the details map of a domain error, or nil if not a domain error
func GetErrorDetails(err error) map[string]interface{} {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Details
	}
	return nil
}

// GetErrorMessage returns the client-facing message of a domain error.
// Non-domain errors yield an empty string.
func GetErrorMessage(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return ""
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return NewDomainError(ErrorTypeInternal, message, err)
}
