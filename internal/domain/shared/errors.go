package shared

import (
	"errors"
	"fmt"
)

// Error kinds. Every DomainError carries one of these in Kind so callers can
// branch on the category while Code stays specific (e.g. EMPTY_CART).
const (
	KindValidation        = "VALIDATION_ERROR"
	KindNotFound          = "NOT_FOUND"
	KindConflict          = "CONFLICT"
	KindStockInsufficient = "INSUFFICIENT_STOCK"
	KindInvalidState      = "INVALID_STATE"
	KindConcurrency       = "CONCURRENCY_CONFLICT"
	KindUnauthorized      = "UNAUTHORIZED"
	KindForbidden         = "FORBIDDEN"
)

// DomainError represents a domain-level error
type DomainError struct {
	Kind    string `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError of the same kind, so that
// errors.Is(err, shared.ErrNotFound) matches any not-found error.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && (t.Code == t.Kind || e.Code == t.Code)
}

// WithField returns a copy of the error naming the offending field
func (e *DomainError) WithField(field string) *DomainError {
	cp := *e
	cp.Field = field
	return &cp
}

// NewDomainError creates a domain error whose code is also its kind
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Kind:    kindForCode(code),
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error with a specific code
func NewValidationError(code, message string) *DomainError {
	return &DomainError{Kind: KindValidation, Code: code, Message: message}
}

// NewFieldValidationError creates a validation error naming a field
func NewFieldValidationError(field, message string) *DomainError {
	return &DomainError{Kind: KindValidation, Code: KindValidation, Message: message, Field: field}
}

// NewNotFoundError creates a not-found error for the given entity
func NewNotFoundError(entity string, id any) *DomainError {
	return &DomainError{
		Kind:    KindNotFound,
		Code:    KindNotFound,
		Message: fmt.Sprintf("%s %v not found", entity, id),
	}
}

// NewConflictError creates a uniqueness conflict naming the field
func NewConflictError(field, message string) *DomainError {
	return &DomainError{Kind: KindConflict, Code: KindConflict, Message: message, Field: field}
}

// NewStockInsufficientError reports that a requested quantity exceeds stock
func NewStockInsufficientError(productName string, requested, available int) *DomainError {
	return &DomainError{
		Kind:    KindStockInsufficient,
		Code:    KindStockInsufficient,
		Message: fmt.Sprintf("insufficient stock for %s: requested %d, available %d", productName, requested, available),
		Field:   "quantity",
	}
}

// NewInvalidStateError creates an invalid-state error with a specific code
func NewInvalidStateError(code, message string) *DomainError {
	return &DomainError{Kind: KindInvalidState, Code: code, Message: message}
}

// NewUnauthorizedError creates an authentication failure with a specific code
func NewUnauthorizedError(code, message string) *DomainError {
	return &DomainError{Kind: KindUnauthorized, Code: code, Message: message}
}

// NewForbiddenError creates an authorization failure with a specific code
func NewForbiddenError(code, message string) *DomainError {
	return &DomainError{Kind: KindForbidden, Code: code, Message: message}
}

func kindForCode(code string) string {
	switch code {
	case KindNotFound, KindConflict, KindStockInsufficient, KindInvalidState,
		KindConcurrency, KindUnauthorized, KindForbidden, KindValidation:
		return code
	default:
		return KindValidation
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError(KindNotFound, "Resource not found")
	ErrValidation          = NewDomainError(KindValidation, "Invalid input provided")
	ErrConflict            = NewDomainError(KindConflict, "Resource already exists")
	ErrInsufficientStock   = NewDomainError(KindStockInsufficient, "Insufficient stock available")
	ErrInvalidState        = NewDomainError(KindInvalidState, "Operation not allowed in current state")
	ErrConcurrencyConflict = NewDomainError(KindConcurrency, "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError(KindUnauthorized, "Not authorized to perform this action")
	ErrForbidden           = NewDomainError(KindForbidden, "Access to this resource is forbidden")
)

// IsNotFound reports whether err is a not-found domain error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err is a uniqueness conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnauthorized reports whether err is an authentication failure
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsStockInsufficient reports whether err is an insufficient-stock error
func IsStockInsufficient(err error) bool {
	return errors.Is(err, ErrInsufficientStock)
}
