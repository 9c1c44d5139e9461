package dto

import (
	"net/http"

	"github.com/shopdesk/backend/internal/domain/shared"
)

// Transport-level error codes. Domain errors keep their own codes
// (EMPTY_CART, INVALID_STATUS, ...) and are mapped by kind.
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeValidation      = shared.KindValidation
	ErrCodeNotFound        = shared.KindNotFound
	ErrCodeConflict        = shared.KindConflict
	ErrCodeUnauthorized    = shared.KindUnauthorized
	ErrCodeForbidden       = shared.KindForbidden
	ErrCodeTokenExpired    = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid    = "TOKEN_INVALID"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
)

// kindHTTPStatus maps domain error kinds to HTTP status codes
var kindHTTPStatus = map[string]int{
	shared.KindValidation:        http.StatusBadRequest,
	shared.KindNotFound:          http.StatusNotFound,
	shared.KindConflict:          http.StatusConflict,
	shared.KindStockInsufficient: http.StatusUnprocessableEntity,
	shared.KindInvalidState:      http.StatusUnprocessableEntity,
	shared.KindConcurrency:       http.StatusConflict,
	shared.KindUnauthorized:      http.StatusUnauthorized,
	shared.KindForbidden:         http.StatusForbidden,
}

// codeHTTPStatus covers codes that are not domain kinds
var codeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeTokenExpired:    http.StatusUnauthorized,
	ErrCodeTokenInvalid:    http.StatusUnauthorized,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodePayloadTooLarge: http.StatusRequestEntityTooLarge,
}

// StatusForKind returns the HTTP status for a domain error kind, 500 when unknown
func StatusForKind(kind string) int {
	if status, ok := kindHTTPStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// GetHTTPStatus returns the HTTP status for an error code. Codes that are
// domain kinds resolve through StatusForKind.
func GetHTTPStatus(code string) int {
	if status, ok := codeHTTPStatus[code]; ok {
		return status
	}
	return StatusForKind(code)
}

// StatusForError returns the HTTP status of a domain error
func StatusForError(err *shared.DomainError) int {
	if err.Kind != "" {
		return StatusForKind(err.Kind)
	}
	return GetHTTPStatus(err.Code)
}
