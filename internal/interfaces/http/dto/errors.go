package dto

import "net/http"

// Error codes used by the HTTP layer itself
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed fall through to the prefix rules in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	// Auth
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_DISABLED":    http.StatusForbidden,

	// Resources
	ErrCodeNotFound:        http.StatusNotFound,
	"ITEM_NOT_FOUND":       http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"ALREADY_INVOICED":     http.StatusConflict,

	// Business rules
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,
	"OVERPAYMENT":        http.StatusUnprocessableEntity,
	"NO_ITEMS":           http.StatusUnprocessableEntity,
	"WEAK_PASSWORD":      http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// INVALID_* codes map to 400, DUPLICATE_* codes to 409; anything else
// unknown is treated as an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if len(code) > 8 && code[:8] == "INVALID_" {
		return http.StatusBadRequest
	}
	if len(code) > 10 && code[:10] == "DUPLICATE_" {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
