package dto

import (
	"net/http"

	"github.com/restopos/backend/internal/domain/shared"
)

// Codes produced by the HTTP layer itself. Domain codes come from shared.
const (
	ErrCodeInternal      = "INTERNAL_ERROR"
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeRateLimited   = "RATE_LIMIT_EXCEEDED"
	ErrCodeTooLarge      = "REQUEST_TOO_LARGE"
	ErrCodeTokenRevoked  = "TOKEN_REVOKED"
	ErrCodeUnavailable   = "SERVICE_UNAVAILABLE"
	ErrCodeRouteNotFound = "ROUTE_NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// 400
	shared.CodeValidation:   http.StatusBadRequest,
	shared.CodeInvalidInput: http.StatusBadRequest,
	ErrCodeBadRequest:       http.StatusBadRequest,

	// 401
	shared.CodeUnauthorized:      http.StatusUnauthorized,
	shared.CodeInvalidCredential: http.StatusUnauthorized,
	shared.CodeAccountLocked:     http.StatusUnauthorized,
	shared.CodeAccountInactive:   http.StatusUnauthorized,
	shared.CodeTokenInvalid:      http.StatusUnauthorized,
	shared.CodeTokenExpired:      http.StatusUnauthorized,
	ErrCodeTokenRevoked:          http.StatusUnauthorized,

	// 403
	shared.CodeForbidden: http.StatusForbidden,

	// 404
	shared.CodeNotFound:  http.StatusNotFound,
	ErrCodeRouteNotFound: http.StatusNotFound,

	// 409: the request conflicts with current state
	shared.CodeConflict:          http.StatusConflict,
	shared.CodeAlreadyExists:     http.StatusConflict,
	shared.CodeInvalidState:      http.StatusConflict,
	shared.CodeInsufficientStock: http.StatusConflict,
	shared.CodeNoOpenPeriod:      http.StatusConflict,

	ErrCodeTooLarge:    http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited: http.StatusTooManyRequests,
	ErrCodeUnavailable: http.StatusServiceUnavailable,
	ErrCodeInternal:    http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
