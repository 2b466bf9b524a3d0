package dto

import (
	"net/http"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
)

// Transport-level error codes. Domain codes pass through unchanged; these
// cover failures that never reach the domain layer.
const (
	// ErrCodeBadRequest is used for malformed requests (bad JSON, bad params)
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeUnauthorized is used when the caller identity is missing or invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodePayloadTooLarge is used when the request body exceeds the limit
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
// Precondition failures (closed month, pending receipts blocking a close)
// are state conflicts, not bad input, hence 422.
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeNotFound:            http.StatusNotFound,
	shared.CodeValidationFailed:    http.StatusBadRequest,
	shared.CodePreconditionFailed:  http.StatusUnprocessableEntity,
	shared.CodeAlreadyExists:       http.StatusConflict,
	shared.CodeConcurrencyConflict: http.StatusConflict,
	shared.CodeUpstreamUnavailable: http.StatusServiceUnavailable,

	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodePayloadTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to
// 500 for codes it does not know.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
