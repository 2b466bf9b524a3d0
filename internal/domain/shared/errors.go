package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// WithDetail returns a copy of the error carrying an extra detail entry.
// Details let the presentation layer render a specific, actionable message
// (e.g. how many receipts are still pending) instead of a generic banner.
func (e *DomainError) WithDetail(key string, value any) *DomainError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &DomainError{Code: e.Code, Message: e.Message, Details: details}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes shared across components. Precondition failures carry a
// distinct code so callers can tell guard violations apart from bad input.
const (
	CodeNotFound            = "NOT_FOUND"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodePreconditionFailed  = "PRECONDITION_FAILED"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeAlreadyExists       = "ALREADY_EXISTS"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists       = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrValidationFailed    = NewDomainError(CodeValidationFailed, "Invalid input provided")
	ErrPreconditionFailed  = NewDomainError(CodePreconditionFailed, "Operation not allowed in current state")
	ErrUpstreamUnavailable = NewDomainError(CodeUpstreamUnavailable, "Required upstream data is unavailable")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
)

// NewValidationError creates a VALIDATION_FAILED error with a specific message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidationFailed, message)
}

// NewPreconditionError creates a PRECONDITION_FAILED error with a specific message
func NewPreconditionError(message string) *DomainError {
	return NewDomainError(CodePreconditionFailed, message)
}

// IsCode reports whether err is a DomainError with the given code
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	de, ok := err.(*DomainError)
	return ok && de.Code == code
}
