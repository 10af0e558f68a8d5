package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified restkit error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an *AppError with the same code, so that
// errors.Is(err, &AppError{Code: ErrCodeParse}) matches any parse error.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Constructors ---

// MissingOperationLocation reports an initial response without a polling URI.
func MissingOperationLocation(header string) *AppError {
	return &AppError{
		Code:    ErrCodeMissingOperationLocation,
		Message: fmt.Sprintf("initial response has no %s header", header),
		Details: map[string]any{"header": header},
	}
}

// MissingLocationHeader reports that the Location final-state mode found no Location header.
func MissingLocationHeader() *AppError {
	return &AppError{
		Code:    ErrCodeMissingLocationHeader,
		Message: "final state is read from the Location header, but no response carries one",
		Details: map[string]any{"header": "Location"},
	}
}

// NullFinalStateURI reports the custom final-state mode without a URI.
func NullFinalStateURI() *AppError {
	return &AppError{
		Code:    ErrCodeNullFinalStateURI,
		Message: "final state uses a custom URI, but none was supplied",
	}
}

// Parse reports malformed JSON in a response body.
func Parse(reason string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeParse,
		Message: fmt.Sprintf("invalid JSON: %s", reason),
		Cause:   cause,
	}
}

// PropertyNotFound reports a required top-level property that is absent.
func PropertyNotFound(property string) *AppError {
	return &AppError{
		Code:    ErrCodePropertyNotFound,
		Message: fmt.Sprintf("property %q not found", property),
		Details: map[string]any{"property": property},
	}
}

// OperationFailed reports an operation whose status mapped to failure.
func OperationFailed(operationID, status string, statusCode int) *AppError {
	return &AppError{
		Code:    ErrCodeOperationFailed,
		Message: fmt.Sprintf("operation %s finished with status %q", operationID, status),
		Details: map[string]any{
			"operation_id": operationID,
			"status":       status,
			"status_code":  statusCode,
		},
	}
}

// NoValue reports a value request on an operation that has not succeeded.
func NoValue(operationID string) *AppError {
	return &AppError{
		Code:    ErrCodeNoValue,
		Message: fmt.Sprintf("operation %s has no value", operationID),
		Details: map[string]any{"operation_id": operationID},
	}
}

// InvalidInput creates a new AppError for an invalid argument.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "an unexpected error occurred",
		Cause: cause,
	}
}

// --- Inspection ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err wraps an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
