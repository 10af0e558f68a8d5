package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors, raised while building an operation handle.
const (
	// ErrCodeMissingOperationLocation indicates the initial response carried no polling URI.
	ErrCodeMissingOperationLocation ErrorCode = "MISSING_OPERATION_LOCATION"
	// ErrCodeMissingLocationHeader indicates the Location final-state mode found no Location header.
	ErrCodeMissingLocationHeader ErrorCode = "MISSING_LOCATION_HEADER"
	// ErrCodeNullFinalStateURI indicates the custom final-state mode was chosen without a URI.
	ErrCodeNullFinalStateURI ErrorCode = "NULL_FINAL_STATE_URI"
	// ErrCodeInvalidInput indicates a caller-supplied argument is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Parse errors, raised while extracting fields from a response body.
const (
	// ErrCodeParse indicates malformed JSON or an unexpected token.
	ErrCodeParse ErrorCode = "PARSE_ERROR"
	// ErrCodePropertyNotFound indicates a required top-level property is absent.
	ErrCodePropertyNotFound ErrorCode = "PROPERTY_NOT_FOUND"
)

// Operation outcome errors.
const (
	// ErrCodeOperationFailed indicates the operation reported a failure terminal status.
	ErrCodeOperationFailed ErrorCode = "OPERATION_FAILED"
	// ErrCodeNoValue indicates a value was requested before the operation succeeded.
	ErrCodeNoValue ErrorCode = "NO_VALUE"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// None of the core codes are retryable: an operation that reported failure
// stays failed, and parse errors repeat for the same body.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeInternal: false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
