package logger

import (
	"time"
)

// Standard field key constants for structured logging.
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldOperationID = "operation_id"
	FieldStatus      = "status"
	FieldState       = "state"
	FieldStatusCode  = "status_code"
	FieldURL         = "url"
	FieldPage        = "page"
	FieldItems       = "items"
	FieldHasNext     = "has_next"
	FieldRetryAfter  = "retry_after"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Debug("page fetched", logger.Fields(logger.FieldPage, 3, logger.FieldItems, 50))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for a step that failed.
func ErrorFields(url string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldURL:   url,
		FieldError: err.Error(),
	}
}

// MergeWithDuration adds a duration field to an existing map.
func MergeWithDuration(fields map[string]interface{}, d time.Duration) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields[FieldDuration] = d.Milliseconds()
	return fields
}
