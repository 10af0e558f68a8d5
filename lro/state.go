package lro

import "github.com/kbukum/restkit/httpclient"

// StateKind is the classification of one poll.
type StateKind int

const (
	StatePending StateKind = iota
	StateSucceeded
	StateFailed
)

// String returns the state name.
func (k StateKind) String() string {
	switch k {
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// OperationState is the outcome of a single poll. It is immutable.
type OperationState[T any] struct {
	kind   StateKind
	status string
	raw    *httpclient.Response
	value  T
}

// Kind returns the state classification.
func (s *OperationState[T]) Kind() StateKind { return s.kind }

// IsTerminal reports whether the state is Succeeded or Failed.
func (s *OperationState[T]) IsTerminal() bool { return s.kind != StatePending }

// Status returns the status string reported by the service.
func (s *OperationState[T]) Status() string { return s.status }

// RawResponse returns the response this state was derived from. For a
// succeeded state it is the final-state response the value came from.
func (s *OperationState[T]) RawResponse() *httpclient.Response { return s.raw }

// Value returns the operation's value. ok is false unless the state is Succeeded.
func (s *OperationState[T]) Value() (T, bool) {
	if s.kind != StateSucceeded {
		var zero T
		return zero, false
	}
	return s.value, true
}
