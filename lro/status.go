package lro

import "strings"

// Terminal classifies a terminal status value.
type Terminal int

const (
	TerminalSuccess Terminal = iota + 1
	TerminalFailure
)

// String returns the classification name.
func (t Terminal) String() string {
	switch t {
	case TerminalSuccess:
		return "success"
	case TerminalFailure:
		return "failure"
	default:
		return "unknown"
	}
}

var defaultStatuses = map[string]Terminal{
	"succeeded": TerminalSuccess,
	"failed":    TerminalFailure,
	"cancelled": TerminalFailure,
}

// StatusMap maps status strings to terminal classifications. Lookups ignore
// case. Statuses missing from the map are not terminal.
type StatusMap struct {
	entries map[string]Terminal
}

// NewStatusMap builds a map from the defaults (Succeeded, Failed, Cancelled)
// overlaid with the additional success values and then the additional failure
// values. A later registration replaces an earlier one.
func NewStatusMap(success, failure []string) StatusMap {
	m, _ := buildStatusMap(success, failure)
	return m
}

// buildStatusMap also reports registrations that flipped a default's classification.
func buildStatusMap(success, failure []string) (StatusMap, []string) {
	entries := make(map[string]Terminal, len(defaultStatuses)+len(success)+len(failure))
	for k, v := range defaultStatuses {
		entries[k] = v
	}

	var flipped []string
	register := func(values []string, t Terminal) {
		for _, v := range values {
			key := strings.ToLower(v)
			if def, ok := defaultStatuses[key]; ok && def != t {
				flipped = append(flipped, v)
			}
			entries[key] = t
		}
	}
	register(success, TerminalSuccess)
	register(failure, TerminalFailure)

	return StatusMap{entries: entries}, flipped
}

// Lookup classifies status. ok is false for non-terminal statuses.
func (m StatusMap) Lookup(status string) (Terminal, bool) {
	if m.entries == nil {
		t, ok := defaultStatuses[strings.ToLower(status)]
		return t, ok
	}
	t, ok := m.entries[strings.ToLower(status)]
	return t, ok
}
