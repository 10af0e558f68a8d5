package lro

import (
	"time"

	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/observability"
	"github.com/kbukum/restkit/resilience"
)

// Header names read from operation responses.
const (
	HeaderOperationLocation = "Operation-Location"
	HeaderLocation          = "Location"
	HeaderRetryAfter        = "Retry-After"
)

// FinalStateVia selects where a succeeded operation's value is read from.
type FinalStateVia int

const (
	// FinalStateDefault reads the value from the terminal poll response.
	FinalStateDefault FinalStateVia = iota
	// FinalStateUseLocationHeader fetches the URI in the Location header.
	FinalStateUseLocationHeader
	// FinalStateUseCustomURI fetches GetOperationOptions.FinalStateURI.
	FinalStateUseCustomURI
)

// String returns the policy name.
func (f FinalStateVia) String() string {
	switch f {
	case FinalStateDefault:
		return "default"
	case FinalStateUseLocationHeader:
		return "location"
	case FinalStateUseCustomURI:
		return "custom-uri"
	default:
		return "unknown"
	}
}

// GetOperationOptions configures an Operation.
type GetOperationOptions struct {
	// AdditionalSuccessfulStatusValues are extra statuses classified as success.
	AdditionalSuccessfulStatusValues []string
	// AdditionalFailureStatusValues are extra statuses classified as failure.
	// They are registered after the success values and win on conflict.
	AdditionalFailureStatusValues []string
	// FinalState selects the value source once the operation succeeds.
	FinalState FinalStateVia
	// FinalStateURI is required with FinalStateUseCustomURI.
	FinalStateURI string
	// RequestOptions apply to every poll and final-state GET.
	RequestOptions []httpclient.RequestOption
	// StatusProperty names the status property. Defaults to "status".
	StatusProperty string
	// Logger defaults to the global logger.
	Logger *logger.Logger
	// Metrics defaults to observability.DefaultMetrics.
	Metrics *observability.Metrics
}

// PollingConfig controls the delay between polls in WaitForCompletion.
// A Retry-After header on a pending response replaces the computed delay.
type PollingConfig struct {
	// Interval is the delay after the first pending poll.
	Interval time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
	// MaxInterval caps the delay. Zero means no cap.
	MaxInterval time.Duration `yaml:"max_interval" mapstructure:"max_interval" validate:"gte=0"`
	// Multiplier grows the delay after every pending poll. Values <= 1 keep it constant.
	Multiplier float64 `yaml:"multiplier" mapstructure:"multiplier" validate:"gte=0"`
}

// DefaultPollingConfig polls after 1s, growing by half each time up to 30s.
func DefaultPollingConfig() PollingConfig {
	return PollingConfig{
		Interval:    time.Second,
		MaxInterval: 30 * time.Second,
		Multiplier:  1.5,
	}
}

// ApplyDefaults fills in zero-value fields.
func (c *PollingConfig) ApplyDefaults() {
	if c.Interval <= 0 {
		c.Interval = time.Second
	}
	if c.Multiplier <= 0 {
		c.Multiplier = 1
	}
}

func (c PollingConfig) backoff() resilience.Backoff {
	return resilience.Backoff{
		Initial: c.Interval,
		Max:     c.MaxInterval,
		Factor:  c.Multiplier,
	}
}
