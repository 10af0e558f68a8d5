package resilience

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// Backoff describes an exponential delay schedule.
type Backoff struct {
	// Initial is the delay before the second attempt.
	Initial time.Duration
	// Max caps every delay.
	Max time.Duration
	// Factor is the multiplier applied per attempt.
	Factor float64
	// Jitter adds randomness to each delay (0.0 to 1.0).
	Jitter float64
}

// Duration returns the delay after the given attempt (1-based).
func (b Backoff) Duration(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	factor := b.Factor
	if factor <= 0 {
		factor = 1
	}

	// initial * factor^(attempt-1)
	d := float64(b.Initial) * math.Pow(factor, float64(attempt-1))

	if b.Jitter > 0 {
		jitterRange := d * b.Jitter
		d += (rand.Float64()*2 - 1) * jitterRange
	}

	if b.Max > 0 && d > float64(b.Max) {
		d = float64(b.Max)
	}
	if d < 0 {
		d = float64(b.Initial)
	}

	return time.Duration(d)
}

// Sleep blocks for d or until ctx is done, returning ctx.Err() in the latter case.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
