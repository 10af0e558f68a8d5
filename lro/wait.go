package lro

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kbukum/restkit/async"
	apperrors "github.com/kbukum/restkit/errors"
	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/observability"
	"github.com/kbukum/restkit/resilience"
)

// WaitForCompletion polls until the operation is terminal and returns its
// value. A failed operation is returned as an OPERATION_FAILED error.
// Cancelling ctx stops the loop and leaves the operation pending.
func (o *Operation[T]) WaitForCompletion(ctx context.Context, cfg PollingConfig) (T, error) {
	return o.wait(ctx, cfg)
}

// WaitForCompletionAsync runs WaitForCompletion on its own goroutine.
func (o *Operation[T]) WaitForCompletionAsync(ctx context.Context, cfg PollingConfig) *async.Future[T] {
	return async.Go(ctx, func(ctx context.Context) (T, error) {
		return o.wait(ctx, cfg)
	})
}

func (o *Operation[T]) wait(ctx context.Context, cfg PollingConfig) (T, error) {
	var zero T
	cfg.ApplyDefaults()
	schedule := cfg.backoff()

	ctx, step := observability.StartStep(ctx, observability.SpanOperationWait, component,
		observability.AttrOperationID, o.id)

	for attempt := 1; ; attempt++ {
		st, err := o.poll(ctx)
		if err != nil {
			step.End(err)
			return zero, err
		}

		switch st.kind {
		case StateSucceeded:
			step.SetAttributes(observability.AttrState, st.kind.String())
			step.End(nil)
			return st.value, nil
		case StateFailed:
			err := apperrors.OperationFailed(o.id, st.status, st.raw.StatusCode)
			step.End(err)
			return zero, err
		}

		delay := schedule.Duration(attempt)
		if d, ok := retryAfter(st.raw); ok {
			delay = retryAfterDelay(d, delay)
			o.log.Debug("honoring retry-after", logger.Fields(logger.FieldRetryAfter, delay.String()))
		}
		if err := resilience.Sleep(ctx, delay); err != nil {
			step.End(err)
			return zero, err
		}
	}
}

// minRetryAfter is the shortest wait a Retry-After hint can impose when the
// polling schedule itself asks for more.
const minRetryAfter = 100 * time.Millisecond

// retryAfterDelay returns the wait for a Retry-After hint. Hints of zero or in
// the past are raised to minRetryAfter, or to the scheduled delay if that is
// shorter, so a service cannot drive a tight poll loop.
func retryAfterDelay(hint, scheduled time.Duration) time.Duration {
	if hint >= minRetryAfter {
		return hint
	}
	return max(hint, min(minRetryAfter, scheduled))
}

// retryAfter parses a Retry-After header given in seconds or as an HTTP date.
func retryAfter(resp *httpclient.Response) (time.Duration, bool) {
	v, ok := resp.Header(HeaderRetryAfter)
	if !ok {
		return 0, false
	}
	v = strings.TrimSpace(v)
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	if at, err := http.ParseTime(v); err == nil {
		d := time.Until(at)
		if d < 0 {
			d = 0
		}
		return d, true
	}
	return 0, false
}
