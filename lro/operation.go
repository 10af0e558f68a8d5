package lro

import (
	"context"
	"sync"

	"github.com/kbukum/restkit/async"
	apperrors "github.com/kbukum/restkit/errors"
	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/jsonscan"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/observability"
)

const component = "lro"

// Operation is a handle on a long-running operation. It is safe for
// concurrent use; the terminal state is recorded once and never replaced.
type Operation[T any] struct {
	getter         httpclient.Getter
	id             string
	initial        *httpclient.Response
	selector       ResultSelector[T]
	statuses       StatusMap
	finalState     FinalStateVia
	finalStateURI  string
	requestOptions []httpclient.RequestOption
	statusProperty string
	log            *logger.Logger
	metrics        *observability.Metrics

	mu       sync.Mutex
	current  *httpclient.Response
	terminal *OperationState[T]
}

// CreateOperation builds a handle from the response that accepted the
// operation. It performs no I/O. The response must carry an
// Operation-Location header; FinalStateUseCustomURI requires FinalStateURI.
func CreateOperation[T any](getter httpclient.Getter, initial *httpclient.Response, selector ResultSelector[T], opts *GetOperationOptions) (*Operation[T], error) {
	if opts == nil {
		opts = &GetOperationOptions{}
	}
	if getter == nil {
		return nil, apperrors.InvalidInput("getter", "must not be nil")
	}
	if initial == nil {
		return nil, apperrors.InvalidInput("initial", "must not be nil")
	}
	if selector == nil {
		return nil, apperrors.InvalidInput("selector", "must not be nil")
	}

	id, ok := initial.Header(HeaderOperationLocation)
	if !ok || id == "" {
		return nil, apperrors.MissingOperationLocation(HeaderOperationLocation)
	}

	switch opts.FinalState {
	case FinalStateDefault, FinalStateUseLocationHeader:
	case FinalStateUseCustomURI:
		if opts.FinalStateURI == "" {
			return nil, apperrors.NullFinalStateURI()
		}
	default:
		return nil, apperrors.InvalidInput("final_state", "unknown final-state policy")
	}

	log := logger.OrGlobal(opts.Logger, component).WithFields(logger.Fields(logger.FieldOperationID, id))

	statuses, flipped := buildStatusMap(opts.AdditionalSuccessfulStatusValues, opts.AdditionalFailureStatusValues)
	for _, s := range flipped {
		log.Warn("status value overrides its default classification", logger.Fields(logger.FieldStatus, s))
	}

	metrics := opts.Metrics
	if metrics == nil {
		metrics = observability.DefaultMetrics()
	}

	return &Operation[T]{
		getter:         getter,
		id:             id,
		initial:        initial,
		selector:       selector,
		statuses:       statuses,
		finalState:     opts.FinalState,
		finalStateURI:  opts.FinalStateURI,
		requestOptions: opts.RequestOptions,
		statusProperty: opts.StatusProperty,
		log:            log,
		metrics:        metrics,
		current:        initial,
	}, nil
}

// ID returns the polling URI, which identifies the operation.
func (o *Operation[T]) ID() string { return o.id }

// RawResponse returns the most recent response: the initial response before
// the first poll, the last pending poll response, or the terminal response.
func (o *Operation[T]) RawResponse() *httpclient.Response {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// HasCompleted reports whether a terminal state was reached.
func (o *Operation[T]) HasCompleted() bool {
	return o.terminalState() != nil
}

// HasValue reports whether the operation succeeded and holds a value.
func (o *Operation[T]) HasValue() bool {
	st := o.terminalState()
	return st != nil && st.kind == StateSucceeded
}

// Value returns the cached value of a succeeded operation. It fails with
// NO_VALUE while the operation is pending or after it failed.
func (o *Operation[T]) Value() (T, error) {
	st := o.terminalState()
	if st == nil || st.kind != StateSucceeded {
		var zero T
		return zero, apperrors.NoValue(o.id)
	}
	return st.value, nil
}

// Poll issues one status request and returns the resulting state. Once the
// operation is terminal, Poll returns the recorded terminal state without I/O.
// Transport errors, including cancellation, are returned unchanged and leave
// the operation as it was.
func (o *Operation[T]) Poll(ctx context.Context) (*OperationState[T], error) {
	return o.poll(ctx)
}

// PollAsync runs Poll on its own goroutine.
func (o *Operation[T]) PollAsync(ctx context.Context) *async.Future[*OperationState[T]] {
	return async.Go(ctx, o.poll)
}

func (o *Operation[T]) terminalState() *OperationState[T] {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.terminal
}

func (o *Operation[T]) poll(ctx context.Context) (*OperationState[T], error) {
	if st := o.terminalState(); st != nil {
		return st, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, step := observability.StartStep(ctx, observability.SpanOperationPoll, component,
		observability.AttrOperationID, o.id)
	st, err := o.step(ctx)
	if err != nil {
		o.metrics.RecordError(ctx, errorType(err), component)
		o.log.Debug("poll failed", logger.ErrorFields(o.id, err))
		step.End(err)
		return nil, err
	}

	step.SetAttributes(
		observability.AttrStatus, st.status,
		observability.AttrState, st.kind.String(),
		observability.AttrStatusCode, st.raw.StatusCode,
	)
	step.End(nil)
	o.metrics.RecordPoll(ctx, st.kind.String(), step.Duration())
	return st, nil
}

// step performs the I/O of one poll and classifies the result.
func (o *Operation[T]) step(ctx context.Context) (*OperationState[T], error) {
	resp, err := o.getter.SendGet(ctx, o.id, o.requestOptions...)
	if err != nil {
		return nil, err
	}

	status, err := jsonscan.ReadStatus(resp.Body, o.statusProperty)
	if err != nil {
		return nil, err
	}

	terminal, ok := o.statuses.Lookup(status)
	if !ok {
		o.log.Debug("operation pending", logger.Fields(
			logger.FieldStatus, status,
			logger.FieldState, StatePending.String(),
		))
		return o.pending(resp, status), nil
	}

	if terminal == TerminalFailure {
		return o.complete(ctx, &OperationState[T]{kind: StateFailed, status: status, raw: resp}), nil
	}

	source, err := o.finalStateResponse(ctx, resp)
	if err != nil {
		return nil, err
	}
	value, err := o.selector(source)
	if err != nil {
		return nil, err
	}
	return o.complete(ctx, &OperationState[T]{kind: StateSucceeded, status: status, raw: source, value: value}), nil
}

func (o *Operation[T]) pending(resp *httpclient.Response, status string) *OperationState[T] {
	o.mu.Lock()
	defer o.mu.Unlock()
	// A concurrent poll may already have finished the operation.
	if o.terminal != nil {
		return o.terminal
	}
	o.current = resp
	return &OperationState[T]{kind: StatePending, status: status, raw: resp}
}

// complete records st as the terminal state unless another poll got there
// first, in which case the recorded state is returned instead.
func (o *Operation[T]) complete(ctx context.Context, st *OperationState[T]) *OperationState[T] {
	o.mu.Lock()
	if o.terminal != nil {
		existing := o.terminal
		o.mu.Unlock()
		return existing
	}
	o.terminal = st
	o.current = st.raw
	o.mu.Unlock()

	o.log.Info("operation completed", logger.Fields(
		logger.FieldStatus, st.status,
		logger.FieldState, st.kind.String(),
		logger.FieldStatusCode, st.raw.StatusCode,
	))
	o.metrics.RecordOperationCompleted(ctx, st.kind.String())
	return st
}

// finalStateResponse returns the response a succeeded operation's value is read from.
func (o *Operation[T]) finalStateResponse(ctx context.Context, terminal *httpclient.Response) (*httpclient.Response, error) {
	switch o.finalState {
	case FinalStateUseLocationHeader:
		loc, ok := terminal.Header(HeaderLocation)
		if !ok || loc == "" {
			loc, ok = o.initial.Header(HeaderLocation)
		}
		if !ok || loc == "" {
			return nil, apperrors.MissingLocationHeader()
		}
		return o.getter.SendGet(ctx, loc, o.requestOptions...)
	case FinalStateUseCustomURI:
		return o.getter.SendGet(ctx, o.finalStateURI, o.requestOptions...)
	default:
		return terminal, nil
	}
}

func errorType(err error) string {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	if httpclient.IsCanceled(err) {
		return "canceled"
	}
	return "transport"
}
