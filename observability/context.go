package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Step traces one network-bound step of a poll or page enumeration.
type Step struct {
	Component string
	StartTime time.Time
	span      trace.Span
}

// StartStep starts a span named spanName tagged with the component and the
// given attributes. Values of unsupported types are dropped.
func StartStep(ctx context.Context, spanName, component string, attrs ...any) (context.Context, *Step) {
	ctx, span := StartSpan(ctx, spanName, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(attribute.String(AttrComponent, component))
	setAttributes(span, attrs...)
	return ctx, &Step{Component: component, StartTime: time.Now(), span: span}
}

// SetAttributes adds alternating key-value attributes to the step's span.
func (s *Step) SetAttributes(attrs ...any) {
	setAttributes(s.span, attrs...)
}

// End ends the span, marking it failed when err is non-nil.
func (s *Step) End(err error) {
	s.span.SetAttributes(attribute.Int64(AttrDurationMs, s.Duration().Milliseconds()))
	if err != nil {
		s.span.RecordError(err)
		s.span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
		s.span.SetStatus(codes.Error, err.Error())
	}
	s.span.End()
}

// Duration returns the elapsed time since the step started.
func (s *Step) Duration() time.Duration {
	return time.Since(s.StartTime)
}

func setAttributes(span trace.Span, attrs ...any) {
	if !span.IsRecording() {
		return
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		key, ok := attrs[i].(string)
		if !ok {
			continue
		}
		if kv, ok := toAttribute(key, attrs[i+1]); ok {
			span.SetAttributes(kv)
		}
	}
}
