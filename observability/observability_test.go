package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/kbukum/restkit/version"
)

func useRecorder(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return exporter
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
	if cfg.ServiceVersion != version.Short() {
		t.Errorf("expected build version, got %s", cfg.ServiceVersion)
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestNewMetrics_Noop(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordPoll(ctx, "pending", 10*time.Millisecond)
	metrics.RecordOperationCompleted(ctx, "succeeded")
	metrics.RecordPage(ctx, 3, 5*time.Millisecond)
	metrics.RecordError(ctx, "parse", "paging")
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordPoll(ctx, "pending", time.Millisecond)
	m.RecordOperationCompleted(ctx, "failed")
	m.RecordPage(ctx, 1, time.Millisecond)
	m.RecordError(ctx, "transport", "lro")
}

func TestMetrics_Recorded(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	metrics.RecordPage(ctx, 2, time.Millisecond)
	metrics.RecordPage(ctx, 0, time.Millisecond)
	metrics.RecordPoll(ctx, "pending", time.Millisecond)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if data, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range data.DataPoints {
					sums[m.Name] += dp.Value
				}
			}
		}
	}

	if sums["paging.page.total"] != 2 {
		t.Errorf("paging.page.total = %d, want 2", sums["paging.page.total"])
	}
	if sums["paging.item.total"] != 2 {
		t.Errorf("paging.item.total = %d, want 2", sums["paging.item.total"])
	}
	if sums["lro.poll.total"] != 1 {
		t.Errorf("lro.poll.total = %d, want 1", sums["lro.poll.total"])
	}
}

func TestDefaultMetrics(t *testing.T) {
	if DefaultMetrics() == nil {
		t.Fatal("expected default metrics on the global provider")
	}
	if DefaultMetrics() != DefaultMetrics() {
		t.Error("expected the same instance on every call")
	}
}

func TestStartStep(t *testing.T) {
	exporter := useRecorder(t)

	_, step := StartStep(context.Background(), SpanOperationPoll, "lro",
		AttrOperationID, "https://example.test/ops/1",
		AttrStatusCode, 200,
		AttrHasNext, false,
		"ignored", struct{}{},
	)
	step.SetAttributes(AttrState, "pending")
	step.End(nil)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Name != SpanOperationPoll {
		t.Errorf("span name = %q", s.Name)
	}
	if v, ok := attrValue(s.Attributes, AttrComponent); !ok || v.AsString() != "lro" {
		t.Errorf("component attribute = %v", v)
	}
	if v, ok := attrValue(s.Attributes, AttrOperationID); !ok || v.AsString() != "https://example.test/ops/1" {
		t.Errorf("operation id attribute = %v", v)
	}
	if v, ok := attrValue(s.Attributes, AttrStatusCode); !ok || v.AsInt64() != 200 {
		t.Errorf("status code attribute = %v", v)
	}
	if v, ok := attrValue(s.Attributes, AttrState); !ok || v.AsString() != "pending" {
		t.Errorf("state attribute = %v", v)
	}
	if _, ok := attrValue(s.Attributes, "ignored"); ok {
		t.Error("unsupported attribute types should be dropped")
	}
	if s.Status.Code == codes.Error {
		t.Error("successful step should not be marked as error")
	}
}

func TestStartStep_Error(t *testing.T) {
	exporter := useRecorder(t)

	_, step := StartStep(context.Background(), SpanPageFetch, "paging", AttrPage, 2)
	step.End(fmt.Errorf("boom"))

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("expected error status, got %v", spans[0].Status.Code)
	}
	if v, ok := attrValue(spans[0].Attributes, AttrErrorMessage); !ok || v.AsString() != "boom" {
		t.Errorf("error attribute = %v", v)
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected the error to be recorded as an event")
	}
}

func TestStartStep_NonRecording(t *testing.T) {
	otel.SetTracerProvider(tracenoop.NewTracerProvider())
	_, step := StartStep(context.Background(), SpanPageFetch, "paging", AttrPage, 1)
	step.SetAttributes(AttrItems, 3)
	step.End(nil)
	if step.Duration() < 0 {
		t.Error("duration should not be negative")
	}
}

func TestSetSpanAttribute(t *testing.T) {
	exporter := useRecorder(t)

	ctx, span := StartSpan(context.Background(), "test-attrs")
	SetSpanAttribute(ctx, "string-key", "value")
	SetSpanAttribute(ctx, "int-key", 42)
	SetSpanAttribute(ctx, "int64-key", int64(100))
	SetSpanAttribute(ctx, "float-key", 3.14)
	SetSpanAttribute(ctx, "bool-key", true)
	SetSpanAttribute(ctx, "string-slice-key", []string{"a", "b"})
	SetSpanAttribute(ctx, "unsupported-key", struct{}{})
	span.End()

	attrs := exporter.GetSpans()[0].Attributes
	if len(attrs) != 6 {
		t.Errorf("expected 6 attributes, got %d", len(attrs))
	}
}

func TestSetSpanHelpers_NoSpan(t *testing.T) {
	ctx := context.Background()
	SetSpanAttribute(ctx, "key", "value")
	SetSpanError(ctx, fmt.Errorf("no span error"))
}

func TestSetSpanError(t *testing.T) {
	exporter := useRecorder(t)

	ctx, span := StartSpan(context.Background(), "test-error")
	SetSpanError(ctx, fmt.Errorf("test error"))
	span.End()

	if len(exporter.GetSpans()[0].Events) != 1 {
		t.Error("expected one error event")
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource("svc", "1.2.3", "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := res.Set().Value(attribute.Key(AttrServiceName)); !ok || v.AsString() != "svc" {
		t.Errorf("service.name = %v", v)
	}
}

func TestInitTracer(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		insecure   bool
	}{
		{"always sample", 1.0, true},
		{"never sample", 0.0, true},
		{"ratio based", 0.5, true},
		{"secure", 1.0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTracerConfig("test")
			cfg.SampleRate = tc.sampleRate
			cfg.Insecure = tc.insecure

			tp, err := InitTracer(context.Background(), &cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			shutdown(t, tp.Shutdown)
		})
	}
}

func TestInitMeter(t *testing.T) {
	cfg := DefaultMeterConfig("test")
	cfg.Interval = 0

	mp, err := InitMeter(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	shutdown(t, mp.Shutdown)
}

// shutdown flushes with a short deadline; no collector is listening.
func shutdown(t *testing.T, fn func(context.Context) error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = fn(ctx)
}
