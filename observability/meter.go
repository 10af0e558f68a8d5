package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/version"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	// ServiceVersion is the version of the service.
	ServiceVersion string `yaml:"service_version" mapstructure:"service_version"`
	// Environment is the deployment environment (dev, staging, prod).
	Environment string `yaml:"environment" mapstructure:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// Insecure allows insecure connections (for development).
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// Interval is the metric export interval.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.Short(),
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.GetGlobalLogger().Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded by operation polling and paging.
type Metrics struct {
	pollTotal      metric.Int64Counter
	pollDuration   metric.Float64Histogram
	operationTotal metric.Int64Counter
	pageTotal      metric.Int64Counter
	pageDuration   metric.Float64Histogram
	itemTotal      metric.Int64Counter
	errorTotal     metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	pollTotal, err := meter.Int64Counter("lro.poll.total",
		metric.WithDescription("Total number of operation polls by resulting state"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating lro.poll.total counter: %w", err)
	}

	pollDuration, err := meter.Float64Histogram("lro.poll.duration",
		metric.WithDescription("Duration of operation polls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating lro.poll.duration histogram: %w", err)
	}

	operationTotal, err := meter.Int64Counter("lro.operation.completed",
		metric.WithDescription("Operations that reached a terminal state"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating lro.operation.completed counter: %w", err)
	}

	pageTotal, err := meter.Int64Counter("paging.page.total",
		metric.WithDescription("Total number of pages fetched"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating paging.page.total counter: %w", err)
	}

	pageDuration, err := meter.Float64Histogram("paging.page.duration",
		metric.WithDescription("Duration of page fetches in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating paging.page.duration histogram: %w", err)
	}

	itemTotal, err := meter.Int64Counter("paging.item.total",
		metric.WithDescription("Total number of items read from pages"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating paging.item.total counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("error.total",
		metric.WithDescription("Total errors by type and component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error.total counter: %w", err)
	}

	return &Metrics{
		pollTotal:      pollTotal,
		pollDuration:   pollDuration,
		operationTotal: operationTotal,
		pageTotal:      pageTotal,
		pageDuration:   pageDuration,
		itemTotal:      itemTotal,
		errorTotal:     errorTotal,
	}, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns instruments on the global meter provider. They follow
// whatever provider InitMeter installs later. Returns nil if creation failed.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		m, err := NewMetrics(Meter(defaultTracerName))
		if err != nil {
			logger.GetGlobalLogger().Warn("metrics disabled", logger.Fields(logger.FieldError, err.Error()))
			return
		}
		defaultMetrics = m
	})
	return defaultMetrics
}

// RecordPoll records a single operation poll and the state it produced.
func (m *Metrics) RecordPoll(ctx context.Context, state string, duration time.Duration) {
	if m == nil {
		return
	}
	m.pollTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("state", state)))
	m.pollDuration.Record(ctx, duration.Seconds())
}

// RecordOperationCompleted records an operation's terminal transition.
func (m *Metrics) RecordOperationCompleted(ctx context.Context, state string) {
	if m == nil {
		return
	}
	m.operationTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("state", state)))
}

// RecordPage records a fetched page and the number of items it carried.
func (m *Metrics) RecordPage(ctx context.Context, items int, duration time.Duration) {
	if m == nil {
		return
	}
	m.pageTotal.Add(ctx, 1)
	m.itemTotal.Add(ctx, int64(items))
	m.pageDuration.Record(ctx, duration.Seconds())
}

// RecordError records an error by type and component.
func (m *Metrics) RecordError(ctx context.Context, errType, component string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("component", component),
	))
}
