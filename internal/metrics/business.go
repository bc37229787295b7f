package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	apperrors "github.com/allisson/utilkit/internal/errors"
)

// Domain groups related operations under one label value.
type Domain string

const (
	// DomainSettings covers protected setting store operations.
	DomainSettings Domain = "settings"
	// DomainCrypto covers protector operations.
	DomainCrypto Domain = "crypto"
)

// Operation names one instrumented call.
type Operation string

const (
	OpSettingRead    Operation = "setting_read"
	OpSettingWrite   Operation = "setting_write"
	OpSettingDeclare Operation = "setting_declare"
	OpSettingKeys    Operation = "setting_keys"

	OpProtectorInit Operation = "init"
	OpProtect       Operation = "protect"
	OpUnprotect     Operation = "unprotect"
)

// Status is the outcome label of an operation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// StatusOf maps an operation error to its status.
func StatusOf(err error) Status {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}

// ErrorReason is the reason label of a failed operation: the apperrors.Code of err, or ""
// for a nil error.
func ErrorReason(err error) string {
	return apperrors.Code(err)
}

// BusinessMetrics records settings and crypto operations.
type BusinessMetrics interface {
	// Observe records one finished operation: it increments the operation counter and adds
	// duration to the latency histogram. A non-nil err marks the operation as failed and
	// labels it with ErrorReason(err).
	Observe(ctx context.Context, domain Domain, operation Operation, duration time.Duration, err error)
}

type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
}

// NewBusinessMetrics creates the otel instruments <namespace>_operations_total and
// <namespace>_operation_duration_seconds.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of settings and crypto operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of settings and crypto operations in seconds"),
		metric.WithUnit("s"),
		// Key file protection runs PBKDF2 on every call, so most operations take milliseconds.
		metric.WithExplicitBucketBoundaries(0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
	}, nil
}

func (b *businessMetrics) Observe(
	ctx context.Context,
	domain Domain,
	operation Operation,
	duration time.Duration,
	err error,
) {
	attrs := []attribute.KeyValue{
		attribute.String("domain", string(domain)),
		attribute.String("operation", string(operation)),
		attribute.String("status", string(StatusOf(err))),
	}
	b.durationHisto.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))

	if reason := ErrorReason(err); reason != "" {
		attrs = append(attrs, attribute.String("reason", reason))
	}
	b.operationCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// NoOpBusinessMetrics discards every observation; it is used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

// Observe does nothing.
func (n *NoOpBusinessMetrics) Observe(context.Context, Domain, Operation, time.Duration, error) {}
