package monitoring

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// InitSystemMetrics registers process uptime on meter.
func InitSystemMetrics(_ context.Context, meter metric.Meter) error {
	start := time.Now()
	uptime, err := meter.Float64ObservableGauge(
		"techtrends_uptime_seconds",
		metric.WithDescription("Service uptime in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("create uptime gauge: %w", err)
	}
	if _, err := meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveFloat64(uptime, time.Since(start).Seconds())
		return nil
	}, uptime); err != nil {
		return fmt.Errorf("register uptime callback: %w", err)
	}
	return nil
}

// ConnectionSource reports the cumulative number of storage connections opened.
type ConnectionSource interface {
	Load() int64
}

// RegisterConnectionMetrics exposes the storage connection counter as a monotonic counter.
func RegisterConnectionMetrics(meter metric.Meter, src ConnectionSource) (metric.Registration, error) {
	opened, err := meter.Int64ObservableCounter(
		"techtrends_db_connections_opened_total",
		metric.WithDescription("Storage connections opened since process start"),
	)
	if err != nil {
		return nil, fmt.Errorf("create db connections counter: %w", err)
	}
	reg, err := meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(opened, src.Load())
		return nil
	}, opened)
	if err != nil {
		return nil, fmt.Errorf("register db connections callback: %w", err)
	}
	return reg, nil
}
