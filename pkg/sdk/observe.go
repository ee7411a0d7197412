package analyzer

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// observer reports client operations to an optional slog.Logger and an
// optional prometheus.Registerer. A nil observer, logger or metric set
// is silently inert so callers never branch on configuration.
type observer struct {
	logger     *slog.Logger
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg == nil {
		return o, nil
	}

	var err error
	o.operations, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fna",
		Subsystem: "sdk",
		Name:      "operations_total",
		Help:      "Total client operations by type and status.",
	}, []string{"operation", "status"}))
	if err != nil {
		return nil, err
	}
	o.latency, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fna",
		Subsystem: "sdk",
		Name:      "operation_duration_seconds",
		Help:      "Client operation duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"}))
	if err != nil {
		return nil, err
	}
	return o, nil
}

// register adds c to reg. When a second client shares the registerer the
// collector from the first one is reused instead of failing.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing, nil
		}
		var zero T
		return zero, fmt.Errorf("analyzer: metric already registered with incompatible type: %T", are.ExistingCollector)
	}
	var zero T
	return zero, fmt.Errorf("analyzer: register metric: %w", err)
}

func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	elapsed := time.Since(start)

	if o.operations != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		o.operations.WithLabelValues(op, status).Inc()
		o.latency.WithLabelValues(op).Observe(elapsed.Seconds())
	}

	if o.logger == nil {
		return
	}
	if err != nil {
		o.logger.Warn("operation failed",
			"op", op,
			"duration", elapsed,
			"error", err,
		)
		return
	}
	o.logger.Debug("operation completed",
		"op", op,
		"duration", elapsed,
	)
}
