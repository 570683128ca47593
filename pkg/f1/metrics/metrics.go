// Package metrics registers and records application metrics through the OpenTelemetry metric SDK
// and exposes them in Prometheus format.
package metrics

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	errMetricDoesNotExist = errors.New("metric is not registered")
	errMetricExists       = errors.New("metric already registered")
	errLabelsNotEven      = errors.New("labels must be key/value pairs")
)

type Logger interface {
	Errorf(format string, args ...any)
	Warnf(format string, args ...any)
}

// Manager is the metrics surface used by the datasource, middleware and server code.
type Manager interface {
	NewCounter(name, desc string)
	NewUpDownCounter(name, desc string)
	NewHistogram(name, desc string, buckets ...float64)
	NewGauge(name, desc string)

	IncrementCounter(ctx context.Context, name string, labels ...string)
	DeltaUpDownCounter(ctx context.Context, name string, value float64, labels ...string)
	RecordHistogram(ctx context.Context, name string, value float64, labels ...string)
	SetGauge(name string, value float64, labels ...string)
}

type metricsManager struct {
	meter  metric.Meter
	logger Logger

	mu         sync.RWMutex
	counters   map[string]metric.Int64Counter
	upDowns    map[string]metric.Float64UpDownCounter
	histograms map[string]metric.Float64Histogram
	gauges     map[string]metric.Float64Gauge
}

// NewMetricsManager creates a Manager recording on meter.
func NewMetricsManager(meter metric.Meter, logger Logger) Manager {
	return &metricsManager{
		meter:      meter,
		logger:     logger,
		counters:   make(map[string]metric.Int64Counter),
		upDowns:    make(map[string]metric.Float64UpDownCounter),
		histograms: make(map[string]metric.Float64Histogram),
		gauges:     make(map[string]metric.Float64Gauge),
	}
}

func (m *metricsManager) exists(name string) bool {
	_, c := m.counters[name]
	_, u := m.upDowns[name]
	_, h := m.histograms[name]
	_, g := m.gauges[name]

	return c || u || h || g
}

func (m *metricsManager) NewCounter(name, desc string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.exists(name) {
		m.logger.Warnf("%v: %v", errMetricExists, name)
		return
	}

	c, err := m.meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		m.logger.Errorf("error creating counter %v: %v", name, err)
		return
	}

	m.counters[name] = c
}

func (m *metricsManager) NewUpDownCounter(name, desc string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.exists(name) {
		m.logger.Warnf("%v: %v", errMetricExists, name)
		return
	}

	c, err := m.meter.Float64UpDownCounter(name, metric.WithDescription(desc))
	if err != nil {
		m.logger.Errorf("error creating up-down counter %v: %v", name, err)
		return
	}

	m.upDowns[name] = c
}

func (m *metricsManager) NewHistogram(name, desc string, buckets ...float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.exists(name) {
		m.logger.Warnf("%v: %v", errMetricExists, name)
		return
	}

	opts := []metric.Float64HistogramOption{metric.WithDescription(desc)}
	if len(buckets) > 0 {
		opts = append(opts, metric.WithExplicitBucketBoundaries(buckets...))
	}

	h, err := m.meter.Float64Histogram(name, opts...)
	if err != nil {
		m.logger.Errorf("error creating histogram %v: %v", name, err)
		return
	}

	m.histograms[name] = h
}

func (m *metricsManager) NewGauge(name, desc string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.exists(name) {
		m.logger.Warnf("%v: %v", errMetricExists, name)
		return
	}

	g, err := m.meter.Float64Gauge(name, metric.WithDescription(desc))
	if err != nil {
		m.logger.Errorf("error creating gauge %v: %v", name, err)
		return
	}

	m.gauges[name] = g
}

func (m *metricsManager) IncrementCounter(ctx context.Context, name string, labels ...string) {
	m.mu.RLock()
	c, ok := m.counters[name]
	m.mu.RUnlock()

	if !ok {
		m.logger.Errorf("%v: %v", errMetricDoesNotExist, name)
		return
	}

	attrs, err := toAttributes(labels)
	if err != nil {
		m.logger.Errorf("%v: %v", name, err)
		return
	}

	c.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (m *metricsManager) DeltaUpDownCounter(ctx context.Context, name string, value float64, labels ...string) {
	m.mu.RLock()
	c, ok := m.upDowns[name]
	m.mu.RUnlock()

	if !ok {
		m.logger.Errorf("%v: %v", errMetricDoesNotExist, name)
		return
	}

	attrs, err := toAttributes(labels)
	if err != nil {
		m.logger.Errorf("%v: %v", name, err)
		return
	}

	c.Add(ctx, value, metric.WithAttributes(attrs...))
}

func (m *metricsManager) RecordHistogram(ctx context.Context, name string, value float64, labels ...string) {
	m.mu.RLock()
	h, ok := m.histograms[name]
	m.mu.RUnlock()

	if !ok {
		m.logger.Errorf("%v: %v", errMetricDoesNotExist, name)
		return
	}

	attrs, err := toAttributes(labels)
	if err != nil {
		m.logger.Errorf("%v: %v", name, err)
		return
	}

	h.Record(ctx, value, metric.WithAttributes(attrs...))
}

func (m *metricsManager) SetGauge(name string, value float64, labels ...string) {
	m.mu.RLock()
	g, ok := m.gauges[name]
	m.mu.RUnlock()

	if !ok {
		m.logger.Errorf("%v: %v", errMetricDoesNotExist, name)
		return
	}

	attrs, err := toAttributes(labels)
	if err != nil {
		m.logger.Errorf("%v: %v", name, err)
		return
	}

	g.Record(context.Background(), value, metric.WithAttributes(attrs...))
}

func toAttributes(labels []string) ([]attribute.KeyValue, error) {
	if len(labels)%2 != 0 {
		return nil, errLabelsNotEven
	}

	attrs := make([]attribute.KeyValue, 0, len(labels)/2)
	for i := 0; i < len(labels); i += 2 {
		attrs = append(attrs, attribute.String(labels[i], labels[i+1]))
	}

	return attrs, nil
}
