package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/Brownie44l1/pageserver/internal/server"

// Metrics holds server runtime metrics. Counters are kept locally for
// Snapshot and mirrored to OpenTelemetry instruments.
type Metrics struct {
	RequestsTotal     atomic.Int64
	ActiveConnections atomic.Int64
	ErrorsTotal       atomic.Int64
	Errors4xx         atomic.Int64
	Errors5xx         atomic.Int64
	DroppedTotal      atomic.Int64

	// Latency tracking (simplified)
	TotalLatencyNs atomic.Int64

	mu        sync.Mutex
	perWorker map[int]int64

	requests metric.Int64Counter
	dropped  metric.Int64Counter
	duration metric.Float64Histogram
	active   metric.Int64UpDownCounter
}

// NewMetrics creates metrics on the global meter provider
func NewMetrics() *Metrics {
	return NewMetricsWithMeter(otel.Meter(instrumentationName))
}

func NewMetricsWithMeter(meter metric.Meter) *Metrics {
	m := &Metrics{perWorker: make(map[int]int64)}

	var err error
	m.requests, err = meter.Int64Counter("pageserver.requests",
		metric.WithDescription("Responses written, by status code and worker"),
		metric.WithUnit("{request}"))
	if err != nil {
		m.requests = noop.Int64Counter{}
	}

	m.dropped, err = meter.Int64Counter("pageserver.connections.dropped",
		metric.WithDescription("Connections dropped on read or write failure"),
		metric.WithUnit("{connection}"))
	if err != nil {
		m.dropped = noop.Int64Counter{}
	}

	m.duration, err = meter.Float64Histogram("pageserver.request.duration",
		metric.WithDescription("Time from accept to response written"),
		metric.WithUnit("ms"))
	if err != nil {
		m.duration = noop.Float64Histogram{}
	}

	m.active, err = meter.Int64UpDownCounter("pageserver.connections.active",
		metric.WithDescription("Connections currently held by a worker"),
		metric.WithUnit("{connection}"))
	if err != nil {
		m.active = noop.Int64UpDownCounter{}
	}

	return m
}

func (m *Metrics) ConnectionOpened(ctx context.Context) {
	m.ActiveConnections.Add(1)
	m.active.Add(ctx, 1)
}

func (m *Metrics) ConnectionClosed(ctx context.Context) {
	m.ActiveConnections.Add(-1)
	m.active.Add(ctx, -1)
}

// RecordRequest records a response written by a worker
func (m *Metrics) RecordRequest(ctx context.Context, workerID, statusCode int, duration time.Duration) {
	m.RequestsTotal.Add(1)
	m.TotalLatencyNs.Add(duration.Nanoseconds())

	if statusCode >= 400 && statusCode < 500 {
		m.Errors4xx.Add(1)
	} else if statusCode >= 500 {
		m.Errors5xx.Add(1)
		m.ErrorsTotal.Add(1)
	}

	m.mu.Lock()
	m.perWorker[workerID]++
	m.mu.Unlock()

	attrs := metric.WithAttributes(
		attribute.Int("http.response.status_code", statusCode),
		attribute.Int("worker.id", workerID),
	)
	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, float64(duration)/float64(time.Millisecond), attrs)
}

// RecordDropped records a connection abandoned after an I/O failure
func (m *Metrics) RecordDropped(ctx context.Context, workerID int, stage string) {
	m.DroppedTotal.Add(1)
	m.ErrorsTotal.Add(1)
	m.dropped.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("worker.id", workerID),
		attribute.String("stage", stage),
	))
}

// AverageLatency returns average request latency
func (m *Metrics) AverageLatency() time.Duration {
	totalReqs := m.RequestsTotal.Load()
	if totalReqs == 0 {
		return 0
	}

	avgNs := m.TotalLatencyNs.Load() / totalReqs
	return time.Duration(avgNs)
}

// MetricsSnapshot is a point-in-time copy of Metrics
type MetricsSnapshot struct {
	RequestsTotal     int64
	ActiveConnections int64
	ErrorsTotal       int64
	Errors4xx         int64
	Errors5xx         int64
	DroppedTotal      int64
	AverageLatency    time.Duration
	// RequestsByWorker counts responses per worker id
	RequestsByWorker map[int]int64
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	byWorker := make(map[int]int64, len(m.perWorker))
	for id, n := range m.perWorker {
		byWorker[id] = n
	}
	m.mu.Unlock()

	return MetricsSnapshot{
		RequestsTotal:     m.RequestsTotal.Load(),
		ActiveConnections: m.ActiveConnections.Load(),
		ErrorsTotal:       m.ErrorsTotal.Load(),
		Errors4xx:         m.Errors4xx.Load(),
		Errors5xx:         m.Errors5xx.Load(),
		DroppedTotal:      m.DroppedTotal.Load(),
		AverageLatency:    m.AverageLatency(),
		RequestsByWorker:  byWorker,
	}
}
