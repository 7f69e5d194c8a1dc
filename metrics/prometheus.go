// Package metrics provides ready-made types.MetricsCollector
// implementations for observing a session from the outside.
package metrics

import (
	"sync"

	"github.com/humphreyyy/sitzplatz/types"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Metric registration is deferred until first use via sync.Once, so
// constructing a collector that is never exercised registers nothing.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	// Session metrics
	commitCounter   *prometheus.CounterVec
	commitLatency   *prometheus.HistogramVec
	validationGauge *prometheus.GaugeVec
	validationRuns  prometheus.Counter

	// Engine metrics
	placementCounter *prometheus.CounterVec
	occupancyGauge   prometheus.Gauge

	// Lease metrics
	leaseAcquires  *prometheus.CounterVec
	leaseRefreshes *prometheus.CounterVec
	leaseAgeGauge  prometheus.Gauge

	// History metrics
	historyDepthGauge *prometheus.GaugeVec
	historyEvictions  prometheus.Counter
	historyRestores   *prometheus.CounterVec

	// Store metrics
	storeOps      *prometheus.CounterVec
	storeLatency  *prometheus.HistogramVec
	backupCounter *prometheus.CounterVec
	watchEvents   *prometheus.CounterVec
	watchDropped  prometheus.Counter
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "sitzplatz" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "sitzplatz"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.commitCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "session",
			Name:      "commits_total",
			Help:      "Total mutation attempts by operation and result.",
		}, []string{"operation", "result"})

		p.commitLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "session",
			Name:      "commit_latency_seconds",
			Help:      "Latency of validate-and-persist cycles in seconds by operation.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms .. ~4s
		}, []string{"operation"})

		p.validationGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "session",
			Name:      "validation_findings",
			Help:      "Findings of the most recent full validation by severity.",
		}, []string{"severity"})

		p.validationRuns = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "session",
			Name:      "validation_runs_total",
			Help:      "Total full snapshot validations performed.",
		})

		p.placementCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "placements_total",
			Help:      "Total per-day placement outcomes (placed, conflict).",
		}, []string{"outcome"})

		p.occupancyGauge = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "occupancy_rate_percent",
			Help:      "Occupancy rate of the most recent planned week (0-100).",
		})

		p.leaseAcquires = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "lease",
			Name:      "acquires_total",
			Help:      "Total lease acquisition attempts by outcome (created, reclaimed, denied).",
		}, []string{"outcome"})

		p.leaseRefreshes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "lease",
			Name:      "refreshes_total",
			Help:      "Total lease refresh attempts by result.",
		}, []string{"result"})

		p.leaseAgeGauge = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "lease",
			Name:      "age_seconds",
			Help:      "Seconds since the held lease was taken or last refreshed.",
		})

		p.historyDepthGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "history",
			Name:      "stack_depth",
			Help:      "Current undo/redo stack depths by stack (past, future).",
		}, []string{"stack"})

		p.historyEvictions = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "history",
			Name:      "evictions_total",
			Help:      "Total oldest-entry evictions caused by a full past stack.",
		})

		p.historyRestores = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "history",
			Name:      "restores_total",
			Help:      "Total completed restores by operation (undo, redo).",
		}, []string{"operation"})

		p.storeOps = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total snapshot store operations by kind and result.",
		}, []string{"operation", "result"})

		p.storeLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "store",
			Name:      "operation_latency_seconds",
			Help:      "Latency of snapshot store operations in seconds by kind.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms .. ~2s
		}, []string{"operation"})

		p.backupCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "store",
			Name:      "backups_total",
			Help:      "Backup attempts by result (created, skipped).",
		}, []string{"result"})

		p.watchEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "store",
			Name:      "watch_events_total",
			Help:      "Change events delivered to monitor subscribers by kind.",
		}, []string{"kind"})

		p.watchDropped = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "store",
			Name:      "watch_events_dropped_total",
			Help:      "Change events dropped because a subscriber channel was full.",
		})

		p.reg.MustRegister(p.commitCounter)
		p.reg.MustRegister(p.commitLatency)
		p.reg.MustRegister(p.validationGauge)
		p.reg.MustRegister(p.validationRuns)
		p.reg.MustRegister(p.placementCounter)
		p.reg.MustRegister(p.occupancyGauge)
		p.reg.MustRegister(p.leaseAcquires)
		p.reg.MustRegister(p.leaseRefreshes)
		p.reg.MustRegister(p.leaseAgeGauge)
		p.reg.MustRegister(p.historyDepthGauge)
		p.reg.MustRegister(p.historyEvictions)
		p.reg.MustRegister(p.historyRestores)
		p.reg.MustRegister(p.storeOps)
		p.reg.MustRegister(p.storeLatency)
		p.reg.MustRegister(p.backupCounter)
		p.reg.MustRegister(p.watchEvents)
		p.reg.MustRegister(p.watchDropped)
	})
}

// SessionMetrics implementation

// RecordCommit records a mutation attempt with its latency.
func (p *PrometheusCollector) RecordCommit(operation string, duration float64, success bool) {
	p.ensureRegistered()
	p.commitCounter.WithLabelValues(operation, resultLabel(success)).Inc()
	p.commitLatency.WithLabelValues(operation).Observe(duration)
}

// RecordValidation records the findings of a full validation run.
func (p *PrometheusCollector) RecordValidation(violations, advisories int) {
	p.ensureRegistered()
	p.validationRuns.Inc()
	p.validationGauge.WithLabelValues("violation").Set(float64(violations))
	p.validationGauge.WithLabelValues("advisory").Set(float64(advisories))
}

// EngineMetrics implementation

// RecordPlacementRun records one day's placement outcome.
func (p *PrometheusCollector) RecordPlacementRun(placed, conflicts int) {
	p.ensureRegistered()
	p.placementCounter.WithLabelValues("placed").Add(float64(placed))
	p.placementCounter.WithLabelValues("conflict").Add(float64(conflicts))
}

// RecordOccupancyRate sets the weekly occupancy gauge.
func (p *PrometheusCollector) RecordOccupancyRate(rate float64) {
	p.ensureRegistered()
	p.occupancyGauge.Set(rate)
}

// LeaseMetrics implementation

// RecordLeaseAcquire records an acquire attempt by outcome.
func (p *PrometheusCollector) RecordLeaseAcquire(outcome string) {
	p.ensureRegistered()
	p.leaseAcquires.WithLabelValues(outcome).Inc()
}

// RecordLeaseRefresh records a refresh attempt.
func (p *PrometheusCollector) RecordLeaseRefresh(success bool) {
	p.ensureRegistered()
	p.leaseRefreshes.WithLabelValues(resultLabel(success)).Inc()
}

// RecordLeaseAge sets the held lease age gauge.
func (p *PrometheusCollector) RecordLeaseAge(seconds float64) {
	p.ensureRegistered()
	p.leaseAgeGauge.Set(seconds)
}

// HistoryMetrics implementation

// RecordHistoryDepth sets the stack depth gauges.
func (p *PrometheusCollector) RecordHistoryDepth(past, future int) {
	p.ensureRegistered()
	p.historyDepthGauge.WithLabelValues("past").Set(float64(past))
	p.historyDepthGauge.WithLabelValues("future").Set(float64(future))
}

// RecordHistoryEviction increments the eviction counter.
func (p *PrometheusCollector) RecordHistoryEviction() {
	p.ensureRegistered()
	p.historyEvictions.Inc()
}

// RecordHistoryRestore increments the restore counter for the operation.
func (p *PrometheusCollector) RecordHistoryRestore(operation string) {
	p.ensureRegistered()
	p.historyRestores.WithLabelValues(operation).Inc()
}

// StoreMetrics implementation

// RecordStoreOperation records one store round trip.
func (p *PrometheusCollector) RecordStoreOperation(operation string, duration float64, success bool) {
	p.ensureRegistered()
	p.storeOps.WithLabelValues(operation, resultLabel(success)).Inc()
	p.storeLatency.WithLabelValues(operation).Observe(duration)
}

// RecordBackup records a backup attempt.
func (p *PrometheusCollector) RecordBackup(created bool) {
	p.ensureRegistered()
	if created {
		p.backupCounter.WithLabelValues("created").Inc()
	} else {
		p.backupCounter.WithLabelValues("skipped").Inc()
	}
}

// RecordWatchEvent increments the delivered event counter for the kind.
func (p *PrometheusCollector) RecordWatchEvent(kind string) {
	p.ensureRegistered()
	p.watchEvents.WithLabelValues(kind).Inc()
}

// RecordWatchEventDropped increments the dropped event counter.
func (p *PrometheusCollector) RecordWatchEventDropped() {
	p.ensureRegistered()
	p.watchDropped.Inc()
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}

	return "failure"
}
