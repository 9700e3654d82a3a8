package metrics

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "smc"

// Metrics groups the prometheus collectors of the service.
// All methods are safe on a nil receiver so callers can run with metrics disabled.
type Metrics struct {
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbOpen          prometheus.Gauge
	dbInUse         prometheus.Gauge
	dbIdle          prometheus.Gauge
	dbWaitCount     prometheus.Gauge

	appointmentsCreated prometheus.Counter
	slotConflicts       prometheus.Counter
	cacheRequests       *prometheus.CounterVec
}

// New registers collectors in the default prometheus registry.
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry registers collectors in reg.
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "Total HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		dbOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "db", Name: "open_connections",
			Help: "Open connections in the pool", ConstLabels: labels,
		}),
		dbInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "db", Name: "in_use_connections",
			Help: "Connections currently in use", ConstLabels: labels,
		}),
		dbIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "db", Name: "idle_connections",
			Help: "Idle connections in the pool", ConstLabels: labels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "db", Name: "wait_count",
			Help: "Total connections waited for", ConstLabels: labels,
		}),
		appointmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "booking", Name: "appointments_created_total",
			Help: "Appointments successfully created", ConstLabels: labels,
		}),
		slotConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "booking", Name: "slot_conflicts_total",
			Help: "Submissions rejected because the slot overlaps another appointment", ConstLabels: labels,
		}),
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "catalog",
			Name:        "cache_requests_total",
			Help:        "Catalog cache lookups by result",
			ConstLabels: labels,
		}, []string{"kind", "result"}),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.httpRequests,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpen,
		m.dbInUse,
		m.dbIdle,
		m.dbWaitCount,
		m.appointmentsCreated,
		m.slotConflicts,
		m.cacheRequests,
	)
	return m
}

func (m *Metrics) ObserveHTTPRequest(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation, status).Observe(d.Seconds())
}

func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpen.Set(float64(stats.OpenConnections))
	m.dbInUse.Set(float64(stats.InUse))
	m.dbIdle.Set(float64(stats.Idle))
	m.dbWaitCount.Set(float64(stats.WaitCount))
}

func (m *Metrics) IncAppointmentsCreated() {
	if m == nil {
		return
	}
	m.appointmentsCreated.Inc()
}

func (m *Metrics) IncSlotConflicts() {
	if m == nil {
		return
	}
	m.slotConflicts.Inc()
}

// ObserveCache records a catalog cache lookup; result is hit, miss or error.
func (m *Metrics) ObserveCache(kind, result string) {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues(kind, result).Inc()
}
