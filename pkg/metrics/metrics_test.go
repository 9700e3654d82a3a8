package metrics

import (
	"database/sql"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersAndGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("appointments", reg)

	m.IncAppointmentsCreated()
	m.IncAppointmentsCreated()
	m.IncSlotConflicts()
	m.ObserveCache("services", "hit")
	m.ObserveHTTPRequest("GET", "/api/v1/businesses", "200", 15*time.Millisecond)
	m.SetDBPoolStats(sql.DBStats{OpenConnections: 4, InUse: 1, Idle: 3})

	assert.Equal(t, float64(2), testutil.ToFloat64(m.appointmentsCreated))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.slotConflicts))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cacheRequests.WithLabelValues("services", "hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/businesses", "200")))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.dbOpen))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.dbIdle))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncAppointmentsCreated()
		m.IncSlotConflicts()
		m.ObserveCache("staff", "miss")
		m.ObserveDBQuery("select", "ok", time.Millisecond)
		m.ObserveHTTPRequest("POST", "/", "201", time.Millisecond)
		m.SetDBPoolStats(sql.DBStats{})
	})
}
