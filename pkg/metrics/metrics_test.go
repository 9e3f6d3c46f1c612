package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_EngineCounters(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "scheduler")

	m.ConflictRejected("move")
	m.ConflictRejected("move")
	m.DailyReset(true)
	m.DailyReset(false)
	m.AutoPromoted(3)
	m.AutoPromoted(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ConflictsRejected.WithLabelValues("scheduler", "move")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DailyResets.WithLabelValues("scheduler", "applied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DailyResets.WithLabelValues("scheduler", "skipped")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.AutoPromotions))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.BookingWritten("create")
		m.ConflictRejected("create")
		m.QueueNumberIssued()
		m.DailyReset(true)
		m.AutoPromoted(1)
		m.ConfigGapFallback("no_salon_hours")
	})
}
