package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-ledstudio/internal/pattern"
)

func TestCounters(t *testing.T) {
	m := New()
	m.ObserveFrame(pattern.Rainbow, 3*time.Microsecond)
	m.ObserveFrame(pattern.Rainbow, 5*time.Microsecond)
	m.ObserveFrame(pattern.Fire, time.Microsecond)
	m.Tick()
	m.Tick()
	m.CodeGenerated(pattern.Police)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.framesComputed.WithLabelValues("rainbow")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.framesComputed.WithLabelValues("fire")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.clockTicks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.codeGenerations.WithLabelValues("police")))
}

func TestGauges(t *testing.T) {
	m := New()
	m.SetInterval(50 * time.Millisecond)
	m.SetLEDCount(144)
	m.SetRunning(true)
	assert.Equal(t, 0.05, testutil.ToFloat64(m.tickInterval))
	assert.Equal(t, 144.0, testutil.ToFloat64(m.ledCount))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.running))
	m.SetRunning(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.running))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFrame(pattern.Wave, time.Millisecond)
		m.Tick()
		m.CodeGenerated(pattern.Wave)
		m.SetInterval(time.Second)
		m.SetLEDCount(1)
		m.SetRunning(true)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.Tick()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "ledstudio_clock_ticks_total 1"), body)

	n, err := testutil.GatherAndCount(m.Gatherer(), "ledstudio_clock_ticks_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
