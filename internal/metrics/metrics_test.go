package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheus_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPrometheus("test", reg)
	require.NoError(t, err)

	p.ObserveMatch("GOOD", time.Millisecond)
	p.ObserveMatch("GOOD", time.Millisecond)
	p.CacheLookup(true)
	p.CacheLookup(false)
	p.ObserveScan("matched")
	p.ObserveDirectory(7, 10*time.Millisecond)
	p.ConnectionSaved(true)
	p.HandshakeConfirmed(false)

	assert.Equal(t, float64(2), value(p.matchesTotal.WithLabelValues("GOOD")))
	assert.Equal(t, float64(1), value(p.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, float64(1), value(p.scansTotal.WithLabelValues("matched")))
	assert.Equal(t, float64(7), value(p.directorySize))
	assert.Equal(t, float64(1), value(p.connectionsTotal.WithLabelValues("created")))
	assert.Equal(t, float64(1), value(p.handshakesTotal.WithLabelValues("gesture")))
}

func TestPrometheus_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewPrometheus("shared", reg)
	require.NoError(t, err)
	b, err := NewPrometheus("shared", reg)
	require.NoError(t, err)

	a.ObserveScan("duplicate")
	b.ObserveScan("duplicate")
	assert.Equal(t, float64(2), value(b.scansTotal.WithLabelValues("duplicate")))
}

func TestPrometheus_NilSafe(t *testing.T) {
	var p *Prometheus
	p.ObserveMatch("GOOD", time.Second)
	p.CacheLookup(true)
	var _ Recorder = p
	var _ Recorder = Nop{}
}

func value(m prometheus.Metric) float64 {
	var out dto.Metric
	if err := m.Write(&out); err != nil {
		return -1
	}
	switch {
	case out.Counter != nil:
		return out.GetCounter().GetValue()
	case out.Gauge != nil:
		return out.GetGauge().GetValue()
	}
	return -1
}
