// Package metrics exports matchmaking telemetry to Prometheus.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder is the telemetry surface used by the use cases.
type Recorder interface {
	ObserveMatch(tier string, duration time.Duration)
	CacheLookup(hit bool)
	ObserveScan(outcome string)
	ObserveDirectory(size int, duration time.Duration)
	ConnectionSaved(created bool)
	HandshakeConfirmed(manual bool)
}

type Prometheus struct {
	matchDuration     *prometheus.HistogramVec
	matchesTotal      *prometheus.CounterVec
	cacheLookups      *prometheus.CounterVec
	scansTotal        *prometheus.CounterVec
	directoryDuration prometheus.Histogram
	directorySize     prometheus.Gauge
	connectionsTotal  *prometheus.CounterVec
	handshakesTotal   *prometheus.CounterVec
}

func NewPrometheus(namespace string, reg prometheus.Registerer) (*Prometheus, error) {
	if namespace == "" {
		namespace = "xrnode"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	p := &Prometheus{
		matchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_duration_seconds",
			Help:      "Latency of a single profile match, including cache lookups.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"tier"}),
		matchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_total",
			Help:      "Match results by tier.",
		}, []string{"tier"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_cache_lookups_total",
			Help:      "Match cache lookups by result.",
		}, []string{"result"}),
		scansTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Badge scans by outcome.",
		}, []string{"outcome"}),
		directoryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "directory_build_duration_seconds",
			Help:      "Time to score and sort the participant directory.",
			Buckets:   prometheus.DefBuckets,
		}),
		directorySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "directory_entries",
			Help:      "Entries returned by the most recent directory build.",
		}),
		connectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_saved_total",
			Help:      "Saved connections, split into new and refreshed.",
		}, []string{"kind"}),
		handshakesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handshakes_confirmed_total",
			Help:      "Confirmed handshakes by confirmation mode.",
		}, []string{"mode"}),
	}

	errs := []error{
		registerOne(reg, &p.matchDuration),
		registerOne(reg, &p.matchesTotal),
		registerOne(reg, &p.cacheLookups),
		registerOne(reg, &p.scansTotal),
		registerOne(reg, &p.directoryDuration),
		registerOne(reg, &p.directorySize),
		registerOne(reg, &p.connectionsTotal),
		registerOne(reg, &p.handshakesTotal),
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return p, nil
}

// registerOne reuses an already registered collector of the same type so
// several instances can share one registry.
func registerOne[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				*c = existing
				return nil
			}
		}
		return fmt.Errorf("register metric: %w", err)
	}
	return nil
}

func (p *Prometheus) ObserveMatch(tier string, duration time.Duration) {
	if p == nil {
		return
	}
	p.matchDuration.WithLabelValues(tier).Observe(duration.Seconds())
	p.matchesTotal.WithLabelValues(tier).Inc()
}

func (p *Prometheus) CacheLookup(hit bool) {
	if p == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	p.cacheLookups.WithLabelValues(result).Inc()
}

func (p *Prometheus) ObserveScan(outcome string) {
	if p == nil {
		return
	}
	p.scansTotal.WithLabelValues(outcome).Inc()
}

func (p *Prometheus) ObserveDirectory(size int, duration time.Duration) {
	if p == nil {
		return
	}
	p.directoryDuration.Observe(duration.Seconds())
	p.directorySize.Set(float64(size))
}

func (p *Prometheus) ConnectionSaved(created bool) {
	if p == nil {
		return
	}
	kind := "refreshed"
	if created {
		kind = "created"
	}
	p.connectionsTotal.WithLabelValues(kind).Inc()
}

func (p *Prometheus) HandshakeConfirmed(manual bool) {
	if p == nil {
		return
	}
	mode := "gesture"
	if manual {
		mode = "manual"
	}
	p.handshakesTotal.WithLabelValues(mode).Inc()
}

type Nop struct{}

func (Nop) ObserveMatch(string, time.Duration) {}

func (Nop) CacheLookup(bool) {}

func (Nop) ObserveScan(string) {}

func (Nop) ObserveDirectory(int, time.Duration) {}

func (Nop) ConnectionSaved(bool) {}

func (Nop) HandshakeConfirmed(bool) {}
