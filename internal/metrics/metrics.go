// README: Prometheus metrics for dialogue turns, commits and HTTP traffic.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is safe to use as a nil pointer; every recorder is then a no-op.
type Metrics struct {
	TurnsTotal      *prometheus.CounterVec
	TurnDuration    prometheus.Histogram
	CommitsTotal    *prometheus.CounterVec
	ActiveSessions  prometheus.Gauge
	EvictedSessions prometheus.Counter
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

// New registers the collectors on reg (prometheus.DefaultRegisterer when nil).
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		TurnsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "foodiespot_dialogue_turns_total",
			Help: "Dialogue turns processed, by classified intent",
		}, []string{"intent"}),

		TurnDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "foodiespot_dialogue_turn_duration_seconds",
			Help:    "Time spent processing one dialogue turn",
			Buckets: prometheus.DefBuckets,
		}),

		CommitsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "foodiespot_booking_commits_total",
			Help: "Booking commit attempts, by outcome",
		}, []string{"outcome"}),

		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "foodiespot_sessions_active",
			Help: "Sessions currently held by the session repository",
		}),

		EvictedSessions: f.NewCounter(prometheus.CounterOpts{
			Name: "foodiespot_sessions_evicted_total",
			Help: "Sessions removed by the idle sweeper",
		}),

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "foodiespot_http_requests_total",
			Help: "HTTP requests, by method, route and status",
		}, []string{"method", "route", "status"}),

		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "foodiespot_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) ObserveTurn(intent string, d time.Duration) {
	if m == nil {
		return
	}
	m.TurnsTotal.WithLabelValues(intent).Inc()
	m.TurnDuration.Observe(d.Seconds())
}

func (m *Metrics) CommitOutcome(outcome string) {
	if m == nil {
		return
	}
	m.CommitsTotal.WithLabelValues(outcome).Inc()
}

// SessionsSwept matches the session sweeper callback signature.
func (m *Metrics) SessionsSwept(evicted, remaining int) {
	if m == nil {
		return
	}
	m.EvictedSessions.Add(float64(evicted))
	m.ActiveSessions.Set(float64(remaining))
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
