package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RequestTransitions *prometheus.CounterVec
	RequestsCreated    *prometheus.CounterVec
	ProfileBootstrap   *prometheus.CounterVec
	AvatarResolutions  *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// New registers every collector on reg. Pass prometheus.DefaultRegisterer in main
// and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestTransitions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookings_request_transitions_total",
				Help: "Service request status transitions by edge and outcome",
			},
			[]string{"from", "to", "outcome"},
		),
		RequestsCreated: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookings_requests_created_total",
				Help: "Service request creations by outcome",
			},
			[]string{"outcome"},
		),
		ProfileBootstrap: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookings_profile_bootstrap_total",
				Help: "Profile bootstrap calls by outcome (existing, created, raced, failed)",
			},
			[]string{"outcome"},
		),
		AvatarResolutions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookings_avatar_resolutions_total",
				Help: "Avatar URL resolutions by source (placeholder, signed, fallback)",
			},
			[]string{"source"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bookings_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2, 5},
			},
			[]string{"method", "route", "status"},
		),
	}
}

// NewNop returns collectors bound to a throwaway registry.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
