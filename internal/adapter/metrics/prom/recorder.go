// Package prom exports farm action and HTTP counters to prometheus.
package prom

import (
	"strconv"
	"time"

	"homestead/internal/app/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "homestead"

const (
	LabelAction  = "action"
	LabelReason  = "reason"
	LabelOutcome = "outcome"
	LabelType    = "type"
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
)

type Recorder struct {
	actions      *prometheus.CounterVec
	rejections   *prometheus.CounterVec
	outcomes     *prometheus.CounterVec
	events       *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpInFlight prometheus.Gauge
}

// NewRecorder registers the collectors on reg; nil uses the default registerer.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		actions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_applied_total",
			Help:      "Farm actions applied, by action",
		}, []string{LabelAction}),
		rejections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_rejected_total",
			Help:      "Farm actions rejected by the game rules, by reason",
		}, []string{LabelReason}),
		outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "action_errors_total",
			Help:      "Farm action requests that failed outside the game rules",
		}, []string{LabelOutcome}),
		events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "domain_events_total",
			Help:      "Domain events recorded, by type",
		}, []string{LabelType}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{LabelMethod, LabelPath, LabelStatus}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{LabelMethod, LabelPath}),
		httpInFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being served",
		}),
	}
}

func (r *Recorder) RecordSuccess(action string) {
	r.actions.WithLabelValues(action).Inc()
}

func (r *Recorder) RecordRejected(reason string) {
	r.rejections.WithLabelValues(reason).Inc()
}

func (r *Recorder) RecordConflict() {
	r.outcomes.WithLabelValues("conflict").Inc()
}

func (r *Recorder) RecordFailure() {
	r.outcomes.WithLabelValues("failure").Inc()
}

func (r *Recorder) RecordEvents(events []ports.EventRecord) {
	for _, e := range events {
		r.events.WithLabelValues(e.Type).Inc()
	}
}

// TrackRequest marks a request in flight; the returned func records it.
func (r *Recorder) TrackRequest(method, path string) func(status int) {
	start := time.Now()
	r.httpInFlight.Inc()
	return func(status int) {
		r.httpInFlight.Dec()
		r.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		r.httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
