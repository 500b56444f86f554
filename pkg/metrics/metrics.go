// Package metrics exposes prometheus instruments for registration activity.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goliatone/go-regform/pkg/registration"
)

// Namespace prefixes every metric name.
const Namespace = "regform"

// Metrics implements registration.Recorder and times HTTP handlers.
type Metrics struct {
	Submissions     *prometheus.CounterVec
	MissingFields   prometheus.Histogram
	RejectedInput   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

var _ registration.Recorder = (*Metrics)(nil)

// New registers the instruments on reg. A nil reg uses the default
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "submissions_total",
			Help:      "Submit attempts by outcome (success or error).",
		}, []string{"outcome"}),
		MissingFields: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "missing_required_fields",
			Help:      "Required fields left empty on failed submit attempts.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 22},
		}),
		RejectedInput: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "rejected_input_total",
			Help:      "Field changes rejected by the input filters.",
		}, []string{"field"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of registration HTTP requests.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route", "method", "code"}),
	}
}

// ObserveSubmit records one submit attempt.
func (m *Metrics) ObserveSubmit(status registration.Status, incomplete int) {
	if m == nil {
		return
	}
	outcome := string(status)
	if outcome == "" {
		outcome = "idle"
	}
	m.Submissions.WithLabelValues(outcome).Inc()
	if status == registration.StatusError {
		m.MissingFields.Observe(float64(incomplete))
	}
}

// ObserveRejected records a change refused by the filter of field.
func (m *Metrics) ObserveRejected(field string) {
	if m == nil {
		return
	}
	m.RejectedInput.WithLabelValues(field).Inc()
}

// ObserveRequest records the duration of an HTTP request.
// Call with time.Now() at the start of the request.
func (m *Metrics) ObserveRequest(route, method string, code int, start time.Time) {
	if m == nil {
		return
	}
	m.RequestDuration.
		WithLabelValues(route, method, strconv.Itoa(code)).
		Observe(time.Since(start).Seconds())
}
