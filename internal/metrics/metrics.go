package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gokatarajesh/trivia-api/internal/logging"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	quiz     *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "trivia",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		quiz: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "quiz_selections_total",
			Help:      "Quiz selection outcomes.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.requests, m.latency, m.quiz)
	return m
}

// QuizOutcome counts a quiz selection outcome.
func (m *Metrics) QuizOutcome(outcome string) {
	m.quiz.WithLabelValues(outcome).Inc()
}

// Middleware records request counts and latency. Routes are labelled by the
// matched ServeMux pattern to keep label cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &logging.StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(rec.Status)).Inc()
		m.latency.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
