package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Métricas HTTP comunes
var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Métricas del workflow de adopción
var (
	adoptionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adoption_requests_total",
			Help: "Adoption requests by outcome.",
		},
		[]string{"outcome"},
	)

	adoptionDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adoption_decisions_total",
			Help: "Adoption decisions by result.",
		},
		[]string{"decision"},
	)
)

// Init registra las métricas en el default-registry. Llamar una sola vez.
func Init() {
	prometheus.MustRegister(
		httpInFlight,
		httpRequestsTotal,
		httpRequestDuration,
		adoptionRequestsTotal,
		adoptionDecisionsTotal,
	)
}

// Handler expone /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveAdoptionRequest(outcome string) {
	adoptionRequestsTotal.WithLabelValues(outcome).Inc()
}

func ObserveAdoptionDecision(decision string) {
	adoptionDecisionsTotal.WithLabelValues(decision).Inc()
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// Instrument mide RPS, latencia y requests en vuelo.
// Usa el route pattern de chi como label para acotar cardinalidad.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)
		elapsed := time.Since(start).Seconds()

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				path = p
			}
		}

		status := strconv.Itoa(sw.code)
		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(elapsed)
	})
}
