package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dkrylov/pdf-extract-api/internal/core/domain"
)

// ExtractionMetrics holds the service's prometheus registry: generic HTTP
// server metrics plus counters describing which extraction strategy actually
// served each request.
type ExtractionMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	extractionTotal    *prometheus.CounterVec
	extractionDuration *prometheus.HistogramVec
	extractionChars    *prometheus.HistogramVec
	emptyResultTotal   *prometheus.CounterVec
	failureTotal       *prometheus.CounterVec
}

func NewExtractionMetrics(service string) *ExtractionMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pea",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pea",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pea",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	extractionTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pea",
			Subsystem: "extract",
			Name:      "requests_total",
			Help:      "Total successful extractions by document kind, policy and text source.",
		},
		[]string{"service", "kind", "mode", "source"},
	)
	extractionDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pea",
			Subsystem: "extract",
			Name:      "duration_seconds",
			Help:      "Extraction duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"service", "kind"},
	)
	extractionChars := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pea",
			Subsystem: "extract",
			Name:      "characters",
			Help:      "Distribution of extracted character counts.",
			Buckets:   []float64{0, 100, 500, 1000, 5000, 20000, 100000},
		},
		[]string{"service", "kind"},
	)
	emptyResultTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pea",
			Subsystem: "extract",
			Name:      "empty_results_total",
			Help:      "Total successful extractions that produced no text.",
		},
		[]string{"service", "kind"},
	)
	failureTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pea",
			Subsystem: "extract",
			Name:      "failures_total",
			Help:      "Total terminal extraction failures by error kind.",
		},
		[]string{"service", "kind_of_error"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		extractionTotal,
		extractionDuration,
		extractionChars,
		emptyResultTotal,
		failureTotal,
	)

	return &ExtractionMetrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		extractionTotal:    extractionTotal,
		extractionDuration: extractionDuration,
		extractionChars:    extractionChars,
		emptyResultTotal:   emptyResultTotal,
		failureTotal:       failureTotal,
	}
}

func (m *ExtractionMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *ExtractionMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// RecordExtraction observes one successful engine pass. source is "ocr" or
// "direct" depending on which text was actually served.
func (m *ExtractionMetrics) RecordExtraction(
	service string,
	result *domain.ExtractionResult,
	policy domain.OCRPolicy,
	duration time.Duration,
) {
	source := "direct"
	if result.UsedOCR {
		source = "ocr"
	}
	m.extractionTotal.WithLabelValues(service, string(result.Kind), string(policy), source).Inc()
	m.extractionDuration.WithLabelValues(service, string(result.Kind)).Observe(duration.Seconds())
	m.extractionChars.WithLabelValues(service, string(result.Kind)).Observe(float64(result.Characters))
	if result.Warning != "" {
		m.emptyResultTotal.WithLabelValues(service, string(result.Kind)).Inc()
	}
}

func (m *ExtractionMetrics) RecordFailure(service, kindOfError string) {
	m.failureTotal.WithLabelValues(service, kindOfError).Inc()
}
