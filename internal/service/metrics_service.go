package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP layer
// and the date sampler.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	generationDuration  prometheus.Histogram
	datesGenerated      prometheus.Counter
	generationShortfall prometheus.Counter

	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
}

// NewMetricsService registers the collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	generationDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dateset_generation_duration_seconds",
		Help:    "Duration of stratified date-set generation",
		Buckets: prometheus.DefBuckets,
	})

	datesGenerated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dateset_dates_generated_total",
		Help: "Total dates accepted across all generation passes",
	})

	generationShortfall := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dateset_generation_shortfall_total",
		Help: "Requested-minus-produced dates across generation passes",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dateset_cache_hits_total",
		Help: "Date-set cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dateset_cache_misses_total",
		Help: "Date-set cache misses",
	})

	registry.MustRegister(requestDuration, requestTotal, generationDuration,
		datesGenerated, generationShortfall, cacheHits, cacheMisses)

	return &MetricsService{
		registry:            registry,
		handler:             promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:     requestDuration,
		requestTotal:        requestTotal,
		generationDuration:  generationDuration,
		datesGenerated:      datesGenerated,
		generationShortfall: generationShortfall,
		cacheHits:           cacheHits,
		cacheMisses:         cacheMisses,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one completed request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// ObserveGeneration records one generation pass.
func (s *MetricsService) ObserveGeneration(duration time.Duration, requested, produced int) {
	s.generationDuration.Observe(duration.Seconds())
	s.datesGenerated.Add(float64(produced))
	if shortfall := requested - produced; shortfall > 0 {
		s.generationShortfall.Add(float64(shortfall))
	}
}

// CacheHit counts a successful cache lookup.
func (s *MetricsService) CacheHit() {
	s.cacheHits.Inc()
}

// CacheMiss counts a cache miss.
func (s *MetricsService) CacheMiss() {
	s.cacheMisses.Inc()
}
