package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	// StatusRejected counts calls refused by an open circuit breaker.
	StatusRejected = "rejected"

	ExtractionParsed   = "parsed"
	ExtractionFallback = "fallback"
)

var (
	// Latency buckets in milliseconds. Generation calls are slow, so the
	// buckets reach further than a typical API would need.
	latencyBuckets = []float64{
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000, 30000,
	}

	IAMTokenRequests = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraudshield_iam_token_requests_total",
			Help: "IAM API-key exchanges by outcome",
		},
		[]string{"status"},
	)

	IAMTokenCacheHits = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "fraudshield_iam_token_cache_hits_total",
			Help: "Tokens served from the local token cache",
		},
	)

	GenerationRequests = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraudshield_generation_requests_total",
			Help: "Text generation requests by outcome",
		},
		[]string{"status"},
	)

	GenerationLatency = promauto.With(registerer).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fraudshield_generation_latency_ms",
			Help:    "Text generation latency in milliseconds",
			Buckets: latencyBuckets,
		},
	)

	ScoreExtractions = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraudshield_score_extractions_total",
			Help: "Risk score extractions by result",
		},
		[]string{"result"},
	)

	HTTPRequests = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraudshield_http_requests_total",
			Help: "API requests by route and status code",
		},
		[]string{"method", "route", "code"},
	)

	HTTPLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fraudshield_http_latency_ms",
			Help:    "API request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"method", "route"},
	)

	RiskLevels = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraudshield_risk_level_total",
			Help: "Scored requests by risk level",
		},
		[]string{"level"},
	)
)

type MetricsConfig struct {
	EnableProcessCollector bool
}

var Config MetricsConfig

func Initialize(cfg MetricsConfig) {
	Config = cfg
	if cfg.EnableProcessCollector {
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
	}

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}

// Handler exposes the private registry in the text exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
