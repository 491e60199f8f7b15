package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	GenerationsTotal *prometheus.CounterVec
	PromptCharacters *prometheus.HistogramVec

	LLMRequestsTotal   *prometheus.CounterVec
	LLMRequestDuration *prometheus.HistogramVec

	RateLimitHitsTotal *prometheus.CounterVec
}

// New registers all collectors on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prompt_optimizer_requests_total",
				Help: "Total number of front end requests processed",
			},
			[]string{"frontend", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "prompt_optimizer_request_duration_seconds",
				Help:    "Front end request duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"frontend"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "prompt_optimizer_requests_in_flight",
				Help: "Number of requests currently being processed",
			},
		),

		GenerationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prompt_optimizer_generations_total",
				Help: "Total number of prompt generations by mode and outcome",
			},
			[]string{"mode", "status"},
		),
		PromptCharacters: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "prompt_optimizer_prompt_characters",
				Help:    "Length of generated prompts in characters",
				Buckets: []float64{100, 250, 500, 750, 1000, 1500, 2000},
			},
			[]string{"mode"},
		),

		LLMRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prompt_optimizer_llm_requests_total",
				Help: "Total number of completion API requests by result category",
			},
			[]string{"provider", "category"},
		),
		LLMRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "prompt_optimizer_llm_request_duration_seconds",
				Help:    "Completion API request duration in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"provider"},
		),

		RateLimitHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prompt_optimizer_rate_limit_hits_total",
				Help: "Total number of requests rejected by the local rate limiter",
			},
			[]string{"frontend"},
		),
	}
}

// Handler serves the collectors registered on g; nil means the default gatherer.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordRequest(frontend, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(frontend, status).Inc()
	m.RequestDuration.WithLabelValues(frontend).Observe(duration.Seconds())
}

func (m *Metrics) RecordGeneration(mode, status string, characters int) {
	m.GenerationsTotal.WithLabelValues(mode, status).Inc()
	if characters > 0 {
		m.PromptCharacters.WithLabelValues(mode).Observe(float64(characters))
	}
}

// RecordLLMRequest counts one completion call; category is "ok" on success.
func (m *Metrics) RecordLLMRequest(provider, category string, duration time.Duration) {
	m.LLMRequestsTotal.WithLabelValues(provider, category).Inc()
	m.LLMRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

func (m *Metrics) RecordRateLimitHit(frontend string) {
	m.RateLimitHitsTotal.WithLabelValues(frontend).Inc()
}

func (m *Metrics) IncRequestsInFlight() {
	m.RequestsInFlight.Inc()
}

func (m *Metrics) DecRequestsInFlight() {
	m.RequestsInFlight.Dec()
}
