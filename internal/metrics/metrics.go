package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	DialogueActions    *prometheus.CounterVec
	GatewayFailures    *prometheus.CounterVec
	EmbeddingFallbacks prometheus.Counter
	RetrievalLatency   prometheus.Histogram
	KnowledgeChunks    prometheus.Gauge
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		DialogueActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kiosk_assistant",
			Name:      "dialogue_actions_total",
			Help:      "Dialogue turns by routed action.",
		}, []string{"action"}),
		GatewayFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kiosk_assistant",
			Name:      "gateway_failures_total",
			Help:      "Failed calls to external gateways.",
		}, []string{"gateway"}),
		EmbeddingFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kiosk_assistant",
			Name:      "embedding_fallbacks_total",
			Help:      "Embeddings computed by the hash fallback after a gateway error.",
		}),
		RetrievalLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kiosk_assistant",
			Name:      "retrieval_latency_seconds",
			Help:      "Time spent embedding the query and ranking knowledge chunks.",
			Buckets:   prometheus.DefBuckets,
		}),
		KnowledgeChunks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kiosk_assistant",
			Name:      "knowledge_chunks",
			Help:      "Chunks held by the document index.",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.DialogueActions,
		m.GatewayFailures,
		m.EmbeddingFallbacks,
		m.RetrievalLatency,
		m.KnowledgeChunks,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveAction(action string) {
	m.DialogueActions.WithLabelValues(action).Inc()
}

func (m *Metrics) ObserveGatewayFailure(gateway string) {
	m.GatewayFailures.WithLabelValues(gateway).Inc()
}

func (m *Metrics) ObserveEmbeddingFallback(error) {
	m.EmbeddingFallbacks.Inc()
}

func (m *Metrics) ObserveRetrieval(d time.Duration) {
	m.RetrievalLatency.Observe(d.Seconds())
}
