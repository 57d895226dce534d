package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/updatecenter/pkg/observability"
)

const metricsNamespace = "updatecenter"

// promHooks records filter, cache and HTTP events as Prometheus metrics.
type promHooks struct {
	filterIn         *prometheus.CounterVec
	filterOut        *prometheus.CounterVec
	resolutionErrors *prometheus.CounterVec
	cacheHits        *prometheus.CounterVec
	cacheMisses      *prometheus.CounterVec
	cacheBytes       *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	httpErrors       *prometheus.CounterVec
}

// newPromHooks creates the metrics and registers them with reg.
func newPromHooks(reg prometheus.Registerer) *promHooks {
	h := &promHooks{
		filterIn: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "filter_input_total",
			Help:      "Entries received by catalog filters.",
		}, []string{"filter", "scope"}),
		filterOut: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "filter_output_total",
			Help:      "Entries kept by catalog filters.",
		}, []string{"filter", "scope"}),
		resolutionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "resolution_errors_total",
			Help:      "Releases whose manifest attributes could not be resolved.",
		}, []string{"filter"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_hits_total",
			Help:      "Cache hits by namespace.",
		}, []string{"namespace"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_misses_total",
			Help:      "Cache misses by namespace.",
		}, []string{"namespace"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache by namespace.",
		}, []string{"namespace"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "repository_requests_total",
			Help:      "Repository HTTP responses by host and status code.",
		}, []string{"host", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "repository_request_duration_seconds",
			Help:      "Repository HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"host"}),
		httpErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "repository_errors_total",
			Help:      "Repository HTTP requests that failed without a response.",
		}, []string{"host"}),
	}
	reg.MustRegister(
		h.filterIn, h.filterOut, h.resolutionErrors,
		h.cacheHits, h.cacheMisses, h.cacheBytes,
		h.httpRequests, h.httpDuration, h.httpErrors,
	)
	return h
}

// install registers h as the global observability hooks.
func (h *promHooks) install() {
	observability.SetFilterHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h *promHooks) OnFilter(_ context.Context, filter, scope string, in, out int) {
	h.filterIn.WithLabelValues(filter, scope).Add(float64(in))
	h.filterOut.WithLabelValues(filter, scope).Add(float64(out))
}

func (h *promHooks) OnResolutionError(_ context.Context, filter, _ string) {
	h.resolutionErrors.WithLabelValues(filter).Inc()
}

func (h *promHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheHits.WithLabelValues(keyType).Inc()
}

func (h *promHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheMisses.WithLabelValues(keyType).Inc()
}

func (h *promHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (h *promHooks) OnRequest(context.Context, string, string, string) {}

func (h *promHooks) OnResponse(_ context.Context, _, host, _ string, statusCode int, d time.Duration) {
	h.httpRequests.WithLabelValues(host, strconv.Itoa(statusCode)).Inc()
	h.httpDuration.WithLabelValues(host).Observe(d.Seconds())
}

func (h *promHooks) OnError(_ context.Context, _, host, _ string, _ error) {
	h.httpErrors.WithLabelValues(host).Inc()
}

var (
	_ observability.FilterHooks = (*promHooks)(nil)
	_ observability.CacheHooks  = (*promHooks)(nil)
	_ observability.HTTPHooks   = (*promHooks)(nil)
)
