package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/vedicmath/internal/telemetry"
)

const namespace = "vedicmath"

// Collector counts dispatched calls on a private registry. It is safe for
// concurrent use; several dispatchers may share one Collector.
type Collector struct {
	registry  *prometheus.Registry
	handler   http.Handler
	calls     *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
	drops     prometheus.Counter
	elapsed   *prometheus.HistogramVec
}

// NewCollector creates a Collector with the Go runtime, process and heap
// collectors registered alongside the dispatch metrics.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_total",
			Help:      "Dispatched calls by operation and the sutra that produced the result.",
		}, []string{"op", "sutra"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_total",
			Help:      "Calls answered by straight arithmetic instead of the classified kernel.",
		}, []string{"reason"}),
		drops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "telemetry_dropped_total",
			Help:      "Records refused by a full telemetry log.",
		}),
		elapsed: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "call_duration_seconds",
			Help:      "Wall time per dispatched call.",
			Buckets:   prometheus.ExponentialBuckets(1e-8, 4, 12),
		}, []string{"op"}),
	}
	c.registry.MustRegister(
		c.calls, c.fallbacks, c.drops, c.elapsed,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		newHeapCollector(NewMemoryCollector()),
	)
	c.handler = promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
	return c
}

// ObserveRecord counts one dispatched call.
func (c *Collector) ObserveRecord(r telemetry.Record) {
	op := r.Op.String()
	c.calls.WithLabelValues(op, r.Sutra.String()).Inc()
	if r.Fallback {
		c.fallbacks.WithLabelValues(r.Reason).Inc()
	}
	c.elapsed.WithLabelValues(op).Observe(r.Elapsed.Seconds())
}

// ObserveDrop counts one record refused by the telemetry log.
func (c *Collector) ObserveDrop() { c.drops.Inc() }

// Registry returns the registry the metrics live on.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// WritePrometheus serves the metrics in the Prometheus text format.
func (c *Collector) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	c.handler.ServeHTTP(w, r)
}
