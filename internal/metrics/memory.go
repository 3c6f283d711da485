package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

// Growth returns the heap bytes allocated between two snapshots, or zero
// when the heap shrank.
func (s MemorySnapshot) Growth(since MemorySnapshot) uint64 {
	if s.HeapAlloc < since.HeapAlloc {
		return 0
	}
	return s.HeapAlloc - since.HeapAlloc
}

// heapCollector exposes a MemoryCollector reading as gauges, sampled once
// per scrape.
type heapCollector struct {
	mc      *MemoryCollector
	alloc   *prometheus.Desc
	objects *prometheus.Desc
	gcs     *prometheus.Desc
}

func newHeapCollector(mc *MemoryCollector) *heapCollector {
	return &heapCollector{
		mc:      mc,
		alloc:   prometheus.NewDesc(namespace+"_heap_alloc_bytes", "Heap bytes in use.", nil, nil),
		objects: prometheus.NewDesc(namespace+"_heap_objects", "Allocated heap objects.", nil, nil),
		gcs:     prometheus.NewDesc(namespace+"_gc_cycles_total", "Completed GC cycles.", nil, nil),
	}
}

func (h *heapCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- h.alloc
	ch <- h.objects
	ch <- h.gcs
}

func (h *heapCollector) Collect(ch chan<- prometheus.Metric) {
	s := h.mc.Snapshot()
	ch <- prometheus.MustNewConstMetric(h.alloc, prometheus.GaugeValue, float64(s.HeapAlloc))
	ch <- prometheus.MustNewConstMetric(h.objects, prometheus.GaugeValue, float64(s.HeapObjects))
	ch <- prometheus.MustNewConstMetric(h.gcs, prometheus.CounterValue, float64(s.NumGC))
}
